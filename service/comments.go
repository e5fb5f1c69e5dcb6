package service

import (
	"context"
	"strings"

	"foodgram-api/orm"
)

// CommentInput carries a partial comment payload. Nil fields are left
// untouched on update; the stored comment must keep text or an image.
type CommentInput struct {
	Text  *string
	Image *string
}

// CreateComment attaches a comment to a recipe.
func (s *Service) CreateComment(
	ctx context.Context,
	userID, recipeID int64,
	input CommentInput,
) (*orm.Comment, error) {
	var text, image string
	if input.Text != nil {
		text = strings.TrimSpace(*input.Text)
	}
	if input.Image != nil {
		image = *input.Image
	}
	if text == "" && strings.TrimSpace(image) == "" {
		return nil, badRequest("comment needs text or an image")
	}

	if _, err := s.db.GetRecipeByID(ctx, recipeID); err != nil {
		return nil, wrapError(err)
	}

	imageURL, err := s.media.Resolve(image, "comments")
	if err != nil {
		return nil, wrapError(err)
	}

	comment := &orm.Comment{
		UserID:   userID,
		RecipeID: recipeID,
		Text:     text,
		Image:    imageURL,
	}
	if err := s.db.CreateComment(ctx, comment); err != nil {
		return nil, wrapError(err)
	}

	return comment, nil
}

// UpdateComment applies a partial update. Only the comment's author may
// update it.
func (s *Service) UpdateComment(
	ctx context.Context,
	userID, commentID int64,
	input CommentInput,
) (*orm.Comment, error) {
	current, err := s.db.GetCommentByID(ctx, commentID)
	if err != nil {
		return nil, wrapError(err)
	}
	if current.UserID != userID {
		return nil, forbidden("only the author can update a comment")
	}

	text := current.Text
	if input.Text != nil {
		text = strings.TrimSpace(*input.Text)
	}
	imageURL := current.Image
	if input.Image != nil {
		imageURL, err = s.media.Resolve(*input.Image, "comments")
		if err != nil {
			return nil, wrapError(err)
		}
	}
	if text == "" && strings.TrimSpace(imageURL) == "" {
		return nil, badRequest("comment needs text or an image")
	}

	comment, err := s.db.UpdateComment(ctx, commentID, text, imageURL)
	if err != nil {
		return nil, wrapError(err)
	}

	return comment, nil
}

// DeleteComment removes a comment. Only the comment's author may delete it.
func (s *Service) DeleteComment(ctx context.Context, userID, commentID int64) error {
	comment, err := s.db.GetCommentByID(ctx, commentID)
	if err != nil {
		return wrapError(err)
	}

	if comment.UserID != userID {
		return forbidden("only the author can delete a comment")
	}

	rows, err := s.db.DeleteComment(ctx, commentID)
	if err != nil {
		return wrapError(err)
	}
	if rows == 0 {
		return notFound("comment not found")
	}

	return nil
}

// ListComments returns a page of a recipe's comments, newest first.
func (s *Service) ListComments(
	ctx context.Context,
	recipeID int64,
	q string,
	limit, offset int,
) ([]orm.Comment, error) {
	if _, err := s.db.GetRecipeByID(ctx, recipeID); err != nil {
		return nil, wrapError(err)
	}

	limit, offset = clampPage(limit, offset)

	comments, err := s.db.ListComments(ctx, recipeID, q, limit, offset)
	if err != nil {
		return nil, wrapError(err)
	}

	return comments, nil
}
