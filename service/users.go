package service

import (
	"context"
	"errors"
	"strings"

	"foodgram-api/orm"
)

// UserUpdate carries a partial profile update. Nil fields are left
// untouched. A non-nil empty Avatar clears the stored avatar; a non-empty
// one is resolved through the media service.
type UserUpdate struct {
	Email     *string
	FirstName *string
	LastName  *string
	Avatar    *string
}

// UserStats aggregates activity counters for one user.
type UserStats struct {
	UserID         int64 `json:"user_id"`
	RecipesCount   int64 `json:"recipes_count"`
	FollowersCount int64 `json:"followers_count"`
	FavoritesCount int64 `json:"favorites_count"`
	CommentsCount  int64 `json:"comments_count"`
}

// GetUser returns one user profile.
func (s *Service) GetUser(ctx context.Context, userID int64) (*orm.User, error) {
	user, err := s.db.GetUserByID(ctx, userID)
	if err != nil {
		return nil, wrapError(err)
	}

	return user, nil
}

// ListUsers returns a page of user profiles.
func (s *Service) ListUsers(ctx context.Context, q string, limit, offset int) ([]orm.User, error) {
	limit, offset = clampPage(limit, offset)

	users, err := s.db.ListUsers(ctx, q, limit, offset)
	if err != nil {
		return nil, wrapError(err)
	}

	return users, nil
}

// UpdateUser applies a partial profile update for the acting user.
func (s *Service) UpdateUser(
	ctx context.Context,
	userID int64,
	update UserUpdate,
) (*orm.User, error) {
	fields := make(map[string]any)

	if update.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*update.Email))
		if email == "" || !strings.Contains(email, "@") {
			return nil, badRequest("a valid email is required")
		}
		existing, err := s.db.GetUserByEmail(ctx, email)
		if err == nil && existing.ID != userID {
			return nil, conflict("email already registered")
		}
		if err != nil {
			var nf *orm.NotFoundError
			if !errors.As(err, &nf) {
				return nil, wrapError(err)
			}
		}
		fields["email"] = email
	}
	if update.FirstName != nil {
		name := strings.TrimSpace(*update.FirstName)
		if name == "" {
			return nil, badRequest("first_name cannot be empty")
		}
		fields["first_name"] = name
	}
	if update.LastName != nil {
		name := strings.TrimSpace(*update.LastName)
		if name == "" {
			return nil, badRequest("last_name cannot be empty")
		}
		fields["last_name"] = name
	}
	if update.Avatar != nil {
		if *update.Avatar == "" {
			fields["avatar"] = ""
		} else {
			avatarURL, err := s.media.Resolve(*update.Avatar, "avatars")
			if err != nil {
				return nil, wrapError(err)
			}
			fields["avatar"] = avatarURL
		}
	}

	if len(fields) == 0 {
		return nil, badRequest("nothing to update")
	}

	user, err := s.db.UpdateUser(ctx, userID, fields)
	if err != nil {
		return nil, wrapError(err)
	}

	return user, nil
}

// UserStats returns the activity counters for a user: how many recipes they
// published, who follows them, and the engagement their recipes collected.
func (s *Service) UserStats(ctx context.Context, userID int64) (*UserStats, error) {
	if _, err := s.db.GetUserByID(ctx, userID); err != nil {
		return nil, wrapError(err)
	}

	recipes, err := s.db.CountRecipesByAuthor(ctx, userID)
	if err != nil {
		return nil, wrapError(err)
	}

	followers, err := s.db.CountFollowers(ctx, userID)
	if err != nil {
		return nil, wrapError(err)
	}

	favorites, err := s.db.CountFavoritesForAuthor(ctx, userID)
	if err != nil {
		return nil, wrapError(err)
	}

	comments, err := s.db.CountCommentsForAuthorRecipes(ctx, userID)
	if err != nil {
		return nil, wrapError(err)
	}

	return &UserStats{
		UserID:         userID,
		RecipesCount:   recipes,
		FollowersCount: followers,
		FavoritesCount: favorites,
		CommentsCount:  comments,
	}, nil
}
