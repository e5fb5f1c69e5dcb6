package service

import (
	"context"
	"errors"
	"strings"

	"foodgram-api/orm"
)

// CreateTag adds a dictionary tag. Names fold to lower case; a
// case-insensitive duplicate is a conflict.
func (s *Service) CreateTag(ctx context.Context, name string) (*orm.Tag, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, badRequest("name is required")
	}

	_, err := s.db.GetTagByName(ctx, name)
	if err == nil {
		return nil, conflict("tag already exists")
	}
	var nf *orm.NotFoundError
	if !errors.As(err, &nf) {
		return nil, wrapError(err)
	}

	tag, err := s.db.CreateTag(ctx, name)
	if err != nil {
		return nil, wrapError(err)
	}

	return tag, nil
}

// UpdateTag renames a tag, keeping the case-insensitive uniqueness.
func (s *Service) UpdateTag(ctx context.Context, tagID int64, name string) (*orm.Tag, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, badRequest("name is required")
	}

	if _, err := s.db.GetTagByID(ctx, tagID); err != nil {
		return nil, wrapError(err)
	}

	existing, err := s.db.GetTagByName(ctx, name)
	if err == nil && existing.ID != tagID {
		return nil, conflict("tag already exists")
	}
	if err != nil {
		var nf *orm.NotFoundError
		if !errors.As(err, &nf) {
			return nil, wrapError(err)
		}
	}

	tag, err := s.db.UpdateTag(ctx, tagID, name)
	if err != nil {
		return nil, wrapError(err)
	}

	return tag, nil
}

// DeleteTag removes a tag; recipe links disappear with it through cascades.
func (s *Service) DeleteTag(ctx context.Context, tagID int64) error {
	rows, err := s.db.DeleteTag(ctx, tagID)
	if err != nil {
		return wrapError(err)
	}
	if rows == 0 {
		return notFound("tag not found")
	}

	return nil
}

// GetTag returns one tag.
func (s *Service) GetTag(ctx context.Context, tagID int64) (*orm.Tag, error) {
	tag, err := s.db.GetTagByID(ctx, tagID)
	if err != nil {
		return nil, wrapError(err)
	}

	return tag, nil
}

// ListTags returns a page of the tag dictionary ordered by name.
func (s *Service) ListTags(ctx context.Context, q string, limit, offset int) ([]orm.Tag, error) {
	limit, offset = clampPage(limit, offset)

	tags, err := s.db.ListTags(ctx, q, limit, offset)
	if err != nil {
		return nil, wrapError(err)
	}

	return tags, nil
}
