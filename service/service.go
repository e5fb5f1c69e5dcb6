package service

import (
	"foodgram-api/auth"
	"foodgram-api/media"
	"foodgram-api/orm"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Service implements the application operations on top of the orm layer.
// Every mutating operation on a recipe aggregate runs in a single
// transaction.
type Service struct {
	db     *orm.DB
	media  *media.Service
	tokens *auth.TokenIssuer
}

// New creates a new service
func New(db *orm.DB, mediaService *media.Service, tokens *auth.TokenIssuer) *Service {
	return &Service{
		db:     db,
		media:  mediaService,
		tokens: tokens,
	}
}

// clampPage normalizes pagination parameters to safe bounds.
func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
