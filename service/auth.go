package service

import (
	"context"
	"errors"
	"strings"

	"foodgram-api/auth"
	"foodgram-api/orm"

	"github.com/rs/zerolog/log"
)

// RegisterInput carries the signup payload. Avatar is optional and goes
// through the media pipeline.
type RegisterInput struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
	Avatar    string
}

// TokenPair is the issued access and refresh token set.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Register creates a user account. Emails are stored lower-cased and must be
// unique.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*orm.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, badRequest("a valid email is required")
	}
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	if firstName == "" || lastName == "" {
		return nil, badRequest("first_name and last_name are required")
	}

	_, err := s.db.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, conflict("email already registered")
	}
	var nf *orm.NotFoundError
	if !errors.As(err, &nf) {
		return nil, wrapError(err)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordLength) {
			return nil, badRequest(err.Error())
		}

		return nil, wrapError(err)
	}

	avatarURL, err := s.media.Resolve(input.Avatar, "avatars")
	if err != nil {
		return nil, wrapError(err)
	}

	user := &orm.User{
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		Avatar:       avatarURL,
		PasswordHash: hash,
	}
	if err := s.db.CreateUser(ctx, user); err != nil {
		return nil, wrapError(err)
	}

	log.Info().Int64("user_id", user.ID).Msg("user registered")

	return user, nil
}

// Login verifies the credentials and issues a token pair. Wrong email and
// wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.db.GetUserByEmail(ctx, email)
	if err != nil {
		var nf *orm.NotFoundError
		if errors.As(err, &nf) {
			return nil, unauthorized("invalid credentials")
		}

		return nil, wrapError(err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, unauthorized("invalid credentials")
	}

	return s.issueTokens(user.ID)
}

// Refresh exchanges a valid refresh token for a fresh token pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	userID, err := s.tokens.Parse(refreshToken, auth.TypeRefresh)
	if err != nil {
		return nil, unauthorized("invalid refresh token")
	}

	if _, err := s.db.GetUserByID(ctx, userID); err != nil {
		var nf *orm.NotFoundError
		if errors.As(err, &nf) {
			return nil, unauthorized("invalid refresh token")
		}

		return nil, wrapError(err)
	}

	return s.issueTokens(userID)
}

// Authenticate resolves an access token to a user id.
func (s *Service) Authenticate(tokenString string) (int64, error) {
	userID, err := s.tokens.Parse(tokenString, auth.TypeAccess)
	if err != nil {
		return 0, unauthorized("invalid access token")
	}

	return userID, nil
}

func (s *Service) issueTokens(userID int64) (*TokenPair, error) {
	access, err := s.tokens.Access(userID)
	if err != nil {
		return nil, wrapError(err)
	}

	refresh, err := s.tokens.Refresh(userID)
	if err != nil {
		return nil, wrapError(err)
	}

	return &TokenPair{Access: access, Refresh: refresh}, nil
}
