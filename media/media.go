package media

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// MaxImageSize bounds accepted payloads at 5 MB.
const MaxImageSize = 5 * 1024 * 1024

var (
	// ErrInvalidEncoding is returned for payloads that are not valid base64.
	ErrInvalidEncoding = errors.New("invalid base64 image")
	// ErrImageTooLarge is returned for payloads above MaxImageSize.
	ErrImageTooLarge = errors.New("image too large, max size is 5MB")
	// ErrUnsupportedType is returned for content types outside jpeg/png/webp.
	ErrUnsupportedType = errors.New("unsupported image type, allowed: jpeg, png, webp")
)

var allowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// Store persists decoded image bytes and mints a URL for them.
type Store interface {
	Store(content []byte, ext, subdir string) (string, error)
}

// Service resolves image inputs into stored URLs. An input can be empty
// (no-op), an already-stored URL (passed through unchanged), or a raw base64
// payload with an optional data-URL prefix.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Resolve(input, subdir string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", nil
	}

	if strings.HasPrefix(input, "/media/") || strings.HasPrefix(input, "http") {
		return input, nil
	}

	return s.storeBase64(input, subdir)
}

func (s *Service) storeBase64(data, subdir string) (string, error) {
	mime, raw := splitDataURL(data)

	ext := ".png"
	if mime != "" {
		allowed, ok := allowedContentTypes[mime]
		if !ok {
			return "", ErrUnsupportedType
		}
		ext = allowed
	}

	content, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidEncoding, err)
	}

	if len(content) > MaxImageSize {
		return "", ErrImageTooLarge
	}

	url, err := s.store.Store(content, ext, subdir)
	if err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}

	return url, nil
}

// splitDataURL strips an optional "data:<mime>;base64," prefix.
func splitDataURL(data string) (mime, payload string) {
	if !strings.HasPrefix(data, "data:") {
		return "", data
	}

	header, payload, found := strings.Cut(data, ",")
	if !found {
		return "", data
	}

	mime = strings.TrimPrefix(strings.SplitN(header, ";", 2)[0], "data:")

	return mime, payload
}

// IsInputError reports whether err stems from a malformed or oversized
// payload rather than storage failure.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidEncoding) ||
		errors.Is(err, ErrImageTooLarge) ||
		errors.Is(err, ErrUnsupportedType)
}
