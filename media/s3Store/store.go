package s3Store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"foodgram-api/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrIncompleteS3Config is returned when the S3 configuration is incomplete
var ErrIncompleteS3Config = errors.New("incomplete S3 configuration")

// S3Store persists images in an s3 bucket under media/<subdir>/<name> keys.
type S3Store struct {
	S3Client  *s3.Client
	Timeout   time.Duration
	Bucket    string
	PublicURL string
}

// New creates a new s3-based store
func New(cfg config.S3Config) (*S3Store, error) {
	// check for required S3 configuration
	if strings.TrimSpace(cfg.AccessKey) == "" ||
		strings.TrimSpace(cfg.KeyID) == "" ||
		strings.TrimSpace(cfg.Endpoint) == "" ||
		strings.TrimSpace(cfg.Region) == "" ||
		strings.TrimSpace(cfg.Bucket) == "" ||
		strings.TrimSpace(cfg.Timeout) == "" {
		return nil, fmt.Errorf("%w", ErrIncompleteS3Config)
	}

	s3Client := s3.New(s3.Options{
		UsePathStyle: true,
		BaseEndpoint: aws.String(cfg.Endpoint),
		Region:       cfg.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(
				cfg.KeyID,
				cfg.AccessKey,
				"",
			),
		),
	})

	timeoutDuration, err := time.ParseDuration(cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid S3 timeout value: %w", err)
	}

	publicURL := strings.TrimSuffix(cfg.PublicURL, "/")
	if publicURL == "" {
		publicURL = strings.TrimSuffix(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}

	return &S3Store{
		S3Client:  s3Client,
		Timeout:   timeoutDuration,
		Bucket:    cfg.Bucket,
		PublicURL: publicURL,
	}, nil
}

func (s *S3Store) Store(content []byte, ext, subdir string) (string, error) {
	key := "media/" + subdir + "/" + uuid.New().String() + ext

	uploader := manager.NewUploader(s.S3Client)

	ctx, cancel := context.WithTimeout(context.Background(), s.Timeout)
	defer cancel()
	result, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(content),
	})
	if err != nil {
		var mu manager.MultiUploadFailure
		if errors.As(err, &mu) {
			log.Error().
				Msg(fmt.Sprintf("multi-upload failure (upload_id: %s): %v", mu.UploadID(), mu))

			return "", fmt.Errorf(
				"multi-upload failure (upload_id: %s): %w",
				mu.UploadID(),
				mu,
			)
		}

		log.Error().Err(err).Msg("upload failure")

		return "", fmt.Errorf("upload failure: %w", err)
	}

	log.Debug().
		Str("location", result.Location).
		Msg("successfully uploaded image to s3 bucket")

	return s.PublicURL + "/" + key, nil
}
