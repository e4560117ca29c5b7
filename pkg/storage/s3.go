package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"orgnotes-be/internal/pkg/logger"
)

// S3Config holds S3 client configuration for the attachments bucket.
type S3Config struct {
	Region            string
	AccessKeyID       string
	SecretAccessKey   string
	AttachmentsBucket string
	SignedURLTTLSec   int
}

// S3 provides uploads and pre-signed read URLs for attachment blobs.
// Objects are only reachable through signed URLs; no public ACL is ever set.
type S3 struct {
	client   *s3.Client
	uploader *manager.Uploader
	cfg      S3Config
	logger   logger.ILogger
}

// NewS3 creates an S3 client using static credentials from config, falling
// back to the default AWS credential chain when none are configured.
func NewS3(ctx context.Context, cfg S3Config, log logger.ILogger) (*S3, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID, cfg.SecretAccessKey, "",
		)))
	} else if log != nil {
		log.Warn("Storage", "S3 client using default credential chain", nil)
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)
	uploader := manager.NewUploader(client, func(u *manager.Uploader) {
		u.PartSize = 5 * 1024 * 1024 // 5MB parts for streaming
	})

	return &S3{
		client:   client,
		uploader: uploader,
		cfg:      cfg,
		logger:   log,
	}, nil
}

// AttachmentKey returns the tenant-namespaced object key:
// org/{org_id}/{unix_ms}-{filename}. The org prefix rules out cross-tenant
// collisions; the timestamp keeps repeated uploads of the same file distinct.
func AttachmentKey(orgID string, uploadedAt time.Time, filename string) string {
	return fmt.Sprintf("org/%s/%d-%s", orgID, uploadedAt.UnixMilli(), path.Base(filename))
}

// Bucket returns the attachments bucket name.
func (s *S3) Bucket() string { return s.cfg.AttachmentsBucket }

// SignedURLTTL returns the configured presign duration, bounded to the
// 60-second default when unset.
func (s *S3) SignedURLTTL() time.Duration {
	if s.cfg.SignedURLTTLSec <= 0 {
		return 60 * time.Second
	}
	return time.Duration(s.cfg.SignedURLTTLSec) * time.Second
}

// Upload streams a reader to the attachments bucket. PutObject overwrites an
// existing key, which is what duplicate-name retries rely on.
func (s *S3) Upload(ctx context.Context, key, contentType string, body io.Reader, contentLength int64) error {
	var contentLengthPtr *int64
	if contentLength > 0 {
		contentLengthPtr = &contentLength
	}
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.AttachmentsBucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: contentLengthPtr,
	})
	if err != nil {
		return fmt.Errorf("upload: %w", err)
	}
	return nil
}

// GeneratePresignedDownloadURL returns a pre-signed GET URL for one object,
// valid for the given duration.
func (s *S3) GeneratePresignedDownloadURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	presignClient := s3.NewPresignClient(s.client)
	req, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.AttachmentsBucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = expires
	})
	if err != nil {
		return "", fmt.Errorf("presign get: %w", err)
	}
	return req.URL, nil
}

// HeadObject returns object metadata if the key exists.
func (s *S3) HeadObject(ctx context.Context, key string) (*s3.HeadObjectOutput, error) {
	return s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.cfg.AttachmentsBucket),
		Key:    aws.String(key),
	})
}

// Exists reports whether the blob behind key is present. A metadata row can
// outlive its blob (bucket lifecycle, manual cleanup), so callers check
// before minting a download URL.
func (s *S3) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.HeadObject(ctx, key)
	if err != nil {
		var nf *types.NotFound
		if errors.As(err, &nf) {
			return false, nil
		}
		return false, fmt.Errorf("head object: %w", err)
	}
	return true, nil
}

// DeleteObject removes an object. Not used on the upload path: an orphaned
// blob after a failed metadata insert is tolerated rather than compensated.
func (s *S3) DeleteObject(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.AttachmentsBucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}
