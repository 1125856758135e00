package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rpupo63/project-catalog-backend/config"
)

// ErrDisabled is returned when no image bucket is configured.
var ErrDisabled = errors.New("image storage not configured")

// AllowedContentTypes lists the accepted upload types and their file extensions.
var AllowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ObjectPutter is the subset of the S3 client used for uploads.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Config struct {
	Bucket        string
	Region        string
	Endpoint      string // S3-compatible endpoint, e.g. a local MinIO
	PublicBaseURL string // prefix for returned URLs; defaults to the bucket's virtual-host URL
	KeyPrefix     string
}

func ConfigFromMap(c map[string]string) Config {
	return Config{
		Bucket:        config.GetString(c, "IMAGE_BUCKET", ""),
		Region:        config.GetString(c, "AWS_REGION", "us-east-1"),
		Endpoint:      config.GetString(c, "IMAGE_S3_ENDPOINT", ""),
		PublicBaseURL: config.GetString(c, "IMAGE_PUBLIC_BASE_URL", ""),
		KeyPrefix:     config.GetString(c, "IMAGE_KEY_PREFIX", "images"),
	}
}

// ImageStore uploads project images to a bucket and hands back their public URL.
type ImageStore struct {
	client ObjectPutter
	cfg    Config
}

// New builds a store from the default AWS credential chain. An empty bucket yields a disabled store.
func New(ctx context.Context, cfg Config) (*ImageStore, error) {
	if cfg.Bucket == "" {
		return &ImageStore{cfg: cfg}, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return NewWithClient(client, cfg), nil
}

func NewWithClient(client ObjectPutter, cfg Config) *ImageStore {
	return &ImageStore{client: client, cfg: cfg}
}

func (s *ImageStore) Enabled() bool {
	return s != nil && s.client != nil && s.cfg.Bucket != ""
}

// Put stores the image under a fresh key and returns its URL.
func (s *ImageStore) Put(ctx context.Context, contentType string, body io.Reader, size int64) (string, error) {
	if !s.Enabled() {
		return "", ErrDisabled
	}
	ext, ok := AllowedContentTypes[contentType]
	if !ok {
		return "", fmt.Errorf("unsupported image type %q", contentType)
	}

	key := path.Join(s.cfg.KeyPrefix, uuid.NewString()+ext)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put %s: %w", key, err)
	}
	return s.URLFor(key), nil
}

func (s *ImageStore) URLFor(key string) string {
	base := strings.TrimRight(s.cfg.PublicBaseURL, "/")
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", s.cfg.Bucket, s.cfg.Region)
	}
	return base + "/" + key
}
