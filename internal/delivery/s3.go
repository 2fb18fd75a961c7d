package delivery

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"

	"github.com/a3tai/mcp-pdf-toolkit/internal/pdf"
	"github.com/a3tai/mcp-pdf-toolkit/internal/pdf/security"
)

// S3Options configures the S3 sink
type S3Options struct {
	Bucket    string
	Prefix    string
	Region    string
	Endpoint  string // custom endpoint such as MinIO; enables path style addressing
	AccessKey string
	SecretKey string
}

// uploader is the subset of manager.Uploader the sink needs
type uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// S3Sink uploads artifacts under <prefix>/<request id>/<name>
type S3Sink struct {
	bucket   string
	prefix   string
	uploader uploader
}

// NewS3Sink loads AWS configuration and builds an uploader
func NewS3Sink(ctx context.Context, opts S3Options) (*S3Sink, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	var loadOpts []func(*awscfg.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, awscfg.WithRegion(opts.Region))
	}
	if opts.AccessKey != "" && opts.SecretKey != "" {
		loadOpts = append(loadOpts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")))
	}

	cfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return newS3SinkWithUploader(opts.Bucket, opts.Prefix, manager.NewUploader(client)), nil
}

func newS3SinkWithUploader(bucket, prefix string, up uploader) *S3Sink {
	return &S3Sink{
		bucket:   bucket,
		prefix:   strings.Trim(prefix, "/"),
		uploader: up,
	}
}

// Describe implements Sink
func (s *S3Sink) Describe() string {
	if s.prefix == "" {
		return "s3://" + s.bucket
	}
	return "s3://" + s.bucket + "/" + s.prefix
}

// Key returns the object key for an artifact of a request
func (s *S3Sink) Key(requestID, name string) string {
	return path.Join(s.prefix, requestID, name)
}

// Deliver implements Sink
func (s *S3Sink) Deliver(ctx context.Context, requestID string, bundle *pdf.OutputBundle) ([]Location, error) {
	locations := make([]Location, 0, len(bundle.Artifacts))
	for _, a := range bundle.Artifacts {
		name, err := security.SanitizeFileName(a.Name)
		if err != nil {
			return locations, fmt.Errorf("artifact %q: %w", a.Name, err)
		}
		key := s.Key(requestID, name)

		_, err = s.uploader.Upload(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(s.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(a.Data),
			ContentType: aws.String(a.MIMEType),
		})
		if err != nil {
			return locations, fmt.Errorf("failed to upload %s: %w", key, err)
		}

		log.Info().
			Str("request_id", requestID).
			Str("bucket", s.bucket).
			Str("key", key).
			Int("size", a.Size()).
			Msg("uploaded artifact to S3")
		locations = append(locations, Location{
			Name:  name,
			URI:   "s3://" + s.bucket + "/" + key,
			Pages: a.Pages,
			Size:  a.Size(),
		})
	}
	return locations, nil
}
