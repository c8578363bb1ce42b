package artifact

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Config locates the bucket artifacts are kept in.
type S3Config struct {
	Bucket          string
	Prefix          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool

	// StagingDir receives downloaded artifacts. Workers read their input
	// from, and write results next to, the staged copy.
	StagingDir string
}

// S3Store keeps artifacts in an S3-compatible bucket and stages them on local
// disk for workers.
type S3Store struct {
	client  *s3.Client
	bucket  string
	prefix  string
	staging string
}

// NewS3Store creates a Store for the bucket described by cfg.
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 bucket is required")
	}

	if cfg.StagingDir == "" {
		return nil, errors.New("s3 staging dir is required")
	}

	if err := os.MkdirAll(cfg.StagingDir, 0755); err != nil {
		return nil, fmt.Errorf("create staging dir: %w", err)
	}

	opts := []func(*awsconfig.LoadOptions) error{}

	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}

	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.SecretAccessKey,
				"",
			),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}

		o.UsePathStyle = cfg.UsePathStyle
	})

	return &S3Store{
		client:  client,
		bucket:  cfg.Bucket,
		prefix:  strings.Trim(cfg.Prefix, "/"),
		staging: cfg.StagingDir,
	}, nil
}

// Resolve checks the bucket for name and returns the path of a staged copy,
// downloading it if it is not staged yet.
func (s *S3Store) Resolve(ctx context.Context, name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}

	if _, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	}); err != nil {
		return "", s.mapError(name, err)
	}

	staged := filepath.Join(s.staging, name)

	if info, err := os.Stat(staged); err == nil && !info.IsDir() {
		return staged, nil
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		return "", s.mapError(name, err)
	}
	defer out.Body.Close()

	if err := writeFile(staged, out.Body); err != nil {
		return "", fmt.Errorf("stage artifact: %w", err)
	}

	return staged, nil
}

// Put stages r locally and uploads the staged file.
func (s *S3Store) Put(ctx context.Context, name string, r io.Reader) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	staged := filepath.Join(s.staging, name)
	if err := writeFile(staged, r); err != nil {
		return err
	}

	f, err := os.Open(staged)
	if err != nil {
		return fmt.Errorf("open staged artifact: %w", err)
	}
	defer f.Close()

	if _, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
		Body:   f,
	}); err != nil {
		return fmt.Errorf("failed to upload to s3: %w", err)
	}

	return nil
}

// Open serves results from the staging dir, where workers write them, and
// falls back to the bucket.
func (s *S3Store) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ValidatePath(name); err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(s.staging, filepath.FromSlash(name)))
	if err == nil {
		return f, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("open staged artifact: %w", err)
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		return nil, s.mapError(name, err)
	}

	return out.Body, nil
}

func (s *S3Store) key(name string) string {
	if s.prefix == "" {
		return name
	}

	return path.Join(s.prefix, name)
}

func (s *S3Store) mapError(name string, err error) error {
	var (
		notFound  *types.NotFound
		noSuchKey *types.NoSuchKey
		respErr   *awshttp.ResponseError
	)

	switch {
	case errors.As(err, &notFound), errors.As(err, &noSuchKey):
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	case errors.As(err, &respErr) && respErr.HTTPStatusCode() == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	default:
		return fmt.Errorf("s3 %s: %w", name, err)
	}
}
