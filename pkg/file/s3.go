package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3Client is the part of *s3.Client the storage needs.
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Config points S3Storage at a bucket. Endpoint and ForcePathStyle cover
// MinIO, R2 and other S3-compatible providers.
type S3Config struct {
	Bucket         string
	Region         string
	AccessKeyID    string
	SecretKey      string
	Endpoint       string
	BaseURL        string
	ForcePathStyle bool
}

// publicBase is the URL prefix objects are served from when BaseURL is unset.
func (c S3Config) publicBase() string {
	switch {
	case c.BaseURL != "":
		return c.BaseURL
	case c.Endpoint != "":
		return strings.TrimSuffix(c.Endpoint, "/") + "/" + c.Bucket
	default:
		return "https://" + c.Bucket + ".s3." + c.Region + ".amazonaws.com"
	}
}

// S3Option customises NewS3Storage.
type S3Option func(*s3Setup)

type s3Setup struct {
	client S3Client
	http   *http.Client
}

// WithS3Client skips AWS config loading and uses client as is.
func WithS3Client(client S3Client) S3Option {
	return func(s *s3Setup) { s.client = client }
}

// WithHTTPClient sets the transport the SDK client uses.
func WithHTTPClient(client *http.Client) S3Option {
	return func(s *s3Setup) { s.http = client }
}

// S3Storage is safe for concurrent use.
type S3Storage struct {
	client  S3Client
	bucket  string
	baseURL string
}

// NewS3Storage uses static credentials when both keys are set and the
// default AWS credential chain otherwise.
func NewS3Storage(ctx context.Context, cfg S3Config, opts ...S3Option) (*S3Storage, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, fmt.Errorf("%w: bucket and region are required", ErrInvalidConfig)
	}

	var setup s3Setup
	for _, opt := range opts {
		opt(&setup)
	}

	if setup.client == nil {
		client, err := newS3Client(ctx, cfg, setup.http)
		if err != nil {
			return nil, err
		}
		setup.client = client
	}

	return &S3Storage{
		client:  setup.client,
		bucket:  cfg.Bucket,
		baseURL: cfg.publicBase(),
	}, nil
}

func newS3Client(ctx context.Context, cfg S3Config, hc *http.Client) (*s3.Client, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
		creds := credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, "")
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(creds))
	}
	if hc != nil {
		loadOpts = append(loadOpts, awsconfig.WithHTTPClient(hc))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, errors.Join(ErrAWSConfig, err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.ForcePathStyle
	}), nil
}

// Put reads content into memory first: the SDK signs a seekable body and
// published artifacts are small.
func (s *S3Storage) Put(ctx context.Context, path string, content io.Reader, contentType string) (*File, error) {
	if content == nil {
		return nil, ErrNilReader
	}
	key, err := cleanKey(path)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Join(ErrWrite, err)
	}

	in := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}
	if _, err := s.client.PutObject(ctx, in); err != nil {
		return nil, s3Error("put "+key, err)
	}

	return &File{Path: key, Size: int64(len(data)), ContentType: contentType, URL: s.URL(key)}, nil
}

// Delete fails with ErrNotFound when nothing is stored at path.
func (s *S3Storage) Delete(ctx context.Context, path string) error {
	key, err := cleanKey(path)
	if err != nil {
		return err
	}
	if err := s.head(ctx, key); err != nil {
		return s3Error("delete "+key, err)
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{Bucket: aws.String(s.bucket), Key: aws.String(key)})
	if err != nil {
		return s3Error("delete "+key, err)
	}
	return nil
}

func (s *S3Storage) Exists(ctx context.Context, path string) bool {
	key, err := cleanKey(path)
	return err == nil && s.head(ctx, key) == nil
}

func (s *S3Storage) URL(path string) string {
	return joinURL(s.baseURL, strings.TrimPrefix(path, "/"))
}

func (s *S3Storage) head(ctx context.Context, key string) error {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{Bucket: aws.String(s.bucket), Key: aws.String(key)})
	return err
}

// s3Codes maps provider error codes onto package sentinels.
var s3Codes = map[string]error{
	"NoSuchKey":          ErrNotFound,
	"NotFound":           ErrNotFound,
	"NoSuchBucket":       ErrBucketMissing,
	"AccessDenied":       ErrForbidden,
	"Forbidden":          ErrForbidden,
	"SlowDown":           ErrThrottled,
	"ServiceUnavailable": ErrThrottled,
	"RequestTimeout":     ErrTimeout,
}

func s3Error(op string, err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %s", ErrTimeout, op)
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %s", ErrCanceled, op)
	}

	var (
		noKey    *types.NoSuchKey
		notFound *types.NotFound
		noBucket *types.NoSuchBucket
	)
	switch {
	case errors.As(err, &noKey), errors.As(err, &notFound):
		return fmt.Errorf("%w: %s", ErrNotFound, op)
	case errors.As(err, &noBucket):
		return fmt.Errorf("%w: %s", ErrBucketMissing, op)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if sentinel, ok := s3Codes[apiErr.ErrorCode()]; ok {
			return fmt.Errorf("%w: %s: %s", sentinel, op, apiErr.ErrorMessage())
		}
	}
	return fmt.Errorf("file: %s: %w", op, err)
}
