package s3client

import (
	"context"
	"fmt"
	"time"

	"github.com/andreyxaxa/portfolio-dashboard/pkg/retry"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const (
	_defaultConnAttempts   = 10
	_defaultConnTimeout    = time.Second
	_defaultAttemptTimeout = 10 * time.Second
	_defaultRegion         = "us-east-1"
)

// S3Client holds an s3 client bound to one bucket. Endpoint may point at
// any S3-compatible store (minio in development).
type S3Client struct {
	connAttempts   int
	connTimeout    time.Duration
	attemptTimeout time.Duration

	endpoint     string
	region       string
	accessKey    string
	secretKey    string
	usePathStyle bool

	Bucket string
	Client *s3.Client
}

// New builds the client once and then waits until the bucket answers
// HeadBucket.
func New(ctx context.Context, endpoint, accessKey, secretKey, bucket string, opts ...Option) (*S3Client, error) {
	s3c := &S3Client{
		connAttempts:   _defaultConnAttempts,
		connTimeout:    _defaultConnTimeout,
		attemptTimeout: _defaultAttemptTimeout,
		region:         _defaultRegion,
		endpoint:       endpoint,
		accessKey:      accessKey,
		secretKey:      secretKey,
		usePathStyle:   true,
		Bucket:         bucket,
	}

	for _, opt := range opts {
		opt(s3c)
	}

	cfg, err := config.LoadDefaultConfig(
		ctx,
		config.WithRegion(s3c.region),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(s3c.accessKey, s3c.secretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("S3Client - New - config.LoadDefaultConfig: %w", err)
	}

	s3c.Client = s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = s3c.usePathStyle
		if s3c.endpoint != "" {
			o.BaseEndpoint = aws.String(s3c.endpoint)
		}
	})

	err = retry.Connect(ctx, "S3", s3c.connAttempts, s3c.connTimeout, s3c.headBucket)
	if err != nil {
		return nil, fmt.Errorf("S3Client - New: %w", err)
	}

	return s3c, nil
}

func (s *S3Client) headBucket(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.attemptTimeout)
	defer cancel()

	_, err := s.Client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.Bucket)})
	if err != nil {
		return fmt.Errorf("s.Client.HeadBucket(%s): %w", s.Bucket, err)
	}

	return nil
}
