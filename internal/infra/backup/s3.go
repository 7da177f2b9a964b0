// Where: cli/internal/infra/backup/s3.go
// What: Off-host copies of dump archives.
// Why: A dump on the same disk as the database is not a backup.
package backup

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/poruru/stackctl/internal/infra/config"
)

const defaultAWSRegion = "us-east-1"

// Uploader copies a local archive to remote storage and returns its location.
type Uploader interface {
	Upload(ctx context.Context, localPath string) (string, error)
}

// S3PutAPI is the subset of the S3 client used for uploads.
type S3PutAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader stores archives under bucket/prefix.
type S3Uploader struct {
	Client S3PutAPI
	Bucket string
	Prefix string
}

// NewS3Uploader builds an uploader from settings. Static credentials are
// taken from the runtime environment when present; otherwise the default
// AWS credential chain applies.
func NewS3Uploader(ctx context.Context, cfg config.S3Config, rt config.Runtime) (*S3Uploader, error) {
	if !cfg.Enabled() {
		return nil, errBucketRequired
	}
	region := firstNonEmpty(cfg.Region, rt.Get(config.KeyAWSRegion), defaultAWSRegion)
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if key, secret := rt.Get(config.KeyS3AccessKeyID), rt.Get(config.KeyS3SecretKey); key != "" && secret != "" {
		creds := credentials.NewStaticCredentialsProvider(key, secret, rt.Get(config.KeyS3SessionToken))
		opts = append(opts, awsconfig.WithCredentialsProvider(creds))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(options *s3.Options) {
		if endpoint := strings.TrimSpace(cfg.Endpoint); endpoint != "" {
			options.BaseEndpoint = aws.String(endpoint)
			options.UsePathStyle = true
		}
	})
	return &S3Uploader{Client: client, Bucket: cfg.Bucket, Prefix: cfg.Prefix}, nil
}

// Key returns the object key for a local file.
func (u S3Uploader) Key(localPath string) string {
	name := filepath.Base(localPath)
	prefix := strings.Trim(u.Prefix, "/")
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}

func (u S3Uploader) Upload(ctx context.Context, localPath string) (string, error) {
	if strings.TrimSpace(u.Bucket) == "" {
		return "", errBucketRequired
	}
	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open archive: %w", err)
	}
	defer file.Close()

	key := u.Key(localPath)
	_, err = u.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.Bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String("application/gzip"),
	})
	if err != nil {
		return "", fmt.Errorf("upload s3://%s/%s: %w", u.Bucket, key, err)
	}
	return fmt.Sprintf("s3://%s/%s", u.Bucket, key), nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
