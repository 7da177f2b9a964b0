// Where: cli/internal/infra/backup/s3_test.go
// What: Tests for S3 archive uploads.
// Why: Keys and request fields must be stable for retention policies.
package backup

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/poruru/stackctl/internal/infra/config"
)

type fakeS3 struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakeS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	if params.Body != nil {
		data, _ := io.ReadAll(params.Body)
		f.body = string(data)
	}
	return &s3.PutObjectOutput{}, f.err
}

func TestS3UploaderUpload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "appdb-202601010000.dump")
	if err := os.WriteFile(path, []byte("payload"), 0o644); err != nil {
		t.Fatalf("write archive: %v", err)
	}
	client := &fakeS3{}
	uploader := S3Uploader{Client: client, Bucket: "archive", Prefix: "/nightly/"}

	location, err := uploader.Upload(context.Background(), path)
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if location != "s3://archive/nightly/appdb-202601010000.dump" {
		t.Fatalf("location = %q", location)
	}
	if aws.ToString(client.input.Key) != "nightly/appdb-202601010000.dump" {
		t.Fatalf("key = %q", aws.ToString(client.input.Key))
	}
	if aws.ToString(client.input.Bucket) != "archive" {
		t.Fatalf("bucket = %q", aws.ToString(client.input.Bucket))
	}
	if client.body != "payload" {
		t.Fatalf("body = %q", client.body)
	}
}

func TestS3UploaderErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.dump")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write archive: %v", err)
	}
	uploader := S3Uploader{Client: &fakeS3{err: errors.New("denied")}, Bucket: "archive"}
	if _, err := uploader.Upload(context.Background(), path); err == nil {
		t.Fatal("expected upload error")
	}
	if _, err := uploader.Upload(context.Background(), filepath.Join(t.TempDir(), "missing.dump")); err == nil {
		t.Fatal("expected open error")
	}
	if _, err := (S3Uploader{Client: &fakeS3{}}).Upload(context.Background(), path); !errors.Is(err, errBucketRequired) {
		t.Fatalf("expected errBucketRequired, got %v", err)
	}
}

func TestNewS3UploaderRequiresBucket(t *testing.T) {
	if _, err := NewS3Uploader(context.Background(), config.S3Config{}, config.NewRuntime(nil)); !errors.Is(err, errBucketRequired) {
		t.Fatalf("expected errBucketRequired, got %v", err)
	}
}

func TestNewS3UploaderWithStaticCredentials(t *testing.T) {
	rt := config.NewRuntime(map[string]string{
		config.KeyS3AccessKeyID: "AKIAEXAMPLE",
		config.KeyS3SecretKey:   "secret",
	})
	uploader, err := NewS3Uploader(context.Background(), config.S3Config{Bucket: "archive", Endpoint: "http://minio:9000", Region: "eu-west-1"}, rt)
	if err != nil {
		t.Fatalf("NewS3Uploader() error = %v", err)
	}
	if uploader.Bucket != "archive" || uploader.Client == nil {
		t.Fatalf("uploader = %+v", uploader)
	}
}
