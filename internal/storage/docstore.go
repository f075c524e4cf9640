package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/launchpad-ai/launchpad/internal/metrics"
)

// DocStore guarda documentos generados y currículums subidos en un bucket S3
// (o compatible, vía S3_ENDPOINT).
type DocStore struct {
	client *s3.Client
	bucket string
}

func NewDocStore(ctx context.Context, region, accessKey, secretKey, endpoint, bucket string) (*DocStore, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if accessKey != "" && secretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	return &DocStore{client: client, bucket: bucket}, nil
}

func (d *DocStore) Bucket() string {
	return d.bucket
}

// DocKey builds the object key for a generated document:
// {user_id}/{type}_{timestamp}.md
func DocKey(userID, docType string, ts time.Time) string {
	return fmt.Sprintf("%s/%s_%s.md", userID, docType, ts.UTC().Format("20060102_150405"))
}

// ValidDocKey keeps fetches inside the per-user layout (no traversal, no
// absolute keys).
func ValidDocKey(key string) bool {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "..") {
		return false
	}
	return strings.Count(key, "/") >= 1
}

// Save sube el contenido y devuelve la URI s3://bucket/key.
func (d *DocStore) Save(ctx context.Context, key, content string) (string, error) {
	_, err := d.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(d.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader([]byte(content)),
		ContentType: aws.String("text/markdown"),
	})
	if err != nil {
		metrics.StorageOps.Inc(map[string]string{"op": "put", "outcome": "error"})
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	metrics.StorageOps.Inc(map[string]string{"op": "put", "outcome": "ok"})
	return fmt.Sprintf("s3://%s/%s", d.bucket, key), nil
}

// Ping comprueba que el bucket existe y las credenciales sirven.
func (d *DocStore) Ping(ctx context.Context) error {
	_, err := d.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(d.bucket),
	})
	if err != nil {
		return fmt.Errorf("head bucket %s: %w", d.bucket, err)
	}
	return nil
}

// Get descarga el objeto completo.
func (d *DocStore) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := d.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		metrics.StorageOps.Inc(map[string]string{"op": "get", "outcome": "error"})
		return nil, fmt.Errorf("get object %s: %w", key, err)
	}
	defer out.Body.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, out.Body); err != nil {
		metrics.StorageOps.Inc(map[string]string{"op": "get", "outcome": "error"})
		return nil, fmt.Errorf("read object body: %w", err)
	}
	metrics.StorageOps.Inc(map[string]string{"op": "get", "outcome": "ok"})
	return buf.Bytes(), nil
}
