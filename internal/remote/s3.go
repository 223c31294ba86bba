package remote

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/mazrean/json2jsonl/log"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3 opens objects from an S3 compatible store using MinIO Go Client SDK.
type S3 struct {
	logger log.Logger
	client *minio.Client
}

// NewS3 initializes a new S3 client.
// endpoint: S3 endpoint host
// accessKey: access key for S3
// secretKey: secret key for S3
// the shared AWS credentials file is used when accessKey or secretKey is empty
// useSSL: whether to use SSL
// usePathStyle: whether to force path style
func NewS3(
	logger log.Logger,
	endpoint, region, accessKey, secretKey string,
	useSSL, usePathStyle bool,
) (*S3, error) {
	var creds *credentials.Credentials
	if accessKey != "" && secretKey != "" {
		creds = credentials.NewStaticV4(accessKey, secretKey, "")
	} else {
		creds = credentials.NewFileAWSCredentials("", "")
	}

	bucketLookupType := minio.BucketLookupDNS
	if usePathStyle {
		bucketLookupType = minio.BucketLookupPath
	}
	client, err := minio.New(endpoint, &minio.Options{
		Region:       region,
		Creds:        creds,
		Secure:       useSSL,
		BucketLookup: bucketLookupType,
	})
	if err != nil {
		return nil, fmt.Errorf("initialize S3 client: %w", err)
	}

	logger.Debugf("S3 client initialized with endpoint %q", endpoint)

	return &S3{
		logger: logger,
		client: client,
	}, nil
}

// Open starts streaming the object bucket/key
func (s *S3) Open(ctx context.Context, bucket, key string) (*Object, error) {
	name := fmt.Sprintf("s3://%s/%s", bucket, key)

	obj, err := s.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %s: %w", name, err)
	}

	// GetObject is lazy; Stat issues the request and reports missing objects
	info, err := obj.Stat()
	if err != nil {
		obj.Close()

		minioErr := minio.ToErrorResponse(err)
		if minioErr.Code == "NoSuchKey" || minioErr.Code == "NoSuchBucket" {
			return nil, fmt.Errorf("stat object %s: %w", name, ErrObjectNotFound)
		}
		return nil, fmt.Errorf("stat object %s: %w", name, err)
	}

	s.logger.Debugf("opened %s (%d bytes)", name, info.Size)

	return &Object{
		Name: name,
		Body: obj,
		Size: info.Size,
	}, nil
}

// ParseS3URL splits an s3://bucket/key URL into its bucket and key
func ParseS3URL(rawURL string) (bucket, key string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", fmt.Errorf("parse S3 URL: %w", err)
	}
	if u.Scheme != "s3" {
		return "", "", fmt.Errorf("invalid S3 URL %q: scheme must be s3", rawURL)
	}

	bucket = u.Host
	key = strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("invalid S3 URL %q: expected s3://bucket/key", rawURL)
	}

	return bucket, key, nil
}
