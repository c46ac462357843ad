package s3

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/GrantCuster/extra-grantcuster-com/config"
	"github.com/GrantCuster/extra-grantcuster-com/storage/media"
)

// s3Client is the slice of the minio client the store uses, kept narrow so
// tests can substitute a stub via newMinioClient.
type s3Client interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error)
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

// minioAdapter narrows *minio.Client's GetObject to io.ReadCloser so the
// s3Client interface stays stubbable.
type minioAdapter struct {
	*minio.Client
}

func (a minioAdapter) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	return a.Client.GetObject(ctx, bucketName, objectName, opts)
}

var newMinioClient = func(endpoint string, opts *minio.Options) (s3Client, error) {
	client, err := minio.New(endpoint, opts)
	if err != nil {
		return nil, err
	}

	return minioAdapter{client}, nil
}

// StoreImpl uploads media to S3 or any compatible service (R2, Backblaze, MinIO).
type StoreImpl struct {
	client         s3Client
	bucket         string
	publicBase     string
	forcePathStyle bool
	endpointHost   string
	secure         bool
	region         string
}

func NewS3MediaStore(cfg *config.Media) (*StoreImpl, error) {
	if cfg == nil || cfg.S3 == nil {
		return nil, fmt.Errorf("s3 media config is nil")
	}

	s3cfg := cfg.S3
	region := strings.TrimSpace(s3cfg.Region)
	if strings.EqualFold(region, "auto") {
		region = ""
	}

	endpointHost := strings.TrimSpace(s3cfg.Endpoint)
	if endpointHost == "" {
		if region == "" {
			endpointHost = "s3.amazonaws.com"
		} else {
			endpointHost = fmt.Sprintf("s3.%s.amazonaws.com", region)
		}
	} else {
		if parsed, err := url.Parse(endpointHost); err == nil && parsed.Host != "" {
			endpointHost = parsed.Host
		}
	}

	lookup := minio.BucketLookupAuto
	if s3cfg.ForcePathStyle {
		lookup = minio.BucketLookupPath
	}

	client, err := newMinioClient(endpointHost, &minio.Options{
		Creds:        credentials.NewStaticV4(s3cfg.AccessKeyId, s3cfg.SecretKeyId, ""),
		Secure:       !s3cfg.DisableSSL,
		Region:       region,
		BucketLookup: lookup,
	})

	if err != nil {
		return nil, fmt.Errorf("failed to create s3 client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, s3cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to verify s3 bucket %q: %w", s3cfg.Bucket, err)
	}

	if !exists {
		return nil, fmt.Errorf("s3 bucket %q does not exist or is not accessible", s3cfg.Bucket)
	}

	return &StoreImpl{
		client:         client,
		bucket:         s3cfg.Bucket,
		publicBase:     strings.TrimSuffix(s3cfg.PublicUrl, "/"),
		forcePathStyle: s3cfg.ForcePathStyle,
		endpointHost:   endpointHost,
		secure:         !s3cfg.DisableSSL,
		region:         s3cfg.Region,
	}, nil
}

func (s *StoreImpl) Upload(ctx context.Context, key string, contentType string, r io.Reader, size int64) (string, error) {
	if key == "" {
		return "", fmt.Errorf("object key is required")
	}

	opts := minio.PutObjectOptions{ContentType: contentType}

	if _, err := s.client.PutObject(ctx, s.bucket, key, r, size, opts); err != nil {
		return "", fmt.Errorf("upload to s3 failed: %w", err)
	}

	return s.PublicURL(key), nil
}

func (s *StoreImpl) Fetch(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("fetch %q from s3 failed: %w", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("read %q from s3 failed: %w", key, err)
	}

	return data, nil
}

func (s *StoreImpl) List(ctx context.Context) ([]media.Object, error) {
	var objects []media.Object

	for info := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Recursive: true}) {
		if info.Err != nil {
			return nil, fmt.Errorf("list s3 objects failed: %w", info.Err)
		}

		objects = append(objects, media.Object{
			Key:          info.Key,
			Size:         info.Size,
			ContentType:  info.ContentType,
			LastModified: info.LastModified,
			Url:          s.PublicURL(info.Key),
		})
	}

	// Most recently modified first.
	sort.Slice(objects, func(i, j int) bool {
		return objects[i].LastModified.After(objects[j].LastModified)
	})

	return objects, nil
}

func (s *StoreImpl) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete from s3 failed: %w", err)
	}

	return nil
}

func (s *StoreImpl) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s", s.publicBase, key)
}
