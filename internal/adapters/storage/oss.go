package storage

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

// BlobStorage abstracts the public object store holding member photos
type BlobStorage interface {
	// Put uploads a publicly readable object and returns its public URL
	Put(key string, data []byte, contentType string) (string, error)
	// Delete removes the object a previously returned public URL points at
	Delete(publicURL string) error
}

type ossStorage struct {
	bucket     *oss.Bucket
	bucketName string
	endpoint   string
}

// NewOSS creates a BlobStorage backed by an Alibaba Cloud OSS bucket
func NewOSS(endpoint, accessKeyID, accessKeySecret, bucketName string) (BlobStorage, error) {
	client, err := oss.New(endpoint, accessKeyID, accessKeySecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create oss client: %w", err)
	}
	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to open oss bucket: %w", err)
	}
	return &ossStorage{
		bucket:     bucket,
		bucketName: bucketName,
		endpoint:   endpoint,
	}, nil
}

func (s *ossStorage) Put(key string, data []byte, contentType string) (string, error) {
	err := s.bucket.PutObject(key, bytes.NewReader(data),
		oss.ContentType(contentType),
		oss.ObjectACL(oss.ACLPublicRead),
	)
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}
	return s.publicURL(key), nil
}

func (s *ossStorage) Delete(publicURL string) error {
	key, err := keyFromURL(publicURL)
	if err != nil {
		return err
	}
	if err := s.bucket.DeleteObject(key); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

func (s *ossStorage) publicURL(key string) string {
	host := strings.TrimPrefix(strings.TrimPrefix(s.endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.bucketName, host, key)
}

func keyFromURL(publicURL string) (string, error) {
	u, err := url.Parse(publicURL)
	if err != nil {
		return "", fmt.Errorf("invalid object url: %w", err)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", fmt.Errorf("invalid object url: no key in %q", publicURL)
	}
	return key, nil
}

// ObjectKey returns a fresh collision-resistant key under folder, e.g.
// "members/1712345678901-a1b2c3d4.webp".
func ObjectKey(folder string) string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return fmt.Sprintf("%s/%d-%s.webp", strings.Trim(folder, "/"), time.Now().UnixMilli(), hex.EncodeToString(b))
}
