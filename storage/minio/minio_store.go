package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"

	"github.com/minio/minio-go/v7"

	"github.com/arloliu/vecio/errs"
	"github.com/arloliu/vecio/storage"
)

// Store implements storage.Store for a MinIO bucket.
type Store struct {
	client *minio.Client
	bucket string
	prefix string
}

var _ storage.Store = (*Store)(nil)

// NewStore creates a new MinIO-backed store.
// rootPrefix is prepended to every record name (e.g. "arrays/").
func NewStore(client *minio.Client, bucket, rootPrefix string) *Store {
	return &Store{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(rootPrefix, "/"),
	}
}

func (s *Store) key(name string) string {
	return path.Join(s.prefix, name)
}

func (s *Store) name(key string) string {
	if s.prefix == "" {
		return key
	}

	return strings.TrimPrefix(strings.TrimPrefix(key, s.prefix), "/")
}

func isNotFound(err error) bool {
	code := minio.ToErrorResponse(err).Code

	return code == "NoSuchKey" || code == "NotFound"
}

// Put uploads data as a single object.
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, s.key(name), bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/octet-stream"})
	if err != nil {
		return fmt.Errorf("minio put %s: %w", name, err)
	}

	return nil
}

// Get downloads the object stored under name.
func (s *Store) Get(ctx context.Context, name string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.key(name), minio.GetObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", errs.ErrNotFound, name)
		}

		return nil, err
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", errs.ErrNotFound, name)
		}

		return nil, fmt.Errorf("minio get %s: %w", name, err)
	}

	return data, nil
}

// Delete removes the object stored under name.
func (s *Store) Delete(ctx context.Context, name string) error {
	err := s.client.RemoveObject(ctx, s.bucket, s.key(name), minio.RemoveObjectOptions{})
	if err != nil && !isNotFound(err) {
		return err
	}

	return nil
}

// List returns all record names with the given prefix.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	fullPrefix := s.prefix
	if fullPrefix != "" {
		fullPrefix += "/"
	}
	fullPrefix += prefix

	var names []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    fullPrefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		if name := s.name(obj.Key); name != "" {
			names = append(names, name)
		}
	}

	slices.Sort(names)

	return names, nil
}
