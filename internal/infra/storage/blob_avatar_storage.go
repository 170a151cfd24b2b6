// Package storage implements avatar image persistence on a blob bucket.
package storage

import (
	"context"
	"io"
	"strings"

	"contacts/config"
	"contacts/internal/domain/lifecycle"
	"contacts/internal/domain/service"
	"contacts/internal/errors"

	"go.uber.org/fx"
	"gocloud.dev/blob"

	// Registered bucket backends selectable via the bucket URL scheme.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
)

// blobAvatarStorage implements service.AvatarStorage on a gocloud blob bucket.
// The bucket URL decides the backend (file://, s3://, gs://) without any code
// change here.
type blobAvatarStorage struct {
	bucket        *blob.Bucket
	publicBaseURL string
}

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
}

// NewAvatarStorage opens the configured bucket and manages its lifetime.
func NewAvatarStorage(params Params) (service.AvatarStorage, error) {
	avatarCfg := params.Config.Avatar
	if avatarCfg == nil {
		return nil, errors.New("avatar config is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	bucket, err := blob.OpenBucket(ctx, avatarCfg.BucketURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open avatar bucket")
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	return &blobAvatarStorage{
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(avatarCfg.PublicBaseURL, "/"),
	}, nil
}

// Store writes the image under the given key and returns its public URL.
func (s *blobAvatarStorage) Store(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	writer, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to open bucket writer")
	}

	if _, err := io.Copy(writer, body); err != nil {
		// Close aborts the partial write where the backend supports it.
		_ = writer.Close()

		return "", errors.Wrap(err, "failed to write avatar object")
	}

	if err := writer.Close(); err != nil {
		return "", errors.Wrap(err, "failed to finalize avatar object")
	}

	return s.publicBaseURL + "/" + key, nil
}
