package service

import (
	"context"
	"io"
)

// AvatarStorage persists uploaded avatar images in a blob store and returns
// the public URL under which the stored object is served.
type AvatarStorage interface {
	Store(ctx context.Context, key string, contentType string, body io.Reader) (url string, err error)
}
