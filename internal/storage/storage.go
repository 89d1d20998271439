package storage

import (
	"context"
	"io"
)

type PutInput struct {
	SellerID    string // uploads are keyed per seller
	Filename    string
	ContentType string
	Size        int64
}

type PutResult struct {
	Key string
	URL string
}

// Storage persists product images. Keys are opaque to callers; URL is what
// gets rendered.
type Storage interface {
	Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error)
	Delete(ctx context.Context, key string) error
}
