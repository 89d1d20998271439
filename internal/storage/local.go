package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/Mwvndva/byblos/internal/shared/apperr"
)

type Local struct {
	BaseDir   string
	URLPrefix string
}

func NewLocal(baseDir, urlPrefix string) *Local {
	return &Local{BaseDir: baseDir, URLPrefix: urlPrefix}
}

func (l *Local) Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error) {
	_ = ctx

	key := buildKey(in)
	dstPath := filepath.Join(l.BaseDir, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return PutResult{}, apperr.Wrap(err)
	}

	f, err := os.OpenFile(dstPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return PutResult{}, apperr.Wrap(err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return PutResult{}, apperr.Wrap(err)
	}

	url := strings.TrimRight(l.URLPrefix, "/") + "/" + key
	return PutResult{Key: key, URL: url}, nil
}

func (l *Local) Delete(ctx context.Context, key string) error {
	_ = ctx
	key = path.Clean("/" + key)[1:] // keys are slash paths; no traversal
	if key == "" {
		return nil
	}
	if err := os.Remove(filepath.Join(l.BaseDir, filepath.FromSlash(key))); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return apperr.Wrap(err)
	}
	return nil
}

// buildKey namespaces every upload under its seller so one shop's files
// never collide with or enumerate another's.
func buildKey(in PutInput) string {
	name := uuid.NewString() + safeExt(in.Filename)
	if in.SellerID == "" {
		return name
	}
	return in.SellerID + "/" + name
}

// safeExt whitelists image extensions; anything else is stored without one.
func safeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp", ".gif":
		return ext
	default:
		return ""
	}
}

func (l *Local) String() string { return fmt.Sprintf("local(%s)", l.BaseDir) }
