package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalPutKeysUnderSeller(t *testing.T) {
	dir := t.TempDir()
	l := NewLocal(dir, "/uploads")

	res, err := l.Put(context.Background(), strings.NewReader("img-bytes"), PutInput{
		SellerID: "seller-1",
		Filename: "photo.JPG",
	})
	if err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if !strings.HasPrefix(res.Key, "seller-1/") || !strings.HasSuffix(res.Key, ".jpg") {
		t.Fatalf("expected seller-scoped key, got %q", res.Key)
	}
	if res.URL != "/uploads/"+res.Key {
		t.Fatalf("unexpected url: %q", res.URL)
	}

	b, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(res.Key)))
	if err != nil || string(b) != "img-bytes" {
		t.Fatalf("stored file mismatch: %q err=%v", b, err)
	}

	if err := l.Delete(context.Background(), res.Key); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(res.Key))); !os.IsNotExist(err) {
		t.Fatalf("file should be gone, stat err=%v", err)
	}
}

func TestLocalDeleteRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	outside := filepath.Join(dir, "victim.txt")
	if err := os.WriteFile(outside, []byte("keep"), 0o644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	l := NewLocal(filepath.Join(dir, "uploads"), "/uploads")
	_ = l.Delete(context.Background(), "../victim.txt")

	if _, err := os.Stat(outside); err != nil {
		t.Fatalf("traversal key must not escape the base dir: %v", err)
	}
}

func TestSafeExtWhitelist(t *testing.T) {
	cases := map[string]string{
		"a.PNG":    ".png",
		"b.jpeg":   ".jpeg",
		"evil.php": "",
		"noext":    "",
	}
	for in, want := range cases {
		if got := safeExt(in); got != want {
			t.Errorf("safeExt(%q) = %q, want %q", in, got, want)
		}
	}
}
