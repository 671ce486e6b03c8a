package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const evidenceDir = "evidence"

// EvidenceStorage keeps report evidence files and hands back the public URL
// stored on the report row.
type EvidenceStorage interface {
	Save(ctx context.Context, ext string, content io.Reader) (string, error)
	// Delete removes the file behind url. A file that is already gone counts
	// as deleted so retries converge.
	Delete(ctx context.Context, url string) error
}

// LocalStorage writes under <dir>/evidence and serves from <urlPrefix>/evidence.
type LocalStorage struct {
	dir       string
	urlPrefix string
}

func NewLocalStorage(baseDir, urlPrefix string) *LocalStorage {
	return &LocalStorage{
		dir:       filepath.Join(baseDir, evidenceDir),
		urlPrefix: "/" + strings.Trim(urlPrefix, "/"),
	}
}

func (s *LocalStorage) Save(ctx context.Context, ext string, content io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create evidence dir: %w", err)
	}
	name := uuid.NewString() + strings.ToLower(ext)
	full := filepath.Join(s.dir, name)

	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create evidence file: %w", err)
	}
	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		os.Remove(full)
		return "", fmt.Errorf("write evidence file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(full)
		return "", fmt.Errorf("close evidence file: %w", err)
	}
	return path.Join(s.urlPrefix, evidenceDir, name), nil
}

func (s *LocalStorage) Delete(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name, err := s.fileName(url)
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		log.Printf("[WARN] evidence %s already removed", url)
		return nil
	}
	return err
}

func (s *LocalStorage) fileName(url string) (string, error) {
	prefix := path.Join(s.urlPrefix, evidenceDir) + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", fmt.Errorf("evidence url %q outside %s", url, prefix)
	}
	name := strings.TrimPrefix(url, prefix)
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid evidence url %q", url)
	}
	return name, nil
}
