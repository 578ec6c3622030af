package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// EvidenceStore accepts an uploaded payment-evidence file and returns a
// retrievable reference, stored verbatim on the payment proof.
type EvidenceStore interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
	Remove(ctx context.Context, ref string) error
}

// LocalStore keeps evidence files on the local filesystem under a single
// directory, renamed to a uuid to avoid collisions and path tricks in
// user-supplied names.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create evidence dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Save(_ context.Context, filename string, r io.Reader) (string, error) {
	ext := filepath.Ext(filepath.Base(filename))
	ref := uuid.NewString() + ext

	dst, err := os.Create(filepath.Join(s.dir, ref))
	if err != nil {
		return "", fmt.Errorf("create evidence file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		return "", fmt.Errorf("write evidence file: %w", err)
	}

	return ref, nil
}

func (s *LocalStore) Remove(_ context.Context, ref string) error {
	// refs are the flat names Save issued; anything else stays out of reach
	if ref != filepath.Base(ref) {
		return fmt.Errorf("invalid evidence ref %q", ref)
	}
	return os.Remove(filepath.Join(s.dir, ref))
}
