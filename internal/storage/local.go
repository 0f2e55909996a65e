package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if dir == "" {
		dir = "outputs"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Dir() string {
	return s.dir
}

// SplitName returns the sanitized base name and extension of an upload,
// falling back to "audio" / ".wav" when the client sent nothing usable.
// Leading dots are stripped so names derived from the base (uploads and
// generated documents) never look like dotfiles and always pass sanitizeName.
func SplitName(filename string) (base, ext string) {
	clean := filepath.Base(filename)
	ext = strings.ToLower(filepath.Ext(clean))
	base = strings.TrimSuffix(clean, filepath.Ext(clean))
	base = strings.TrimLeft(base, ".")
	if base == "" || base == string(filepath.Separator) {
		base = "audio"
	}
	if ext == "" {
		ext = ".wav"
	}
	return base, ext
}

func (s *LocalStore) SaveUpload(filename string, r io.Reader) (string, error) {
	base, ext := SplitName(filename)
	uid := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	path := filepath.Join(s.dir, fmt.Sprintf("%s_%s%s", base, uid, ext))

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write upload: %w", err)
	}
	return path, nil
}

// DocumentName builds the downloadable name for a generated document.
func DocumentName(sourceFilename string, now time.Time) string {
	base, _ := SplitName(sourceFilename)
	return fmt.Sprintf("%s_%s.docx", base, now.Format("20060102_150405"))
}

func (s *LocalStore) SaveDocument(name string, data []byte) error {
	clean, err := sanitizeName(name)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, clean), data, 0o644)
}

func (s *LocalStore) Open(name string) (*os.File, error) {
	clean, err := sanitizeName(name)
	if err != nil {
		return nil, ErrNotFound
	}

	f, err := os.Open(filepath.Join(s.dir, clean))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

func sanitizeName(name string) (string, error) {
	clean := filepath.Base(name)
	if clean == "" || clean == "." || clean == ".." || strings.HasPrefix(clean, ".") {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	if clean != name {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	return clean, nil
}
