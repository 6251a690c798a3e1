package file

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage writes objects below baseDir. Writes go to a temporary file
// that is renamed into place, so readers never observe a partial object.
type LocalStorage struct {
	baseDir string
	baseURL string
}

// NewLocalStorage resolves baseDir to an absolute path and creates it.
func NewLocalStorage(baseDir, baseURL string) (*LocalStorage, error) {
	if baseDir == "" {
		return nil, ErrInvalidConfig
	}

	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPrepareDir, err)
	}
	if err := os.MkdirAll(absBaseDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPrepareDir, err)
	}

	return &LocalStorage{baseDir: absBaseDir, baseURL: baseURL}, nil
}

func (s *LocalStorage) Put(ctx context.Context, path string, content io.Reader, contentType string) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if content == nil {
		return nil, ErrNilReader
	}

	key, err := cleanKey(path)
	if err != nil {
		return nil, err
	}
	absPath, err := s.resolvePath(key)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(absPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPrepareDir, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWrite, err)
	}
	tmpName := tmp.Name()

	written, copyErr := io.Copy(tmp, content)
	closeErr := tmp.Close()
	if copyErr != nil || closeErr != nil {
		_ = os.Remove(tmpName)
		return nil, fmt.Errorf("%w: %v", ErrWrite, firstErr(copyErr, closeErr))
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return nil, fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := os.Rename(tmpName, absPath); err != nil {
		_ = os.Remove(tmpName)
		return nil, fmt.Errorf("%w: %v", ErrWrite, err)
	}

	return &File{
		Path:        key,
		Size:        written,
		ContentType: contentType,
		URL:         s.URL(key),
	}, nil
}

func (s *LocalStorage) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key, err := cleanKey(path)
	if err != nil {
		return err
	}
	absPath, err := s.resolvePath(key)
	if err != nil {
		return err
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return fmt.Errorf("%w: %v", ErrRemove, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s", ErrIsDir, key)
	}

	if err := os.Remove(absPath); err != nil {
		return fmt.Errorf("%w: %v", ErrRemove, err)
	}
	return nil
}

func (s *LocalStorage) Exists(ctx context.Context, path string) bool {
	if ctx.Err() != nil {
		return false
	}
	key, err := cleanKey(path)
	if err != nil {
		return false
	}
	absPath, err := s.resolvePath(key)
	if err != nil {
		return false
	}
	_, err = os.Stat(absPath)
	return err == nil
}

func (s *LocalStorage) URL(path string) string {
	return joinURL(s.baseURL, strings.TrimPrefix(filepath.ToSlash(path), "/"))
}

// resolvePath keeps every resolved path inside baseDir.
func (s *LocalStorage) resolvePath(key string) (string, error) {
	absPath, err := filepath.Abs(filepath.Join(s.baseDir, filepath.FromSlash(key)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPath, err)
	}
	if !strings.HasPrefix(absPath, s.baseDir+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, key)
	}
	return absPath, nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
