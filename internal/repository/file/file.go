package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"

	"github.com/whitesvil1-lab/JustCani/internal/repository"
)

// Store реализует repository.Store на локальной файловой системе: один файл на ключ.
// Это ближайший аналог localStorage для терминального клиента
type Store struct {
	dir string
}

// NewStore создаёт файловое хранилище в каталоге dir (каталог создаётся при необходимости)
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("file store: directory is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("file store: create directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// path возвращает путь файла для ключа; ключ экранируется, чтобы не выйти за пределы каталога
func (s *Store) path(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key)+".json")
}

// Get читает файл ключа
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("file store: read %q: %w", key, err)
	}
	return data, nil
}

// Set записывает значение атомарно: временный файл + rename
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("file store: create temp: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("file store: write %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("file store: close %q: %w", key, err)
	}
	if err := os.Rename(tmpName, s.path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("file store: rename %q: %w", key, err)
	}
	return nil
}

// Remove удаляет файл ключа
func (s *Store) Remove(ctx context.Context, key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("file store: remove %q: %w", key, err)
	}
	return nil
}
