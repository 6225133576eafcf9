package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/slog"

	"notive/internal/domain/entry"
)

const ext = ".md"

// Store keeps one markdown file per date key:
// {root}/{owner}/{dateKey}.md, or {root}/{dateKey}.md when not scoped by owner.
type Store struct {
	root   string
	scoped bool
	log    *slog.Logger
}

func New(root string, scoped bool, log *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create entries dir: %w", err)
	}

	return &Store{
		root:   root,
		scoped: scoped,
		log:    log.With("component", "entry_filestore"),
	}, nil
}

// Ping проверяет, что корневой каталог доступен.
func (s *Store) Ping(_ context.Context) error {
	info, err := os.Stat(s.root)
	if err != nil {
		return fmt.Errorf("stat entries dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("entries dir %s is not a directory", s.root)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, owner, dateKey string) (entry.Entry, error) {
	e := entry.Entry{Owner: owner, DateKey: dateKey}
	if err := ctx.Err(); err != nil {
		return e, err
	}

	path := s.path(owner, dateKey)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return e, nil
		}
		return e, fmt.Errorf("read %s: %w", path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return e, fmt.Errorf("stat %s: %w", path, err)
	}

	e.Content = string(data)
	e.LastModified = info.ModTime()

	return e, nil
}

// Put пишет во временный файл и переименовывает его, читатель не увидит недописанный файл.
func (s *Store) Put(ctx context.Context, owner, dateKey, content string) (entry.Entry, error) {
	e := entry.Entry{Owner: owner, DateKey: dateKey, Content: content}
	if err := ctx.Err(); err != nil {
		return e, err
	}

	dir := s.dir(owner)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return e, fmt.Errorf("create owner dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+dateKey+".*.tmp")
	if err != nil {
		return e, fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return e, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return e, fmt.Errorf("close temp file: %w", err)
	}

	path := s.path(owner, dateKey)
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return e, fmt.Errorf("rename into %s: %w", path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return e, fmt.Errorf("stat %s: %w", path, err)
	}
	e.LastModified = info.ModTime()

	s.log.Debug("entry file written", "path", path, "size", len(content))

	return e, nil
}

func (s *Store) List(ctx context.Context, owner string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	items, err := os.ReadDir(s.dir(owner))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read entries dir: %w", err)
	}

	var keys []string
	for _, it := range items {
		name := it.Name()
		if it.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ext) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, ext))
	}

	return keys, nil
}

func (s *Store) dir(owner string) string {
	if s.scoped {
		return filepath.Join(s.root, owner)
	}
	return s.root
}

func (s *Store) path(owner, dateKey string) string {
	return filepath.Join(s.dir(owner), dateKey+ext)
}
