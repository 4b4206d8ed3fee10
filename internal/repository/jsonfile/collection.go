package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"vendordesk/internal/repository"
)

// collection is one JSON array file. Every operation reads the whole file and
// every mutation rewrites it; callers hold the store lock around read-modify-write.
type collection[T any] struct {
	path  string
	getID func(*T) int64
	setID func(*T, int64)
}

func (c collection[T]) name() string {
	return filepath.Base(c.path)
}

func (c collection[T]) all() ([]T, error) {
	b, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.name(), err)
	}
	items := []T{}
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("parse %s: %w", c.name(), err)
	}
	return items, nil
}

func (c collection[T]) save(items []T) error {
	if items == nil {
		items = []T{}
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.name(), err)
	}
	return writeFileAtomic(c.path, b)
}

func (c collection[T]) nextID(items []T) int64 {
	ids := make([]int64, len(items))
	for i := range items {
		ids[i] = c.getID(&items[i])
	}
	return repository.NextID(ids)
}

func (c collection[T]) indexOf(items []T, id int64) int {
	for i := range items {
		if c.getID(&items[i]) == id {
			return i
		}
	}
	return -1
}

func (c collection[T]) find(id int64) (*T, error) {
	items, err := c.all()
	if err != nil {
		return nil, err
	}
	i := c.indexOf(items, id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	out := items[i]
	return &out, nil
}

func (c collection[T]) insert(v T) (*T, error) {
	items, err := c.all()
	if err != nil {
		return nil, err
	}
	c.setID(&v, c.nextID(items))
	items = append(items, v)
	if err := c.save(items); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c collection[T]) replace(v T) error {
	items, err := c.all()
	if err != nil {
		return err
	}
	i := c.indexOf(items, c.getID(&v))
	if i < 0 {
		return repository.ErrNotFound
	}
	items[i] = v
	return c.save(items)
}

func (c collection[T]) remove(id int64) error {
	items, err := c.all()
	if err != nil {
		return err
	}
	i := c.indexOf(items, id)
	if i < 0 {
		return repository.ErrNotFound
	}
	items = append(items[:i], items[i+1:]...)
	return c.save(items)
}

// writeFileAtomic replaces path with data through a temp file and rename,
// so readers never observe a half-written array.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", filepath.Base(path), err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
