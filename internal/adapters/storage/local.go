package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const metadataSuffix = ".meta.json"

// LocalFileStorage implements FileStorage on the local filesystem. Custom
// metadata is kept in a JSON file next to each stored file.
type LocalFileStorage struct {
	basePath string
}

// NewLocalFileStorage creates the base directory if needed
func NewLocalFileStorage(basePath string) (*LocalFileStorage, error) {
	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, NewStorageError("NewLocalFileStorage", "", err, false)
	}

	if err := os.MkdirAll(absPath, 0755); err != nil {
		return nil, NewStorageError("NewLocalFileStorage", "", err, false)
	}

	return &LocalFileStorage{basePath: absPath}, nil
}

// Store implements FileStorage.Store. The file is written to a temporary
// path and renamed so readers never see a partial file.
func (l *LocalFileStorage) Store(ctx context.Context, key string, data []byte, opts *StoreOptions) error {
	path, err := l.resolve(key)
	if err != nil {
		return NewStorageError("Store", key, err, false)
	}

	if opts == nil {
		opts = &StoreOptions{}
	}

	if !opts.Overwrite {
		if _, err := os.Stat(path); err == nil {
			return NewStorageError("Store", key, ErrFileAlreadyExists, false)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return NewStorageError("Store", key, err, true)
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return NewStorageError("Store", key, err, true)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return NewStorageError("Store", key, err, true)
	}

	meta := sidecar{ContentType: opts.ContentType, Metadata: opts.Metadata}
	if meta.ContentType != "" || len(meta.Metadata) > 0 {
		raw, err := json.Marshal(meta)
		if err != nil {
			return NewStorageError("Store", key, err, false)
		}
		if err := os.WriteFile(path+metadataSuffix, raw, 0644); err != nil {
			return NewStorageError("Store", key, err, true)
		}
	}

	return nil
}

// Retrieve implements FileStorage.Retrieve
func (l *LocalFileStorage) Retrieve(ctx context.Context, key string) ([]byte, error) {
	path, err := l.resolve(key)
	if err != nil {
		return nil, NewStorageError("Retrieve", key, err, false)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, NewStorageError("Retrieve", key, ErrFileNotFound, false)
		}
		return nil, NewStorageError("Retrieve", key, err, true)
	}

	return data, nil
}

// Delete implements FileStorage.Delete
func (l *LocalFileStorage) Delete(ctx context.Context, key string) error {
	path, err := l.resolve(key)
	if err != nil {
		return NewStorageError("Delete", key, err, false)
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewStorageError("Delete", key, ErrFileNotFound, false)
		}
		return NewStorageError("Delete", key, err, true)
	}

	os.Remove(path + metadataSuffix)
	return nil
}

// Exists implements FileStorage.Exists
func (l *LocalFileStorage) Exists(ctx context.Context, key string) (bool, error) {
	path, err := l.resolve(key)
	if err != nil {
		return false, NewStorageError("Exists", key, err, false)
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, NewStorageError("Exists", key, err, true)
	}
	return true, nil
}

// GetMetadata implements FileStorage.GetMetadata
func (l *LocalFileStorage) GetMetadata(ctx context.Context, key string) (*FileMetadata, error) {
	path, err := l.resolve(key)
	if err != nil {
		return nil, NewStorageError("GetMetadata", key, err, false)
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, NewStorageError("GetMetadata", key, ErrFileNotFound, false)
		}
		return nil, NewStorageError("GetMetadata", key, err, true)
	}

	meta := l.describe(key, path, info)
	return &meta, nil
}

// List implements FileStorage.List
func (l *LocalFileStorage) List(ctx context.Context, opts *ListOptions) ([]FileMetadata, error) {
	if opts == nil {
		opts = &ListOptions{}
	}

	files := []FileMetadata{}
	err := filepath.WalkDir(l.basePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasSuffix(path, metadataSuffix) || strings.HasSuffix(path, ".tmp") {
			return nil
		}

		rel, err := filepath.Rel(l.basePath, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if opts.Prefix != "" && !strings.HasPrefix(key, opts.Prefix) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		files = append(files, l.describe(key, path, info))
		return nil
	})
	if err != nil {
		return nil, NewStorageError("List", opts.Prefix, err, true)
	}

	sort.SliceStable(files, func(i, j int) bool {
		if files[i].LastModified.Equal(files[j].LastModified) {
			return files[i].Key > files[j].Key
		}
		return files[i].LastModified.After(files[j].LastModified)
	})

	if opts.MaxResults > 0 && len(files) > opts.MaxResults {
		files = files[:opts.MaxResults]
	}
	return files, nil
}

// Close implements FileStorage.Close
func (l *LocalFileStorage) Close() error {
	return nil
}

type sidecar struct {
	ContentType string            `json:"content_type,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

func (l *LocalFileStorage) describe(key, path string, info fs.FileInfo) FileMetadata {
	meta := FileMetadata{
		Key:          key,
		Size:         info.Size(),
		LastModified: info.ModTime(),
	}

	if raw, err := os.ReadFile(path + metadataSuffix); err == nil {
		var sc sidecar
		if json.Unmarshal(raw, &sc) == nil {
			meta.ContentType = sc.ContentType
			meta.Metadata = sc.Metadata
		}
	}

	if meta.ContentType == "" {
		meta.ContentType = mime.TypeByExtension(filepath.Ext(key))
	}
	if meta.ContentType == "" {
		meta.ContentType = "application/octet-stream"
	}
	return meta
}

// resolve maps key to a path inside basePath, rejecting traversal
func (l *LocalFileStorage) resolve(key string) (string, error) {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "..") || strings.HasSuffix(key, metadataSuffix) {
		return "", ErrInvalidKey
	}
	return filepath.Join(l.basePath, filepath.FromSlash(key)), nil
}
