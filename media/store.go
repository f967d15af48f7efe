package media

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Store saves and deletes frame assets. Paths it returns are relative to the
// storage root and always use forward slashes.
type Store interface {
	Save(assetType AssetType, filename string, data io.Reader) (string, error)
	Delete(relativePath string) error
}

// LocalStorage keeps assets on the local filesystem under MEDIA_STORAGE_PATH.
type LocalStorage struct {
	root string
	dirs map[AssetType]string
}

func NewLocalStorage(basePath string, subDirs map[AssetType]string) (*LocalStorage, error) {
	root, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("invalid base storage path '%s': %w", basePath, err)
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base storage directory '%s': %w", root, err)
	}

	dirs := make(map[AssetType]string, len(subDirs))
	for assetType, subDir := range subDirs {
		dir := filepath.Join(root, subDir)
		if !within(root, dir) {
			return nil, fmt.Errorf("asset directory '%s' for %s resolves outside '%s'", subDir, assetType, root)
		}
		dirs[assetType] = dir
	}

	log.Printf("media: Frame storage rooted at %s", root)
	return &LocalStorage{root: root, dirs: dirs}, nil
}

func within(root, path string) bool {
	return strings.HasPrefix(filepath.Clean(path), root+string(filepath.Separator))
}

func (ls *LocalStorage) Save(assetType AssetType, filename string, data io.Reader) (string, error) {
	dir, ok := ls.dirs[assetType]
	if !ok {
		return "", fmt.Errorf("asset type '%s' is not configured", assetType)
	}
	if filename == "" || filename != filepath.Base(filename) {
		return "", fmt.Errorf("invalid filename '%s'", filename)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to ensure directory '%s': %w", dir, err)
	}

	dest := filepath.Join(dir, filename)
	out, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("failed to create '%s': %w", dest, err)
	}
	if _, err := io.Copy(out, data); err != nil {
		out.Close()
		os.Remove(dest)
		return "", fmt.Errorf("failed to write '%s': %w", dest, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("failed to close '%s': %w", dest, err)
	}

	rel, err := filepath.Rel(ls.root, dest)
	if err != nil {
		return "", fmt.Errorf("internal error calculating relative path: %w", err)
	}
	return filepath.ToSlash(rel), nil
}

// Delete removes an asset. A file that is already gone is not an error.
func (ls *LocalStorage) Delete(relativePath string) error {
	full := filepath.Join(ls.root, filepath.FromSlash(relativePath))
	if !within(ls.root, full) {
		return fmt.Errorf("invalid path: access denied for '%s'", relativePath)
	}

	err := os.Remove(full)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete asset '%s': %w", relativePath, err)
	}
	if err == nil {
		log.Printf("media: Deleted %s", relativePath)
	}
	return nil
}
