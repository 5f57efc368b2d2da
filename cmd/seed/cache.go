package main

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/goccy/go-json"
)

const defaultCacheFile = ".seed_cache.json"

// ImportedFile records the content hash of a file that was already imported.
type ImportedFile struct {
	FilePath   string    `json:"file_path"`
	FileHash   string    `json:"file_hash"`
	ImportedAt time.Time `json:"imported_at"`
	Records    int       `json:"records"`
}

type CacheData struct {
	ImportedFiles map[string]ImportedFile `json:"imported_files"` // key: file path
}

// loadCache returns an empty cache when the file does not exist.
func loadCache(cacheFile string) (*CacheData, error) {
	cache := &CacheData{ImportedFiles: make(map[string]ImportedFile)}

	data, err := os.ReadFile(cacheFile)
	if errors.Is(err, os.ErrNotExist) {
		return cache, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}
	if len(data) == 0 {
		return cache, nil
	}

	if err := json.Unmarshal(data, cache); err != nil {
		return nil, fmt.Errorf("failed to parse cache file: %w", err)
	}
	if cache.ImportedFiles == nil {
		cache.ImportedFiles = make(map[string]ImportedFile)
	}
	return cache, nil
}

func saveCache(cacheFile string, cache *CacheData) error {
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache: %w", err)
	}
	if err := os.WriteFile(cacheFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	return nil
}

// unchanged reports whether path was imported before with the same content.
func (c *CacheData) unchanged(path, hash string) bool {
	cached, ok := c.ImportedFiles[path]
	return ok && cached.FileHash == hash
}

func calculateFileHash(filePath string) (string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	hash := sha256.New()
	if _, err := io.Copy(hash, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}
