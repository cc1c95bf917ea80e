package repository

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"cinetrack-backend/pkg/tmdb"
)

// GenreCache persists the per-kind genre lists fetched from the catalog
// API. Load returns (nil, nil) when no cached list exists.
type GenreCache interface {
	Load(kind string) ([]tmdb.Genre, error)
	Save(kind string, genres []tmdb.Genre) error
}

// fileGenreCache stores each list as a JSON array of {id, name} on disk.
type fileGenreCache struct {
	dir string
}

// NewFileGenreCache creates a new instance of fileGenreCache
func NewFileGenreCache(dir string) GenreCache {
	return &fileGenreCache{
		dir: dir,
	}
}

func (c *fileGenreCache) path(kind string) string {
	return filepath.Join(c.dir, "genres_"+kind+".json")
}

func (c *fileGenreCache) Load(kind string) ([]tmdb.Genre, error) {
	data, err := os.ReadFile(c.path(kind))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var genres []tmdb.Genre
	if err := json.Unmarshal(data, &genres); err != nil {
		return nil, err
	}
	return genres, nil
}

func (c *fileGenreCache) Save(kind string, genres []tmdb.Genre) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}

	data, err := json.Marshal(genres)
	if err != nil {
		return err
	}
	return os.WriteFile(c.path(kind), data, 0o644)
}
