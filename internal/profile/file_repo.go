package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mmrzaf/sfseed/internal/domain"
	"gopkg.in/yaml.v3"
)

type Repository interface {
	List() ([]*domain.Profile, error)
	Get(id string) (*domain.Profile, error)
	GetByPath(path string) (*domain.Profile, error)
}

// FileRepository loads run profiles from YAML or JSON files in a directory.
type FileRepository struct {
	baseDir string
}

func NewFileRepository(baseDir string) *FileRepository {
	return &FileRepository{baseDir: baseDir}
}

func (r *FileRepository) List() ([]*domain.Profile, error) {
	if _, err := os.Stat(r.baseDir); os.IsNotExist(err) {
		return []*domain.Profile{}, nil
	}

	entries, err := os.ReadDir(r.baseDir)
	if err != nil {
		return nil, err
	}

	profiles := make([]*domain.Profile, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" && ext != ".json" {
			continue
		}

		p, err := r.loadProfile(filepath.Join(r.baseDir, entry.Name()))
		if err != nil {
			continue
		}
		profiles = append(profiles, p)
	}

	return profiles, nil
}

func (r *FileRepository) Get(id string) (*domain.Profile, error) {
	profiles, err := r.List()
	if err != nil {
		return nil, err
	}
	for _, p := range profiles {
		if p.ID == id || p.Name == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("profile not found: %s", id)
}

// GetByPath loads a profile from an explicit path. Paths that escape the
// base directory are rejected unless the repository has no base directory.
func (r *FileRepository) GetByPath(path string) (*domain.Profile, error) {
	if r.baseDir != "" {
		resolved := path
		if !filepath.IsAbs(resolved) {
			resolved = filepath.Join(r.baseDir, path)
		}
		absBase, err := filepath.Abs(r.baseDir)
		if err != nil {
			return nil, err
		}
		absPath, err := filepath.Abs(resolved)
		if err != nil {
			return nil, err
		}
		if absPath != absBase && !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
			return nil, fmt.Errorf("profile path escapes profiles dir: %s", path)
		}
		return r.loadProfile(absPath)
	}
	return r.loadProfile(path)
}

func (r *FileRepository) loadProfile(path string) (*domain.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var p domain.Profile
	if filepath.Ext(path) == ".json" {
		err = json.Unmarshal(data, &p)
	} else {
		err = yaml.Unmarshal(data, &p)
	}
	if err != nil {
		return nil, err
	}

	if p.ID == "" {
		p.ID = filepath.Base(path)
	}
	return &p, nil
}
