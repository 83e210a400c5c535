package workspacefinder

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/sistema-nutricional-hospitalar/snh/internal/domain"
)

// ConfigFiles are the accepted workspace markers, in lookup order.
var ConfigFiles = []string{ConfigFile, "snh.yml"}

// Finder walks up from a directory until it meets a workspace marker.
type Finder struct {
	Markers []string
}

func NewFinder() *Finder {
	return &Finder{Markers: ConfigFiles}
}

func (f *Finder) FindRoot(startDir string) (string, error) {
	if startDir == "" {
		return "", &domain.OpError{
			Op:   "workspacefinder.findroot",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("start directory is empty"),
		}
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", &domain.OpError{Op: "workspacefinder.findroot", Kind: domain.KindExecution, Err: err}
	}
	// A prescription file path starts the search from its directory.
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}

	for dir = filepath.Clean(dir); ; dir = filepath.Dir(dir) {
		if markerIn(dir, f.markers()) != "" {
			return dir, nil
		}
		if filepath.Dir(dir) == dir {
			return "", &domain.OpError{
				Op:   "workspacefinder.findroot",
				Kind: domain.KindNotFound,
				Path: startDir,
				Err:  domain.ErrNotFound,
			}
		}
	}
}

func (f *Finder) markers() []string {
	if len(f.Markers) == 0 {
		return ConfigFiles
	}
	return f.Markers
}

// ConfigPath returns the config file of root. When none exists it returns
// the snh.yaml path so callers report a useful location.
func ConfigPath(root string) string {
	if name := markerIn(root, ConfigFiles); name != "" {
		return filepath.Join(root, name)
	}
	return filepath.Join(root, ConfigFile)
}

func markerIn(dir string, names []string) string {
	for _, name := range names {
		info, err := os.Stat(filepath.Join(dir, name))
		if err == nil && !info.IsDir() {
			return name
		}
	}
	return ""
}
