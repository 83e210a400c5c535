package workspacefinder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sistema-nutricional-hospitalar/snh/internal/domain"
)

func TestFindRoot_WalksUpFromWardDir(t *testing.T) {
	for _, marker := range []string{"snh.yaml", "snh.yml"} {
		t.Run(marker, func(t *testing.T) {
			root := filepath.Join(t.TempDir(), "hospital")
			ward := filepath.Join(root, "prescriptions", "ala-b", "leitos")
			if err := os.MkdirAll(ward, 0o755); err != nil {
				t.Fatalf("mkdir: %v", err)
			}
			if err := os.WriteFile(filepath.Join(root, marker), []byte("snh: {}\n"), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}

			got, err := NewFinder().FindRoot(ward)
			if err != nil {
				t.Fatalf("FindRoot returned error: %v", err)
			}
			if got != root {
				t.Fatalf("expected root=%s, got=%s", root, got)
			}
			if ConfigPath(root) != filepath.Join(root, marker) {
				t.Fatalf("unexpected config path %s", ConfigPath(root))
			}
		})
	}
}

func TestFindRoot_IgnoresMarkerDirectory(t *testing.T) {
	tmp := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmp, "snh.yaml"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	_, err := (&Finder{Markers: []string{"snh.yaml"}}).FindRoot(tmp)
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound, got: %v", err)
	}
}

func TestFindRoot_NotFound(t *testing.T) {
	tmp := t.TempDir()
	_ = os.MkdirAll(filepath.Join(tmp, "a", "b"), 0o755)

	f := NewFinder()
	_, err := f.FindRoot(filepath.Join(tmp, "a", "b"))
	if err == nil {
		t.Fatalf("expected error")
	}

	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound, got: %v", err)
	}
}

func TestFindRoot_EmptyStartDir(t *testing.T) {
	_, err := NewFinder().FindRoot("")
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected KindInvalidConfig, got: %v", err)
	}
}

func TestFindRoot_AcceptsFilePath(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ConfigFile), []byte("snh: {}\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	rx := filepath.Join(root, "prescriptions")
	if err := os.MkdirAll(rx, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	file := filepath.Join(rx, "leito-12.yaml")
	if err := os.WriteFile(file, []byte("type: oral\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := NewFinder().FindRoot(file)
	if err != nil {
		t.Fatalf("FindRoot returned error: %v", err)
	}
	if got != root {
		t.Fatalf("expected root=%s, got=%s", root, got)
	}
}
