// Package jsonstore keeps one JSON document per diet under the workspace
// data directory. It needs no database and suits single-user workspaces.
package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sistema-nutricional-hospitalar/snh/internal/domain"
	"github.com/sistema-nutricional-hospitalar/snh/internal/ports"
)

const (
	defaultDataDir = "data"
	dietsDir       = "diets"
	indexFile      = "index.jsonl"
)

type Store struct {
	mu         sync.Mutex
	dir        string
	writeIndex bool
	now        func() time.Time
}

type Option func(*Store)

// WithIndex enables an append-only JSONL history: <data>/diets/index.jsonl
func WithIndex(enabled bool) Option {
	return func(s *Store) { s.writeIndex = enabled }
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(root string, cfg domain.Config, opts ...Option) *Store {
	dataDir := cfg.Paths.DataDir
	if strings.TrimSpace(dataDir) == "" {
		dataDir = defaultDataDir
	}

	s := &Store{
		dir: filepath.Join(root, dataDir, dietsDir),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.DietRepository = (*Store)(nil)

func (s *Store) Save(ctx context.Context, snap domain.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name, err := fileName(snap.ID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return &domain.OpError{Op: "jsonstore.mkdir", Kind: domain.KindExecution, Path: s.dir, Err: err}
	}

	path := filepath.Join(s.dir, name)
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return &domain.OpError{Op: "jsonstore.marshal", Kind: domain.KindExecution, Path: path, Err: err}
	}

	// Atomic-ish write: tmp then rename.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return &domain.OpError{Op: "jsonstore.write", Kind: domain.KindExecution, Path: tmp, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return &domain.OpError{Op: "jsonstore.rename", Kind: domain.KindExecution, Path: path, Err: err}
	}

	if s.writeIndex {
		if err := s.appendIndex(name, snap); err != nil {
			return &domain.OpError{
				Op:   "jsonstore.index",
				Kind: domain.KindExecution,
				Path: filepath.Join(s.dir, indexFile),
				Err:  err,
			}
		}
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.Snapshot{}, err
	}
	name, err := fileName(id)
	if err != nil {
		return domain.Snapshot{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, name)
	snap, err := readSnapshot(path)
	if err != nil {
		return domain.Snapshot{}, err
	}
	// slugs may collide; the document is authoritative
	if snap.ID != id {
		return domain.Snapshot{}, notFound(id)
	}
	return snap, nil
}

// List returns matching diets ordered by creation time, then id.
func (s *Store) List(ctx context.Context, f ports.ListFilter) ([]domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return []domain.Snapshot{}, nil
	}
	if err != nil {
		return nil, &domain.OpError{Op: "jsonstore.list", Kind: domain.KindExecution, Path: s.dir, Err: err}
	}

	out := []domain.Snapshot{}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		snap, err := readSnapshot(filepath.Join(s.dir, e.Name()))
		if err != nil {
			return nil, err
		}
		if f.Match(snap) {
			out = append(out, snap)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func readSnapshot(path string) (domain.Snapshot, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return domain.Snapshot{}, &domain.OpError{Op: "jsonstore.get", Kind: domain.KindNotFound, Path: path, Err: domain.ErrNotFound}
	}
	if err != nil {
		return domain.Snapshot{}, &domain.OpError{Op: "jsonstore.read", Kind: domain.KindExecution, Path: path, Err: err}
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return domain.Snapshot{}, &domain.OpError{Op: "jsonstore.decode", Kind: domain.KindInvalidConfig, Path: path, Err: err}
	}
	return snap, nil
}

func (s *Store) appendIndex(file string, snap domain.Snapshot) error {
	type idx struct {
		ID        string          `json:"id"`
		File      string          `json:"file"`
		Type      domain.DietType `json:"type"`
		Active    bool            `json:"active"`
		UpdatedAt time.Time       `json:"updated_at"`
		SavedAt   time.Time       `json:"saved_at"`
	}
	line, err := json.Marshal(idx{
		ID:        snap.ID,
		File:      file,
		Type:      snap.Type,
		Active:    snap.Active,
		UpdatedAt: snap.UpdatedAt,
		SavedAt:   s.now().UTC(),
	})
	if err != nil {
		return err
	}

	f, err := os.OpenFile(filepath.Join(s.dir, indexFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(append(line, '\n'))
	return err
}

func notFound(id string) error {
	return &domain.OpError{Op: "jsonstore.get", Kind: domain.KindNotFound, Path: id, Err: domain.ErrNotFound}
}

func fileName(id string) (string, error) {
	slug := slugify(id)
	if slug == "" {
		return "", &domain.OpError{
			Op:   "jsonstore.id",
			Kind: domain.KindValidation,
			Path: id,
			Err:  fmt.Errorf("diet id %q has no usable characters: %w", id, domain.ErrValidation),
		}
	}
	return slug + ".json", nil
}

// slugify produces a safe filename component.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	b.Grow(len(s))

	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
