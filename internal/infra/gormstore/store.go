// Package gormstore persists diets in a relational database through gorm.
// SQLite is the workspace default; PostgreSQL serves shared deployments.
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sistema-nutricional-hospitalar/snh/internal/domain"
	"github.com/sistema-nutricional-hospitalar/snh/internal/ports"
)

type Store struct {
	db *gorm.DB
}

var _ ports.DietRepository = (*Store)(nil)

type options struct {
	log   *slog.Logger
	debug bool
}

type Option func(*options)

// WithLogger routes gorm's SQL trace to l when debug is on.
func WithLogger(l *slog.Logger, debug bool) Option {
	return func(o *options) {
		o.log = l
		o.debug = debug
	}
}

// Open connects using the store config and migrates the schema. A relative
// sqlite DSN is resolved against the workspace root.
func Open(root string, cfg domain.StoreConfig, opts ...Option) (*Store, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case domain.StoreSQLite:
		path := cfg.DSN
		if !filepath.IsAbs(path) && path != ":memory:" {
			path = filepath.Join(root, path)
		}
		if path != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return nil, &domain.OpError{Op: "gormstore.open", Kind: domain.KindExecution, Path: path, Err: err}
			}
		}
		dialector = sqlite.Open(path)
	case domain.StorePostgres:
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, &domain.OpError{
			Op:   "gormstore.open",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("unsupported driver %q: %w", cfg.Driver, domain.ErrInvalidConfig),
		}
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: newLogger(o)})
	if err != nil {
		return nil, &domain.OpError{Op: "gormstore.open", Kind: domain.KindExecution, Err: err}
	}
	return New(db)
}

// New wraps an existing connection and migrates the schema.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&dietRow{}, &itemRow{}, &restrictionRow{}); err != nil {
		return nil, &domain.OpError{Op: "gormstore.migrate", Kind: domain.KindExecution, Err: err}
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Save upserts the diet row and replaces its items and restrictions.
func (s *Store) Save(ctx context.Context, snap domain.Snapshot) error {
	row, err := toRow(snap)
	if err != nil {
		return &domain.OpError{Op: "gormstore.save", Kind: domain.KindExecution, Path: snap.ID, Err: err}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(&row).Error; err != nil {
			return err
		}
		if err := tx.Where("diet_id = ?", row.ID).Delete(&itemRow{}).Error; err != nil {
			return err
		}
		if err := tx.Where("diet_id = ?", row.ID).Delete(&restrictionRow{}).Error; err != nil {
			return err
		}
		if len(row.Items) > 0 {
			if err := tx.Create(&row.Items).Error; err != nil {
				return err
			}
		}
		if len(row.Restrictions) > 0 {
			if err := tx.Create(&row.Restrictions).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return &domain.OpError{Op: "gormstore.save", Kind: domain.KindExecution, Path: snap.ID, Err: err}
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (domain.Snapshot, error) {
	var row dietRow
	err := s.preload(s.db.WithContext(ctx)).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Snapshot{}, &domain.OpError{Op: "gormstore.get", Kind: domain.KindNotFound, Path: id, Err: domain.ErrNotFound}
	}
	if err != nil {
		return domain.Snapshot{}, &domain.OpError{Op: "gormstore.get", Kind: domain.KindExecution, Path: id, Err: err}
	}
	return s.decode(row)
}

func (s *Store) List(ctx context.Context, f ports.ListFilter) ([]domain.Snapshot, error) {
	q := s.preload(s.db.WithContext(ctx))
	if f.ActiveOnly {
		q = q.Where("active = ?", true)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}

	var rows []dietRow
	if err := q.Order("created_at, id").Find(&rows).Error; err != nil {
		return nil, &domain.OpError{Op: "gormstore.list", Kind: domain.KindExecution, Err: err}
	}

	out := make([]domain.Snapshot, 0, len(rows))
	for _, r := range rows {
		snap, err := s.decode(r)
		if err != nil {
			return nil, err
		}
		out = append(out, snap)
	}
	return out, nil
}

func (s *Store) preload(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("name") }).
		Preload("Restrictions", func(db *gorm.DB) *gorm.DB { return db.Order("tag") })
}

func (s *Store) decode(r dietRow) (domain.Snapshot, error) {
	snap, err := r.snapshot()
	if err != nil {
		return domain.Snapshot{}, &domain.OpError{Op: "gormstore.decode", Kind: domain.KindInvalidConfig, Path: r.ID, Err: err}
	}
	return snap, nil
}

type slogWriter struct {
	log *slog.Logger
}

func (w slogWriter) Printf(format string, args ...any) {
	w.log.Debug("gorm", "sql", fmt.Sprintf(format, args...))
}

func newLogger(o options) gormlogger.Interface {
	if o.log == nil || !o.debug {
		return gormlogger.Default.LogMode(gormlogger.Silent)
	}
	return gormlogger.New(slogWriter{log: o.log}, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormlogger.Info,
		IgnoreRecordNotFoundError: true,
	})
}
