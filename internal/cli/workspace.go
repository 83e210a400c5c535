package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/sistema-nutricional-hospitalar/snh/internal/domain"
	"github.com/sistema-nutricional-hospitalar/snh/internal/infra/gormstore"
	"github.com/sistema-nutricional-hospitalar/snh/internal/infra/jsonstore"
	"github.com/sistema-nutricional-hospitalar/snh/internal/infra/logger"
	"github.com/sistema-nutricional-hospitalar/snh/internal/infra/metrics"
	"github.com/sistema-nutricional-hospitalar/snh/internal/infra/notifier"
	"github.com/sistema-nutricional-hospitalar/snh/internal/infra/workspacefinder"
	"github.com/sistema-nutricional-hospitalar/snh/internal/infra/yamlprescription"
	"github.com/sistema-nutricional-hospitalar/snh/internal/ports"
	"github.com/sistema-nutricional-hospitalar/snh/internal/usecase"
	"github.com/sistema-nutricional-hospitalar/snh/internal/usecase/notify"
)

type workspaceCtx struct {
	root string
	cfg  domain.Config
	log  *slog.Logger

	prescriptions *yamlprescription.Loader

	repo     ports.DietRepository
	notifier *notify.Service
	recorder *metrics.Recorder

	closers []func() error
}

func loadWorkspace(workspaceFlag string, debug bool) (*workspaceCtx, error) {
	root, err := resolveWorkspaceRoot(workspaceFlag)
	if err != nil {
		return nil, err
	}

	cfg, err := workspacefinder.LoadConfig(root)
	if err != nil {
		return nil, err
	}
	debug = debug || cfg.Logging.Debug

	ws := &workspaceCtx{root: root, cfg: cfg}

	cleanup, err := logger.Setup(logger.Config{Root: root, Debug: debug})
	if err == nil && cleanup != nil {
		ws.closers = append(ws.closers, cleanup)
	}
	ws.log = logger.Component("cli")

	ws.prescriptions = yamlprescription.NewLoader(
		yamlprescription.WithPrescriptionsDir(cfg.Paths.PrescriptionsDir),
	)

	repo, closeRepo, err := openStore(root, cfg, logger.Component("store"), debug)
	if err != nil {
		ws.close()
		return nil, err
	}
	ws.repo = repo
	if closeRepo != nil {
		ws.closers = append(ws.closers, closeRepo)
	}

	svc, err := notifier.Build(cfg.Notifications, notifier.WithLogger(logger.Component("notify")))
	if err != nil {
		ws.close()
		return nil, err
	}
	ws.notifier = svc

	if cfg.Metrics.Enabled {
		ws.recorder = metrics.NewRecorder()
	}

	ws.log.Debug("workspace.loaded",
		"root", root,
		"store", cfg.Store.Driver,
		"channels", svc.Channels(),
		"metrics", cfg.Metrics.Enabled,
	)
	return ws, nil
}

// openStore picks the DietRepository backend named by store.driver.
func openStore(root string, cfg domain.Config, log *slog.Logger, debug bool) (ports.DietRepository, func() error, error) {
	switch cfg.Store.Driver {
	case domain.StoreJSON:
		return jsonstore.New(root, cfg, jsonstore.WithIndex(true)), nil, nil
	case domain.StoreSQLite, domain.StorePostgres:
		s, err := gormstore.Open(root, cfg.Store, gormstore.WithLogger(log, debug))
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return nil, nil, &domain.OpError{
			Op:   "cli.openstore",
			Kind: domain.KindInvalidConfig,
			Path: cfg.Store.Driver,
			Err:  domain.ErrInvalidConfig,
		}
	}
}

// options wires the workspace collaborators into the diet use cases.
func (ws *workspaceCtx) options() []usecase.Option {
	opts := []usecase.Option{
		usecase.WithNotifier(ws.notifier),
		usecase.WithLogger(logger.Component("usecase")),
	}
	if ws.recorder != nil {
		opts = append(opts, usecase.WithMetrics(ws.recorder))
	}
	return opts
}

func (ws *workspaceCtx) close() {
	for i := len(ws.closers) - 1; i >= 0; i-- {
		_ = ws.closers[i]()
	}
	ws.closers = nil
}

func resolveWorkspaceRoot(workspaceFlag string) (string, error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	locator := workspacefinder.NewFinder()
	root, err := locator.FindRoot(wd)
	if err != nil {
		return "", fmt.Errorf("workspace not found from %q (tip: run `snh init`): %w", wd, err)
	}
	return root, nil
}

func resolvePrescriptionPath(ws *workspaceCtx, arg string) (string, error) {
	in := strings.TrimSpace(arg)
	if in == "" {
		return "", fmt.Errorf("prescription file is required (use --file or -f)")
	}

	// Paths are resolved relative to the workspace root.
	if looksLikePath(in) {
		p := in
		if !filepath.IsAbs(p) {
			p = filepath.Join(ws.root, p)
		}
		return filepath.Clean(p), nil
	}

	dir := filepath.Join(ws.root, ws.cfg.Paths.PrescriptionsDir)

	if hasYAMLExt(in) {
		p := filepath.Join(dir, in)
		if fileExists(p) {
			return p, nil
		}
	}

	for _, ext := range []string{".yaml", ".yml"} {
		p := filepath.Join(dir, in+ext)
		if fileExists(p) {
			return p, nil
		}
	}

	return "", fmt.Errorf("prescription %q not found in %q", in, dir)
}

func looksLikePath(s string) bool {
	return strings.Contains(s, "/") || strings.Contains(s, string(filepath.Separator))
}

func hasYAMLExt(s string) bool {
	ext := strings.ToLower(filepath.Ext(s))
	return ext == ".yaml" || ext == ".yml"
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
