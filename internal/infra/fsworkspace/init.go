package fsworkspace

import (
	"bytes"
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/sistema-nutricional-hospitalar/snh/internal/domain"
)

//go:embed templates
var templatesFS embed.FS

// Initializer lays a workspace out on the local filesystem.
type Initializer struct{}

func NewInitializer() *Initializer {
	return &Initializer{}
}

type seed struct {
	src  string
	dst  string
	perm fs.FileMode
}

type configData struct {
	Driver           string
	DSN              string
	DataDir          string
	PrescriptionsDir string
}

// Init creates the directories, snh.yaml and optional sample prescriptions
// under spec.Root. Existing files are kept unless spec.Force is set. A
// postgres workspace also gets a .env holding a local DSN.
func (i *Initializer) Init(spec domain.WorkspaceSpec) error {
	root := filepath.Clean(spec.Root)
	paths := domain.DefaultConfig().Paths
	driver := spec.Driver
	if driver == "" {
		driver = domain.StoreSQLite
	}

	for _, d := range []string{
		filepath.Join(root, paths.DataDir),
		filepath.Join(root, paths.PrescriptionsDir),
		filepath.Join(root, ".snh", "logs"),
	} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return wrap(d, err)
		}
	}

	if err := ensureGitignore(root, paths.DataDir); err != nil {
		return wrap(filepath.Join(root, ".gitignore"), err)
	}

	cfg, err := renderConfig(configData{
		Driver:           driver,
		DSN:              defaultDSN(driver, paths.DataDir),
		DataDir:          paths.DataDir,
		PrescriptionsDir: paths.PrescriptionsDir,
	})
	if err != nil {
		return wrap("templates/snh.yaml.tmpl", err)
	}
	if err := writeSeed(filepath.Join(root, "snh.yaml"), cfg, 0o644, spec.Force); err != nil {
		return err
	}

	var seeds []seed
	if driver == domain.StorePostgres {
		seeds = append(seeds, seed{src: "templates/env.tmpl", dst: ".env", perm: 0o600})
	}
	if !spec.NoExamples {
		examples, err := fs.Glob(templatesFS, "templates/prescriptions/*.yaml")
		if err != nil {
			return wrap("templates/prescriptions", err)
		}
		for _, p := range examples {
			dst := filepath.Join(paths.PrescriptionsDir, path.Base(p))
			seeds = append(seeds, seed{src: p, dst: dst, perm: 0o644})
		}
	}

	for _, s := range seeds {
		b, err := fs.ReadFile(templatesFS, s.src)
		if err != nil {
			return wrap(s.src, err)
		}
		if err := writeSeed(filepath.Join(root, s.dst), b, s.perm, spec.Force); err != nil {
			return err
		}
	}
	return nil
}

func renderConfig(data configData) ([]byte, error) {
	tmpl, err := template.New("snh.yaml.tmpl").
		Delims("[[", "]]").
		ParseFS(templatesFS, "templates/snh.yaml.tmpl")
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func defaultDSN(driver, dataDir string) string {
	if driver == domain.StoreSQLite {
		return path.Join(filepath.ToSlash(dataDir), "snh.db")
	}
	return ""
}

func writeSeed(dst string, b []byte, perm fs.FileMode, force bool) error {
	if !force {
		if _, err := os.Stat(dst); err == nil {
			return nil
		}
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return wrap(dst, err)
	}
	if err := os.WriteFile(dst, b, perm); err != nil {
		return wrap(dst, err)
	}
	return nil
}

func wrap(path string, err error) error {
	return &domain.OpError{Op: "fsworkspace.init", Kind: domain.KindExecution, Path: path, Err: err}
}

func ensureGitignore(root, dataDir string) error {
	const header = "# SNH"
	entries := []string{
		strings.TrimSuffix(filepath.ToSlash(dataDir), "/") + "/",
		".snh/",
		".env",
	}

	file := filepath.Join(root, ".gitignore")
	b, err := os.ReadFile(file)
	if err != nil {
		if os.IsNotExist(err) {
			lines := append([]string{header}, entries...)
			lines = append(lines, "")
			return os.WriteFile(file, []byte(strings.Join(lines, "\n")), 0o644)
		}
		return err
	}

	existing := string(b)
	present := map[string]bool{}
	for _, line := range strings.Split(existing, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		present[trimmed] = true
	}

	var missing []string
	for _, e := range entries {
		if !present[e] {
			missing = append(missing, e)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	var out strings.Builder
	out.Grow(len(existing) + 32)

	out.WriteString(existing)
	if existing != "" && !strings.HasSuffix(existing, "\n") {
		out.WriteByte('\n')
	}
	out.WriteByte('\n')
	if !present[header] {
		out.WriteString(header)
		out.WriteByte('\n')
	}
	for _, e := range missing {
		out.WriteString(e)
		out.WriteByte('\n')
	}

	return os.WriteFile(file, []byte(out.String()), 0o644)
}
