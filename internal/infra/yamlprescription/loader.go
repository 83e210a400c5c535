package yamlprescription

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sistema-nutricional-hospitalar/snh/internal/domain"
	"github.com/sistema-nutricional-hospitalar/snh/internal/ports"
)

type Loader struct {
	prescriptionsDir string
}

func NewLoader(opts ...Option) *Loader {
	l := &Loader{prescriptionsDir: "prescriptions"}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

type Option func(*Loader)

func WithPrescriptionsDir(dir string) Option {
	return func(l *Loader) {
		if strings.TrimSpace(dir) != "" {
			l.prescriptionsDir = dir
		}
	}
}

var _ ports.PrescriptionLoader = (*Loader)(nil)

func (l *Loader) LoadPrescription(path string) (domain.PrescriptionRequest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.PrescriptionRequest{}, &domain.OpError{
			Op:   "yamlprescription.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var yp YAMLPrescription
	if err := yaml.Unmarshal(b, &yp); err != nil {
		return domain.PrescriptionRequest{}, &domain.OpError{
			Op:   "yamlprescription.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	return MapPrescription(path, yp)
}

// ListPrescriptions returns the YAML files of the workspace prescriptions
// directory, sorted by name. Unparseable files are listed with an empty Type.
func (l *Loader) ListPrescriptions(root string) ([]domain.PrescriptionRef, error) {
	dir := filepath.Join(root, l.prescriptionsDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "yamlprescription.list",
			Kind: domain.KindNotFound,
			Path: dir,
			Err:  err,
		}
	}

	var refs []domain.PrescriptionRef
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}
		p := filepath.Join(dir, name)
		t, _ := readType(p)
		refs = append(refs, domain.PrescriptionRef{
			Name: strings.TrimSuffix(name, filepath.Ext(name)),
			Path: p,
			Type: t,
		})
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

func readType(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var v struct {
		Type string `yaml:"type"`
	}
	if err := yaml.Unmarshal(b, &v); err != nil {
		return "", err
	}
	return domain.Fold(v.Type), nil
}
