package workspacefinder

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/sistema-nutricional-hospitalar/snh/internal/app/template"
	"github.com/sistema-nutricional-hospitalar/snh/internal/domain"
)

// ConfigFile is the marker file of a workspace root.
const ConfigFile = "snh.yaml"

// DSNEnv overrides store.dsn so credentials can stay out of snh.yaml.
const DSNEnv = "SNH_STORE_DSN"

// EnvFile is an optional dotenv file at the workspace root. The process
// environment wins over it.
const EnvFile = ".env"

// LoadConfig loads snh.yaml from the workspace root and applies defaults.
func LoadConfig(root string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	path := ConfigPath(root)
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	// Apply parsed values on top of defaults.
	s := y.SNH
	if s.Store.Driver != "" {
		cfg.Store.Driver = strings.ToLower(strings.TrimSpace(s.Store.Driver))
	}
	if s.Store.DSN != "" {
		cfg.Store.DSN = s.Store.DSN
	}
	dsn, err := lookupDSN(root)
	if err != nil {
		return cfg, err
	}
	if dsn != "" {
		cfg.Store.DSN = dsn
	}
	if s.Logging.Debug != nil {
		cfg.Logging.Debug = *s.Logging.Debug
	}
	if s.Metrics.Enabled != nil {
		cfg.Metrics.Enabled = *s.Metrics.Enabled
	}
	if s.Paths.DataDir != "" {
		cfg.Paths.DataDir = s.Paths.DataDir
	}
	if s.Paths.PrescriptionsDir != "" {
		cfg.Paths.PrescriptionsDir = s.Paths.PrescriptionsDir
	}
	// An explicit channel list (even empty) replaces the default one.
	if s.Notifications.Channels != nil {
		cfg.Notifications.Channels = make([]domain.ChannelConfig, 0, len(*s.Notifications.Channels))
		for _, c := range *s.Notifications.Channels {
			cfg.Notifications.Channels = append(cfg.Notifications.Channels, domain.ChannelConfig{
				Name:       strings.TrimSpace(c.Name),
				Kind:       strings.ToLower(strings.TrimSpace(c.Kind)),
				URL:        strings.TrimSpace(c.URL),
				Recipients: c.Recipients,
				Template:   c.Template,
			})
		}
	}

	if err := validate(cfg); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}
	return cfg, nil
}

func validate(cfg domain.Config) error {
	switch cfg.Store.Driver {
	case domain.StoreSQLite, domain.StorePostgres:
		if strings.TrimSpace(cfg.Store.DSN) == "" {
			return fmt.Errorf("store.dsn is required for driver %q", cfg.Store.Driver)
		}
	case domain.StoreJSON:
	default:
		return fmt.Errorf("store.driver %q is not supported", cfg.Store.Driver)
	}

	seen := map[string]bool{}
	for i, c := range cfg.Notifications.Channels {
		if c.Name == "" {
			return fmt.Errorf("notifications.channels[%d].name is required", i)
		}
		if seen[c.Name] {
			return fmt.Errorf("notifications.channels[%d]: duplicate channel %q", i, c.Name)
		}
		seen[c.Name] = true

		switch c.Kind {
		case domain.ChannelLog:
		case domain.ChannelWebhook:
			if c.URL == "" {
				return fmt.Errorf("notifications.channels[%d].url is required for webhook", i)
			}
		default:
			return fmt.Errorf("notifications.channels[%d].kind %q is not supported", i, c.Kind)
		}
		if err := template.Validate(c.Template, template.MessageVars); err != nil {
			return fmt.Errorf("notifications.channels[%d].template: %w", i, err)
		}
	}
	return nil
}

type yamlConfig struct {
	SNH struct {
		Store struct {
			Driver string `yaml:"driver"`
			DSN    string `yaml:"dsn"`
		} `yaml:"store"`

		Logging struct {
			Debug *bool `yaml:"debug"`
		} `yaml:"logging"`

		Metrics struct {
			Enabled *bool `yaml:"enabled"`
		} `yaml:"metrics"`

		Notifications struct {
			Channels *[]yamlChannel `yaml:"channels"`
		} `yaml:"notifications"`

		Paths struct {
			DataDir          string `yaml:"data_dir"`
			PrescriptionsDir string `yaml:"prescriptions_dir"`
		} `yaml:"paths"`
	} `yaml:"snh"`
}

type yamlChannel struct {
	Name       string   `yaml:"name"`
	Kind       string   `yaml:"kind"`
	URL        string   `yaml:"url"`
	Recipients []string `yaml:"recipients"`
	Template   string   `yaml:"template"`
}

func lookupDSN(root string) (string, error) {
	if dsn := os.Getenv(DSNEnv); dsn != "" {
		return dsn, nil
	}
	path := filepath.Join(root, EnvFile)
	if _, err := os.Stat(path); err != nil {
		return "", nil
	}
	env, err := godotenv.Read(path)
	if err != nil {
		return "", &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}
	return env[DSNEnv], nil
}
