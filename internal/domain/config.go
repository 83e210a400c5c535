package domain

// Config represents the SNH workspace configuration loaded from snh.yaml.
type Config struct {
	Store         StoreConfig
	Logging       LoggingConfig
	Notifications NotificationsConfig
	Metrics       MetricsConfig
	Paths         PathsConfig
}

// Store drivers.
const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreJSON     = "json"
)

type StoreConfig struct {
	Driver string
	// DSN is a file path for sqlite, a connection string for postgres,
	// and unused for json (Paths.DataDir is used instead).
	DSN string
}

type LoggingConfig struct {
	Debug bool
}

// Channel kinds.
const (
	ChannelLog     = "log"
	ChannelWebhook = "webhook"
)

type NotificationsConfig struct {
	Channels []ChannelConfig
}

// ChannelConfig declares one notification channel and who receives it.
type ChannelConfig struct {
	Name       string
	Kind       string
	URL        string // webhook only
	Recipients []string
	// Template renders the delivered text. Placeholders: {{message}},
	// {{recipient}}, {{channel}}. Empty delivers the message as is.
	Template string
}

type MetricsConfig struct {
	Enabled bool
}

type PathsConfig struct {
	DataDir          string
	PrescriptionsDir string
}

// WorkspaceSpec describes the workspace `snh init` lays out.
type WorkspaceSpec struct {
	Root string
	// Driver picks the store written to snh.yaml. Empty means sqlite.
	Driver string
	// NoExamples skips the sample prescriptions.
	NoExamples bool
	// Force overwrites files that already exist.
	Force bool
}

// StoreDrivers lists the supported store backends.
func StoreDrivers() []string {
	return []string{StoreSQLite, StorePostgres, StoreJSON}
}

// DefaultConfig provides sane defaults if snh.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Store: StoreConfig{
			Driver: StoreSQLite,
			DSN:    "data/snh.db",
		},
		Notifications: NotificationsConfig{
			Channels: []ChannelConfig{
				{Name: "audit-log", Kind: ChannelLog, Recipients: []string{"nutricao"}},
			},
		},
		Metrics: MetricsConfig{Enabled: true},
		Paths: PathsConfig{
			DataDir:          "data",
			PrescriptionsDir: "prescriptions",
		},
	}
}
