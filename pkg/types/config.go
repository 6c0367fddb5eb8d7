package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "notes-migrate/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SourceConfig holds settings for the extraction stage.
type SourceConfig struct {
	// DBPath is the path to the Apple Notes SQLite store. When empty the
	// platform default under ~/Library/Group Containers is used.
	DBPath string `json:"db_path" yaml:"db_path"`
}

// BackupFormat selects the backup file encoding.
type BackupFormat string

const (
	BackupJSON BackupFormat = "json"
	BackupYAML BackupFormat = "yaml"
)

// BackupConfig holds settings for the backup stage.
type BackupConfig struct {
	// Dir is the directory the backup file is written to (default ".").
	Dir string `json:"dir" yaml:"dir"`

	// Format selects the backup encoding: json or yaml.
	Format BackupFormat `json:"format" yaml:"format"`
}

// KeepConfig holds settings for the upload stage.
type KeepConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the notes API endpoint. Overridable for tests.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// AuthURL is the token endpoint. Overridable for tests.
	AuthURL string `json:"auth_url" yaml:"auth_url"`

	// Email optionally presets the account identifier so only the
	// password is prompted for.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// MigrationConfig groups all stage configurations for the pipeline.
type MigrationConfig struct {
	Source SourceConfig `json:"source" yaml:"source"`
	Backup BackupConfig `json:"backup" yaml:"backup"`
	Keep   KeepConfig   `json:"keep" yaml:"keep"`
}
