// Package config loads tpflow configuration from config.yaml and
// TPFLOW_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the configuration for the application.
type Config struct {
	HTTP    HTTPConfig    `mapstructure:"http"`
	DB      DBConfig      `mapstructure:"db"`
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Tenant  TenantConfig  `mapstructure:"tenant"`
}

// HTTPConfig configures the REST/MCP listener.
type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

// DBConfig configures the sqlite store.
type DBConfig struct {
	Path string `mapstructure:"path"`
}

// StorageConfig configures document blob storage.
type StorageConfig struct {
	DocumentsDir string `mapstructure:"documents_dir"`
}

// LogConfig configures the service logger.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// AuthConfig configures the auth seam. BootstrapToken authenticates
// as an admin before any user exists.
type AuthConfig struct {
	BootstrapToken string `mapstructure:"bootstrap_token"`
}

// TenantConfig names the tenant the CLI and seeder operate on.
type TenantConfig struct {
	Name string `mapstructure:"name"`
}

var defaults = map[string]any{
	"http.addr":             ":8080",
	"db.path":               "tpflow.db",
	"storage.documents_dir": "documents",
	"log.level":             "info",
	"auth.bootstrap_token":  "",
	"tenant.name":           "default",
}

// Load reads configuration. An explicit path wins; otherwise
// config.yaml is searched in . and ~/.tpflow. TPFLOW_* environment
// variables override file values (TPFLOW_HTTP_ADDR, TPFLOW_DB_PATH,
// ...). A missing file in the search path is not an error; defaults
// apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".tpflow"))
		}
	}

	v.SetEnvPrefix("TPFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// starterYAML is the file `tpflow init` writes.
const starterYAML = `# tpflow configuration
http:
  addr: ":8080"

db:
  path: "tpflow.db"

storage:
  documents_dir: "documents"

log:
  level: "info"

auth:
  # Token that authenticates as an admin before any user exists.
  # Clear it once real users are created.
  bootstrap_token: ""

tenant:
  name: "default"
`

// WriteStarter writes a commented starter config file. It refuses to
// overwrite an existing file.
func WriteStarter(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file %s already exists", path)
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(starterYAML), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
