package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "EINVOICE"

const appName = "einvoice"

// FileSystem interface for file operations (useful for testing).
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem implements FileSystem using actual file operations.
type RealFileSystem struct{}

func (rfs *RealFileSystem) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func (rfs *RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// Resolver handles finding config and env files.
type Resolver struct {
	FileSystem FileSystem
}

// ResolvedFiles contains the resolved config and env file paths.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

// ResolveFiles returns explicit paths if provided, otherwise searches for them.
func (r *Resolver) ResolveFiles(opts LoaderConfig) ResolvedFiles {
	resolved := ResolvedFiles{
		ConfigFile: opts.ConfigFile,
		EnvFile:    opts.EnvFile,
	}
	if resolved.ConfigFile == "" {
		resolved.ConfigFile = r.first(configSearchPaths())
	}
	if resolved.EnvFile == "" {
		resolved.EnvFile = r.first(envSearchPaths())
	}
	return resolved
}

func (r *Resolver) first(paths []string) string {
	for _, p := range paths {
		if r.FileSystem.Exists(p) {
			return p
		}
	}
	return ""
}

func configSearchPaths() []string {
	var paths []string
	for _, dir := range []string{".", "./config", "..", "../config"} {
		paths = append(paths,
			fmt.Sprintf("%s/%s.yml", dir, appName),
			fmt.Sprintf("%s/%s.yaml", dir, appName),
			fmt.Sprintf("%s/config.yml", dir),
		)
	}
	return paths
}

func envSearchPaths() []string {
	var paths []string
	for _, name := range []string{".env." + appName, ".env"} {
		for _, dir := range []string{".", "./config", ".."} {
			paths = append(paths, fmt.Sprintf("%s/%s", dir, name))
		}
	}
	return paths
}

// LoaderConfig holds dependencies and optional file overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string // Direct config file path (optional)
	EnvFile    string // Direct env file path (optional)
}

// LoaderOption is a functional option for Load.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// Load reads the configuration, applies defaults and validates it.
func Load(opts ...LoaderOption) (*Config, error) {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.FileSystem == nil {
		lc.FileSystem = &RealFileSystem{}
	}

	resolver := &Resolver{FileSystem: lc.FileSystem}
	files := resolver.ResolveFiles(lc)

	cfg, err := loadFromResolvedFiles(files, lc)
	if err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFromResolvedFiles loads configuration from specific files.
// Explicitly requested files must exist; discovered ones are optional.
func loadFromResolvedFiles(files ResolvedFiles, lc LoaderConfig) (*Config, error) {
	v := viper.New()

	// 1. YAML config (base configuration)
	if files.ConfigFile != "" {
		if !lc.FileSystem.Exists(files.ConfigFile) {
			return nil, fmt.Errorf("config file %s not found", files.ConfigFile)
		}
		v.SetConfigFile(files.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", files.ConfigFile, err)
		}
	}

	// 2. .env file; never overrides variables already set
	if files.EnvFile != "" {
		if !lc.FileSystem.Exists(files.EnvFile) {
			return nil, fmt.Errorf("env file %s not found", files.EnvFile)
		}
		if err := lc.FileSystem.LoadEnv(files.EnvFile); err != nil {
			return nil, fmt.Errorf("load env file %s: %w", files.EnvFile, err)
		}
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := bindEnvKeys(v); err != nil {
		return nil, err
	}

	// 4. Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// envKeys are the config keys settable from the environment. AutomaticEnv
// only resolves keys viper already knows, so each one is bound explicitly.
var envKeys = []string{
	"environment",
	"logging.level", "logging.format", "logging.output",
	"logging.no_color", "logging.timestamp", "logging.caller",
	"telemetry.enabled", "telemetry.service_name", "telemetry.service_version",
	"telemetry.environment", "telemetry.endpoint", "telemetry.insecure",
	"telemetry.sample_rate", "telemetry.metric_interval",
}

var gatewayKeys = []string{"name", "base_url", "token", "timeout"}

func bindEnvKeys(v *viper.Viper) error {
	keys := append([]string(nil), envKeys...)
	for _, section := range []string{"nes", "nilvera"} {
		for _, k := range gatewayKeys {
			keys = append(keys, section+"."+k)
		}
	}
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return fmt.Errorf("bind env %s: %w", k, err)
		}
	}
	return nil
}

// EnvVar returns the environment variable name for a config key,
// e.g. "nes.base_url" -> "EINVOICE_NES_BASE_URL".
func EnvVar(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}
