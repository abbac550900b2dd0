package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/waverun-org/waverun/internal/build"
	"github.com/waverun-org/waverun/internal/fileutil"
)

// Load creates a new configuration by instantiating a Loader with the
// provided options and then invoking its Load method.
func Load(opts ...LoaderOption) (*Config, error) {
	loader := NewLoader(opts...)
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// Loader is responsible for reading and merging configuration from the
// config file, environment variables and defaults. The internal mutex
// ensures thread-safety when loading the configuration.
type Loader struct {
	lock       sync.Mutex
	configFile string
	warnings   []string
}

// LoaderOption defines a functional option for configuring a Loader.
type LoaderOption func(*Loader)

// WithConfigFile returns a LoaderOption that sets the configuration file path.
func WithConfigFile(configFile string) LoaderOption {
	return func(l *Loader) {
		l.configFile = configFile
	}
}

// NewLoader creates a new Loader instance and applies all given options.
func NewLoader(options ...LoaderOption) *Loader {
	loader := &Loader{}
	for _, option := range options {
		option(loader)
	}
	return loader
}

// Definition mirrors the raw structure of the configuration file.
type Definition struct {
	Debug     bool   `mapstructure:"debug"`
	LogFormat string `mapstructure:"logFormat"`

	Paths *struct {
		OutputsDir string `mapstructure:"outputsDir"`
		BinDir     string `mapstructure:"binDir"`
		SourcesDir string `mapstructure:"sourcesDir"`
	} `mapstructure:"paths"`

	Solver *struct {
		Executable    string   `mapstructure:"executable"`
		Compiler      string   `mapstructure:"compiler"`
		CompilerFlags string   `mapstructure:"compilerFlags"`
		SearchDirs    []string `mapstructure:"searchDirs"`
	} `mapstructure:"solver"`
}

// Load initializes viper, reads the configuration file, and returns a fully
// built and validated Config instance.
func (l *Loader) Load() (*Config, error) {
	l.lock.Lock()
	defer l.lock.Unlock()

	resolver := l.setupViper()

	// Load a .env file next to the config file if one exists, so that
	// WAVERUN_* overrides can be checked into a project directory.
	l.loadDotEnv(resolver.ConfigDir)

	// The config file is optional; only a parse failure is an error.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var def Definition
	if err := viper.Unmarshal(&def); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg, err := l.buildConfig(def, resolver)
	if err != nil {
		return nil, fmt.Errorf("failed to build config: %w", err)
	}

	cfg.Warnings = l.warnings
	cfg.Global.ConfigPath = viper.ConfigFileUsed()

	return cfg, nil
}

// buildConfig transforms the intermediate Definition into the final Config.
func (l *Loader) buildConfig(def Definition, resolver PathResolver) (*Config, error) {
	var cfg Config

	cfg.Global = Global{
		Debug:     def.Debug || os.Getenv("DEBUG") != "",
		LogFormat: def.LogFormat,
	}

	cfg.Paths = Paths{
		OutputsDir: fileutil.MustResolvePath(viper.GetString("paths.outputsDir")),
		BinDir:     fileutil.MustResolvePath(viper.GetString("paths.binDir")),
		SourcesDir: fileutil.MustResolvePath(viper.GetString("paths.sourcesDir")),
	}
	if def.Paths != nil {
		if def.Paths.OutputsDir != "" {
			cfg.Paths.OutputsDir = fileutil.MustResolvePath(def.Paths.OutputsDir)
		}
		if def.Paths.BinDir != "" {
			cfg.Paths.BinDir = fileutil.MustResolvePath(def.Paths.BinDir)
		}
		if def.Paths.SourcesDir != "" {
			cfg.Paths.SourcesDir = fileutil.MustResolvePath(def.Paths.SourcesDir)
		}
	}

	cfg.Solver = Solver{
		Executable:    viper.GetString("solver.executable"),
		Compiler:      viper.GetString("solver.compiler"),
		CompilerFlags: viper.GetString("solver.compilerFlags"),
	}
	if def.Solver != nil {
		if def.Solver.Compiler != "" {
			cfg.Solver.Compiler = def.Solver.Compiler
		}
		if def.Solver.CompilerFlags != "" {
			cfg.Solver.CompilerFlags = def.Solver.CompilerFlags
		}
		if def.Solver.Executable != "" {
			cfg.Solver.Executable = def.Solver.Executable
		}
		for _, dir := range def.Solver.SearchDirs {
			cfg.Solver.SearchDirs = append(cfg.Solver.SearchDirs, fileutil.MustResolvePath(dir))
		}
	}

	if err := l.validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setupViper initializes viper with path resolution, defaults and
// environment bindings, and returns the resolver used.
func (l *Loader) setupViper() PathResolver {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		l.warnings = append(l.warnings, fmt.Sprintf("could not determine home directory: %v", err))
	}

	xdgConfig := XDGConfig{
		DataHome:   xdg.DataHome,
		ConfigHome: filepath.Join(homeDir, ".config"),
	}
	envHome := strings.ToUpper(build.Slug) + "_HOME"
	resolver := NewResolver(envHome, filepath.Join(homeDir, "."+build.Slug), xdgConfig)
	l.warnings = append(l.warnings, resolver.Warnings...)

	if l.configFile == "" {
		viper.AddConfigPath(resolver.ConfigDir)
		viper.SetConfigName("config")
	} else {
		viper.SetConfigFile(l.configFile)
	}
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix(strings.ToUpper(build.Slug))
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	l.bindEnvironmentVariables()
	l.setDefaultValues(resolver)

	return resolver
}

// setDefaultValues establishes the default configuration values.
func (l *Loader) setDefaultValues(resolver PathResolver) {
	viper.SetDefault("paths.outputsDir", resolver.OutputsDir)
	viper.SetDefault("paths.binDir", resolver.BinDir)
	viper.SetDefault("paths.sourcesDir", resolver.SourcesDir)

	viper.SetDefault("debug", false)
	viper.SetDefault("logFormat", "text")

	viper.SetDefault("solver.compiler", "gfortran")
	viper.SetDefault("solver.compilerFlags", "-O2")
}

// bindEnvironmentVariables binds configuration keys to environment variables.
func (l *Loader) bindEnvironmentVariables() {
	l.bindEnv("logFormat", "LOG_FORMAT")
	l.bindEnv("debug", "DEBUG")

	l.bindEnv("paths.outputsDir", "OUTPUTS_DIR")
	l.bindEnv("paths.binDir", "BIN_DIR")
	l.bindEnv("paths.sourcesDir", "SOURCES_DIR")

	// Solver toolchain overrides, documented in the README:
	// WAVERUN_SOLVER_EXE, WAVERUN_FC, WAVERUN_FFLAGS.
	l.bindEnv("solver.executable", "SOLVER_EXE")
	l.bindEnv("solver.compiler", "FC")
	l.bindEnv("solver.compilerFlags", "FFLAGS")
}

// bindEnv constructs the full environment variable name using the app prefix
// and binds it to the given key.
func (l *Loader) bindEnv(key, env string) {
	prefix := strings.ToUpper(build.Slug) + "_"
	_ = viper.BindEnv(key, prefix+env)
}

// loadDotEnv loads a .env file from the config directory if present.
func (l *Loader) loadDotEnv(configDir string) {
	dotenv := filepath.Join(configDir, ".env")
	if !fileutil.FileExists(dotenv) {
		return
	}
	if err := godotenv.Load(dotenv); err != nil {
		l.warnings = append(l.warnings, fmt.Sprintf("failed to load %s: %v", dotenv, err))
	}
}

// validateConfig performs basic validation on the configuration.
func (l *Loader) validateConfig(cfg *Config) error {
	if cfg.Paths.OutputsDir == "" {
		return fmt.Errorf("outputs directory must not be empty")
	}
	if cfg.Paths.BinDir == "" {
		return fmt.Errorf("bin directory must not be empty")
	}
	if cfg.Solver.Compiler == "" {
		return fmt.Errorf("solver compiler must not be empty")
	}
	return nil
}
