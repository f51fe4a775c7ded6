package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/altuslabsxyz/objbuild/internal/output"
	"github.com/altuslabsxyz/objbuild/internal/paths"
)

// ConfigLoader is responsible for loading and merging configuration.
type ConfigLoader struct {
	homeDir    string
	workDir    string
	configPath string // Explicit --config path
	logger     *output.Logger
}

// NewConfigLoader creates a new ConfigLoader. The project config file is
// looked up in the current directory.
func NewConfigLoader(homeDir, configPath string, logger *output.Logger) *ConfigLoader {
	return &ConfigLoader{
		homeDir:    homeDir,
		workDir:    ".",
		configPath: configPath,
		logger:     logger,
	}
}

// WithWorkDir changes the directory searched for the project config file.
func (l *ConfigLoader) WithWorkDir(dir string) *ConfigLoader {
	l.workDir = dir
	return l
}

// configFiles returns the existing config files in increasing priority:
// home config, project config, explicit --config.
func (l *ConfigLoader) configFiles() ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	add := func(path string) {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		if !seen[abs] {
			seen[abs] = true
			files = append(files, path)
		}
	}

	if home := paths.HomeConfigPath(l.homeDir); fileExists(home) {
		add(home)
	}
	if project := filepath.Join(l.workDir, paths.ProjectConfigFile); fileExists(project) {
		add(project)
	}
	if l.configPath != "" {
		if !fileExists(l.configPath) {
			return nil, fmt.Errorf("config file not found: %s", l.configPath)
		}
		add(l.configPath)
	}
	return files, nil
}

// LoadFileConfig loads every config file and merges them, later files
// overriding earlier ones. Returns the merged FileConfig and the highest
// priority file that was loaded, or an empty path if none exists.
func (l *ConfigLoader) LoadFileConfig() (*FileConfig, string, error) {
	files, err := l.configFiles()
	if err != nil {
		return nil, "", err
	}
	if len(files) == 0 {
		return &FileConfig{}, "", nil
	}

	var merged []byte
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read config file %s: %w", file, err)
		}

		// Parse each file on its own so errors name the offending file.
		var cfg FileConfig
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, "", fmt.Errorf("failed to parse config file %s: %w", file, err)
		}
		if err := ValidateFileConfig(&cfg); err != nil {
			return nil, "", fmt.Errorf("config file %s: %w", file, err)
		}
		l.warnUnknownKeys(file, data)

		if merged, err = mergeTOML(merged, data); err != nil {
			return nil, "", fmt.Errorf("failed to merge config file %s: %w", file, err)
		}
		if l.logger != nil {
			l.logger.Debug("Loaded config file: %s", file)
		}
	}

	var cfg FileConfig
	if err := toml.Unmarshal(merged, &cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse merged config: %w", err)
	}
	return &cfg, files[len(files)-1], nil
}

// warnUnknownKeys logs a warning for every key FileConfig does not know.
func (l *ConfigLoader) warnUnknownKeys(file string, data []byte) {
	if l.logger == nil {
		return
	}

	var raw map[string]interface{}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return
	}

	var unknown []string
	for key := range raw {
		if !knownKeys[key] {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	for _, key := range unknown {
		l.logger.Warn("Unknown config key in %s: %s", file, key)
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
