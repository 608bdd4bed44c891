package usercfg

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ghp/internal/errors"
	"github.com/BurntSushi/toml"
)

// ErrNotConfigured is returned when no config file exists and no env vars are set.
var ErrNotConfigured = fmt.Errorf("ghp is not configured; run: ghp setup")

// IsConfigured returns true if a config file exists or essential env vars are set.
func IsConfigured() bool {
	if os.Getenv("GHP_ORGS") != "" || os.Getenv("GHP_DEFAULT_OWNER") != "" {
		return true
	}
	configPath := Path()
	legacyPath := LegacyPath()
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return true
		}
	}
	if legacyPath != "" {
		if _, err := os.Stat(legacyPath); err == nil {
			return true
		}
	}
	return false
}

type Config struct {
	SchemaVersion     int                `toml:"schema_version,omitempty"`
	Organizations     []string           `toml:"organizations"`
	DefaultOwner      string             `toml:"default_owner"`
	DefaultProject    string             `toml:"default_project"`
	ShowOwnerPicker   *bool              `toml:"show_owner_picker"`
	StatusOptions     []string           `toml:"status_options"`
	WorkspaceProjects []WorkspaceProject `toml:"workspace_projects,omitempty"`
	UIPrefs           UIPreferences      `toml:"ui_prefs,omitempty"`
}

// WorkspaceProject is a saved shortcut pairing a project title with its owner.
type WorkspaceProject struct {
	Name        string `toml:"name"`
	Owner       string `toml:"owner"`
	Description string `toml:"description,omitempty"`
}

type UIPreferences struct {
	LastOwner       string `toml:"last_owner,omitempty"`
	LastProject     int    `toml:"last_project,omitempty"`
	LastFilter      string `toml:"last_filter,omitempty"`
	LastSelectedCol int    `toml:"last_selected_col,omitempty"`
	FuzzySearch     bool   `toml:"fuzzy_search,omitempty"`
	ShowItemURLs    bool   `toml:"show_item_urls,omitempty"`
}

const CurrentSchemaVersion = 1

func Path() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	// Prefer XDG-compliant path: ~/.config/ghp/config.toml
	return filepath.Join(homeDir, ".config", "ghp", "config.toml")
}

func LegacyPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	// Legacy path for backward compatibility
	return filepath.Join(homeDir, ".config", "ghp.toml")
}

func Load() (Config, error) {
	configPath := Path()
	legacyPath := LegacyPath()

	if configPath == "" || legacyPath == "" {
		return getDefaults(), errors.NewConfigError("load", fmt.Errorf("unable to determine home directory"))
	}

	var actualPath string
	var warnLegacy bool

	// Check XDG-compliant path first
	if _, err := os.Stat(configPath); err == nil {
		actualPath = configPath
	} else if _, err := os.Stat(legacyPath); err == nil {
		// Fall back to legacy path if XDG path doesn't exist
		actualPath = legacyPath
		warnLegacy = true
	} else {
		// Neither path exists -- not configured
		return getDefaults(), ErrNotConfigured
	}

	var config Config
	if _, err := toml.DecodeFile(actualPath, &config); err != nil {
		return getDefaults(), errors.NewConfigError("load", fmt.Errorf("failed to decode config file: %v", err))
	}

	// Warn about legacy path usage (once per load)
	if warnLegacy {
		fmt.Fprintf(os.Stderr, "Warning: Using legacy config path %s. Consider moving to %s\n", legacyPath, configPath)
	}

	// Apply migrations if needed
	migratedConfig := migrateConfig(config)

	return mergeWithDefaults(migratedConfig), nil
}

func Save(config Config) error {
	configPath := Path()
	if configPath == "" {
		return fmt.Errorf("unable to determine home directory")
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %v", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("failed to create config file: %v", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %v", err)
	}

	return nil
}

func GetRuntimeConfig() Config {
	config, err := Load()
	if err != nil && err != ErrNotConfigured {
		fmt.Fprintf(os.Stderr, "Warning: %v, using defaults\n", err)
		config = getDefaults()
	}

	// Apply environment variable overlays
	return applyEnvOverlays(config)
}

func mergeWithDefaults(config Config) Config {
	// Always ensure we have the current schema version
	config.SchemaVersion = CurrentSchemaVersion

	// StatusOptions fall back to the standard project template vocabulary
	if len(config.StatusOptions) == 0 {
		config.StatusOptions = DefaultStatusOptions()
	}

	// ShowOwnerPicker defaults to true when not explicitly set
	if config.ShowOwnerPicker == nil {
		t := true
		config.ShowOwnerPicker = &t
	}

	// Organizations, DefaultOwner, DefaultProject: left empty if not in the
	// config file. The caller must handle empty values (e.g. prompt for
	// ghp setup).

	return config
}

// OwnerPickerEnabled returns whether the owner selection step is shown when a
// default owner is configured.
func (c Config) OwnerPickerEnabled() bool {
	return c.ShowOwnerPicker == nil || *c.ShowOwnerPicker
}

// applyEnvOverlays applies environment variable overlays to the config
func applyEnvOverlays(config Config) Config {
	// GHP_ORGS: comma-separated organization list
	if envOrgs := os.Getenv("GHP_ORGS"); envOrgs != "" {
		orgs := strings.Split(envOrgs, ",")
		for i := range orgs {
			orgs[i] = strings.TrimSpace(orgs[i])
		}
		// Filter out empty strings
		var validOrgs []string
		for _, o := range orgs {
			if o != "" {
				validOrgs = append(validOrgs, o)
			}
		}
		if len(validOrgs) > 0 {
			config.Organizations = validOrgs
		}
	}

	// GHP_DEFAULT_OWNER: override the default owner
	if envOwner := os.Getenv("GHP_DEFAULT_OWNER"); envOwner != "" {
		config.DefaultOwner = envOwner
	}

	// GHP_DEFAULT_PROJECT: override the default project title
	if envProject := os.Getenv("GHP_DEFAULT_PROJECT"); envProject != "" {
		config.DefaultProject = envProject
	}

	// GHP_STATUS_OPTIONS: comma-separated status vocabulary
	if envStatuses := os.Getenv("GHP_STATUS_OPTIONS"); envStatuses != "" {
		statuses := strings.Split(envStatuses, ",")
		var validStatuses []string
		for _, s := range statuses {
			if s = strings.TrimSpace(s); s != "" {
				validStatuses = append(validStatuses, s)
			}
		}
		if len(validStatuses) > 0 {
			config.StatusOptions = validStatuses
		}
	}

	return config
}

// migrateConfig performs in-memory migration of config from older schema versions
func migrateConfig(config Config) Config {
	originalVersion := config.SchemaVersion

	// Migration from version 0 (no schema_version field) to version 1
	if originalVersion == 0 {
		// Version 0 configs don't have schema_version field
		// Current structure is already compatible, just need to set version
		config.SchemaVersion = 1

		if config.Organizations != nil || config.DefaultOwner != "" || len(config.WorkspaceProjects) > 0 {
			fmt.Fprintf(os.Stderr, "Info: Migrated config from schema version 0 to %d\n", config.SchemaVersion)
		}
	}

	// Future migrations would go here:
	// if originalVersion < 2 { ... }

	return config
}

// MigrateAndSave loads the config, applies migrations, and saves it back to disk
// This is used by the `ghp config migrate` command
func MigrateAndSave() error {
	// Load the raw config without going through the full Load() process
	configPath := Path()
	legacyPath := LegacyPath()

	if configPath == "" || legacyPath == "" {
		return fmt.Errorf("unable to determine home directory")
	}

	var actualPath string

	// Check XDG-compliant path first
	if _, err := os.Stat(configPath); err == nil {
		actualPath = configPath
	} else if _, err := os.Stat(legacyPath); err == nil {
		actualPath = legacyPath
	} else {
		return fmt.Errorf("no config file found to migrate")
	}

	var rawConfig Config
	if _, err := toml.DecodeFile(actualPath, &rawConfig); err != nil {
		return fmt.Errorf("failed to decode config file: %v", err)
	}

	originalVersion := rawConfig.SchemaVersion
	if originalVersion == CurrentSchemaVersion {
		return fmt.Errorf("config is already at current schema version %d", CurrentSchemaVersion)
	}

	// Now apply the full Load() process which includes migration and merging
	config, err := Load()
	if err != nil {
		return fmt.Errorf("failed to load config for migration: %v", err)
	}

	// Save the migrated config
	err = Save(config)
	if err != nil {
		return fmt.Errorf("failed to save migrated config: %v", err)
	}

	fmt.Printf("Successfully migrated config from schema version %d to %d\n", originalVersion, config.SchemaVersion)
	return nil
}

// AddWorkspaceProject appends a shortcut and persists the config. A shortcut
// with the same name and owner is replaced rather than duplicated.
func AddWorkspaceProject(project WorkspaceProject) error {
	config, err := Load()
	if err != nil && err != ErrNotConfigured {
		return err
	}

	for i, existing := range config.WorkspaceProjects {
		if existing.Name == project.Name && existing.Owner == project.Owner {
			config.WorkspaceProjects[i] = project
			return Save(config)
		}
	}

	config.WorkspaceProjects = append(config.WorkspaceProjects, project)
	return Save(config)
}

// RemoveWorkspaceProjects removes the shortcuts at the given indexes and
// persists the config. Indexes are applied in descending order so earlier
// removals don't shift later ones; out-of-range indexes are ignored.
func RemoveWorkspaceProjects(indexes []int) error {
	config, err := Load()
	if err != nil {
		return err
	}

	sorted := make([]int, len(indexes))
	copy(sorted, indexes)
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			if sorted[j] > sorted[i] {
				sorted[i], sorted[j] = sorted[j], sorted[i]
			}
		}
	}

	for _, idx := range sorted {
		if idx < 0 || idx >= len(config.WorkspaceProjects) {
			continue
		}
		config.WorkspaceProjects = append(config.WorkspaceProjects[:idx], config.WorkspaceProjects[idx+1:]...)
	}

	return Save(config)
}

// SaveUIPrefs saves only the UI preferences to the config file
// This is lightweight and can be called frequently without impacting other config values
func SaveUIPrefs(prefs UIPreferences) error {
	config, err := Load()
	if err != nil {
		// Create a minimal config -- don't seed with placeholder values
		config = Config{
			SchemaVersion: CurrentSchemaVersion,
			StatusOptions: DefaultStatusOptions(),
		}
	}

	config.UIPrefs = prefs
	return Save(config)
}

// GetUIPrefs returns the current UI preferences from the runtime config
func GetUIPrefs() UIPreferences {
	// Allow ignoring UI prefs via env for troubleshooting
	if os.Getenv("GHP_IGNORE_UI_PREFS") == "1" {
		return UIPreferences{}
	}
	config := GetRuntimeConfig()
	return config.UIPrefs
}
