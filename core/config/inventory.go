package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"realty-inventory/core/cache"
	"realty-inventory/core/foldersync"
	"realty-inventory/core/inventory"

	"gopkg.in/yaml.v3"
)

// InventoryConfig holds cache and sync settings.
type InventoryConfig struct {
	// CacheTTL is the maximum age of a snapshot served without a resync.
	CacheTTL time.Duration `mapstructure:"cache_ttl" default:"10m"`
	// SyncTimeout is the overall deadline of one folder sync.
	SyncTimeout time.Duration `mapstructure:"sync_timeout" default:"2m"`
	// Workers bounds concurrent file downloads per sync.
	Workers int `mapstructure:"workers" default:"4"`
	// RefreshInterval is the background refresh tick; 0 disables background refresh.
	RefreshInterval time.Duration `mapstructure:"refresh_interval" default:"5m"`
	// FailureBackoff is how long a failed folder is served stale before a retry.
	FailureBackoff time.Duration `mapstructure:"failure_backoff" default:"1m"`
	// FoldersFile is a YAML file listing the folders.
	FoldersFile string `mapstructure:"folders_file" default:"folders.yaml"`
	// Folders is an inline list: "Like House=like-house/;Axis=1AbC...".
	Folders string `mapstructure:"folders" default:""`
}

// CacheConfig returns the cache settings.
func (c InventoryConfig) CacheConfig() cache.Config {
	return cache.Config{
		TTL:             c.CacheTTL,
		SyncTimeout:     c.SyncTimeout,
		FailureBackoff:  c.FailureBackoff,
		RefreshInterval: c.RefreshInterval,
	}
}

// SyncConfig returns the sync engine settings.
func (c InventoryConfig) SyncConfig() foldersync.Config {
	return foldersync.Config{Workers: c.Workers, Timeout: c.SyncTimeout}
}

type foldersFile struct {
	Folders []inventory.FolderConfig `yaml:"folders"`
}

// loadFolders reads the folders file (missing is fine) and appends the inline list.
func loadFolders(dir string, cfg InventoryConfig) ([]inventory.FolderConfig, error) {
	var folders []inventory.FolderConfig

	if cfg.FoldersFile != "" {
		path := cfg.FoldersFile
		if !filepath.IsAbs(path) && dir != "" && dir != "." {
			path = filepath.Join(dir, path)
		}
		fromFile, err := LoadFoldersFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		folders = append(folders, fromFile...)
	}

	inline, err := ParseInlineFolders(cfg.Folders)
	if err != nil {
		return nil, err
	}
	return append(folders, inline...), nil
}

// LoadFoldersFile reads a YAML folder list.
func LoadFoldersFile(path string) ([]inventory.FolderConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read folders file: %w", err)
	}
	var file foldersFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse folders file %s: %w", path, err)
	}
	for i := range file.Folders {
		file.Folders[i].ProjectName = strings.TrimSpace(file.Folders[i].ProjectName)
		file.Folders[i].RemoteFolderID = strings.TrimSpace(file.Folders[i].RemoteFolderID)
	}
	return file.Folders, nil
}

// ParseInlineFolders parses "Project=folder-id" pairs separated by ";".
func ParseInlineFolders(s string) ([]inventory.FolderConfig, error) {
	var folders []inventory.FolderConfig
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		project, id, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("invalid folder entry %q (expected Project=folder-id)", part)
		}
		folders = append(folders, inventory.FolderConfig{
			ProjectName:    strings.TrimSpace(project),
			RemoteFolderID: strings.TrimSpace(id),
		})
	}
	return folders, nil
}

// ValidateFolders rejects blank fields and duplicate folder ids.
func ValidateFolders(folders []inventory.FolderConfig) error {
	seen := make(map[string]struct{}, len(folders))
	for i, f := range folders {
		if f.ProjectName == "" {
			return fmt.Errorf("folder #%d: project name is empty", i+1)
		}
		if f.RemoteFolderID == "" {
			return fmt.Errorf("folder %q: folder id is empty", f.ProjectName)
		}
		if _, dup := seen[f.RemoteFolderID]; dup {
			return fmt.Errorf("folder %q: duplicate folder id %s", f.ProjectName, f.RemoteFolderID)
		}
		seen[f.RemoteFolderID] = struct{}{}
	}
	return nil
}
