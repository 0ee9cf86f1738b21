package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"realty-inventory/core/database"
	"realty-inventory/core/inventory"
	"realty-inventory/core/logger"
	"realty-inventory/core/remote"
	"realty-inventory/core/server"
	"realty-inventory/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrNoFolders is returned when a command needs folders and none are configured.
var ErrNoFolders = errors.New("no inventory folders configured")

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Remote selects and tunes the remote folder backend.
	Remote remote.Config `mapstructure:"remote"`
	// Inventory holds cache and sync settings.
	Inventory InventoryConfig `mapstructure:"inventory"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the sync history database.
	Database database.Config `mapstructure:"database"`

	// Folders is the merged folder list from the folders file and INVENTORY_FOLDERS.
	Folders []inventory.FolderConfig `mapstructure:"-"`
}

// LoadConfig loads configuration from environment variables and .env file,
// then reads the folder list.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. INVENTORY_CACHE_TTL -> inventory.cache_ttl)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	folders, err := loadFolders(path, config.Inventory)
	if err != nil {
		return nil, err
	}
	config.Folders = folders

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks enumerated settings and the folder list.
func (c *Config) Validate() error {
	if !c.Remote.IsValidProvider() {
		return fmt.Errorf("invalid remote provider %q (expected %s or %s)", c.Remote.Provider, remote.ProviderStorage, remote.ProviderDrive)
	}
	if c.Remote.Provider == remote.ProviderStorage {
		if err := c.Storage.Validate(); err != nil {
			return err
		}
	}
	if !c.Database.IsValidDriver() {
		return fmt.Errorf("invalid database driver %q (expected %s or %s)", c.Database.Driver, database.DriverMySQL, database.DriverSQLite)
	}
	return ValidateFolders(c.Folders)
}

// RequireFolders fails when no folder is configured.
func (c *Config) RequireFolders() error {
	if len(c.Folders) == 0 {
		return fmt.Errorf("%w: set inventory.folders_file or INVENTORY_FOLDERS", ErrNoFolders)
	}
	return nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip untagged and explicitly ignored fields
		if tag == "" || tag == "-" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
