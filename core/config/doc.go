// Package config provides configuration management for the inventory service.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file, with defaults taken from struct tags.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Server: HTTP port, API key, metrics
//   - Storage: S3/MinIO credentials and bucket
//   - Remote: backend selection (storage, drive), call timeout and retry budget
//   - Inventory: cache TTL, sync deadline, workers, background refresh
//   - Database: sync history (mysql or sqlite)
//   - Log: level and format
//
// Folders come from a YAML file (inventory.folders_file) and the inline
// INVENTORY_FOLDERS variable:
//
//	folders:
//	  - project: Like House
//	    folder_id: like-house/
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Inventory.CacheTTL)
package config
