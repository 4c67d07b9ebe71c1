// Package config handles loading and parsing dayflow configuration files.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/dayflow/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//  5. Apply DAYFLOW_* environment overrides last (a .env file in the
//     working directory is honored when present)
//
// # Default Values
//
//   - Config file: ~/.config/dayflow/config.toml
//   - API endpoint: 127.0.0.1:8080
//   - Member id: 1
//   - Governing zone: Asia/Seoul
//   - Poll interval: 30 seconds
//
// # TOML Format
//
// Example config.toml:
//
//	api_base = "127.0.0.1:8080"
//	member_id = 1
//	zone = "Asia/Seoul"
//	poll_seconds = 30
//
// All fields are optional. Tilde expansion is performed on the config path.
//
// # Environment Overrides
//
//   - DAYFLOW_API_BASE overrides api_base
//   - DAYFLOW_MEMBER_ID overrides member_id (positive integers only)
//   - DAYFLOW_ZONE overrides zone
//
// # Error Handling
//
// Load returns errors for path expansion failures, file read errors
// (except os.ErrNotExist, which triggers defaults), and TOML parsing
// errors. Missing config files are NOT an error - defaults are used
// instead, so dayflow works out-of-the-box without configuration.
//
// An invalid zone id is also not fatal: Config.Zone falls back to the
// default governing zone rather than failing startup.
package config
