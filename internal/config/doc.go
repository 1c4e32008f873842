// Package config loads the Tally client configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/tally/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing or empty, use defaults
//
// # Configuration Fields
//
//	api_base         backend base URL        http://127.0.0.1:8080/api
//	api_token        bearer token            (none)
//	request_timeout  HTTP timeout, seconds   15
//	rate_limit       requests per second     0 (unlimited)
//	page_size        rows per page           10
//	debounce_ms      search quiet period     400
//	log_dir          log directory           ~/.local/state/tally
//	log_level        debug|info|warn|error   info
//	redis_addr       host:port of the cache  (none, in-memory only)
//	cache_ttl        cache TTL, seconds      600
//
// Out-of-range numbers are rejected rather than clamped so a typo does not
// silently change behaviour. Paths starting with ~ are expanded to the
// user's home directory.
//
// # Example
//
//	api_base = "https://tally.example.com/api"
//	api_token = "..."
//	page_size = 25
//	redis_addr = "127.0.0.1:6379"
package config
