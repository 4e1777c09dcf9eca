// Package config loads runtime configuration for the social CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the node gRPC endpoint
//	-i int      online status check interval (seconds)
//	-k string   keypair file
//	-db string  snapshot cache database
//	-t int      per-command request timeout (seconds)
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "3s"
// or integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "online_check_interval": "3s",
//	  "keypair_path": "~/.config/social/id.json",
//	  "cache_dsn": "social.db",
//	  "request_timeout": "10s"
//	}
package config
