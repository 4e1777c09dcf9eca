package config

import "time"

// Config holds runtime settings for the social CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the node's gRPC endpoint.
//   - OnlineCheckInterval: how often the client probes node reachability.
//   - KeypairPath: JSON keypair file holding the identity.
//   - CacheDSN: SQLite database for the local record snapshots.
//   - RequestTimeout: deadline applied to each command's RPCs.
type Config struct {
	ServerEndpointAddr  string
	OnlineCheckInterval time.Duration
	KeypairPath         string
	CacheDSN            string
	RequestTimeout      time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.KeypairPath = "id.json"
	c.CacheDSN = "social.db"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
