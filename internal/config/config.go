package config

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aretw0/techseo/pkg/crosspost"
	"github.com/aretw0/techseo/pkg/gsc"
	"github.com/aretw0/techseo/pkg/llms"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TECHSEO_"

// Config is the application configuration.
type Config struct {
	Site         llms.Site    `yaml:"site" json:"site"`
	PostsDir     string       `yaml:"posts_dir" json:"posts_dir"`
	Log          Log          `yaml:"log" json:"log"`
	HTTP         HTTP         `yaml:"http" json:"http"`
	CrossPosting CrossPosting `yaml:"crossposting" json:"crossposting"`
	GSC          GSC          `yaml:"gsc" json:"gsc"`
	Redis        Redis        `yaml:"redis" json:"redis"`
}

// Log configures the application logger.
type Log struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

// HTTP configures the server.
type HTTP struct {
	Addr    string `yaml:"addr" json:"addr"`
	Metrics bool   `yaml:"metrics" json:"metrics"`
}

// CrossPosting configures the cross-posting module.
type CrossPosting struct {
	Enabled bool           `yaml:"enabled" json:"enabled"`
	Limits  map[string]int `yaml:"limits" json:"limits"`
}

// GSC configures the Search Console integration.
type GSC struct {
	ClientID     string `yaml:"client_id" json:"client_id"`
	ClientSecret string `yaml:"client_secret" json:"client_secret"`
	RedirectURL  string `yaml:"redirect_url" json:"redirect_url"`
	// AdminURL receives the browser after the OAuth callback.
	AdminURL string `yaml:"admin_url" json:"admin_url"`
	// TokenKeys are base64 AES-256 keys encrypting the stored token. The
	// first one encrypts; the rest are only tried when decrypting.
	TokenKeys []string `yaml:"token_keys" json:"token_keys"`
}

// Redis selects the Redis token store. An empty Addr keeps tokens in memory.
type Redis struct {
	Addr   string `yaml:"addr" json:"addr"`
	Prefix string `yaml:"prefix" json:"prefix"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Site:     llms.Site{Name: "techseo", Home: "http://localhost:8080/"},
		PostsDir: ".",
		Log:      Log{Level: "info", Format: "text"},
		HTTP:     HTTP{Addr: ":8080", Metrics: true},
		CrossPosting: CrossPosting{
			Enabled: true,
		},
		GSC: GSC{
			RedirectURL: "http://localhost:8080/gsc/callback",
			AdminURL:    "/",
		},
		Redis: Redis{Prefix: "techseo:"},
	}
}

// Load reads path (YAML, or JSON by extension) over the defaults and then
// applies environment overrides. A missing file is not an error; an empty
// path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return cfg, fmt.Errorf("failed to read config: %w", err)
		case strings.ToLower(filepath.Ext(path)) == ".json":
			if err := json.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
			}
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
			}
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"SITE_NAME":         &c.Site.Name,
		"SITE_HOME":         &c.Site.Home,
		"POSTS_DIR":         &c.PostsDir,
		"LOG_LEVEL":         &c.Log.Level,
		"LOG_FORMAT":        &c.Log.Format,
		"HTTP_ADDR":         &c.HTTP.Addr,
		"GSC_CLIENT_ID":     &c.GSC.ClientID,
		"GSC_CLIENT_SECRET": &c.GSC.ClientSecret,
		"GSC_REDIRECT_URL":  &c.GSC.RedirectURL,
		"GSC_ADMIN_URL":     &c.GSC.AdminURL,
		"REDIS_ADDR":        &c.Redis.Addr,
		"REDIS_PREFIX":      &c.Redis.Prefix,
	}
	for key, dst := range strs {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = v
		}
	}

	bools := map[string]*bool{
		"CROSSPOSTING_ENABLED": &c.CrossPosting.Enabled,
		"HTTP_METRICS":         &c.HTTP.Metrics,
	}
	for key, dst := range bools {
		v, ok := lookup(EnvPrefix + key)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
		}
		*dst = b
	}

	if v, ok := lookup(EnvPrefix + "GSC_TOKEN_KEYS"); ok {
		c.GSC.TokenKeys = nil
		for _, k := range strings.Split(v, ",") {
			if k = strings.TrimSpace(k); k != "" {
				c.GSC.TokenKeys = append(c.GSC.TokenKeys, k)
			}
		}
	}

	for _, p := range crosspost.Platforms() {
		key := "LIMIT_" + strings.ToUpper(string(p))
		v, ok := lookup(EnvPrefix + key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
		}
		if c.CrossPosting.Limits == nil {
			c.CrossPosting.Limits = make(map[string]int)
		}
		c.CrossPosting.Limits[string(p)] = n
	}
	return nil
}

// Validate rejects unknown platforms, non-positive limits and malformed token keys.
func (c Config) Validate() error {
	if _, err := c.GSC.Keys(); err != nil {
		return err
	}
	for name, n := range c.CrossPosting.Limits {
		p, ok := crosspost.ParsePlatform(name)
		if !ok {
			return fmt.Errorf("crossposting.limits: unknown platform %q", name)
		}
		if p.Long() {
			return fmt.Errorf("crossposting.limits: %s has no character limit", p)
		}
		if n <= 0 {
			return fmt.Errorf("crossposting.limits.%s: must be positive, got %d", name, n)
		}
	}
	return nil
}

// PlatformLimits converts the configured limits for the crosspost package.
func (c CrossPosting) PlatformLimits() crosspost.Limits {
	out := make(crosspost.Limits, len(c.Limits))
	for name, n := range c.Limits {
		if p, ok := crosspost.ParsePlatform(name); ok {
			out[p] = n
		}
	}
	return out
}

// Keys decodes TokenKeys. Each key must be 32 bytes once decoded.
func (g GSC) Keys() ([][]byte, error) {
	keys := make([][]byte, 0, len(g.TokenKeys))
	for i, k := range g.TokenKeys {
		key, err := base64.StdEncoding.DecodeString(k)
		if err != nil {
			return nil, fmt.Errorf("gsc.token_keys[%d]: %w", i, err)
		}
		if len(key) != 32 {
			return nil, fmt.Errorf("gsc.token_keys[%d]: must decode to 32 bytes, got %d", i, len(key))
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// OAuth returns the Search Console client credentials.
func (g GSC) OAuth() gsc.Config {
	return gsc.Config{
		ClientID:     g.ClientID,
		ClientSecret: g.ClientSecret,
		RedirectURL:  g.RedirectURL,
	}
}
