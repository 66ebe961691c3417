package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// Config keys. Env vars are the upper-cased key with dots replaced by underscores.
const (
	keyPort           = "port"
	keyDatabaseURL    = "database_url"
	keySecret         = "secret"
	keyLogLevel       = "log.level"
	keyAuthEnabled    = "auth.enabled"
	keyCookieDomain   = "session.cookie_domain"
	keyLegacyStatus   = "compat.legacy_status"
	keyAllowedOrigins = "cors.allowed_origins"
)

var ErrMissingSecret = errors.New("secret is required when auth is enabled")

type Config struct {
	Port           string
	DatabaseURL    string
	Secret         string
	LogLevel       string
	AuthEnabled    bool
	CookieDomain   string
	LegacyStatus   bool
	AllowedOrigins []string
}

// Options controls where Load looks for files. Zero value uses configs/config.yml and ./.env.
type Options struct {
	ConfigDir string
	EnvFile   string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(keyPort, "8000")
	v.SetDefault(keyDatabaseURL, "app.db")
	v.SetDefault(keySecret, "")
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyAuthEnabled, true)
	v.SetDefault(keyCookieDomain, "localhost")
	v.SetDefault(keyLegacyStatus, false)
	v.SetDefault(keyAllowedOrigins, []string{"*"})
}

// Load resolves configuration from defaults, configs/config.yml, a .env file and the
// process environment, later sources winning. Missing files are not an error.
func Load(opts Options) (*Config, error) {
	if opts.ConfigDir == "" {
		opts.ConfigDir = "configs"
	}
	if opts.EnvFile == "" {
		opts.EnvFile = ".env"
	}

	v := viper.New()
	setDefaults(v)

	v.AddConfigPath(opts.ConfigDir) // configs/config.yml
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	if err := mergeEnvFile(v, opts.EnvFile); err != nil {
		return nil, err
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Port:           v.GetString(keyPort),
		DatabaseURL:    v.GetString(keyDatabaseURL),
		Secret:         v.GetString(keySecret),
		LogLevel:       v.GetString(keyLogLevel),
		AuthEnabled:    v.GetBool(keyAuthEnabled),
		CookieDomain:   v.GetString(keyCookieDomain),
		LegacyStatus:   v.GetBool(keyLegacyStatus),
		AllowedOrigins: splitOrigins(v.GetStringSlice(keyAllowedOrigins)),
	}
	return cfg, cfg.Validate()
}

// mergeEnvFile folds a dotenv file into the config layer of v, so real environment
// variables still win. Keys there are env-style (SECRET, LOG_LEVEL) and are mapped back
// onto the dotted key they override.
func mergeEnvFile(v *viper.Viper, path string) error {
	env := viper.New()
	env.SetConfigFile(path)
	env.SetConfigType("env")
	if err := env.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read env file %s: %w", path, err)
	}

	values := map[string]any{}
	for _, key := range v.AllKeys() {
		envKey := strings.ToLower(strings.ReplaceAll(key, ".", "_"))
		if env.IsSet(envKey) {
			nest(values, strings.Split(key, "."), env.Get(envKey))
		}
	}
	if err := v.MergeConfigMap(values); err != nil {
		return fmt.Errorf("merge env file %s: %w", path, err)
	}
	return nil
}

func nest(m map[string]any, path []string, val any) {
	for _, k := range path[:len(path)-1] {
		next, ok := m[k].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[k] = next
		}
		m = next
	}
	m[path[len(path)-1]] = val
}

// splitOrigins accepts both list values and a single comma separated string (env form).
func splitOrigins(in []string) []string {
	var out []string
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func (c *Config) Validate() error {
	if c.AuthEnabled && strings.TrimSpace(c.Secret) == "" {
		return ErrMissingSecret
	}
	if strings.TrimSpace(c.Port) == "" {
		return errors.New("port is empty")
	}
	return nil
}
