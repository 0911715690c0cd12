// Package config loads the goshinden CLI settings from defaults, an optional
// goshinden.toml and GOSHINDEN_* environment variables, in increasing order
// of precedence.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alvarorichard/Goshinden/pkg/goshinden"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	AppName = "goshinden"

	KeyBaseURL          = "site.base_url"
	KeyAPIBaseURL       = "site.api_base_url"
	KeyCookie           = "site.cookie"
	KeyMaxRetries       = "fetch.max_retries"
	KeyRetryDelay       = "fetch.retry_delay"
	KeyTimeout          = "fetch.timeout"
	KeyBypassCloudflare = "fetch.bypass_cloudflare"
	KeyPlayerLoadDelay  = "player.load_delay"
	KeyDebug            = "log.debug"
)

// EnvKeyReplacer maps "fetch.max_retries" to GOSHINDEN_FETCH_MAX_RETRIES
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Defaults mirrors goshinden.DefaultOptions
func Defaults() map[string]any {
	opts := goshinden.DefaultOptions()
	return map[string]any{
		KeyBaseURL:          opts.BaseURL,
		KeyAPIBaseURL:       opts.APIBaseURL,
		KeyCookie:           "",
		KeyMaxRetries:       opts.MaxRetries,
		KeyRetryDelay:       opts.RetryDelay,
		KeyTimeout:          opts.Timeout,
		KeyBypassCloudflare: false,
		KeyPlayerLoadDelay:  opts.PlayerLoadDelay,
		KeyDebug:            false,
	}
}

// Dir is where goshinden.toml is looked up when no explicit file is given
func Dir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, AppName)
	}
	return "."
}

// Load builds a viper instance. A missing config file is not an error;
// an explicit file that cannot be read is.
func Load(file string) (*viper.Viper, error) {
	v := viper.New()

	v.SetEnvPrefix(AppName)
	v.SetEnvKeyReplacer(EnvKeyReplacer)
	v.AutomaticEnv()

	v.SetTypeByDefaultValue(true)
	for key, value := range Defaults() {
		v.SetDefault(key, value)
	}

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(AppName)
		v.SetConfigType("toml")
		v.AddConfigPath(Dir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file == "" && errors.As(err, &notFound) {
			return v, nil
		}
		return nil, errors.Wrap(err, "failed to read config")
	}
	return v, nil
}

// Options turns the loaded settings into library options
func Options(v *viper.Viper) goshinden.Options {
	return goshinden.Options{
		BaseURL:          v.GetString(KeyBaseURL),
		APIBaseURL:       v.GetString(KeyAPIBaseURL),
		MaxRetries:       v.GetInt(KeyMaxRetries),
		RetryDelay:       v.GetDuration(KeyRetryDelay),
		PlayerLoadDelay:  v.GetDuration(KeyPlayerLoadDelay),
		Timeout:          v.GetDuration(KeyTimeout),
		BypassCloudflare: v.GetBool(KeyBypassCloudflare),
		FrontendCookie:   v.GetString(KeyCookie),
	}
}

// Debug reports whether debug logging was requested
func Debug(v *viper.Viper) bool {
	return v.GetBool(KeyDebug)
}
