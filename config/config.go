package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/airlift-sh/airlift/constants"
)

// Config carries everything a deployment needs. It is built once per
// invocation by overlaying defaults, the config file and command-line
// flags (in that order, last write wins) and is not mutated afterwards.
type Config struct {
	// App is the platform application identifier
	App string `mapstructure:"app"`
	// Token is the platform API token
	Token string `mapstructure:"token"`
	// SrcDir is the directory containing the source to deploy
	SrcDir string `mapstructure:"src_dir"`
	// Env is the desired config var state for the application.
	// It is the complete desired state: any var present remotely but
	// absent here will be removed on reconciliation.
	Env map[string]string `mapstructure:"env"`
	// Buildpacks is the ordered buildpack URL list; empty means leave
	// the remote buildpack configuration alone
	Buildpacks []string `mapstructure:"buildpacks"`
	// Version is an optional build version label
	Version string `mapstructure:"version"`
	// Patterns is the ordered bundle include/exclude glob list;
	// entries prefixed with "!" exclude, later entries win
	Patterns []string `mapstructure:"patterns"`
	// Force skips the platform status check entirely
	Force bool `mapstructure:"force"`
	// GitVersion derives the build version label from the source
	// directory's HEAD commit, overriding Version
	GitVersion bool `mapstructure:"git_version"`
	// APIURL is the platform API root
	APIURL string `mapstructure:"api_url"`
	// StatusURL is the platform status API root
	StatusURL string `mapstructure:"status_url"`
}

// Load builds a Config from the supplied viper instance and validates
// it. Flag and env bindings are expected to be registered on v already,
// so viper's own precedence provides the defaults < file < flags overlay.
func Load(v *viper.Viper) (cfg *Config, err error) {
	v.SetDefault("api_url", constants.DefaultAPIURL)
	v.SetDefault("status_url", constants.DefaultStatusURL)

	cfg = &Config{}
	err = v.Unmarshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("cannot parse configuration: %v", err)
	}
	err = cfg.validate()
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var missing []string
	if c.App == "" {
		missing = append(missing, "app")
	}
	if c.Token == "" {
		missing = append(missing, "token")
	}
	if c.SrcDir == "" {
		missing = append(missing, "src-dir")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}
