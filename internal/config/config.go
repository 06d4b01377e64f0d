// Package config provides configuration management for Quill using Viper
// for flexible configuration loading from files, environment variables, and
// command-line flags.
//
// The configuration system supports YAML files, environment variable
// overrides with a QUILL_ prefix, and validation. It manages server
// settings, content scan roots, site metadata, static build output, and
// development options like hot reload.
package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Site        SiteConfig        `yaml:"site"`
	Content     ContentConfig     `yaml:"content"`
	Build       BuildConfig       `yaml:"build"`
	Development DevelopmentConfig `yaml:"development"`
}

type ServerConfig struct {
	Port           int      `yaml:"port"`
	Host           string   `yaml:"host"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	Environment    string   `yaml:"environment"`
}

type SiteConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Author      string `yaml:"author"`
	BaseURL     string `yaml:"base_url"`
}

type ContentConfig struct {
	Roots           []string `yaml:"roots"`
	ExcludePatterns []string `yaml:"exclude_patterns"`
	StaticDir       string   `yaml:"static_dir"`
	IncludeDrafts   bool     `yaml:"include_drafts"`
}

type BuildConfig struct {
	OutputDir string `yaml:"output_dir"`
	Clean     bool   `yaml:"clean"`
}

type DevelopmentConfig struct {
	HotReload bool `yaml:"hot_reload"`
}

func Load() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Apply defaults for content roots only if not explicitly set
	if !viper.IsSet("content.roots") && len(config.Content.Roots) == 0 {
		config.Content.Roots = []string{"./content"}
	}

	// Handle roots set via viper (workaround for viper slice handling)
	if viper.IsSet("content.roots") && len(config.Content.Roots) == 0 {
		roots := viper.GetStringSlice("content.roots")
		if len(roots) > 0 {
			config.Content.Roots = roots
		}
	}

	// Handle allowed origins set via viper (workaround for viper slice handling)
	if viper.IsSet("server.allowed_origins") && len(config.Server.AllowedOrigins) == 0 {
		origins := viper.GetStringSlice("server.allowed_origins")
		if len(origins) > 0 {
			config.Server.AllowedOrigins = origins
		}
	}

	// Handle exclude patterns set via viper (workaround for viper slice handling)
	if viper.IsSet("content.exclude_patterns") && len(config.Content.ExcludePatterns) == 0 {
		excludePatterns := viper.GetStringSlice("content.exclude_patterns")
		if len(excludePatterns) > 0 {
			config.Content.ExcludePatterns = excludePatterns
		}
	}
	if len(config.Content.ExcludePatterns) == 0 {
		config.Content.ExcludePatterns = []string{"*.draft.md", "README.md"}
	}

	// Handle boolean settings set via viper (workaround for viper bool handling)
	if viper.IsSet("content.include_drafts") {
		config.Content.IncludeDrafts = viper.GetBool("content.include_drafts")
	}
	if viper.IsSet("development.hot_reload") {
		config.Development.HotReload = viper.GetBool("development.hot_reload")
	} else {
		config.Development.HotReload = true
	}
	if viper.IsSet("build.clean") {
		config.Build.Clean = viper.GetBool("build.clean")
	}

	// Apply default values for ServerConfig if not set
	if config.Server.Port == 0 {
		config.Server.Port = viper.GetInt("server.port")
	}
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Server.Host == "" {
		config.Server.Host = viper.GetString("server.host")
	}
	if config.Server.Host == "" {
		config.Server.Host = "localhost"
	}
	if config.Server.Environment == "" {
		config.Server.Environment = "development"
	}

	// Apply default values for SiteConfig if not set
	if config.Site.Title == "" {
		config.Site.Title = viper.GetString("site.title")
	}
	if config.Site.Title == "" {
		config.Site.Title = "Quill"
	}

	// Apply default values for BuildConfig if not set
	if config.Build.OutputDir == "" {
		config.Build.OutputDir = viper.GetString("build.output_dir")
	}
	if config.Build.OutputDir == "" {
		config.Build.OutputDir = "public"
	}

	if config.Content.StaticDir == "" {
		config.Content.StaticDir = viper.GetString("content.static_dir")
	}
	if config.Content.StaticDir == "" {
		config.Content.StaticDir = "static"
	}

	if err := Validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
