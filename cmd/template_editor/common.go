package main

import (
	"fmt"

	"github.com/jonathan/interview-template-editor/internal/api"
	"github.com/jonathan/interview-template-editor/internal/config"
)

var (
	configPath  string
	flagAPIURL  string
	flagTimeout string
	flagVerbose bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a JSON or YAML config file")
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "Template backend base URL (overrides TEMPLATE_API_URL)")
	rootCmd.PersistentFlags().StringVar(&flagTimeout, "timeout", "", "Per-request timeout, e.g. 30s (overrides TEMPLATE_API_TIMEOUT)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Print detailed debug information")
}

// resolveConfig layers flags over environment over the config file over
// built-in defaults.
func resolveConfig() (config.Config, error) {
	cfg := config.Default()

	if configPath != "" {
		fileCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = fileCfg.MergeWithDefaults(cfg)
	}

	env := config.FromEnv()
	cfg = env.MergeWithDefaults(cfg)

	flags := config.Config{
		APIURL:  flagAPIURL,
		Timeout: flagTimeout,
		Verbose: flagVerbose,
	}
	cfg = flags.MergeWithDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newClient builds the backend client from resolved configuration.
func newClient(cfg config.Config) (*api.Client, error) {
	client, err := api.NewClient(&api.Options{
		BaseURL:   cfg.APIURL,
		Timeout:   cfg.TimeoutDuration(),
		UserAgent: api.DefaultUserAgent,
		Headers:   cfg.Headers,
		Verbose:   cfg.Verbose,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}
	return client, nil
}
