package config

const (
	defaultDataDir               = "~/.local/share/mythus"
	defaultLogDir                = "~/.local/share/mythus/logs"
	defaultAPIBaseURL            = "http://127.0.0.1:8000"
	defaultAPIRequestTimeout     = 30
	defaultScenePageLimit        = 500
	defaultScenePreviewLength    = 160
	defaultSceneBulkParallelism  = 4
	defaultStatusPollInterval    = 3
	defaultStatusPollMaxAttempts = 100
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		API: API{
			BaseURL:        defaultAPIBaseURL,
			RequestTimeout: defaultAPIRequestTimeout,
		},
		Scenes: Scenes{
			PageLimit:       defaultScenePageLimit,
			PreviewLength:   defaultScenePreviewLength,
			BulkParallelism: defaultSceneBulkParallelism,
		},
		Workflow: Workflow{
			StatusPollInterval:    defaultStatusPollInterval,
			StatusPollMaxAttempts: defaultStatusPollMaxAttempts,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
