package config

const (
	defaultPostersDir         = "~/posters"
	defaultStateDir           = "~/.local/share/postersync"
	defaultLogDir             = "~/.local/share/postersync/logs"
	defaultPlexTimeoutSeconds = 30
	defaultSkipMarker         = "***"
	defaultSuggestLimit       = 3
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

var defaultSectionTypes = []string{"movie"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Plex: Plex{
			TimeoutSeconds: defaultPlexTimeoutSeconds,
		},
		Paths: Paths{
			PostersDir: defaultPostersDir,
			StateDir:   defaultStateDir,
			LogDir:     defaultLogDir,
		},
		Sync: Sync{
			SectionTypes: append([]string(nil), defaultSectionTypes...),
			SkipMarker:   defaultSkipMarker,
			HashCache:    true,
			SuggestLimit: defaultSuggestLimit,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
