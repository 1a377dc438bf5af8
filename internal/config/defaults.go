package config

// Default constants for application configuration
const (
	DefaultFormat    = FormatText
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "pretty"
	DefaultWorkers   = 8
	MaxWorkers       = 64
	configDirName    = "linkparse"
	configFileName   = "config.yml"
	envPrefix        = "LINKPARSE"
)

// Output formats understood by the renderer
const (
	FormatText  = "text"
	FormatTable = "table"
	FormatJSON  = "json"
	FormatID    = "id"
)

// Formats lists every supported output format
var Formats = []string{FormatText, FormatTable, FormatJSON, FormatID}

// DefaultConfig returns a config populated with defaults
func DefaultConfig() *Config {
	return &Config{
		Format:        DefaultFormat,
		LogLevel:      DefaultLogLevel,
		LogFormat:     DefaultLogFormat,
		Workers:       DefaultWorkers,
		WebDAVServers: map[string]WebDAVServer{},
	}
}
