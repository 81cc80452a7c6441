package config

// Application constants
const (
	AppName = "Trade Routes Dashboard"

	// EnvPrefix namespaces every environment variable.
	EnvPrefix = "TRADE"

	// ConfigFileEnv overrides the configuration file search.
	ConfigFileEnv = "TRADE_CONFIG_FILE"

	// Bounded user input
	MaxTradeTypesPerSelection = 64
	MaxQueryValueLength       = 128
)

// configFileLocations are searched in order when ConfigFileEnv is unset.
var configFileLocations = []string{
	"config.yaml",
	"configs/config.yaml",
}
