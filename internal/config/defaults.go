package config

const (
	defaultConfigPath = "~/.config/smalirename/config.toml"
	projectConfigName = "smalirename.toml"
	defaultLeafDir    = "smali"
	defaultDescriptor = "AndroidManifest.xml"
	defaultExtension  = ".smali"
	defaultSeparator  = "$"
	defaultPrefix     = "Class"
	defaultStateDir   = "~/.local/state/smalirename"
	defaultLogFormat  = "console"
	defaultLogLevel   = "info"
	envLogLevel       = "SMALIRENAME_LOG_LEVEL"
	envLogFormat      = "SMALIRENAME_LOG_FORMAT"
	envStateDir       = "SMALIRENAME_STATE_DIR"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Layout: Layout{
			LeafDir:    defaultLeafDir,
			Descriptor: defaultDescriptor,
			Extension:  defaultExtension,
			Separator:  defaultSeparator,
			Prefix:     defaultPrefix,
		},
		Paths: Paths{
			StateDir: defaultStateDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
