package config

// LoggingConfig shapes the diagnostic log stream the solve pipeline emits
// through the context logger.
type LoggingConfig struct {
	// Level is the minimum level written: debug, info, warn, error. The CLI's
	// --verbose flag lowers it to debug for that invocation.
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`

	// Format is "json" for one object per line, or "text" for terminals.
	Format string `mapstructure:"format" validate:"required,oneof=json text"`

	// Output is "stdout" or "stderr". Results go to stdout, so stderr keeps
	// solve output pipeable.
	Output string `mapstructure:"output" validate:"required,oneof=stdout stderr"`
}
