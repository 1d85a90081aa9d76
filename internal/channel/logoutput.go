package channel

// LogOutput is an Output that logs each transition. It stands in for
// physical hardware on development machines.
type LogOutput struct {
	name   string
	logger Logger
}

// NewLogOutput creates a log-backed output for the named channel.
func NewLogOutput(name string, logger Logger) *LogOutput {
	if logger == nil {
		logger = noopLogger{}
	}
	return &LogOutput{name: name, logger: logger}
}

// On implements Output.
func (o *LogOutput) On() {
	o.logger.Debug("channel on", "channel", o.name)
}

// Off implements Output.
func (o *LogOutput) Off() {
	o.logger.Debug("channel off", "channel", o.name)
}
