// FILE: lixenwraith/runlog/builder.go
package runlog

// Builder provides a fluent API for building logger configurations.
// It wraps a Config instance and provides chainable methods for setting values.
type Builder struct {
	cfg *Config
	err error // Accumulate errors for deferred handling
}

// NewBuilder creates a new configuration builder with default values.
func NewBuilder() *Builder {
	return &Builder{
		cfg: DefaultConfig(),
	}
}

// Build creates a new Logger instance with the specified configuration.
// The logger is configured but not started.
func (b *Builder) Build() (*Logger, error) {
	if b.err != nil {
		return nil, b.err
	}

	logger := NewLogger()

	// ApplyConfig handles validation
	if err := logger.ApplyConfig(b.cfg); err != nil {
		return nil, err
	}

	return logger, nil
}

// Override applies "key=value" overrides on top of the values set so far.
func (b *Builder) Override(overrides ...string) *Builder {
	if b.err != nil {
		return b
	}
	var errs []error
	for _, o := range overrides {
		key, value, err := parseKeyValue(o)
		if err == nil {
			err = applyConfigField(b.cfg, key, value)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	b.err = combineConfigErrors(errs)
	return b
}

// Name sets the log file name prefix.
func (b *Builder) Name(name string) *Builder {
	b.cfg.Name = name
	return b
}

// Directory sets the log directory.
func (b *Builder) Directory(dir string) *Builder {
	b.cfg.Directory = dir
	return b
}

// Extension sets the log file extension.
func (b *Builder) Extension(ext string) *Builder {
	b.cfg.Extension = ext
	return b
}

// CrashDirectory enables crash log discovery in dir.
func (b *Builder) CrashDirectory(dir string) *Builder {
	b.cfg.CrashDirectory = dir
	return b
}

// RetentionCount sets the maximum number of run logs kept.
func (b *Builder) RetentionCount(count int64) *Builder {
	b.cfg.RetentionCount = count
	return b
}

// MaxSizeKB sets the size in KB past which a new log file is started.
func (b *Builder) MaxSizeKB(size int64) *Builder {
	b.cfg.MaxSizeKB = size
	return b
}

// Verbose persists debug records.
func (b *Builder) Verbose(enable bool) *Builder {
	b.cfg.Verbose = enable
	return b
}

// Unfiltered disables flood suppression.
func (b *Builder) Unfiltered(enable bool) *Builder {
	b.cfg.Unfiltered = enable
	return b
}

// MirrorDebug mirrors records to an attached debugger or console.
func (b *Builder) MirrorDebug(enable bool) *Builder {
	b.cfg.MirrorDebug = enable
	return b
}

// BreakOnError invokes the break hook on error records when a debugger is attached.
func (b *Builder) BreakOnError(enable bool) *Builder {
	b.cfg.BreakOnError = enable
	return b
}

// TimestampFormat sets the layout of the line timestamp.
func (b *Builder) TimestampFormat(layout string) *Builder {
	b.cfg.TimestampFormat = layout
	return b
}

// PollIntervalMs sets the worker idle wake interval.
func (b *Builder) PollIntervalMs(interval int64) *Builder {
	b.cfg.PollIntervalMs = interval
	return b
}

// HeartbeatIntervalS sets the statistics record interval, 0 disables it.
func (b *Builder) HeartbeatIntervalS(interval int64) *Builder {
	b.cfg.HeartbeatIntervalS = interval
	return b
}

// Example usage:
// logger, err := runlog.NewBuilder().
//
//	Directory("/var/log/app").
//	RetentionCount(5).
//	Verbose(true).
//	Build()
//
// if err == nil && logger.Start() == nil {
//
//	 defer logger.Shutdown()
//	 logger.Infof("Logger initialized, previous run: %s", logger.PreviousLog())
//
// }
