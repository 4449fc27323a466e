package logutil

import (
	"github.com/pingcap/log"
	"go.uber.org/zap"
)

// Config mirrors the handful of knobs the teacher's own Config.Log section
// exposes (level, format, optional file with rotation); txnbench.toml's
// [log] table binds directly onto this.
type Config struct {
	Level  string         `toml:"level" json:"level"`
	Format string         `toml:"format" json:"format"`
	File   log.FileLogConfig `toml:"file" json:"file"`
}

// New builds a *zap.Logger from cfg. A zero Config produces an info-level,
// text-format logger to stderr, matching InitLogger's own defaults when
// fields are left blank.
func New(cfg Config) (*zap.Logger, error) {
	logCfg := &log.Config{
		Level:  cfg.Level,
		Format: cfg.Format,
		File:   cfg.File,
	}
	logger, _, err := log.InitLogger(logCfg, zap.AddCaller())
	if err != nil {
		return nil, err
	}
	return logger, nil
}

// Named returns a child logger scoped to component, the same
// .Named(...)-per-subsystem convention the teacher threads through its
// scheduler/ and pd/ packages (heartbeat streams, cluster workers, and so
// on each carry their own name).
func Named(base *zap.Logger, component string) *zap.Logger {
	if base == nil {
		return zap.NewNop()
	}
	return base.Named(component)
}
