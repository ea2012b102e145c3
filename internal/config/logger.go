package config

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger builds the process logger: human-readable output on console, plus
// JSON lines in a rotated LogFile when one is configured.
func (c *Config) Logger(console io.Writer) zerolog.Logger {
	var w io.Writer = zerolog.ConsoleWriter{Out: console, TimeFormat: time.DateTime}
	if c.LogFile != "" {
		w = zerolog.MultiLevelWriter(w, c.rotatingFile())
	}
	return zerolog.New(w).Level(c.Level()).With().Timestamp().Logger()
}

func (c *Config) rotatingFile() *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   c.LogFile,
		MaxSize:    max(c.LogFileMaxSizeMB, 1),
		MaxBackups: c.LogFileMaxBackups,
		Compress:   true,
	}
}
