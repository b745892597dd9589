package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/umalmyha/contacts/internal/config"
)

// New builds logrus logger writing to stdout
func New(cfg config.LogCfg) *logrus.Logger {
	return NewWithOutput(cfg, os.Stdout)
}

// NewWithOutput builds logrus logger, unknown level or format fall back to info and text
func NewWithOutput(cfg config.LogCfg, out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)

	switch strings.ToLower(cfg.Format) {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	case "", "text":
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		l.Warnf("unknown log format %q, falling back to text", cfg.Format)
	}

	if cfg.Level == "" {
		return l
	}

	lvl, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		l.Warnf("could not parse log level - %v", err)
		return l
	}
	l.SetLevel(lvl)

	return l
}
