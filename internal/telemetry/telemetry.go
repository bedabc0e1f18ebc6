// Package telemetry wires the application's structured logging and
// anonymous client identification.
package telemetry

import (
	"io"
	"os"
	"sync"

	"github.com/denisbrodbeck/machineid"
	"github.com/sirupsen/logrus"
)

const appName = "spotatui"

// Logger wraps a logrus.Logger configured per internal/config.LogConfig.
type Logger struct {
	*logrus.Logger
}

// NewLogger builds a Logger writing to stderr (or the given file path)
// at the given level. An empty level defaults to info.
func NewLogger(level, file string) (*Logger, error) {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	var out io.Writer = os.Stderr
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		out = f
	}
	log.SetOutput(out)

	return &Logger{Logger: log}, nil
}

// SetVerbose toggles debug-level logging, matching the CLI's --verbose flag.
func (l *Logger) SetVerbose(verbose bool) {
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.InfoLevel)
	}
}

var (
	idOnce   sync.Once
	clientID string
)

// ClientID returns a stable, anonymous per-machine identifier for
// attaching to log lines and Spotify device registrations. It never
// touches the network and never identifies the user.
func ClientID() string {
	idOnce.Do(func() {
		id, err := machineid.ProtectedID(appName)
		if err != nil || id == "" {
			clientID = "unknown"
			return
		}
		clientID = id
	})
	return clientID
}
