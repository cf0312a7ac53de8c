// Package logging sets up the file-backed logger. The terminal belongs
// to the UI, so nothing is ever written to stdout or stderr.
package logging

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
)

const (
	appName     = "whitehole"
	logFileName = "whitehole.log"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
}

// Open creates a logger writing to the xdg state directory. The returned
// close func flushes and closes the underlying file.
func Open() (zerolog.Logger, func(), error) {
	path, err := xdg.StateFile(filepath.Join(appName, logFileName))
	if err != nil {
		return zerolog.Nop(), func() {}, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), func() {}, err
	}

	logger := zerolog.New(f).With().Timestamp().Logger().Level(zerolog.InfoLevel)
	return logger, func() { _ = f.Close() }, nil
}

// Nop returns a logger that discards everything. Used when the state
// directory is unavailable; a player must keep working without logs.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
