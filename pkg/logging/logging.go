package logging

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
)

var (
	logger *slog.Logger

	programLevel = new(slog.LevelVar) // Info by default
)

func init() {
	// The level is set when flag.Parse sees the flag, which happens after
	// package initialization.
	flag.BoolFunc("logging.debug", "Enable debug logging", func(s string) error {
		debug, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		if debug {
			programLevel.Set(slog.LevelDebug)
		}
		return nil
	})

	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: programLevel}))
}

func SetLevel(level slog.Level) {
	programLevel.Set(level)
}

func Info(a ...any) {
	logger.Info(fmt.Sprint(a...))
}

func Infof(format string, v ...interface{}) {
	logger.Info(fmt.Sprintf(format, v...))
}

func Error(a ...any) {
	logger.Error(fmt.Sprint(a...))
}

func Errorf(format string, v ...interface{}) {
	logger.Error(fmt.Sprintf(format, v...))
}

func Debug(a ...any) {
	logger.Debug(fmt.Sprint(a...))
}

func Debugf(format string, v ...interface{}) {
	logger.Debug(fmt.Sprintf(format, v...))
}

func Warn(a ...any) {
	logger.Warn(fmt.Sprint(a...))
}

func Warnf(format string, v ...interface{}) {
	logger.Warn(fmt.Sprintf(format, v...))
}
