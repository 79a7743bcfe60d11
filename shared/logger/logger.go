package logger

import (
	"io"
	"os"
	"shareit/config"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultLevel = zerolog.TraceLevel

	logFileMaxSizeMB  = 50
	logFileMaxBackups = 5
	logFileMaxAgeDays = 14
)

func console() io.Writer {
	return zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
}

// InitLogger points the global logger at a human readable console at the most verbose level.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(defaultLevel)

	log.Logger = log.Output(console())
	log.Trace().Msg("Zerolog initialized.")
}

// ErrorWithStack logs err with the stack of the caller attached.
func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

// SetLogLevel applies SERVER_LOG_LEVEL. Unknown or missing levels keep everything.
func SetLogLevel(config *config.Config) {
	level, err := zerolog.ParseLevel(config.Server.LogLevel)
	if err != nil || config.Server.LogLevel == "" {
		level = defaultLevel
	}

	zerolog.SetGlobalLevel(level)
	log.Debug().Str("loglevel", level.String()).Msg("Log level applied.")
}

// SetFileOutput mirrors log output into a size-rotated file when SERVER_LOG_FILE is set.
// The returned closer is nil when file output is disabled.
func SetFileOutput(config *config.Config) io.Closer {
	if config.Server.LogFile == "" {
		return nil
	}

	file := &lumberjack.Logger{
		Filename:   config.Server.LogFile,
		MaxSize:    logFileMaxSizeMB,
		MaxBackups: logFileMaxBackups,
		MaxAge:     logFileMaxAgeDays,
		Compress:   true,
	}

	log.Logger = log.Output(zerolog.MultiLevelWriter(console(), file))
	log.Info().Str("file", config.Server.LogFile).Msg("Log file output enabled.")

	return file
}
