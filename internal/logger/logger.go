package logger

import (
	"io"
	stdlog "log"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global zerolog logger for the gateway process.
// Development environments get a human-readable console writer; everything
// else logs JSON.
func Init(levelStr string, appEnv string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs

	level, parseErr := zerolog.ParseLevel(strings.ToLower(levelStr))
	if parseErr != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var output io.Writer = os.Stdout
	switch strings.ToLower(appEnv) {
	case "development", "dev":
		output = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	log.Logger = zerolog.New(output).With().Timestamp().Str("service", "trackventory-gateway").Logger()

	if parseErr != nil {
		log.Warn().Str("logLevel", levelStr).Msg("Unknown log level, defaulting to info")
	}

	// Route anything still using the standard logger through zerolog.
	stdlog.SetFlags(0)
	stdlog.SetOutput(log.Logger)
}
