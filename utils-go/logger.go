package utils

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func ConfigureLogger(config BaseConfig) {
	zerolog.TimeFieldFormat = time.RFC3339

	level, err := zerolog.ParseLevel(config.GetLogLevel())
	if err != nil || config.GetLogLevel() == "" {
		level = zerolog.InfoLevel
		if !config.GetIsProduction() {
			level = zerolog.DebugLevel
		}
	}
	zerolog.SetGlobalLevel(level)

	if config.GetIsProduction() {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Str("app", config.GetAppName()).Logger()
		return
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
}
