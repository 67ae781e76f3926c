package logger

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
	With().Timestamp().Logger()

func GetLevel() string {
	return zerolog.GlobalLevel().String()
}

// SetLevel adjusts the global log level. An empty or unknown level falls
// back to debug.
func SetLevel(lvl string) {
	parsed, err := zerolog.ParseLevel(lvl)
	if err != nil || lvl == "" {
		parsed = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(parsed)
}

func Debug(args ...interface{}) {
	log.Debug().Msg(fmt.Sprint(args...))
}

func Info(args ...interface{}) {
	log.Info().Msg(fmt.Sprint(args...))
}

func Error(args ...interface{}) {
	log.Error().Msg(fmt.Sprint(args...))
}

func Debugf(template string, args ...interface{}) {
	log.Debug().Msgf(template, args...)
}

func Infof(template string, args ...interface{}) {
	log.Info().Msgf(template, args...)
}

func Errorf(template string, args ...interface{}) {
	log.Error().Msgf(template, args...)
}

// Fields logs a message with a structured field map.
func Fields(msg string, fields map[string]interface{}) {
	log.Info().Fields(fields).Msg(msg)
}
