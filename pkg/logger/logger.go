package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config controla el formato y el nivel del logger.
// Env "development" imprime consola legible; cualquier otro valor, JSON por línea.
type Config struct {
	Env   string
	Level string // trace, debug, info, warn, error; inválido o vacío cae a info
}

// Logger expone los niveles que usa la aplicación sobre un zerolog.Logger.
type Logger struct {
	zl zerolog.Logger
}

// New construye el logger de la aplicación y redirige además el logger
// global de zerolog, así los paquetes que loguean vía log.Error() (handlers)
// salen con el mismo formato y nivel.
func New(cfg Config) *Logger {
	var w io.Writer = os.Stdout
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	zl := zerolog.New(w).Level(level).With().Timestamp().Logger()
	log.Logger = zl

	return &Logger{zl: zl}
}

func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }
