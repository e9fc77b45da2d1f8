package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger printf-style логгер сервиса поверх charmbracelet/log
// Пишет в stdout и (если указан файл) в файл с ротацией
type Logger struct {
	l      *log.Logger
	closer io.Closer
}

// New создает логгер
// file - путь к файлу логов (пустая строка - только stdout)
// level - debug | info | warn | error
func New(file, level string) (*Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	var (
		writer io.Writer = os.Stdout
		closer io.Closer
	)

	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return nil, fmt.Errorf("logger: create log dir: %w", err)
		}

		fileWriter := &lumberjack.Logger{
			Filename:   file,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		writer = io.MultiWriter(os.Stdout, fileWriter)
		closer = fileWriter
	}

	l := log.NewWithOptions(writer, log.Options{
		ReportTimestamp: true,
		Level:           lvl,
		Prefix:          "slot-booking",
	})

	return &Logger{l: l, closer: closer}, nil
}

// NewDiscard создает логгер, который ничего не пишет (для тестов)
func NewDiscard() *Logger {
	return &Logger{l: log.NewWithOptions(io.Discard, log.Options{Level: log.DebugLevel})}
}

func (lg *Logger) Debug(format string, v ...interface{}) {
	lg.l.Debugf(format, v...)
}

func (lg *Logger) Info(format string, v ...interface{}) {
	lg.l.Infof(format, v...)
}

func (lg *Logger) Warn(format string, v ...interface{}) {
	lg.l.Warnf(format, v...)
}

func (lg *Logger) Error(format string, v ...interface{}) {
	lg.l.Errorf(format, v...)
}

// Fatal логирует ошибку и завершает процесс
func (lg *Logger) Fatal(format string, v ...interface{}) {
	lg.l.Errorf(format, v...)
	_ = lg.Close()
	os.Exit(1)
}

// Close закрывает файл логов
func (lg *Logger) Close() error {
	if lg.closer == nil {
		return nil
	}
	return lg.closer.Close()
}

func parseLevel(level string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel, nil
	case "", "info":
		return log.InfoLevel, nil
	case "warn", "warning":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	default:
		return log.InfoLevel, fmt.Errorf("logger: unknown level %q", level)
	}
}
