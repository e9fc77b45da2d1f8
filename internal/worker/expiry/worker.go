// Package expiry периодически помечает просроченными бронирования, чей слот уже начался
package expiry

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/usecase/sweep_expired"
)

// Sweeper один прогон очистки
type Sweeper interface {
	Execute(ctx context.Context, now time.Time) (*sweep_expired.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Config параметры воркера
type Config struct {
	Interval   time.Duration
	RunTimeout time.Duration
	RunOnStart bool // Прогон сразу при старте, не дожидаясь первого тика
}

// Worker запускает очистку по таймеру
type Worker struct {
	sweeper    Sweeper
	logger     Logger
	interval   time.Duration
	runTimeout time.Duration
	runOnStart bool
	now        func() time.Time
}

// NewWorker создает воркер; нулевые значения конфигурации заменяются значениями по умолчанию
func NewWorker(sweeper Sweeper, logger Logger, cfg Config) *Worker {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Minute
	}
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = time.Minute
	}
	return &Worker{
		sweeper:    sweeper,
		logger:     logger,
		interval:   cfg.Interval,
		runTimeout: cfg.RunTimeout,
		runOnStart: cfg.RunOnStart,
		now:        time.Now,
	}
}

// Run блокируется до отмены ctx
// Ошибка прогона логируется, следующий прогон будет на следующем тике
func (w *Worker) Run(ctx context.Context) error {
	w.logger.Info("ExpiryWorker: started, interval=%s", w.interval)

	if w.runOnStart {
		w.runOnce(ctx)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("ExpiryWorker: stopped")
			return nil
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

func (w *Worker) runOnce(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, w.runTimeout)
	defer cancel()

	resp, err := w.sweeper.Execute(runCtx, w.now())
	if err != nil {
		w.logger.Error("ExpiryWorker: sweep failed: %v", err)
		return
	}
	if resp.Expired > 0 || resp.Failed > 0 {
		w.logger.Info("ExpiryWorker: expired=%d, failed=%d", resp.Expired, resp.Failed)
	}
}
