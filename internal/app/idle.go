package app

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/zenlizolet/Focus-Timer/internal/core/model"
	"github.com/zenlizolet/Focus-Timer/internal/core/timekeeper"
	"github.com/zenlizolet/Focus-Timer/internal/platform"
)

const (
	idleThreshold     = 5 * time.Minute
	idleCheckInterval = 5 * time.Second
)

// idleWatcher pauses a running focus period once the user has been away for threshold.
type idleWatcher struct {
	provider  platform.IdleProvider
	keeper    *timekeeper.TimeKeeper
	logger    *slog.Logger
	threshold time.Duration
	onPause   func(idle time.Duration)
	enabled   atomic.Bool
}

func newIdleWatcher(provider platform.IdleProvider, keeper *timekeeper.TimeKeeper, logger *slog.Logger, onPause func(time.Duration)) *idleWatcher {
	return &idleWatcher{
		provider:  provider,
		keeper:    keeper,
		logger:    logger,
		threshold: idleThreshold,
		onPause:   onPause,
	}
}

func (watcher *idleWatcher) setEnabled(enabled bool) {
	watcher.enabled.Store(enabled)
}

func (watcher *idleWatcher) run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			watcher.check()
		}
	}
}

// check reports whether it paused the timer.
func (watcher *idleWatcher) check() bool {
	if !watcher.enabled.Load() || watcher.provider == nil {
		return false
	}
	state := watcher.keeper.State()
	if state.Mode != model.ModeFocus || state.Status != model.StatusRunning {
		return false
	}

	idle, err := watcher.provider.IdleDuration()
	if err != nil {
		if errors.Is(err, platform.ErrIdleUnsupported) {
			watcher.logger.Warn("idle detection unavailable, pause when idle disabled")
			watcher.enabled.Store(false)
			return false
		}
		watcher.logger.Debug("idle check failed", "error", err)
		return false
	}
	if idle < watcher.threshold {
		return false
	}

	watcher.keeper.Pause()
	watcher.logger.Info("paused while idle", "idle", idle)
	if watcher.onPause != nil {
		watcher.onPause(idle)
	}
	return true
}
