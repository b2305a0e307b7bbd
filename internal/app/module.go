// Package app composes the application with fx: profile lock, prefs
// database, seeded chat store, background workers and the TUI shell.
package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/plumechat/plume/internal/bus"
	"github.com/plumechat/plume/internal/chat"
	"github.com/plumechat/plume/internal/config"
	"github.com/plumechat/plume/internal/delivery"
	"github.com/plumechat/plume/internal/lock"
	"github.com/plumechat/plume/internal/logging"
	"github.com/plumechat/plume/internal/prefs"
	"github.com/plumechat/plume/internal/presence"
	"github.com/plumechat/plume/internal/profile"
	"github.com/plumechat/plume/internal/seed"
	"github.com/plumechat/plume/internal/tui"
)

// Params holds the resolved profile configuration passed to the fx module.
type Params struct {
	ProfileName string
}

// Module returns the fx module composing all providers and lifecycle hooks.
func Module(p Params) fx.Option {
	return fx.Module("plume",
		fx.Supply(p),
		fx.Provide(
			provideConfig,
			provideLogger,
			provideBus,
			provideLock,
			providePrefs,
			provideStore,
			provideTracker,
			provideSimulator,
			provideApp,
		),
		fx.Invoke(registerLifecycle),
	)
}

func provideConfig(p Params) (*config.Config, error) {
	cfg, err := config.Load(profile.ConfigPath())
	if errors.Is(err, fs.ErrNotExist) {
		// Missing config is normal on first run.
		return &config.Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func provideLogger(p Params) (*zap.Logger, error) {
	return logging.New(profile.LogPath(p.ProfileName), p.ProfileName, false)
}

func provideBus() *bus.Bus {
	return bus.New()
}

func provideLock(p Params, logger *zap.Logger) (*lock.Lock, error) {
	if err := profile.EnsureDir(p.ProfileName); err != nil {
		return nil, err
	}
	logger.Info("acquiring profile lock", zap.String("profile", p.ProfileName))
	l, err := lock.Acquire(profile.Dir(p.ProfileName))
	if err != nil {
		return nil, err
	}
	logger.Info("profile lock acquired")
	return l, nil
}

func providePrefs(p Params, logger *zap.Logger) (*prefs.Store, error) {
	dbPath := profile.PrefsDBPath(p.ProfileName)
	db, err := prefs.Open(dbPath)
	if err != nil {
		return nil, err
	}
	result, err := db.Migrate()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if result.Changed {
		logger.Info("migrations applied", zap.Uint("version", result.Version))
	} else {
		logger.Info("migrations up to date", zap.Uint("version", result.Version))
	}
	logger.Info("prefs store initialized", zap.String("path", dbPath))
	return db, nil
}

func provideStore(b *bus.Bus, pf *prefs.Store, logger *zap.Logger) *chat.Store {
	s := chat.NewStore(b)
	fixture := seed.Build(time.Now())
	applyPrefs(fixture, pf, logger)
	seed.Apply(s, fixture)
	logger.Info("store seeded",
		zap.Int("chats", len(fixture.Chats)),
		zap.Int("messages", len(fixture.Messages)),
		zap.Int("users", len(fixture.Users)))
	return s
}

// applyPrefs overlays persisted per-profile state onto the fresh
// fixture: mute flags and reactions survive across runs even though the
// messages themselves are regenerated.
func applyPrefs(f seed.Fixture, pf *prefs.Store, logger *zap.Logger) {
	muted, err := pf.MutedChats()
	if err != nil {
		logger.Warn("loading muted chats failed", zap.Error(err))
		return
	}
	for i := range f.Chats {
		if m, ok := muted[f.Chats[i].ID]; ok {
			f.Chats[i].Muted = m
		}
	}
	for i := range f.Messages {
		byUser, err := pf.Reactions(f.Messages[i].ID)
		if err != nil || len(byUser) == 0 {
			continue
		}
		for userID, emoji := range byUser {
			f.Messages[i].Reactions = append(f.Messages[i].Reactions, chat.Reaction{
				Emoji:  emoji,
				UserID: userID,
			})
		}
	}
}

func provideTracker(pf *prefs.Store, b *bus.Bus, logger *zap.Logger) *delivery.Tracker {
	t := delivery.NewTracker(pf, b, logger, 500*time.Millisecond)
	// Roughly 1 in 20 steps fails in transit; the tracker re-queues it.
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	t.SetFailFunc(func(string, delivery.Status) bool { return rnd.Intn(20) == 0 })
	return t
}

func provideSimulator(b *bus.Bus, logger *zap.Logger) *presence.Simulator {
	strategy := presence.NewRandomStrategy(rand.NewSource(time.Now().UnixNano()))
	return presence.NewSimulator(strategy, b, logger, 4*time.Second)
}

func provideApp(p Params, s *chat.Store, pf *prefs.Store, tracker *delivery.Tracker, sim *presence.Simulator, b *bus.Bus, cfg *config.Config, logger *zap.Logger) *tui.App {
	return tui.NewApp(tui.Params{
		Store:   s,
		Prefs:   pf,
		Tracker: tracker,
		Sim:     sim,
		Bus:     b,
		Config:  cfg,
		Logger:  logger,
		Profile: p.ProfileName,
	})
}

func registerLifecycle(lc fx.Lifecycle, shutdowner fx.Shutdowner, app *tui.App, tracker *delivery.Tracker, sim *presence.Simulator, pf *prefs.Store, lk *lock.Lock, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			tracker.Start(context.Background())
			sim.Start(context.Background())

			// Run the TUI on its own goroutine; quitting it shuts the
			// whole app down.
			go func() {
				if err := app.Run(); err != nil {
					logger.Error("tui error", zap.Error(err))
				}
				_ = shutdowner.Shutdown()
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			app.Stop()
			sim.Stop()
			tracker.Stop()
			if err := pf.Close(); err != nil {
				logger.Warn("error closing prefs store", zap.Error(err))
			}
			if err := lk.Release(); err != nil {
				logger.Warn("error releasing lock", zap.Error(err))
			}
			logger.Info("stopped")
			_ = logger.Sync()
			return nil
		},
	})
}
