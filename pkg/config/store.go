package config

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Store holds the active configuration. Readers always see a complete
// config; reloads swap it atomically.
type Store struct {
	cur atomic.Pointer[Config]

	onReload []func(*Config)
}

func NewStore(cfg *Config) *Store {
	if cfg == nil {
		cfg = Default()
	}
	s := &Store{}
	s.cur.Store(cfg)
	return s
}

func (s *Store) Get() *Config { return s.cur.Load() }

// Set replaces the active config and notifies reload listeners.
func (s *Store) Set(cfg *Config) {
	s.cur.Store(cfg)
	for _, cb := range s.onReload {
		cb(cfg)
	}
}

// OnReload registers a callback run after every Set. Register before Watch.
func (s *Store) OnReload(cb func(*Config)) {
	s.onReload = append(s.onReload, cb)
}

func (s *Store) DirectionalScrolling() bool   { return s.Get().Scrolling.DirectionalScrolling }
func (s *Store) HotbarScoping() HotbarScoping { return s.Get().General.HotbarScoping }
func (s *Store) ScrollingEnabled() bool       { return s.Get().Scrolling.Enable }
func (s *Store) InteractionInterval() time.Duration {
	return s.Get().General.InteractionInterval
}
func (s *Store) AckTimeout() time.Duration { return s.Get().General.AckTimeout }

// Reload re-reads path and swaps the config in. On error the active
// config is kept.
func (s *Store) Reload(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	s.Set(cfg)
	return nil
}

// Watch reloads the config whenever the file at path is written or
// replaced, until ctx is done. The parent directory is watched so that
// editors which rename-and-replace are picked up.
func (s *Store) Watch(ctx context.Context, path string, logger *log.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create config watcher: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		watcher.Close()
		return fmt.Errorf("resolve config path: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch config dir: %w", err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if err := s.Reload(abs); err != nil {
					logger.Println("config: reload failed:", err)
					continue
				}
				logger.Println("config: reloaded", abs)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Println("config: watch error:", err)
			}
		}
	}()
	return nil
}
