// Package mousewheel turns scroll gestures over inventory slots into
// ordered click interactions.
//
// A Helper is bound to one open screen. It classifies slots into scopes
// (regions that do not exchange items within a single gesture), keeps a
// registry of slots locked against new interactions, and pushes click
// events to an interaction queue.
package mousewheel

import (
	"io"
	"log"
)

type Helper struct {
	screen  Screen
	factory ClickEventFactory
	queue   EventQueue

	settings  Settings
	modifiers Modifiers
	sameKind  ItemMatcher
	logger    *log.Logger

	scopeFn func(slot Slot, preferSmallerScopes bool) int

	locks lockRegistry
}

type Option func(*Helper)

// WithSettings sets the configuration source read on every gesture.
func WithSettings(s Settings) Option {
	return func(h *Helper) { h.settings = s }
}

// WithModifiers sets where Shift and Control state is read from.
func WithModifiers(m Modifiers) Option {
	return func(h *Helper) { h.modifiers = m }
}

// WithMatcher replaces SameKind.
func WithMatcher(fn ItemMatcher) Option {
	return func(h *Helper) { h.sameKind = fn }
}

func WithLogger(l *log.Logger) Option {
	return func(h *Helper) { h.logger = l }
}

// New returns a helper for screen. Creative screens get the creative
// scope taxonomy. Panics if screen, factory or queue is nil.
func New(screen Screen, factory ClickEventFactory, queue EventQueue, opts ...Option) *Helper {
	if screen == nil {
		panic("mousewheel: nil screen")
	}
	if factory == nil {
		panic("mousewheel: nil click event factory")
	}
	if queue == nil {
		panic("mousewheel: nil event queue")
	}

	h := &Helper{
		screen:    screen,
		factory:   factory,
		queue:     queue,
		settings:  defaultSettings{},
		modifiers: noModifiers{},
		sameKind:  SameKind,
		logger:    log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(h)
	}

	if screen.Kind() == CreativeScreen {
		h.scopeFn = h.creativeScope
	} else {
		h.scopeFn = h.defaultScope
	}
	return h
}

// Screen returns the screen the helper is bound to.
func (h *Helper) Screen() Screen { return h.screen }
