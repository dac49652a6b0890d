// Package pacer plays a session's pending continuations one at a time with
// a delay between them, so a dealer draw or a split deal can be shown card
// by card.
package pacer

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"bjtrainer/internal/game"
)

const historyLimit = 10

// StepFunc receives the state after each step. more is false once
// nothing is left pending.
type StepFunc func(snap game.Snapshot, more bool)

type Pacer struct {
	clock  quartz.Clock
	delay  time.Duration
	logger *log.Logger

	mu    sync.Mutex
	timer *quartz.Timer
	gen   int
}

func New(clock quartz.Clock, delay time.Duration, logger *log.Logger) *Pacer {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Pacer{
		clock:  clock,
		delay:  delay,
		logger: logger.WithPrefix("pacer"),
	}
}

// Start schedules the pending steps of s. lock guards s and must be the
// same lock every other caller of s holds. Start may be called with lock
// held. Any previous run is cancelled.
func (p *Pacer) Start(s *game.Session, lock sync.Locker, onStep StepFunc) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()
	p.gen++
	p.scheduleLocked(p.gen, s, lock, onStep)
}

// Stop cancels the run. A step already executing finishes; no further
// step starts.
func (p *Pacer) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	p.gen++
}

func (p *Pacer) stopLocked() {
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

func (p *Pacer) scheduleLocked(gen int, s *game.Session, lock sync.Locker, onStep StepFunc) {
	p.timer = p.clock.AfterFunc(p.delay, func() {
		p.fire(gen, s, lock, onStep)
	}, "pacer", "step")
}

func (p *Pacer) fire(gen int, s *game.Session, lock sync.Locker, onStep StepFunc) {
	lock.Lock()
	if !p.current(gen) {
		lock.Unlock()
		return
	}

	var kind game.StepKind
	if pending := s.Pending(); len(pending) > 0 {
		kind = pending[0].Kind
	}
	stepped := s.Step()
	more := s.HasPending()
	snap := s.Snapshot(historyLimit)
	lock.Unlock()

	if !stepped {
		return
	}
	p.logger.Debug("Step", "kind", kind, "phase", snap.Phase, "remaining", snap.Shoe.Remaining)

	if more {
		p.mu.Lock()
		if p.gen == gen {
			p.scheduleLocked(gen, s, lock, onStep)
		}
		p.mu.Unlock()
	}

	if onStep != nil {
		onStep(snap, more)
	}
}

func (p *Pacer) current(gen int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gen == gen
}
