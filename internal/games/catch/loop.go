package catch

import (
	"context"
	"time"
)

// Commands accepted by Loop.Inbox.
type (
	// DragStart begins a drag gesture.
	DragStart struct{}
	// DragMove applies a cumulative drag delta.
	DragMove struct{ DX float64 }
	// PlaceAt moves the dog to an absolute position.
	PlaceAt struct{ X float64 }
	// Resize lays the session out on a new field.
	Resize struct{ Geometry Geometry }
)

// Loop hosts a session on one goroutine with two tickers, one per periodic
// process. Input arrives through Inbox, so every mutation happens on the
// goroutine running Run.
type Loop struct {
	Inbox chan any

	// OnTick runs on the loop goroutine after every simulation tick.
	OnTick func(s *Session, res StepResult)

	session *Session
	speedup float64
	quit    chan struct{}
}

// NewLoop wraps s. speedup divides both tick periods; values below 1 run in
// real time.
func NewLoop(s *Session, speedup float64) *Loop {
	if speedup < 1 {
		speedup = 1
	}
	return &Loop{
		Inbox:   make(chan any, 64),
		session: s,
		speedup: speedup,
		quit:    make(chan struct{}),
	}
}

// Stop asks Run to close the session and return. It must be called at most
// once.
func (l *Loop) Stop() {
	close(l.quit)
}

// Run starts the session if it is not running and drives it until it ends,
// Stop is called, or ctx is cancelled. Both tickers are stopped before Run
// returns, so nothing mutates the session afterwards.
func (l *Loop) Run(ctx context.Context) Outcome {
	s := l.session
	if s.State() != StateRunning {
		s.Start()
	}

	geo := s.Geometry()
	spawn := time.NewTicker(l.period(geo.SpawnInterval))
	defer spawn.Stop()
	sim := time.NewTicker(l.period(geo.TickInterval))
	defer sim.Stop()

	// Commits run even when ctx is already cancelled.
	commitCtx := context.WithoutCancel(ctx)

	for {
		select {
		case <-ctx.Done():
			return s.Close(commitCtx)
		case <-l.quit:
			return s.Close(commitCtx)
		case cmd := <-l.Inbox:
			l.handleCommand(cmd)
		case <-spawn.C:
			s.SpawnTick()
		case <-sim.C:
			res, ended := s.SimTick(commitCtx)
			if l.OnTick != nil && !ended {
				l.OnTick(s, res)
			}
			if ended {
				out, _ := s.Outcome()
				return out
			}
		}
	}
}

func (l *Loop) handleCommand(cmd any) {
	switch c := cmd.(type) {
	case DragStart:
		l.session.Begin()
	case DragMove:
		l.session.Move(c.DX)
	case PlaceAt:
		l.session.Place(c.X)
	case Resize:
		l.session.Resize(c.Geometry)
	}
}

func (l *Loop) period(d time.Duration) time.Duration {
	p := time.Duration(float64(d) / l.speedup)
	if p <= 0 {
		p = time.Millisecond
	}
	return p
}
