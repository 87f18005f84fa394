package access

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tokensale/common/errs"
	"github.com/gaze-network/tokensale/core/event"
)

// Pausable is an emergency stop flag. Authorization is left to the caller.
type Pausable struct {
	paused  bool
	emitter event.Emitter
}

func NewPausable(emitter event.Emitter) *Pausable {
	return &Pausable{emitter: emitter}
}

func (p *Pausable) Paused() bool {
	return p.paused
}

// WhenNotPaused fails with errs.PausedState while paused.
func (p *Pausable) WhenNotPaused() error {
	if p.paused {
		return errors.WithStack(errs.PausedState)
	}
	return nil
}

func (p *Pausable) Pause(ctx context.Context) error {
	if p.paused {
		return errors.Wrap(errs.PausedState, "already paused")
	}
	p.paused = true
	p.emitter.Emit(ctx, Pause{})
	return nil
}

func (p *Pausable) Unpause(ctx context.Context) error {
	if !p.paused {
		return errors.WithStack(errs.NotPaused)
	}
	p.paused = false
	p.emitter.Emit(ctx, Unpause{})
	return nil
}
