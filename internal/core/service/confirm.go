package service

import (
	"sync"
	"time"

	"github.com/sebas-aldana/brm-client/internal/core/domain"
)

// Confirmation is the transient success notice returned by Submit. It
// dismisses itself after a fixed delay unless Dismiss is called first. The
// timer is one-shot and never reschedules.
type Confirmation struct {
	Purchase domain.Purchase

	once  sync.Once
	timer *time.Timer
	done  chan struct{}
}

func newConfirmation(p domain.Purchase, after time.Duration) *Confirmation {
	c := &Confirmation{
		Purchase: p,
		done:     make(chan struct{}),
	}
	c.timer = time.AfterFunc(after, c.dismiss)
	return c
}

func (c *Confirmation) dismiss() {
	c.once.Do(func() {
		c.timer.Stop()
		close(c.done)
	})
}

// Dismiss closes the confirmation early and cancels the auto-dismiss timer.
// Safe to call more than once.
func (c *Confirmation) Dismiss() {
	c.dismiss()
}

// Done is closed once the confirmation has been dismissed, by the user or by
// the timer.
func (c *Confirmation) Done() <-chan struct{} {
	return c.done
}

// Visible reports whether the confirmation is still showing.
func (c *Confirmation) Visible() bool {
	select {
	case <-c.done:
		return false
	default:
		return true
	}
}
