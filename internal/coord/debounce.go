package coord

import (
	"time"

	"github.com/benbjohnson/clock"
)

// debounce is a cancellable one-shot timer read from the controller's
// select loop. Arming an armed debounce restarts the window; only the last
// armed timer ever fires.
type debounce struct {
	clock clock.Clock
	timer *clock.Timer
	c     <-chan time.Time
}

func newDebounce(clk clock.Clock) *debounce {
	return &debounce{clock: clk}
}

// Arm starts (or restarts) the quiet window.
func (d *debounce) Arm(window time.Duration) {
	d.Cancel()
	d.timer = d.clock.Timer(window)
	d.c = d.timer.C
}

// Cancel disarms the timer. A value already sitting in the old channel is
// never read because C no longer returns it.
func (d *debounce) Cancel() {
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = nil
	d.c = nil
}

// Armed reports whether a window is running.
func (d *debounce) Armed() bool {
	return d.timer != nil
}

// C returns the channel that fires when the window expires, or nil when
// disarmed (a nil channel blocks forever in select).
func (d *debounce) C() <-chan time.Time {
	return d.c
}

// fired marks the timer consumed after a value was received from C.
func (d *debounce) fired() {
	d.timer = nil
	d.c = nil
}
