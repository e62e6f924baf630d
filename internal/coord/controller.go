// Package coord keeps the stage display in sync with the presentation
// controller.
//
// Push notifications arrive at any rate. The Controller coalesces bursts
// with a debounce window into a single fetch, composes the fetched items
// and hands the result to the reconciler. Overrides (blank/theme) skip the
// fetch, clear the display immediately and supersede any refresh queued
// before them.
package coord

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/abelbrown/stageview/internal/compose"
	"github.com/abelbrown/stageview/internal/display"
	"github.com/abelbrown/stageview/internal/logging"
	"github.com/abelbrown/stageview/internal/model"
	"github.com/abelbrown/stageview/internal/otel"
)

// DefaultDebounce is the quiet period before a fetch.
const DefaultDebounce = 100 * time.Millisecond

// DefaultFetchTimeout bounds one item-list fetch.
const DefaultFetchTimeout = 5 * time.Second

// notifyBuffer is the capacity of the notification queue.
const notifyBuffer = 64

// Fetcher pulls the live item list.
type Fetcher interface {
	LiveItems(ctx context.Context) (model.ItemList, error)
}

// Reconciler applies composed output to the display.
type Reconciler interface {
	Reconcile(ctx context.Context, out model.ComposedOutput) display.Action
}

// Options configure a Controller. Zero values take defaults.
type Options struct {
	Debounce     time.Duration
	FetchTimeout time.Duration
	// Compose selects the composition features. Nil enables all of them.
	Compose      *compose.Options
	Clock        clock.Clock
	Events       *otel.Logger

	// OnState is called from the controller goroutine on every state change.
	OnState func(State)
}

// fetchResult carries a finished fetch back into the loop.
type fetchResult struct {
	gen  uint64
	list model.ItemList
	err  error
	dur  time.Duration
}

// Controller is the sync state machine.
//
// All state below is owned by the Run goroutine. Fetches run on their own
// goroutine and report back through results; Notify is the only entry
// point safe for other goroutines.
type Controller struct {
	fetcher Fetcher
	rec     Reconciler
	opts    Options
	compose compose.Options
	clock   clock.Clock
	log     logger

	notify  chan Notification
	results chan fetchResult
	done    chan struct{}
	once    sync.Once

	state     atomic.Int32
	debounce  *debounce
	dirty     bool   // notified while fetching
	gen       uint64 // generation of the last started fetch
	completed uint64 // generation of the latest applied fetch
	cleared   uint64 // generations up to this one were superseded by an override

	wg sync.WaitGroup
}

// logger is the subset of *log.Logger the controller uses.
type logger interface {
	Debug(msg interface{}, keyvals ...interface{})
	Warn(msg interface{}, keyvals ...interface{})
}

// NewController creates a Controller. Call Run to start it.
func NewController(f Fetcher, r Reconciler, opts Options) *Controller {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = DefaultFetchTimeout
	}
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	comp := compose.DefaultOptions()
	if opts.Compose != nil {
		comp = *opts.Compose
	}

	return &Controller{
		fetcher:  f,
		rec:      r,
		opts:     opts,
		compose:  comp,
		clock:    opts.Clock,
		log:      logging.WithPrefix("sync"),
		notify:   make(chan Notification, notifyBuffer),
		results:  make(chan fetchResult, 1),
		done:     make(chan struct{}),
		debounce: newDebounce(opts.Clock),
	}
}

// Notify queues a push notification. It blocks only while the queue is
// full and returns immediately once Run has exited.
func (c *Controller) Notify(n Notification) {
	select {
	case c.notify <- n:
	case <-c.done:
	}
}

// State returns the current state. Safe from any goroutine.
func (c *Controller) State() State {
	return State(c.state.Load())
}

// Run processes notifications until ctx is cancelled. Uses context
// cancellation as the ONLY stop mechanism. Returns nil on cancellation.
func (c *Controller) Run(ctx context.Context) error {
	defer c.once.Do(func() { close(c.done) })
	defer c.wg.Wait()
	defer c.debounce.Cancel()

	for {
		select {
		case <-ctx.Done():
			return nil
		case n := <-c.notify:
			c.handleNotify(ctx, n)
		case <-c.debounce.C():
			c.debounce.fired()
			c.startFetch(ctx)
		case res := <-c.results:
			c.handleResult(ctx, res)
		}
	}
}

func (c *Controller) setState(s State) {
	if State(c.state.Swap(int32(s))) == s {
		return
	}
	if c.opts.OnState != nil {
		c.opts.OnState(s)
	}
}

// handleNotify routes one notification.
func (c *Controller) handleNotify(ctx context.Context, n Notification) {
	state := c.State()

	if n.IsOverride() {
		c.opts.Events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindOverride, Comp: "sync", State: state.String()})
		c.log.Debug("override", "blank", n.Blank, "theme", n.Theme, "state", state)

		c.setState(Clearing)
		c.rec.Reconcile(ctx, model.Override(n.Blank, n.Theme))

		c.debounce.Cancel()
		c.dirty = false
		if state == Fetching {
			// The result is dropped when it arrives; no second fetch may start first.
			c.cleared = c.gen
			c.setState(Fetching)
			return
		}
		c.setState(Idle)
		return
	}

	c.opts.Events.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindNotify, Comp: "sync", State: state.String()})

	if state == Fetching {
		// Re-armed when the in-flight fetch completes.
		c.dirty = true
		return
	}
	c.arm()
}

// arm (re)starts the debounce window.
func (c *Controller) arm() {
	c.debounce.Arm(c.opts.Debounce)
	c.setState(PendingFetch)
}

// startFetch launches the item-list fetch for a new generation.
func (c *Controller) startFetch(ctx context.Context) {
	c.gen++
	gen := c.gen
	c.setState(Fetching)
	c.opts.Events.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindFetchStart, Comp: "sync", Gen: gen})

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		fetchCtx, cancel := context.WithTimeout(ctx, c.opts.FetchTimeout)
		defer cancel()

		start := c.clock.Now()
		list, err := c.fetcher.LiveItems(fetchCtx)
		res := fetchResult{gen: gen, list: list, err: err, dur: c.clock.Since(start)}

		select {
		case c.results <- res:
		case <-ctx.Done():
		}
	}()
}

// handleResult reconciles a finished fetch. Results older than the latest
// applied generation are discarded so a slow fetch never overwrites newer
// content, as are fetches started before an override. Failures render the
// fallback text; there is no retry.
func (c *Controller) handleResult(ctx context.Context, res fetchResult) {
	switch {
	case res.gen <= c.cleared:
		c.opts.Events.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindFetchStale, Comp: "sync", Gen: res.gen, Msg: "superseded by override"})
		c.log.Debug("discarding fetch superseded by override", "gen", res.gen)
	case res.gen < c.completed:
		c.opts.Events.Emit(otel.Event{Level: otel.LevelWarn, Kind: otel.KindFetchStale, Comp: "sync", Gen: res.gen})
		c.log.Debug("discarding stale fetch", "gen", res.gen, "completed", c.completed)
	default:
		c.completed = res.gen
		c.apply(ctx, res)
	}

	if res.gen != c.gen {
		return
	}
	if c.dirty {
		c.dirty = false
		c.arm()
		return
	}
	c.setState(Idle)
}

func (c *Controller) apply(ctx context.Context, res fetchResult) {
	var out model.ComposedOutput
	if res.err != nil {
		c.opts.Events.Emit(otel.Event{Level: otel.LevelError, Kind: otel.KindFetchError, Comp: "sync", Gen: res.gen, Dur: res.dur, Err: res.err.Error()})
		c.log.Warn("fetch failed", "gen", res.gen, "err", res.err)
		out = model.ComposedOutput{Text: model.TextFetchError}
	} else {
		c.opts.Events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindFetchComplete, Comp: "sync", Gen: res.gen, Dur: res.dur, Count: len(res.list.Items)})
		out = compose.Compose(res.list, c.compose)
	}

	action := c.rec.Reconcile(ctx, out)
	c.log.Debug("reconciled", "gen", res.gen, "action", action, "key", otel.ShortKey(out.Key()))
}
