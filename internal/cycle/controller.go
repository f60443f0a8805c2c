package cycle

import (
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/olivier-w/quotebox/internal/logger"
	"github.com/olivier-w/quotebox/internal/quote"
	"github.com/olivier-w/quotebox/internal/shuffle"
	"github.com/olivier-w/quotebox/internal/theme"
)

const (
	DefaultFadeOut = 500 * time.Millisecond
	DefaultFadeIn  = 500 * time.Millisecond
)

// State is the controller's top-level state.
type State int

const (
	Empty State = iota // no batch yet
	Ready
)

func (s State) String() string {
	if s == Ready {
		return "ready"
	}
	return "empty"
}

// Visibility is the hidden-state marker consumed by the presenter.
type Visibility int

const (
	Visible Visibility = iota
	Hidden
)

func (v Visibility) String() string {
	if v == Hidden {
		return "hidden"
	}
	return "visible"
}

// Phase is the position inside a transition sequence.
type Phase int

const (
	Idle      Phase = iota
	FadingOut       // hidden, waiting to swap content
	Swapped         // hidden, content swapped, waiting to show
)

func (p Phase) String() string {
	switch p {
	case FadingOut:
		return "fading-out"
	case Swapped:
		return "swapped"
	default:
		return "idle"
	}
}

// Timer asks the caller to call Fire with it once Delay has elapsed.
// Timers from superseded transitions are ignored by Fire.
type Timer struct {
	Delay      time.Duration
	Generation uint64
	Phase      Phase
}

// Display is what the presenter renders.
type Display struct {
	Quote      quote.Quote
	HasQuote   bool
	Visibility Visibility
	Theme      theme.Color
}

// Controller cycles through a batch of quotes in shuffled, non-repeating order
// and sequences the fade-out, swap and fade-in of each advance.
// It is only mutated from Bubbletea's single-threaded Update loop.
type Controller struct {
	state   State
	batch   quote.Batch
	order   []int // traversal position → batch index
	pos     int   // next position in order
	display Display

	phase   Phase
	pending quote.Quote
	gen     uint64
	closed  bool

	reshuffles int

	rng     shuffle.Source
	themes  *theme.Picker
	fadeOut time.Duration
	fadeIn  time.Duration
	log     *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithRand sets the random source used for shuffling, the initial pick and,
// unless WithThemes is given, theme selection. *rand.Rand satisfies it.
func WithRand(r shuffle.Source) Option {
	return func(c *Controller) {
		if r != nil {
			c.rng = r
		}
	}
}

// WithThemes sets the theme picker.
func WithThemes(p *theme.Picker) Option {
	return func(c *Controller) {
		if p != nil {
			c.themes = p
		}
	}
}

// WithDelays sets the fade-out and fade-in durations. Negative values are
// clamped to zero.
func WithDelays(fadeOut, fadeIn time.Duration) Option {
	return func(c *Controller) {
		c.fadeOut = max(fadeOut, 0)
		c.fadeIn = max(fadeIn, 0)
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates a Controller in the Empty state with an initial theme.
func New(opts ...Option) *Controller {
	c := &Controller{
		fadeOut: DefaultFadeOut,
		fadeIn:  DefaultFadeIn,
		log:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if c.themes == nil {
		c.themes = theme.Default(c.rng)
	}
	c.display.Theme = c.themes.Next()
	return c
}

// BatchLoaded installs batch, builds a fresh traversal order and shows a quote
// picked independently of that order. Any transition in flight is cancelled.
func (c *Controller) BatchLoaded(batch quote.Batch) {
	if c.closed {
		return
	}
	c.cancelTransition()

	c.batch = batch.Clone()
	c.order = shuffle.Indices(len(c.batch), c.rng)
	c.pos = 0
	c.state = Ready

	c.display.Visibility = Visible
	if n := len(c.batch); n > 0 {
		c.display.Quote = c.batch[c.rng.IntN(n)]
		c.display.HasQuote = true
	} else {
		c.display.Quote = quote.Quote{}
		c.display.HasQuote = false
	}
	c.log.Debug("batch loaded", "size", len(c.batch))
}

// Advance moves to the next quote in traversal order, regenerating the order
// first when it is exhausted, and picks a new theme. It returns the timer that
// completes the fade-out; ok is false when no transition was started.
// Advance is ignored while Empty or after Close.
func (c *Controller) Advance() (t Timer, ok bool) {
	if c.closed {
		return Timer{}, false
	}
	if c.state != Ready {
		c.log.Debug("advance ignored", "state", c.state)
		return Timer{}, false
	}

	n := len(c.batch)
	if n > 0 && c.pos >= n {
		c.reshuffle()
	}
	if n > 0 {
		next := c.batch[c.order[c.pos]]
		t = c.beginTransition(next)
		ok = true
		c.pos++
	}

	c.display.Theme = c.themes.Next()
	return t, ok
}

// Fire completes the step t was issued for and returns the follow-up timer,
// if any. Timers from superseded transitions and timers fired after Close are
// no-ops.
func (c *Controller) Fire(t Timer) (next Timer, ok bool) {
	if c.closed || t.Generation != c.gen || t.Phase != c.phase {
		return Timer{}, false
	}

	switch t.Phase {
	case FadingOut:
		// Content only ever changes while hidden.
		c.display.Quote = c.pending
		c.display.HasQuote = true
		c.pending = quote.Quote{}
		c.phase = Swapped
		return Timer{Delay: c.fadeIn, Generation: c.gen, Phase: Swapped}, true
	case Swapped:
		c.display.Visibility = Visible
		c.phase = Idle
	}
	return Timer{}, false
}

// Close tears the controller down. Outstanding timers become no-ops and
// further calls leave the state untouched.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.cancelTransition()
	c.closed = true
}

func (c *Controller) beginTransition(next quote.Quote) Timer {
	c.gen++
	c.display.Visibility = Hidden
	c.pending = next
	c.phase = FadingOut
	return Timer{Delay: c.fadeOut, Generation: c.gen, Phase: FadingOut}
}

// cancelTransition invalidates outstanding timers. The display is left as is.
func (c *Controller) cancelTransition() {
	c.gen++
	c.phase = Idle
	c.pending = quote.Quote{}
}

func (c *Controller) reshuffle() {
	c.order = shuffle.Indices(len(c.batch), c.rng)
	c.pos = 0
	c.reshuffles++
	c.log.Debug("traversal order exhausted, reshuffled", "size", len(c.batch), "reshuffles", c.reshuffles)
}

// State returns the top-level state.
func (c *Controller) State() State {
	return c.state
}

// Display returns the current display state.
func (c *Controller) Display() Display {
	return c.display
}

// Phase returns the transition phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Generation returns the current transition generation.
func (c *Controller) Generation() uint64 {
	return c.gen
}

// Len returns the batch size.
func (c *Controller) Len() int {
	return len(c.batch)
}

// Position returns the cursor into the traversal order.
func (c *Controller) Position() int {
	return c.pos
}

// Order returns a copy of the current traversal order.
func (c *Controller) Order() []int {
	out := make([]int, len(c.order))
	copy(out, c.order)
	return out
}

// Reshuffles returns how many times the traversal order was regenerated
// after being exhausted.
func (c *Controller) Reshuffles() int {
	return c.reshuffles
}

// Closed reports whether Close has been called.
func (c *Controller) Closed() bool {
	return c.closed
}
