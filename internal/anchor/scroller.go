// Package anchor scrolls to the element named by a URL fragment. The
// element may not be rendered yet, so lookups are retried on a timer; a
// newer navigation invalidates every pending attempt.
package anchor

import (
	"strings"
	"time"

	"go.uber.org/zap"
)

// State is a scroller state.
type State int

const (
	Idle State = iota
	Locating
	Scrolling
	Failed
	Redirecting
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Locating:
		return "locating"
	case Scrolling:
		return "scrolling"
	case Failed:
		return "failed"
	case Redirecting:
		return "redirecting"
	}
	return "unknown"
}

// Config holds the scroll timings.
type Config struct {
	InitialDelay  time.Duration
	NavigateDelay time.Duration
	RetryInterval time.Duration
	MaxRetries    int
	// HeaderOffset is subtracted from the target so the element is not
	// hidden under a fixed header. Units follow the Viewport.
	HeaderOffset float64
}

// DefaultConfig returns the browser timings.
func DefaultConfig() Config {
	return Config{
		InitialDelay:  500 * time.Millisecond,
		NavigateDelay: 100 * time.Millisecond,
		RetryInterval: 200 * time.Millisecond,
		MaxRetries:    10,
		HeaderOffset:  100,
	}
}

// Document finds rendered elements.
type Document interface {
	// Locate returns the top of the element with the given id relative to
	// the visible area.
	Locate(id string) (top float64, ok bool)
}

// Viewport is the scrollable area.
type Viewport interface {
	ScrollY() float64
	ScrollTo(y float64, smooth bool)
}

// Pages tells the scroller which page owns an anchor.
type Pages interface {
	CurrentPage() string
	PageWithAnchor(fragment string) (slug string, ok bool)
}

// Token identifies one navigation. Attempts carrying an older token are
// ignored.
type Token uint64

// Plan is the result of Begin. Either Redirect is set, or the first attempt
// should run after Delay with Token.
type Plan struct {
	Token    Token
	Delay    time.Duration
	Redirect string
}

// None reports whether there is nothing to do.
func (p Plan) None() bool { return p.Token == 0 && p.Redirect == "" }

// StepKind is the outcome of one attempt.
type StepKind int

const (
	StepStale StepKind = iota
	StepDone
	StepRetry
	StepFailed
)

func (k StepKind) String() string {
	switch k {
	case StepStale:
		return "stale"
	case StepDone:
		return "done"
	case StepRetry:
		return "retry"
	}
	return "failed"
}

// Step tells the caller what to do after an attempt. Delay is set for
// StepRetry.
type Step struct {
	Kind  StepKind
	Delay time.Duration
}

// Scroller is the fragment-scrolling state machine. It is not safe for
// concurrent use. Callers own the timer and feed each Step back from a
// single event loop, like the bubbletea Update in the terminal reader.
type Scroller struct {
	cfg    Config
	pages  Pages
	logger *zap.Logger

	state       State
	gen         Token
	fragment    string
	retries     int
	transitions []State
}

// NewScroller creates a scroller. pages may be nil when every anchor lives
// on the current page.
func NewScroller(cfg Config, pages Pages, logger *zap.Logger) *Scroller {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	return &Scroller{cfg: cfg, pages: pages, logger: logger}
}

// State returns the current state.
func (s *Scroller) State() State { return s.state }

// Fragment returns the fragment being located.
func (s *Scroller) Fragment() string { return s.fragment }

// Retries returns the number of retries spent on the current fragment.
func (s *Scroller) Retries() int { return s.retries }

// Transitions returns every state entered so far, oldest first.
func (s *Scroller) Transitions() []State {
	return append([]State(nil), s.transitions...)
}

func (s *Scroller) enter(st State) {
	s.state = st
	s.transitions = append(s.transitions, st)
}

// Begin starts locating fragment and invalidates any earlier navigation.
// initial selects the longer first-paint delay. When the fragment belongs
// to another page the plan carries that page's slug instead; the caller
// switches pages and calls Begin again once it has rendered.
func (s *Scroller) Begin(fragment string, initial bool) Plan {
	fragment = strings.TrimPrefix(fragment, "#")
	s.gen++
	s.fragment = fragment
	s.retries = 0

	if fragment == "" {
		if s.state != Idle {
			s.enter(Idle)
		}
		return Plan{}
	}

	if s.pages != nil {
		if slug, ok := s.pages.PageWithAnchor(fragment); ok && slug != s.pages.CurrentPage() {
			s.enter(Redirecting)
			s.logger.Debug("anchor lives on another page",
				zap.String("fragment", fragment), zap.String("page", slug))
			return Plan{Redirect: slug}
		}
	}

	delay := s.cfg.NavigateDelay
	if initial {
		delay = s.cfg.InitialDelay
	}
	s.enter(Locating)
	return Plan{Token: s.gen, Delay: delay}
}

// Attempt looks the fragment up once. A stale token does nothing.
func (s *Scroller) Attempt(token Token, doc Document, vp Viewport) Step {
	if token != s.gen || s.state != Locating {
		return Step{Kind: StepStale}
	}

	if top, ok := doc.Locate(s.fragment); ok {
		s.enter(Scrolling)
		target := top + vp.ScrollY() - s.cfg.HeaderOffset
		if target < 0 {
			target = 0
		}
		vp.ScrollTo(target, true)
		s.logger.Debug("scrolled to anchor",
			zap.String("fragment", s.fragment), zap.Float64("target", target), zap.Int("retries", s.retries))
		s.enter(Idle)
		return Step{Kind: StepDone}
	}

	if s.retries < s.cfg.MaxRetries {
		s.retries++
		s.enter(Locating)
		return Step{Kind: StepRetry, Delay: s.cfg.RetryInterval}
	}

	s.enter(Failed)
	s.logger.Warn("anchor not found",
		zap.String("fragment", s.fragment), zap.Int("retries", s.retries))
	return Step{Kind: StepFailed}
}

// Cancel invalidates pending attempts.
func (s *Scroller) Cancel() {
	s.gen++
	if s.state == Locating || s.state == Redirecting {
		s.enter(Idle)
	}
}
