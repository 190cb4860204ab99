package anchor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestScrollerFoundImmediately(t *testing.T) {
	s := NewScroller(DefaultConfig(), nil, nil)
	doc := &fakeDoc{top: map[string]float64{"intro": 450}}
	vp := &fakeViewport{y: 50}

	plan := s.Begin("#intro", true)
	assert.Equal(t, 500*time.Millisecond, plan.Delay)
	assert.Equal(t, "intro", s.Fragment())

	step := s.Attempt(plan.Token, doc, vp)
	assert.Equal(t, StepDone, step.Kind)
	assert.Equal(t, []scrollCall{{Y: 400, Smooth: true}}, vp.Calls(), "top + scrollY - offset")
	assert.Equal(t, Idle, s.State())
	assert.Equal(t, []State{Locating, Scrolling, Idle}, s.Transitions())
}

func TestScrollerClampsAtZero(t *testing.T) {
	s := NewScroller(DefaultConfig(), nil, nil)
	vp := &fakeViewport{}
	plan := s.Begin("top", false)
	assert.Equal(t, 100*time.Millisecond, plan.Delay)
	s.Attempt(plan.Token, &fakeDoc{top: map[string]float64{"top": 20}}, vp)
	assert.Equal(t, []scrollCall{{Y: 0, Smooth: true}}, vp.Calls())
}

func TestScrollerRetriesThenScrolls(t *testing.T) {
	s := NewScroller(DefaultConfig(), nil, nil)
	doc := &fakeDoc{top: map[string]float64{"storage-collision-vulnerability": 900}, absent: 3}
	vp := &fakeViewport{}

	plan := s.Begin("#storage-collision-vulnerability", true)
	for i := 1; i <= 3; i++ {
		step := s.Attempt(plan.Token, doc, vp)
		require.Equal(t, StepRetry, step.Kind)
		assert.Equal(t, 200*time.Millisecond, step.Delay)
		assert.Equal(t, i, s.Retries())
	}
	step := s.Attempt(plan.Token, doc, vp)
	assert.Equal(t, StepDone, step.Kind)

	assert.Len(t, vp.Calls(), 1)
	assert.Equal(t, []State{Locating, Locating, Locating, Locating, Scrolling, Idle}, s.Transitions())
}

func TestScrollerFailsAfterMaxRetries(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	s := NewScroller(DefaultConfig(), nil, zap.New(core))
	doc := &fakeDoc{}
	vp := &fakeViewport{}

	plan := s.Begin("missing", false)
	var kinds []StepKind
	for {
		step := s.Attempt(plan.Token, doc, vp)
		kinds = append(kinds, step.Kind)
		if step.Kind != StepRetry {
			break
		}
	}
	assert.Len(t, kinds, 11, "one attempt plus ten retries")
	assert.Equal(t, StepFailed, kinds[10])
	assert.Equal(t, Failed, s.State())
	assert.Empty(t, vp.Calls())

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "anchor not found", entry.Message)
	assert.Equal(t, "missing", entry.ContextMap()["fragment"])

	// Failed is terminal for that token.
	assert.Equal(t, StepStale, s.Attempt(plan.Token, doc, vp).Kind)
}

func TestScrollerStaleToken(t *testing.T) {
	s := NewScroller(DefaultConfig(), nil, nil)
	doc := &fakeDoc{top: map[string]float64{"a": 10, "b": 20}}
	vp := &fakeViewport{}

	old := s.Begin("a", false)
	fresh := s.Begin("b", false)
	assert.Equal(t, StepStale, s.Attempt(old.Token, doc, vp).Kind)
	assert.Empty(t, vp.Calls())
	assert.Equal(t, StepDone, s.Attempt(fresh.Token, doc, vp).Kind)

	plan := s.Begin("a", false)
	s.Cancel()
	assert.Equal(t, Idle, s.State())
	assert.Equal(t, StepStale, s.Attempt(plan.Token, doc, vp).Kind)
}

func TestScrollerRedirect(t *testing.T) {
	pages := &fakePages{current: "proxy-basics", owners: map[string]string{"storage-collision-vulnerability": "security-guide"}}
	s := NewScroller(DefaultConfig(), pages, nil)

	plan := s.Begin("#storage-collision-vulnerability", true)
	assert.Equal(t, "security-guide", plan.Redirect)
	assert.Zero(t, plan.Token)
	assert.Equal(t, Redirecting, s.State())

	pages.current = "security-guide"
	plan = s.Begin("#storage-collision-vulnerability", false)
	assert.Empty(t, plan.Redirect)
	assert.NotZero(t, plan.Token)
	assert.Equal(t, Locating, s.State())
}

func TestScrollerEmptyFragment(t *testing.T) {
	s := NewScroller(DefaultConfig(), nil, nil)
	plan := s.Begin("#", false)
	assert.True(t, plan.None())
	assert.Equal(t, Idle, s.State())
	assert.Empty(t, s.Transitions())
}

func TestStateStrings(t *testing.T) {
	assert.Equal(t, "locating", Locating.String())
	assert.Equal(t, "redirecting", Redirecting.String())
	assert.Equal(t, "retry", StepRetry.String())
}
