package anchor

import "sync"

// fakeDoc reports an element as absent for the first `absent` lookups.
type fakeDoc struct {
	mu      sync.Mutex
	top     map[string]float64
	absent  int
	lookups int
}

func (d *fakeDoc) Locate(id string) (float64, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lookups++
	if d.lookups <= d.absent {
		return 0, false
	}
	top, ok := d.top[id]
	return top, ok
}

type scrollCall struct {
	Y      float64
	Smooth bool
}

type fakeViewport struct {
	mu    sync.Mutex
	y     float64
	calls []scrollCall
}

func (v *fakeViewport) ScrollY() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.y
}

func (v *fakeViewport) ScrollTo(y float64, smooth bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.calls = append(v.calls, scrollCall{y, smooth})
	v.y = y
}

func (v *fakeViewport) Calls() []scrollCall {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]scrollCall(nil), v.calls...)
}

type fakePages struct {
	current string
	owners  map[string]string
}

func (p *fakePages) CurrentPage() string { return p.current }

func (p *fakePages) PageWithAnchor(fragment string) (string, bool) {
	slug, ok := p.owners[fragment]
	return slug, ok
}
