package tui

import (
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/yacademy/researchsite/internal/content"
)

// document locates anchors in the laid-out page. Positions are in lines
// relative to the first visible line.
type document struct{ m *Model }

func (d document) Locate(id string) (float64, bool) {
	line, ok := d.m.rendered.Anchors[id]
	if !ok {
		return 0, false
	}
	return float64(line - d.m.viewport.YOffset), true
}

// scrollView adapts the bubbles viewport to the scroller. Terminals cannot
// animate, so smooth scrolling jumps.
type scrollView struct{ vp *viewport.Model }

func (v scrollView) ScrollY() float64 { return float64(v.vp.YOffset) }

func (v scrollView) ScrollTo(y float64, _ bool) { v.vp.SetYOffset(int(y)) }

// pages answers which page of the section carries an anchor. The page on
// screen wins over every other.
type pages struct{ m *Model }

func (p pages) CurrentPage() string { return p.m.state.CurrentPageID }

func (p pages) PageWithAnchor(fragment string) (string, bool) {
	if p.m.page != nil && content.HasAnchor(p.m.page.Body, fragment) {
		return p.m.state.CurrentPageID, true
	}
	return p.m.sec.PageWithAnchor(fragment)
}
