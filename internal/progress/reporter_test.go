package progress

import (
	"bytes"
	"testing"
)

func TestCIReporter(t *testing.T) {
	var buf bytes.Buffer
	r := &CIReporter{Out: &buf, Description: "Building site"}
	r.Start(2)
	r.Update(1, "proxies/home")
	r.Update(2, "proxies/uups")
	r.Finish()

	want := "Building site: 2 pages\n[1/2] proxies/home\n[2/2] proxies/uups\nBuilding site: done\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestNewReporterCI(t *testing.T) {
	t.Setenv("CI", "true")
	if _, ok := NewReporter("x").(*CIReporter); !ok {
		t.Error("expected CIReporter when CI is set")
	}
}

func TestTerminalReporterBeforeStart(t *testing.T) {
	// Updates before Start are ignored.
	r := &TerminalReporter{}
	r.Update(1, "x")
	r.Finish()
}
