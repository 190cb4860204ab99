package content

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuildSearchIndex(t *testing.T) {
	records := []Record{
		{
			Slug:        "proxy-basics",
			Title:       "Proxy Basics",
			Category:    "fundamentals",
			Section:     "proxies",
			ContentHTML: "<p>Proxies   <em>delegate</em> calls.</p>",
			Sections: []Section{
				{Title: "Delegatecall", Content: "Runs code in caller context.", Anchor: "delegatecall"},
				{Title: "No Anchor", Content: "Plain."},
			},
		},
		{Slug: "home", Title: "MPC", Category: "general", Section: "mpc", ContentHTML: "<p>x</p>"},
	}

	got := BuildSearchIndex(records)
	want := []SearchEntry{
		{
			ID: "proxy-basics", Type: EntryPage, Title: "Proxy Basics", Path: "/proxies/proxy-basics",
			Category: "fundamentals", Content: "Proxies delegate calls.",
			SearchText: "proxy basics proxies delegate calls.",
		},
		{
			ID: "proxy-basics-section-0", Type: EntrySection, Title: "Delegatecall", PageTitle: "Proxy Basics",
			Path: "/proxies/proxy-basics#delegatecall", Category: "fundamentals",
			Content: "Runs code in caller context.", SearchText: "delegatecall runs code in caller context.",
		},
		{
			ID: "proxy-basics-section-1", Type: EntrySection, Title: "No Anchor", PageTitle: "Proxy Basics",
			Path: "/proxies/proxy-basics", Category: "fundamentals",
			Content: "Plain.", SearchText: "no anchor plain.",
		},
		{
			ID: "home", Type: EntryPage, Title: "MPC", Path: "/mpc", Category: "general",
			Content: "x", SearchText: "mpc x",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildSearchIndex mismatch (-want +got):\n%s", diff)
	}

	for _, e := range got {
		slug, _, _ := strings.Cut(e.ID, "-section-")
		if _, ok := (&Corpus{Records: records}).BySlug(slug); !ok {
			t.Errorf("entry %s does not map back to a record", e.ID)
		}
	}
}

func TestBuildSearchIndexPlainPageText(t *testing.T) {
	records := []Record{{
		Slug: "uups", Title: "UUPS", Section: "proxies",
		ContentHTML: "<p>Upgrade &amp; &quot;admin&quot;\nchecks</p>",
	}}
	got := BuildSearchIndex(records)
	if len(got) != 1 {
		t.Fatalf("got %d entries, want 1", len(got))
	}
	if got[0].Content != `Upgrade & "admin" checks` {
		t.Errorf("Content = %q", got[0].Content)
	}
	if !strings.Contains(got[0].SearchText, `"admin" checks`) {
		t.Errorf("SearchText %q must match text across the line break", got[0].SearchText)
	}
}

func TestPagePath(t *testing.T) {
	tests := []struct{ section, slug, want string }{
		{"proxies", "uups", "/proxies/uups"},
		{"mpc", "", "/mpc"},
		{"mpc", "home", "/mpc"},
		{"", "x", "/proxies/x"},
	}
	for _, tt := range tests {
		if got := PagePath(tt.section, tt.slug); got != tt.want {
			t.Errorf("PagePath(%q, %q) = %q, want %q", tt.section, tt.slug, got, tt.want)
		}
	}
}
