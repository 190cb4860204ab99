package resolve

import (
	"strings"

	"github.com/yacademy/researchsite/internal/content"
	"github.com/yacademy/researchsite/internal/nav"
)

// ProxiesHome is the synthesized landing page of the proxies section.
var ProxiesHome = content.Record{
	Slug:     nav.HomeID,
	Title:    "yAcademy Proxies Research",
	Category: "overview",
	Section:  nav.SectionProxies,
	ContentHTML: `<p>In Web3, the Proxy or Proxy Delegate is a <a href="https://en.wikipedia.org/wiki/Delegation_pattern">delegation pattern</a> commonly used to introduce upgradability in smart contracts.</p>
<p>This research effort compiles proxy knowledge with the goal of improving the correctness of proxy implementations and providing a useful resource for security reviews of proxy contracts.</p>
<h2 id="getting-started">Getting Started</h2>
<p>To see the full content, please set up your markdown files in the content directory.</p>
`,
	Description: "Comprehensive guide to smart contract proxy patterns and security",
}

// SecurityGuideAnchors are the vulnerability headings the synthesized
// security guide links to.
var SecurityGuideAnchors = []content.Heading{
	{ID: "uninitialized-proxy-vulnerability", Title: "Uninitialized Proxy Vulnerability", Level: 2},
	{ID: "storage-collision-vulnerability", Title: "Storage Collision Vulnerability", Level: 2},
	{ID: "function-clashing-vulnerability", Title: "Function Clashing Vulnerability", Level: 2},
	{ID: "metamorphic-contract-rug-vulnerability", Title: "Metamorphic Contract Rug Vulnerability", Level: 2},
}

// SecurityGuide is served for "security-guide" when no page has that slug.
func SecurityGuide() content.Record {
	body := `<p>Note: If you are unsure which proxy type is in the scope of your audit or security review, see the <a href="/proxies/proxy-identification">proxy identification guide</a>.</p>
` + content.BuildTOC(SecurityGuideAnchors) +
		`<p>This section contains detailed information about various proxy security vulnerabilities that auditors should be aware of.</p>
`
	return content.Record{
		Slug:        "security-guide",
		Title:       "Security Guide to Proxy Vulns",
		Category:    "security",
		Section:     nav.SectionProxies,
		ContentHTML: body,
		Description: "Comprehensive security guide covering common proxy vulnerabilities",
	}
}

// ProxiesResolver resolves ids of the proxies section against records.
func ProxiesResolver(records []content.Record) *Resolver {
	return New(records,
		map[string]Alias{"proxies-deep-dive": {Slug: "proxies-list", Title: "Proxies Deep Dive"}},
		map[string]content.Record{"security-guide": SecurityGuide()},
		ProxiesHome,
	)
}

// MPCHome is the landing page of the MPC section.
var MPCHome = content.Record{
	Slug:     nav.HomeID,
	Title:    "yAcademy MPC Research",
	Category: "overview",
	Section:  nav.SectionMPC,
	ContentHTML: `<p>Multi-party computation lets several parties compute a function over their inputs while keeping those inputs private.</p>
<h2 id="coming-soon">Coming Soon</h2>
<p>Research on MPC protocols and their security is in progress.</p>
`,
	Description: "Research on multi-party computation protocols",
}

// MPCResolver resolves ids of the MPC section. Pages that exist in records
// win; every other sidebar id gets a "Coming Soon" stub.
func MPCResolver(records []content.Record) *Resolver {
	items := nav.MPCSidebar()
	fallbacks := make(map[string]content.Record)
	for _, id := range nav.IDs(items) {
		if id == nav.HomeID {
			continue
		}
		title, _ := nav.TitleOf(items, id)
		fallbacks[id] = comingSoon(id, title)
	}
	return New(records, nil, fallbacks, MPCHome)
}

func comingSoon(id, title string) content.Record {
	return content.Record{
		Slug:     id,
		Title:    title,
		Category: "mpc",
		Section:  nav.SectionMPC,
		ContentHTML: `<div class="coming-soon"><h3>Coming Soon</h3><p>` + escape(title) +
			` research is being written. Check back for ` + escape(strings.ToLower(title)) + ` content.</p></div>
`,
		Description: title + " (coming soon)",
	}
}

// ForSection returns the resolver for a site section.
func ForSection(section string, corpus *content.Corpus) *Resolver {
	var records []content.Record
	if corpus != nil {
		records = corpus.InSection(section)
	}
	if section == nav.SectionMPC {
		return MPCResolver(records)
	}
	return ProxiesResolver(records)
}
