// Package nav holds the sidebar tree, the per-session navigation state and
// the mapping between page ids and site paths.
package nav

// Child is a second-level sidebar entry.
type Child struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Item is a top-level sidebar entry. Ids form a curated vocabulary that
// need not match content slugs.
type Item struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Icon     string  `json:"icon,omitempty"`
	Children []Child `json:"children,omitempty"`
}

// HasChildren reports whether the item can be expanded.
func (it Item) HasChildren() bool { return len(it.Children) > 0 }

// Section names.
const (
	SectionProxies = "proxies"
	SectionMPC     = "mpc"
)

// HomeID is the sidebar id of every section's landing page.
const HomeID = "home"

// ProxiesSidebar is the navigation tree of the proxies research section.
func ProxiesSidebar() []Item {
	return []Item{
		{ID: HomeID, Title: "yAcademy Proxies Research", Icon: "book"},
		{ID: "proxy-basics", Title: "Proxy Basics", Icon: "code"},
		{
			ID:    "proxies-deep-dive",
			Title: "Proxies Deep Dive",
			Icon:  "file-text",
			Children: []Child{
				{ID: "proxies-storage", Title: "Proxies Storage"},
				{ID: "proxies-table", Title: "Proxies Table"},
				{ID: "delegatecall-history", Title: "History of Callcode and Delegatecall"},
			},
		},
		{
			ID:    "security-guide",
			Title: "Security Guide to Proxy Vulns",
			Icon:  "shield",
			Children: []Child{
				{ID: "proxy-identification", Title: "Proxy Identification Guide"},
			},
		},
	}
}

// MPCSidebar is the navigation tree of the MPC section.
func MPCSidebar() []Item {
	return []Item{
		{ID: HomeID, Title: "yAcademy MPC Research", Icon: "cpu"},
		{ID: "protocol-basics", Title: "Protocol Basics", Icon: "code"},
		{
			ID:    "security-analysis",
			Title: "Security Analysis",
			Icon:  "shield",
			Children: []Child{
				{ID: "vulnerability-guide", Title: "Vulnerability Guide"},
				{ID: "implementation-guide", Title: "Implementation Guide"},
			},
		},
	}
}

// SidebarFor returns the tree for a section, or nil for an unknown one.
func SidebarFor(section string) []Item {
	switch section {
	case SectionProxies:
		return ProxiesSidebar()
	case SectionMPC:
		return MPCSidebar()
	}
	return nil
}

// DefaultExpanded lists the parents that start expanded in a section.
func DefaultExpanded(section string) []string {
	switch section {
	case SectionProxies:
		return []string{"proxies-deep-dive", "security-guide"}
	case SectionMPC:
		return []string{"security-analysis"}
	}
	return nil
}

// IDs returns every id in the tree, parents before their children.
func IDs(items []Item) []string {
	var ids []string
	for _, it := range items {
		ids = append(ids, it.ID)
		for _, c := range it.Children {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// Contains reports whether id appears anywhere in the tree.
func Contains(items []Item, id string) bool {
	for _, it := range items {
		if it.ID == id {
			return true
		}
		for _, c := range it.Children {
			if c.ID == id {
				return true
			}
		}
	}
	return false
}

// TitleOf returns the sidebar title for id.
func TitleOf(items []Item, id string) (string, bool) {
	for _, it := range items {
		if it.ID == id {
			return it.Title, true
		}
		for _, c := range it.Children {
			if c.ID == id {
				return c.Title, true
			}
		}
	}
	return "", false
}

// Breadcrumb links a child page back to its sidebar parent.
type Breadcrumb struct {
	ParentID     string `json:"parentId"`
	ParentTitle  string `json:"parentTitle"`
	CurrentTitle string `json:"currentTitle"`
}

// String renders "parent / current".
func (b Breadcrumb) String() string {
	return b.ParentTitle + " / " + b.CurrentTitle
}

// BreadcrumbFor finds the top-level item whose children contain currentID.
// Only one level is searched; the tree is two levels deep.
func BreadcrumbFor(items []Item, currentID, currentTitle string) (Breadcrumb, bool) {
	for _, it := range items {
		for _, c := range it.Children {
			if c.ID == currentID {
				return Breadcrumb{ParentID: it.ID, ParentTitle: it.Title, CurrentTitle: currentTitle}, true
			}
		}
	}
	return Breadcrumb{}, false
}
