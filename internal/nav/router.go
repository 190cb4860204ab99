package nav

import "strings"

// Mode selects who owns the current page id.
type Mode int

const (
	// ModeRouter derives the current page from the URL; Navigate only
	// returns the path to push.
	ModeRouter Mode = iota
	// ModeLocal keeps the current page in local state; Navigate sets it.
	ModeLocal
)

func (m Mode) String() string {
	if m == ModeLocal {
		return "local"
	}
	return "router"
}

// Router maps page ids of one site section to paths and back.
type Router struct {
	Section string
	// Base is a path prefix mounted before the section, e.g. "/docs".
	Base string
	Mode Mode
	// ParentRedirects sends navigation-only parents to a content page.
	ParentRedirects map[string]string
}

// ProxiesRouter returns the router of the proxies section.
func ProxiesRouter() Router {
	return Router{
		Section:         SectionProxies,
		Mode:            ModeRouter,
		ParentRedirects: map[string]string{"proxies-deep-dive": "proxies-list"},
	}
}

// MPCRouter returns the router of the MPC section, which keeps the current
// page locally.
func MPCRouter() Router {
	return Router{Section: SectionMPC, Mode: ModeLocal}
}

// RouterFor returns the router of a section.
func RouterFor(section string) Router {
	if section == SectionMPC {
		return MPCRouter()
	}
	return ProxiesRouter()
}

func (r Router) root() string {
	return strings.TrimSuffix(r.Base, "/") + "/" + r.Section
}

// PathFor returns the path of a page id after parent redirects.
func (r Router) PathFor(id string) string {
	return strings.TrimSuffix(r.Base, "/") + r.RelativePath(id)
}

// RelativePath is PathFor without the Base prefix. Search index entries
// and JSON responses carry relative paths; links add the base.
func (r Router) RelativePath(id string) string {
	if target, ok := r.ParentRedirects[id]; ok {
		id = target
	}
	if id == "" || id == HomeID {
		return "/" + r.Section
	}
	return "/" + r.Section + "/" + id
}

// PageFromPath extracts the page id from a path. It reports false for
// paths outside the section.
func (r Router) PageFromPath(path string) (string, bool) {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimSuffix(path, "/")
	root := r.root()
	if path == root {
		return HomeID, true
	}
	rest, ok := strings.CutPrefix(path, root+"/")
	if !ok || rest == "" || strings.Contains(rest, "/") {
		return "", false
	}
	return rest, true
}

// Navigate moves to id. It returns the path the caller should push. In
// ModeLocal the state is updated directly; in ModeRouter the current page
// follows once the caller applies the path.
func (r Router) Navigate(s *State, id string, narrow bool) string {
	path := r.PathFor(id)
	if r.Mode == ModeLocal {
		s.SelectItem(id, narrow)
	} else if narrow {
		s.SidebarOpen = false
	}
	return path
}

// Apply syncs the state with a path the router moved to.
func (r Router) Apply(s *State, path string) bool {
	id, ok := r.PageFromPath(path)
	if !ok {
		return false
	}
	s.CurrentPageID = id
	return true
}
