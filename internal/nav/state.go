package nav

// State is the mutable navigation state of one page-view session. It is
// never persisted.
type State struct {
	CurrentPageID string          `json:"currentPageId"`
	Expanded      map[string]bool `json:"expandedSections"`
	SidebarOpen   bool            `json:"isSidebarOpen"`
	SearchQuery   string          `json:"searchQuery"`
	SearchFocused bool            `json:"searchFocused"`
	TOCOpen       bool            `json:"tocOpen"`
	MenuOpen      bool            `json:"menuOpen"`
}

// NewState starts a session on initial with the given parents expanded.
// An empty initial starts on the home page.
func NewState(initial string, expanded []string) *State {
	if initial == "" {
		initial = HomeID
	}
	s := &State{CurrentPageID: initial, Expanded: make(map[string]bool, len(expanded))}
	for _, id := range expanded {
		s.Expanded[id] = true
	}
	return s
}

// SelectItem makes id the current page. On a narrow viewport the sidebar
// overlay closes as well.
func (s *State) SelectItem(id string, narrow bool) {
	s.CurrentPageID = id
	if narrow {
		s.SidebarOpen = false
	}
}

// ToggleSection flips the expansion of a parent. It never changes the
// current page.
func (s *State) ToggleSection(id string) {
	if s.Expanded == nil {
		s.Expanded = make(map[string]bool)
	}
	s.Expanded[id] = !s.Expanded[id]
}

// IsExpanded reports whether a parent's children are visible.
func (s *State) IsExpanded(id string) bool { return s.Expanded[id] }

// IsActive reports whether id is the current page.
func (s *State) IsActive(id string) bool { return id == s.CurrentPageID }

// ToggleSidebar opens or closes the sidebar overlay.
func (s *State) ToggleSidebar() { s.SidebarOpen = !s.SidebarOpen }

// SetQuery updates the search query.
func (s *State) SetQuery(q string) { s.SearchQuery = q }

// ClearSearch drops the query and search focus.
func (s *State) ClearSearch() {
	s.SearchQuery = ""
	s.SearchFocused = false
}

// Row is one visible line of the rendered sidebar.
type Row struct {
	ID         string
	Title      string
	Icon       string
	Depth      int
	ParentID   string
	Expandable bool
	Expanded   bool
	Active     bool
}

// VisibleRows flattens items into the rows currently shown: every top-level
// item, plus the children of expanded parents.
func (s *State) VisibleRows(items []Item) []Row {
	var rows []Row
	for _, it := range items {
		expanded := s.IsExpanded(it.ID)
		rows = append(rows, Row{
			ID:         it.ID,
			Title:      it.Title,
			Icon:       it.Icon,
			Expandable: it.HasChildren(),
			Expanded:   it.HasChildren() && expanded,
			Active:     s.IsActive(it.ID),
		})
		if !it.HasChildren() || !expanded {
			continue
		}
		for _, c := range it.Children {
			rows = append(rows, Row{
				ID:       c.ID,
				Title:    c.Title,
				Depth:    1,
				ParentID: it.ID,
				Active:   s.IsActive(c.ID),
			})
		}
	}
	return rows
}
