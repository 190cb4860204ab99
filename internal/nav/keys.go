package nav

// KeyEffect describes what a keypress did to the state.
type KeyEffect int

const (
	KeyIgnored KeyEffect = iota
	KeyFocusSearch
	KeyDismiss
)

// Key names understood by HandleKey.
const (
	KeySlash  = "/"
	KeyEscape = "Escape"
)

// HandleKey applies the global keyboard shortcuts. "/" focuses search
// unless an input already has focus; Escape clears the search and closes
// every overlay.
func (s *State) HandleKey(key string, inputFocused bool) KeyEffect {
	switch key {
	case KeySlash:
		if inputFocused {
			return KeyIgnored
		}
		s.SearchFocused = true
		return KeyFocusSearch
	case KeyEscape, "esc":
		s.ClearSearch()
		s.SidebarOpen = false
		s.MenuOpen = false
		s.TOCOpen = false
		return KeyDismiss
	}
	return KeyIgnored
}
