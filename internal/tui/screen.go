package tui

// Screen identifies what the App is showing.
type Screen int

const (
	ScreenHome Screen = iota
	ScreenCharacters
	ScreenDetail // sub-screen of ScreenCharacters
	ScreenPlants
)

func (s Screen) String() string {
	switch s {
	case ScreenHome:
		return "Home"
	case ScreenCharacters, ScreenDetail:
		return "Characters"
	case ScreenPlants:
		return "Plants"
	default:
		return "Unknown"
	}
}

// tabs are the screens reachable with Tab, in order.
var tabs = []Screen{ScreenHome, ScreenCharacters, ScreenPlants}

// tabIndex maps a screen onto its tab; the detail screen belongs to Characters.
func tabIndex(s Screen) int {
	if s == ScreenDetail {
		s = ScreenCharacters
	}
	for i, t := range tabs {
		if t == s {
			return i
		}
	}
	return 0
}

func nextTab(s Screen, step int) Screen {
	i := (tabIndex(s) + step + len(tabs)) % len(tabs)
	return tabs[i]
}
