package tui

import "strings"

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "j/k", "Enter")
	Desc string // Short description (e.g., "move", "open")
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for bottom bar: "j/k:move h:back l:open"
func (a App) renderHints(hints HintSet) string {
	allHints := hints.All()
	if len(allHints) == 0 {
		return ""
	}

	parts := make([]string, len(allHints))
	for i, h := range allHints {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// HintSet is an ordered collection of hints by group.
type HintSet struct {
	Nav    []Hint // Navigation hints (j/k, Tab, etc.)
	Action []Hint // Action hints (Enter, f, Y, etc.)
	System []Hint // System hints (?, q, Esc)
}

// All returns all hints flattened in display order: Nav + Action + System.
func (h HintSet) All() []Hint {
	result := make([]Hint, 0, len(h.Nav)+len(h.Action)+len(h.System))
	result = append(result, h.Nav...)
	result = append(result, h.Action...)
	result = append(result, h.System...)
	return result
}

// getContextualHints returns the appropriate hints for the current mode and screen.
func (a App) getContextualHints() HintSet {
	switch a.mode {
	case ModeFilter:
		return HintSet{
			Nav:    []Hint{{Key: "type", Desc: "filter"}},
			Action: []Hint{{Key: "Enter", Desc: "apply"}},
			System: []Hint{{Key: "Esc", Desc: "clear"}},
		}
	case ModeHelp:
		return HintSet{
			System: []Hint{{Key: "any key", Desc: "close"}},
		}
	}

	system := []Hint{
		{Key: "?", Desc: "help"},
		{Key: "q", Desc: "quit"},
	}

	switch a.screen {
	case ScreenHome:
		return HintSet{
			Nav:    []Hint{{Key: "j/k", Desc: "move"}, {Key: "Tab", Desc: "screen"}},
			Action: []Hint{{Key: "Enter", Desc: "toggle/select"}},
			System: system,
		}
	case ScreenCharacters:
		return HintSet{
			Nav: []Hint{{Key: "j/k", Desc: "move"}, {Key: "Tab", Desc: "screen"}},
			Action: []Hint{
				{Key: "Enter", Desc: "open"},
				{Key: "/", Desc: "filter"},
				{Key: "f", Desc: "fav"},
				{Key: "Y", Desc: "yank"},
				{Key: "r", Desc: "reload"},
			},
			System: system,
		}
	case ScreenDetail:
		return HintSet{
			Nav: []Hint{{Key: "j/k", Desc: "comics"}, {Key: "h/Esc", Desc: "back"}},
			Action: []Hint{
				{Key: "f", Desc: "fav"},
				{Key: "Y", Desc: "yank"},
			},
			System: system,
		}
	case ScreenPlants:
		return HintSet{
			Nav: []Hint{{Key: "j/k", Desc: "move"}, {Key: "Tab", Desc: "screen"}},
			Action: []Hint{
				{Key: "/", Desc: "filter"},
				{Key: "f", Desc: "fav"},
				{Key: "Y", Desc: "yank"},
			},
			System: system,
		}
	default:
		return HintSet{}
	}
}
