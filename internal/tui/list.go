package tui

import "github.com/nikbrunner/starter/internal/sections"

// listPane puts a single cursor over the flattened lines of a sections.Model.
// It is the model's Surface: every reload re-flattens and clamps the cursor.
type listPane[S, I any] struct {
	model    *sections.Model[S, I]
	lines    []sections.Position
	cursor   int
	reloads  int
	selected *sections.IndexPath
}

func newListPane[S, I any](delegate sections.Delegate[S, I]) *listPane[S, I] {
	p := &listPane[S, I]{}
	p.model = sections.New[S, I](p, delegate)
	return p
}

// Reload implements sections.Surface.
func (p *listPane[S, I]) Reload() {
	p.reloads++
	p.selected = nil
	p.relayout()
}

// ReloadSection implements sections.Surface.
func (p *listPane[S, I]) ReloadSection(section int) {
	p.reloads++
	if p.selected != nil && p.selected.Section == section {
		p.selected = nil
	}
	p.relayout()
}

func (p *listPane[S, I]) relayout() {
	p.lines = p.model.Flatten()
	p.clamp()
}

func (p *listPane[S, I]) clamp() {
	if p.cursor >= len(p.lines) {
		p.cursor = len(p.lines) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

func (p *listPane[S, I]) down() {
	if p.cursor < len(p.lines)-1 {
		p.cursor++
	}
}

func (p *listPane[S, I]) up() {
	if p.cursor > 0 {
		p.cursor--
	}
}

func (p *listPane[S, I]) top() { p.cursor = 0 }

func (p *listPane[S, I]) bottom() {
	p.cursor = len(p.lines) - 1
	p.clamp()
}

func (p *listPane[S, I]) current() (sections.Position, bool) {
	if p.cursor < 0 || p.cursor >= len(p.lines) {
		return sections.Position{}, false
	}
	return p.lines[p.cursor], true
}

// currentItem returns the item under the cursor; false on headers and empty lists.
func (p *listPane[S, I]) currentItem() (I, bool) {
	var zero I
	pos, ok := p.current()
	if !ok || pos.Header {
		return zero, false
	}
	return p.model.Item(pos.Path.Section, pos.Path.Row)
}

// activate toggles a header or selects an item, deselecting the previous one.
// Reports whether a header was toggled.
func (p *listPane[S, I]) activate() (toggled bool, err error) {
	pos, ok := p.current()
	if !ok {
		return false, nil
	}
	if pos.Header {
		return true, p.model.Toggle(pos.Path.Section)
	}

	if p.selected != nil && *p.selected != pos.Path {
		p.model.Deselect(*p.selected)
	}
	path := pos.Path
	p.selected = &path
	p.model.Select(path)
	return false, nil
}
