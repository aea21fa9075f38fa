// Package sections holds the sectioned list model that drives the list panes:
// a snapshot of section/item groups plus a collapse flag per section.
package sections

import (
	"errors"
	"fmt"
)

// ErrSectionOutOfRange is returned when a section index does not exist in the current snapshot.
var ErrSectionOutOfRange = errors.New("section out of range")

// Row pairs an optional section value with its items.
type Row[S, I any] struct {
	Section *S // nil = headerless
	Items   []I
}

// IndexPath addresses an item by section and row.
type IndexPath struct {
	Section int
	Row     int
}

// Surface receives redraw signals from a Model.
type Surface interface {
	Reload()
	ReloadSection(section int)
}

// Delegate holds the callbacks a rendering surface provides. All fields are optional.
type Delegate[S, I any] struct {
	ConfigureCell func(m *Model[S, I], path IndexPath, item I) string
	DidSelect     func(m *Model[S, I], path IndexPath, item I)
	DidDeselect   func(m *Model[S, I], path IndexPath, item I)
	Header        func(m *Model[S, I], section int, value S) string
	Footer        func(m *Model[S, I], section int, value S) string
	HeaderHeight  func(section int) int
	FooterHeight  func(section int) int
}

// Dataset zips section values with item groups. When the two sides differ in
// length the shorter one is padded: missing sections are headerless and
// missing item groups are empty.
func Dataset[S, I any](sections []*S, items [][]I) []Row[S, I] {
	n := max(len(sections), len(items))
	rows := make([]Row[S, I], n)
	for i := 0; i < n; i++ {
		if i < len(sections) {
			rows[i].Section = sections[i]
		}
		if i < len(items) && items[i] != nil {
			rows[i].Items = items[i]
		} else {
			rows[i].Items = []I{}
		}
	}
	return rows
}

// Labels turns plain values into section pointers for Dataset.
func Labels[S any](values ...S) []*S {
	out := make([]*S, len(values))
	for i := range values {
		out[i] = &values[i]
	}
	return out
}

// Single returns a dataset with one headerless section.
func Single[S, I any](items []I) []Row[S, I] {
	return Dataset[S, I](nil, [][]I{items})
}

// Model owns the current snapshot and the per-section expansion state.
// It is not safe for concurrent use; mutate it from the UI update loop only.
type Model[S, I any] struct {
	data     []Row[S, I]
	original []Row[S, I]
	expanded []bool

	surface  Surface
	delegate Delegate[S, I]
}

// New creates an empty Model. surface may be nil.
func New[S, I any](surface Surface, delegate Delegate[S, I]) *Model[S, I] {
	return &Model[S, I]{
		surface:  surface,
		delegate: delegate,
	}
}

// SetSurface replaces the rendering surface.
func (m *Model[S, I]) SetSurface(surface Surface) {
	m.surface = surface
}

// Update replaces the snapshot wholesale, expands every section and asks for a full reload.
func (m *Model[S, I]) Update(rows []Row[S, I]) {
	m.original = make([]Row[S, I], len(rows))
	copy(m.original, rows)
	m.data = make([]Row[S, I], len(rows))
	copy(m.data, rows)

	m.expanded = make([]bool, len(rows))
	for i := range m.expanded {
		m.expanded[i] = true
	}

	if m.surface != nil {
		m.surface.Reload()
	}
}

// Toggle collapses or expands a section. A collapsed section reports no items
// but keeps the original ones for when it is expanded again.
func (m *Model[S, I]) Toggle(section int) error {
	if section < 0 || section >= len(m.data) {
		return fmt.Errorf("toggle %d of %d: %w", section, len(m.data), ErrSectionOutOfRange)
	}

	m.expanded[section] = !m.expanded[section]
	if m.expanded[section] {
		m.data[section].Items = m.original[section].Items
	} else {
		m.data[section].Items = []I{}
	}

	if m.surface != nil {
		m.surface.ReloadSection(section)
	}
	return nil
}

// SectionCount returns the number of sections in the snapshot.
func (m *Model[S, I]) SectionCount() int {
	return len(m.data)
}

// ItemCount returns the number of visible items in a section, 0 when out of range.
func (m *Model[S, I]) ItemCount(section int) int {
	if section < 0 || section >= len(m.data) {
		return 0
	}
	return len(m.data[section].Items)
}

// Expanded reports whether a section is expanded.
func (m *Model[S, I]) Expanded(section int) bool {
	if section < 0 || section >= len(m.expanded) {
		return false
	}
	return m.expanded[section]
}

// Section returns the section value, false for headerless or unknown sections.
func (m *Model[S, I]) Section(section int) (S, bool) {
	var zero S
	if section < 0 || section >= len(m.data) || m.data[section].Section == nil {
		return zero, false
	}
	return *m.data[section].Section, true
}

// Item returns the visible item at section/row.
func (m *Model[S, I]) Item(section, row int) (I, bool) {
	var zero I
	if section < 0 || section >= len(m.data) {
		return zero, false
	}
	items := m.data[section].Items
	if row < 0 || row >= len(items) {
		return zero, false
	}
	return items[row], true
}

// Rows returns a copy of the visible snapshot.
func (m *Model[S, I]) Rows() []Row[S, I] {
	out := make([]Row[S, I], len(m.data))
	copy(out, m.data)
	return out
}

// Cell renders the item at path through ConfigureCell.
func (m *Model[S, I]) Cell(path IndexPath) string {
	item, ok := m.Item(path.Section, path.Row)
	if !ok || m.delegate.ConfigureCell == nil {
		return ""
	}
	return m.delegate.ConfigureCell(m, path, item)
}

// Select fires DidSelect for the item at path.
func (m *Model[S, I]) Select(path IndexPath) {
	item, ok := m.Item(path.Section, path.Row)
	if !ok || m.delegate.DidSelect == nil {
		return
	}
	m.delegate.DidSelect(m, path, item)
}

// Deselect fires DidDeselect for the item at path.
func (m *Model[S, I]) Deselect(path IndexPath) {
	item, ok := m.Item(path.Section, path.Row)
	if !ok || m.delegate.DidDeselect == nil {
		return
	}
	m.delegate.DidDeselect(m, path, item)
}

// HeaderView renders a section header. Headerless sections have none.
func (m *Model[S, I]) HeaderView(section int) (string, bool) {
	value, ok := m.Section(section)
	if !ok || m.delegate.Header == nil {
		return "", false
	}
	return m.delegate.Header(m, section, value), true
}

// FooterView renders a section footer. Headerless sections have none.
func (m *Model[S, I]) FooterView(section int) (string, bool) {
	value, ok := m.Section(section)
	if !ok || m.delegate.Footer == nil {
		return "", false
	}
	return m.delegate.Footer(m, section, value), true
}

// HeaderHeightFor returns the header height, 0 for headerless sections.
func (m *Model[S, I]) HeaderHeightFor(section int) int {
	if _, ok := m.Section(section); !ok || m.delegate.HeaderHeight == nil {
		return 0
	}
	return m.delegate.HeaderHeight(section)
}

// FooterHeightFor returns the footer height, 0 for headerless sections.
func (m *Model[S, I]) FooterHeightFor(section int) int {
	if _, ok := m.Section(section); !ok || m.delegate.FooterHeight == nil {
		return 0
	}
	return m.delegate.FooterHeight(section)
}
