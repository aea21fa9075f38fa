package sections_test

import (
	"errors"
	"testing"

	"github.com/nikbrunner/starter/internal/sections"
	"gotest.tools/v3/assert"
)

// recordingSurface counts the redraw signals it receives.
type recordingSurface struct {
	reloads         int
	reloadedSection []int
}

func (r *recordingSurface) Reload() { r.reloads++ }
func (r *recordingSurface) ReloadSection(s int) { r.reloadedSection = append(r.reloadedSection, s) }

func TestDataset_PadsMissingItemGroups(t *testing.T) {
	labels := sections.Labels("First", "Second", "Third")
	items := [][]string{{"a", "b"}}

	rows := sections.Dataset(labels, items)

	assert.Equal(t, len(rows), 3)
	assert.Equal(t, *rows[0].Section, "First")
	assert.DeepEqual(t, rows[0].Items, []string{"a", "b"})
	for i, want := range []string{"Second", "Third"} {
		row := rows[i+1]
		assert.Assert(t, row.Section != nil)
		assert.Equal(t, *row.Section, want)
		assert.Equal(t, len(row.Items), 0)
	}
}

func TestDataset_PadsMissingSections(t *testing.T) {
	labels := sections.Labels("Only")
	items := [][]string{{"a"}, {"b", "c"}, nil}

	rows := sections.Dataset(labels, items)

	assert.Equal(t, len(rows), 3)
	assert.Equal(t, *rows[0].Section, "Only")
	assert.Assert(t, rows[1].Section == nil)
	assert.DeepEqual(t, rows[1].Items, []string{"b", "c"})
	assert.Assert(t, rows[2].Section == nil)
	assert.Assert(t, rows[2].Items != nil)
	assert.Equal(t, len(rows[2].Items), 0)
}

func TestDataset_Empty(t *testing.T) {
	rows := sections.Dataset[string, string](nil, nil)
	assert.Equal(t, len(rows), 0)
}

func TestModel_UpdateResetsState(t *testing.T) {
	surface := &recordingSurface{}
	m := sections.New[string, string](surface, sections.Delegate[string, string]{})

	rows := sections.Dataset(sections.Labels("A", "B"), [][]string{{"1"}, {"2", "3"}})
	m.Update(rows)

	assert.Equal(t, m.SectionCount(), len(rows))
	assert.Equal(t, surface.reloads, 1)
	for i := 0; i < m.SectionCount(); i++ {
		assert.Assert(t, m.Expanded(i), "section %d should start expanded", i)
	}

	// Collapse one, then replace the dataset: everything is expanded again.
	assert.NilError(t, m.Toggle(1))
	assert.Assert(t, !m.Expanded(1))

	m.Update(sections.Dataset(sections.Labels("X", "Y", "Z"), [][]string{{"1"}}))
	assert.Equal(t, m.SectionCount(), 3)
	assert.Equal(t, surface.reloads, 2)
	for i := 0; i < 3; i++ {
		assert.Assert(t, m.Expanded(i))
	}
}

func TestModel_ToggleRestoresOriginalOrder(t *testing.T) {
	surface := &recordingSurface{}
	m := sections.New[string, string](surface, sections.Delegate[string, string]{})
	m.Update(sections.Single[string]([]string{"a", "b", "c"}))

	assert.NilError(t, m.Toggle(0))
	assert.Equal(t, m.ItemCount(0), 0)
	_, ok := m.Item(0, 0)
	assert.Assert(t, !ok)

	assert.NilError(t, m.Toggle(0))
	assert.Equal(t, m.ItemCount(0), 3)
	for row, want := range []string{"a", "b", "c"} {
		got, ok := m.Item(0, row)
		assert.Assert(t, ok)
		assert.Equal(t, got, want)
	}

	assert.DeepEqual(t, surface.reloadedSection, []int{0, 0})
	assert.Equal(t, surface.reloads, 1)
}

func TestModel_ToggleOnlyTouchesOneSection(t *testing.T) {
	m := sections.New[string, string](nil, sections.Delegate[string, string]{})
	m.Update(sections.Dataset(sections.Labels("First", "Second"), [][]string{{"A", "B"}, {"X", "Y", "Z"}}))

	assert.NilError(t, m.Toggle(1))

	assert.Equal(t, m.ItemCount(0), 2)
	assert.Equal(t, m.ItemCount(1), 0)
	assert.Assert(t, m.Expanded(0))
}

func TestModel_ToggleOutOfRange(t *testing.T) {
	surface := &recordingSurface{}
	m := sections.New[string, string](surface, sections.Delegate[string, string]{})
	m.Update(sections.Single[string]([]string{"a"}))

	for _, idx := range []int{-1, 1, 5} {
		err := m.Toggle(idx)
		assert.Assert(t, errors.Is(err, sections.ErrSectionOutOfRange), "index %d", idx)
	}
	assert.Equal(t, len(surface.reloadedSection), 0)
	assert.Assert(t, m.Expanded(0))
}

func TestModel_ItemOutOfBounds(t *testing.T) {
	m := sections.New[string, int](nil, sections.Delegate[string, int]{})
	m.Update(sections.Single[string]([]int{10, 20}))

	tests := []struct {
		name    string
		section int
		row     int
		ok      bool
	}{
		{"first", 0, 0, true},
		{"last", 0, 1, true},
		{"row past end", 0, 2, false},
		{"negative row", 0, -1, false},
		{"section past end", 1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := m.Item(tt.section, tt.row)
			assert.Equal(t, ok, tt.ok)
		})
	}
	assert.Equal(t, m.ItemCount(7), 0)
}

func TestModel_DelegateCallbacks(t *testing.T) {
	var selected, deselected []string
	delegate := sections.Delegate[string, string]{
		ConfigureCell: func(_ *sections.Model[string, string], path sections.IndexPath, item string) string {
			return "cell:" + item
		},
		DidSelect: func(_ *sections.Model[string, string], _ sections.IndexPath, item string) {
			selected = append(selected, item)
		},
		DidDeselect: func(_ *sections.Model[string, string], _ sections.IndexPath, item string) {
			deselected = append(deselected, item)
		},
		Header: func(_ *sections.Model[string, string], _ int, value string) string {
			return "# " + value
		},
		HeaderHeight: func(int) int { return 40 },
	}

	m := sections.New[string, string](nil, delegate)
	m.Update(sections.Dataset(sections.Labels("Title"), [][]string{{"a"}, {"b"}}))

	assert.Equal(t, m.Cell(sections.IndexPath{Section: 0, Row: 0}), "cell:a")
	assert.Equal(t, m.Cell(sections.IndexPath{Section: 0, Row: 9}), "")

	m.Select(sections.IndexPath{Section: 1, Row: 0})
	m.Select(sections.IndexPath{Section: 3, Row: 0}) // ignored
	m.Deselect(sections.IndexPath{Section: 0, Row: 0})
	assert.DeepEqual(t, selected, []string{"b"})
	assert.DeepEqual(t, deselected, []string{"a"})

	header, ok := m.HeaderView(0)
	assert.Assert(t, ok)
	assert.Equal(t, header, "# Title")

	// Second section is headerless: no header view and zero height.
	_, ok = m.HeaderView(1)
	assert.Assert(t, !ok)
	assert.Equal(t, m.HeaderHeightFor(0), 40)
	assert.Equal(t, m.HeaderHeightFor(1), 0)
	assert.Equal(t, m.FooterHeightFor(0), 0)
}

func TestModel_Flatten(t *testing.T) {
	m := sections.New[string, string](nil, sections.Delegate[string, string]{})
	m.Update(sections.Dataset(sections.Labels("First", "Second"), [][]string{{"A", "B"}, {"X"}}))
	assert.NilError(t, m.Toggle(0))

	got := m.Flatten()
	want := []sections.Position{
		{Header: true, Path: sections.IndexPath{Section: 0, Row: -1}},
		{Header: true, Path: sections.IndexPath{Section: 1, Row: -1}},
		{Path: sections.IndexPath{Section: 1, Row: 0}},
	}
	assert.DeepEqual(t, got, want)
}
