package sections

// Position is one line of a flattened list: either a section header or an item.
type Position struct {
	Header bool
	Path   IndexPath // Row is -1 for headers
}

// Flatten lays the snapshot out as display lines: a header line for every
// labelled section followed by that section's visible items.
func (m *Model[S, I]) Flatten() []Position {
	var out []Position
	for s := range m.data {
		if m.data[s].Section != nil {
			out = append(out, Position{Header: true, Path: IndexPath{Section: s, Row: -1}})
		}
		for r := range m.data[s].Items {
			out = append(out, Position{Path: IndexPath{Section: s, Row: r}})
		}
	}
	return out
}
