package layout

import "testing"

func TestCalculatePaneHeight(t *testing.T) {
	cfg := DefaultConfig().Pane

	tests := []struct {
		name           string
		terminalHeight int
		want           int
	}{
		{"normal terminal", 24, 16},               // 24 - 8 = 16
		{"large terminal", 50, 42},                // 50 - 8 = 42
		{"small terminal enforces min", 9, 5},     // 9 - 8 = 1, min is 5
		{"exactly at reduction", 8, 5},            // 8 - 8 = 0, min is 5
		{"terminal smaller than reduction", 4, 5}, // negative clamps to min
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculatePaneHeight(tt.terminalHeight, cfg)
			if got != tt.want {
				t.Errorf("CalculatePaneHeight(%d) = %d, want %d",
					tt.terminalHeight, got, tt.want)
			}
		})
	}
}

func TestCalculatePaneWidth(t *testing.T) {
	cfg := DefaultConfig().Pane

	tests := []struct {
		name          string
		terminalWidth int
		count         int
		want          int
	}{
		{"single pane", 80, 1, 76},              // 80 - 4 = 76
		{"single pane enforces min", 20, 1, 20}, // 20 - 4 = 16, min 20
		{"two panes", 80, 2, 36},                // (80-8)/2 = 36
		{"two panes wide", 120, 2, 56},          // (120-8)/2 = 56
		{"two panes enforces min", 40, 2, 20},   // (40-8)/2 = 16, min 20
		{"zero count treated as one", 80, 0, 76},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculatePaneWidth(tt.terminalWidth, tt.count, cfg)
			if got != tt.want {
				t.Errorf("CalculatePaneWidth(%d, %d) = %d, want %d",
					tt.terminalWidth, tt.count, got, tt.want)
			}
		})
	}
}

func TestCalculateItemWidth(t *testing.T) {
	cfg := DefaultConfig().Pane

	tests := []struct {
		name      string
		paneWidth int
		want      int
	}{
		{"normal pane", 24, 20}, // 24 - 4 = 20
		{"wide pane", 40, 36},   // 40 - 4 = 36
		{"narrow pane", 15, 11}, // 15 - 4 = 11
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateItemWidth(tt.paneWidth, cfg)
			if got != tt.want {
				t.Errorf("CalculateItemWidth(%d) = %d, want %d",
					tt.paneWidth, got, tt.want)
			}
		})
	}
}

func TestCalculateVisibleHeight(t *testing.T) {
	tests := []struct {
		name        string
		paneHeight  int
		headerLines int
		want        int
	}{
		{"normal with header", 18, 4, 14},
		{"no header", 18, 0, 18},
		{"header equals height", 10, 10, 1}, // clamps to 1
		{"header exceeds height", 5, 10, 1}, // clamps to 1
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateVisibleHeight(tt.paneHeight, tt.headerLines)
			if got != tt.want {
				t.Errorf("CalculateVisibleHeight(%d, %d) = %d, want %d",
					tt.paneHeight, tt.headerLines, got, tt.want)
			}
		})
	}
}

func TestCalculateViewportOffset(t *testing.T) {
	tests := []struct {
		name           string
		selected       int
		total          int
		viewportHeight int
		want           int
	}{
		{"no scroll needed", 2, 5, 10, 0},
		{"selection near start", 1, 20, 10, 0},
		{"selection in middle", 10, 20, 10, 5}, // 10 - 10/2 = 5
		{"selection near end", 18, 20, 10, 10}, // max offset = 20-10 = 10
		{"selection at end", 19, 20, 10, 10},
		{"all items visible", 5, 8, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateViewportOffset(tt.selected, tt.total, tt.viewportHeight)
			if got != tt.want {
				t.Errorf("CalculateViewportOffset(%d, %d, %d) = %d, want %d",
					tt.selected, tt.total, tt.viewportHeight, got, tt.want)
			}
		})
	}
}
