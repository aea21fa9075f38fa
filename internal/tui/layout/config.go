package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	Pane  PaneConfig
	Modal ModalConfig
	Input InputConfig
	Text  TextConfig
}

// PaneConfig holds pane dimension configuration.
type PaneConfig struct {
	// HeightReduction is subtracted from terminal height for list content.
	// Accounts for: app padding (1) + tab bar (2) + pane borders (2) + status (1) + help bar (2) = 8
	HeightReduction int

	// MinHeight is the minimum pane height.
	MinHeight int

	// SplitWidthOffset is subtracted before dividing the width between panes.
	// Accounts for borders and spacing between panes.
	SplitWidthOffset int

	// MinPaneWidth is the minimum width for each pane in a split layout.
	MinPaneWidth int

	// ContentPadding is subtracted from pane width for item rendering.
	// Accounts for pane border/padding on each side.
	ContentPadding int

	// DetailHeaderLines accounts for the title and thumbnail lines above the comics list.
	DetailHeaderLines int
}

// ModalConfig holds modal dialog configuration.
type ModalConfig struct {
	// DefaultWidthPercent is the standard modal width as percentage of terminal width.
	DefaultWidthPercent int

	// MinWidth is the minimum modal width in characters.
	MinWidth int

	// MaxWidth is the maximum modal width in characters.
	MaxWidth int

	// HelpKeyColumnWidth: width for the key column of the help overlay.
	HelpKeyColumnWidth int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	FilterCharLimit int
	FilterWidth     int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		Pane: PaneConfig{
			HeightReduction:   8, // app padding (1) + tab bar (2) + pane borders (2) + status (1) + help bar (2)
			MinHeight:         5,
			SplitWidthOffset:  8,
			MinPaneWidth:      20,
			ContentPadding:    4,
			DetailHeaderLines: 4,
		},
		Modal: ModalConfig{
			DefaultWidthPercent: 50,
			MinWidth:            40,
			MaxWidth:            70,
			HelpKeyColumnWidth:  14,
		},
		Input: InputConfig{
			FilterCharLimit: 50,
			FilterWidth:     30,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
