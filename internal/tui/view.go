package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/starter/internal/model"
	"github.com/nikbrunner/starter/internal/tui/layout"
)

// View implements tea.Model.
func (a App) View() string {
	var b strings.Builder

	b.WriteString(a.renderTabs())
	b.WriteString("\n\n")

	if a.mode == ModeHelp {
		b.WriteString(a.renderHelp())
	} else {
		b.WriteString(a.renderBody())
	}

	b.WriteString("\n")
	b.WriteString(a.renderStatus())
	b.WriteString("\n")
	b.WriteString(a.styles.Help.Render(a.renderHints(a.getContextualHints())))

	return a.styles.App.Render(b.String())
}

func (a App) renderTabs() string {
	active := tabIndex(a.screen)
	parts := make([]string, len(tabs))
	for i, s := range tabs {
		style := a.styles.Tab
		if i == active {
			style = a.styles.TabActive
		}
		parts[i] = style.Render(s.String())
	}

	bar := strings.Join(parts, " ")
	if a.loading {
		bar += "  " + a.styles.Empty.Render("loading...")
	}
	return bar
}

func (a App) renderBody() string {
	height := layout.CalculatePaneHeight(a.height, a.layout.Pane)

	switch a.screen {
	case ScreenHome:
		width := layout.CalculatePaneWidth(a.width, 1, a.layout.Pane)
		list := renderList(a.home, a.styles, a.layout, width, height, "Nothing here.")
		return a.styles.PaneActive.Width(width).Height(height).Render(list)

	case ScreenCharacters:
		width := layout.CalculatePaneWidth(a.width, 2, a.layout.Pane)
		listHeight := height
		var header string
		if line := a.filterLine(a.charVM.QueryText()); line != "" {
			header = line + "\n"
			listHeight = layout.CalculateVisibleHeight(height, 1)
		}
		empty := "No characters."
		if a.loading {
			empty = "Loading characters..."
		}
		list := header + renderList(a.chars, a.styles, a.layout, width, listHeight, empty)

		c, ok := a.chars.currentItem()
		preview := a.renderCharacter(c, ok, width)

		return lipgloss.JoinHorizontal(lipgloss.Top,
			a.styles.PaneActive.Width(width).Height(height).Render(list),
			a.styles.Pane.Width(width).Height(height).Render(preview),
		)

	case ScreenDetail:
		width := layout.CalculatePaneWidth(a.width, 2, a.layout.Pane)
		info := a.renderCharacter(a.detail.character, true, width)
		comics := a.renderComics(width, layout.CalculateVisibleHeight(height, a.layout.Pane.DetailHeaderLines))

		return lipgloss.JoinHorizontal(lipgloss.Top,
			a.styles.Pane.Width(width).Height(height).Render(info),
			a.styles.PaneActive.Width(width).Height(height).Render(comics),
		)

	case ScreenPlants:
		width := layout.CalculatePaneWidth(a.width, 2, a.layout.Pane)
		listHeight := height
		var header string
		if line := a.filterLine(a.plantVM.QueryText()); line != "" {
			header = line + "\n"
			listHeight = layout.CalculateVisibleHeight(height, 1)
		}
		list := header + renderList(a.plants, a.styles, a.layout, width, listHeight, "No plants.")

		p, ok := a.plants.currentItem()
		preview := a.renderPlant(p, ok, width)

		return lipgloss.JoinHorizontal(lipgloss.Top,
			a.styles.PaneActive.Width(width).Height(height).Render(list),
			a.styles.Pane.Width(width).Height(height).Render(preview),
		)
	}

	return ""
}

// filterLine is the input while filtering, the applied query otherwise.
func (a App) filterLine(query string) string {
	if a.mode == ModeFilter {
		return a.filter.View()
	}
	if strings.TrimSpace(query) == "" {
		return ""
	}
	return a.styles.Empty.Render("/ " + query)
}

// renderList renders the visible window of a list pane.
func renderList[S, I any](p *listPane[S, I], styles Styles, cfg layout.LayoutConfig, width, height int, empty string) string {
	if len(p.lines) == 0 {
		return styles.Empty.Render(empty)
	}

	itemWidth := layout.CalculateItemWidth(width, cfg.Pane)
	offset := layout.CalculateViewportOffset(p.cursor, len(p.lines), height)
	end := min(offset+height, len(p.lines))

	rows := make([]string, 0, end-offset)
	for i := offset; i < end; i++ {
		pos := p.lines[i]

		var text string
		if pos.Header {
			label, _ := p.model.HeaderView(pos.Path.Section)
			arrow := "▾ "
			if !p.model.Expanded(pos.Path.Section) {
				arrow = "▸ "
			}
			text, _ = layout.TruncateLabel(label, itemWidth, arrow, "", cfg.Text)
			text = styles.Header.Render(text)
		} else {
			cell := p.model.Cell(pos.Path)
			if _, labelled := p.model.Section(pos.Path.Section); labelled {
				cell = "  " + cell
			}
			text = layout.TruncateANSIAware(cell, itemWidth, cfg.Text)
		}

		if i == p.cursor {
			rows = append(rows, styles.ItemSelected.Render(layout.StripANSI(text)))
		} else {
			rows = append(rows, styles.Item.Render(text))
		}
	}
	return strings.Join(rows, "\n")
}

func (a App) renderCharacter(c model.Character, ok bool, width int) string {
	if !ok {
		return a.styles.Empty.Render("No character selected.")
	}

	textWidth := layout.CalculateItemWidth(width, a.layout.Pane)
	title, _ := layout.TruncateText(c.FavoriteGlyph()+" "+c.Name, textWidth, a.layout.Text)

	var b strings.Builder
	b.WriteString(a.styles.Title.Render(title))
	b.WriteString("\n")
	if thumb := c.Thumbnail(); thumb != "" {
		url, _ := layout.TruncateText(thumb, textWidth, a.layout.Text)
		b.WriteString(a.styles.URL.Render(url))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	desc := c.Description
	if desc == "" {
		desc = "No description."
	}
	b.WriteString(a.styles.Description.Width(textWidth).Render(desc))
	return b.String()
}

func (a App) renderComics(width, visible int) string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Comics"))
	b.WriteString("\n\n")

	switch {
	case a.detail.loading:
		b.WriteString(a.styles.Empty.Render("Loading comics..."))
		return b.String()
	case a.detail.err != nil:
		b.WriteString(a.styles.StatusError.Render("Could not load comics."))
		return b.String()
	case len(a.detail.comics) == 0:
		b.WriteString(a.styles.Empty.Render("No comics."))
		return b.String()
	}

	textWidth := layout.CalculateItemWidth(width, a.layout.Pane)
	start, end := layout.CalculateVisibleListItems(visible, a.detail.cursor, len(a.detail.comics))
	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		title, _ := layout.TruncateText(a.detail.comics[i].Title, textWidth, a.layout.Text)
		if i == a.detail.cursor {
			rows = append(rows, a.styles.ItemSelected.Render(title))
		} else {
			rows = append(rows, a.styles.Item.Render(title))
		}
	}
	b.WriteString(strings.Join(rows, "\n"))
	return b.String()
}

func (a App) renderPlant(p model.Plant, ok bool, width int) string {
	if !ok {
		return a.styles.Empty.Render("No plant selected.")
	}

	textWidth := layout.CalculateItemWidth(width, a.layout.Pane)
	var b strings.Builder
	b.WriteString(a.styles.Title.Render(p.FavoriteGlyph() + " " + p.Name))
	b.WriteString("\n")
	b.WriteString(a.styles.URL.Render(p.Image))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Description.Width(textWidth).Render(p.Description))
	return b.String()
}

func (a App) renderStatus() string {
	if a.status.text == "" {
		return ""
	}
	if a.status.isErr {
		return a.styles.StatusError.Render(a.status.text)
	}
	return a.styles.Status.Render(a.status.text)
}

func (a App) renderHelp() string {
	width := layout.CalculateModalWidth(a.width, a.layout.Modal.DefaultWidthPercent, a.layout.Modal)

	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Keys"))
	b.WriteString("\n\n")
	for _, binding := range a.keys.helpBindings() {
		h := binding.Help()
		b.WriteString(fmt.Sprintf("%-*s %s\n", a.layout.Modal.HelpKeyColumnWidth, h.Key, h.Desc))
	}

	box := a.styles.Modal.Width(width).Render(strings.TrimRight(b.String(), "\n"))
	return lipgloss.PlaceHorizontal(a.width, lipgloss.Center, box)
}
