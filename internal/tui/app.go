package tui

import (
	"context"
	"net/url"
	"strconv"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/starter/internal/log"
	"github.com/nikbrunner/starter/internal/model"
	"github.com/nikbrunner/starter/internal/sections"
	"github.com/nikbrunner/starter/internal/tui/layout"
	"github.com/nikbrunner/starter/internal/viewmodel"
)

// Client fetches the records shown on the characters screens.
type Client interface {
	Characters(ctx context.Context, params url.Values) ([]model.Character, error)
	ComicsFor(ctx context.Context, character model.Character, params url.Values) ([]model.Comic, error)
}

// Mode is the input mode of the App.
type Mode int

const (
	ModeNormal Mode = iota
	ModeFilter
	ModeHelp
)

type charactersLoadedMsg struct {
	records []model.Character
	err     error
}

type comicsLoadedMsg struct {
	characterID int
	comics      []model.Comic
	err         error
}

type yankedMsg struct {
	text string
	err  error
}

// detailState is the character detail screen.
type detailState struct {
	character model.Character
	comics    []model.Comic
	loading   bool
	err       error
	cursor    int
}

// App is the main bubbletea model. Update is the only place state changes,
// fetch results come back to it as messages.
type App struct {
	client   Client
	pageSize int
	keys     KeyMap
	styles   Styles
	layout   layout.LayoutConfig
	copy     func(string) error

	screen Screen
	mode   Mode

	home   *listPane[string, string]
	chars  *listPane[string, model.Character]
	plants *listPane[string, model.Plant]

	charVM  *viewmodel.ViewModel[model.Character]
	plantVM *viewmodel.ViewModel[model.Plant]

	detail  *detailState
	filter  textinput.Model
	status  *statusLine
	loading bool

	// unsubscribe funcs for the view-model observers
	teardown []func()

	// For gg command
	lastKeyWasG bool

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Client       Client // nil leaves the characters screen empty
	PageSize     int    // limit sent with character listings, 0 = server default
	Policy       viewmodel.ErrorPolicy
	Plants       []model.Plant // optional, defaults to model.PlantCatalog()
	Keys         *KeyMap       // optional, uses default if nil
	Styles       *Styles       // optional, uses default if nil
	LayoutConfig *layout.LayoutConfig
	Clipboard    func(string) error // optional, defaults to the system clipboard
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	layoutCfg := layout.DefaultConfig()
	if params.LayoutConfig != nil {
		layoutCfg = *params.LayoutConfig
	}

	copyFn := params.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	plantList := params.Plants
	if plantList == nil {
		plantList = model.PlantCatalog()
	}

	status := &statusLine{}
	var teardown []func()

	home := newListPane(sections.Delegate[string, string]{
		ConfigureCell: func(_ *sections.Model[string, string], _ sections.IndexPath, item string) string {
			return item
		},
		DidSelect: func(_ *sections.Model[string, string], path sections.IndexPath, item string) {
			status.set("Selected %s (section %d, row %d)", item, path.Section, path.Row)
		},
		DidDeselect: func(_ *sections.Model[string, string], _ sections.IndexPath, item string) {
			log.InfoLog.Printf("deselected %s", item)
		},
		Header: func(_ *sections.Model[string, string], _ int, label string) string {
			return label
		},
		HeaderHeight: func(int) int { return 1 },
	})
	home.model.Update(sections.Dataset(
		sections.Labels("First", "Second"),
		[][]string{{"A", "B", "C", "D"}, {"X", "Y", "Z"}},
	))

	chars := newListPane(sections.Delegate[string, model.Character]{
		ConfigureCell: func(_ *sections.Model[string, model.Character], _ sections.IndexPath, c model.Character) string {
			return favoriteCell(styles, c.Favorite, c.FavoriteGlyph(), c.Name)
		},
		DidSelect: func(_ *sections.Model[string, model.Character], _ sections.IndexPath, c model.Character) {
			log.InfoLog.Printf("opened character %d (%s)", c.ID, c.Name)
		},
	})
	charVM := viewmodel.New(viewmodel.Params[model.Character]{
		Name:   func(c model.Character) string { return c.Name },
		Policy: params.Policy,
	})
	teardown = append(teardown,
		charVM.Subscribe(func(visible []model.Character) {
			chars.model.Update(sections.Single[string](visible))
		}),
		charVM.SubscribeErrors(func(err error) {
			status.fail("Could not load characters: %v", err)
		}),
	)

	plants := newListPane(sections.Delegate[string, model.Plant]{
		ConfigureCell: func(_ *sections.Model[string, model.Plant], _ sections.IndexPath, p model.Plant) string {
			return favoriteCell(styles, p.Favorite, p.FavoriteGlyph(), p.Name)
		},
		DidSelect: func(_ *sections.Model[string, model.Plant], _ sections.IndexPath, p model.Plant) {
			status.set("Selected %s", p.Name)
		},
	})
	plantVM := viewmodel.New(viewmodel.Params[model.Plant]{
		Name:   func(p model.Plant) string { return p.Name },
		Policy: params.Policy,
	})
	teardown = append(teardown, plantVM.Subscribe(func(visible []model.Plant) {
		plants.model.Update(sections.Single[string](visible))
	}))
	_ = plantVM.Load(plantList, nil)

	filter := textinput.New()
	filter.Placeholder = "Filter..."
	filter.Prompt = "/ "
	filter.CharLimit = layoutCfg.Input.FilterCharLimit
	filter.Width = layoutCfg.Input.FilterWidth

	app := App{
		client:   params.Client,
		pageSize: params.PageSize,
		keys:     keys,
		styles:   styles,
		layout:   layoutCfg,
		copy:     copyFn,
		screen:   ScreenHome,
		mode:     ModeNormal,
		home:     home,
		chars:    chars,
		plants:   plants,
		charVM:   charVM,
		plantVM:  plantVM,
		detail:   &detailState{},
		filter:   filter,
		status:   status,
		teardown: teardown,
		width:    80,
		height:   24,
	}

	if app.client != nil {
		app.loading = true
		status.set("Loading characters...")
	} else {
		status.set("Characters unavailable: no API keys configured")
	}

	return app
}

// WithDimensions returns a copy of the App sized to width x height.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	return a
}

// Close unsubscribes the App from its view-models.
func (a App) Close() {
	for _, stop := range a.teardown {
		stop()
	}
}

// Screen returns the screen being shown.
func (a App) Screen() Screen {
	return a.screen
}

// Mode returns the current input mode.
func (a App) Mode() Mode {
	return a.mode
}

// Cursor returns the cursor position on the current screen.
func (a App) Cursor() int {
	switch a.screen {
	case ScreenHome:
		return a.home.cursor
	case ScreenCharacters:
		return a.chars.cursor
	case ScreenPlants:
		return a.plants.cursor
	case ScreenDetail:
		return a.detail.cursor
	}
	return 0
}

// Status returns the status line and whether it reports an error.
func (a App) Status() (string, bool) {
	return a.status.text, a.status.isErr
}

// Loading reports whether a character listing is in flight.
func (a App) Loading() bool {
	return a.loading
}

// HomeLines returns the number of rows (headers and items) on the home screen.
func (a App) HomeLines() int {
	return len(a.home.lines)
}

// HomeExpanded reports whether a home screen section is expanded.
func (a App) HomeExpanded(section int) bool {
	return a.home.model.Expanded(section)
}

// Characters returns the characters currently listed.
func (a App) Characters() []model.Character {
	return a.charVM.Visible()
}

// Plants returns the plants currently listed.
func (a App) Plants() []model.Plant {
	return a.plantVM.Visible()
}

// Detail returns the character on the detail screen and its comics.
func (a App) Detail() (model.Character, []model.Comic) {
	return a.detail.character, a.detail.comics
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	if a.client == nil {
		return nil
	}
	return a.fetchCharacters()
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case charactersLoadedMsg:
		a.loading = false
		if err := a.charVM.Load(msg.records, msg.err); err != nil {
			log.ErrorLog.Printf("load characters: %v", err)
			return a, nil
		}
		if msg.err != nil {
			a.status.set("")
			return a, nil
		}
		a.status.set("Loaded %d characters", len(msg.records))
		return a, nil

	case comicsLoadedMsg:
		if msg.characterID != a.detail.character.ID {
			return a, nil
		}
		a.detail.loading = false
		a.detail.comics = msg.comics
		a.detail.cursor = 0
		if msg.err != nil {
			log.ErrorLog.Printf("load comics for %d: %v", msg.characterID, msg.err)
			if a.charVM.Policy() == viewmodel.PolicySurface {
				a.detail.err = msg.err
				a.status.fail("Could not load comics: %v", msg.err)
			}
		}
		return a, nil

	case yankedMsg:
		if msg.err != nil {
			a.status.fail("Copy failed: %v", msg.err)
		} else {
			a.status.set("Copied %s", msg.text)
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.mode {
	case ModeFilter:
		return a.handleFilterKey(msg)
	case ModeHelp:
		a.mode = ModeNormal
		return a, nil
	}

	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.moveTop()
			a.lastKeyWasG = false
			return a, nil
		}
		a.lastKeyWasG = true
		return a, nil
	}
	a.lastKeyWasG = false

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.mode = ModeHelp

	case key.Matches(msg, a.keys.NextTab):
		a.screen = nextTab(a.screen, 1)

	case key.Matches(msg, a.keys.PrevTab):
		a.screen = nextTab(a.screen, -1)

	case key.Matches(msg, a.keys.Down):
		a.moveCursor(1)

	case key.Matches(msg, a.keys.Up):
		a.moveCursor(-1)

	case key.Matches(msg, a.keys.Bottom):
		a.moveBottom()

	case key.Matches(msg, a.keys.Select):
		return a.activate()

	case key.Matches(msg, a.keys.Back):
		if a.screen == ScreenDetail {
			a.screen = ScreenCharacters
		}

	case key.Matches(msg, a.keys.Filter):
		return a.startFilter()

	case key.Matches(msg, a.keys.Favorite):
		a.toggleFavorite()

	case key.Matches(msg, a.keys.YankURL):
		return a, a.yank()

	case key.Matches(msg, a.keys.Reload):
		if a.screen == ScreenCharacters && a.client != nil && !a.loading {
			a.loading = true
			a.status.set("Loading characters...")
			return a, a.fetchCharacters()
		}
	}

	return a, nil
}

func (a App) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return a, tea.Quit
	case tea.KeyEsc:
		a.mode = ModeNormal
		a.filter.Blur()
		a.filter.Reset()
		a.query("")
		return a, nil
	case tea.KeyEnter:
		a.mode = ModeNormal
		a.filter.Blur()
		return a, nil
	}

	var cmd tea.Cmd
	a.filter, cmd = a.filter.Update(msg)
	a.query(a.filter.Value())
	return a, cmd
}

func (a App) startFilter() (tea.Model, tea.Cmd) {
	var current string
	switch a.screen {
	case ScreenCharacters:
		current = a.charVM.QueryText()
	case ScreenPlants:
		current = a.plantVM.QueryText()
	default:
		return a, nil
	}

	a.mode = ModeFilter
	a.filter.SetValue(current)
	a.filter.CursorEnd()
	return a, a.filter.Focus()
}

// query re-filters the list of the current screen.
func (a App) query(text string) {
	switch a.screen {
	case ScreenCharacters:
		a.charVM.Query(text)
		a.chars.top()
	case ScreenPlants:
		a.plantVM.Query(text)
		a.plants.top()
	}
}

func (a App) activate() (tea.Model, tea.Cmd) {
	switch a.screen {
	case ScreenHome:
		if _, err := a.home.activate(); err != nil {
			log.ErrorLog.Printf("home: %v", err)
		}

	case ScreenCharacters:
		c, ok := a.chars.currentItem()
		if !ok {
			return a, nil
		}
		if _, err := a.chars.activate(); err != nil {
			log.ErrorLog.Printf("characters: %v", err)
		}
		*a.detail = detailState{character: c, loading: a.client != nil}
		a.screen = ScreenDetail
		if a.client == nil {
			return a, nil
		}
		return a, a.fetchComics(c)

	case ScreenPlants:
		if _, err := a.plants.activate(); err != nil {
			log.ErrorLog.Printf("plants: %v", err)
		}
	}
	return a, nil
}

func (a App) moveCursor(step int) {
	switch a.screen {
	case ScreenHome:
		moveList(a.home, step)
	case ScreenCharacters:
		moveList(a.chars, step)
	case ScreenPlants:
		moveList(a.plants, step)
	case ScreenDetail:
		next := a.detail.cursor + step
		if next >= 0 && next < len(a.detail.comics) {
			a.detail.cursor = next
		}
	}
}

func moveList[S, I any](p *listPane[S, I], step int) {
	if step > 0 {
		p.down()
	} else {
		p.up()
	}
}

func (a App) moveTop() {
	switch a.screen {
	case ScreenHome:
		a.home.top()
	case ScreenCharacters:
		a.chars.top()
	case ScreenPlants:
		a.plants.top()
	case ScreenDetail:
		a.detail.cursor = 0
	}
}

func (a App) moveBottom() {
	switch a.screen {
	case ScreenHome:
		a.home.bottom()
	case ScreenCharacters:
		a.chars.bottom()
	case ScreenPlants:
		a.plants.bottom()
	case ScreenDetail:
		if len(a.detail.comics) > 0 {
			a.detail.cursor = len(a.detail.comics) - 1
		}
	}
}

func (a App) toggleFavorite() {
	switch a.screen {
	case ScreenCharacters:
		if c, ok := a.chars.currentItem(); ok {
			a.announceFavorite(c.Name, a.toggleCharacter(c).Favorite)
		}
	case ScreenDetail:
		a.detail.character = a.toggleCharacter(a.detail.character)
		a.announceFavorite(a.detail.character.Name, a.detail.character.Favorite)
	case ScreenPlants:
		p, ok := a.plants.currentItem()
		if !ok {
			return
		}
		p.ToggleFavorite()
		for i, orig := range a.plantVM.Original() {
			if orig.ID == p.ID {
				a.plantVM.Replace(i, p)
				break
			}
		}
		a.announceFavorite(p.Name, p.Favorite)
	}
}

// toggleCharacter flips the favorite flag and writes the record back to the view-model.
func (a App) toggleCharacter(c model.Character) model.Character {
	c.ToggleFavorite()
	for i, orig := range a.charVM.Original() {
		if orig.ID == c.ID {
			a.charVM.Replace(i, c)
			break
		}
	}
	return c
}

func (a App) announceFavorite(name string, favorite bool) {
	if favorite {
		a.status.set("Added %s to favorites", name)
	} else {
		a.status.set("Removed %s from favorites", name)
	}
}

// yank copies the image URL of the current record.
func (a App) yank() tea.Cmd {
	var text string
	switch a.screen {
	case ScreenCharacters:
		if c, ok := a.chars.currentItem(); ok {
			text = c.Thumbnail()
		}
	case ScreenDetail:
		text = a.detail.character.Thumbnail()
	case ScreenPlants:
		if p, ok := a.plants.currentItem(); ok {
			text = p.Image
		}
	}
	if text == "" {
		return nil
	}

	copyFn := a.copy
	return func() tea.Msg {
		return yankedMsg{text: text, err: copyFn(text)}
	}
}

func (a App) fetchCharacters() tea.Cmd {
	client, params := a.client, a.listParams()
	return func() tea.Msg {
		records, err := client.Characters(context.Background(), params)
		return charactersLoadedMsg{records: records, err: err}
	}
}

func (a App) fetchComics(c model.Character) tea.Cmd {
	client := a.client
	return func() tea.Msg {
		comics, err := client.ComicsFor(context.Background(), c, nil)
		return comicsLoadedMsg{characterID: c.ID, comics: comics, err: err}
	}
}

func (a App) listParams() url.Values {
	if a.pageSize <= 0 {
		return nil
	}
	return url.Values{"limit": {strconv.Itoa(a.pageSize)}}
}

func favoriteCell(styles Styles, favorite bool, glyph, name string) string {
	if favorite {
		glyph = styles.Favorite.Render(glyph)
	}
	return glyph + " " + name
}
