package tui_test

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/starter/internal/model"
	"github.com/nikbrunner/starter/internal/tui"
	"github.com/nikbrunner/starter/internal/tui/layout"
	"github.com/nikbrunner/starter/internal/viewmodel"
)

type fakeClient struct {
	chars     []model.Character
	comics    []model.Comic
	err       error
	comicsErr error

	listCalls  int
	lastParams url.Values
	comicsFor  []int
}

func (f *fakeClient) Characters(_ context.Context, params url.Values) ([]model.Character, error) {
	f.listCalls++
	f.lastParams = params
	if f.err != nil {
		return nil, f.err
	}
	return f.chars, nil
}

func (f *fakeClient) ComicsFor(_ context.Context, c model.Character, _ url.Values) ([]model.Comic, error) {
	f.comicsFor = append(f.comicsFor, c.ID)
	if f.comicsErr != nil {
		return nil, f.comicsErr
	}
	return f.comics, nil
}

func heroes() *fakeClient {
	return &fakeClient{
		chars: []model.Character{
			{ID: 1, Name: "Hulk", ImagePath: "http://i/hulk", ImageExtension: "jpg"},
			{ID: 2, Name: "Thor"},
			{ID: 3, Name: "Storm"},
		},
		comics: []model.Comic{
			{ID: 10, Title: "Hulk (2008) #1"},
			{ID: 11, Title: "Hulk (2008) #2"},
		},
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(app tui.App, msgs ...tea.Msg) tui.App {
	for _, msg := range msgs {
		updated, _ := app.Update(msg)
		app = updated.(tui.App)
	}
	return app
}

// loaded runs Init and feeds its result back, the way the bubbletea runtime would.
func loaded(t *testing.T, client *fakeClient, policy viewmodel.ErrorPolicy) tui.App {
	t.Helper()
	app := tui.NewApp(tui.AppParams{
		Client:    client,
		Policy:    policy,
		PageSize:  25,
		Clipboard: func(string) error { return nil },
	})
	cmd := app.Init()
	if cmd == nil {
		t.Fatal("expected Init to return a fetch command")
	}
	return send(app, cmd())
}

func names(chars []model.Character) string {
	parts := make([]string, len(chars))
	for i, c := range chars {
		parts[i] = c.Name
	}
	return strings.Join(parts, ",")
}

func TestApp_Home_ToggleSection(t *testing.T) {
	app := tui.NewApp(tui.AppParams{})

	if app.Screen() != tui.ScreenHome {
		t.Fatalf("expected home screen, got %v", app.Screen())
	}
	// 2 headers + 4 + 3 items
	if app.HomeLines() != 9 {
		t.Fatalf("expected 9 lines, got %d", app.HomeLines())
	}

	// Cursor starts on the "First" header
	app = send(app, tea.KeyMsg{Type: tea.KeyEnter})
	if app.HomeExpanded(0) {
		t.Error("expected first section collapsed")
	}
	if !app.HomeExpanded(1) {
		t.Error("second section should stay expanded")
	}
	if app.HomeLines() != 5 {
		t.Errorf("expected 5 lines after collapse, got %d", app.HomeLines())
	}

	app = send(app, tea.KeyMsg{Type: tea.KeyEnter})
	if !app.HomeExpanded(0) || app.HomeLines() != 9 {
		t.Errorf("expected first section restored, got %d lines", app.HomeLines())
	}
}

func TestApp_Home_SelectItem(t *testing.T) {
	app := tui.NewApp(tui.AppParams{})

	app = send(app, runes("j"), tea.KeyMsg{Type: tea.KeyEnter})

	status, isErr := app.Status()
	if status != "Selected A (section 0, row 0)" || isErr {
		t.Errorf("unexpected status %q (err=%v)", status, isErr)
	}
}

func TestApp_Navigation_GgAndG(t *testing.T) {
	app := tui.NewApp(tui.AppParams{})

	app = send(app, runes("G"))
	if app.Cursor() != 8 {
		t.Errorf("G should move to last line, got %d", app.Cursor())
	}

	app = send(app, runes("g"))
	if app.Cursor() != 8 {
		t.Errorf("single g should not move, got %d", app.Cursor())
	}

	app = send(app, runes("g"))
	if app.Cursor() != 0 {
		t.Errorf("gg should move to top, got %d", app.Cursor())
	}
}

func TestApp_TabCyclesScreens(t *testing.T) {
	app := tui.NewApp(tui.AppParams{})
	tab := tea.KeyMsg{Type: tea.KeyTab}

	want := []tui.Screen{tui.ScreenCharacters, tui.ScreenPlants, tui.ScreenHome}
	for _, screen := range want {
		app = send(app, tab)
		if app.Screen() != screen {
			t.Fatalf("expected %v, got %v", screen, app.Screen())
		}
	}

	app = send(app, tea.KeyMsg{Type: tea.KeyShiftTab})
	if app.Screen() != tui.ScreenPlants {
		t.Errorf("shift+tab from home should wrap to plants, got %v", app.Screen())
	}
}

func TestApp_LoadsCharacters(t *testing.T) {
	client := heroes()
	app := loaded(t, client, viewmodel.PolicySurface)

	if client.listCalls != 1 {
		t.Errorf("expected 1 listing call, got %d", client.listCalls)
	}
	if client.lastParams.Get("limit") != "25" {
		t.Errorf("expected limit=25, got %v", client.lastParams)
	}
	if app.Loading() {
		t.Error("expected loading to finish")
	}
	if got := names(app.Characters()); got != "Hulk,Thor,Storm" {
		t.Errorf("unexpected characters %q", got)
	}
	if status, _ := app.Status(); status != "Loaded 3 characters" {
		t.Errorf("unexpected status %q", status)
	}
}

func TestApp_NoClient(t *testing.T) {
	app := tui.NewApp(tui.AppParams{})

	if app.Init() != nil {
		t.Error("expected no command without a client")
	}
	if status, _ := app.Status(); !strings.Contains(status, "no API keys") {
		t.Errorf("unexpected status %q", status)
	}
}

func TestApp_FilterCharacters(t *testing.T) {
	app := loaded(t, heroes(), viewmodel.PolicySurface)
	app = send(app, tea.KeyMsg{Type: tea.KeyTab}, runes("/"))

	if app.Mode() != tui.ModeFilter {
		t.Fatalf("expected filter mode, got %v", app.Mode())
	}

	app = send(app, runes("o"), runes("r"))
	if got := names(app.Characters()); got != "Thor,Storm" {
		t.Errorf("expected Thor,Storm, got %q", got)
	}

	// Enter keeps the query
	app = send(app, tea.KeyMsg{Type: tea.KeyEnter})
	if app.Mode() != tui.ModeNormal {
		t.Errorf("expected normal mode after Enter, got %v", app.Mode())
	}
	if got := names(app.Characters()); got != "Thor,Storm" {
		t.Errorf("query should persist, got %q", got)
	}

	// Esc while filtering clears it
	app = send(app, runes("/"), tea.KeyMsg{Type: tea.KeyEsc})
	if got := names(app.Characters()); got != "Hulk,Thor,Storm" {
		t.Errorf("expected full list after Esc, got %q", got)
	}
}

func TestApp_ErrorPolicy(t *testing.T) {
	tests := []struct {
		name      string
		policy    viewmodel.ErrorPolicy
		wantErr   bool
		wantInMsg string
	}{
		{"surface shows error", viewmodel.PolicySurface, true, "boom"},
		{"ignore stays quiet", viewmodel.PolicyIgnore, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := heroes()
			client.err = errors.New("boom")

			app := loaded(t, client, tt.policy)

			status, isErr := app.Status()
			if isErr != tt.wantErr {
				t.Errorf("expected error status %v, got %v (%q)", tt.wantErr, isErr, status)
			}
			if !strings.Contains(status, tt.wantInMsg) {
				t.Errorf("expected status to contain %q, got %q", tt.wantInMsg, status)
			}
			if len(app.Characters()) != 0 {
				t.Errorf("expected no characters, got %d", len(app.Characters()))
			}
		})
	}
}

func TestApp_OpenDetail(t *testing.T) {
	client := heroes()
	app := loaded(t, client, viewmodel.PolicySurface)
	app = send(app, tea.KeyMsg{Type: tea.KeyTab})

	updated, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = updated.(tui.App)

	if app.Screen() != tui.ScreenDetail {
		t.Fatalf("expected detail screen, got %v", app.Screen())
	}
	if cmd == nil {
		t.Fatal("expected a comics fetch")
	}

	app = send(app, cmd())
	character, comics := app.Detail()
	if character.Name != "Hulk" {
		t.Errorf("expected Hulk, got %q", character.Name)
	}
	if len(comics) != 2 {
		t.Errorf("expected 2 comics, got %d", len(comics))
	}
	if len(client.comicsFor) != 1 || client.comicsFor[0] != 1 {
		t.Errorf("expected comics fetched for character 1, got %v", client.comicsFor)
	}

	app = send(app, runes("j"))
	if app.Cursor() != 1 {
		t.Errorf("expected comics cursor 1, got %d", app.Cursor())
	}

	app = send(app, tea.KeyMsg{Type: tea.KeyEsc})
	if app.Screen() != tui.ScreenCharacters {
		t.Errorf("expected back on characters, got %v", app.Screen())
	}
}

func TestApp_FavoriteToggle(t *testing.T) {
	app := loaded(t, heroes(), viewmodel.PolicySurface)
	app = send(app, tea.KeyMsg{Type: tea.KeyTab}, runes("j"), runes("f"))

	if !app.Characters()[1].Favorite {
		t.Error("expected Thor to be a favorite")
	}
	if app.Cursor() != 1 {
		t.Errorf("cursor should stay on Thor, got %d", app.Cursor())
	}
	if status, _ := app.Status(); status != "Added Thor to favorites" {
		t.Errorf("unexpected status %q", status)
	}

	app = send(app, runes("f"))
	if app.Characters()[1].Favorite {
		t.Error("expected Thor to be unfavorited")
	}
}

func TestApp_YankThumbnail(t *testing.T) {
	var copied []string
	app := tui.NewApp(tui.AppParams{
		Client: heroes(),
		Clipboard: func(s string) error {
			copied = append(copied, s)
			return nil
		},
	})
	app = send(app, app.Init()(), tea.KeyMsg{Type: tea.KeyTab})

	updated, cmd := app.Update(runes("Y"))
	app = updated.(tui.App)
	if cmd == nil {
		t.Fatal("expected a copy command")
	}
	app = send(app, cmd())

	if len(copied) != 1 || copied[0] != "http://i/hulk.jpg" {
		t.Errorf("unexpected clipboard writes %v", copied)
	}
	if status, _ := app.Status(); status != "Copied http://i/hulk.jpg" {
		t.Errorf("unexpected status %q", status)
	}

	// Thor has no image
	_, cmd = send(app, runes("j")).Update(runes("Y"))
	if cmd != nil {
		t.Error("expected no copy command without an image")
	}
}

func TestApp_PlantsFilter(t *testing.T) {
	app := tui.NewApp(tui.AppParams{})
	app = send(app, tea.KeyMsg{Type: tea.KeyShiftTab}, runes("/"), runes("f"), runes("e"))

	plants := app.Plants()
	if len(plants) != 1 || plants[0].Name != "Ferns" {
		t.Errorf("expected only Ferns, got %+v", plants)
	}
	// "f" was typed into the filter, not treated as a favorite toggle
	if plants[0].Favorite {
		t.Error("filter input should not toggle favorites")
	}
}

func TestApp_HelpOverlay(t *testing.T) {
	app := tui.NewApp(tui.AppParams{})

	app = send(app, runes("?"))
	if app.Mode() != tui.ModeHelp {
		t.Fatalf("expected help mode, got %v", app.Mode())
	}
	if !strings.Contains(layout.StripANSI(app.View()), "yank image URL") {
		t.Error("expected help overlay to list key bindings")
	}

	app = send(app, runes("x"))
	if app.Mode() != tui.ModeNormal {
		t.Errorf("any key should close help, got %v", app.Mode())
	}
}

func TestApp_Quit(t *testing.T) {
	app := tui.NewApp(tui.AppParams{})

	_, cmd := app.Update(runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestView_HomeSections(t *testing.T) {
	app := tui.NewApp(tui.AppParams{}).WithDimensions(100, 30)

	out := layout.StripANSI(app.View())
	for _, want := range []string{"Home", "Characters", "Plants", "▾ First", "▾ Second"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in view:\n%s", want, out)
		}
	}

	app = send(app, tea.KeyMsg{Type: tea.KeyEnter})
	out = layout.StripANSI(app.View())
	if !strings.Contains(out, "▸ First") {
		t.Errorf("expected collapsed marker in view:\n%s", out)
	}
}

func TestView_CharacterDetail(t *testing.T) {
	app := loaded(t, heroes(), viewmodel.PolicySurface).WithDimensions(120, 30)
	updated, cmd := send(app, tea.KeyMsg{Type: tea.KeyTab}).Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = send(updated.(tui.App), cmd())

	out := layout.StripANSI(app.View())
	for _, want := range []string{"Hulk", "http://i/hulk.jpg", "Comics", "Hulk (2008) #1"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in view:\n%s", want, out)
		}
	}
}
