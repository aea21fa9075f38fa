package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/starter/internal/api"
	"github.com/nikbrunner/starter/internal/config"
	"github.com/nikbrunner/starter/internal/log"
	"github.com/nikbrunner/starter/internal/model"
	"github.com/nikbrunner/starter/internal/picker"
	"github.com/nikbrunner/starter/internal/search"
	"github.com/nikbrunner/starter/internal/tui"
	"github.com/nikbrunner/starter/internal/viewmodel"
)

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "help", "--help", "-h":
			printHelp()
			return
		case "config":
			runConfig()
			return
		case "url":
			runURL()
			return
		default:
			// Treat as search query (join all remaining args)
			query := strings.Join(os.Args[1:], " ")
			runQuickSearch(query)
			return
		}
	}

	// No args - run full TUI
	runTUI()
}

func printHelp() {
	help := `starter - terminal character & plant browser

Usage:
  starter               Open interactive TUI
  starter <query>       Quick search characters → select → print
  starter url           Print a signed characters request URL
  starter config        Show config file location and settings
  starter help          Show this help

TUI Keybindings:
  Navigation:
    j/k         Move down/up
    gg/G        Jump to top/bottom
    Tab         Next screen (Home, Characters, Plants)
    h/Esc       Back from character detail

  Actions:
    l/Enter     Toggle section / open character
    /           Filter characters or plants
    f           Toggle favorite
    Y           Copy image URL to clipboard
    r           Reload characters

  Other:
    ?           Show help overlay
    q           Quit

Configuration:
  ~/.config/starter/config.json
  MARVEL_PUBLIC_KEY / MARVEL_PRIVATE_KEY override the stored keys
`
	fmt.Print(help)
}

// loadConfig reads the config file or exits.
func loadConfig() (*config.Config, string) {
	path, err := config.DefaultFilePath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting config path: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg, path
}

// newClient builds the API client, exiting when keys are missing and required is set.
func newClient(cfg *config.Config, required bool) *api.Client {
	client, err := api.NewClient(cfg.ClientParams())
	if err == nil {
		return client
	}
	if required {
		fmt.Fprintf(os.Stderr, "Error creating API client: %v\nSet %s and %s or add them to the config file.\n",
			err, config.EnvPublicKey, config.EnvPrivateKey)
		os.Exit(1)
	}
	log.WarningLog.Printf("characters disabled: %v", err)
	return nil
}

func listParams(cfg *config.Config) url.Values {
	return url.Values{"limit": {strconv.Itoa(cfg.PageSize)}}
}

// runTUI runs the full interactive TUI.
func runTUI() {
	cfg, _ := loadConfig()

	if err := log.Initialize(cfg.LogSettings()); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing log: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	policy, err := viewmodel.ParsePolicy(cfg.ErrorPolicy)
	if err != nil {
		log.WarningLog.Printf("%v, using %s", err, policy)
	}

	params := tui.AppParams{
		PageSize: cfg.PageSize,
		Policy:   policy,
	}
	// A nil *api.Client must not end up inside the interface.
	if client := newClient(cfg, false); client != nil {
		params.Client = client
	}

	app := tui.NewApp(params)
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.ErrorLog.Printf("program exited: %v", err)
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}

// runQuickSearch fetches characters, fuzzy-matches them and prints the selected one.
func runQuickSearch(query string) {
	cfg, _ := loadConfig()
	client := newClient(cfg, true)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
	defer cancel()

	chars, err := api.FetchAsync(ctx, client, api.Characters, api.CharactersEndpoint{}, api.MethodGet, listParams(cfg)).Await(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching characters: %v\n", err)
		os.Exit(1)
	}

	results := search.FuzzySearchCharacters(chars, query)

	if len(results) == 0 {
		fmt.Printf("No characters found for '%s'\n", query)
		os.Exit(0)
	}

	var selected *model.Character

	if len(results) == 1 {
		// Single result - select it directly
		selected = results[0].Character
	} else {
		// Multiple results - show picker
		p := picker.New(results, query)
		program := tea.NewProgram(p)
		finalModel, err := program.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running picker: %v\n", err)
			os.Exit(1)
		}

		finalPicker := finalModel.(picker.Picker)
		if finalPicker.Cancelled() {
			os.Exit(0)
		}
		selected = finalPicker.SelectedCharacter()
	}

	if selected == nil {
		os.Exit(0)
	}

	fmt.Println(selected.Name)
	if thumb := selected.Thumbnail(); thumb != "" {
		fmt.Println(thumb)
	}
	if selected.Description != "" {
		fmt.Println()
		fmt.Println(selected.Description)
	}
}

// runURL prints the signed request URL for the characters listing.
func runURL() {
	cfg, _ := loadConfig()
	client := newClient(cfg, true)
	fmt.Println(client.RequestURL(api.CharactersEndpoint{}, listParams(cfg)))
}

// runConfig prints where the config lives and what is in effect.
func runConfig() {
	cfg, path := loadConfig()

	logDir, err := log.LogDir(cfg.LogSettings())
	if err != nil {
		logDir = fmt.Sprintf("(unavailable: %v)", err)
	}

	fmt.Printf("Config file:   %s\n", path)
	fmt.Printf("Log directory: %s\n", logDir)
	fmt.Printf("Base URL:      %s\n", cfg.BaseURL)
	fmt.Printf("Page size:     %d\n", cfg.PageSize)
	fmt.Printf("Timeout:       %s\n", cfg.Timeout())
	fmt.Printf("Error policy:  %s\n", cfg.ErrorPolicy)
	fmt.Printf("Public key:    %s\n", mask(cfg.PublicKey))
	fmt.Printf("Private key:   %s\n", mask(cfg.PrivateKey))
}

func mask(s string) string {
	switch {
	case s == "":
		return "(not set)"
	case len(s) <= 4:
		return "****"
	default:
		return s[:4] + strings.Repeat("*", len(s)-4)
	}
}
