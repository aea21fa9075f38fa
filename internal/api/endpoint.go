package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/nikbrunner/starter/internal/model"
)

// Endpoint is a path on the gateway.
type Endpoint interface {
	Path() string
}

// CharactersEndpoint lists characters.
type CharactersEndpoint struct{}

func (CharactersEndpoint) Path() string { return "/v1/public/characters" }

// ComicsEndpoint lists the comics a character appears in.
type ComicsEndpoint struct {
	CharacterID int
}

func (e ComicsEndpoint) Path() string {
	return fmt.Sprintf("/v1/public/characters/%d/comics", e.CharacterID)
}

// URIEndpoint wraps a collection URI returned inside a record (e.g. comics.collectionURI).
// Only the path is used; scheme and host come from the client.
type URIEndpoint string

func (e URIEndpoint) Path() string {
	u, err := url.Parse(string(e))
	if err != nil {
		return string(e)
	}
	return u.Path
}

// Characters fetches a page of characters.
func (c *Client) Characters(ctx context.Context, params url.Values) ([]model.Character, error) {
	return Fetch(ctx, c, Characters, CharactersEndpoint{}, MethodGet, params)
}

// ComicsFor fetches the comics of a character, following its collection URI when present.
func (c *Client) ComicsFor(ctx context.Context, character model.Character, params url.Values) ([]model.Comic, error) {
	var endpoint Endpoint = ComicsEndpoint{CharacterID: character.ID}
	if character.ComicsURI != "" {
		endpoint = URIEndpoint(character.ComicsURI)
	}
	return Fetch(ctx, c, Comics, endpoint, MethodGet, params)
}
