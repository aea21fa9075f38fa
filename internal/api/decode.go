package api

import (
	"encoding/json"
	"errors"

	"github.com/nikbrunner/starter/internal/model"
)

// Kind tags a record type in the decode table.
type Kind string

const (
	KindCharacter Kind = "character"
	KindComic     Kind = "comic"
)

var errMissingField = errors.New("missing required field")

// Decoder turns one element of data.results into a record.
type Decoder[T any] struct {
	Kind   Kind
	Decode func(raw json.RawMessage) (T, error)
}

var (
	Characters = Decoder[model.Character]{Kind: KindCharacter, Decode: decodeCharacter}
	Comics     = Decoder[model.Comic]{Kind: KindComic, Decode: decodeComic}
)

// characterSchema mirrors the fields read from a character element.
type characterSchema struct {
	ID          *int    `json:"id"`
	Name        *string `json:"name"`
	Description string  `json:"description"`
	Thumbnail   struct {
		Path      string `json:"path"`
		Extension string `json:"extension"`
	} `json:"thumbnail"`
	Comics struct {
		CollectionURI string `json:"collectionURI"`
	} `json:"comics"`
}

func decodeCharacter(raw json.RawMessage) (model.Character, error) {
	var s characterSchema
	if err := json.Unmarshal(raw, &s); err != nil {
		return model.Character{}, err
	}
	if s.ID == nil || s.Name == nil {
		return model.Character{}, errMissingField
	}

	return model.Character{
		ID:             *s.ID,
		Name:           *s.Name,
		Description:    model.PlainText(s.Description),
		ImagePath:      s.Thumbnail.Path,
		ImageExtension: s.Thumbnail.Extension,
		ComicsURI:      s.Comics.CollectionURI,
	}, nil
}

// comicSchema mirrors the fields read from a comic element.
type comicSchema struct {
	ID          *int    `json:"id"`
	Title       *string `json:"title"`
	IssueNumber float64 `json:"issueNumber"`
}

func decodeComic(raw json.RawMessage) (model.Comic, error) {
	var s comicSchema
	if err := json.Unmarshal(raw, &s); err != nil {
		return model.Comic{}, err
	}
	if s.ID == nil || s.Title == nil {
		return model.Comic{}, errMissingField
	}

	return model.Comic{
		ID:          *s.ID,
		Title:       *s.Title,
		IssueNumber: s.IssueNumber,
	}, nil
}
