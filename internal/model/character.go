package model

// Character is a record from the characters listing.
type Character struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	ImagePath      string `json:"imagePath"`
	ImageExtension string `json:"imageExtension"`
	ComicsURI      string `json:"comicsURI"` // collection URI for the character's comics
	Favorite       bool   `json:"-"`         // set by the user, never by a fetch
}

// Thumbnail returns the display URL of the character image,
// empty when the record carries no image.
func (c *Character) Thumbnail() string {
	if c.ImagePath == "" && c.ImageExtension == "" {
		return ""
	}
	return c.ImagePath + "." + c.ImageExtension
}

// ToggleFavorite flips the favorite flag.
func (c *Character) ToggleFavorite() {
	c.Favorite = !c.Favorite
}

// FavoriteGlyph returns the marker shown next to a favorite record.
func (c *Character) FavoriteGlyph() string {
	return favoriteGlyph(c.Favorite)
}

// Comic is a record from a character's comics collection.
type Comic struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	IssueNumber float64 `json:"issueNumber"`
}

func favoriteGlyph(fav bool) string {
	if fav {
		return "♥"
	}
	return "♡"
}
