package model

import "github.com/google/uuid"

// Plant is an entry of the static plant catalog.
type Plant struct {
	ID          string
	Name        string
	Image       string
	Description string
	Favorite    bool
}

// NewPlantParams holds parameters for creating a new Plant.
type NewPlantParams struct {
	Name        string
	Image       string
	Description string
}

// NewPlant creates a Plant with a generated UUID.
func NewPlant(params NewPlantParams) Plant {
	return Plant{
		ID:          uuid.New().String(),
		Name:        params.Name,
		Image:       params.Image,
		Description: params.Description,
	}
}

// ToggleFavorite flips the favorite flag.
func (p *Plant) ToggleFavorite() {
	p.Favorite = !p.Favorite
}

// FavoriteGlyph returns the marker shown next to a favorite record.
func (p *Plant) FavoriteGlyph() string {
	return favoriteGlyph(p.Favorite)
}

// PlantCatalog returns the built-in plant catalog in display order.
func PlantCatalog() []Plant {
	return []Plant{
		NewPlant(NewPlantParams{
			Name:  "Monstera",
			Image: "monstera",
			Description: "Monstera deliciosa, the ceriman, is a species of flowering plant native to " +
				"tropical forests of southern Mexico, south to Panama. It has been introduced to many " +
				"tropical areas, and has become a mildly invasive species in Hawaii, Seychelles, " +
				"Ascension Island and the Society Islands.",
		}),
		NewPlant(NewPlantParams{
			Name:  "Succulents",
			Image: "succulents",
			Description: "In botany, succulent plants are plants that have some parts that are more " +
				"than normally thickened and fleshy, usually to retain water in arid climates or soil " +
				"conditions. Succulent plants may store water in various structures, such as leaves and stems.",
		}),
		NewPlant(NewPlantParams{
			Name:  "Ferns",
			Image: "ferns",
			Description: "A fern is a member of a group of vascular plants that reproduce via spores " +
				"and have neither seeds nor flowers. Ferns have complex leaves called megaphylls. " +
				"They produce coiled fiddleheads that uncoil and expand into fronds.",
		}),
	}
}
