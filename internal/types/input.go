package types

// RecipeInput is the caller-supplied field set for create and replace-update.
// Missing sequences decode as nil, which validation treats as absent; a
// non-array value for ingredients/instructions fails JSON decoding outright.
type RecipeInput struct {
	Title        string   `json:"title"`
	Image        *string  `json:"image"`
	Images       []string `json:"images"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	ChefNotes    string   `json:"chefNotes"`
}

// CanonicalImages resolves the legacy singular image against the images
// sequence, images winning when both are set.
func (in RecipeInput) CanonicalImages() []string {
	return canonicalImages(in.Image, in.Images)
}

type IterationInput struct {
	Chef        string  `json:"chef"`
	ChangesMade string  `json:"changesMade"`
	Outcome     string  `json:"outcome"`
	Image       *string `json:"image"`
}
