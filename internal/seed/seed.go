package seed

import (
	"time"

	"gorm.io/datatypes"

	"github.com/yungbote/taochow-backend/internal/types"
)

// Recipes returns the starter catalog used to initialize an empty store. The
// fixed ids keep re-seeding idempotent.
func Recipes() []*types.Recipe {
	now := time.Now().UTC()
	return []*types.Recipe{
		{
			ID:    "recipe-001",
			Title: "Kung Pao Chicken",
			Ingredients: datatypes.NewJSONSlice([]string{
				"1.5 lbs chicken breast, cubed",
				"1 cup roasted peanuts",
				"3 tbsp soy sauce",
				"2 tbsp rice vinegar",
				"2 tbsp sugar",
				"4 cloves garlic, minced",
				"1 tbsp ginger, minced",
				"3-4 dried red chili peppers",
				"2 green onions, chopped",
				"1 tbsp sesame oil",
			}),
			Instructions: datatypes.NewJSONSlice([]string{
				"Heat oil in a wok or large pan over high heat",
				"Add garlic and ginger, stir-fry for 30 seconds",
				"Add chicken cubes and stir-fry until cooked through (5-7 minutes)",
				"Add soy sauce, vinegar, and sugar, mix well",
				"Add peanuts and dried chili peppers, toss to combine",
				"Finish with sesame oil and green onions",
				"Serve hot over rice",
			}),
			ChefNotes: "The key is high heat and quick cooking to keep the chicken tender. " +
				"Don't overcook. Roasted peanuts work best for texture.",
			CreatedAt:  now,
			Iterations: datatypes.NewJSONSlice([]types.Iteration{}),
		},
		{
			ID:    "recipe-002",
			Title: "Mapo Tofu",
			Ingredients: datatypes.NewJSONSlice([]string{
				"1 block firm tofu, cubed",
				"1/2 lb ground pork",
				"3 tbsp doubanjiang (spicy bean paste)",
				"2 tbsp soy sauce",
				"1 tbsp rice vinegar",
				"4 cloves garlic, minced",
				"1 tbsp ginger, minced",
				"2 green onions, chopped",
				"1 tsp Sichuan peppercorns, ground",
				"1/2 cup chicken stock",
				"1 tbsp cornstarch mixed with 2 tbsp water",
				"Sesame oil for finishing",
			}),
			Instructions: datatypes.NewJSONSlice([]string{
				"Heat oil in a pan, add garlic and ginger, stir-fry briefly",
				"Add ground pork and cook until no longer pink",
				"Stir in doubanjiang and cook for 1 minute until fragrant",
				"Add soy sauce, vinegar, and chicken stock",
				"Gently add tofu cubes and simmer for 5 minutes",
				"Thicken with cornstarch slurry while stirring gently",
				"Sprinkle with Sichuan peppercorns and sesame oil",
				"Top with green onions and serve over rice",
			}),
			ChefNotes: "Be gentle with the tofu to keep the cubes intact. The numbing " +
				"sensation from Sichuan peppercorns is essential for authentic flavor.",
			CreatedAt:  now,
			Iterations: datatypes.NewJSONSlice([]types.Iteration{}),
		},
	}
}
