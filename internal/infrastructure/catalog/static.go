// Package catalog supplies the engine's recipe deck from a static source:
// a JSON file when one is configured, otherwise a built-in set of
// leftover-friendly recipes.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/wellnoosh/engine/internal/domain/recipe"
	"github.com/wellnoosh/engine/pkg/errors"
)

// StaticCatalog serves a fixed, ordered recipe list. The engine never
// mutates it.
type StaticCatalog struct {
	recipes []recipe.Recipe
}

// NewStaticCatalog wraps an externally supplied recipe list, validating each
// entry.
func NewStaticCatalog(recipes []recipe.Recipe) (*StaticCatalog, error) {
	for _, r := range recipes {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("catalog entry %q: %w", r.ID, err)
		}
	}
	return &StaticCatalog{recipes: recipes}, nil
}

// LoadFromFile reads a catalog from a JSON file.
func LoadFromFile(path string, logger *zap.Logger) (*StaticCatalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	var recipes []recipe.Recipe
	if err := json.Unmarshal(raw, &recipes); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}
	logger.Info("catalog loaded", zap.String("path", path), zap.Int("recipes", len(recipes)))
	return NewStaticCatalog(recipes)
}

// All returns the full deck in catalog order.
func (c *StaticCatalog) All(_ context.Context) ([]recipe.Recipe, error) {
	out := make([]recipe.Recipe, len(c.recipes))
	copy(out, c.recipes)
	return out, nil
}

// FindByID looks a recipe up by its catalog id.
func (c *StaticCatalog) FindByID(_ context.Context, id string) (*recipe.Recipe, error) {
	for _, r := range c.recipes {
		if r.ID == id {
			found := r
			return &found, nil
		}
	}
	return nil, errors.NewRecipeNotFoundError(id)
}

// Default returns the built-in leftover-friendly deck used when no catalog
// file is configured.
func Default() *StaticCatalog {
	return &StaticCatalog{recipes: defaultRecipes()}
}

func defaultRecipes() []recipe.Recipe {
	return []recipe.Recipe{
		{
			ID:         "leftover-1",
			Name:       "Leftover Veggie Fried Rice",
			CookTime:   "15 min",
			Servings:   2,
			Difficulty: "Easy",
			Rating:     4.6,
			Tags:       []string{"Quick", "Zero-Waste", "Asian"},
			Description: "Day-old rice crisped in a hot pan with whatever vegetables " +
				"are waiting in the fridge.",
			Ingredients: []recipe.Ingredient{
				{Name: "Leftover cooked rice", Amount: "2 cups", Category: "Leftovers"},
				{Name: "Mixed leftover vegetables", Amount: "1 cup", Category: "Leftovers"},
				{Name: "Eggs", Amount: "2 large", Category: "Protein"},
				{Name: "Soy sauce", Amount: "2 tbsp", Category: "Pantry"},
				{Name: "Sesame oil", Amount: "1 tsp", Category: "Pantry"},
				{Name: "Green onions", Amount: "2 stalks", Category: "Fresh"},
				{Name: "Garlic", Amount: "2 cloves", Category: "Fresh"},
			},
			Instructions: []string{
				"Heat sesame oil in a wok over high heat.",
				"Scramble the eggs, then push them to the side.",
				"Add garlic, rice and vegetables and stir-fry for 5 minutes.",
				"Season with soy sauce and top with green onions.",
			},
			Nutrition:     recipe.Nutrition{Calories: 320, Protein: 12, Carbs: 45, Fat: 11},
			UsesLeftovers: []string{"rice", "vegetables", "chicken", "beef"},
		},
		{
			ID:         "leftover-2",
			Name:       "Leftover Shepherd's Pie",
			CookTime:   "35 min",
			Servings:   6,
			Difficulty: "Medium",
			Rating:     4.8,
			Tags:       []string{"Comfort", "Zero-Waste"},
			Description: "Cooked meat and vegetables under a blanket of yesterday's " +
				"mashed potatoes.",
			Ingredients: []recipe.Ingredient{
				{Name: "Leftover cooked meat", Amount: "2 cups", Category: "Leftovers"},
				{Name: "Leftover mashed potatoes", Amount: "3 cups", Category: "Leftovers"},
				{Name: "Mixed leftover vegetables", Amount: "1.5 cups", Category: "Leftovers"},
				{Name: "Onion", Amount: "1 medium", Category: "Vegetables"},
				{Name: "Beef stock", Amount: "1 cup", Category: "Pantry"},
				{Name: "Worcestershire sauce", Amount: "2 tbsp", Category: "Pantry"},
				{Name: "Tomato paste", Amount: "2 tbsp", Category: "Pantry"},
				{Name: "Butter", Amount: "2 tbsp", Category: "Dairy"},
			},
			Instructions: []string{
				"Soften the onion in butter, then stir in meat, vegetables, stock, " +
					"Worcestershire and tomato paste.",
				"Transfer to a baking dish and spread mashed potatoes on top.",
				"Bake at 200C until the top browns, about 25 minutes.",
			},
			Nutrition:     recipe.Nutrition{Calories: 385, Protein: 22, Carbs: 35, Fat: 18},
			UsesLeftovers: []string{"meat", "vegetables", "mashed potatoes"},
		},
		{
			ID:         "leftover-3",
			Name:       "Leftover Pasta Salad",
			CookTime:   "10 min",
			Servings:   4,
			Difficulty: "Easy",
			Rating:     4.4,
			Tags:       []string{"Quick", "Cold", "Zero-Waste"},
			Description: "Cold cooked pasta tossed with tomatoes, mozzarella and a " +
				"balsamic dressing.",
			Ingredients: []recipe.Ingredient{
				{Name: "Leftover cooked pasta", Amount: "3 cups", Category: "Leftovers"},
				{Name: "Leftover vegetables", Amount: "1 cup", Category: "Leftovers"},
				{Name: "Cherry tomatoes", Amount: "1 cup", Category: "Vegetables"},
				{Name: "Mozzarella cheese", Amount: "1/2 cup", Category: "Dairy"},
				{Name: "Olive oil", Amount: "3 tbsp", Category: "Pantry"},
				{Name: "Balsamic vinegar", Amount: "2 tbsp", Category: "Pantry"},
				{Name: "Fresh basil", Amount: "1/4 cup", Category: "Herbs"},
				{Name: "Salt and pepper", Amount: "to taste", Category: "Seasonings"},
			},
			Instructions: []string{
				"Whisk olive oil and balsamic into a dressing.",
				"Toss pasta, vegetables, tomatoes and mozzarella with the dressing.",
				"Tear in basil and season to taste.",
			},
			Nutrition:     recipe.Nutrition{Calories: 295, Protein: 12, Carbs: 38, Fat: 12},
			UsesLeftovers: []string{"pasta", "vegetables", "cheese"},
		},
		{
			ID:         "leftover-4",
			Name:       "Leftover Soup Supreme",
			CookTime:   "25 min",
			Servings:   4,
			Difficulty: "Easy",
			Rating:     4.7,
			Tags:       []string{"Soup", "Zero-Waste"},
			Description: "A clean-out-the-fridge soup that turns odds and ends into " +
				"dinner.",
			Ingredients: []recipe.Ingredient{
				{Name: "Mixed leftover vegetables", Amount: "2 cups", Category: "Leftovers"},
				{Name: "Leftover meat (optional)", Amount: "1 cup", Category: "Leftovers"},
				{Name: "Vegetable or chicken broth", Amount: "4 cups", Category: "Pantry"},
				{Name: "Canned tomatoes", Amount: "1 can", Category: "Pantry"},
				{Name: "Onion", Amount: "1 medium", Category: "Vegetables"},
				{Name: "Garlic", Amount: "3 cloves", Category: "Vegetables"},
				{Name: "Italian herbs", Amount: "1 tsp", Category: "Spices"},
				{Name: "Olive oil", Amount: "2 tbsp", Category: "Pantry"},
			},
			Instructions: []string{
				"Sweat onion and garlic in olive oil.",
				"Add broth, tomatoes and herbs and bring to a simmer.",
				"Stir in vegetables and meat and simmer for 15 minutes.",
			},
			Nutrition:     recipe.Nutrition{Calories: 180, Protein: 8, Carbs: 25, Fat: 6},
			UsesLeftovers: []string{"vegetables", "meat", "rice", "pasta"},
		},
	}
}
