// Package testutils provides test data factories for consistent test data generation
package testutils

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"github.com/wellnoosh/engine/internal/domain/leftover"
	"github.com/wellnoosh/engine/internal/domain/recipe"
)

// RecipeBuilder provides a fluent interface for building test recipes
type RecipeBuilder struct {
	recipe recipe.Recipe
}

// NewRecipeBuilder creates a recipe builder with sensible defaults
func NewRecipeBuilder() *RecipeBuilder {
	faker := gofakeit.New(time.Now().UnixNano())

	return &RecipeBuilder{
		recipe: recipe.Recipe{
			ID:         uuid.NewString(),
			Name:       faker.Dinner(),
			CookTime:   fmt.Sprintf("%d min", faker.Number(10, 60)),
			Servings:   4,
			Difficulty: "Easy",
			Rating:     4.5,
			Tags:       []string{"dinner"},
			Ingredients: []recipe.Ingredient{
				{Name: "chicken breast", Amount: "2 pieces", Category: "protein"},
				{Name: "rice", Amount: "1 cup", Category: "grains"},
				{Name: "olive oil", Amount: "2 tbsp", Category: "oils"},
			},
			Instructions: []string{"Prep ingredients", "Cook everything", "Serve"},
			Nutrition:    recipe.Nutrition{Calories: 420, Protein: 30, Carbs: 40, Fat: 12},
		},
	}
}

// WithID sets the recipe ID
func (rb *RecipeBuilder) WithID(id string) *RecipeBuilder {
	rb.recipe.ID = id
	return rb
}

// WithName sets the recipe name
func (rb *RecipeBuilder) WithName(name string) *RecipeBuilder {
	rb.recipe.Name = name
	return rb
}

// WithServings sets the base serving count
func (rb *RecipeBuilder) WithServings(servings int) *RecipeBuilder {
	rb.recipe.Servings = servings
	return rb
}

// WithIngredients replaces the ingredient list
func (rb *RecipeBuilder) WithIngredients(ingredients ...recipe.Ingredient) *RecipeBuilder {
	rb.recipe.Ingredients = ingredients
	return rb
}

// WithNutrition sets the per-recipe nutrition totals
func (rb *RecipeBuilder) WithNutrition(n recipe.Nutrition) *RecipeBuilder {
	rb.recipe.Nutrition = n
	return rb
}

// WithUsesLeftovers sets the leftover tags the recipe can consume
func (rb *RecipeBuilder) WithUsesLeftovers(tags ...string) *RecipeBuilder {
	rb.recipe.UsesLeftovers = tags
	return rb
}

// Build returns the assembled recipe
func (rb *RecipeBuilder) Build() recipe.Recipe {
	return rb.recipe
}

// Deck builds n distinct recipes for session tests
func Deck(n int) []recipe.Recipe {
	deck := make([]recipe.Recipe, 0, n)
	for i := 0; i < n; i++ {
		deck = append(deck, NewRecipeBuilder().
			WithID(fmt.Sprintf("recipe-%d", i+1)).
			WithName(fmt.Sprintf("Test Recipe %d", i+1)).
			Build())
	}
	return deck
}

// LeftoverItem creates a leftover inventory item with a fixed timestamp
func LeftoverItem(name string) leftover.Item {
	return leftover.Item{
		ID:        uuid.NewString(),
		Name:      name,
		AddedDate: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}
