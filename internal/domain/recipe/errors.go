package recipe

import "errors"

// Domain errors for catalog entries.

var (
	ErrRecipeIDRequired       = errors.New("recipe id is required")
	ErrRecipeNameRequired     = errors.New("recipe name is required")
	ErrInvalidServings        = errors.New("recipe servings must be at least 1")
	ErrIngredientNameRequired = errors.New("ingredient name is required")
)
