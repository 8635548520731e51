// Package recipe contains the catalog data model and the serving-scale math.
// Recipes are supplied by an external catalog and never mutated by the engine.
package recipe

// Ingredient is a single line of a recipe's ingredient list. Amount is a
// quantity-plus-unit string exactly as the catalog ships it ("1/2 cup",
// "2 cloves", "to taste").
type Ingredient struct {
	Name     string `json:"name"`
	Amount   string `json:"amount"`
	Category string `json:"category"`
}

// Validate validates the ingredient.
func (i Ingredient) Validate() error {
	if i.Name == "" {
		return ErrIngredientNameRequired
	}
	return nil
}

// Nutrition holds macro totals for the full recipe, not per serving.
type Nutrition struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
}

// Recipe is a read-only catalog entry. UsesLeftovers carries the loose
// category tags ("chicken", "vegetables") matched against the leftover
// inventory when the recipe is cooked.
type Recipe struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Image         string       `json:"image,omitempty"`
	CookTime      string       `json:"cookTime,omitempty"`
	Servings      int          `json:"servings"`
	Difficulty    string       `json:"difficulty,omitempty"`
	Rating        float64      `json:"rating,omitempty"`
	Tags          []string     `json:"tags,omitempty"`
	Description   string       `json:"description,omitempty"`
	Ingredients   []Ingredient `json:"ingredients"`
	Instructions  []string     `json:"instructions,omitempty"`
	Nutrition     Nutrition    `json:"nutrition"`
	UsesLeftovers []string     `json:"usesLeftovers,omitempty"`
}

// Validate validates a catalog entry.
func (r Recipe) Validate() error {
	if r.ID == "" {
		return ErrRecipeIDRequired
	}
	if r.Name == "" {
		return ErrRecipeNameRequired
	}
	if r.Servings < 1 {
		return ErrInvalidServings
	}
	for _, ing := range r.Ingredients {
		if err := ing.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Ingredient returns the ingredient at index, reporting whether the index is
// in range.
func (r Recipe) Ingredient(index int) (Ingredient, bool) {
	if index < 0 || index >= len(r.Ingredients) {
		return Ingredient{}, false
	}
	return r.Ingredients[index], true
}
