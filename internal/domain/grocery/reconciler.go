package grocery

import (
	"time"

	"github.com/google/uuid"

	"github.com/wellnoosh/engine/internal/domain/recipe"
)

// MutationKind distinguishes the two reconciliation outcomes.
type MutationKind string

const (
	// MutationUpsert adds or replaces the item for its (name, fromRecipe) key.
	MutationUpsert MutationKind = "upsert"
	// MutationRemove drops every item matching (name, fromRecipe).
	MutationRemove MutationKind = "remove"
)

// Mutation is a plain description of a grocery-list change. Building one has
// no side effects; List.Apply is where it takes hold.
type Mutation struct {
	Kind       MutationKind
	Item       *Item
	Name       string
	FromRecipe string
}

// ToggleChecklist derives the grocery mutation for an ingredient-checklist
// toggle. hasIt=false means the user needs to buy the ingredient: the item is
// created with the amount scaled to the current serving override. hasIt=true
// retracts it.
func ToggleChecklist(r recipe.Recipe, ingredientIndex int, hasIt bool, servings int, now time.Time) (Mutation, error) {
	ing, ok := r.Ingredient(ingredientIndex)
	if !ok {
		return Mutation{}, ErrIngredientIndexOutOfRange
	}

	if hasIt {
		return Mutation{
			Kind:       MutationRemove,
			Name:       ing.Name,
			FromRecipe: r.Name,
		}, nil
	}

	return Mutation{
		Kind: MutationUpsert,
		Item: &Item{
			ID:         uuid.NewString(),
			Name:       ing.Name,
			Amount:     recipe.ScaleAmount(ing.Amount, r.Servings, servings),
			Category:   ing.Category,
			AddedDate:  now,
			FromRecipe: r.Name,
			Completed:  false,
		},
	}, nil
}
