package grocery

import "errors"

var (
	ErrIngredientIndexOutOfRange = errors.New("ingredient index out of range")
)
