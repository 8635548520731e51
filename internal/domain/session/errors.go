package session

import "errors"

// State transition errors for the recommendation pass.

var (
	ErrNotBrowsing               = errors.New("action requires the browsing state")
	ErrNotFlipped                = errors.New("action requires a flipped card")
	ErrNotQuotaExceeded          = errors.New("session is not quota-blocked")
	ErrDeckExhausted             = errors.New("no recipe under the cursor")
	ErrIngredientIndexOutOfRange = errors.New("ingredient index out of range")
)
