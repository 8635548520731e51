package quota

import "errors"

var (
	ErrQuotaExhausted = errors.New("daily swipe quota exhausted")
)
