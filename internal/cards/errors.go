package cards

import "errors"

var ErrInvalidCard = errors.New("invalid card")
