package period

import "errors"

var ErrUnknownPeriod = errors.New("period.errors.unknown_period")
