package entitlement

import "errors"

var ErrUnknownResource = errors.New("entitlement.errors.unknown_resource")
