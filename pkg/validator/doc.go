// Package validator builds declarative request checks out of small Rule
// values. Apply evaluates every rule and aggregates the failures into a
// ValidationErrors slice that satisfies the error interface:
//
//	err := validator.Apply(
//		validator.NonNilUUID("user_id", req.UserID),
//		validator.RequiredComparable("enabled", req.Enabled),
//		validator.MaxLenString("reason", req.Reason, 500),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//		// verrs.Fields() lists the failing fields in rule order
//	}
//
// Rules carry a translation key and values so messages can be localized by
// the caller. The package holds no state and is safe for concurrent use.
package validator
