// Package entitlement decides whether a user may create a child profile,
// character or story, and explains the answer.
//
// Evaluation order is fixed: the payment wall switch, then the user's dev
// bypass, then the tier limit. Free-tier limits are caps on live rows, so a
// deletion frees a slot at once. Paid-tier character and story limits are
// rate limits over a week or month, backed by usage counters that deletions
// do not decrease.
//
//	d := evaluator.CanCreate(ctx, userID, entitlement.Story)
//	if !d.Allowed {
//		return showUpgradePrompt(d.Reason, d.CurrentCount, d.Limit)
//	}
//	createStory(...)
//	evaluator.TrackCreation(ctx, userID, entitlement.Story)
//
// Reason strings are localized through golang.org/x/text; set the language
// with WithLanguage. ReasonCode is stable across languages.
package entitlement
