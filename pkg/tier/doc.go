// Package tier defines subscription tiers and the static table of limits each
// tier grants.
//
// The table is compiled into the binary from tiers.yaml so that the evaluator
// and every summary endpoint read the same numbers:
//
//	limits := tier.LimitsFor(tier.Creator)
//	if limits.MaxStories.Allows(used) {
//	    // create the story
//	}
//
// Unknown tier values coming from storage are normalized with Parse, which
// maps them to Free. A table that lacks one of the known tiers still answers
// LimitsFor with the free limits; call Validate at startup to catch the gap.
package tier
