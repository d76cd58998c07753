// Package feature provides named feature flags backed by a pluggable Provider.
//
// A flag is evaluated in two stages: the global Enabled switch first, then its
// Strategy against the subject stored in the context. The dev bypass allowlist
// is expressed this way:
//
//	provider, _ := feature.NewMemoryProvider(&feature.Flag{
//		Name:     "dev_bypass",
//		Enabled:  true,
//		Strategy: feature.NewAllowListStrategy(cfg.BypassUserIDs()),
//	})
//
//	ok, err := provider.IsEnabled(feature.WithSubject(ctx, userID.String()), "dev_bypass")
package feature
