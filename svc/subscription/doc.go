// Package subscription answers two questions about a user: which tier they
// are on and whether entitlement checks are bypassed for them.
//
// Rows are created lazily. The first GetSubscription for a user inserts a
// free/active record; concurrent first lookups are reconciled through the
// unique user_id constraint. Reads degrade instead of failing: a storage
// error on GetSubscription yields the free tier, on HasDevBypass it yields
// false.
package subscription
