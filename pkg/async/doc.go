// Package async runs independent lookups concurrently and collects their
// results through typed futures.
//
//	subFut := async.Go(ctx, func(ctx context.Context) (*subscription.Subscription, error) {
//		return subs.GetSubscription(ctx, userID), nil
//	})
//	countFut := async.Go(ctx, countStories)
//
//	sub, _ := subFut.Await()
//	n, err := countFut.Await()
//
// Unlike errgroup, a failing future does not cancel its siblings; callers
// that fail open on each lookup want every result.
package async
