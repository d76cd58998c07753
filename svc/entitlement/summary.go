package entitlement

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/storykit/pkg/async"
	"github.com/dmitrymomot/storykit/pkg/period"
	"github.com/dmitrymomot/storykit/pkg/tier"
	"github.com/dmitrymomot/storykit/svc/subscription"
)

// ResourceUsage is one row of a usage summary. Remaining is "unbounded" in
// JSON when Limit is. ResetsAt is set only for weekly and monthly periods.
type ResourceUsage struct {
	Current   int64          `json:"current"`
	Limit     tier.Limit     `json:"limit"`
	Remaining tier.Limit     `json:"remaining"`
	Period    *period.Period `json:"period,omitempty"`
	ResetsAt  *time.Time     `json:"resetsAt,omitempty"`
}

// Summary is what a user has used against what their tier allows.
type Summary struct {
	Tier               tier.Tier                  `json:"tier"`
	Bypass             bool                       `json:"bypass"`
	PaymentWallEnabled bool                       `json:"paymentWallEnabled"`
	Subscription       *subscription.Subscription `json:"subscription"`
	Children           ResourceUsage              `json:"children"`
	Characters         ResourceUsage              `json:"characters"`
	Stories            ResourceUsage              `json:"stories"`
}

// GetUsageSummary reports current usage for every resource, counted exactly
// the way CanCreate counts it. Independent lookups run concurrently.
func (e *Evaluator) GetUsageSummary(ctx context.Context, userID uuid.UUID) Summary {
	subFut := async.Go(ctx, func(ctx context.Context) (*subscription.Subscription, error) {
		return e.subs.GetSubscription(ctx, userID), nil
	})
	bypassFut := async.Go(ctx, func(ctx context.Context) (bool, error) {
		return e.subs.HasDevBypass(ctx, userID), nil
	})
	childrenFut := async.Go(ctx, func(ctx context.Context) (int64, error) {
		return e.groundTruth(ctx, userID, Child), nil
	})

	sub, err := subFut.Await()
	if err != nil || sub == nil {
		// Only reachable when ctx was already done.
		sub = subscription.Default(userID)
	}
	t := sub.Tier
	limits := e.limits(ctx, t)

	counted := []Resource{Character, Story}
	countFuts := make([]*async.Future[int64], len(counted))
	for i, res := range counted {
		_, p := limitFor(res, limits)
		countFuts[i] = async.Go(ctx, func(ctx context.Context) (int64, error) {
			return e.count(ctx, userID, res, t, p), nil
		})
	}

	bypass, _ := bypassFut.Await()
	children, _ := childrenFut.Await()
	counts, _ := async.WaitAll(countFuts...)

	return Summary{
		Tier:               t,
		Bypass:             bypass,
		PaymentWallEnabled: e.paymentWall,
		Subscription:       sub,
		Children:           e.resourceUsage(Child, limits, children),
		Characters:         e.resourceUsage(Character, limits, counts[0]),
		Stories:            e.resourceUsage(Story, limits, counts[1]),
	}
}

func (e *Evaluator) resourceUsage(res Resource, limits tier.Limits, current int64) ResourceUsage {
	limit, p := limitFor(res, limits)
	u := ResourceUsage{
		Current:   current,
		Limit:     limit,
		Remaining: tier.Limit(limit.Remaining(current)),
	}
	if res.counted() {
		u.Period = &p
		if next := period.Next(p, e.usage.Window(p).Start); !next.IsZero() {
			u.ResetsAt = &next
		}
	}
	return u
}
