package entitlement

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/storykit/pkg/logger"
	"github.com/dmitrymomot/storykit/pkg/metrics"
	"github.com/dmitrymomot/storykit/pkg/period"
	"github.com/dmitrymomot/storykit/pkg/pg"
	"github.com/dmitrymomot/storykit/pkg/tier"
	"github.com/dmitrymomot/storykit/svc/subscription"
	"github.com/dmitrymomot/storykit/svc/usage"
)

// Subscriptions is the part of subscription.Service the evaluator reads.
type Subscriptions interface {
	GetSubscription(ctx context.Context, userID uuid.UUID) *subscription.Subscription
	HasDevBypass(ctx context.Context, userID uuid.UUID) bool
}

// Usage is the part of usage.Service the evaluator reads and advances.
type Usage interface {
	GetUsageCount(ctx context.Context, userID uuid.UUID, res usage.Resource, p period.Period) int64
	IncrementUsage(ctx context.Context, userID uuid.UUID, res usage.Resource, p period.Period) bool
	Window(p period.Period) period.Window
}

const defaultStoreTimeout = 3 * time.Second

// Evaluator decides whether a user may create a resource. It never returns
// errors: infrastructure failures degrade to the safe answers of the
// underlying services and are logged.
type Evaluator struct {
	paymentWall bool
	timeout     time.Duration
	subs        Subscriptions
	usage       Usage
	counter     ResourceCounter
	table       *tier.Table
	log         *slog.Logger
}

// NewEvaluator panics on nil dependencies.
func NewEvaluator(cfg Config, subs Subscriptions, u Usage, counter ResourceCounter, opts ...Option) *Evaluator {
	if subs == nil || u == nil || counter == nil {
		panic("entitlement: subscriptions, usage and counter are required")
	}
	e := &Evaluator{
		paymentWall: cfg.PaymentWallEnabled,
		timeout:     cfg.StoreTimeout,
		subs:        subs,
		usage:       u,
		counter:     counter,
		table:       tier.Default(),
		log:         logger.Discard(),
	}
	if e.timeout <= 0 {
		e.timeout = defaultStoreTimeout
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.With(logger.Component("entitlement"))
	return e
}

// CanCreate evaluates, in order: the payment wall switch, the user's dev
// bypass, then the tier limit for res. Child profiles and everything on the
// free tier are compared against live row counts; paid-tier characters and
// stories against the usage counter of the tier's period.
//
// Callers should check immediately before creating and call TrackCreation
// immediately after.
func (e *Evaluator) CanCreate(ctx context.Context, userID uuid.UUID, res Resource) Decision {
	if !res.IsValid() {
		return Decision{
			Reason:     staticReason(ctx, ReasonUnknownResource),
			ReasonCode: ReasonUnknownResource,
		}
	}

	if !e.paymentWall {
		metrics.EntitlementDecisions.WithLabelValues(res.String(), "none", metrics.OutcomeDisabled).Inc()
		return Decision{
			Allowed:    true,
			Reason:     staticReason(ctx, ReasonPaymentWallDisabled),
			ReasonCode: ReasonPaymentWallDisabled,
		}
	}

	if e.subs.HasDevBypass(ctx, userID) {
		metrics.EntitlementDecisions.WithLabelValues(res.String(), "none", metrics.OutcomeBypassed).Inc()
		return Decision{
			Allowed:    true,
			Reason:     staticReason(ctx, ReasonDevBypass),
			ReasonCode: ReasonDevBypass,
		}
	}

	t := e.subs.GetSubscription(ctx, userID).Tier
	limits := e.limits(ctx, t)
	limit, p := limitFor(res, limits)
	count := e.count(ctx, userID, res, t, p)

	d := Decision{
		Allowed:      limit.Allows(count),
		CurrentCount: &count,
		Limit:        &limit,
		Tier:         &t,
	}
	outcome := metrics.OutcomeAllowed
	if d.Allowed {
		d.ReasonCode = ReasonWithinLimit
		d.Reason = staticReason(ctx, ReasonWithinLimit)
	} else {
		outcome = metrics.OutcomeDenied
		d.Reason, d.ReasonCode = denialReason(ctx, res, t, p, count, limit)
		e.log.InfoContext(ctx, "creation denied",
			logger.UserID(userID), logger.Tier(t), logger.Resource(res),
			slog.Int64("count", count), slog.String("limit", limit.String()))
	}
	metrics.EntitlementDecisions.WithLabelValues(res.String(), t.String(), outcome).Inc()
	return d
}

// TrackCreation records a completed creation against the user's usage
// counter: lifetime on the free tier, the tier's period otherwise. Child
// profiles are not counter-tracked and always report true. A false result
// is informational; the creation itself must never be rolled back.
func (e *Evaluator) TrackCreation(ctx context.Context, userID uuid.UUID, res Resource) bool {
	if !res.counted() {
		if res.IsValid() {
			metrics.UsageIncrements.WithLabelValues(res.String(), metrics.ResultSkipped).Inc()
			return true
		}
		e.log.WarnContext(ctx, "track creation for unknown resource", logger.UserID(userID), logger.Resource(res))
		return false
	}

	t := e.subs.GetSubscription(ctx, userID).Tier
	_, p := limitFor(res, e.limits(ctx, t))
	if !t.IsPaid() {
		p = period.Lifetime
	}

	ok := e.usage.IncrementUsage(ctx, userID, res.usage(), p)
	result := metrics.ResultOK
	if !ok {
		result = metrics.ResultFailed
	}
	metrics.UsageIncrements.WithLabelValues(res.String(), result).Inc()
	return ok
}

// limits resolves the tier's limits. A known tier missing from the table is
// a deployment defect; the free limits still apply so the request succeeds.
func (e *Evaluator) limits(ctx context.Context, t tier.Tier) tier.Limits {
	if !e.table.Has(t) {
		e.log.ErrorContext(ctx, "tier missing from limits table, using free limits", logger.Tier(t))
	}
	return e.table.LimitsFor(t)
}

// count returns the figure res is gated on for a user on tier t.
func (e *Evaluator) count(ctx context.Context, userID uuid.UUID, res Resource, t tier.Tier, p period.Period) int64 {
	if res.counted() && t.IsPaid() {
		return e.usage.GetUsageCount(ctx, userID, res.usage(), p)
	}
	return e.groundTruth(ctx, userID, res)
}

// groundTruth counts live rows. Failures read as zero, the same direction
// the usage counter fails in.
func (e *Evaluator) groundTruth(ctx context.Context, userID uuid.UUID, res Resource) int64 {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	var (
		n   int64
		err error
	)
	switch res {
	case Child:
		n, err = e.counter.CountChildren(ctx, userID)
	case Character:
		n, err = e.counter.CountCharacters(ctx, userID)
	case Story:
		n, err = e.counter.CountStories(ctx, userID)
	default:
		e.log.WarnContext(ctx, "count for unknown resource", logger.UserID(userID), logger.Resource(res))
		return 0
	}
	if err != nil {
		e.log.ErrorContext(ctx, "failed to count resources",
			logger.UserID(userID), logger.Resource(res), logger.Error(err),
			slog.Bool("timeout", pg.IsTimeoutError(err)))
		return 0
	}
	return n
}
