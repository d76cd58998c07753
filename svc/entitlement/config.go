package entitlement

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/storykit/pkg/feature"
	"github.com/dmitrymomot/storykit/svc/subscription"
)

// Usage counter backends.
const (
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

type Config struct {
	// PaymentWallEnabled false allows every creation.
	PaymentWallEnabled bool `env:"PAYMENT_WALL_ENABLED" envDefault:"true"`
	// DevBypassUserIDs always bypass checks, in addition to stored bypass rows.
	DevBypassUserIDs []string      `env:"DEV_BYPASS_USER_IDS" envSeparator:","`
	StoreTimeout     time.Duration `env:"ENTITLEMENT_STORE_TIMEOUT" envDefault:"3s"`
	UsageBackend     string        `env:"USAGE_COUNTER_BACKEND" envDefault:"postgres"`
}

// BypassFlag turns DevBypassUserIDs into the allowlist flag read by
// subscription.Service. Entries are canonicalized; malformed ones are left out
// and reported by RejectedBypassIDs.
func (c Config) BypassFlag() *feature.Flag {
	strategy := feature.NewAllowListStrategy(c.BypassUserIDs())
	return &feature.Flag{
		Name:        subscription.BypassFlag,
		Description: "Users exempt from entitlement checks",
		Enabled:     strategy.Len() > 0,
		Strategy:    strategy,
	}
}

// BypassUserIDs returns the well-formed DevBypassUserIDs in canonical form.
func (c Config) BypassUserIDs() []string {
	ids, _ := c.bypassIDs()
	return ids
}

// RejectedBypassIDs lists the DevBypassUserIDs entries that are not UUIDs.
func (c Config) RejectedBypassIDs() []string {
	_, rejected := c.bypassIDs()
	return rejected
}

func (c Config) bypassIDs() (ids, rejected []string) {
	for _, raw := range c.DevBypassUserIDs {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			rejected = append(rejected, raw)
			continue
		}
		ids = append(ids, id.String())
	}
	return ids, rejected
}
