package usage

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/storykit/pkg/period"
)

// Resource is a resource type whose creations are counted per period.
type Resource string

const (
	Character Resource = "character"
	Story     Resource = "story"
)

// Resources lists every counted resource.
var Resources = []Resource{Character, Story}

func (r Resource) IsValid() bool {
	return r == Character || r == Story
}

func (r Resource) String() string { return string(r) }

// ParseResource returns ErrUnknownResource for anything but "character" or "story".
func ParseResource(s string) (Resource, error) {
	r := Resource(s)
	if !r.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownResource, s)
	}
	return r, nil
}

// Key identifies one counter: a user, a resource and a period window.
type Key struct {
	UserID      uuid.UUID
	Resource    Resource
	Period      period.Period
	PeriodStart time.Time
}

// Counter is a stored counter row.
type Counter struct {
	Key
	PeriodEnd *time.Time `json:"period_end,omitempty"`
	Count     int64      `json:"count"`
	UpdatedAt time.Time  `json:"updated_at"`
}
