package entitlement

import (
	"fmt"

	"github.com/dmitrymomot/storykit/pkg/period"
	"github.com/dmitrymomot/storykit/pkg/tier"
	"github.com/dmitrymomot/storykit/svc/usage"
)

// Resource is a resource type gated by the evaluator.
type Resource string

const (
	Child     Resource = "child"
	Character Resource = "character"
	Story     Resource = "story"
)

// Resources lists every gated resource.
var Resources = []Resource{Child, Character, Story}

func (r Resource) IsValid() bool {
	switch r {
	case Child, Character, Story:
		return true
	}
	return false
}

func (r Resource) String() string { return string(r) }

func ParseResource(s string) (Resource, error) {
	r := Resource(s)
	if !r.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownResource, s)
	}
	return r, nil
}

// limitFor returns the tier's cap on r and the period it is counted over.
// Child profiles have no period.
func limitFor(r Resource, l tier.Limits) (tier.Limit, period.Period) {
	switch r {
	case Character:
		return l.MaxCharacters, l.CharacterPeriod
	case Story:
		return l.MaxStories, l.StoryPeriod
	default:
		return l.MaxChildren, ""
	}
}

// counted reports whether creations of r go through usage counters.
func (r Resource) counted() bool {
	return r == Character || r == Story
}

func (r Resource) usage() usage.Resource {
	return usage.Resource(r)
}
