package tier

import "github.com/dmitrymomot/storykit/pkg/period"

// Tier is a subscription level.
type Tier string

const (
	Free    Tier = "free"
	Creator Tier = "creator"
	Pro     Tier = "pro"
)

// All lists the known tiers from most to least restrictive.
var All = []Tier{Free, Creator, Pro}

// Parse normalizes a stored tier value. Anything unknown is treated as Free,
// the most restrictive tier.
func Parse(s string) Tier {
	switch t := Tier(s); t {
	case Free, Creator, Pro:
		return t
	default:
		return Free
	}
}

// IsKnown reports whether t is one of the declared tiers.
func (t Tier) IsKnown() bool {
	switch t {
	case Free, Creator, Pro:
		return true
	}
	return false
}

// IsPaid reports whether the tier is billed.
func (t Tier) IsPaid() bool {
	return t == Creator || t == Pro
}

func (t Tier) String() string {
	return string(t)
}

// Limits holds the caps and reset periods of a tier.
type Limits struct {
	MaxChildren     Limit         `yaml:"max_children" json:"maxChildren"`
	MaxCharacters   Limit         `yaml:"max_characters" json:"maxCharacters"`
	MaxStories      Limit         `yaml:"max_stories" json:"maxStories"`
	CharacterPeriod period.Period `yaml:"character_period" json:"characterPeriod"`
	StoryPeriod     period.Period `yaml:"story_period" json:"storyPeriod"`
}
