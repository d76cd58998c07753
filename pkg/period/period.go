package period

import "fmt"

// Period is the accounting window a usage limit resets on.
type Period string

const (
	Lifetime Period = "lifetime"
	Weekly   Period = "weekly"
	Monthly  Period = "monthly"
)

// All lists every known period in a stable order.
var All = []Period{Lifetime, Weekly, Monthly}

// Parse converts a stored or configured value into a Period.
func Parse(s string) (Period, error) {
	switch p := Period(s); p {
	case Lifetime, Weekly, Monthly:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPeriod, s)
	}
}

// IsValid reports whether p is one of the known periods.
func (p Period) IsValid() bool {
	switch p {
	case Lifetime, Weekly, Monthly:
		return true
	}
	return false
}

func (p Period) String() string {
	return string(p)
}

// Human returns the noun used in user-facing messages ("week", "month").
func (p Period) Human() string {
	switch p {
	case Weekly:
		return "week"
	case Monthly:
		return "month"
	default:
		return "lifetime"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Period) MarshalText() ([]byte, error) {
	return []byte(p), nil
}

// UnmarshalText implements encoding.TextUnmarshaler and rejects unknown values.
func (p *Period) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
