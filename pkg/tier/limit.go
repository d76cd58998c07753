package tier

import (
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Limit is a resource cap. Unlimited (-1) means no cap.
type Limit int64

// Unlimited indicates no limit for a resource (-1 chosen for SQL compatibility).
const Unlimited Limit = -1

const unboundedKeyword = "unbounded"

// IsUnlimited reports whether the limit imposes no cap.
func (l Limit) IsUnlimited() bool {
	return l < 0
}

// Allows reports whether one more resource fits on top of current.
func (l Limit) Allows(current int64) bool {
	return l.IsUnlimited() || current < int64(l)
}

// Remaining returns max(0, limit-current), or -1 for unlimited limits.
func (l Limit) Remaining(current int64) int64 {
	if l.IsUnlimited() {
		return int64(Unlimited)
	}
	return max(0, int64(l)-current)
}

func (l Limit) String() string {
	if l.IsUnlimited() {
		return unboundedKeyword
	}
	return strconv.FormatInt(int64(l), 10)
}

// MarshalJSON encodes unlimited as "unbounded" and everything else as a number.
func (l Limit) MarshalJSON() ([]byte, error) {
	if l.IsUnlimited() {
		return json.Marshal(unboundedKeyword)
	}
	return json.Marshal(int64(l))
}

// UnmarshalJSON accepts a number, -1 or "unbounded".
func (l *Limit) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		return l.parse(s)
	}
	var n int64
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidLimit, string(b))
	}
	return l.set(n)
}

// UnmarshalYAML accepts the same forms as UnmarshalJSON.
func (l *Limit) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: line %d", ErrInvalidLimit, node.Line)
	}
	return l.parse(node.Value)
}

func (l *Limit) parse(s string) error {
	if s == unboundedKeyword {
		*l = Unlimited
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLimit, s)
	}
	return l.set(n)
}

func (l *Limit) set(n int64) error {
	switch {
	case n == int64(Unlimited):
		*l = Unlimited
	case n < 0:
		return fmt.Errorf("%w: %d", ErrInvalidLimit, n)
	default:
		*l = Limit(n)
	}
	return nil
}
