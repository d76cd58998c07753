package logger

import (
	"fmt"
	"log/slog"
)

// Error records err under "error". Nil errors produce an empty Attr, which
// slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// UserID records the user identifier under "user_id".
func UserID(id fmt.Stringer) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.String("user_id", id.String())
}

// Tier records the subscription tier under "tier".
func Tier(t fmt.Stringer) slog.Attr {
	return stringer("tier", t)
}

// Resource records the gated resource type under "resource".
func Resource(r fmt.Stringer) slog.Attr {
	return stringer("resource", r)
}

// Period records the counting period under "period".
func Period(p fmt.Stringer) slog.Attr {
	return stringer("period", p)
}

func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

func stringer(key string, v fmt.Stringer) slog.Attr {
	if v == nil {
		return slog.Attr{}
	}
	s := v.String()
	if s == "" {
		return slog.Attr{}
	}
	return slog.String(key, s)
}
