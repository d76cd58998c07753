// Package usage maintains period-scoped creation counters for paid tiers.
//
// A counter is keyed by user, resource, period type and the canonical start of
// the window, so a weekly counter written on Tuesday and one written on
// Sunday of the same week are the same row. Counters never decrease; that is
// what makes a paid-tier limit a rate limit rather than a cap on live rows.
//
// Three stores are provided: PostgresStore (atomic upsert), RedisStore
// (HINCRBY on a per-window hash) and MemoryStore.
package usage
