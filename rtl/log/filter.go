package log

// Filter is a predicate on a Record; sinks skip records a Filter rejects.
type Filter interface {
	Allow(r Record) bool
}

// FilterFunc adapts a function to the Filter interface.
type FilterFunc func(r Record) bool

func (f FilterFunc) Allow(r Record) bool { return f(r) }

// LevelRange allows records whose level is within [Min, Max] inclusive.
type LevelRange struct {
	Min, Max Level
}

func (r LevelRange) Allow(rec Record) bool {
	return rec.Level >= r.Min && rec.Level <= r.Max
}
