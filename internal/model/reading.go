package model

// Reading is one counter observation for a run. OK is false when the fetch
// failed and the stored total must be reused.
type Reading struct {
	Value int
	OK    bool
}

// Observed wraps a fetched counter value.
func Observed(v int) Reading { return Reading{Value: v, OK: true} }

// Missing marks a counter that could not be fetched this run.
func Missing() Reading { return Reading{} }
