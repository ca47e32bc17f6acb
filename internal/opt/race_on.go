//go:build race

package opt

// Race_ reports whether the race detector is enabled.
// Tests use it to shrink fan-out sizes under -race.
const Race_ = true
