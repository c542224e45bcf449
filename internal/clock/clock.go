package clock

import "time"

// NowFunc returns current time. Override in tests for determinism.
var NowFunc = time.Now

// Now returns the current time in UTC.
func Now() time.Time { return NowFunc().UTC() }

// Since reports the time elapsed since t according to NowFunc.
func Since(t time.Time) time.Duration { return Now().Sub(t) }
