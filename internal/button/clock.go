package button

import "time"

// Millis returns a monotonic millisecond clock anchored at the moment of the
// call. The counter wraps after ~49.7 days; Button tolerates the wraparound
// via unsigned subtraction.
func Millis() func() uint32 {
	start := time.Now()
	return func() uint32 {
		return uint32(time.Since(start).Milliseconds())
	}
}
