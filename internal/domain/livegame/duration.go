package livegame

import (
	"fmt"
	"math"
	"time"
)

// Duration is an immutable count of whole elapsed seconds.
type Duration struct {
	Seconds int64
}

func ZeroDuration() Duration {
	return Duration{}
}

func DurationOf(seconds int64) Duration {
	return Duration{Seconds: seconds}
}

func (d Duration) Add(other Duration) Duration {
	return Duration{Seconds: d.Seconds + other.Seconds}
}

// Format renders d as MM:SS. Minutes wrap at 100.
func (d Duration) Format() string {
	total := d.Seconds
	if total < 0 {
		total = 0
	}
	minutes := (total / 60) % 100
	seconds := total % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

func (d Duration) String() string {
	return d.Format()
}

func (d Duration) Std() time.Duration {
	return time.Duration(d.Seconds) * time.Second
}

// Elapsed returns the whole seconds between start and end, rounded.
func Elapsed(start, end time.Time) Duration {
	millis := end.Sub(start).Milliseconds()
	return Duration{Seconds: int64(math.Round(float64(millis) / 1000))}
}
