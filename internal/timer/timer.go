package timer

import (
	"sync/atomic"
	"time"
)

// Time contains the unix-time in milliseconds updated every [Resolution].
var Time = new(atomic.Int64)

// date holds the pre-formatted Date header value, refreshed together with Time.
var date atomic.Value

func Now() time.Time {
	millis := Time.Load()
	return time.Unix(millis/1000, (millis%1000)*1e6)
}

// Date returns the current time formatted for the Date response header
// (RFC 1123, always GMT). The value is cached and refreshed at [Resolution],
// which is precise enough for a header whose granularity is one second.
func Date() string {
	return date.Load().(string)
}

// Resolution is the frequency at which time is updated. 500ms are precise
// enough for setting I/O deadlines and stamping responses.
const Resolution = 500 * time.Millisecond

func update() {
	now := time.Now()
	Time.Store(now.UnixMilli())
	date.Store(now.UTC().Format("Mon, 02 Jan 2006 15:04:05") + " GMT")
}

func init() {
	// there is no guarantee that the goroutine will be started immediately. If it
	// won't, some rapid usage of the timer will result in zero-time, which isn't
	// great actually
	update()

	go func() {
		for {
			update()
			time.Sleep(Resolution)
		}
	}()
}
