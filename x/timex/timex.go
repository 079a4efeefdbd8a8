// Package timex holds the timestamp helper controller telemetry uses to
// stamp each retained section-occupancy message.
package timex

import "time"

// NowMs returns Unix milliseconds as int64.
func NowMs() int64 { return time.Now().UnixMilli() }
