// Package time contains time related helpers
package time

import "time"

// Or returns t when set, otherwise fallback.
// Both upsert paths use it to prefer an incoming stamp over the batch clock
func Or(t, fallback time.Time) time.Time {
	if t.IsZero() {
		return fallback
	}
	return t
}
