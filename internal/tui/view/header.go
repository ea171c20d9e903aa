package view

import (
	"time"

	"github.com/javiermolinar/workload/internal/bucket"
)

// BucketLabels returns the column headers for buckets and marks the column
// holding today.
func BucketLabels(buckets []bucket.Bucket, today time.Time) ([]string, map[int]bool) {
	labels := make([]string, len(buckets))
	todayCols := make(map[int]bool)
	for i, b := range buckets {
		labels[i] = b.Label()
		if b.Contains(today) {
			labels[i] = "*" + labels[i] + "*"
			todayCols[i] = true
		}
	}
	return labels, todayCols
}

// WindowTitle describes the visible window, e.g. "week · Jan 6 - Feb 2, 2025".
func WindowTitle(res bucket.Resolution, start, end time.Time) string {
	return string(res) + " · " + start.Format("Jan 2") + " - " + end.Format("Jan 2, 2006")
}
