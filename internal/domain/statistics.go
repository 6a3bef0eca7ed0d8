package domain

import (
	"maps"
	"slices"
)

var monthNames = [...]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// UnknownMonth names a month index outside 0..11.
const UnknownMonth = "Unknown"

// MonthName maps a zero-based month index to its short name.
func MonthName(index int) string {
	if index < 0 || index >= len(monthNames) {
		return UnknownMonth
	}
	return monthNames[index]
}

// MonthBucket is one bar of the monthly histogram.
type MonthBucket struct {
	Name  string `json:"name"`
	Total int64  `json:"total"`
}

// TaskTotals summarizes task counts by status.
type TaskTotals struct {
	TotalTasks           int64 `json:"totalTasks"`
	TotalTasksCompleted  int64 `json:"totalTasksCompleted"`
	TotalTasksInProgress int64 `json:"totalTasksInProgress"`
}

// TaskStatistics is the report returned for a caller's visible tasks.
type TaskStatistics struct {
	Total         TaskTotals    `json:"total"`
	FormattedData []MonthBucket `json:"formattedData"`
}

// MonthlyHistogram turns per-month counts, keyed by zero-based month index,
// into buckets in calendar order. Indices outside 0..11 are merged into a
// trailing UnknownMonth bucket.
func MonthlyHistogram(counts map[int]int64) []MonthBucket {
	buckets := make([]MonthBucket, 0, len(counts))
	var unknown int64
	for _, index := range slices.Sorted(maps.Keys(counts)) {
		n := counts[index]
		if n == 0 {
			continue
		}
		name := MonthName(index)
		if name == UnknownMonth {
			unknown += n
			continue
		}
		buckets = append(buckets, MonthBucket{Name: name, Total: n})
	}
	if unknown > 0 {
		buckets = append(buckets, MonthBucket{Name: UnknownMonth, Total: unknown})
	}
	return buckets
}

// NewTaskStatistics assembles the report from status totals and month counts.
func NewTaskStatistics(totals TaskTotals, byMonth map[int]int64) TaskStatistics {
	return TaskStatistics{
		Total:         totals,
		FormattedData: MonthlyHistogram(byMonth),
	}
}
