package domain

import (
	"math"
	"sort"
	"time"
)

// Window is how far back the dashboard looks.
const Window = 21 * 24 * time.Hour

// Entry is one closed focus session as the dashboard sees it.
type Entry struct {
	Start           time.Time
	DurationSeconds int
}

type Day struct {
	Date  string // YYYY-MM-DD in UTC
	Hours float64
}

type Summary struct {
	Days         []Day
	Total        float64
	DailyAverage float64
}

func (s Summary) Empty() bool {
	return len(s.Days) == 0
}

// Summarize groups entries started within Window before now by UTC day.
// Entries with no duration are skipped.
func Summarize(entries []Entry, now time.Time) Summary {
	cutoff := now.Add(-Window)
	seconds := map[string]int{}
	for _, e := range entries {
		if e.DurationSeconds <= 0 || e.Start.Before(cutoff) {
			continue
		}
		seconds[e.Start.UTC().Format(time.DateOnly)] += e.DurationSeconds
	}

	days := make([]Day, 0, len(seconds))
	for date, secs := range seconds {
		days = append(days, Day{Date: date, Hours: round(float64(secs)/3600, 2)})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })

	summary := Summary{Days: days}
	for _, d := range days {
		summary.Total += d.Hours
	}
	if len(days) > 0 {
		summary.DailyAverage = math.Round(summary.Total/float64(len(days))*10) / 10
	}
	return summary
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
