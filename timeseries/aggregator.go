package timeseries

import (
	"fmt"
	"sort"
	"time"
)

// Sample is one raw daily data point from the analytics feed
type Sample struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Period selects the reporting window for a chart
type Period string

const (
	PeriodWeek    Period = "7d"
	PeriodMonth   Period = "30d"
	PeriodQuarter Period = "3m"
	PeriodYear    Period = "1y"
)

// Days returns the window length in calendar days, defaulting to a month
// for unrecognized values
func (p Period) Days() int {
	switch p {
	case PeriodWeek:
		return 7
	case PeriodQuarter:
		return 91
	case PeriodYear:
		return 365
	default:
		return 30
	}
}

// Granularity is the bucket size chosen for a series
type Granularity int

const (
	Daily Granularity = iota
	Weekly
	Monthly
)

// GranularityFor picks the bucket size from the period and sample count
// alone; it never consults the current date, so the same inputs always
// chart the same way.
func GranularityFor(period Period, sampleCount int) Granularity {
	switch {
	case period == PeriodYear || sampleCount > 90:
		return Monthly
	case period == PeriodQuarter || sampleCount > 31:
		return Weekly
	default:
		return Daily
	}
}

// Bucket is one aggregated chart point
type Bucket struct {
	Start time.Time `json:"start"`
	Label string    `json:"label"`
	Value float64   `json:"value"`
}

// Aggregate groups samples into daily, weekly or monthly buckets for the
// requested period. Buckets come back sorted ascending by start date no
// matter the input order, and the total over all buckets always equals the
// total over all samples. Zero-value samples stay in the output so charts
// can render them as empty bars.
func Aggregate(samples []Sample, period Period) []Bucket {
	switch GranularityFor(period, len(samples)) {
	case Monthly:
		return group(samples, monthStart, monthLabel)
	case Weekly:
		return group(samples, weekStart, weekLabel)
	default:
		return group(samples, dayStart, dayLabel)
	}
}

// group sums samples sharing a bucket start. Map iteration order is
// arbitrary; chronology comes from the explicit sort at the end.
func group(samples []Sample, startOf func(time.Time) time.Time, labelOf func(time.Time) string) []Bucket {
	byStart := make(map[time.Time]*Bucket)
	for _, s := range samples {
		start := startOf(s.Date)
		b, ok := byStart[start]
		if !ok {
			b = &Bucket{Start: start, Label: labelOf(start)}
			byStart[start] = b
		}
		b.Value += s.Value
	}
	out := make([]Bucket, 0, len(byStart))
	for _, b := range byStart {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// weekStart is the Sunday that begins the sample's week: day of month minus
// the Sunday-first weekday index, normalized by time.Date.
func weekStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d-int(t.Weekday()), 0, 0, 0, 0, time.UTC)
}

func monthStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func dayLabel(start time.Time) string {
	return start.Format("2 Jan")
}

// weekLabel names a bucket by week number within its month, "W2 Jan"
func weekLabel(start time.Time) string {
	week := (start.Day()-1)/7 + 1
	return fmt.Sprintf("W%d %s", week, start.Format("Jan"))
}

func monthLabel(start time.Time) string {
	return start.Format("Jan 2006")
}

// minBarHeight keeps small positive values visually distinct from true
// zeros when bars are scaled to the series maximum
const minBarHeight = 0.04

// BarHeights converts buckets to render heights in [0, 1] proportional to
// the series maximum. A strictly positive value never drops below
// minBarHeight; a zero value stays at exactly zero.
func BarHeights(buckets []Bucket) []float64 {
	max := 0.0
	for _, b := range buckets {
		if b.Value > max {
			max = b.Value
		}
	}
	heights := make([]float64, len(buckets))
	if max == 0 {
		return heights
	}
	for i, b := range buckets {
		h := b.Value / max
		if b.Value > 0 && h < minBarHeight {
			h = minBarHeight
		}
		heights[i] = h
	}
	return heights
}
