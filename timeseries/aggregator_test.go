package timeseries

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(yy int, mm time.Month, dd int) time.Time {
	return time.Date(yy, mm, dd, 0, 0, 0, 0, time.UTC)
}

// dailyRange builds one sample per day starting at from
func dailyRange(from time.Time, values ...float64) []Sample {
	samples := make([]Sample, len(values))
	for i, v := range values {
		samples[i] = Sample{Date: from.AddDate(0, 0, i), Value: v}
	}
	return samples
}

func total(samples []Sample) float64 {
	sum := 0.0
	for _, s := range samples {
		sum += s.Value
	}
	return sum
}

func bucketTotal(buckets []Bucket) float64 {
	sum := 0.0
	for _, b := range buckets {
		sum += b.Value
	}
	return sum
}

func TestGranularityFor(t *testing.T) {
	assert.Equal(t, Daily, GranularityFor(PeriodWeek, 7))
	assert.Equal(t, Daily, GranularityFor(PeriodMonth, 30))
	assert.Equal(t, Weekly, GranularityFor(PeriodQuarter, 0))
	assert.Equal(t, Monthly, GranularityFor(PeriodYear, 0))

	// sample count alone can force a coarser granularity
	assert.Equal(t, Weekly, GranularityFor(PeriodMonth, 32))
	assert.Equal(t, Monthly, GranularityFor(PeriodMonth, 91))
	assert.Equal(t, Daily, GranularityFor(PeriodMonth, 31))
	assert.Equal(t, Weekly, GranularityFor(PeriodQuarter, 90))
}

func TestPeriodDays(t *testing.T) {
	assert.Equal(t, 7, PeriodWeek.Days())
	assert.Equal(t, 30, PeriodMonth.Days())
	assert.Equal(t, 91, PeriodQuarter.Days())
	assert.Equal(t, 365, PeriodYear.Days())
	assert.Equal(t, 30, Period("bogus").Days())
}

func TestAggregateDailyIsIdentity(t *testing.T) {
	samples := dailyRange(day(2024, time.January, 1), 10, 0, 5)
	buckets := Aggregate(samples, PeriodWeek)

	require.Len(t, buckets, 3)
	assert.Equal(t, day(2024, time.January, 1), buckets[0].Start)
	assert.Equal(t, 10.0, buckets[0].Value)
	assert.Equal(t, "1 Jan", buckets[0].Label)

	// zero-value days survive as zero buckets
	assert.Equal(t, 0.0, buckets[1].Value)
	assert.Equal(t, "2 Jan", buckets[1].Label)
}

func TestAggregateMonthly(t *testing.T) {
	samples := []Sample{
		{Date: day(2024, time.January, 1), Value: 10},
		{Date: day(2024, time.January, 2), Value: 5},
		{Date: day(2024, time.January, 8), Value: 20},
	}
	buckets := Aggregate(samples, PeriodYear)

	require.Len(t, buckets, 1)
	assert.Equal(t, day(2024, time.January, 1), buckets[0].Start)
	assert.Equal(t, 35.0, buckets[0].Value)
	assert.Equal(t, "Jan 2024", buckets[0].Label)
}

func TestAggregateMonthlySpansMonths(t *testing.T) {
	samples := []Sample{
		{Date: day(2023, time.December, 31), Value: 3},
		{Date: day(2024, time.January, 15), Value: 7},
		{Date: day(2024, time.February, 1), Value: 1},
	}
	buckets := Aggregate(samples, PeriodYear)

	require.Len(t, buckets, 3)
	assert.Equal(t, "Dec 2023", buckets[0].Label)
	assert.Equal(t, "Jan 2024", buckets[1].Label)
	assert.Equal(t, "Feb 2024", buckets[2].Label)
	assert.Equal(t, total(samples), bucketTotal(buckets))
}

func TestAggregateWeekly(t *testing.T) {
	// 2024-01-07 is a Sunday; the 6th belongs to the week of Dec 31
	samples := []Sample{
		{Date: day(2024, time.January, 6), Value: 2},
		{Date: day(2024, time.January, 7), Value: 10},
		{Date: day(2024, time.January, 10), Value: 5},
		{Date: day(2024, time.January, 14), Value: 1},
	}
	buckets := Aggregate(samples, PeriodQuarter)

	require.Len(t, buckets, 3)
	assert.Equal(t, day(2023, time.December, 31), buckets[0].Start)
	assert.Equal(t, 2.0, buckets[0].Value)
	assert.Equal(t, day(2024, time.January, 7), buckets[1].Start)
	assert.Equal(t, 15.0, buckets[1].Value)
	assert.Equal(t, day(2024, time.January, 14), buckets[2].Start)
	assert.Equal(t, 1.0, buckets[2].Value)

	assert.Equal(t, "W5 Dec", buckets[0].Label)
	assert.Equal(t, "W1 Jan", buckets[1].Label)
	assert.Equal(t, "W2 Jan", buckets[2].Label)
}

func TestAggregateConservation(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, period := range []Period{PeriodWeek, PeriodMonth, PeriodQuarter, PeriodYear} {
		samples := make([]Sample, 120)
		for i := range samples {
			samples[i] = Sample{
				Date:  day(2024, time.January, 1).AddDate(0, 0, i),
				Value: float64(rng.Intn(500)),
			}
		}
		buckets := Aggregate(samples, period)
		assert.InDelta(t, total(samples), bucketTotal(buckets), 1e-9, "period %s", period)
	}
}

func TestAggregateSortsRegardlessOfInputOrder(t *testing.T) {
	samples := dailyRange(day(2024, time.March, 1), 1, 2, 3, 4, 5, 6, 7, 8, 9, 10)
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 20; trial++ {
		shuffled := make([]Sample, len(samples))
		copy(shuffled, samples)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		for _, period := range []Period{PeriodWeek, PeriodQuarter, PeriodYear} {
			buckets := Aggregate(shuffled, period)
			for i := 1; i < len(buckets); i++ {
				assert.True(t, buckets[i-1].Start.Before(buckets[i].Start),
					"period %s: bucket %d (%s) not after %d (%s)",
					period, i, buckets[i].Start, i-1, buckets[i-1].Start)
			}
		}
	}
}

func TestBarHeights(t *testing.T) {
	buckets := []Bucket{
		{Value: 0},
		{Value: 1},
		{Value: 500},
		{Value: 1000},
	}
	heights := BarHeights(buckets)
	require.Len(t, heights, 4)

	// true zero renders as zero, tiny positive values get the floor
	assert.Equal(t, 0.0, heights[0])
	assert.Equal(t, minBarHeight, heights[1])
	assert.Equal(t, 0.5, heights[2])
	assert.Equal(t, 1.0, heights[3])
}

func TestBarHeightsAllZero(t *testing.T) {
	heights := BarHeights([]Bucket{{Value: 0}, {Value: 0}})
	assert.Equal(t, []float64{0, 0}, heights)
}
