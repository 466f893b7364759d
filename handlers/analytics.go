package handlers

import (
	"net/http"
	"time"

	"marketplace-api/config"
	"marketplace-api/middleware"
	"marketplace-api/models"
	"marketplace-api/timeseries"

	"github.com/gin-gonic/gin"
)

type dailyRow struct {
	Day     string
	Revenue float64
	Orders  int64
}

// queryDailyStats sums completed-order revenue and counts per calendar day
// in [from, to)
func queryDailyStats(restaurantID uint, from, to time.Time) []dailyRow {
	var rows []dailyRow
	config.DB.Model(&models.Order{}).
		Select("date(created_at) as day, sum(total_price) as revenue, count(*) as orders").
		Where("restaurant_id = ? AND status = ? AND created_at >= ? AND created_at < ?",
			restaurantID, models.StatusCompleted, from, to).
		Group("day").
		Scan(&rows)
	return rows
}

// fillWindow turns sparse per-day rows into one sample per calendar day of
// the window. Days without completed orders become zero-value samples so
// they still render as empty bars.
func fillWindow(rows []dailyRow, from time.Time, days int, pick func(dailyRow) float64) []timeseries.Sample {
	byDay := make(map[string]dailyRow, len(rows))
	for _, r := range rows {
		byDay[r.Day] = r
	}
	samples := make([]timeseries.Sample, 0, days)
	for i := 0; i < days; i++ {
		date := from.AddDate(0, 0, i)
		sample := timeseries.Sample{Date: date}
		if r, ok := byDay[date.Format("2006-01-02")]; ok {
			sample.Value = pick(r)
		}
		samples = append(samples, sample)
	}
	return samples
}

func sumValues(samples []timeseries.Sample) float64 {
	total := 0.0
	for _, s := range samples {
		total += s.Value
	}
	return total
}

// GetRestaurantAnalytics serves the partner dashboard: raw daily samples,
// precomputed scalar totals with deltas against the previous window, and
// bucketed chart series. The aggregator only builds the chart buckets; it
// never recomputes the scalars.
func GetRestaurantAnalytics(c *gin.Context) {
	ownerID := middleware.GetUserID(c)

	var restaurant models.Restaurant
	if err := config.DB.Where("owner_id = ?", ownerID).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No restaurant found for your account"})
		return
	}

	period := timeseries.Period(c.DefaultQuery("period", string(timeseries.PeriodMonth)))
	days := period.Days()

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	from := today.AddDate(0, 0, -(days - 1))
	to := today.AddDate(0, 0, 1)
	prevFrom := from.AddDate(0, 0, -days)

	rows := queryDailyStats(restaurant.ID, from, to)
	prevRows := queryDailyStats(restaurant.ID, prevFrom, from)

	dailyRevenue := fillWindow(rows, from, days, func(r dailyRow) float64 { return r.Revenue })
	dailyOrders := fillWindow(rows, from, days, func(r dailyRow) float64 { return float64(r.Orders) })
	prevRevenue := fillWindow(prevRows, prevFrom, days, func(r dailyRow) float64 { return r.Revenue })
	prevOrders := fillWindow(prevRows, prevFrom, days, func(r dailyRow) float64 { return float64(r.Orders) })

	totalRevenue := sumValues(dailyRevenue)
	totalOrders := sumValues(dailyOrders)

	revenueBuckets := timeseries.Aggregate(dailyRevenue, period)
	orderBuckets := timeseries.Aggregate(dailyOrders, period)

	c.JSON(http.StatusOK, gin.H{
		"period":       period,
		"dailyRevenue": dailyRevenue,
		"dailyOrders":  dailyOrders,
		"totals": gin.H{
			"revenue":       totalRevenue,
			"orders":        totalOrders,
			"revenue_delta": totalRevenue - sumValues(prevRevenue),
			"orders_delta":  totalOrders - sumValues(prevOrders),
		},
		"revenue_series": gin.H{
			"buckets": revenueBuckets,
			"heights": timeseries.BarHeights(revenueBuckets),
		},
		"orders_series": gin.H{
			"buckets": orderBuckets,
			"heights": timeseries.BarHeights(orderBuckets),
		},
	})
}
