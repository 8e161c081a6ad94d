package report

import (
	"math"
	"sort"
	"time"

	"github.com/chrisdamba/ecomdash/internal/models"
	"github.com/shopspring/decimal"
)

// TrendYear is the only year the monthly trend covers, whatever range the
// user picked.
const TrendYear = 2017

// MonthlyOrders counts distinct orders and sums revenue per calendar month of
// TrendYear. Months without rows are left out.
func MonthlyOrders(records []models.OrderRecord) []models.MonthlyBucket {
	orders := make(map[time.Time]map[string]struct{})
	revenue := make(map[time.Time]decimal.Decimal)

	for _, r := range records {
		if r.OrderApprovedAt == nil || r.OrderApprovedAt.Year() != TrendYear {
			continue
		}
		month := time.Date(TrendYear, r.OrderApprovedAt.Month(), 1, 0, 0, 0, 0, time.UTC)
		if orders[month] == nil {
			orders[month] = make(map[string]struct{})
		}
		orders[month][r.OrderID] = struct{}{}
		revenue[month] = revenue[month].Add(r.Price)
	}

	buckets := make([]models.MonthlyBucket, 0, len(orders))
	for month, ids := range orders {
		buckets = append(buckets, models.MonthlyBucket{
			Month:      month,
			OrderCount: len(ids),
			Revenue:    revenue[month],
		})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Month.Before(buckets[j].Month)
	})
	return buckets
}

// AverageDeliveryTime averages the estimated delivery duration in days, each
// row rounded to two decimals first. Rows missing either timestamp are
// skipped; no rows gives a zero stat.
func AverageDeliveryTime(records []models.OrderRecord) models.DeliveryTimeStat {
	var sum float64
	var n int
	for _, r := range records {
		days, ok := r.DeliveryDays()
		if !ok {
			continue
		}
		sum += round2(days)
		n++
	}
	if n == 0 {
		return models.DeliveryTimeStat{}
	}
	return models.DeliveryTimeStat{Days: sum / float64(n), Samples: n}
}

// CustomerCityCount counts distinct customers per city, largest first.
// Equal counts are ordered by city name.
func CustomerCityCount(records []models.OrderRecord) []models.CityCount {
	customers := make(map[string]map[string]struct{})
	for _, r := range records {
		if customers[r.CustomerCity] == nil {
			customers[r.CustomerCity] = make(map[string]struct{})
		}
		customers[r.CustomerCity][r.CustomerID] = struct{}{}
	}

	counts := make([]models.CityCount, 0, len(customers))
	for city, ids := range customers {
		counts = append(counts, models.CityCount{City: city, Customers: len(ids)})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Customers != counts[j].Customers {
			return counts[i].Customers > counts[j].Customers
		}
		return counts[i].City < counts[j].City
	})
	return counts
}

// round2 rounds half to even, matching the rounding of the source reports.
func round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
