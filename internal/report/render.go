package report

import (
	"fmt"

	"github.com/chrisdamba/ecomdash/internal/models"
)

// TopCityLimit is how many cities the table and bar chart show.
const TopCityLimit = 10

// Render builds the view model for one rerun from rows already filtered to rng.
func Render(filtered []models.OrderRecord, rng models.DateRange, deliveryUnit string) models.ViewModel {
	monthly := MonthlyOrders(filtered)
	delivery := AverageDeliveryTime(filtered)
	cities := CustomerCityCount(filtered)

	total := 0
	for _, b := range monthly {
		total += b.OrderCount
	}

	top := cities
	if len(top) > TopCityLimit {
		top = top[:TopCityLimit]
	}

	return models.ViewModel{
		Range:               rng.Normalize(),
		RecordCount:         len(filtered),
		TotalOrders:         total,
		AverageDeliveryTime: delivery,
		DeliveryTimeLabel:   FormatDeliveryTime(delivery, deliveryUnit),
		MonthlyOrders:       monthly,
		Cities:              cities,
		TopCities:           top,
	}
}

// Run filters records to rng and renders the result.
func Run(records []models.OrderRecord, rng models.DateRange, deliveryUnit string) models.ViewModel {
	rng = rng.Normalize()
	return Render(Filter(records, rng), rng, deliveryUnit)
}

func FormatDeliveryTime(stat models.DeliveryTimeStat, unit string) string {
	if unit == "" {
		return fmt.Sprintf("%.2f", stat.Days)
	}
	return fmt.Sprintf("%.2f %s", stat.Days, unit)
}
