package charts

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/chrisdamba/ecomdash/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func month(m time.Month, orders int) models.MonthlyBucket {
	return models.MonthlyBucket{
		Month:      time.Date(2017, m, 1, 0, 0, 0, 0, time.UTC),
		OrderCount: orders,
		Revenue:    decimal.NewFromInt(int64(orders * 10)),
	}
}

func TestCityBar(t *testing.T) {
	var buf bytes.Buffer
	err := CityBar(&buf, []models.CityCount{
		{City: "sao paulo", Customers: 15540},
		{City: "rio de janeiro", Customers: 6882},
		{City: "belo horizonte", Customers: 2773},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestCityBar_SingleCity(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CityBar(&buf, []models.CityCount{{City: "sao paulo", Customers: 1}}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestMonthlyTrend(t *testing.T) {
	tests := []struct {
		name    string
		buckets []models.MonthlyBucket
	}{
		{"full year", []models.MonthlyBucket{month(time.January, 800), month(time.February, 1700), month(time.March, 2600), month(time.November, 7300)}},
		{"single month", []models.MonthlyBucket{month(time.June, 3)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, MonthlyTrend(&buf, tt.buckets))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
		})
	}
}

func TestMonthTicks(t *testing.T) {
	ticks := monthTicks([]models.MonthlyBucket{month(time.March, 2)})
	require.Len(t, ticks, 3)
	assert.Equal(t, -0.5, ticks[0].Value)
	assert.Empty(t, ticks[0].Label)
	assert.Equal(t, 0.0, ticks[1].Value)
	assert.Equal(t, "March", ticks[1].Label)
	assert.Equal(t, 0.5, ticks[2].Value)
	assert.Empty(t, ticks[2].Label)
	assert.Less(t, ticks[0].Value, ticks[len(ticks)-1].Value)
}

func TestNoData(t *testing.T) {
	var buf bytes.Buffer
	assert.True(t, errors.Is(CityBar(&buf, nil), ErrNoData))
	assert.True(t, errors.Is(MonthlyTrend(&buf, nil), ErrNoData))
	assert.Zero(t, buf.Len())
}

func TestAxisMax(t *testing.T) {
	assert.Equal(t, 1.0, axisMax(0))
	assert.Equal(t, 11.0, axisMax(10))
	assert.Equal(t, 4.0, axisMax(3))
}
