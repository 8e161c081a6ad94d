package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestParseDateRange(t *testing.T) {
	def := NewDateRange(date("2016-09-04"), date("2018-09-03"))

	tests := []struct {
		name       string
		start, end string
		want       string
		wantErr    bool
	}{
		{name: "defaults", want: "2016-09-04..2018-09-03"},
		{name: "start only", start: "2017-01-01", want: "2017-01-01..2018-09-03"},
		{name: "both", start: "2017-01-01", end: "2017-01-31", want: "2017-01-01..2017-01-31"},
		{name: "inverted kept until normalized", start: "2017-02-01", end: "2017-01-01", want: "2017-02-01..2017-01-01"},
		{name: "bad start", start: "01/02/2017", wantErr: true},
		{name: "bad end", end: "2017-13-01", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDateRange(tt.start, tt.end, def)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidDate))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestDateRangeNormalizeAndContains(t *testing.T) {
	r := DateRange{Start: date("2017-03-05"), End: date("2017-03-01")}.Normalize()
	assert.Equal(t, "2017-03-01..2017-03-05", r.String())

	late := time.Date(2017, 3, 5, 23, 59, 59, 0, time.UTC)
	assert.True(t, r.Contains(late))
	assert.True(t, r.Contains(date("2017-03-01")))
	assert.False(t, r.Contains(date("2017-03-06")))
	assert.False(t, r.Contains(time.Date(2017, 2, 28, 23, 59, 59, 0, time.UTC)))
}

func TestDeliveryDays(t *testing.T) {
	approved := time.Date(2017, 3, 1, 12, 0, 0, 0, time.UTC)
	estimated := approved.Add(36 * time.Hour)

	days, ok := OrderRecord{OrderApprovedAt: &approved, OrderEstimatedDeliveryDate: &estimated}.DeliveryDays()
	assert.True(t, ok)
	assert.InDelta(t, 1.5, days, 1e-9)

	_, ok = OrderRecord{OrderEstimatedDeliveryDate: &estimated}.DeliveryDays()
	assert.False(t, ok)
}

func TestMonthName(t *testing.T) {
	b := MonthlyBucket{Month: date("2017-09-01")}
	assert.Equal(t, "September", b.MonthName())
}
