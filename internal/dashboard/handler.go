package dashboard

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/chrisdamba/ecomdash/internal/charts"
	"github.com/chrisdamba/ecomdash/internal/dataset"
	"github.com/chrisdamba/ecomdash/internal/logger"
	"github.com/chrisdamba/ecomdash/internal/models"
	"github.com/chrisdamba/ecomdash/internal/report"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	provider  DatasetProvider
	dashboard models.DashboardConfig
}

func NewHandler(provider DatasetProvider, dashboard models.DashboardConfig) *Handler {
	return &Handler{provider: provider, dashboard: dashboard}
}

type pageData struct {
	Title     string
	Subtitle  string
	MinDate   string
	MaxDate   string
	Start     string
	End       string
	TrendYear int
	View      models.ViewModel
}

// rerun loads the table, resolves the requested range and renders it.
// It writes the error response itself and returns ok=false on failure.
func (h *Handler) rerun(c *gin.Context) (*dataset.Dataset, models.ViewModel, bool) {
	ds, err := h.provider.Dataset(c.Request.Context())
	if err != nil {
		logger.FromContext(c).Error("failed to load dataset", zap.Error(err))
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "failed to load data")
		return nil, models.ViewModel{}, false
	}

	rng, err := models.ParseDateRange(c.Query("start"), c.Query("end"), ds.FullRange())
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return nil, models.ViewModel{}, false
	}

	vm := report.Run(ds.Records, rng, h.dashboard.DeliveryUnit)
	logger.FromContext(c).Debug("rerun",
		zap.Stringer("range", vm.Range),
		zap.Int("rows", vm.RecordCount),
		zap.Int("total_orders", vm.TotalOrders),
	)
	return ds, vm, true
}

func (h *Handler) Index(c *gin.Context) {
	ds, vm, ok := h.rerun(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "index.html", pageData{
		Title:     h.dashboard.Title,
		Subtitle:  h.dashboard.Subtitle,
		MinDate:   models.Day(ds.MinDate).Format(models.DateLayout),
		MaxDate:   models.Day(ds.MaxDate).Format(models.DateLayout),
		Start:     vm.Range.Start.Format(models.DateLayout),
		End:       vm.Range.End.Format(models.DateLayout),
		TrendYear: report.TrendYear,
		View:      vm,
	})
}

func (h *Handler) Report(c *gin.Context) {
	_, vm, ok := h.rerun(c)
	if !ok {
		return
	}
	success(c, http.StatusOK, vm)
}

func (h *Handler) CityChart(c *gin.Context) {
	_, vm, ok := h.rerun(c)
	if !ok {
		return
	}
	h.png(c, func(w io.Writer) error { return charts.CityBar(w, vm.TopCities) })
}

func (h *Handler) MonthlyChart(c *gin.Context) {
	_, vm, ok := h.rerun(c)
	if !ok {
		return
	}
	h.png(c, func(w io.Writer) error { return charts.MonthlyTrend(w, vm.MonthlyOrders) })
}

func (h *Handler) png(c *gin.Context, render func(io.Writer) error) {
	var buf bytes.Buffer
	err := render(&buf)
	switch {
	case errors.Is(err, charts.ErrNoData):
		c.Status(http.StatusNoContent)
	case err != nil:
		logger.FromContext(c).Error("failed to render chart", zap.Error(err))
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "failed to render chart")
	default:
		c.Data(http.StatusOK, "image/png", buf.Bytes())
	}
}

func (h *Handler) Health(c *gin.Context) {
	records, err := h.provider.Status()
	if err != nil {
		fail(c, http.StatusServiceUnavailable, ErrCodeInternal, err.Error())
		return
	}
	success(c, http.StatusOK, gin.H{"status": "ok", "records": records})
}
