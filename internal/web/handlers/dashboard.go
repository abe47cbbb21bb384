package handlers

import (
	"errors"
	"net/http"
	"time"

	"stockcast/internal/apperr"
	"stockcast/internal/forms"
	"stockcast/internal/market"
	"stockcast/internal/metrics"
	"stockcast/internal/store"
	"stockcast/internal/trend"
	"stockcast/pkg/logger"
)

// User-facing prediction failure messages. The generic one covers every
// failure except the explicitly detected empty series.
const (
	msgInvalidSymbol    = "Invalid stock symbol or no data available"
	msgPredictionFailed = "Prediction Failed. Check logs."
)

// fetchPeriod is how far back the daily close series reaches.
const fetchPeriod = 182 * 24 * time.Hour // ~6 months

// DashboardHandler handles the prediction workflow.
type DashboardHandler struct {
	market      *market.Client
	predictions *store.PredictionRepository
	logger      *logger.Logger
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(marketClient *market.Client, predictions *store.PredictionRepository, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		market:      marketClient,
		predictions: predictions,
		logger:      log,
	}
}

type dashboardPage struct {
	Error string
}

type resultPage struct {
	Symbol    string
	Company   string
	Current   float64
	Predicted float64
	Trend     string

	// Chart series, aligned to the rows where the moving average exists.
	Dates  []string
	Closes []float64
	MA20   []float64
}

// Show renders the prediction form.
// GET /dashboard
func (h *DashboardHandler) Show(w http.ResponseWriter, r *http.Request) {
	render(w, h.logger, "dashboard.html", dashboardPage{})
}

// Predict runs the prediction workflow: fetch the close series, compute the
// moving average and projected price, persist the record and render the
// result. Failures never persist a record.
// POST /dashboard
func (h *DashboardHandler) Predict(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := UserID(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	form, err := forms.ParsePrediction(r)
	if err != nil {
		render(w, h.logger, "dashboard.html", dashboardPage{Error: "Please supply a stock symbol and a model."})
		return
	}

	series, err := h.market.FetchDailyCloses(ctx, form.Symbol, fetchPeriod)
	if errors.Is(err, apperr.ErrEmptyMarketData) {
		metrics.PredictionsTotal.WithLabelValues("empty").Inc()
		respondText(w, msgInvalidSymbol)
		return
	}
	if err != nil {
		h.logger.WithError(err).WithField("symbol", form.Symbol).Error("Market data fetch failed")
		metrics.PredictionsTotal.WithLabelValues("error").Inc()
		respondText(w, msgPredictionFailed)
		return
	}

	points := make([]trend.Point, len(series))
	for i, p := range series {
		points[i] = trend.Point{Date: p.Date, Close: p.Close}
	}

	means := trend.RollingMean(points, trend.DefaultWindow)
	if len(means) == 0 {
		// Series shorter than the window; nothing to chart or project.
		h.logger.WithFields(map[string]interface{}{
			"symbol": form.Symbol,
			"count":  len(series),
		}).Error("Price series too short for moving average")
		metrics.PredictionsTotal.WithLabelValues("error").Inc()
		respondText(w, msgPredictionFailed)
		return
	}

	current := points[len(points)-1].Close
	predicted := trend.ProjectNext(current)
	label := trend.TrendLabel(current, predicted)

	record := &store.Prediction{
		UserID:         userID,
		Symbol:         form.Symbol,
		ModelUsed:      form.Model,
		PredictedValue: predicted,
	}
	if err := h.predictions.Create(ctx, record); err != nil {
		h.logger.WithError(err).Error("Failed to persist prediction")
		metrics.PredictionsTotal.WithLabelValues("error").Inc()
		respondText(w, msgPredictionFailed)
		return
	}

	company := form.Symbol
	if name, err := h.market.FetchCompanyName(ctx, form.Symbol); err == nil {
		company = name
	}

	// Chart rows start where the moving average becomes defined.
	trimmed := points[trend.DefaultWindow-1:]
	page := resultPage{
		Symbol:    form.Symbol,
		Company:   company,
		Current:   trend.Round2(current),
		Predicted: trend.Round2(predicted),
		Trend:     label,
		Dates:     make([]string, len(trimmed)),
		Closes:    make([]float64, len(trimmed)),
		MA20:      make([]float64, len(trimmed)),
	}
	for i, p := range trimmed {
		page.Dates[i] = p.Date.Format("2006-01-02")
		page.Closes[i] = trend.Round2(p.Close)
		page.MA20[i] = trend.Round2(means[i].Mean)
	}

	metrics.PredictionsTotal.WithLabelValues("ok").Inc()
	render(w, h.logger, "result.html", page)
}
