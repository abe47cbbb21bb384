package handlers

import (
	"net/http"

	"stockcast/internal/store"
	"stockcast/pkg/logger"
)

// AdminHandler renders the aggregated usage statistics. The route carries
// no session gate; any visitor can view it.
type AdminHandler struct {
	reporter *store.Reporter
	logger   *logger.Logger
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(reporter *store.Reporter, log *logger.Logger) *AdminHandler {
	return &AdminHandler{
		reporter: reporter,
		logger:   log,
	}
}

// Show renders the statistics page.
// GET /admin
func (h *AdminHandler) Show(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reporter.Summarize(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to build usage summary")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	render(w, h.logger, "admin.html", summary)
}
