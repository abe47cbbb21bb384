package handlers

import (
	"net/http"

	"stockcast/internal/forms"
	"stockcast/internal/store"
	"stockcast/pkg/logger"
)

// FeedbackHandler handles feedback submission.
type FeedbackHandler struct {
	feedback *store.FeedbackRepository
	logger   *logger.Logger
}

// NewFeedbackHandler creates a new feedback handler.
func NewFeedbackHandler(feedback *store.FeedbackRepository, log *logger.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		feedback: feedback,
		logger:   log,
	}
}

type feedbackPage struct {
	Error string
}

// Show renders the feedback form.
// GET /feedback
func (h *FeedbackHandler) Show(w http.ResponseWriter, r *http.Request) {
	render(w, h.logger, "feedback.html", feedbackPage{})
}

// Submit persists a feedback record and redirects to the dashboard.
// POST /feedback
func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserID(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	form, err := forms.ParseFeedback(r)
	if err != nil {
		render(w, h.logger, "feedback.html", feedbackPage{Error: "Rating must be a whole number and a message is required."})
		return
	}

	record := &store.Feedback{
		UserID:  userID,
		Rating:  form.Rating,
		Message: form.Message,
	}
	if err := h.feedback.Create(r.Context(), record); err != nil {
		h.logger.WithError(err).Error("Failed to persist feedback")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}
