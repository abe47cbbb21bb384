package forms

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"stockcast/internal/apperr"
)

func formRequest(values url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func TestParseRegister(t *testing.T) {
	tests := []struct {
		name    string
		values  url.Values
		wantErr bool
	}{
		{
			name:   "valid",
			values: url.Values{"username": {"alice"}, "email": {"alice@example.com"}, "password": {"pw1234"}},
		},
		{
			name:    "missing username",
			values:  url.Values{"email": {"alice@example.com"}, "password": {"pw1234"}},
			wantErr: true,
		},
		{
			name:    "bad email",
			values:  url.Values{"username": {"alice"}, "email": {"not-an-email"}, "password": {"pw1234"}},
			wantErr: true,
		},
		{
			name:    "short password",
			values:  url.Values{"username": {"alice"}, "email": {"alice@example.com"}, "password": {"pw"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRegister(formRequest(tt.values))
			if tt.wantErr {
				if !errors.Is(err, apperr.ErrValidation) {
					t.Fatalf("ParseRegister() error = %v, want ErrValidation", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRegister() unexpected error: %v", err)
			}
		})
	}
}

func TestParseFeedback(t *testing.T) {
	tests := []struct {
		name       string
		values     url.Values
		wantErr    bool
		wantRating int
	}{
		{
			name:       "valid",
			values:     url.Values{"rating": {"5"}, "message": {"great"}},
			wantRating: 5,
		},
		{
			// The rating range is deliberately unchecked.
			name:       "out of range rating accepted",
			values:     url.Values{"rating": {"-3"}, "message": {"terrible"}},
			wantRating: -3,
		},
		{
			name:    "non-integer rating",
			values:  url.Values{"rating": {"five"}, "message": {"great"}},
			wantErr: true,
		},
		{
			name:    "missing message",
			values:  url.Values{"rating": {"5"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form, err := ParseFeedback(formRequest(tt.values))
			if tt.wantErr {
				if !errors.Is(err, apperr.ErrValidation) {
					t.Fatalf("ParseFeedback() error = %v, want ErrValidation", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFeedback() unexpected error: %v", err)
			}
			if form.Rating != tt.wantRating {
				t.Errorf("rating = %d, want %d", form.Rating, tt.wantRating)
			}
		})
	}
}

func TestParsePrediction(t *testing.T) {
	if _, err := ParsePrediction(formRequest(url.Values{"symbol": {"AAPL"}, "model": {"basic"}})); err != nil {
		t.Fatalf("ParsePrediction() unexpected error: %v", err)
	}

	if _, err := ParsePrediction(formRequest(url.Values{"model": {"basic"}})); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("ParsePrediction() error = %v, want ErrValidation", err)
	}
}
