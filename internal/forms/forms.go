// Package forms decodes and validates the POSTed HTML forms.
package forms

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"stockcast/internal/apperr"
)

var validate = validator.New()

// Register is the registration form.
type Register struct {
	Username string `validate:"required,min=3,max=100"`
	Email    string `validate:"required,email,max=120"`
	Password string `validate:"required,min=6,max=72"`
}

// Login is the login form.
type Login struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// Prediction is the dashboard prediction-request form.
type Prediction struct {
	Symbol string `validate:"required,max=20"`
	Model  string `validate:"required,max=50"`
}

// Feedback is the feedback form. The rating only has to parse as an
// integer; its range is not restricted.
type Feedback struct {
	Rating  int
	Message string `validate:"required"`
}

// ParseRegister decodes and validates the registration form.
func ParseRegister(r *http.Request) (Register, error) {
	form := Register{
		Username: r.FormValue("username"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}
	if err := validate.Struct(form); err != nil {
		return form, fmt.Errorf("%w: %v", apperr.ErrValidation, err)
	}
	return form, nil
}

// ParseLogin decodes and validates the login form.
func ParseLogin(r *http.Request) (Login, error) {
	form := Login{
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
	}
	if err := validate.Struct(form); err != nil {
		return form, fmt.Errorf("%w: %v", apperr.ErrValidation, err)
	}
	return form, nil
}

// ParsePrediction decodes and validates the prediction form.
func ParsePrediction(r *http.Request) (Prediction, error) {
	form := Prediction{
		Symbol: r.FormValue("symbol"),
		Model:  r.FormValue("model"),
	}
	if err := validate.Struct(form); err != nil {
		return form, fmt.Errorf("%w: %v", apperr.ErrValidation, err)
	}
	return form, nil
}

// ParseFeedback decodes and validates the feedback form.
func ParseFeedback(r *http.Request) (Feedback, error) {
	rating, err := strconv.Atoi(r.FormValue("rating"))
	if err != nil {
		return Feedback{}, fmt.Errorf("%w: rating must be an integer", apperr.ErrValidation)
	}

	form := Feedback{
		Rating:  rating,
		Message: r.FormValue("message"),
	}
	if err := validate.Struct(form); err != nil {
		return form, fmt.Errorf("%w: %v", apperr.ErrValidation, err)
	}
	return form, nil
}
