package models

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// RegistrationForm is the form submitted to create a new account.
type RegistrationForm struct {
	Username  string `form:"username" binding:"required,max=20"`
	Password  string `form:"password" binding:"required,min=8,max=20"`
	Email     string `form:"email" binding:"required,email,max=50"`
	FirstName string `form:"first_name" binding:"required,max=30"`
	LastName  string `form:"last_name" binding:"required,max=30"`
}

// LoginForm is the form submitted to authenticate.
type LoginForm struct {
	Username string `form:"username" binding:"required,max=20"`
	Password string `form:"password" binding:"required"`
}

// FeedbackForm is the form submitted to create or edit a feedback note.
type FeedbackForm struct {
	Title   string `form:"title" binding:"required,max=100"`
	Content string `form:"content" binding:"required"`
}

// FieldErrors converts a binding error into a field name to message map
// suitable for re-rendering a form.
func FieldErrors(err error) map[string]string {
	fieldErrors := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		fieldErrors["Form"] = "Invalid form submission."
		return fieldErrors
	}

	for _, fe := range validationErrors {
		fieldErrors[fe.Field()] = fieldErrorMessage(fe)
	}
	return fieldErrors
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return fmt.Sprintf("Must be at least %s characters long.", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters long.", fe.Param())
	default:
		return "Invalid value."
	}
}
