package common

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
)

// EchoValidator adapts go-playground/validator to echo.Validator.
type EchoValidator struct {
	validate *validator.Validate
}

func NewEchoValidator() *EchoValidator {
	return &EchoValidator{validate: validator.New()}
}

// Validate checks the struct tags of i and answers violations with a 400
// naming each failing field and rule.
func (v *EchoValidator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("received invalid request: %v", err))
	}
	violations := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		violations = append(violations, fmt.Sprintf("%s violates %s", strings.ToLower(fe.Field()), rule))
	}
	return echo.NewHTTPError(http.StatusBadRequest, "received invalid request: "+strings.Join(violations, ", "))
}
