package config

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/benvon/wifi-api/internal/models"
	"github.com/go-playground/validator/v10"
)

type validatorErrors = validator.ValidationErrors

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	if err := validate.RegisterValidation("tcp_port", validateTCPPort); err != nil {
		panic(fmt.Sprintf("failed to register tcp_port validator: %v", err))
	}
	if err := validate.RegisterValidation("cors_origin", validateCORSOrigin); err != nil {
		panic(fmt.Sprintf("failed to register cors_origin validator: %v", err))
	}
}

// validateTCPPort accepts a decimal port in 1..65535
func validateTCPPort(fl validator.FieldLevel) bool {
	port, err := strconv.Atoi(fl.Field().String())
	if err != nil {
		return false
	}
	return port > 0 && port <= 65535
}

// validateCORSOrigin accepts "*" or a bare scheme://host[:port] origin
func validateCORSOrigin(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == models.Wildcard {
		return true
	}
	u, err := url.Parse(value)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	if u.Host == "" || u.User != nil {
		return false
	}
	return u.Path == "" && u.RawQuery == "" && u.Fragment == ""
}
