package handlers

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	validatorsOnce sync.Once
	validatorsErr  error
)

// notBlank fails strings that are empty once surrounding whitespace is removed.
func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// RegisterValidators installs the custom binding tags used by the request DTOs on
// gin's validator engine.
func RegisterValidators() error {
	validatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			validatorsErr = fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
			return
		}
		if err := v.RegisterValidation("notblank", notBlank); err != nil {
			validatorsErr = fmt.Errorf("failed to register 'notblank': %w", err)
		}
	})
	return validatorsErr
}
