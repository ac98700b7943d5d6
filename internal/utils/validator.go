package utils

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	Validate      *validator.Validate
	validatorOnce sync.Once
)

func InitValidator() *validator.Validate {
	validatorOnce.Do(func() {
		Validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return Validate
}
