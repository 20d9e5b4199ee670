package model

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate проверяет теги validate у сущности модели.
// Возвращает validator.ValidationErrors при нарушении правил.
func Validate(v any) error {
	return validatorInstance().Struct(v)
}
