package validator

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate

	digitsRe = regexp.MustCompile(`^[0-9]+$`)
)

func init() {
	validate = validator.New()
	// Телефон в локальном формате: ровно 11 цифр
	_ = validate.RegisterValidation("phone11", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return len(s) == 11 && digitsRe.MatchString(s)
	})
}

// Validate проверяет теги `validate` структуры
// Возвращает nil или карту "поле -> нарушенный тег"
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return map[string]string{"_": err.Error()}
	}

	result := make(map[string]string, len(validationErrors))
	for _, fieldErr := range validationErrors {
		result[fieldErr.Field()] = fieldErr.Tag()
	}
	return result
}
