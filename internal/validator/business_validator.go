package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/SAP-F-2025/coursework-service/internal/itemanalysis"
)

// Bounds of the upcoming window a client may request, in days
const (
	MinUpcomingDays = 1
	MaxUpcomingDays = 60
)

// BusinessValidator handles business rule validation
type BusinessValidator struct {
	validate *validator.Validate
}

func NewBusinessValidator() *BusinessValidator {
	validate := validator.New()

	// Report fields by their JSON names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	bv := &BusinessValidator{validate: validate}
	bv.registerBusinessRules()
	return bv
}

// Validate validates business rules for any struct
func (bv *BusinessValidator) Validate(s interface{}) ValidationErrors {
	if err := bv.validate.Struct(s); err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

func (bv *BusinessValidator) registerBusinessRules() {
	bv.validate.RegisterValidation("upcoming_days", func(fl validator.FieldLevel) bool {
		days := fl.Field().Int()
		return days >= MinUpcomingDays && days <= MaxUpcomingDays
	})

	bv.validate.RegisterValidation("tercile", func(fl validator.FieldLevel) bool {
		return itemanalysis.Tercile(fl.Field().String()).Valid()
	})
}
