package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"mastery-service/internal/constants"
	"mastery-service/internal/domain"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json names so field errors match the request body
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("region", func(fl validator.FieldLevel) bool {
		return domain.Region(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("champion_class", func(fl validator.FieldLevel) bool {
		return domain.ChampionClass(fl.Field().String()).Valid()
	})
	return v
}

func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate request: %w", err)
	}

	fields := make([]domain.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, domain.FieldError{Field: fe.Field(), Message: validationMessage(fe)})
	}
	return domain.NewInvalidInputError(fields)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "region":
		return fmt.Sprintf("unknown region %q", fe.Value())
	case "champion_class":
		return "must be one of Assassin, Fighter, Mage, Marksman, Support, Tank"
	default:
		return "is invalid"
	}
}

func validateSummonerName(name string) error {
	var msg string
	switch {
	case strings.TrimSpace(name) == "":
		msg = "must not be empty"
	case len(name) > constants.MaxSummonerNameLength:
		msg = fmt.Sprintf("must be at most %d characters", constants.MaxSummonerNameLength)
	default:
		return nil
	}
	return domain.NewInvalidInputError([]domain.FieldError{{Field: "summonerName", Message: msg}})
}
