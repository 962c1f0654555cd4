package validator

import (
	"ctchen222/tictactoe-engine/internal/session"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// gamemode accepts every spelling session.ParseMode understands.
	if err := validate.RegisterValidation("gamemode", func(fl validator.FieldLevel) bool {
		_, err := session.ParseMode(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(err)
	}
}

func GetValidator() *validator.Validate {
	return validate
}
