package validator

import (
	"ctchen222/tictactoe-minimax/internal/game"
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	// Initialize validation
	validate = validator.New(validator.WithRequiredStructEnabled())
	if err := registerCustom(validate); err != nil {
		panic(err)
	}
}

func GetValidator() *validator.Validate {
	return validate
}

// RegisterGinValidations adds the custom rules to gin's binding validator so
// request structs can use them in `binding` tags.
func RegisterGinValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected gin validator engine %T", binding.Validator.Engine())
	}
	return registerCustom(v)
}

func registerCustom(v *validator.Validate) error {
	if err := v.RegisterValidation("mark", validateMark); err != nil {
		return fmt.Errorf("failed to register mark validation: %w", err)
	}
	return nil
}

// validateMark accepts X, O and the two spellings of an empty cell.
func validateMark(fl validator.FieldLevel) bool {
	switch game.PlayerMark(fl.Field().String()) {
	case game.None, " ", game.PlayerX, game.PlayerO:
		return true
	default:
		return false
	}
}
