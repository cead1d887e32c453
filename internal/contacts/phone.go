package contacts

import (
	"github.com/go-playground/validator"

	"github.com/assistant-bot/assistant-bot/internal/config"
)

var validate = validator.New()

// Phone is a validated ten digit phone number.
// Always valid in memory; use NewPhone to construct.
type Phone struct {
	value string
}

// NewPhone validates raw against config.PhoneRule.
func NewPhone(raw string) (Phone, error) {
	if err := validate.Var(raw, config.PhoneRule); err != nil {
		return Phone{}, errPhoneFormat()
	}
	return Phone{value: raw}, nil
}

func (p Phone) String() string { return p.value }
