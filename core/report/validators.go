package report

import (
	"github.com/go-playground/validator/v10"

	"github.com/matrusri/standup/core"
)

var (
	teamTag  = "team"
	teamText = "unknown team"
)

// register custom validators
func init() {
	_ = core.Validate.RegisterValidation(teamTag, teamValidation)
	core.RegisterCustomTranslation(core.Validate, core.Translator, teamTag, teamText)
}

// Custom Validators

// teamValidation checks that the provided team is one of Teams
func teamValidation(fl validator.FieldLevel) bool {
	team := fl.Field().String()
	for _, t := range Teams {
		if team == t {
			return true
		}
	}
	return false
}
