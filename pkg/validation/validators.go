package validation

import (
	"regexp"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var usernameRegex = regexp.MustCompile(`^[A-Za-z0-9._-]{3,50}$`)

var (
	applicationStatuses = map[string]bool{"PENDING": true, "INTERVIEW": true, "REJECTED": true}
	userRoles           = map[string]bool{"JOBSEEKER": true, "RECRUITER": true}
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("username", ValidUsername)
	_ = v.RegisterValidation("no_emoji", NoEmoji)
	_ = v.RegisterValidation("app_status", ValidApplicationStatus)
	_ = v.RegisterValidation("user_role", ValidUserRole)
}

// RegisterWithGin installs the custom validators on gin's binding engine.
func RegisterWithGin() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterValidators(v)
	}
}

// ValidUsername accepts 3-50 letters, digits, dots, underscores and dashes
func ValidUsername(fl validator.FieldLevel) bool {
	return usernameRegex.MatchString(fl.Field().String())
}

// NoEmoji validates that a string does not contain emoji characters
func NoEmoji(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if r > 0x1F000 {
			return false
		}
		if unicode.In(r, unicode.So, unicode.Sk) {
			return false
		}
	}
	return true
}

func ValidApplicationStatus(fl validator.FieldLevel) bool {
	return applicationStatuses[fl.Field().String()]
}

func ValidUserRole(fl validator.FieldLevel) bool {
	return userRoles[fl.Field().String()]
}
