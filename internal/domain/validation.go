package domain

import (
	"errors"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validation message keys, resolved by adapters as "validation.<key>".
const (
	ValidationBlank        = "blank"
	ValidationInvalid      = "invalid"
	ValidationTooShort     = "too_short"
	ValidationTooLong      = "too_long"
	ValidationTaken        = "taken"
	ValidationConfirmation = "confirmation"
	ValidationSecretCode   = "invalid_secret_code"
)

// Account and form length rules. Bcrypt ignores input past 72 bytes, so
// longer passwords are refused.
const (
	MinPasswordLength = 6
	MaxPasswordLength = 72
	MaxFieldLength    = 255
)

var (
	// mailtoPattern accepts the addresses an HTML5 mailto form field does.
	mailtoPattern = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")
	// accountEmailPattern only asks for one @ between non-blank parts.
	accountEmailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+$`)
)

// ValidationErrors maps a form field name to the key of its first failure.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f, key := range v {
		fields = append(fields, f+": "+key)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

// Add records key for field unless the field already failed.
func (v ValidationErrors) Add(field, key string) {
	if _, ok := v[field]; !ok {
		v[field] = key
	}
}

// Err returns nil when no field failed.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// AsValidation unwraps err into ValidationErrors.
func AsValidation(err error) (ValidationErrors, bool) {
	var v ValidationErrors
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterValidation("mailto", matches(mailtoPattern))
	v.RegisterValidation("account_email", matches(accountEmailPattern))
	return v
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// Validate checks the struct tags of an entity and returns the failures keyed
// by json field name.
func Validate(entity any) ValidationErrors {
	errs := ValidationErrors{}
	err := validate.Struct(entity)
	if err == nil {
		return errs
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		errs.Add("base", ValidationInvalid)
		return errs
	}
	for _, fe := range fieldErrs {
		errs.Add(fe.Field(), keyForTag(fe.Tag()))
	}
	return errs
}

func keyForTag(tag string) string {
	switch tag {
	case "required":
		return ValidationBlank
	case "min":
		return ValidationTooShort
	case "max":
		return ValidationTooLong
	default:
		return ValidationInvalid
	}
}
