package validator

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// emailPattern accepts local@domain.tld addresses with a 2-3 letter TLD.
var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// trans is the singleton English translator for validation errors.
var (
	trans ut.Translator
	once  sync.Once
)

// Setup registers field naming, English translations and the custom
// schoolemail rule on Gin's binding engine. Safe to call more than once.
func Setup() {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*govalidator.Validate)
		if !ok {
			return
		}

		// Use JSON tag name for field names in error messages.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		enLocale := en.New()
		uni := ut.New(enLocale, enLocale)
		trans, _ = uni.GetTranslator("en")
		_ = en_translations.RegisterDefaultTranslations(v, trans)

		_ = v.RegisterValidation("schoolemail", func(fl govalidator.FieldLevel) bool {
			return ValidEmail(fl.Field().String())
		})
		_ = v.RegisterTranslation("schoolemail", trans,
			func(ut ut.Translator) error {
				return ut.Add("schoolemail", "Please add a valid email", true)
			},
			func(ut ut.Translator, fe govalidator.FieldError) string {
				msg, _ := ut.T("schoolemail")
				return msg
			},
		)
	})
}

// ValidEmail reports whether s matches the accepted email shape.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// TranslateErrors takes a binding/validation error and returns a map of
// field name → human-readable error message. If the error is not a
// validation error, it returns a single-key map with "detail".
func TranslateErrors(err error) map[string]string {
	fields := make(map[string]string)

	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			if trans != nil {
				fields[fe.Field()] = fe.Translate(trans)
			} else {
				fields[fe.Field()] = fe.Error()
			}
		}
		return fields
	}

	// Not a validation error (e.g., JSON syntax error).
	fields["detail"] = "request body must be valid JSON"
	return fields
}

// Bind binds and validates the request body into dst.
// Returns nil on success or a translated field error map on failure.
func Bind(c *gin.Context, dst interface{}) map[string]string {
	if err := c.ShouldBindJSON(dst); err != nil {
		return TranslateErrors(err)
	}
	return nil
}
