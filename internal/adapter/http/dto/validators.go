package dto

import (
	"reflect"
	"regexp"
	"strings"

	"shadowpay/internal/core/domain"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var safeIDRe = regexp.MustCompile(`^[a-zA-Z0-9_\-]{1,64}$`)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("token", validateToken)
		_ = v.RegisterValidation("safe_id", validateSafeID)
	}
}

// validateToken accepts the symbols a payment can be requested in.
func validateToken(fl validator.FieldLevel) bool {
	_, ok := domain.ParseToken(fl.Field().String())
	return ok
}

// validateSafeID allows alphanumeric, underscore and dash.
func validateSafeID(fl validator.FieldLevel) bool {
	return safeIDRe.MatchString(fl.Field().String())
}

// ValidID reports whether a path id is well formed.
func ValidID(id string) bool {
	return safeIDRe.MatchString(id)
}

// TrimStrings trims surrounding whitespace from every exported string field
// (including *string) of a struct pointer. Content is otherwise stored as
// submitted; escaping is left to whatever renders it.
func TrimStrings(v interface{}) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return
	}
	trimFields(rv.Elem())
}

func trimFields(rv reflect.Value) {
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanSet() {
			continue
		}
		switch f.Kind() {
		case reflect.String:
			f.SetString(strings.TrimSpace(f.String()))
		case reflect.Ptr:
			if f.IsNil() {
				continue
			}
			elem := f.Elem()
			if elem.Kind() == reflect.String {
				elem.SetString(strings.TrimSpace(elem.String()))
			}
		}
	}
}
