// Package formvalidation form girdilerini validator/v10 ile doğrular ve
// hataları alan adı -> mesaj eşlemesi olarak döndürür.
package formvalidation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationErrors alan bazlı doğrulama hatalarıdır. Anahtarlar formdaki alan adlarıdır.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+v[field])
	}
	return "doğrulama hatası: " + strings.Join(parts, "; ")
}

// Add alan için ilk hatayı kaydeder; aynı alana ikinci mesaj eklenmez.
func (v ValidationErrors) Add(field, message string) {
	if _, exists := v[field]; !exists {
		v[field] = message
	}
}

// Err hata yoksa nil döndürür.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Hata anahtarı olarak struct alan adı yerine form etiketini kullan
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// Struct verilen girdiyi doğrular. Hata yoksa nil, varsa ValidationErrors döndürür.
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := ValidationErrors{}
	for _, fe := range fieldErrs {
		out.Add(fe.Field(), message(fe))
	}
	return out
}

// AsValidationErrors hatanın alan bazlı doğrulama hatası olup olmadığını kontrol eder.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		return verrs, true
	}
	return nil, false
}

func message(fe validator.FieldError) string {
	isText := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return "Bu alan zorunludur."
	case "email":
		return "Geçerli bir e-posta adresi giriniz."
	case "min", "gte":
		if isText {
			return fmt.Sprintf("En az %s karakter olmalıdır.", fe.Param())
		}
		return fmt.Sprintf("En az %s olmalıdır.", fe.Param())
	case "max", "lte":
		if isText {
			return fmt.Sprintf("En fazla %s karakter olabilir.", fe.Param())
		}
		return fmt.Sprintf("En fazla %s olabilir.", fe.Param())
	case "oneof":
		return fmt.Sprintf("Şunlardan biri olmalıdır: %s.", fe.Param())
	default:
		return "Geçersiz değer."
	}
}
