// Package bind decodes and validates JSON request bodies
package bind

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "cattery/internal/platform/errors"
	"cattery/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"golang.org/x/text/language"
)

// MaxBodyBytes caps every decoded body
const MaxBodyBytes = 64 << 10

// Validator pairs the shared validator with its english translator
type Validator struct {
	*validator.Validate
	trans ut.Translator
}

// messages overrides the stock english text per tag
var messages = map[string]string{
	"min":       "{0} must have at least {1}",
	"max":       "{0} must have at most {1}",
	"gt":        "{0} must be greater than {1}",
	"lang_code": "{0} must be a language tag like en or zh-Hant",
}

// Get returns the process wide validator, building it on first use
var Get = sync.OnceValue(func() *Validator {
	loc := en.New()
	trans, _ := ut.New(loc, loc).GetTranslator("en")

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	_ = en_translations.RegisterDefaultTranslations(v, trans)
	_ = v.RegisterValidation("lang_code", isLangCode)

	for tag, text := range messages {
		_ = v.RegisterTranslation(tag, trans,
			func(t ut.Translator) error { return t.Add(tag, text, true) },
			func(t ut.Translator, fe validator.FieldError) string {
				msg, _ := t.T(fe.Tag(), fe.Field(), fe.Param())
				return msg
			},
		)
	}
	return &Validator{Validate: v, trans: trans}
})

// jsonName reports fields by their json key so errors match the payload
func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "", "-":
		return f.Name
	}
	return name
}

func isLangCode(fl validator.FieldLevel) bool {
	code := strings.TrimSpace(fl.Field().String())
	if code == "" {
		return false
	}
	_, err := language.Parse(code)
	return err == nil
}

// Check validates v and returns a Validation error naming the first bad field
func (v *Validator) Check(in any) error {
	err := v.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		logger.Get().Error().Err(err).Msg("validator misuse")
		return perr.JSONErrf("validation error")
	}
	fe := verrs[0]
	return perr.WithField(perr.New(perr.ErrorCodeValidation, fe.Translate(v.trans)), fe.Field())
}

// ParseJSON decodes exactly one JSON value into T and validates it
// unknown fields, trailing data, empty and oversized bodies are JSON errors
func ParseJSON[T any](r *http.Request) (T, error) {
	var zero, dst T
	body := http.MaxBytesReader(nil, r.Body, MaxBodyBytes)
	defer func() { _ = body.Close() }()

	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&dst); err != nil {
		var tooBig *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return zero, perr.JSONErrf("empty body")
		case errors.As(err, &tooBig):
			return zero, perr.JSONErrf("body exceeds %d bytes", tooBig.Limit)
		}
		return zero, perr.JSONErrf("invalid JSON: %v", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return zero, perr.JSONErrf("unexpected trailing data")
	}
	if err := Get().Check(dst); err != nil {
		return zero, err
	}
	return dst, nil
}
