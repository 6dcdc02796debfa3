package model

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	initOnce   sync.Once
	validate   *validator.Validate
	translator ut.Translator
)

func validatorInstance() (*validator.Validate, ut.Translator) {
	initOnce.Do(func() {
		locale := en.New()
		translator, _ = ut.New(locale, locale).GetTranslator("en")

		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = en_translations.RegisterDefaultTranslations(validate, translator)

		// Report JSON names instead of Go field names.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate, translator
}

// ValidateRecord checks a single evaluation record.
func ValidateRecord(r EvaluationRecord) error {
	return validateStruct(r).orNil()
}

// ValidateHistory checks every record of a history. Field names are
// prefixed with the record position, e.g. "history[2].scores[0]".
func ValidateHistory(history []EvaluationRecord) error {
	out := &ValidationError{}
	for i, r := range history {
		if ve := validateStruct(r); ve != nil {
			out.merge("history["+strconv.Itoa(i)+"].", ve)
		}
	}
	return out.orNil()
}

// ValidateSummary checks an optional model summary. A nil summary is valid.
func ValidateSummary(m *ModelQualitySummary) error {
	if m == nil {
		return nil
	}
	ve := validateStruct(*m)
	if ve == nil {
		return nil
	}
	out := &ValidationError{}
	out.merge("model.", ve)
	return out.orNil()
}

// ValidateInput checks a history and its optional model summary together and
// reports every offending field of both in one ValidationError.
func ValidateInput(history []EvaluationRecord, m *ModelQualitySummary) error {
	out := &ValidationError{}
	for _, err := range []error{ValidateHistory(history), ValidateSummary(m)} {
		var ve *ValidationError
		if errors.As(err, &ve) {
			out.merge("", ve)
		}
	}
	return out.orNil()
}

// ValidateLearner checks a learner profile.
func ValidateLearner(l Learner) error {
	return validateStruct(l).orNil()
}

func validateStruct(v any) *ValidationError {
	val, trans := validatorInstance()
	err := val.Struct(v)
	if err == nil {
		return nil
	}

	out := &ValidationError{}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		out.add("_", err.Error())
		return out
	}
	for _, fe := range fieldErrs {
		out.add(fieldPath(fe.Namespace()), fe.Translate(trans))
	}
	return out
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
