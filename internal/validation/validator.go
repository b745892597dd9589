package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/labstack/echo/v4"
)

type violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Messenger is implemented by payloads which replace generic validation message with own one
type Messenger interface {
	ValidationMessage() string
}

// PayloadError is raised when request payload violates validation rules
type PayloadError struct {
	message    string
	violations []violation
}

// NewPayloadError builds PayloadError with provided message
func NewPayloadError(msg string) *PayloadError {
	return &PayloadError{message: msg, violations: make([]violation, 0)}
}

func (e *PayloadError) Error() string {
	if e.message != "" {
		return e.message
	}

	msgs := make([]string, 0, len(e.violations))
	for _, v := range e.violations {
		msgs = append(msgs, v.Message)
	}
	return strings.Join(msgs, "; ")
}

// Violation adds field violation
func (e *PayloadError) Violation(field, msg string) {
	e.violations = append(e.violations, violation{Field: field, Message: msg})
}

// Fields returns names of violated fields
func (e *PayloadError) Fields() []string {
	fields := make([]string, 0, len(e.violations))
	for _, v := range e.violations {
		fields = append(fields, v.Field)
	}
	return fields
}

// MarshalJSON implements json.Marshaler
func (e *PayloadError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Error      string      `json:"error"`
		Violations []violation `json:"violations"`
	}{
		Error:      e.Error(),
		Violations: e.violations,
	})
}

// EchoValidator is echo.Validator backed by go-playground validator
type EchoValidator struct {
	validator  *validator.Validate
	translator ut.Translator
}

// Echo builds EchoValidator
func Echo(validator *validator.Validate, translator ut.Translator) *EchoValidator {
	return &EchoValidator{
		validator:  validator,
		translator: translator,
	}
}

// NewEnglish builds EchoValidator with english messages and json field names
func NewEnglish() (*EchoValidator, error) {
	enLocale := en.New()
	unvTranslator := ut.New(enLocale, enLocale)

	trans, ok := unvTranslator.GetTranslator("en")
	if !ok {
		return nil, errors.New("missing en translations")
	}

	v := validator.New()
	v.RegisterTagNameFunc(jsonTagName)

	if err := enTranslations.RegisterDefaultTranslations(v, trans); err != nil {
		return nil, fmt.Errorf("failed to register en translations - %w", err)
	}

	return Echo(v, trans), nil
}

// Validate implements echo.Validator
func (v *EchoValidator) Validate(i any) error {
	err := v.validator.Struct(i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return v.payloadError(i, ve)
	}

	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

func (v *EchoValidator) payloadError(i any, ve validator.ValidationErrors) error {
	var msg string
	if m, ok := i.(Messenger); ok {
		msg = m.ValidationMessage()
	}

	pldErr := NewPayloadError(msg)
	for _, e := range ve {
		pldErr.Violation(e.Field(), e.Translate(v.translator))
	}
	return pldErr
}

func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}

	if name == "" {
		return fld.Name
	}
	return name
}
