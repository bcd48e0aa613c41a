package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/workforce-api/internal/domain"
	"github.com/workforce-api/internal/dto"
	"github.com/workforce-api/internal/repository"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Validator проверяет запросы до вызова сервисов: правила полей через
// validator/v10 и бизнес-правила (уникальность, существование отдела) через БД.
type Validator struct {
	validate *validator.Validate
	uows     repository.UnitOfWorkFactory
	now      func() time.Time
}

// Option настраивает Validator
type Option func(*Validator)

// WithClock подменяет источник текущего времени
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		v.now = now
	}
}

// New создаёт валидатор запросов
func New(uows repository.UnitOfWorkFactory, opts ...Option) *Validator {
	v := &Validator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		uows:     uows,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}

	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// правила видят dto.Date как time.Time
	v.validate.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(dto.Date); ok {
			return d.Time
		}
		return nil
	}, dto.Date{})

	// ошибки регистрации возможны только при пустом имени тега
	_ = v.validate.RegisterValidation("notblank", validators.NotBlank)
	_ = v.validate.RegisterValidation("employee_status", func(fl validator.FieldLevel) bool {
		return domain.EmployeeStatus(fl.Field().Int()).Valid()
	})
	_ = v.validate.RegisterValidation("not_future", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		return ok && !t.After(v.now())
	})

	return v
}

// messages - текст ошибки по ключу "поле.тег"
type messages map[string]string

// collector накапливает ошибки полей в порядке обнаружения
type collector struct {
	errs []domain.FieldError
}

func (c *collector) add(property, message string) {
	c.errs = append(c.errs, domain.FieldError{Property: property, Message: message})
}

func (c *collector) result() error {
	if len(c.errs) == 0 {
		return nil
	}
	return &domain.ValidationError{Errors: c.errs}
}

// checkFields применяет теги validate к запросу
func (v *Validator) checkFields(req any, msgs messages, c *collector) error {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate request: %w", err)
	}

	for _, fe := range fieldErrs {
		c.add(fe.Field(), messageFor(msgs, fe))
	}
	return nil
}

func messageFor(msgs messages, fe validator.FieldError) string {
	if msg, ok := msgs[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	return fmt.Sprintf("%s is invalid", humanize(fe.Field()))
}

var titleCaser = cases.Title(language.English)

// humanize превращает camelCase-имя поля в "Title Case"
func humanize(field string) string {
	var b strings.Builder
	for i, r := range field {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return titleCaser.String(b.String())
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
