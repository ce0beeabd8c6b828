package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// EmailPattern допустимый формат email: что-то@что-то.что-то без пробелов
var EmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// PhonePattern допустимый формат телефона: необязательный "+",
// затем не меньше 10 цифр, пробелов, дефисов или скобок
var PhonePattern = regexp.MustCompile(`^\+?[\d\s\-()]{10,}$`)

// MinPasswordLen минимальная длина пароля
const MinPasswordLen = 6

// Сообщения об ошибках, которые показываются пользователю как есть
const (
	MessageRequired      = "All fields are required"
	MessageInvalidEmail  = "Please enter a valid email address"
	MessageInvalidPhone  = "Please enter a valid phone number"
	MessageShortPassword = "Password must be at least 6 characters long"
)

// Registration набор полей формы регистрации
type Registration struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	Password    string
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// встроенный тег email строже, чем нужно; используем свои шаблоны
	mustRegister(v, "loose_email", EmailPattern)
	mustRegister(v, "loose_phone", PhonePattern)

	return v
}

func mustRegister(v *validator.Validate, tag string, pattern *regexp.Regexp) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return pattern.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(err)
	}
}

// ValidateRegistration проверяет поля регистрации и возвращает первое
// нарушение в порядке: пустые поля, email, телефон, длина пароля.
func ValidateRegistration(r Registration) error {
	for _, field := range []struct {
		name  string
		value string
	}{
		{"firstName", r.FirstName},
		{"lastName", r.LastName},
		{"email", r.Email},
		{"phoneNumber", r.PhoneNumber},
		{"password", r.Password},
	} {
		if validate.Var(field.value, "required") != nil {
			return &Error{Field: field.name, Message: MessageRequired}
		}
	}

	if err := ValidateEmail(r.Email); err != nil {
		return err
	}

	if err := ValidatePhone(r.PhoneNumber); err != nil {
		return err
	}

	if validate.Var(r.Password, "min=6") != nil {
		return &Error{Field: "password", Message: MessageShortPassword}
	}

	return nil
}

// ValidateEmail проверяет формат email
func ValidateEmail(email string) error {
	if validate.Var(email, "required,loose_email") != nil {
		return &Error{Field: "email", Message: MessageInvalidEmail}
	}
	return nil
}

// ValidatePhone проверяет формат номера телефона
func ValidatePhone(phone string) error {
	if validate.Var(phone, "required,loose_phone") != nil {
		return &Error{Field: "phoneNumber", Message: MessageInvalidPhone}
	}
	return nil
}
