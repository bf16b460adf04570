package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	fioRegexp   = regexp.MustCompile(`^([А-ЯЁ][а-яё-]+\s){1,2}[А-ЯЁ][а-яё-]+$`)
	phoneRegexp = regexp.MustCompile(`^\+7\d{10}$`)
	emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)
	linkRegexp  = regexp.MustCompile(`^https?://\S+$`)
)

const (
	MaxNameLength = 100
	MaxLinkLength = 255
)

// ValidateFIO проверяет ФИО кириллицей: "Фамилия Имя" или "Фамилия Имя Отчество"
func ValidateFIO(s string) error {
	if !fioRegexp.MatchString(s) || len([]rune(s)) > MaxNameLength {
		return fmt.Errorf("%w: fio %q", ErrInvalidValue, s)
	}
	return nil
}

// ValidatePhone проверяет номер вида +7XXXXXXXXXX
func ValidatePhone(s string) error {
	if !phoneRegexp.MatchString(s) {
		return fmt.Errorf("%w: phone %q", ErrInvalidValue, s)
	}
	return nil
}

func ValidateEmail(s string) error {
	if !emailRegexp.MatchString(s) || len(s) > MaxLinkLength {
		return fmt.Errorf("%w: email %q", ErrInvalidValue, s)
	}
	return nil
}

func ValidateLink(s string) error {
	if !linkRegexp.MatchString(s) || len(s) > MaxLinkLength {
		return fmt.Errorf("%w: link %q", ErrInvalidValue, s)
	}
	return nil
}

// ValidateName проверяет непустое название до 100 символов
func ValidateName(s string) error {
	n := len([]rune(strings.TrimSpace(s)))
	if n == 0 || n > MaxNameLength {
		return fmt.Errorf("%w: name length %d", ErrInvalidValue, n)
	}
	return nil
}

// ParseMinutes принимает только цифры, значение 0..59
func ParseMinutes(s string) (int, error) {
	if s == "" || strings.TrimLeft(s, "0123456789") != "" {
		return 0, fmt.Errorf("%w: minutes %q", ErrInvalidValue, s)
	}
	m, err := strconv.Atoi(s)
	if err != nil || m > 59 {
		return 0, fmt.Errorf("%w: minutes %q", ErrInvalidValue, s)
	}
	return m, nil
}

// ParsePositive принимает целое число больше нуля
func ParsePositive(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: number %q", ErrInvalidValue, s)
	}
	return n, nil
}
