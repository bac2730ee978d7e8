package wizard

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout - формат дат при вводе
const DateLayout = "2006-01-02"

var errRequired = errors.New("value is required")

// Text пишет непустую строку в *string
func Text[T any](dst func(*T) **string) func(*T, string) error {
	return func(data *T, value string) error {
		value = strings.TrimSpace(value)
		if value == "" {
			*dst(data) = nil
			return nil
		}
		*dst(data) = &value
		return nil
	}
}

// PlainText - для обязательных строковых полей без указателя
func PlainText[T any](dst func(*T) *string) func(*T, string) error {
	return func(data *T, value string) error {
		*dst(data) = strings.TrimSpace(value)
		return nil
	}
}

func Int[T any](dst func(*T) **int) func(*T, string) error {
	return func(data *T, value string) error {
		value = strings.TrimSpace(value)
		if value == "" {
			*dst(data) = nil
			return nil
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%q is not a whole number", value)
		}
		*dst(data) = &n
		return nil
	}
}

func Float[T any](dst func(*T) **float64) func(*T, string) error {
	return func(data *T, value string) error {
		value = strings.TrimSpace(strings.ReplaceAll(value, ",", "."))
		if value == "" {
			*dst(data) = nil
			return nil
		}
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%q is not a number", value)
		}
		*dst(data) = &f
		return nil
	}
}

func Bool[T any](dst func(*T) **bool) func(*T, string) error {
	return func(data *T, value string) error {
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "":
			*dst(data) = nil
		case "y", "yes", "s", "sim", "true", "1":
			b := true
			*dst(data) = &b
		case "n", "no", "nao", "não", "false", "0":
			b := false
			*dst(data) = &b
		default:
			return fmt.Errorf("%q is not yes/no", value)
		}
		return nil
	}
}

// List разбирает значения через запятую
func List[T any](dst func(*T) *[]string) func(*T, string) error {
	return func(data *T, value string) error {
		*dst(data) = SplitList(value)
		return nil
	}
}

func Date[T any](dst func(*T) **time.Time) func(*T, string) error {
	return func(data *T, value string) error {
		value = strings.TrimSpace(value)
		if value == "" {
			*dst(data) = nil
			return nil
		}
		t, err := time.Parse(DateLayout, value)
		if err != nil {
			return fmt.Errorf("%q is not a date (YYYY-MM-DD)", value)
		}
		*dst(data) = &t
		return nil
	}
}

func SplitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func requireText(name string, v *string) error {
	if v == nil || strings.TrimSpace(*v) == "" {
		return fmt.Errorf("%s: %w", name, errRequired)
	}
	return nil
}
