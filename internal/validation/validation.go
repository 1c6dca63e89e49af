// Package validation はリクエストのスキーマ定義と検証を提供する。
// スキーマはvalidateタグ付きの構造体で表し、違反はすべてのフィールドについて一度に収集する。
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hitoshi/contactbook/internal/model"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// エラーのパスにはJSONのフィールド名を使う
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	return v
}

// Validate はreqをスキーマに照らして検証する。
// 違反がある場合は全フィールド分の*model.ValidationErrorを返す。
func Validate(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate request: %w", err)
	}

	fields := make([]model.FieldError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, model.FieldError{
			Path:    fe.Field(),
			Message: fieldMessage(fe),
		})
	}
	return &model.ValidationError{Fields: fields}
}

// fieldMessage は検証タグごとのメッセージを組み立てる。
func fieldMessage(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if isString {
			return fmt.Sprintf("must contain at least %s character(s)", fe.Param())
		}
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("must contain at most %s character(s)", fe.Param())
		}
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "email":
		return "must be a valid email"
	default:
		return fmt.Sprintf("failed on the %q rule", fe.Tag())
	}
}

// merge は複数の検証エラーを1つにまとめる。nilは無視する。
func merge(errs ...error) error {
	var fields []model.FieldError
	for _, err := range errs {
		if err == nil {
			continue
		}
		var verr *model.ValidationError
		if !errors.As(err, &verr) {
			return err
		}
		fields = append(fields, verr.Fields...)
	}
	if len(fields) == 0 {
		return nil
	}
	return &model.ValidationError{Fields: fields}
}
