package model

import (
	"fmt"
	"net/http"
	"strings"
)

// APIError はサービス層が返すドメインエラー。
// HTTPへの変換は境界（middleware.WriteError）でのみ行う。
type APIError struct {
	Code    string // エラーコード
	Message string // クライアントに返すメッセージ
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// StatusCode はエラーコードに対応するHTTPステータスコードを返す。
func (e *APIError) StatusCode() int {
	switch e.Code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeConflict:
		// ユーザー名重複は元の挙動どおり400として返す
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// 定義済みエラーコード
const (
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeConflict     = "CONFLICT"
)

// NewNotFoundError は参照先が存在しない、または所有者が異なる場合のエラーを生成する。
func NewNotFoundError(message string) *APIError {
	return &APIError{Code: ErrCodeNotFound, Message: message}
}

// NewUnauthorizedError は認証失敗エラーを生成する。
func NewUnauthorizedError(message string) *APIError {
	return &APIError{Code: ErrCodeUnauthorized, Message: message}
}

// NewConflictError は一意制約に反する登録のエラーを生成する。
func NewConflictError(message string) *APIError {
	return &APIError{Code: ErrCodeConflict, Message: message}
}

// 各リソースのエラーメッセージ
const (
	MsgUsernameAlreadyExists = "username already exists"
	MsgInvalidCredentials    = "username or password is wrong"
	MsgUnauthorized          = "unauthorized"
	MsgContactNotFound       = "contact is not found"
	MsgAddressNotFound       = "address is not found"
)

// FieldError は1フィールド分の検証エラー。
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError はリクエスト検証で見つかったすべての違反を保持する。
type ValidationError struct {
	Fields []FieldError
}

// Error はerrorインターフェースを実装する。
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Path + ": " + f.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError は単一フィールドの検証エラーを生成する。
func NewValidationError(path, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Path: path, Message: message}}}
}
