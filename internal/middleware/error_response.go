package middleware

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hitoshi/contactbook/internal/model"
)

// ErrorResponseBody はエラーレスポンスの統一フォーマット。
// Errorsは検証エラーならフィールドエラーの配列、それ以外はメッセージ文字列。
type ErrorResponseBody struct {
	Errors any `json:"errors"`
}

// DataResponseBody は成功レスポンスの統一フォーマット。一覧ではPagingも設定する。
type DataResponseBody struct {
	Data   any           `json:"data"`
	Paging *model.Paging `json:"paging,omitempty"`
}

// WriteJSON は任意の値をJSONで書き込む。
func WriteJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

// WriteData は{"data": ...}形式で200レスポンスを書き込む。
func WriteData(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, DataResponseBody{Data: data})
}

// WritePage は{"data": [...], "paging": {...}}形式で200レスポンスを書き込む。
func WritePage[T any](w http.ResponseWriter, page *model.Page[T]) {
	WriteJSON(w, http.StatusOK, DataResponseBody{Data: page.Data, Paging: &page.Paging})
}

// WriteError はエラーをHTTPレスポンスに変換する唯一の境界。
//   - *model.ValidationError: 400、全フィールドのpathとmessageを列挙
//   - *model.APIError: エラーコードに対応するステータス、メッセージ文字列
//   - それ以外: 500、エラーメッセージをそのまま返す（スタックトレースは含めない）
func WriteError(w http.ResponseWriter, err error) {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		WriteJSON(w, http.StatusBadRequest, ErrorResponseBody{Errors: verr.Fields})
		return
	}

	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		WriteJSON(w, apiErr.StatusCode(), ErrorResponseBody{Errors: apiErr.Message})
		return
	}

	slog.Error("unexpected error", slog.String("error", err.Error()))
	WriteJSON(w, http.StatusInternalServerError, ErrorResponseBody{Errors: err.Error()})
}

// WriteInternalServerError はpanic等で詳細を返せない場合の500レスポンスを書き込む。
func WriteInternalServerError(w http.ResponseWriter) {
	WriteJSON(w, http.StatusInternalServerError, ErrorResponseBody{Errors: "internal server error"})
}
