package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/contactbook/internal/middleware"
	"github.com/hitoshi/contactbook/internal/model"
)

// bodyPath は本文全体に関する検証エラーのパス。
const bodyPath = "body"

// decodeJSON はリクエストボディをJSONとしてvに読み込む。
// 空のボディは全項目省略として扱い、解析できない場合は検証エラーを返す。
func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}

	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return model.NewValidationError(bodyPath, fmt.Sprintf("must not exceed %d bytes", maxErr.Limit))
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return model.NewValidationError(typeErr.Field, fmt.Sprintf("must be of type %s", typeErr.Type))
	}

	return model.NewValidationError(bodyPath, "must be valid JSON")
}

// pathID はURLパスパラメータを正の整数IDとして取り出す。
// IDカラムはINTEGERのため、1からint32の最大値までの範囲外は存在しないIDとして扱う。
func pathID(r *http.Request, name, notFoundMessage string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 32)
	if err != nil || id < 1 {
		return 0, model.NewNotFoundError(notFoundMessage)
	}
	return id, nil
}

// currentUser は認証ミドルウェアが注入したユーザーを返す。
func currentUser(r *http.Request) (*model.User, error) {
	user, err := middleware.UserFromContext(r.Context())
	if err != nil {
		return nil, model.NewUnauthorizedError(model.MsgUnauthorized)
	}
	return user, nil
}

// handleServiceError はサービス層から返されたエラーをレスポンスに変換する。
func handleServiceError(w http.ResponseWriter, err error) {
	middleware.WriteError(w, err)
}
