package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hitoshi/contactbook/internal/model"
)

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v\nraw: %s", err, w.Body.String())
	}
	return body
}

// TestWriteError_ValidationError は検証エラーが全フィールド付きの400になることを検証する。
func TestWriteError_ValidationError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, &model.ValidationError{Fields: []model.FieldError{
		{Path: "username", Message: "is required"},
		{Path: "password", Message: "is required"},
	}})

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	errs, ok := decodeBody(t, w)["errors"].([]any)
	if !ok {
		t.Fatalf("errors should be a list, got %T", decodeBody(t, w)["errors"])
	}
	if len(errs) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(errs))
	}
	first := errs[0].(map[string]any)
	if first["path"] != "username" || first["message"] != "is required" {
		t.Errorf("first field error = %v", first)
	}
}

// TestWriteError_APIError はドメインエラーがコード対応のステータスとメッセージになることを検証する。
func TestWriteError_APIError(t *testing.T) {
	tests := []struct {
		err        *model.APIError
		wantStatus int
	}{
		{model.NewNotFoundError(model.MsgContactNotFound), http.StatusNotFound},
		{model.NewUnauthorizedError(model.MsgInvalidCredentials), http.StatusUnauthorized},
		{model.NewConflictError(model.MsgUsernameAlreadyExists), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.err.Code, func(t *testing.T) {
			w := httptest.NewRecorder()
			// ラップされていても判別できること
			WriteError(w, fmt.Errorf("wrapped: %w", tt.err))

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if got := decodeBody(t, w)["errors"]; got != tt.err.Message {
				t.Errorf("errors = %v, want %q", got, tt.err.Message)
			}
		})
	}
}

// TestWriteError_Unexpected は想定外のエラーが500と生のメッセージになることを検証する。
func TestWriteError_Unexpected(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, errors.New("connection refused"))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	if got := decodeBody(t, w)["errors"]; got != "connection refused" {
		t.Errorf("errors = %v, want raw message", got)
	}
}

func TestWriteData_WrapsInDataField(t *testing.T) {
	w := httptest.NewRecorder()
	WriteData(w, &model.UserResponse{Username: "testing", Name: "Testing"})

	body := decodeBody(t, w)
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("data should be an object, got %T", body["data"])
	}
	if data["username"] != "testing" {
		t.Errorf("username = %v", data["username"])
	}
	if _, ok := data["token"]; ok {
		t.Error("token must be omitted when empty")
	}
	if _, ok := body["paging"]; ok {
		t.Error("paging must be omitted for single resources")
	}
}

func TestWritePage_IncludesPaging(t *testing.T) {
	w := httptest.NewRecorder()
	WritePage(w, &model.Page[*model.ContactResponse]{
		Data:   []*model.ContactResponse{{ID: 1, FirstName: "aulian"}},
		Paging: model.Paging{CurrentPage: 1, TotalPage: 2, Size: 1},
	})

	body := decodeBody(t, w)
	if data, ok := body["data"].([]any); !ok || len(data) != 1 {
		t.Errorf("data = %v, want 1-element list", body["data"])
	}
	paging, ok := body["paging"].(map[string]any)
	if !ok {
		t.Fatalf("paging missing: %v", body)
	}
	if paging["current_page"] != float64(1) || paging["total_page"] != float64(2) || paging["size"] != float64(1) {
		t.Errorf("paging = %v", paging)
	}
}

func TestWriteInternalServerError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteInternalServerError(w)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	if _, ok := decodeBody(t, w)["errors"].(string); !ok {
		t.Error("errors should be a string")
	}
}
