package handler

import (
	"context"
	"net/http"

	"github.com/hitoshi/contactbook/internal/middleware"
	"github.com/hitoshi/contactbook/internal/model"
	"github.com/hitoshi/contactbook/internal/user"
	"github.com/hitoshi/contactbook/internal/validation"
)

// UserServiceInterface はユーザーハンドラーが必要とするサービスインターフェース。
type UserServiceInterface interface {
	Register(ctx context.Context, req validation.RegisterUserRequest) (*model.UserResponse, error)
	Login(ctx context.Context, req validation.LoginUserRequest) (*model.UserResponse, error)
	Get(ctx context.Context, u *model.User) *model.UserResponse
	Update(ctx context.Context, u *model.User, req validation.UpdateUserRequest) (*model.UserResponse, error)
	Logout(ctx context.Context, u *model.User) (*model.UserResponse, error)
}

// UserHandler はユーザー登録・認証・プロフィールのHTTPハンドラー。
type UserHandler struct {
	service UserServiceInterface
}

// NewUserHandler はUserHandlerを生成する。
func NewUserHandler(service UserServiceInterface) *UserHandler {
	return &UserHandler{service: service}
}

// Register はユーザーを登録する。
// POST /api/users
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req validation.RegisterUserRequest
	if err := decodeJSON(r, &req); err != nil {
		handleServiceError(w, err)
		return
	}

	resp, err := h.service.Register(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	middleware.WriteData(w, resp)
}

// Login は認証情報を検証し、トークンを含むユーザー情報を返す。
// POST /api/users/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req validation.LoginUserRequest
	if err := decodeJSON(r, &req); err != nil {
		handleServiceError(w, err)
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	middleware.WriteData(w, resp)
}

// Current は認証済みユーザーの情報を返す。
// GET /api/users/current
func (h *UserHandler) Current(w http.ResponseWriter, r *http.Request) {
	u, err := currentUser(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	middleware.WriteData(w, h.service.Get(r.Context(), u))
}

// UpdateCurrent は認証済みユーザーのnameとpasswordを更新する。
// PATCH /api/users/current
func (h *UserHandler) UpdateCurrent(w http.ResponseWriter, r *http.Request) {
	u, err := currentUser(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	var req validation.UpdateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		handleServiceError(w, err)
		return
	}

	resp, err := h.service.Update(r.Context(), u, req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	middleware.WriteData(w, resp)
}

// Logout はトークンを無効化する。
// DELETE /api/users/current
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	u, err := currentUser(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if _, err := h.service.Logout(r.Context(), u); err != nil {
		handleServiceError(w, err)
		return
	}

	middleware.WriteData(w, user.LogoutMessage)
}
