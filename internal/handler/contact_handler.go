package handler

import (
	"context"
	"net/http"

	"github.com/hitoshi/contactbook/internal/middleware"
	"github.com/hitoshi/contactbook/internal/model"
	"github.com/hitoshi/contactbook/internal/validation"
)

// ContactServiceInterface は連絡先ハンドラーが必要とするサービスインターフェース。
type ContactServiceInterface interface {
	Create(ctx context.Context, u *model.User, req validation.CreateContactRequest) (*model.ContactResponse, error)
	Get(ctx context.Context, u *model.User, id int64) (*model.ContactResponse, error)
	Update(ctx context.Context, u *model.User, req validation.UpdateContactRequest) (*model.ContactResponse, error)
	Delete(ctx context.Context, u *model.User, id int64) (string, error)
	Search(ctx context.Context, u *model.User, req validation.SearchContactRequest) (*model.Page[*model.ContactResponse], error)
}

// ContactHandler は連絡先管理のHTTPハンドラー。
type ContactHandler struct {
	service ContactServiceInterface
}

// NewContactHandler はContactHandlerを生成する。
func NewContactHandler(service ContactServiceInterface) *ContactHandler {
	return &ContactHandler{service: service}
}

// Create は連絡先を作成する。
// POST /api/contacts
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	u, err := currentUser(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	var req validation.CreateContactRequest
	if err := decodeJSON(r, &req); err != nil {
		handleServiceError(w, err)
		return
	}

	resp, err := h.service.Create(r.Context(), u, req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	middleware.WriteData(w, resp)
}

// Get は連絡先を1件返す。
// GET /api/contacts/{contactId}
func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, err := currentUser(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	id, err := pathID(r, "contactId", model.MsgContactNotFound)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp, err := h.service.Get(r.Context(), u, id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	middleware.WriteData(w, resp)
}

// Update は連絡先を更新する。IDはボディではなくパスの値を使う。
// PUT /api/contacts/{contactId}
func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	u, err := currentUser(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	id, err := pathID(r, "contactId", model.MsgContactNotFound)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	var req validation.UpdateContactRequest
	if err := decodeJSON(r, &req); err != nil {
		handleServiceError(w, err)
		return
	}
	req.ID = id

	resp, err := h.service.Update(r.Context(), u, req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	middleware.WriteData(w, resp)
}

// Delete は連絡先を削除する。
// DELETE /api/contacts/{contactId}
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	u, err := currentUser(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	id, err := pathID(r, "contactId", model.MsgContactNotFound)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	msg, err := h.service.Delete(r.Context(), u, id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	middleware.WriteData(w, msg)
}

// Search はクエリ条件で連絡先を検索し、ページ情報付きで返す。
// GET /api/contacts?name=&phone=&email=&page=&size=
func (h *ContactHandler) Search(w http.ResponseWriter, r *http.Request) {
	u, err := currentUser(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	req, err := validation.ParseSearchContactRequest(r.URL.Query())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	page, err := h.service.Search(r.Context(), u, req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	middleware.WritePage(w, page)
}
