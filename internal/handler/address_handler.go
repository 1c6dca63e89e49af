package handler

import (
	"context"
	"net/http"

	"github.com/hitoshi/contactbook/internal/middleware"
	"github.com/hitoshi/contactbook/internal/model"
	"github.com/hitoshi/contactbook/internal/validation"
)

// AddressServiceInterface は住所ハンドラーが必要とするサービスインターフェース。
type AddressServiceInterface interface {
	Create(ctx context.Context, u *model.User, req validation.CreateAddressRequest) (*model.AddressResponse, error)
	Get(ctx context.Context, u *model.User, req validation.GetAddressRequest) (*model.AddressResponse, error)
	Update(ctx context.Context, u *model.User, req validation.UpdateAddressRequest) (*model.AddressResponse, error)
	Remove(ctx context.Context, u *model.User, req validation.GetAddressRequest) (string, error)
	List(ctx context.Context, u *model.User, contactID int64) ([]*model.AddressResponse, error)
}

// AddressHandler は連絡先配下の住所管理のHTTPハンドラー。
type AddressHandler struct {
	service AddressServiceInterface
}

// NewAddressHandler はAddressHandlerを生成する。
func NewAddressHandler(service AddressServiceInterface) *AddressHandler {
	return &AddressHandler{service: service}
}

// addressPath はパスから(contactId, addressId)を取り出す。
func addressPath(r *http.Request) (validation.GetAddressRequest, error) {
	contactID, err := pathID(r, "contactId", model.MsgContactNotFound)
	if err != nil {
		return validation.GetAddressRequest{}, err
	}
	addressID, err := pathID(r, "addressId", model.MsgAddressNotFound)
	if err != nil {
		return validation.GetAddressRequest{}, err
	}
	return validation.GetAddressRequest{ID: addressID, ContactID: contactID}, nil
}

// Create は住所を作成する。
// POST /api/contacts/{contactId}/addresses
func (h *AddressHandler) Create(w http.ResponseWriter, r *http.Request) {
	u, err := currentUser(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	contactID, err := pathID(r, "contactId", model.MsgContactNotFound)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	var req validation.CreateAddressRequest
	if err := decodeJSON(r, &req); err != nil {
		handleServiceError(w, err)
		return
	}
	req.ContactID = contactID

	resp, err := h.service.Create(r.Context(), u, req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	middleware.WriteData(w, resp)
}

// Get は住所を1件返す。
// GET /api/contacts/{contactId}/addresses/{addressId}
func (h *AddressHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, err := currentUser(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	req, err := addressPath(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp, err := h.service.Get(r.Context(), u, req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	middleware.WriteData(w, resp)
}

// Update は住所を更新する。
// PUT /api/contacts/{contactId}/addresses/{addressId}
func (h *AddressHandler) Update(w http.ResponseWriter, r *http.Request) {
	u, err := currentUser(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	ids, err := addressPath(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	var req validation.UpdateAddressRequest
	if err := decodeJSON(r, &req); err != nil {
		handleServiceError(w, err)
		return
	}
	req.ID = ids.ID
	req.ContactID = ids.ContactID

	resp, err := h.service.Update(r.Context(), u, req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	middleware.WriteData(w, resp)
}

// Remove は住所を削除する。
// DELETE /api/contacts/{contactId}/addresses/{addressId}
func (h *AddressHandler) Remove(w http.ResponseWriter, r *http.Request) {
	u, err := currentUser(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	req, err := addressPath(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	msg, err := h.service.Remove(r.Context(), u, req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	middleware.WriteData(w, msg)
}

// List は連絡先のすべての住所を返す。
// GET /api/contacts/{contactId}/addresses
func (h *AddressHandler) List(w http.ResponseWriter, r *http.Request) {
	u, err := currentUser(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	contactID, err := pathID(r, "contactId", model.MsgContactNotFound)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	list, err := h.service.List(r.Context(), u, contactID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	middleware.WriteData(w, list)
}
