package handler

import (
	"context"
	"net/http"

	"github.com/RoyceAzure/lab/pos/internal/api/dto"
	"github.com/RoyceAzure/lab/pos/internal/api/response"
	"github.com/RoyceAzure/lab/pos/internal/domain/model"
)

type ContactService interface {
	ListClients(ctx context.Context) ([]model.Client, error)
	SaveClient(ctx context.Context, client *model.Client) error
	DeleteClient(ctx context.Context, id uint) error
	ListSuppliers(ctx context.Context) ([]model.Supplier, error)
	SaveSupplier(ctx context.Context, supplier *model.Supplier) error
	DeleteSupplier(ctx context.Context, id uint) error
}

type ContactHandler struct {
	contacts ContactService
}

func NewContactHandler(contacts ContactService) *ContactHandler {
	if contacts == nil {
		panic("contacts cannot be nil")
	}
	return &ContactHandler{contacts: contacts}
}

func (h *ContactHandler) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.contacts.ListClients(r.Context())
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	response.SuccessJSON(w, clients)
}

func (h *ContactHandler) CreateClient(w http.ResponseWriter, r *http.Request) {
	h.saveClient(w, r, 0)
}

func (h *ContactHandler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	h.saveClient(w, r, id)
}

func (h *ContactHandler) saveClient(w http.ResponseWriter, r *http.Request, id uint) {
	var in dto.ClientDTO
	if err := decodeJSON(r, &in); err != nil {
		response.ErrorJSON(w, err)
		return
	}
	client := in.ToModel(id)
	if err := h.contacts.SaveClient(r.Context(), client); err != nil {
		response.ErrorJSON(w, err)
		return
	}
	if id == 0 {
		response.CreatedJSON(w, client)
		return
	}
	response.SuccessJSON(w, client)
}

func (h *ContactHandler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	if err := h.contacts.DeleteClient(r.Context(), id); err != nil {
		response.ErrorJSON(w, err)
		return
	}
	response.SuccessJSON(w, nil)
}

func (h *ContactHandler) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.contacts.ListSuppliers(r.Context())
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	response.SuccessJSON(w, suppliers)
}

func (h *ContactHandler) CreateSupplier(w http.ResponseWriter, r *http.Request) {
	h.saveSupplier(w, r, 0)
}

func (h *ContactHandler) UpdateSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	h.saveSupplier(w, r, id)
}

func (h *ContactHandler) saveSupplier(w http.ResponseWriter, r *http.Request, id uint) {
	var in dto.SupplierDTO
	if err := decodeJSON(r, &in); err != nil {
		response.ErrorJSON(w, err)
		return
	}
	supplier := in.ToModel(id)
	if err := h.contacts.SaveSupplier(r.Context(), supplier); err != nil {
		response.ErrorJSON(w, err)
		return
	}
	if id == 0 {
		response.CreatedJSON(w, supplier)
		return
	}
	response.SuccessJSON(w, supplier)
}

func (h *ContactHandler) DeleteSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	if err := h.contacts.DeleteSupplier(r.Context(), id); err != nil {
		response.ErrorJSON(w, err)
		return
	}
	response.SuccessJSON(w, nil)
}
