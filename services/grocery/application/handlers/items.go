package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/grocerylists/pkg/errhttp"
	"github.com/ghuser/grocerylists/pkg/httpx"
	pkgvalidator "github.com/ghuser/grocerylists/pkg/validator"
	appsvcs "github.com/ghuser/grocerylists/services/grocery/application/services"
	"github.com/ghuser/grocerylists/services/grocery/domain"
	"github.com/ghuser/grocerylists/services/grocery/domain/models"
)

// PostItemHandler handles POST /grocery-lists/{list_id}/items requests.
type PostItemHandler struct {
	svc  *appsvcs.Services
	errs errhttp.Writer
}

// NewPostItemHandler returns a PostItemHandler backed by the given services.
func NewPostItemHandler(svc *appsvcs.Services, errs errhttp.Writer) *PostItemHandler {
	return &PostItemHandler{svc: svc, errs: errs}
}

// Execute adds an item at the end of a list.
//
//	@Summary		Add item
//	@Description	Appends an item to the list; quantity defaults to 1 and category to ""
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			list_id	path		string				true	"List ID"
//	@Param			request	body		CreateItemRequest	true	"Item creation request"
//	@Success		201		{object}	ItemResponse
//	@Failure		400		{object}	ValidationErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/grocery-lists/{list_id}/items [post]
func (h *PostItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateItemRequest](w, r)
	if !ok {
		return
	}

	var quantity float64
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	item, err := h.svc.Grocery.AddItem(r.Context(), chi.URLParam(r, "list_id"), req.Name, quantity, req.Category)
	if err != nil {
		h.errs.Write(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toItemResponse(item))
}

// PutItemHandler handles PUT /grocery-lists/{list_id}/items/{item_id} requests.
type PutItemHandler struct {
	svc  *appsvcs.Services
	errs errhttp.Writer
}

// NewPutItemHandler returns a PutItemHandler backed by the given services.
func NewPutItemHandler(svc *appsvcs.Services, errs errhttp.Writer) *PutItemHandler {
	return &PutItemHandler{svc: svc, errs: errs}
}

// Execute updates the supplied fields of an item.
//
//	@Summary		Update item
//	@Description	Updates name, quantity, category, position and checked; a new position renumbers the list
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			list_id	path		string				true	"List ID"
//	@Param			item_id	path		string				true	"Item ID"
//	@Param			request	body		UpdateItemRequest	true	"Fields to update"
//	@Success		200		{object}	ItemResponse
//	@Failure		400		{object}	ValidationErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/grocery-lists/{list_id}/items/{item_id} [put]
func (h *PutItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[UpdateItemRequest](w, r)
	if !ok {
		return
	}

	patch, err := req.toPatch()
	if err != nil {
		h.errs.Write(w, err)
		return
	}

	item, err := h.svc.Grocery.UpdateItem(r.Context(), chi.URLParam(r, "list_id"), chi.URLParam(r, "item_id"), patch)
	if err != nil {
		h.errs.Write(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toItemResponse(item))
}

func (req *UpdateItemRequest) toPatch() (models.ItemPatch, error) {
	patch := models.ItemPatch{
		Quantity: req.Quantity,
		Category: req.Category,
		Position: req.Position,
		Checked:  req.Checked,
	}
	if req.Name != nil {
		name, err := models.NewItemName(*req.Name)
		if err != nil {
			return models.ItemPatch{}, fmt.Errorf("%w: %w", domain.ErrInvalidItemName, err)
		}
		patch.Name = &name
	}
	return patch, nil
}

// DeleteItemHandler handles DELETE /grocery-lists/{list_id}/items/{item_id} requests.
type DeleteItemHandler struct {
	svc  *appsvcs.Services
	errs errhttp.Writer
}

// NewDeleteItemHandler returns a DeleteItemHandler backed by the given services.
func NewDeleteItemHandler(svc *appsvcs.Services, errs errhttp.Writer) *DeleteItemHandler {
	return &DeleteItemHandler{svc: svc, errs: errs}
}

// Execute removes an item and renumbers the remaining positions.
//
//	@Summary		Delete item
//	@Tags			items
//	@Produce		json
//	@Param			list_id	path		string	true	"List ID"
//	@Param			item_id	path		string	true	"Item ID"
//	@Success		200		{object}	ItemResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/grocery-lists/{list_id}/items/{item_id} [delete]
func (h *DeleteItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	item, err := h.svc.Grocery.DeleteItem(r.Context(), chi.URLParam(r, "list_id"), chi.URLParam(r, "item_id"))
	if err != nil {
		h.errs.Write(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toItemResponse(item))
}
