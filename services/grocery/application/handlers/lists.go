package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/grocerylists/pkg/errhttp"
	"github.com/ghuser/grocerylists/pkg/httpx"
	pkgvalidator "github.com/ghuser/grocerylists/pkg/validator"
	appsvcs "github.com/ghuser/grocerylists/services/grocery/application/services"
	domainsvcs "github.com/ghuser/grocerylists/services/grocery/domain/services"
)

// GetListsHandler handles GET /grocery-lists requests.
type GetListsHandler struct {
	svc  *appsvcs.Services
	errs errhttp.Writer
}

// NewGetListsHandler returns a GetListsHandler backed by the given services.
func NewGetListsHandler(svc *appsvcs.Services, errs errhttp.Writer) *GetListsHandler {
	return &GetListsHandler{svc: svc, errs: errs}
}

// Execute lists every grocery list.
//
//	@Summary		List grocery lists
//	@Description	Returns every grocery list with its items and item count; an unknown sort_by keeps storage order
//	@Tags			grocery-lists
//	@Produce		json
//	@Param			sort_by		query		string	false	"Sort field"	Enums(name, date_created, item_count)	default(date_created)
//	@Param			sort_order	query		string	false	"Sort order"	Enums(asc, desc)						default(desc)
//	@Success		200			{array}		ListSummaryResponse
//	@Router			/grocery-lists [get]
func (h *GetListsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	sortBy := queryOr(r, "sort_by", domainsvcs.DefaultListSortField)
	order := queryOr(r, "sort_order", domainsvcs.DefaultListSortOrder)

	lists := h.svc.Grocery.ListLists(r.Context(), sortBy, order)
	httpx.JSON(w, http.StatusOK, toListSummaries(lists))
}

// GetListHandler handles GET /grocery-lists/{list_id} requests.
type GetListHandler struct {
	svc  *appsvcs.Services
	errs errhttp.Writer
}

// NewGetListHandler returns a GetListHandler backed by the given services.
func NewGetListHandler(svc *appsvcs.Services, errs errhttp.Writer) *GetListHandler {
	return &GetListHandler{svc: svc, errs: errs}
}

// Execute returns one grocery list.
//
//	@Summary		Get grocery list
//	@Description	Returns a list with its items filtered by checked state and sorted ascending
//	@Tags			grocery-lists
//	@Produce		json
//	@Param			list_id			path		string	true	"List ID"
//	@Param			include_checked	query		string	false	"Only 'false' hides checked items"	default(true)
//	@Param			sort_items_by	query		string	false	"Item sort field"	Enums(name, category, position)	default(position)
//	@Success		200				{object}	ListResponse
//	@Failure		400				{object}	ErrorResponse
//	@Failure		404				{object}	ErrorResponse
//	@Router			/grocery-lists/{list_id} [get]
func (h *GetListHandler) Execute(w http.ResponseWriter, r *http.Request) {
	includeChecked := r.URL.Query().Get("include_checked") != "false"
	sortItemsBy := queryOr(r, "sort_items_by", domainsvcs.DefaultItemSortField)

	list, err := h.svc.Grocery.GetList(r.Context(), chi.URLParam(r, "list_id"), includeChecked, sortItemsBy)
	if err != nil {
		h.errs.Write(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toListResponse(list))
}

// PostListHandler handles POST /grocery-lists requests.
type PostListHandler struct {
	svc  *appsvcs.Services
	errs errhttp.Writer
}

// NewPostListHandler returns a PostListHandler backed by the given services.
func NewPostListHandler(svc *appsvcs.Services, errs errhttp.Writer) *PostListHandler {
	return &PostListHandler{svc: svc, errs: errs}
}

// Execute creates a new empty grocery list.
//
//	@Summary		Create grocery list
//	@Tags			grocery-lists
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateListRequest	true	"List creation request"
//	@Success		201		{object}	ListResponse
//	@Failure		400		{object}	ValidationErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/grocery-lists [post]
func (h *PostListHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateListRequest](w, r)
	if !ok {
		return
	}

	list, err := h.svc.Grocery.CreateList(r.Context(), req.Name)
	if err != nil {
		h.errs.Write(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toListResponse(list))
}

// DeleteListHandler handles DELETE /grocery-lists/{list_id} requests.
type DeleteListHandler struct {
	svc  *appsvcs.Services
	errs errhttp.Writer
}

// NewDeleteListHandler returns a DeleteListHandler backed by the given services.
func NewDeleteListHandler(svc *appsvcs.Services, errs errhttp.Writer) *DeleteListHandler {
	return &DeleteListHandler{svc: svc, errs: errs}
}

// Execute deletes a grocery list and all of its items.
//
//	@Summary		Delete grocery list
//	@Tags			grocery-lists
//	@Produce		json
//	@Param			list_id	path		string	true	"List ID"
//	@Success		200		{object}	ListResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/grocery-lists/{list_id} [delete]
func (h *DeleteListHandler) Execute(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.Grocery.DeleteList(r.Context(), chi.URLParam(r, "list_id"))
	if err != nil {
		h.errs.Write(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toListResponse(list))
}

func queryOr(r *http.Request, key, fallback string) string {
	if v := r.URL.Query().Get(key); v != "" {
		return v
	}
	return fallback
}
