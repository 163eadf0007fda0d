package handlers

import (
	"github.com/ghuser/grocerylists/services/grocery/domain/models"
)

// CreateListRequest is the request body for POST /grocery-lists.
type CreateListRequest struct {
	Name string `json:"name" validate:"required" example:"Weekly shop"`
} // @name CreateListRequest

// CreateItemRequest is the request body for POST /grocery-lists/{list_id}/items.
type CreateItemRequest struct {
	Name     string   `json:"name"     validate:"required" example:"Milk"`
	Quantity *float64 `json:"quantity" example:"2"`
	Category string   `json:"category" example:"dairy"`
} // @name CreateItemRequest

// UpdateItemRequest is the request body for PUT /grocery-lists/{list_id}/items/{item_id}.
// Omitted fields keep their current value; any other body field is ignored.
type UpdateItemRequest struct {
	Name     *string  `json:"name"     validate:"omitempty,min=1" example:"Oat milk"`
	Quantity *float64 `json:"quantity" example:"1.5"`
	Category *string  `json:"category" example:"dairy"`
	Position *int     `json:"position" example:"1"`
	Checked  *bool    `json:"checked"  example:"true"`
} // @name UpdateItemRequest

// ItemResponse is the JSON form of an item.
type ItemResponse struct {
	ID       string  `json:"id"       example:"123e4567-e89b-12d3-a456-426614174000"`
	Name     string  `json:"name"     example:"Milk"`
	Quantity float64 `json:"quantity" example:"2"`
	Category string  `json:"category" example:"dairy"`
	Position int     `json:"position" example:"1"`
	Checked  bool    `json:"checked"  example:"false"`
} // @name ItemResponse

// ListResponse is the JSON form of a grocery list with its items.
type ListResponse struct {
	ID          string         `json:"id"           example:"550e8400-e29b-41d4-a716-446655440000"`
	Name        string         `json:"name"         example:"Weekly shop"`
	DateCreated string         `json:"date_created" example:"2024-01-15T10:30:00.000Z"`
	DateUpdated string         `json:"date_updated" example:"2024-01-15T11:02:41.512Z"`
	Items       []ItemResponse `json:"items"`
} // @name ListResponse

// ListSummaryResponse is one entry of GET /grocery-lists.
type ListSummaryResponse struct {
	ListResponse
	ItemCount int `json:"item_count" example:"3"`
} // @name ListSummaryResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"list not found"`
} // @name ErrorResponse

// ValidationErrorResponse is returned when a request body fails validation.
type ValidationErrorResponse struct {
	Error  string            `json:"error"  example:"Validation failed"`
	Fields map[string]string `json:"fields"`
} // @name ValidationErrorResponse

func toItemResponse(item *models.Item) ItemResponse {
	return ItemResponse{
		ID:       item.ID,
		Name:     item.Name.String(),
		Quantity: item.Quantity,
		Category: item.Category,
		Position: item.Position,
		Checked:  item.Checked,
	}
}

func toListResponse(list *models.GroceryList) ListResponse {
	items := make([]ItemResponse, len(list.Items))
	for i, item := range list.Items {
		items[i] = toItemResponse(item)
	}
	return ListResponse{
		ID:          list.ID,
		Name:        list.Name.String(),
		DateCreated: list.DateCreated,
		DateUpdated: list.DateUpdated,
		Items:       items,
	}
}

func toListSummaries(lists []*models.GroceryList) []ListSummaryResponse {
	out := make([]ListSummaryResponse, len(lists))
	for i, list := range lists {
		out[i] = ListSummaryResponse{ListResponse: toListResponse(list), ItemCount: list.ItemCount()}
	}
	return out
}
