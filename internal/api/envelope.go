// Package api defines the uniform response envelope shared by the REST
// backend and the mock data source, plus runtime shape validation for
// responses arriving off the wire.
package api

// Pagination carries list metadata in the envelope.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Response is the uniform single-item envelope: { success, data, message?, error? }.
type Response[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ListResponse is the uniform list envelope, additionally carrying pagination.
type ListResponse[T any] struct {
	Success    bool        `json:"success"`
	Data       []T         `json:"data"`
	Message    string      `json:"message,omitempty"`
	Error      string      `json:"error,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}
