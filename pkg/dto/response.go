package dto

// ErrorResponse is the failure envelope for every endpoint. Error carries the
// underlying detail and is only populated for 500-class responses.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Valid   *bool  `json:"valid,omitempty"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}
