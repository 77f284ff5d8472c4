package models

// Response envelopes. Field naming is the on-the-wire contract the frontend
// depends on, so these stay exactly { message, item } / { items, total } /
// { error }.

// ItemResponse wraps a single stored item.
type ItemResponse struct {
	Message string `json:"message"`
	Item    *Item  `json:"item"`
}

// ListResponse wraps a listing plus its count.
type ListResponse struct {
	Items []Item `json:"items"`
	Total int    `json:"total"`
}

// ErrorResponse is the uniform 4xx/5xx body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// UserResponse wraps a profile record, optionally with a session token.
type UserResponse struct {
	Message string `json:"message,omitempty"`
	User    *User  `json:"user"`
	Token   string `json:"token,omitempty"`
}
