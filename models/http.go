package models

// ErrorResponse is the JSON body written for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Status reports whether the backing stores answer a ping.
type Status struct {
	Redis bool `json:"redis"`
	DB    bool `json:"db"`
}

// Stats carries live document counts.
type Stats struct {
	Users int64 `json:"users"`
	Files int64 `json:"files"`
}
