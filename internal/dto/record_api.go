package dto

import "encoding/json"

// Keys the record API uses for the record list inside a list response, in
// the order they are tried. Newer endpoints answer
// {"data": [...], "meta": {"count": N}}; older ones use "items" or "results".
var ListEnvelopeKeys = []string{"data", "items", "results"}

// ListMetaKey is the key of the pagination metadata object.
const ListMetaKey = "meta"

// ListMeta carries pagination metadata. Count is the collection total and is
// only trusted when it is a JSON number.
type ListMeta struct {
	Count     json.RawMessage `json:"count"`
	Page      json.RawMessage `json:"page"`
	PageSize  json.RawMessage `json:"pageSize"`
	TotalPage json.RawMessage `json:"totalPage"`
}

// RecordAPIErrorResponse is the error body the record API returns on
// non-2xx statuses.
type RecordAPIErrorResponse struct {
	Errors []RecordAPIErrorDetail `json:"errors"`
}

type RecordAPIErrorDetail struct {
	Message string `json:"message"`
}

// FirstMessage returns the first error message, or "" when there is none.
func (r *RecordAPIErrorResponse) FirstMessage() string {
	for _, e := range r.Errors {
		if e.Message != "" {
			return e.Message
		}
	}
	return ""
}
