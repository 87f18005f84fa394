package common

// HttpResponse is the envelope of every API response. Exactly one of Error and Result is set.
type HttpResponse[T any] struct {
	Error  *string `json:"error"`
	Result *T      `json:"result,omitempty"`
}
