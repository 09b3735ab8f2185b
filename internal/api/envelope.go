// Package api implements the remote client: the uniform response envelope,
// the closed failure taxonomy, and an HTTP implementation of the Client
// interface.
package api

// Envelope status discriminators.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope is the wire shape every remote operation returns:
// {"status":"success"|"error","message":...,"data":...}. Data is present only
// on success and may still be null for acknowledgement-only operations.
type Envelope[T any] struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    *T     `json:"data"`
}

// Empty is the payload type of acknowledgement-only responses.
type Empty struct{}

func (e *Envelope[T]) IsSuccess() bool {
	return e.Status == StatusSuccess
}

// Err returns the business failure carried by an error-status envelope,
// or nil for a success envelope.
func (e *Envelope[T]) Err() error {
	if e.IsSuccess() {
		return nil
	}
	return Business(e.Message)
}

// Success builds a synthesized success envelope around data. The repository
// uses it to wrap cache hits served while the remote is unavailable.
func Success[T any](data T, message string) *Envelope[T] {
	return &Envelope[T]{Status: StatusSuccess, Message: message, Data: &data}
}
