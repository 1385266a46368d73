package response

import "fmt"

// DecodeError means the body could not be read as a JSON value. Body holds the
// raw text that was received.
type DecodeError struct {
	Body string
	Err  error
}

func (e *DecodeError) Error() string {
	return "response is not JSON: " + e.Body
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// RemoteError is an error object returned by the API itself.
type RemoteError struct {
	Code    int
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("response contains error(%d): %s", e.Code, e.Message)
}
