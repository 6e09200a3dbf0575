package omeka

import "fmt"

// apiError represents an error response from the Omeka installation.
type apiError struct {
	StatusCode int
	Message    string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("omeka: %s (status %d)", e.Message, e.StatusCode)
}

type ClientError struct {
	Message string
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("omeka client: %s", e.Message)
}
