package validation

import (
	"fmt"
	"net/http"
)

// Fixed problem-details values for validation failures.
const (
	ProblemType   = "ValidationError"
	ProblemTitle  = "invalid request"
	ProblemDetail = "invalid request, please check the error list for more details"

	// ContentTypeProblemJSON is the media type problem details are written with.
	ContentTypeProblemJSON = "application/problem+json"
)

// ProblemDetails is the client-facing envelope for validation failures.
//
// It implements error so a handler can return it and let the global error
// handler write it.
type ProblemDetails struct {
	Type   string            `json:"type"`
	Title  string            `json:"title"`
	Detail string            `json:"detail"`
	Status int               `json:"status"`
	Errors map[string]string `json:"errors"`
}

func (p *ProblemDetails) Error() string {
	return fmt.Sprintf("%s: %d field error(s)", p.Title, len(p.Errors))
}

// ToProblemDetails folds failures into a field to message map.
// A field that fails more than once keeps its last message.
func ToProblemDetails(failures []Failure) ProblemDetails {
	fieldErrors := make(map[string]string, len(failures))
	for _, f := range failures {
		fieldErrors[f.Field] = f.Message
	}

	return ProblemDetails{
		Type:   ProblemType,
		Title:  ProblemTitle,
		Detail: ProblemDetail,
		Status: http.StatusBadRequest,
		Errors: fieldErrors,
	}
}
