package validation_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/products-api/internal/validation"
)

func TestToProblemDetails(t *testing.T) {
	t.Parallel()

	t.Run("fixed envelope", func(t *testing.T) {
		t.Parallel()

		problem := validation.ToProblemDetails([]validation.Failure{{Field: "Name", Message: "name is required"}})

		assert.Equal(t, "ValidationError", problem.Type)
		assert.Equal(t, "invalid request", problem.Title)
		assert.Equal(t, "invalid request, please check the error list for more details", problem.Detail)
		assert.Equal(t, http.StatusBadRequest, problem.Status)
		assert.Equal(t, map[string]string{"Name": "name is required"}, problem.Errors)
	})

	t.Run("last write wins", func(t *testing.T) {
		t.Parallel()

		problem := validation.ToProblemDetails([]validation.Failure{
			{Field: "", Message: "instance is null"},
			{Field: "Id", Message: "id is required"},
			{Field: "", Message: "request could not be validated"},
		})

		assert.Equal(t, map[string]string{
			"":   "request could not be validated",
			"Id": "id is required",
		}, problem.Errors)
	})

	t.Run("json shape", func(t *testing.T) {
		t.Parallel()

		problem := validation.ToProblemDetails(nil)

		body, err := json.Marshal(&problem)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"type": "ValidationError",
			"title": "invalid request",
			"detail": "invalid request, please check the error list for more details",
			"status": 400,
			"errors": {}
		}`, string(body))
	})
}
