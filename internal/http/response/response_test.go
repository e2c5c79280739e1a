package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/abdos10/think-like-genius/internal/pkg/errors"
	"github.com/abdos10/think-like-genius/internal/platform/apierr"
)

func respond(t *testing.T, err error) (int, ErrorBody) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	RespondError(c, err)

	var body ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestRespondErrorAPIError(t *testing.T) {
	code, body := respond(t, fmt.Errorf("get skill: %w", apierr.NotFound("Skill not found")))
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Skill not found", body.Message)
}

func TestRespondErrorSentinel(t *testing.T) {
	code, body := respond(t, fmt.Errorf("user 7: %w", pkgerrors.ErrNotFound))
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "user 7: not found", body.Message)
}

func TestRespondErrorHidesInternalText(t *testing.T) {
	code, body := respond(t, errors.New("dial tcp 10.0.0.1:5432: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, internalMessage, body.Message)
}
