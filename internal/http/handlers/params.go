package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/abdos10/think-like-genius/internal/platform/apierr"
)

// pathID parses a positive integer path parameter.
func pathID(c *gin.Context, name, label string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(c.Param(name)))
	if err != nil || id <= 0 {
		return 0, apierr.BadRequest("Invalid " + label + " ID")
	}
	return id, nil
}

// queryInt parses an optional non-negative integer query parameter; absent
// means 0.
func queryInt(c *gin.Context, name string) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, apierr.BadRequest("Invalid " + name)
	}
	return n, nil
}

const invalidBody = "Invalid request body"
