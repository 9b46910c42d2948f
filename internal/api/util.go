package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/hyukkyo/demon-tournament/internal/constants"
	"github.com/hyukkyo/demon-tournament/internal/engine"
	"github.com/hyukkyo/demon-tournament/internal/keys"
	"github.com/hyukkyo/demon-tournament/internal/service"

	"github.com/gin-gonic/gin"
)

// matchCodeParam returns the normalized :code path parameter, writing a
// 400 response and returning "" when it is malformed.
func matchCodeParam(c *gin.Context) string {
	code := keys.NormalizeMatchCode(c.Param("code"))
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidMatchCode})
	}
	return code
}

// bindOptionalJSON decodes the request body into v when there is one. It
// writes a 400 response and returns false on malformed JSON.
func bindOptionalJSON(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return false
	}
	return true
}

// writeServiceError maps controller errors onto HTTP responses.
func writeServiceError(c *gin.Context, err error, fallback string) {
	var se *engine.SelectionError
	if errors.As(err, &se) {
		details := gin.H{"slot": se.Slot, "card": se.Card}
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			constants.JSONKeyError:   se.Reason,
			constants.JSONKeyCode:    se.Code,
			constants.JSONKeyDetails: details,
		})
		return
	}

	switch {
	case errors.Is(err, service.ErrMatchNotFound):
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
	case errors.Is(err, service.ErrPlayerNotInMatch):
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrPlayerNotInMatch})
	case errors.Is(err, service.ErrMatchFull):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrMatchFull})
	case errors.Is(err, service.ErrMatchNotInProgress):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrMatchNotInProgress})
	case errors.Is(err, service.ErrSelectionsLocked):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrRoundResolving})
	case errors.Is(err, service.ErrAlreadySubmitted):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrAlreadySubmitted})
	case errors.Is(err, service.ErrAlreadyInMatch):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrAlreadyInMatch})
	case errors.Is(err, service.ErrAlreadyQueued):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrAlreadyInQueue})
	case errors.Is(err, service.ErrNotQueued):
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrNotInQueue})
	case errors.Is(err, service.ErrUnknownCharacter):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUnknownCharacter})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: fallback})
	}
}

// normalizeTimestamps recursively renames GORM timestamp keys from CamelCase
// (CreatedAt, UpdatedAt, DeletedAt) to snake_case keys (created_at, updated_at, deleted_at)
// so clients consistently receive snake_case timestamps. The gorm ID key
// becomes "id".
func normalizeTimestamps(v interface{}) interface{} {
	switch vv := v.(type) {
	case map[string]interface{}:
		for k, val := range vv {
			vv[k] = normalizeTimestamps(val)
		}
		for from, to := range map[string]string{
			"ID":        "id",
			"CreatedAt": "created_at",
			"UpdatedAt": "updated_at",
			"DeletedAt": "deleted_at",
		} {
			if val, ok := vv[from]; ok {
				vv[to] = val
				delete(vv, from)
			}
		}
		return vv
	case []interface{}:
		for i := range vv {
			vv[i] = normalizeTimestamps(vv[i])
		}
		return vv
	default:
		return v
	}
}

// MarshalIntoSnakeTimestamps marshals the given value into JSON, then decodes
// into an interface{} and normalizes timestamp keys to snake_case. It is used
// to produce API responses with consistent snake_case timestamp keys.
func MarshalIntoSnakeTimestamps(v interface{}) (interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return normalizeTimestamps(out), nil
}

// respond writes v as JSON with snake_case gorm keys.
func respond(c *gin.Context, status int, v interface{}, failure string) {
	out, err := MarshalIntoSnakeTimestamps(v)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: failure})
		return
	}
	c.JSON(status, out)
}
