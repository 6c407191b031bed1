package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/CoreDX1/File-Explorer-2/internal/core/monad"
)

// respond writes the result: the success payload with the given status,
// or the failure's own status and message. The fault status carries the
// HTTP code directly, so no mapping table is needed.
func respond[T any](c *gin.Context, successStatus int, result monad.Result[T]) {
	if result.IsFailure() {
		failure := result.Err()
		c.JSON(failure.Status, NewErrorResponse(c, failure.Message))
		return
	}
	c.JSON(successStatus, result.Value())
}

// respondMessage is respond for Unit results, emitting a message body on
// success instead of an empty object.
func respondMessage(c *gin.Context, successStatus int, result monad.Result[monad.Unit], message string) {
	if result.IsFailure() {
		failure := result.Err()
		c.JSON(failure.Status, NewErrorResponse(c, failure.Message))
		return
	}
	c.JSON(successStatus, MessageResponse{Message: message})
}
