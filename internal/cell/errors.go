package cell

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"galvani/internal/redox"
)

// StatusFor maps an engine error onto an HTTP status.
func StatusFor(err error) int {
	switch redox.KindOf(err) {
	case redox.KindNotFound:
		return http.StatusNotFound
	case redox.KindUnknownSpecies, redox.KindDuplicateSelection,
		redox.KindSameElementConflict, redox.KindRoleConflict,
		redox.KindZeroPotentialCell:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes the {"error", "kind"} envelope. Internal failures are
// not echoed to the client.
func RespondError(c *gin.Context, err error) {
	status := StatusFor(err)
	kind := redox.KindOf(err)
	if status == http.StatusInternalServerError {
		if kind == "" {
			kind = "internal"
		}
		c.JSON(status, gin.H{"error": "internal error", "kind": kind})
		return
	}
	c.JSON(status, gin.H{"error": err.Error(), "kind": kind})
}
