package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greet-marketplace/service-bookings/internal/domain/shared"
)

// Success writes a 200 with the given payload.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// Created writes a 201 with the given payload.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"data": data})
}

// Paginated writes a 200 with a page of items and paging metadata.
func Paginated(c *gin.Context, items interface{}, total int64, page, limit int) {
	c.JSON(http.StatusOK, gin.H{
		"data": items,
		"meta": gin.H{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// BadRequest writes a 400 with an error message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"request": message}})
}

// Error maps a domain error to its HTTP status. Unrecognized errors become
// opaque 500s so internal detail never leaks to the caller.
func Error(c *gin.Context, err error) {
	de, ok := shared.AsDomainError(err)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	switch de.Kind {
	case shared.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"errors": gin.H{"resource": de.Message}})
	case shared.KindForbidden:
		c.JSON(http.StatusForbidden, gin.H{"errors": gin.H{"access": de.Message}})
	case shared.KindConflict:
		c.JSON(http.StatusConflict, gin.H{"errors": gin.H{"conflict": de.Message}})
	case shared.KindValidation, shared.KindInvalidState:
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"request": de.Message}})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"request": de.Message}})
	}
}
