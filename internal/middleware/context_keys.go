package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/inkledger/inkledger_backend/internal/core/domain"
)

// partyIDKey and partyRoleKey store the authenticated party's identity on the
// request context.
const (
	partyIDKey   = contextKey("partyID")
	partyRoleKey = contextKey("partyRole")
)

// GetPartyIDFromContext retrieves the authenticated party ID from the Gin
// context. It returns the ID and a boolean indicating if it was found.
func GetPartyIDFromContext(c *gin.Context) (string, bool) {
	val := c.Request.Context().Value(partyIDKey)
	if val == nil {
		return "", false
	}
	partyID, ok := val.(string)
	return partyID, ok
}

// GetPartyRoleFromContext retrieves the authenticated party's role from the Gin
// context.
func GetPartyRoleFromContext(c *gin.Context) (domain.Role, bool) {
	val := c.Request.Context().Value(partyRoleKey)
	if val == nil {
		return "", false
	}
	role, ok := val.(domain.Role)
	if !ok || !role.Valid() {
		return "", false
	}
	return role, true
}
