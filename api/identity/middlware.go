package identity

import (
	"net/http"
	"strings"

	"github.com/beka-birhanu/vinom-pcg/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// ContextOperatorClaims is the key used to store operator claims in the Gin context.
	ContextOperatorClaims = "operatorClaims"

	// ContextOperatorID is the key used to store the authenticated operator's ID.
	ContextOperatorID = "operatorID"
)

// Authoriz rejects requests without a valid bearer token and stores the operator in the
// request context.
func Authoriz(ts i.Tokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		// Split the "Bearer" prefix from the token.
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		claims, err := ts.Decode(parts[1])
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		raw, _ := claims["operatorID"].(string)
		operatorID, err := uuid.Parse(raw)
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set(ContextOperatorClaims, claims)
		c.Set(ContextOperatorID, operatorID)
		c.Next()
	}
}

// OperatorID returns the operator authenticated by Authoriz.
func OperatorID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextOperatorID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
