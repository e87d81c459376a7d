package i

import "github.com/gin-gonic/gin"

// Controller registers a group of HTTP routes.
type Controller interface {
	RegisterPublic(*gin.RouterGroup)
	RegisterProtected(*gin.RouterGroup)
}
