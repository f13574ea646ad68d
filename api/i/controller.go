package i

import "github.com/gin-gonic/gin"

type Controller interface {
	RegisterPublic(*gin.RouterGroup)
	RegisterProtected(*gin.RouterGroup)
}

// RootController is implemented by controllers that also serve paths
// outside the API base URL, such as /sitemap.xml.
type RootController interface {
	RegisterRoot(gin.IRoutes)
}
