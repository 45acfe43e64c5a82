package rest

import "github.com/gin-gonic/gin"

type HttpMethod int

const (
	GET HttpMethod = iota
	POST
	PUT
	PATCH
)

type Route struct {
	Method      HttpMethod
	Path        string
	HandlerFunc gin.HandlerFunc
	Group       string
}

func NewRoute(method HttpMethod, group, path string, handler gin.HandlerFunc) Route {
	return Route{
		Method:      method,
		Path:        path,
		Group:       group,
		HandlerFunc: handler,
	}
}

// RegisterRoutes mounts the route list on an engine, grouping by the route
// group prefix.
func RegisterRoutes(router *gin.Engine, routes ...Route) {
	groups := map[string]*gin.RouterGroup{}

	for _, r := range routes {
		if _, exists := groups[r.Group]; !exists {
			groups[r.Group] = router.Group("/" + r.Group)
		}

		group := groups[r.Group]

		switch r.Method {
		case GET:
			group.GET(r.Path, r.HandlerFunc)
		case POST:
			group.POST(r.Path, r.HandlerFunc)
		case PUT:
			group.PUT(r.Path, r.HandlerFunc)
		case PATCH:
			group.PATCH(r.Path, r.HandlerFunc)
		}
	}
}
