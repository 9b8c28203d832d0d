package internal

import (
	"net/http"
	"tarotstats/internal/controllers"
	"tarotstats/internal/providers"
)

func InitRoutes(apiController *controllers.ApiController, adminController *controllers.AdminController, limiter providers.RateLimiterInterface) providers.RouterProviderInterface {
	routes := providers.NewRouterProvider()

	routes.Handle(http.MethodPost, "/api/track", limiter.Handler(http.HandlerFunc(apiController.Track)))
	routes.Handle(http.MethodGet, "/api/stats", http.HandlerFunc(apiController.GetStats))
	routes.Handle(http.MethodGet, "/api/admin/stats", http.HandlerFunc(adminController.Stats))
	routes.Handle(http.MethodGet, "/api/admin/export.csv", http.HandlerFunc(adminController.ExportCSV))
	return routes
}
