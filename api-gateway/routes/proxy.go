package routes

import (
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/gin-gonic/gin"

	"gente-backend/shared/config"
)

// ServiceURLs maps a service name to its base URL.
func ServiceURLs(cfg *config.Config) map[string]string {
	return map[string]string{
		"auth":         cfg.AuthServiceURL,
		"user":         cfg.UserServiceURL,
		"notification": cfg.NotificationServiceURL,
	}
}

// ProxyToService forwards the request to the named backend service.
func ProxyToService(cfg *config.Config, serviceName string) gin.HandlerFunc {
	serviceURLs := ServiceURLs(cfg)

	return func(ctx *gin.Context) {
		serviceURL, exists := serviceURLs[serviceName]
		if !exists {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Service not found", "service": serviceName})
			return
		}

		target, err := url.Parse(serviceURL)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid service URL", "service": serviceName})
			return
		}

		proxy := httputil.NewSingleHostReverseProxy(target)
		proxy.ServeHTTP(ctx.Writer, ctx.Request)
	}
}
