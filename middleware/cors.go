package middleware

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// UploadAuthAllowHeaders is the header list browsers may send to the
// credential minting endpoint.
const UploadAuthAllowHeaders = "authorization, x-client-info, apikey, content-type"

// AdminCORS allows the admin UI origins to call the API with credentials.
// Requests for skipPaths pass through untouched so that routes with their
// own CORS policy can sit on the same engine.
func AdminCORS(origins []string, skipPaths ...string) gin.HandlerFunc {
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
		log.Println("WARNING: No CORS origins configured, defaulting to http://localhost:3000")
	}

	handler := cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	})

	return func(c *gin.Context) {
		for _, p := range skipPaths {
			if c.Request.URL.Path == p {
				c.Next()
				return
			}
		}
		handler(c)
	}
}

// UploadAuthCORS opens the minting endpoint to any origin. Every response,
// preflight or not, carries the headers, and OPTIONS is answered with 200
// before the handler runs.
func UploadAuthCORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", UploadAuthAllowHeaders)

		if c.Request.Method == http.MethodOptions {
			c.String(http.StatusOK, "ok")
			c.Abort()
			return
		}
		c.Next()
	}
}
