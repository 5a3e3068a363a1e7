package server

import (
  "net/http"
  "os"
  "path/filepath"
  "strings"

  "github.com/gin-gonic/gin"
  "github.com/gin-contrib/cors"
  "github.com/yungbote/taochow-backend/internal/handlers"
)

type RouterConfig struct {
  RecipeHandler *handlers.RecipeHandler
  // StaticDir, when set, serves a built web client with non-API routes
  // falling back to index.html for client-side routing.
  StaticDir     string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:80",
      "http://localhost:3000",
      "http://localhost:5174",
    },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

  router.GET("/healthcheck", handlers.HealthCheck)

  api := router.Group("/api")
  {
    api.GET("/health", handlers.Health)
    api.GET("/recipes", cfg.RecipeHandler.ListRecipes)
    api.POST("/recipes", cfg.RecipeHandler.CreateRecipe)
    api.GET("/recipes/:key", cfg.RecipeHandler.GetRecipe)
    api.PUT("/recipes/:key", cfg.RecipeHandler.UpdateRecipe)
    api.DELETE("/recipes/:key", cfg.RecipeHandler.DeleteRecipe)
    api.POST("/recipes/:key/iterations", cfg.RecipeHandler.AddIteration)
    api.DELETE("/recipes/:key/iterations/:iterationId", cfg.RecipeHandler.DeleteIteration)
  }

  if cfg.StaticDir != "" {
    router.NoRoute(func(c *gin.Context) {
      if strings.HasPrefix(c.Request.URL.Path, "/api/") {
        c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "Not found", "code": "not_found"}})
        return
      }
      requested := filepath.Join(cfg.StaticDir, filepath.Clean("/"+c.Request.URL.Path))
      if info, err := os.Stat(requested); err == nil && !info.IsDir() {
        c.File(requested)
        return
      }
      c.File(filepath.Join(cfg.StaticDir, "index.html"))
    })
  }

  return router
}
