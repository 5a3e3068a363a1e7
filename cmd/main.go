package main

import (
  "fmt"
  "os"
  "strings"
  "github.com/yungbote/taochow-backend/internal/logger"
  "github.com/yungbote/taochow-backend/internal/utils"
  "github.com/yungbote/taochow-backend/internal/db"
  "github.com/yungbote/taochow-backend/internal/cache"
  "github.com/yungbote/taochow-backend/internal/repos"
  "github.com/yungbote/taochow-backend/internal/services"
  "github.com/yungbote/taochow-backend/internal/handlers"
  "github.com/yungbote/taochow-backend/internal/server"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Error("Postgres auto migration failed", "error", err)
    os.Exit(1)
  }
  thePG := postgresService.DB()

  // Repos
  log.Info("Setting up Repos from main...")
  recipeRepo := repos.NewRecipeRepo(thePG, log)

  // Cache (optional)
  var listCache cache.RecipeListCache
  if strings.TrimSpace(os.Getenv("REDIS_ADDR")) != "" {
    listCache, err = cache.NewRecipeListCache(log)
    if err != nil {
      log.Error("Could not init RecipeListCache", "error", err)
      os.Exit(1)
    }
  }

  // Services
  log.Info("Setting up Services from main...")
  recipeService := services.NewRecipeService(recipeRepo, listCache, log)

  // Handlers
  log.Info("Setting up handlers from main...")
  recipeHandler := handlers.NewRecipeHandler(log, recipeService)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    RecipeHandler: recipeHandler,
    StaticDir:     utils.GetEnv("STATIC_DIR", "", log),
  })

  port := utils.GetEnv("PORT", "5000", log)
  fmt.Printf("Server listening on :%s\n", port)
  if err := router.Run(":" + port); err != nil {
    log.Error("Server failed", "error", err)
    os.Exit(1)
  }
}
