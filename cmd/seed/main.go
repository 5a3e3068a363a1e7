package main

import (
  "context"
  "fmt"
  "os"
  "github.com/yungbote/taochow-backend/internal/apperr"
  "github.com/yungbote/taochow-backend/internal/db"
  "github.com/yungbote/taochow-backend/internal/logger"
  "github.com/yungbote/taochow-backend/internal/repos"
  "github.com/yungbote/taochow-backend/internal/seed"
)

// Seeds the shared catalog with the starter recipes. Safe to re-run: recipes
// already present (by id) are left alone.
func main() {
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

  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Error("Postgres auto migration failed", "error", err)
    os.Exit(1)
  }

  ctx := context.Background()
  recipeRepo := repos.NewRecipeRepo(postgresService.DB(), log)

  inserted := 0
  for _, recipe := range seed.Recipes() {
    _, err := recipeRepo.GetByKey(ctx, recipe.ID)
    if err == nil {
      log.Info("Recipe already present, skipping", "recipe_id", recipe.ID, "title", recipe.Title)
      continue
    }
    if !apperr.IsNotFound(err) {
      log.Error("Lookup failed", "error", err, "recipe_id", recipe.ID)
      os.Exit(1)
    }
    if _, err := recipeRepo.Insert(ctx, recipe); err != nil {
      log.Error("Insert failed", "error", err, "recipe_id", recipe.ID)
      os.Exit(1)
    }
    log.Info("Recipe stored", "recipe_id", recipe.ID, "title", recipe.Title)
    inserted++
  }

  recipes, err := recipeRepo.List(ctx)
  if err != nil {
    log.Error("List failed", "error", err)
    os.Exit(1)
  }
  log.Info("Seeding complete", "inserted", inserted, "total", len(recipes))
}
