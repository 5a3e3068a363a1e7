package repos

import (
  "context"
  "errors"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"
  "github.com/yungbote/taochow-backend/internal/apperr"
  "github.com/yungbote/taochow-backend/internal/logger"
  "github.com/yungbote/taochow-backend/internal/types"
)

// RecipeRepo is the storage contract shared by the server-backed store and the
// local fallback store. A lookup key resolves against the primary id first and
// falls back to the store-assigned secondary id only when no primary match
// exists; both implementations apply the rule identically.
type RecipeRepo interface {
  List(ctx context.Context) ([]*types.Recipe, error)
  GetByKey(ctx context.Context, key string) (*types.Recipe, error)
  Insert(ctx context.Context, recipe *types.Recipe) (*types.Recipe, error)
  // DeleteByKey removes the matched recipe and everything it owns. A delete
  // that matches nothing surfaces apperr.ErrNotFound rather than succeeding
  // silently.
  DeleteByKey(ctx context.Context, key string) error
  // Mutate applies fn to the matched recipe as one atomic read-modify-write
  // and returns the stored result. fn returning an error abandons the write.
  Mutate(ctx context.Context, key string, fn func(*types.Recipe) error) (*types.Recipe, error)
}

type recipeRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

// NewRecipeRepo returns the postgres-backed implementation.
func NewRecipeRepo(db *gorm.DB, baseLog *logger.Logger) RecipeRepo {
  repoLog := baseLog.With("repo", "RecipeRepo")
  return &recipeRepo{db: db, log: repoLog}
}

func (r *recipeRepo) List(ctx context.Context) ([]*types.Recipe, error) {
  results := []*types.Recipe{}
  if err := r.db.WithContext(ctx).
    Order("created_at ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *recipeRepo) GetByKey(ctx context.Context, key string) (*types.Recipe, error) {
  return getByKey(ctx, r.db, key)
}

func getByKey(ctx context.Context, tx *gorm.DB, key string) (*types.Recipe, error) {
  var recipe types.Recipe
  err := tx.WithContext(ctx).First(&recipe, "id = ?", key).Error
  if err == nil {
    return &recipe, nil
  }
  if !errors.Is(err, gorm.ErrRecordNotFound) {
    return nil, err
  }
  sid, parseErr := uuid.Parse(key)
  if parseErr != nil {
    return nil, apperr.ErrNotFound
  }
  err = tx.WithContext(ctx).First(&recipe, "secondary_id = ?", sid).Error
  if err == nil {
    return &recipe, nil
  }
  if errors.Is(err, gorm.ErrRecordNotFound) {
    return nil, apperr.ErrNotFound
  }
  return nil, err
}

func (r *recipeRepo) Insert(ctx context.Context, recipe *types.Recipe) (*types.Recipe, error) {
  if recipe.SecondaryID == uuid.Nil {
    recipe.SecondaryID = uuid.New()
  }
  if err := r.db.WithContext(ctx).Create(recipe).Error; err != nil {
    r.log.Error("Insert failed", "error", err, "recipe_id", recipe.ID)
    return nil, err
  }
  return recipe, nil
}

func (r *recipeRepo) DeleteByKey(ctx context.Context, key string) error {
  res := r.db.WithContext(ctx).Delete(&types.Recipe{}, "id = ?", key)
  if res.Error != nil {
    return res.Error
  }
  if res.RowsAffected > 0 {
    return nil
  }
  sid, parseErr := uuid.Parse(key)
  if parseErr != nil {
    return apperr.ErrNotFound
  }
  res = r.db.WithContext(ctx).Delete(&types.Recipe{}, "secondary_id = ?", sid)
  if res.Error != nil {
    return res.Error
  }
  if res.RowsAffected == 0 {
    return apperr.ErrNotFound
  }
  return nil
}

func (r *recipeRepo) Mutate(ctx context.Context, key string, fn func(*types.Recipe) error) (*types.Recipe, error) {
  var mutated *types.Recipe
  err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    locked := tx.Clauses(clause.Locking{Strength: "UPDATE"})
    recipe, err := getByKey(ctx, locked, key)
    if err != nil {
      return err
    }
    if err := fn(recipe); err != nil {
      return err
    }
    if err := tx.WithContext(ctx).Save(recipe).Error; err != nil {
      return err
    }
    mutated = recipe
    return nil
  })
  if err != nil {
    return nil, err
  }
  return mutated, nil
}
