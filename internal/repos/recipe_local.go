package repos

import (
  "context"
  "encoding/json"
  "sync"
  "github.com/yungbote/taochow-backend/internal/apperr"
  "github.com/yungbote/taochow-backend/internal/db"
  "github.com/yungbote/taochow-backend/internal/logger"
  "github.com/yungbote/taochow-backend/internal/seed"
  "github.com/yungbote/taochow-backend/internal/types"
)

// StorageKey is the single well-known key the local fallback store keeps the
// whole recipe sequence under. The sequence is read in full and rewritten in
// full on every mutation; there is no partial-record persistence.
const StorageKey = "taochow_recipes"

type localRecipeRepo struct {
  mu  sync.Mutex
  kv  *db.LocalKV
  log *logger.Logger
}

// NewLocalRecipeRepo returns the fallback implementation persisted only on the
// requesting client. An empty store is initialized with the starter catalog on
// first read, the same way the original browser store seeded itself.
func NewLocalRecipeRepo(kv *db.LocalKV, baseLog *logger.Logger) RecipeRepo {
  repoLog := baseLog.With("repo", "LocalRecipeRepo")
  return &localRecipeRepo{kv: kv, log: repoLog}
}

func (r *localRecipeRepo) loadAll(ctx context.Context) ([]*types.Recipe, error) {
  raw, ok, err := r.kv.Get(ctx, StorageKey)
  if err != nil {
    return nil, err
  }
  if ok {
    var recipes []*types.Recipe
    uerr := json.Unmarshal([]byte(raw), &recipes)
    if uerr == nil {
      return recipes, nil
    }
    r.log.Error("Stored recipes are unreadable, reinitializing from seed", "error", uerr)
  }
  recipes := seed.Recipes()
  if err := r.saveAll(ctx, recipes); err != nil {
    return nil, err
  }
  return recipes, nil
}

func (r *localRecipeRepo) saveAll(ctx context.Context, recipes []*types.Recipe) error {
  raw, err := json.Marshal(recipes)
  if err != nil {
    return err
  }
  return r.kv.Put(ctx, StorageKey, string(raw))
}

// matchIndex applies the shared lookup rule: a pass over primary ids first,
// secondary ids only when nothing matched.
func matchIndex(recipes []*types.Recipe, key string) int {
  for i, recipe := range recipes {
    if recipe.ID == key {
      return i
    }
  }
  for i, recipe := range recipes {
    if recipe.SecondaryID.String() == key {
      return i
    }
  }
  return -1
}

func (r *localRecipeRepo) List(ctx context.Context) ([]*types.Recipe, error) {
  r.mu.Lock()
  defer r.mu.Unlock()
  return r.loadAll(ctx)
}

func (r *localRecipeRepo) GetByKey(ctx context.Context, key string) (*types.Recipe, error) {
  r.mu.Lock()
  defer r.mu.Unlock()
  recipes, err := r.loadAll(ctx)
  if err != nil {
    return nil, err
  }
  idx := matchIndex(recipes, key)
  if idx < 0 {
    return nil, apperr.ErrNotFound
  }
  return recipes[idx], nil
}

func (r *localRecipeRepo) Insert(ctx context.Context, recipe *types.Recipe) (*types.Recipe, error) {
  r.mu.Lock()
  defer r.mu.Unlock()
  recipes, err := r.loadAll(ctx)
  if err != nil {
    return nil, err
  }
  recipes = append(recipes, recipe)
  if err := r.saveAll(ctx, recipes); err != nil {
    return nil, err
  }
  return recipe, nil
}

func (r *localRecipeRepo) DeleteByKey(ctx context.Context, key string) error {
  r.mu.Lock()
  defer r.mu.Unlock()
  recipes, err := r.loadAll(ctx)
  if err != nil {
    return err
  }
  idx := matchIndex(recipes, key)
  if idx < 0 {
    return apperr.ErrNotFound
  }
  recipes = append(recipes[:idx], recipes[idx+1:]...)
  return r.saveAll(ctx, recipes)
}

func (r *localRecipeRepo) Mutate(ctx context.Context, key string, fn func(*types.Recipe) error) (*types.Recipe, error) {
  r.mu.Lock()
  defer r.mu.Unlock()
  recipes, err := r.loadAll(ctx)
  if err != nil {
    return nil, err
  }
  idx := matchIndex(recipes, key)
  if idx < 0 {
    return nil, apperr.ErrNotFound
  }
  if err := fn(recipes[idx]); err != nil {
    return nil, err
  }
  if err := r.saveAll(ctx, recipes); err != nil {
    return nil, err
  }
  return recipes[idx], nil
}
