package services

import (
  "context"
  "time"

  "gorm.io/datatypes"

  "github.com/yungbote/taochow-backend/internal/apperr"
  "github.com/yungbote/taochow-backend/internal/cache"
  "github.com/yungbote/taochow-backend/internal/ids"
  "github.com/yungbote/taochow-backend/internal/logger"
  "github.com/yungbote/taochow-backend/internal/repos"
  "github.com/yungbote/taochow-backend/internal/types"
)

// RecipeService carries the catalog's mutation semantics: required-field
// validation before any storage touch, id and timestamp assignment, wholesale
// replacement of the updatable field set, and append/remove of the iteration
// log. The same service runs on top of either store implementation, so both
// backends behave identically.
type RecipeService interface {
  List(ctx context.Context) ([]*types.Recipe, error)
  Get(ctx context.Context, key string) (*types.Recipe, error)
  Create(ctx context.Context, input types.RecipeInput) (*types.Recipe, error)
  Update(ctx context.Context, key string, input types.RecipeInput) (*types.Recipe, error)
  Delete(ctx context.Context, key string) error
  AddIteration(ctx context.Context, key string, input types.IterationInput) (*types.Recipe, error)
  DeleteIteration(ctx context.Context, key, iterationID string) (*types.Recipe, error)
}

type recipeService struct {
  repo      repos.RecipeRepo
  listCache cache.RecipeListCache
  log       *logger.Logger
}

// NewRecipeService wraps a store. listCache may be nil, which disables
// caching.
func NewRecipeService(repo repos.RecipeRepo, listCache cache.RecipeListCache, baseLog *logger.Logger) RecipeService {
  serviceLog := baseLog.With("service", "RecipeService")
  return &recipeService{
    repo:      repo,
    listCache: listCache,
    log:       serviceLog,
  }
}

func validateRecipeInput(input types.RecipeInput) error {
  if input.Title == "" || input.Ingredients == nil || input.Instructions == nil {
    return apperr.Validationf("Missing required fields")
  }
  return nil
}

func validateIterationInput(input types.IterationInput) error {
  if input.Chef == "" || input.ChangesMade == "" || input.Outcome == "" {
    return apperr.Validationf("Missing required iteration fields")
  }
  return nil
}

func (s *recipeService) List(ctx context.Context) ([]*types.Recipe, error) {
  if s.listCache != nil {
    if recipes, ok := s.listCache.Get(ctx); ok {
      return recipes, nil
    }
  }
  recipes, err := s.repo.List(ctx)
  if err != nil {
    s.log.Error("List failed", "error", err)
    return nil, err
  }
  if s.listCache != nil {
    s.listCache.Set(ctx, recipes)
  }
  return recipes, nil
}

func (s *recipeService) Get(ctx context.Context, key string) (*types.Recipe, error) {
  return s.repo.GetByKey(ctx, key)
}

func (s *recipeService) Create(ctx context.Context, input types.RecipeInput) (*types.Recipe, error) {
  if err := validateRecipeInput(input); err != nil {
    return nil, err
  }
  recipe := &types.Recipe{
    ID:           ids.New(),
    Title:        input.Title,
    Images:       datatypes.NewJSONSlice(input.CanonicalImages()),
    Ingredients:  datatypes.NewJSONSlice(input.Ingredients),
    Instructions: datatypes.NewJSONSlice(input.Instructions),
    ChefNotes:    input.ChefNotes,
    CreatedAt:    time.Now().UTC(),
    Iterations:   datatypes.NewJSONSlice([]types.Iteration{}),
  }
  stored, err := s.repo.Insert(ctx, recipe)
  if err != nil {
    s.log.Error("Create failed", "error", err, "title", input.Title)
    return nil, err
  }
  s.invalidate(ctx)
  return stored, nil
}

func (s *recipeService) Update(ctx context.Context, key string, input types.RecipeInput) (*types.Recipe, error) {
  if err := validateRecipeInput(input); err != nil {
    return nil, err
  }
  recipe, err := s.repo.Mutate(ctx, key, func(recipe *types.Recipe) error {
    // Replace the updatable field set wholesale; omitted optional fields
    // reset to their defaults. Identity, createdAt and the iteration log
    // are never touched by an update.
    recipe.Title = input.Title
    recipe.Images = datatypes.NewJSONSlice(input.CanonicalImages())
    recipe.Ingredients = datatypes.NewJSONSlice(input.Ingredients)
    recipe.Instructions = datatypes.NewJSONSlice(input.Instructions)
    recipe.ChefNotes = input.ChefNotes
    recipe.UpdatedAt = time.Now().UTC()
    return nil
  })
  if err != nil {
    if !apperr.IsNotFound(err) {
      s.log.Error("Update failed", "error", err, "key", key)
    }
    return nil, err
  }
  s.invalidate(ctx)
  return recipe, nil
}

func (s *recipeService) Delete(ctx context.Context, key string) error {
  if err := s.repo.DeleteByKey(ctx, key); err != nil {
    if !apperr.IsNotFound(err) {
      s.log.Error("Delete failed", "error", err, "key", key)
    }
    return err
  }
  s.invalidate(ctx)
  return nil
}

func (s *recipeService) AddIteration(ctx context.Context, key string, input types.IterationInput) (*types.Recipe, error) {
  if err := validateIterationInput(input); err != nil {
    return nil, err
  }
  iteration := types.Iteration{
    ID:          ids.New(),
    Date:        time.Now().UTC().Format("2006-01-02"),
    Chef:        input.Chef,
    ChangesMade: input.ChangesMade,
    Outcome:     input.Outcome,
    Image:       input.Image,
  }
  recipe, err := s.repo.Mutate(ctx, key, func(recipe *types.Recipe) error {
    recipe.Iterations = append(recipe.Iterations, iteration)
    return nil
  })
  if err != nil {
    if !apperr.IsNotFound(err) {
      s.log.Error("AddIteration failed", "error", err, "key", key)
    }
    return nil, err
  }
  s.invalidate(ctx)
  return recipe, nil
}

func (s *recipeService) DeleteIteration(ctx context.Context, key, iterationID string) (*types.Recipe, error) {
  recipe, err := s.repo.Mutate(ctx, key, func(recipe *types.Recipe) error {
    // Set subtraction: removing an id that is not present leaves the
    // recipe unchanged and still succeeds. Only a missing parent is an
    // error.
    kept := recipe.Iterations[:0]
    for _, iteration := range recipe.Iterations {
      if iteration.ID != iterationID {
        kept = append(kept, iteration)
      }
    }
    recipe.Iterations = kept
    return nil
  })
  if err != nil {
    if !apperr.IsNotFound(err) {
      s.log.Error("DeleteIteration failed", "error", err, "key", key, "iteration_id", iterationID)
    }
    return nil, err
  }
  s.invalidate(ctx)
  return recipe, nil
}

func (s *recipeService) invalidate(ctx context.Context) {
  if s.listCache != nil {
    s.listCache.Invalidate(ctx)
  }
}
