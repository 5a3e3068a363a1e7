package repos

import (
  "context"
  "errors"
  "path/filepath"
  "testing"
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"

  "github.com/yungbote/taochow-backend/internal/apperr"
  "github.com/yungbote/taochow-backend/internal/db"
  "github.com/yungbote/taochow-backend/internal/logger"
  "github.com/yungbote/taochow-backend/internal/types"
)

func newLocalRepo(t *testing.T, path string) RecipeRepo {
  t.Helper()
  log, err := logger.New("development")
  if err != nil {
    t.Fatalf("logger: %v", err)
  }
  kv, err := db.NewLocalKV(path, log)
  if err != nil {
    t.Fatalf("open local kv: %v", err)
  }
  return NewLocalRecipeRepo(kv, log)
}

func testRecipe(id string) *types.Recipe {
  return &types.Recipe{
    ID:           id,
    Title:        "Test Dish " + id,
    Ingredients:  datatypes.NewJSONSlice([]string{"a", "b"}),
    Instructions: datatypes.NewJSONSlice([]string{"step1"}),
    CreatedAt:    time.Now().UTC(),
    Iterations:   datatypes.NewJSONSlice([]types.Iteration{}),
  }
}

func TestLocal_FirstListSeedsStarterCatalog(t *testing.T) {
  repo := newLocalRepo(t, filepath.Join(t.TempDir(), "taochow.db"))

  recipes, err := repo.List(context.Background())
  if err != nil {
    t.Fatalf("list: %v", err)
  }
  if len(recipes) != 2 {
    t.Fatalf("expected the two starter recipes, got %d", len(recipes))
  }
  if recipes[0].ID != "recipe-001" || recipes[1].ID != "recipe-002" {
    t.Fatalf("unexpected seed ids: %q, %q", recipes[0].ID, recipes[1].ID)
  }
}

func TestLocal_InsertPersistsAcrossReopen(t *testing.T) {
  path := filepath.Join(t.TempDir(), "taochow.db")
  repo := newLocalRepo(t, path)

  if _, err := repo.Insert(context.Background(), testRecipe("abc")); err != nil {
    t.Fatalf("insert: %v", err)
  }

  reopened := newLocalRepo(t, path)
  recipe, err := reopened.GetByKey(context.Background(), "abc")
  if err != nil {
    t.Fatalf("get after reopen: %v", err)
  }
  if recipe.Title != "Test Dish abc" {
    t.Fatalf("unexpected recipe after reopen: %+v", recipe)
  }
}

func TestLocal_LookupPrefersPrimaryId(t *testing.T) {
  repo := newLocalRepo(t, filepath.Join(t.TempDir(), "taochow.db"))
  ctx := context.Background()

  shared := uuid.New()

  // One recipe whose primary id happens to equal another's secondary id.
  first := testRecipe(shared.String())
  second := testRecipe("other")
  second.SecondaryID = shared
  if _, err := repo.Insert(ctx, first); err != nil {
    t.Fatalf("insert first: %v", err)
  }
  if _, err := repo.Insert(ctx, second); err != nil {
    t.Fatalf("insert second: %v", err)
  }

  got, err := repo.GetByKey(ctx, shared.String())
  if err != nil {
    t.Fatalf("get: %v", err)
  }
  if got.ID != first.ID {
    t.Fatalf("primary id must win the tie-break, got %q", got.ID)
  }

  bySecondary, err := repo.GetByKey(ctx, second.SecondaryID.String())
  if err != nil {
    t.Fatalf("get by secondary: %v", err)
  }
  if bySecondary.SecondaryID != shared {
    t.Fatalf("expected secondary lookup to resolve, got %+v", bySecondary)
  }
}

func TestLocal_DeleteByKey(t *testing.T) {
  repo := newLocalRepo(t, filepath.Join(t.TempDir(), "taochow.db"))
  ctx := context.Background()

  if _, err := repo.Insert(ctx, testRecipe("gone")); err != nil {
    t.Fatalf("insert: %v", err)
  }
  if err := repo.DeleteByKey(ctx, "gone"); err != nil {
    t.Fatalf("delete: %v", err)
  }
  if _, err := repo.GetByKey(ctx, "gone"); !apperr.IsNotFound(err) {
    t.Fatalf("expected not found after delete, got %v", err)
  }
  if err := repo.DeleteByKey(ctx, "gone"); !apperr.IsNotFound(err) {
    t.Fatalf("repeated delete must surface not found, got %v", err)
  }
}

func TestLocal_MutateIsAllOrNothing(t *testing.T) {
  path := filepath.Join(t.TempDir(), "taochow.db")
  repo := newLocalRepo(t, path)
  ctx := context.Background()

  if _, err := repo.Insert(ctx, testRecipe("m1")); err != nil {
    t.Fatalf("insert: %v", err)
  }

  boom := errors.New("boom")
  _, err := repo.Mutate(ctx, "m1", func(recipe *types.Recipe) error {
    recipe.Title = "half-applied"
    return boom
  })
  if !errors.Is(err, boom) {
    t.Fatalf("expected the mutation error back, got %v", err)
  }

  // Nothing may be observable from the abandoned mutation.
  reopened := newLocalRepo(t, path)
  recipe, err := reopened.GetByKey(ctx, "m1")
  if err != nil {
    t.Fatalf("get: %v", err)
  }
  if recipe.Title == "half-applied" {
    t.Fatalf("abandoned mutation was persisted")
  }

  if _, err := repo.Mutate(ctx, "missing", func(*types.Recipe) error { return nil }); !apperr.IsNotFound(err) {
    t.Fatalf("mutate on unknown key must be not found, got %v", err)
  }
}
