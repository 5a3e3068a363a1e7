package client

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/yungbote/taochow-backend/internal/db"
	"github.com/yungbote/taochow-backend/internal/logger"
	"github.com/yungbote/taochow-backend/internal/repos"
	"github.com/yungbote/taochow-backend/internal/services"
	"github.com/yungbote/taochow-backend/internal/types"
)

// DraftKey holds in-progress form state. It is UI convenience state scoped
// apart from the persisted recipe records and never flows through the store
// contract.
const DraftKey = "taochow_draft"

// Context mediates between the UI and whichever store was reachable at
// startup. The choice is made once: if the remote API does not answer the
// health probe, the session runs against the local store with no retry back
// to remote.
type Context struct {
	mu      sync.RWMutex
	store   services.RecipeService
	kv      *db.LocalKV
	recipes []*types.Recipe
	remote  bool
	log     *logger.Logger
}

// NewContext probes the API once and wires the session to the winning store.
// apiURL includes the /api prefix; kv backs both the fallback store and draft
// state.
func NewContext(ctx context.Context, apiURL string, kv *db.LocalKV, baseLog *logger.Logger) *Context {
	log := baseLog.With("client", "RecipeContext")

	remote := probe(ctx, apiURL)
	var store services.RecipeService
	if remote {
		log.Info("Remote API reachable, using server-backed store", "api_url", apiURL)
		store = NewAPIStore(apiURL, baseLog)
	} else {
		log.Info("Remote API unreachable, falling back to local store for this session")
		store = services.NewRecipeService(repos.NewLocalRecipeRepo(kv, baseLog), nil, baseLog)
	}

	return &Context{
		store:  store,
		kv:     kv,
		remote: remote,
		log:    log,
	}
}

// probe absorbs every failure silently: an unreachable API is the signal to
// fall back, not an error.
func probe(ctx context.Context, apiURL string) bool {
	probeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, apiURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// Remote reports which store won the startup probe.
func (c *Context) Remote() bool {
	return c.remote
}

// Load fills the in-memory recipe list from the selected store.
func (c *Context) Load(ctx context.Context) error {
	recipes, err := c.store.List(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.recipes = recipes
	c.mu.Unlock()
	return nil
}

// Recipes returns the current in-memory list.
func (c *Context) Recipes() []*types.Recipe {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*types.Recipe, len(c.recipes))
	copy(out, c.recipes)
	return out
}

func (c *Context) Get(ctx context.Context, key string) (*types.Recipe, error) {
	return c.store.Get(ctx, key)
}

func (c *Context) CreateRecipe(ctx context.Context, input types.RecipeInput) (*types.Recipe, error) {
	created, err := c.store.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	if c.remote {
		c.mu.Lock()
		c.recipes = append(c.recipes, created)
		c.mu.Unlock()
		return created, nil
	}
	return created, c.Load(ctx)
}

func (c *Context) UpdateRecipe(ctx context.Context, key string, input types.RecipeInput) (*types.Recipe, error) {
	updated, err := c.store.Update(ctx, key, input)
	if err != nil {
		return nil, err
	}
	return updated, c.refresh(ctx, key, updated)
}

func (c *Context) DeleteRecipe(ctx context.Context, key string) error {
	if err := c.store.Delete(ctx, key); err != nil {
		return err
	}
	if c.remote {
		c.mu.Lock()
		kept := c.recipes[:0]
		for _, recipe := range c.recipes {
			if recipe.ID != key && recipe.SecondaryID.String() != key {
				kept = append(kept, recipe)
			}
		}
		c.recipes = kept
		c.mu.Unlock()
		return nil
	}
	return c.Load(ctx)
}

func (c *Context) AddIteration(ctx context.Context, key string, input types.IterationInput) (*types.Recipe, error) {
	updated, err := c.store.AddIteration(ctx, key, input)
	if err != nil {
		return nil, err
	}
	return updated, c.refresh(ctx, key, updated)
}

func (c *Context) DeleteIteration(ctx context.Context, key, iterationID string) (*types.Recipe, error) {
	updated, err := c.store.DeleteIteration(ctx, key, iterationID)
	if err != nil {
		return nil, err
	}
	return updated, c.refresh(ctx, key, updated)
}

// refresh re-derives the in-memory list after a mutation: in place from the
// returned record when remote, by re-listing when local.
func (c *Context) refresh(ctx context.Context, key string, updated *types.Recipe) error {
	if !c.remote {
		return c.Load(ctx)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, recipe := range c.recipes {
		if recipe.ID == key || recipe.SecondaryID.String() == key || recipe.ID == updated.ID {
			c.recipes[i] = updated
			return nil
		}
	}
	c.recipes = append(c.recipes, updated)
	return nil
}

// SaveDraft autosaves an in-progress form under its own key.
func (c *Context) SaveDraft(ctx context.Context, draft types.RecipeInput) error {
	raw, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	return c.kv.Put(ctx, DraftKey, string(raw))
}

func (c *Context) LoadDraft(ctx context.Context) (*types.RecipeInput, bool, error) {
	raw, ok, err := c.kv.Get(ctx, DraftKey)
	if err != nil || !ok {
		return nil, false, err
	}
	var draft types.RecipeInput
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		return nil, false, err
	}
	return &draft, true, nil
}

func (c *Context) ClearDraft(ctx context.Context) error {
	return c.kv.Delete(ctx, DraftKey)
}
