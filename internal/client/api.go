package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/yungbote/taochow-backend/internal/apperr"
	"github.com/yungbote/taochow-backend/internal/logger"
	"github.com/yungbote/taochow-backend/internal/services"
	"github.com/yungbote/taochow-backend/internal/types"
)

// apiStore is the remote implementation of services.RecipeService: every call
// is one HTTP round-trip against the server, which holds the shared catalog.
type apiStore struct {
	baseURL string
	httpc   *http.Client
	log     *logger.Logger
}

// NewAPIStore takes the API base URL including the /api prefix.
func NewAPIStore(baseURL string, log *logger.Logger) services.RecipeService {
	return &apiStore{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 30 * time.Second},
		log:     log.With("client", "APIStore"),
	}
}

func (s *apiStore) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return s.asError(resp)
}

// asError maps the server's error envelope back onto the shared taxonomy so
// callers cannot tell which store answered.
func (s *apiStore) asError(resp *http.Response) error {
	msg := "request failed"
	var envelope struct {
		Error struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Error.Message != "" {
		msg = envelope.Error.Message
	}
	switch resp.StatusCode {
	case http.StatusBadRequest:
		return apperr.Validationf("%s", msg)
	case http.StatusNotFound:
		return apperr.ErrNotFound
	default:
		return fmt.Errorf("server error (%d): %s", resp.StatusCode, msg)
	}
}

func (s *apiStore) List(ctx context.Context) ([]*types.Recipe, error) {
	recipes := []*types.Recipe{}
	if err := s.do(ctx, http.MethodGet, "/recipes", nil, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

func (s *apiStore) Get(ctx context.Context, key string) (*types.Recipe, error) {
	var recipe types.Recipe
	if err := s.do(ctx, http.MethodGet, "/recipes/"+key, nil, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (s *apiStore) Create(ctx context.Context, input types.RecipeInput) (*types.Recipe, error) {
	var recipe types.Recipe
	if err := s.do(ctx, http.MethodPost, "/recipes", input, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (s *apiStore) Update(ctx context.Context, key string, input types.RecipeInput) (*types.Recipe, error) {
	var recipe types.Recipe
	if err := s.do(ctx, http.MethodPut, "/recipes/"+key, input, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (s *apiStore) Delete(ctx context.Context, key string) error {
	return s.do(ctx, http.MethodDelete, "/recipes/"+key, nil, nil)
}

func (s *apiStore) AddIteration(ctx context.Context, key string, input types.IterationInput) (*types.Recipe, error) {
	var recipe types.Recipe
	if err := s.do(ctx, http.MethodPost, "/recipes/"+key+"/iterations", input, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (s *apiStore) DeleteIteration(ctx context.Context, key, iterationID string) (*types.Recipe, error) {
	var recipe types.Recipe
	if err := s.do(ctx, http.MethodDelete, "/recipes/"+key+"/iterations/"+iterationID, nil, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}
