package handlers

import (
	"fmt"
	"net/http"
	"github.com/gin-gonic/gin"
	"github.com/yungbote/taochow-backend/internal/apperr"
	"github.com/yungbote/taochow-backend/internal/logger"
	"github.com/yungbote/taochow-backend/internal/services"
	"github.com/yungbote/taochow-backend/internal/types"
)

type RecipeHandler struct {
	log           *logger.Logger
	recipeService services.RecipeService
}

func NewRecipeHandler(log *logger.Logger, recipeService services.RecipeService) *RecipeHandler {
	return &RecipeHandler{
		log:           log.With("handler", "RecipeHandler"),
		recipeService: recipeService,
	}
}

// respond translates service failures to statuses: validation is the caller's
// fault (400), a missed lookup is 404, anything else is a generic 500 whose
// internal cause stays in the log.
func (h *RecipeHandler) respond(c *gin.Context, err error, code, generic string) {
	switch {
	case apperr.IsValidation(err):
		RespondError(c, http.StatusBadRequest, code, err)
	case apperr.IsNotFound(err):
		RespondError(c, http.StatusNotFound, code, err)
	default:
		h.log.Error("Storage failure", "error", err, "code", code)
		RespondError(c, http.StatusInternalServerError, code, fmt.Errorf("%s", generic))
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipeService.List(c.Request.Context())
	if err != nil {
		h.respond(c, err, "list_recipes_failed", "Failed to fetch recipes")
		return
	}
	RespondOK(c, recipes)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipe, err := h.recipeService.Get(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.respond(c, err, "get_recipe_failed", "Failed to fetch recipe")
		return
	}
	RespondOK(c, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var input types.RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request_body", apperr.Validationf("Missing required fields"))
		return
	}
	recipe, err := h.recipeService.Create(c.Request.Context(), input)
	if err != nil {
		h.respond(c, err, "create_recipe_failed", "Failed to create recipe")
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	var input types.RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request_body", apperr.Validationf("Missing required fields"))
		return
	}
	recipe, err := h.recipeService.Update(c.Request.Context(), c.Param("key"), input)
	if err != nil {
		h.respond(c, err, "update_recipe_failed", "Failed to update recipe")
		return
	}
	RespondOK(c, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	if err := h.recipeService.Delete(c.Request.Context(), c.Param("key")); err != nil {
		h.respond(c, err, "delete_recipe_failed", "Failed to delete recipe")
		return
	}
	RespondOK(c, gin.H{"message": "Recipe deleted successfully"})
}

func (h *RecipeHandler) AddIteration(c *gin.Context) {
	var input types.IterationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request_body", apperr.Validationf("Missing required iteration fields"))
		return
	}
	recipe, err := h.recipeService.AddIteration(c.Request.Context(), c.Param("key"), input)
	if err != nil {
		h.respond(c, err, "add_iteration_failed", "Failed to add iteration")
		return
	}
	RespondOK(c, recipe)
}

func (h *RecipeHandler) DeleteIteration(c *gin.Context) {
	recipe, err := h.recipeService.DeleteIteration(c.Request.Context(), c.Param("key"), c.Param("iterationId"))
	if err != nil {
		h.respond(c, err, "delete_iteration_failed", "Failed to delete iteration")
		return
	}
	RespondOK(c, recipe)
}
