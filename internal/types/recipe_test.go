package types

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

func TestRecipeMarshal_EmitsLegacyImageAlias(t *testing.T) {
	r := Recipe{
		ID:           "abc123",
		Title:        "Kung Pao Chicken",
		Images:       datatypes.NewJSONSlice([]string{"data:image/png;base64,AAA", "data:image/png;base64,BBB"}),
		Ingredients:  datatypes.NewJSONSlice([]string{"chicken"}),
		Instructions: datatypes.NewJSONSlice([]string{"cook"}),
		CreatedAt:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	raw, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal into map: %v", err)
	}
	if m["image"] != "data:image/png;base64,AAA" {
		t.Fatalf("expected image alias to be first of images, got %v", m["image"])
	}
	imgs, ok := m["images"].([]any)
	if !ok || len(imgs) != 2 {
		t.Fatalf("expected 2 images, got %v", m["images"])
	}
}

func TestRecipeMarshal_EmptyOptionalFields(t *testing.T) {
	r := Recipe{ID: "abc123", Title: "Plain"}
	raw, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(raw)
	if !strings.Contains(s, `"image":null`) {
		t.Fatalf("expected explicit null image, got %s", s)
	}
	if !strings.Contains(s, `"iterations":[]`) {
		t.Fatalf("expected iterations to be an empty array, got %s", s)
	}
	if !strings.Contains(s, `"ingredients":[]`) || !strings.Contains(s, `"instructions":[]`) {
		t.Fatalf("expected empty sequences, got %s", s)
	}
	if strings.Contains(s, `"updatedAt"`) {
		t.Fatalf("updatedAt must be absent until first update, got %s", s)
	}
	if strings.Contains(s, `"_id"`) {
		t.Fatalf("_id must be absent when no store id was assigned, got %s", s)
	}
}

func TestRecipeUnmarshal_LegacySingularImage(t *testing.T) {
	var r Recipe
	body := `{"id":"x","title":"t","image":"blob","ingredients":["a"],"instructions":["b"],"chefNotes":"","iterations":[]}`
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(r.Images) != 1 || r.Images[0] != "blob" {
		t.Fatalf("expected singular image folded into images, got %v", r.Images)
	}
}

func TestRecipeUnmarshal_ImagesWinOverImage(t *testing.T) {
	var r Recipe
	body := `{"id":"x","title":"t","image":"old","images":["new1","new2"],"ingredients":[],"instructions":[]}`
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(r.Images) != 2 || r.Images[0] != "new1" {
		t.Fatalf("expected images to win over legacy image, got %v", r.Images)
	}
}

func TestRecipeRoundTrip(t *testing.T) {
	sid := uuid.New()
	img := "iter-blob"
	orig := Recipe{
		SecondaryID:  sid,
		ID:           "rt1",
		Title:        "Mapo Tofu",
		Images:       datatypes.NewJSONSlice([]string{"main-blob"}),
		Ingredients:  datatypes.NewJSONSlice([]string{"tofu", "pork"}),
		Instructions: datatypes.NewJSONSlice([]string{"fry", "simmer"}),
		ChefNotes:    "be gentle",
		CreatedAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		UpdatedAt:    time.Date(2026, 1, 3, 3, 4, 5, 0, time.UTC),
		Iterations: datatypes.NewJSONSlice([]Iteration{
			{ID: "it1", Date: "2026-01-03", Chef: "Ana", ChangesMade: "less salt", Outcome: "better", Image: &img},
		}),
	}
	raw, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Recipe
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.SecondaryID != sid || back.ID != orig.ID || back.Title != orig.Title {
		t.Fatalf("identity fields did not round trip: %+v", back)
	}
	if len(back.Ingredients) != 2 || back.Ingredients[1] != "pork" {
		t.Fatalf("ingredients did not round trip: %v", back.Ingredients)
	}
	if !back.CreatedAt.Equal(orig.CreatedAt) || !back.UpdatedAt.Equal(orig.UpdatedAt) {
		t.Fatalf("timestamps did not round trip: %v / %v", back.CreatedAt, back.UpdatedAt)
	}
	if len(back.Iterations) != 1 || back.Iterations[0].Chef != "Ana" || back.Iterations[0].Image == nil {
		t.Fatalf("iterations did not round trip: %+v", back.Iterations)
	}
}

func TestRecipeInput_WrongShapeFailsDecoding(t *testing.T) {
	var in RecipeInput
	err := json.Unmarshal([]byte(`{"title":"t","ingredients":"not a list","instructions":[]}`), &in)
	if err == nil {
		t.Fatalf("expected decode error for non-sequence ingredients")
	}
}
