package types

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Recipe is stored as a single document-style row: the list-valued fields live
// in jsonb columns so every mutation is one atomic write against one record.
type Recipe struct {
	SecondaryID  uuid.UUID                      `gorm:"column:secondary_id;type:uuid;default:uuid_generate_v4();primaryKey"`
	ID           string                         `gorm:"column:id;not null;uniqueIndex"`
	Title        string                         `gorm:"column:title;not null"`
	Images       datatypes.JSONSlice[string]    `gorm:"column:images;type:jsonb"`
	Ingredients  datatypes.JSONSlice[string]    `gorm:"column:ingredients;type:jsonb"`
	Instructions datatypes.JSONSlice[string]    `gorm:"column:instructions;type:jsonb"`
	ChefNotes    string                         `gorm:"column:chef_notes"`
	CreatedAt    time.Time                      `gorm:"column:created_at;not null;autoCreateTime:false;autoUpdateTime:false"`
	UpdatedAt    time.Time                      `gorm:"column:updated_at;autoCreateTime:false;autoUpdateTime:false"`
	Iterations   datatypes.JSONSlice[Iteration] `gorm:"column:iterations;type:jsonb"`
}

func (Recipe) TableName() string { return "recipe" }

// recipeWire is the JSON shape legacy clients already speak: camelCase keys,
// the store-assigned id under "_id", and the singular "image" kept alive as an
// alias of images[0].
type recipeWire struct {
	SecondaryID  *uuid.UUID  `json:"_id,omitempty"`
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Image        *string     `json:"image"`
	Images       []string    `json:"images,omitempty"`
	Ingredients  []string    `json:"ingredients"`
	Instructions []string    `json:"instructions"`
	ChefNotes    string      `json:"chefNotes"`
	CreatedAt    string      `json:"createdAt,omitempty"`
	UpdatedAt    string      `json:"updatedAt,omitempty"`
	Iterations   []Iteration `json:"iterations"`
}

func (r Recipe) MarshalJSON() ([]byte, error) {
	w := recipeWire{
		ID:           r.ID,
		Title:        r.Title,
		Ingredients:  emptyWhenNil([]string(r.Ingredients)),
		Instructions: emptyWhenNil([]string(r.Instructions)),
		ChefNotes:    r.ChefNotes,
		Iterations:   emptyWhenNil([]Iteration(r.Iterations)),
	}
	if r.SecondaryID != uuid.Nil {
		sid := r.SecondaryID
		w.SecondaryID = &sid
	}
	if len(r.Images) > 0 {
		w.Images = []string(r.Images)
		first := r.Images[0]
		w.Image = &first
	}
	if !r.CreatedAt.IsZero() {
		w.CreatedAt = r.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	if !r.UpdatedAt.IsZero() {
		w.UpdatedAt = r.UpdatedAt.UTC().Format(time.RFC3339Nano)
	}
	return json.Marshal(w)
}

func (r *Recipe) UnmarshalJSON(data []byte) error {
	var w recipeWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*r = Recipe{
		ID:           w.ID,
		Title:        w.Title,
		Images:       datatypes.NewJSONSlice(canonicalImages(w.Image, w.Images)),
		Ingredients:  datatypes.NewJSONSlice(emptyWhenNil(w.Ingredients)),
		Instructions: datatypes.NewJSONSlice(emptyWhenNil(w.Instructions)),
		ChefNotes:    w.ChefNotes,
		Iterations:   datatypes.NewJSONSlice(emptyWhenNil(w.Iterations)),
	}
	if w.SecondaryID != nil {
		r.SecondaryID = *w.SecondaryID
	}
	if w.CreatedAt != "" {
		t, err := time.Parse(time.RFC3339Nano, w.CreatedAt)
		if err != nil {
			return err
		}
		r.CreatedAt = t
	}
	if w.UpdatedAt != "" {
		t, err := time.Parse(time.RFC3339Nano, w.UpdatedAt)
		if err != nil {
			return err
		}
		r.UpdatedAt = t
	}
	return nil
}

// canonicalImages folds the legacy singular field into the images sequence:
// "images" wins when both are present.
func canonicalImages(image *string, images []string) []string {
	if len(images) > 0 {
		return images
	}
	if image != nil && *image != "" {
		return []string{*image}
	}
	return nil
}

func emptyWhenNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
