// Package catalog holds the recipe catalog the planner operates on.
//
// A Catalog is constructed once at startup and treated as read-only
// afterwards. Recipe order is the declared order and is significant:
// the selector picks the first N matching recipes.
package catalog

import (
	"fmt"
	"strings"
)

// Tag is a dietary tag a recipe can carry.
type Tag string

const (
	TagVegetarian Tag = "vegetarian"
	TagVegan      Tag = "vegan"
	TagGlutenFree Tag = "gluten-free"
	TagLowCarb    Tag = "low-carb"
)

// AllTags returns every tag the catalog understands, in display order.
func AllTags() []Tag {
	return []Tag{TagVegetarian, TagVegan, TagGlutenFree, TagLowCarb}
}

// ParseTag converts a user-supplied string into a Tag.
// Matching is case-insensitive and tolerates "gluten free" style spellings.
func ParseTag(s string) (Tag, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "-")
	normalized = strings.ReplaceAll(normalized, "_", "-")
	for _, t := range AllTags() {
		if normalized == string(t) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown dietary tag: %q", s)
}

// Ingredient is a single purchasable item in a recipe.
// Price is the flat cost of buying this ingredient for the recipe,
// independent of the quantity used.
type Ingredient struct {
	Item     string  `koanf:"item" yaml:"item"`
	Quantity float64 `koanf:"quantity" yaml:"quantity"`
	Unit     string  `koanf:"unit" yaml:"unit"`
	Price    float64 `koanf:"price" yaml:"price"`
}

// Recipe is one entry in the catalog.
type Recipe struct {
	Name        string       `koanf:"name" yaml:"name"`
	Ingredients []Ingredient `koanf:"ingredients" yaml:"ingredients"`
	Tags        []Tag        `koanf:"tags" yaml:"tags"`
}

// TotalCost returns the sum of the recipe's ingredient prices.
func (r Recipe) TotalCost() float64 {
	var total float64
	for _, ing := range r.Ingredients {
		total += ing.Price
	}
	return total
}

// HasTag reports whether the recipe carries the given tag.
func (r Recipe) HasTag(tag Tag) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// HasAnyTag reports whether the recipe carries at least one of the given
// tags. An empty tag list matches every recipe.
func (r Recipe) HasAnyTag(tags []Tag) bool {
	if len(tags) == 0 {
		return true
	}
	for _, t := range tags {
		if r.HasTag(t) {
			return true
		}
	}
	return false
}

// Catalog is an immutable, ordered set of recipes.
type Catalog struct {
	recipes []Recipe
	byName  map[string]int
}

// New builds a Catalog from the given recipes. Recipe names must be
// unique (case-insensitive) and non-empty.
func New(recipes []Recipe) (*Catalog, error) {
	if len(recipes) == 0 {
		return nil, fmt.Errorf("catalog must contain at least one recipe")
	}
	byName := make(map[string]int, len(recipes))
	copied := make([]Recipe, len(recipes))
	for i, r := range recipes {
		if strings.TrimSpace(r.Name) == "" {
			return nil, fmt.Errorf("recipe %d has an empty name", i)
		}
		key := strings.ToLower(r.Name)
		if _, exists := byName[key]; exists {
			return nil, fmt.Errorf("duplicate recipe name: %q", r.Name)
		}
		for _, t := range r.Tags {
			if _, err := ParseTag(string(t)); err != nil {
				return nil, fmt.Errorf("recipe %q: %w", r.Name, err)
			}
		}
		byName[key] = i
		copied[i] = cloneRecipe(r)
	}
	return &Catalog{recipes: copied, byName: byName}, nil
}

// Len returns the number of recipes in the catalog.
func (c *Catalog) Len() int {
	return len(c.recipes)
}

// Recipes returns the catalog's recipes in declared order.
// The returned slice is a deep copy; mutating it does not affect the catalog.
func (c *Catalog) Recipes() []Recipe {
	out := make([]Recipe, len(c.recipes))
	for i, r := range c.recipes {
		out[i] = cloneRecipe(r)
	}
	return out
}

// Get looks up a recipe by name, case-insensitively.
func (c *Catalog) Get(name string) (Recipe, bool) {
	i, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Recipe{}, false
	}
	return cloneRecipe(c.recipes[i]), true
}

// Names returns the recipe names in declared order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.recipes))
	for i, r := range c.recipes {
		names[i] = r.Name
	}
	return names
}

func cloneRecipe(r Recipe) Recipe {
	out := Recipe{Name: r.Name}
	out.Ingredients = make([]Ingredient, len(r.Ingredients))
	copy(out.Ingredients, r.Ingredients)
	out.Tags = make([]Tag, len(r.Tags))
	copy(out.Tags, r.Tags)
	return out
}
