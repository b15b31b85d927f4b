// Package planner implements the recipe planning pipeline: preference
// extraction, recipe selection, ingredient overlap detection and
// shopping list consolidation. All stages are deterministic and operate
// on an explicit catalog; nothing in this package talks to a model.
package planner

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/moolen/pantry/internal/catalog"
)

const (
	// DefaultNumRecipes is used when the request does not state a count.
	DefaultNumRecipes = 5
	// DefaultBudget is used when the request does not state a budget.
	DefaultBudget = 50.0
)

// PreferenceRecord captures what a user asked for. Zero-value fields
// are filled with defaults by Normalize.
type PreferenceRecord struct {
	// Tags is the set of dietary tags the user mentioned. Empty means
	// no restriction.
	Tags []catalog.Tag `json:"dietary_preferences"`
	// NumRecipes is how many recipes to plan.
	NumRecipes int `json:"num_recipes"`
	// Budget is the spending limit in dollars.
	Budget float64 `json:"budget"`
}

// Normalize fills unset fields with defaults and deduplicates tags.
func (p PreferenceRecord) Normalize() PreferenceRecord {
	if p.NumRecipes <= 0 {
		p.NumRecipes = DefaultNumRecipes
	}
	if p.Budget <= 0 {
		p.Budget = DefaultBudget
	}
	seen := make(map[catalog.Tag]bool, len(p.Tags))
	tags := make([]catalog.Tag, 0, len(p.Tags))
	for _, t := range p.Tags {
		if !seen[t] {
			seen[t] = true
			tags = append(tags, t)
		}
	}
	p.Tags = tags
	return p
}

// HasRestrictions reports whether any dietary tags were requested.
func (p PreferenceRecord) HasRestrictions() bool {
	return len(p.Tags) > 0
}

var (
	countPattern  = regexp.MustCompile(`(?i)\b(\d+)\s+(?:[a-z-]+\s+){0,3}(?:recipes?|meals?|dinners?|lunches|lunch|dishes|dish)\b`)
	dollarPattern = regexp.MustCompile(`\$\s*(\d+(?:\.\d+)?)`)
	budgetPattern = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(?:dollars?|bucks|usd)\b`)

	tagKeywords = []struct {
		keyword string
		tag     catalog.Tag
	}{
		{"vegetarian", catalog.TagVegetarian},
		{"veggie", catalog.TagVegetarian},
		{"meatless", catalog.TagVegetarian},
		{"vegan", catalog.TagVegan},
		{"plant-based", catalog.TagVegan},
		{"plant based", catalog.TagVegan},
		{"gluten-free", catalog.TagGlutenFree},
		{"gluten free", catalog.TagGlutenFree},
		{"no gluten", catalog.TagGlutenFree},
		{"low-carb", catalog.TagLowCarb},
		{"low carb", catalog.TagLowCarb},
		{"keto", catalog.TagLowCarb},
	}
)

// ExtractPreferences parses a free-text request into a PreferenceRecord
// using keyword matching. It never fails: an ambiguous or empty request
// yields the default record (5 recipes, $50, no restrictions).
func ExtractPreferences(text string) PreferenceRecord {
	lower := strings.ToLower(text)
	var prefs PreferenceRecord

	for _, kw := range tagKeywords {
		if strings.Contains(lower, kw.keyword) {
			prefs.Tags = append(prefs.Tags, kw.tag)
		}
	}

	if m := countPattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			prefs.NumRecipes = n
		}
	}

	if m := dollarPattern.FindStringSubmatch(text); m != nil {
		if b, err := strconv.ParseFloat(m[1], 64); err == nil && b > 0 {
			prefs.Budget = b
		}
	} else if m := budgetPattern.FindStringSubmatch(text); m != nil {
		if b, err := strconv.ParseFloat(m[1], 64); err == nil && b > 0 {
			prefs.Budget = b
		}
	}

	return prefs.Normalize()
}

// Describe renders the record the way the planner reports it back to
// the user, e.g. "5 recipes under $50, no specific restrictions".
func (p PreferenceRecord) Describe() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(p.NumRecipes))
	b.WriteString(" recipes under $")
	b.WriteString(strconv.FormatFloat(p.Budget, 'f', -1, 64))
	b.WriteString(", ")
	if !p.HasRestrictions() {
		b.WriteString("no specific restrictions")
		return b.String()
	}
	parts := make([]string, len(p.Tags))
	for i, t := range p.Tags {
		parts[i] = string(t)
	}
	b.WriteString(strings.Join(parts, ", "))
	return b.String()
}
