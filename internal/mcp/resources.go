package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/moolen/pantry/internal/catalog"
)

const (
	resourceDatabaseSummary = "recipe://database/summary"
	resourceAvailableTags   = "recipe://tags/available"
)

func (s *RecipeServer) registerResources() {
	summary := mcp.NewResource(
		resourceDatabaseSummary,
		"Recipe Database Summary",
		mcp.WithResourceDescription("Summary of the recipe catalog including statistics"),
		mcp.WithMIMEType("text/plain"),
	)
	s.mcpServer.AddResource(summary, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      resourceDatabaseSummary,
				MIMEType: "text/plain",
				Text:     databaseSummary(s.catalog),
			},
		}, nil
	})

	tags := mcp.NewResource(
		resourceAvailableTags,
		"Available Dietary Tags",
		mcp.WithResourceDescription("All dietary tags in the catalog with recipe counts"),
		mcp.WithMIMEType("text/plain"),
	)
	s.mcpServer.AddResource(tags, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      resourceAvailableTags,
				MIMEType: "text/plain",
				Text:     availableTags(s.catalog),
			},
		}, nil
	})
}

func databaseSummary(cat *catalog.Catalog) string {
	recipes := cat.Recipes()

	tagSet := make(map[catalog.Tag]bool)
	var totalCost float64
	for _, r := range recipes {
		for _, t := range r.Tags {
			tagSet[t] = true
		}
		totalCost += r.TotalCost()
	}

	tags := make([]string, 0, len(tagSet))
	for t := range tagSet {
		tags = append(tags, string(t))
	}
	sort.Strings(tags)

	avgCost := 0.0
	if len(recipes) > 0 {
		avgCost = totalCost / float64(len(recipes))
	}

	var b strings.Builder
	b.WriteString("Recipe Database Summary\n\n")
	fmt.Fprintf(&b, "Total Recipes: %d\n", len(recipes))
	fmt.Fprintf(&b, "Available Dietary Tags: %s\n", strings.Join(tags, ", "))
	fmt.Fprintf(&b, "Average Recipe Cost: $%.2f\n", avgCost)
	fmt.Fprintf(&b, "Total Database Value: $%.2f\n\n", totalCost)
	b.WriteString("Recipe List:\n")
	for _, name := range cat.Names() {
		fmt.Fprintf(&b, "  - %s\n", name)
	}
	return b.String()
}

func availableTags(cat *catalog.Catalog) string {
	counts := make(map[catalog.Tag]int)
	for _, r := range cat.Recipes() {
		for _, t := range r.Tags {
			counts[t]++
		}
	}

	tags := make([]string, 0, len(counts))
	for t := range counts {
		tags = append(tags, string(t))
	}
	sort.Strings(tags)

	var b strings.Builder
	b.WriteString("Available Dietary Tags:\n\n")
	for _, t := range tags {
		fmt.Fprintf(&b, "  - %s: %d recipe(s)\n", t, counts[catalog.Tag(t)])
	}
	return b.String()
}
