package refine

import (
	"fmt"

	"fundesk/internal/models"
)

// FeatureText returns the searchable fields of a feature: name,
// description and labels.
func FeatureText(f models.Feature) []string {
	fields := []string{f.Name, f.Description}
	return append(fields, f.Labels...)
}

// FeatureFacets exposes the feature's activation state under the "state"
// key, with values matching the dashboard tabs (active / available).
func FeatureFacets(f models.Feature) map[string]string {
	state := "available"
	if f.Enabled {
		state = "active"
	}
	return map[string]string{"state": state}
}

// StateOption is one entry of the state tab row, with its count baked
// into the label.
type StateOption struct {
	Value string
	Label string
}

// ActiveCounts buckets a refined feature set into the state tab options.
// This is display-only aggregation over an already-fetched snapshot; the
// server's totals stay authoritative for everything else.
func ActiveCounts(features []models.Feature) []StateOption {
	var active, available int
	for _, f := range features {
		if f.Enabled {
			active++
		} else {
			available++
		}
	}
	return []StateOption{
		{Value: "all", Label: "All"},
		{Value: "active", Label: fmt.Sprintf("Active (%d)", active)},
		{Value: "available", Label: fmt.Sprintf("Available (%d)", available)},
	}
}
