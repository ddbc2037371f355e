package refine

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/go-cmp/cmp"

	"fundesk/internal/models"
)

func randomFeatures(n int) []models.Feature {
	faker := gofakeit.New(42)
	features := make([]models.Feature, n)
	for i := range features {
		features[i] = models.Feature{
			Key:         faker.UUID(),
			Name:        faker.ProductName(),
			Description: faker.Sentence(8),
			Enabled:     faker.Bool(),
			Labels:      []string{faker.BuzzWord(), faker.BuzzWord()},
		}
	}
	return features
}

func TestRefineNeverReturnsNonMatching(t *testing.T) {
	features := randomFeatures(200)
	crit := Criteria{Q: "e", Facets: map[string]string{"state": "active"}}

	got := Refine(features, crit, FeatureText, FeatureFacets)

	for _, f := range got {
		if !f.Enabled {
			t.Errorf("feature %q fails the state facet but was returned", f.Key)
		}
		if !matchesText(FeatureText(f), "e") {
			t.Errorf("feature %q fails the text match but was returned", f.Key)
		}
	}
}

func TestRefineIsIdempotent(t *testing.T) {
	features := randomFeatures(100)
	crit := Criteria{Q: "a", Facets: map[string]string{"state": "available"}}

	once := Refine(features, crit, FeatureText, FeatureFacets)
	twice := Refine(once, crit, FeatureText, FeatureFacets)

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("refine(refine(x)) != refine(x) (-once +twice):\n%s", diff)
	}
}

func TestRefinePreservesOrder(t *testing.T) {
	features := []models.Feature{
		{Key: "a", Name: "Digitale aanvraag", Enabled: true},
		{Key: "b", Name: "BI koppeling", Enabled: false},
		{Key: "c", Name: "Digitale kassa", Enabled: true},
	}

	got := Refine(features, Criteria{Q: "digitale"}, FeatureText, FeatureFacets)

	if len(got) != 2 || got[0].Key != "a" || got[1].Key != "c" {
		t.Errorf("order not preserved: %+v", got)
	}
}

func TestRefineCaseInsensitive(t *testing.T) {
	features := []models.Feature{{Key: "a", Name: "Fysieke Pas"}}

	if got := Refine(features, Criteria{Q: "fysieke"}, FeatureText, FeatureFacets); len(got) != 1 {
		t.Errorf("lower-case query missed: %+v", got)
	}
	if got := Refine(features, Criteria{Q: "PAS"}, FeatureText, FeatureFacets); len(got) != 1 {
		t.Errorf("upper-case query missed: %+v", got)
	}
}

func TestRefineAllFacetIsUnconstrained(t *testing.T) {
	features := randomFeatures(50)

	got := Refine(features, Criteria{Facets: map[string]string{"state": "all"}}, FeatureText, FeatureFacets)

	if diff := cmp.Diff(features, got); diff != "" {
		t.Errorf("\"all\" facet must not filter (-want +got):\n%s", diff)
	}
}

func TestActiveCounts(t *testing.T) {
	features := []models.Feature{
		{Key: "a", Enabled: true},
		{Key: "b", Enabled: true},
		{Key: "c", Enabled: false},
	}

	opts := ActiveCounts(features)

	if len(opts) != 3 {
		t.Fatalf("got %d options", len(opts))
	}
	if opts[1].Label != "Active (2)" {
		t.Errorf("active label = %q", opts[1].Label)
	}
	if opts[2].Label != "Available (1)" {
		t.Errorf("available label = %q", opts[2].Label)
	}
}
