package i18n

import "testing"

func TestTranslateAndFallback(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	SetLocale("en")
	if got := T("error_failed"); got != "Failed!" {
		t.Errorf("en error_failed = %q", got)
	}

	SetLocale("nl")
	if got := T("error_failed"); got != "Mislukt!" {
		t.Errorf("nl error_failed = %q", got)
	}

	if got := T("no_such_key"); got != "no_such_key" {
		t.Errorf("missing key should fall back to id, got %q", got)
	}
}

func TestTemplateData(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	SetLocale("en")

	got := TData("list_pagination", map[string]any{"Page": 2, "LastPage": 5, "Total": 41})
	if got != "page 2/5 (41 total)" {
		t.Errorf("pagination = %q", got)
	}
}
