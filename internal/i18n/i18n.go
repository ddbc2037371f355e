// Package i18n provides localized user-facing strings for the CLI and TUI.
// English is the fallback; Dutch matches the platform's primary audience.
package i18n

import (
	"embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

var (
	mu        sync.RWMutex
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
)

// Init loads the embedded message catalogs and picks the locale from
// FUNDESK_LANG, falling back to LANG, falling back to English.
func Init() error {
	b := i18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	for _, file := range []string{"locales/en.yaml", "locales/nl.yaml"} {
		if _, err := b.LoadMessageFileFS(localeFS, file); err != nil {
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	mu.Lock()
	bundle = b
	localizer = i18n.NewLocalizer(b, detectLocale(), "en")
	mu.Unlock()
	return nil
}

func detectLocale() string {
	for _, env := range []string{"FUNDESK_LANG", "LANG"} {
		if v := os.Getenv(env); v != "" {
			if strings.HasPrefix(strings.ToLower(v), "nl") {
				return "nl"
			}
			return "en"
		}
	}
	return "en"
}

// SetLocale switches the active locale. Used by tests and the --lang flag.
func SetLocale(lang string) {
	mu.Lock()
	defer mu.Unlock()
	if bundle != nil {
		localizer = i18n.NewLocalizer(bundle, lang, "en")
	}
}

// T translates a message id. Unknown ids fall back to the id itself so a
// missing catalog entry never blanks the UI.
func T(msgID string) string {
	return TData(msgID, nil)
}

// TData translates a message id with template data.
func TData(msgID string, data map[string]any) string {
	mu.RLock()
	loc := localizer
	mu.RUnlock()

	if loc == nil {
		return msgID
	}
	msg, err := loc.Localize(&i18n.LocalizeConfig{
		MessageID:    msgID,
		TemplateData: data,
	})
	if err != nil {
		return msgID
	}
	return msg
}
