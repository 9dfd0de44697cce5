// Package locale holds the French and Persian user interface strings.
package locale

import (
	"embed"
	"fmt"
	"path"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// NewBundle loads the embedded message files. French is the fallback language.
func NewBundle() (*i18n.Bundle, error) {
	bundle := i18n.NewBundle(language.French)

	files, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("failed to read locale files: %w", err)
	}
	for _, f := range files {
		name := path.Join("locales", f.Name())
		data, err := localeFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, name); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
	}

	return bundle, nil
}

// Localizer looks up UI strings for one language
type Localizer struct {
	lang      string
	localizer *i18n.Localizer
}

// New returns a localizer for lang ("fr" or "fa")
func New(bundle *i18n.Bundle, lang string) *Localizer {
	return &Localizer{lang: lang, localizer: i18n.NewLocalizer(bundle, lang)}
}

// Lang returns the language code of the localizer
func (l *Localizer) Lang() string {
	return l.lang
}

// T returns the string for key, or key itself when it is unknown
func (l *Localizer) T(key string) string {
	return l.Tf(key, nil)
}

// Tf is T with template data for messages such as "score"
func (l *Localizer) Tf(key string, data map[string]interface{}) string {
	msg, err := l.localizer.Localize(&i18n.LocalizeConfig{MessageID: key, TemplateData: data})
	if err != nil || msg == "" {
		return key
	}
	return msg
}

// RTL reports whether the UI language is written right to left
func (l *Localizer) RTL() bool {
	tag, err := language.Parse(l.lang)
	if err != nil {
		return false
	}
	return tag == language.Persian
}
