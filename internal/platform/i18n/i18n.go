// Package i18n carga los textos de la API (estados, dosis, exportaciones) en los idiomas soportados.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

var supported = []language.Tag{language.English, language.Spanish}

type Translator struct {
	bundle  *goi18n.Bundle
	matcher language.Matcher
	def     language.Tag
}

// New carga los locales embebidos. defaultLang se usa cuando Accept-Language no matchea.
func New(defaultLang string) (*Translator, error) {
	def := language.English
	if strings.TrimSpace(defaultLang) != "" {
		tag, err := language.Parse(defaultLang)
		if err != nil {
			return nil, fmt.Errorf("i18n: default locale: %w", err)
		}
		def = tag
	}

	bundle := goi18n.NewBundle(def)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("i18n: read locales: %w", err)
	}
	for _, e := range entries {
		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+e.Name()); err != nil {
			return nil, fmt.Errorf("i18n: load %s: %w", e.Name(), err)
		}
	}

	return &Translator{
		bundle:  bundle,
		matcher: language.NewMatcher(supported),
		def:     def,
	}, nil
}

// Match devuelve el locale soportado (base, p.ej. "es") para un header Accept-Language.
func (t *Translator) Match(acceptLanguage string) string {
	if t == nil {
		return "en"
	}
	if strings.TrimSpace(acceptLanguage) == "" {
		base, _ := t.def.Base()
		return base.String()
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		base, _ := t.def.Base()
		return base.String()
	}
	_, idx, _ := t.matcher.Match(tags...)
	base, _ := supported[idx].Base()
	return base.String()
}

// T traduce messageID. Si no existe, devuelve el propio ID (nunca falla).
func (t *Translator) T(lang, messageID string, data map[string]any) string {
	if t == nil {
		return messageID
	}
	loc := goi18n.NewLocalizer(t.bundle, lang, t.def.String())
	msg, err := loc.Localize(&goi18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
	if err != nil || msg == "" {
		return messageID
	}
	return msg
}
