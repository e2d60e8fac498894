package i18n

import (
	"embed"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"eventreg/internal/ports/output"
)

//go:embed active.*.toml
var localeFS embed.FS

var _ output.Translator = (*Translator)(nil)

// Translator is a thin wrapper around go-i18n's Bundle/Localizer.
type Translator struct {
	bundle          *i18n.Bundle
	defaultLanguage language.Tag
	tags            []language.Tag
	matcher         language.Matcher
	logger          *zap.Logger
}

// NewTranslator builds a Translator from the embedded active.*.toml files,
// falling back to defaultLocale (e.g. "en") when a message is missing.
func NewTranslator(defaultLocale string, logger *zap.Logger) *Translator {
	tag, err := language.Parse(defaultLocale)
	if err != nil {
		tag = language.English
	}
	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, file := range []string{"active.en.toml", "active.fr.toml"} {
		if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
			logger.Warn("i18n: failed to load message file", zap.String("file", file), zap.Error(err))
		}
	}

	// The default language goes first so the matcher falls back to it.
	tags := []language.Tag{tag}
	for _, t := range bundle.LanguageTags() {
		if t != tag {
			tags = append(tags, t)
		}
	}

	return &Translator{
		bundle:          bundle,
		defaultLanguage: tag,
		tags:            tags,
		matcher:         language.NewMatcher(tags),
		logger:          logger,
	}
}

// T renders the message identified by key for the given locale.
// If the key/locale is not found, it falls back to the default locale,
// then finally to the key itself.
func (t *Translator) T(locale, key string, data map[string]any) string {
	if key == "" {
		return ""
	}

	languages := []string{}
	if locale != "" {
		languages = append(languages, locale)
	}
	languages = append(languages, t.defaultLanguage.String())

	localizer := i18n.NewLocalizer(t.bundle, languages...)
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		t.logger.Debug("i18n: localize failed", zap.String("key", key), zap.Strings("locales", languages), zap.Error(err))
		return key
	}
	return msg
}

// Match picks the supported locale best matching an Accept-Language header.
func (t *Translator) Match(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return t.defaultLanguage.String()
	}
	_, idx, _ := t.matcher.Match(tags...)
	base, _ := t.tags[idx].Base()
	return base.String()
}
