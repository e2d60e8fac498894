package output

// Translator renders user-facing messages and resolves request locales.
type Translator interface {
	// T renders the message identified by key in locale; data fills template
	// placeholders and may be nil.
	T(locale, key string, data map[string]any) string
	// Match picks the supported locale closest to an Accept-Language header.
	Match(acceptLanguage string) string
}
