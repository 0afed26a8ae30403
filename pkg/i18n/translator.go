package i18n

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Catalog maps English source strings to translations, per language.
type Catalog map[language.Tag]map[string]string

// Translator renders format strings through x/text message catalogs. The
// English source string is the catalog key.
type Translator struct {
	catalog *catalog.Builder
	matcher language.Matcher
	tags    []language.Tag
	known   map[language.Tag]map[string]bool
}

// New builds a translator from the bundled catalog plus extra ones.
func New(extra ...Catalog) (*Translator, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	known := map[language.Tag]map[string]bool{}

	for _, c := range append([]Catalog{bundled}, extra...) {
		for tag, messages := range c {
			if known[tag] == nil {
				known[tag] = map[string]bool{}
			}
			for key, msg := range messages {
				if err := b.SetString(tag, key, msg); err != nil {
					return nil, fmt.Errorf("catalog %s %q: %w", tag, key, err)
				}
				known[tag][key] = true
			}
		}
	}

	tags := []language.Tag{language.English}
	for tag := range known {
		if tag != language.English {
			tags = append(tags, tag)
		}
	}
	return &Translator{
		catalog: b,
		matcher: language.NewMatcher(tags),
		tags:    tags,
		known:   known,
	}, nil
}

// MustNew is New for static wiring.
func MustNew(extra ...Catalog) *Translator {
	t, err := New(extra...)
	if err != nil {
		panic(err)
	}
	return t
}

// Tag returns the supported language closest to locale.
func (t *Translator) Tag(locale string) language.Tag {
	_, idx, _ := t.matcher.Match(language.Make(locale))
	return t.tags[idx]
}

// Sprintf formats in the language closest to locale. Untranslated strings
// without arguments come back verbatim, so percent signs in data survive.
func (t *Translator) Sprintf(locale, format string, args ...interface{}) string {
	tag := t.Tag(locale)
	if len(args) == 0 && !t.known[tag][format] {
		return format
	}
	return message.NewPrinter(tag, message.Catalog(t.catalog)).Sprintf(format, args...)
}
