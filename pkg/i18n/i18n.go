package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"golang.org/x/text/language"
)

//go:embed dictionaries/*.json
var dictionaryFS embed.FS

// Locale is a supported UI locale.
type Locale struct {
	Code string `json:"code"`
	Name string `json:"name"`
	tag  language.Tag
}

// DefaultLocale is used when nothing else matches.
const DefaultLocale = "en"

// Locales lists the supported locales; the first one is the default.
var Locales = []Locale{
	{Code: "en", Name: "English", tag: language.English},
	{Code: "zh", Name: "简体中文", tag: language.SimplifiedChinese},
}

var matcher = func() language.Matcher {
	tags := make([]language.Tag, len(Locales))
	for i, l := range Locales {
		tags[i] = l.tag
	}
	return language.NewMatcher(tags)
}()

// IsSupported reports whether code names a supported locale.
func IsSupported(code string) bool {
	for _, l := range Locales {
		if l.Code == code {
			return true
		}
	}
	return false
}

// Negotiate picks a locale. An explicit supported locale (from the URL
// path or a flag) wins; otherwise the Accept-Language header is matched
// against the supported set.
func Negotiate(explicit, acceptLanguage string) string {
	if c := strings.ToLower(strings.TrimSpace(explicit)); IsSupported(c) {
		return c
	}
	if acceptLanguage == "" {
		return DefaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return DefaultLocale
	}
	return Locales[idx].Code
}

// Dictionary is one locale's UI strings.
type Dictionary struct {
	Locale    string
	strings   map[string]string
	providers map[string]string
}

// T returns the string for key, or key itself when it is missing.
func (d *Dictionary) T(key string) string {
	if s, ok := d.strings[key]; ok {
		return s
	}
	return key
}

// ProviderName returns the localised provider name, or provider itself.
// Keys are matched exactly first, then case-insensitively.
func (d *Dictionary) ProviderName(provider string) string {
	if s, ok := d.providers[provider]; ok {
		return s
	}
	if s, ok := d.providers[strings.ToLower(provider)]; ok {
		return s
	}
	return provider
}

// Bundle holds every locale's dictionary.
type Bundle struct {
	dicts map[string]*Dictionary
}

// LoadBundle parses the embedded dictionaries.
func LoadBundle() (*Bundle, error) {
	b := &Bundle{dicts: make(map[string]*Dictionary, len(Locales))}
	for _, l := range Locales {
		data, err := dictionaryFS.ReadFile(path.Join("dictionaries", l.Code+".json"))
		if err != nil {
			return nil, fmt.Errorf("missing dictionary for %s: %w", l.Code, err)
		}
		d, err := parseDictionary(l.Code, data)
		if err != nil {
			return nil, fmt.Errorf("invalid dictionary for %s: %w", l.Code, err)
		}
		b.dicts[l.Code] = d
	}
	return b, nil
}

// Dictionary returns the dictionary for locale, falling back to English.
func (b *Bundle) Dictionary(locale string) *Dictionary {
	if d, ok := b.dicts[locale]; ok {
		return d
	}
	return b.dicts[DefaultLocale]
}

func parseDictionary(locale string, data []byte) (*Dictionary, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	d := &Dictionary{
		Locale:    locale,
		strings:   make(map[string]string, len(raw)),
		providers: make(map[string]string),
	}
	for key, val := range raw {
		if key == "providers" {
			if err := json.Unmarshal(val, &d.providers); err != nil {
				return nil, fmt.Errorf("providers: %w", err)
			}
			continue
		}
		var s string
		if err := json.Unmarshal(val, &s); err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		d.strings[key] = s
	}
	return d, nil
}
