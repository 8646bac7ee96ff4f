package i18n

import (
	"embed"
	"encoding/json"
	"path"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var builtin embed.FS

// Message IDs of the built-in captions and help lines.
const (
	KeyBackspace      = "key_backspace"
	KeyMinus          = "key_minus"
	KeyDecimalPoint   = "key_decimal_point"
	KeyShift          = "key_shift"
	KeyReturn         = "key_return"
	KeyHide           = "key_hide"
	KeySpace          = "key_space"
	HelpInvalidNumber = "help_invalid_number"
	HelpOutOfRange    = "help_out_of_range"
	HelpDecimalPlaces = "help_decimal_places"
)

type MessageFile struct {
	Name    string
	Content []byte
}

// Message is an alias for i18n.Message to avoid requiring users to import go-i18n directly
type Message = i18n.Message

// Catalog holds the built-in messages plus any supplied by the application.
type Catalog struct {
	bundle *i18n.Bundle
}

// NewCatalog loads the built-in message files followed by extra, so extra
// can replace built-in translations.
func NewCatalog(extra ...MessageFile) (*Catalog, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	entries, err := builtin.ReadDir("locales")
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		content, err := builtin.ReadFile(path.Join("locales", entry.Name()))
		if err != nil {
			return nil, err
		}
		if _, err := bundle.ParseMessageFileBytes(content, entry.Name()); err != nil {
			return nil, err
		}
	}

	for _, messageFile := range extra {
		if _, err := bundle.ParseMessageFileBytes(messageFile.Content, messageFile.Name); err != nil {
			return nil, err
		}
	}

	return &Catalog{bundle: bundle}, nil
}

// Languages lists the languages that have at least one message.
func (c *Catalog) Languages() []language.Tag {
	return c.bundle.LanguageTags()
}

// Localizer returns a localizer for tag that falls back to English.
func (c *Catalog) Localizer(tag language.Tag) *Localizer {
	return &Localizer{
		localizer: i18n.NewLocalizer(c.bundle, tag.String(), language.English.String()),
	}
}

type Localizer struct {
	localizer *i18n.Localizer
}

// GetString retrieves a localized string by key
// If the key is not found, it returns the key itself as fallback
func (l *Localizer) GetString(key string) string {
	return l.GetStringWithData(key, nil)
}

// GetStringWithData retrieves a localized string by key with template data
func (l *Localizer) GetStringWithData(key string, templateData map[string]interface{}) string {
	if l == nil || l.localizer == nil {
		return key
	}
	msg, err := l.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: templateData,
	})
	if err != nil {
		return key
	}
	return msg
}

// GetPluralString retrieves a localized string with plural support.
// Count is available to the template as {{.Count}}.
func (l *Localizer) GetPluralString(key string, count int) string {
	if l == nil || l.localizer == nil {
		return key
	}
	msg, err := l.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		PluralCount:  count,
		TemplateData: map[string]interface{}{"Count": count},
	})
	if err != nil {
		return key
	}
	return msg
}
