// Package speech builds the speech values and composites that make up the
// outputSpeech section of an extension response. Values are the atomic
// descriptors (plain text with a language tag, or an audio URL); composites
// are the SimpleSpeech, SpeechList and SpeechSet wire shapes built from them.
package speech

import "fmt"

// ValueType identifies the kind of an atomic speech value
type ValueType string

const (
	// TypePlainText is a spoken text value
	TypePlainText ValueType = "PlainText"
	// TypeURL is a reference to an audio source
	TypeURL ValueType = "URL"
)

// DefaultLanguage is used when no explicit language is configured
const DefaultLanguage = "ja"

var supportedLanguages = map[string]struct{}{
	"en": {},
	"ja": {},
	"ko": {},
}

// ValidateLanguage checks that lang is one of the supported language codes
func ValidateLanguage(lang string) error {
	if _, ok := supportedLanguages[lang]; !ok {
		return fmt.Errorf("%w: %q (supported: en, ja, ko)", ErrInvalidLanguage, lang)
	}
	return nil
}

// Value is an atomic speech descriptor. PlainText values always carry one of
// the supported language codes; URL values carry an empty lang.
type Value struct {
	Type  ValueType `json:"type"`
	Lang  string    `json:"lang"`
	Value string    `json:"value"`
}

// Composite is one of the speech shapes accepted by the outputSpeech and
// reprompt fields: *Simple, *List or *Set.
type Composite interface {
	composite()
}

// Simple wraps a single speech value
type Simple struct {
	Type   string `json:"type"`
	Values Value  `json:"values"`
}

func (*Simple) composite() {}

// List wraps an ordered sequence of speech values
type List struct {
	Type   string  `json:"type"`
	Values []Value `json:"values"`
}

func (*List) composite() {}

// Set pairs a brief speech shape with a verbose one. The verbose part is
// restricted to *Simple or *List.
type Set struct {
	Type    string    `json:"type"`
	Brief   Value     `json:"brief"`
	Verbose Composite `json:"verbose"`
}

func (*Set) composite() {}

// Builder constructs speech values with a configured default language
type Builder struct {
	defaultLanguage string
}

// NewBuilder creates a Builder. It fails with ErrInvalidLanguage if the
// default language is not one of en, ja or ko.
func NewBuilder(defaultLanguage string) (*Builder, error) {
	if defaultLanguage == "" {
		defaultLanguage = DefaultLanguage
	}
	if err := ValidateLanguage(defaultLanguage); err != nil {
		return nil, err
	}
	return &Builder{defaultLanguage: defaultLanguage}, nil
}

// DefaultLanguage returns the builder's configured language
func (b *Builder) DefaultLanguage() string {
	return b.defaultLanguage
}

// PlainText builds a PlainText value in the builder's default language
func (b *Builder) PlainText(message string) (Value, error) {
	return b.PlainTextLang(message, b.defaultLanguage)
}

// PlainTextLang builds a PlainText value in an explicit language
func (b *Builder) PlainTextLang(message, lang string) (Value, error) {
	if err := ValidateLanguage(lang); err != nil {
		return Value{}, err
	}
	return Value{Type: TypePlainText, Lang: lang, Value: message}, nil
}

// URL builds a URL value pointing at an audio source. URL values never carry
// a language.
func (b *Builder) URL(address string) Value {
	return Value{Type: TypeURL, Lang: "", Value: address}
}

// SimpleSpeech wraps a value into a SimpleSpeech composite
func SimpleSpeech(value Value) *Simple {
	return &Simple{Type: "SimpleSpeech", Values: value}
}

// SpeechList wraps values into a SpeechList composite
func SpeechList(values []Value) *List {
	return &List{Type: "SpeechList", Values: values}
}

// SpeechSet pairs a brief value with a verbose composite. It fails with
// ErrTypeMismatch if verbose is itself a Set.
func SpeechSet(brief Value, verbose Composite) (*Set, error) {
	if _, nested := verbose.(*Set); nested {
		return nil, ErrTypeMismatch
	}
	return &Set{Type: "SpeechSet", Brief: brief, Verbose: verbose}, nil
}
