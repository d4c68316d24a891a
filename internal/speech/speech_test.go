package speech

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNewBuilderValidatesLanguage(t *testing.T) {
	for _, lang := range []string{"en", "ja", "ko"} {
		if _, err := NewBuilder(lang); err != nil {
			t.Errorf("NewBuilder(%q) failed: %v", lang, err)
		}
	}

	for _, lang := range []string{"de", "fr", "EN", "jp", "english", " "} {
		_, err := NewBuilder(lang)
		if !errors.Is(err, ErrInvalidLanguage) {
			t.Errorf("NewBuilder(%q) expected ErrInvalidLanguage, got %v", lang, err)
		}
	}
}

func TestNewBuilderDefaultsToJapanese(t *testing.T) {
	b, err := NewBuilder("")
	if err != nil {
		t.Fatalf("NewBuilder failed: %v", err)
	}
	if b.DefaultLanguage() != "ja" {
		t.Errorf("expected default language ja, got %s", b.DefaultLanguage())
	}
}

func TestPlainTextUsesDefaultLanguage(t *testing.T) {
	b, _ := NewBuilder("en")

	value, err := b.PlainText("Hi")
	if err != nil {
		t.Fatalf("PlainText failed: %v", err)
	}
	if value.Type != TypePlainText || value.Lang != "en" || value.Value != "Hi" {
		t.Errorf("unexpected value: %+v", value)
	}
}

func TestPlainTextLangRejectsUnsupportedLanguage(t *testing.T) {
	b, _ := NewBuilder("ja")

	if _, err := b.PlainTextLang("hallo", "de"); !errors.Is(err, ErrInvalidLanguage) {
		t.Errorf("expected ErrInvalidLanguage, got %v", err)
	}
}

func TestURLCarriesNoLanguage(t *testing.T) {
	b, _ := NewBuilder("ja")

	value := b.URL("https://dummy.mp3")
	if value.Type != TypeURL || value.Lang != "" || value.Value != "https://dummy.mp3" {
		t.Errorf("unexpected value: %+v", value)
	}
}

func TestSimpleSpeechWireShape(t *testing.T) {
	b, _ := NewBuilder("en")
	value, _ := b.PlainText("Hi")

	data, err := json.Marshal(SimpleSpeech(value))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	want := `{"type":"SimpleSpeech","values":{"type":"PlainText","lang":"en","value":"Hi"}}`
	if string(data) != want {
		t.Errorf("wire shape mismatch:\n got %s\nwant %s", data, want)
	}
}

func TestSpeechListWireShape(t *testing.T) {
	b, _ := NewBuilder("ja")
	text, _ := b.PlainText("こんにちは")
	url := b.URL("https://dummy.mp3")

	data, err := json.Marshal(SpeechList([]Value{text, url}))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	want := `{"type":"SpeechList","values":[{"type":"PlainText","lang":"ja","value":"こんにちは"},{"type":"URL","lang":"","value":"https://dummy.mp3"}]}`
	if string(data) != want {
		t.Errorf("wire shape mismatch:\n got %s\nwant %s", data, want)
	}
}

func TestSpeechSetRejectsNestedSet(t *testing.T) {
	b, _ := NewBuilder("en")
	brief, _ := b.PlainText("brief")
	inner, err := SpeechSet(brief, SimpleSpeech(brief))
	if err != nil {
		t.Fatalf("SpeechSet failed: %v", err)
	}

	if _, err := SpeechSet(brief, inner); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("expected ErrTypeMismatch, got %v", err)
	}
}

func TestComposeScalarBecomesSimple(t *testing.T) {
	b, _ := NewBuilder("en")

	composite, err := b.Compose(Text("Hello"))
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	simple, ok := composite.(*Simple)
	if !ok {
		t.Fatalf("expected *Simple, got %T", composite)
	}
	if simple.Values.Value != "Hello" || simple.Values.Lang != "en" {
		t.Errorf("unexpected value: %+v", simple.Values)
	}
}

func TestComposeLocalizedText(t *testing.T) {
	b, _ := NewBuilder("ja")

	composite, err := b.Compose(LocalizedText{Text: "English", Lang: "en"})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if composite.(*Simple).Values.Lang != "en" {
		t.Errorf("expected explicit lang en, got %+v", composite)
	}
}

func TestComposeListBecomesSpeechList(t *testing.T) {
	b, _ := NewBuilder("ja")

	composite, err := b.Compose(MessageList{Text("こんにちは"), AudioURL("https://dummy.mp3")})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	list, ok := composite.(*List)
	if !ok {
		t.Fatalf("expected *List, got %T", composite)
	}
	if len(list.Values) != 2 {
		t.Fatalf("expected 2 values, got %d", len(list.Values))
	}
	if list.Values[1].Type != TypeURL {
		t.Errorf("expected URL value, got %+v", list.Values[1])
	}
}

func TestComposeMessageSet(t *testing.T) {
	b, _ := NewBuilder("en")

	composite, err := b.Compose(MessageSet{
		Brief:   Text("title"),
		Verbose: MessageList{Text("A"), Text("B")},
	})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	set, ok := composite.(*Set)
	if !ok {
		t.Fatalf("expected *Set, got %T", composite)
	}
	if set.Brief.Value != "title" {
		t.Errorf("unexpected brief: %+v", set.Brief)
	}

	verbose, ok := set.Verbose.(*List)
	if !ok {
		t.Fatalf("expected verbose *List, got %T", set.Verbose)
	}
	if verbose.Values[0].Value != "A" || verbose.Values[1].Value != "B" {
		t.Errorf("unexpected verbose values: %+v", verbose.Values)
	}
}

func TestComposeScalarVerboseBecomesSimple(t *testing.T) {
	b, _ := NewBuilder("en")

	composite, err := b.Compose(MessageSet{Brief: Text("short"), Verbose: Text("long version")})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if _, ok := composite.(*Set).Verbose.(*Simple); !ok {
		t.Errorf("expected verbose *Simple, got %T", composite.(*Set).Verbose)
	}
}

func TestComposeRejectsNestedMessageSet(t *testing.T) {
	b, _ := NewBuilder("en")

	_, err := b.Compose(MessageSet{
		Brief:   Text("outer"),
		Verbose: MessageSet{Brief: Text("inner"), Verbose: Text("nested")},
	})
	if !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("expected ErrTypeMismatch, got %v", err)
	}
}

func TestComposeRejectsNilMessage(t *testing.T) {
	b, _ := NewBuilder("en")

	if _, err := b.Compose(nil); !errors.Is(err, ErrUnsupportedSpeechInput) {
		t.Errorf("expected ErrUnsupportedSpeechInput, got %v", err)
	}
}

func TestComposeRejectsInvalidLanguageInList(t *testing.T) {
	b, _ := NewBuilder("en")

	_, err := b.Compose(MessageList{LocalizedText{Text: "hallo", Lang: "de"}})
	if !errors.Is(err, ErrInvalidLanguage) {
		t.Errorf("expected ErrInvalidLanguage, got %v", err)
	}
}
