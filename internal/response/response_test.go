package response

import (
	"encoding/json"
	"errors"
	"testing"

	"clova-router/internal/speech"
)

func TestNewEnvelopeDefaults(t *testing.T) {
	resp := New()

	if resp.Version != "1.0" {
		t.Errorf("expected version 1.0, got %s", resp.Version)
	}
	if !resp.Body.ShouldEndSession {
		t.Error("new envelope should default to shouldEndSession=true")
	}
	if resp.Body.OutputSpeech != nil {
		t.Error("new envelope should have no output speech")
	}
	if len(resp.SessionAttributes) != 0 || resp.SessionAttributes == nil {
		t.Errorf("expected empty session attributes, got %v", resp.SessionAttributes)
	}
}

func TestEmptyEnvelopeWireShape(t *testing.T) {
	data, err := json.Marshal(New())
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	want := `{"version":"1.0","sessionAttributes":{},"response":{"outputSpeech":{},"card":{},"directives":[],"shouldEndSession":true}}`
	if string(data) != want {
		t.Errorf("wire shape mismatch:\n got %s\nwant %s", data, want)
	}
}

func TestSimpleSpeechTextResponse(t *testing.T) {
	b, err := NewBuilder("en")
	if err != nil {
		t.Fatalf("NewBuilder failed: %v", err)
	}

	resp, err := b.SimpleSpeechText("Hi", false)
	if err != nil {
		t.Fatalf("SimpleSpeechText failed: %v", err)
	}

	data, _ := json.Marshal(resp)
	want := `{"version":"1.0","sessionAttributes":{},"response":{"outputSpeech":{"type":"SimpleSpeech","values":{"type":"PlainText","lang":"en","value":"Hi"}},"card":{},"directives":[],"shouldEndSession":false}}`
	if string(data) != want {
		t.Errorf("wire shape mismatch:\n got %s\nwant %s", data, want)
	}
}

func TestSimpleSpeechTextRejectsBadLanguage(t *testing.T) {
	b, _ := NewBuilder("en")

	if _, err := b.SimpleSpeechTextLang("hallo", "de", false); !errors.Is(err, speech.ErrInvalidLanguage) {
		t.Errorf("expected ErrInvalidLanguage, got %v", err)
	}
}

func TestSpeechURLBuildsList(t *testing.T) {
	b, _ := NewBuilder("ja")

	resp, err := b.SpeechURL("音楽を再生します", "https://dummy.mp3", false)
	if err != nil {
		t.Fatalf("SpeechURL failed: %v", err)
	}

	list, ok := resp.Body.OutputSpeech.(*speech.List)
	if !ok {
		t.Fatalf("expected *speech.List, got %T", resp.Body.OutputSpeech)
	}
	if len(list.Values) != 2 {
		t.Fatalf("expected 2 values, got %d", len(list.Values))
	}
	if list.Values[0].Type != speech.TypePlainText || list.Values[1].Type != speech.TypeURL {
		t.Errorf("unexpected value types: %+v", list.Values)
	}
}

func TestSpeechSetRejectsNestedSet(t *testing.T) {
	b, _ := NewBuilder("en")
	brief, _ := b.Speech().PlainText("brief")
	inner, _ := speech.SpeechSet(brief, speech.SimpleSpeech(brief))

	if _, err := b.SpeechSet(brief, inner, false); !errors.Is(err, speech.ErrTypeMismatch) {
		t.Errorf("expected ErrTypeMismatch, got %v", err)
	}
}

func TestEndSessionFlag(t *testing.T) {
	b, _ := NewBuilder("en")

	resp, _ := b.SimpleSpeechText("Bye", true)
	if !resp.Body.ShouldEndSession {
		t.Error("expected shouldEndSession=true")
	}
}

func TestAddRepromptForcesSessionOpen(t *testing.T) {
	b, _ := NewBuilder("en")

	resp, _ := b.SimpleSpeechText("Turned off", true)
	if !resp.Body.ShouldEndSession {
		t.Fatal("precondition failed: shouldEndSession should be true")
	}

	value, _ := b.Speech().PlainText("Are you still there?")
	b.AddReprompt(resp, speech.SimpleSpeech(value))

	if resp.Body.ShouldEndSession {
		t.Error("reprompt must force shouldEndSession=false")
	}
	if resp.Body.Reprompt == nil {
		t.Fatal("expected reprompt to be set")
	}

	simple, ok := resp.Body.Reprompt.OutputSpeech.(*speech.Simple)
	if !ok {
		t.Fatalf("expected *speech.Simple reprompt, got %T", resp.Body.Reprompt.OutputSpeech)
	}
	if simple.Values.Value != "Are you still there?" {
		t.Errorf("unexpected reprompt value: %+v", simple.Values)
	}
}

func TestAddRepromptMessage(t *testing.T) {
	b, _ := NewBuilder("en")

	resp, _ := b.SimpleSpeechText("Hello", false)
	if _, err := b.AddRepromptMessage(resp, speech.Text("Still there?")); err != nil {
		t.Fatalf("AddRepromptMessage failed: %v", err)
	}
	if resp.Body.Reprompt == nil {
		t.Error("expected reprompt to be set")
	}
}

func TestFromMessageSet(t *testing.T) {
	b, _ := NewBuilder("en")

	resp, err := b.FromMessage(speech.MessageSet{
		Brief:   speech.Text("title"),
		Verbose: speech.MessageList{speech.Text("A"), speech.Text("B")},
	}, false)
	if err != nil {
		t.Fatalf("FromMessage failed: %v", err)
	}

	set, ok := resp.Body.OutputSpeech.(*speech.Set)
	if !ok {
		t.Fatalf("expected *speech.Set, got %T", resp.Body.OutputSpeech)
	}
	if set.Brief.Value != "title" {
		t.Errorf("unexpected brief: %+v", set.Brief)
	}
}

func TestAttributesAccessors(t *testing.T) {
	resp := New()
	resp.SessionAttributes = nil

	attrs := resp.Attributes()
	if attrs == nil {
		t.Fatal("Attributes must allocate an empty map")
	}

	resp.SetAttributes(map[string]interface{}{"lastTurnedOn": "Light"})
	if resp.SessionAttributes["lastTurnedOn"] != "Light" {
		t.Errorf("unexpected attributes: %v", resp.SessionAttributes)
	}
}
