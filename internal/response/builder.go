package response

import "clova-router/internal/speech"

// Builder assembles response envelopes from speech shapes. One builder is
// created at startup with the configured default language and shared by all
// handlers.
type Builder struct {
	speech *speech.Builder
}

// NewBuilder creates a response builder. It fails with
// speech.ErrInvalidLanguage when the default language is unsupported.
func NewBuilder(defaultLanguage string) (*Builder, error) {
	sb, err := speech.NewBuilder(defaultLanguage)
	if err != nil {
		return nil, err
	}
	return &Builder{speech: sb}, nil
}

// Speech exposes the underlying speech builder for handlers that construct
// values directly
func (b *Builder) Speech() *speech.Builder {
	return b.speech
}

// SimpleSpeechText builds a SimpleSpeech response from a plain text message
// in the default language
func (b *Builder) SimpleSpeechText(message string, endSession bool) (*Response, error) {
	value, err := b.speech.PlainText(message)
	if err != nil {
		return nil, err
	}
	return b.SimpleSpeech(value, endSession), nil
}

// SimpleSpeechTextLang builds a SimpleSpeech response in an explicit language
func (b *Builder) SimpleSpeechTextLang(message, lang string, endSession bool) (*Response, error) {
	value, err := b.speech.PlainTextLang(message, lang)
	if err != nil {
		return nil, err
	}
	return b.SimpleSpeech(value, endSession), nil
}

// SimpleSpeech builds a SimpleSpeech response from a speech value
func (b *Builder) SimpleSpeech(value speech.Value, endSession bool) *Response {
	resp := New()
	resp.Body.OutputSpeech = speech.SimpleSpeech(value)
	resp.Body.ShouldEndSession = endSession
	return resp
}

// SpeechList builds a SpeechList response from an ordered sequence of values
func (b *Builder) SpeechList(values []speech.Value, endSession bool) *Response {
	resp := New()
	resp.Body.OutputSpeech = speech.SpeechList(values)
	resp.Body.ShouldEndSession = endSession
	return resp
}

// SpeechURL builds a SpeechList response pairing a spoken message with an
// audio URL
func (b *Builder) SpeechURL(message, url string, endSession bool) (*Response, error) {
	text, err := b.speech.PlainText(message)
	if err != nil {
		return nil, err
	}
	return b.SpeechList([]speech.Value{text, b.speech.URL(url)}, endSession), nil
}

// SpeechSet builds a SpeechSet response. It fails with
// speech.ErrTypeMismatch when verbose is itself a set.
func (b *Builder) SpeechSet(brief speech.Value, verbose speech.Composite, endSession bool) (*Response, error) {
	set, err := speech.SpeechSet(brief, verbose)
	if err != nil {
		return nil, err
	}
	resp := New()
	resp.Body.OutputSpeech = set
	resp.Body.ShouldEndSession = endSession
	return resp, nil
}

// FromMessage builds a response from any member of the speech message union
func (b *Builder) FromMessage(m speech.Message, endSession bool) (*Response, error) {
	composite, err := b.speech.Compose(m)
	if err != nil {
		return nil, err
	}
	resp := New()
	resp.Body.OutputSpeech = composite
	resp.Body.ShouldEndSession = endSession
	return resp, nil
}

// AddReprompt attaches a reprompt to an existing response, forcing
// shouldEndSession to false
func (b *Builder) AddReprompt(resp *Response, composite speech.Composite) *Response {
	resp.SetReprompt(composite)
	return resp
}

// AddRepromptMessage resolves a speech message and attaches it as reprompt
func (b *Builder) AddRepromptMessage(resp *Response, m speech.Message) (*Response, error) {
	composite, err := b.speech.Compose(m)
	if err != nil {
		return nil, err
	}
	return b.AddReprompt(resp, composite), nil
}
