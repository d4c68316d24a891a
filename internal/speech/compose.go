package speech

import "fmt"

// Message is the closed union of inputs the composer understands. A scalar
// message resolves to a SimpleSpeech, a MessageList to a SpeechList and a
// MessageSet to a SpeechSet.
type Message interface {
	message()
}

// Text is a plain text message spoken in the builder's default language
type Text string

func (Text) message() {}

// LocalizedText is a plain text message with an explicit language code
type LocalizedText struct {
	Text string
	Lang string
}

func (LocalizedText) message() {}

// AudioURL is a reference to an audio source to be played
type AudioURL string

func (AudioURL) message() {}

// MessageList is an ordered sequence of scalar messages
type MessageList []Message

func (MessageList) message() {}

// MessageSet pairs a brief scalar message with a verbose message. The
// verbose part may be a scalar or a MessageList, never another MessageSet.
type MessageSet struct {
	Brief   Message
	Verbose Message
}

func (MessageSet) message() {}

// Compose resolves a message into a speech composite:
// scalar messages become a SimpleSpeech, a MessageList becomes a SpeechList
// and a MessageSet becomes a SpeechSet with its verbose part resolved one
// level (a nested MessageSet fails with ErrTypeMismatch).
func (b *Builder) Compose(m Message) (Composite, error) {
	switch msg := m.(type) {
	case MessageList:
		values, err := b.resolveValues(msg)
		if err != nil {
			return nil, err
		}
		return SpeechList(values), nil

	case MessageSet:
		brief, err := b.resolveValue(msg.Brief)
		if err != nil {
			return nil, err
		}

		var verbose Composite
		switch v := msg.Verbose.(type) {
		case MessageList:
			values, err := b.resolveValues(v)
			if err != nil {
				return nil, err
			}
			verbose = SpeechList(values)
		case MessageSet:
			return nil, fmt.Errorf("%w: verbose part is a message set", ErrTypeMismatch)
		default:
			value, err := b.resolveValue(v)
			if err != nil {
				return nil, err
			}
			verbose = SimpleSpeech(value)
		}

		return SpeechSet(brief, verbose)

	default:
		value, err := b.resolveValue(m)
		if err != nil {
			return nil, err
		}
		return SimpleSpeech(value), nil
	}
}

// resolveValue maps a scalar message onto a speech value
func (b *Builder) resolveValue(m Message) (Value, error) {
	switch msg := m.(type) {
	case Text:
		return b.PlainText(string(msg))
	case LocalizedText:
		lang := msg.Lang
		if lang == "" {
			lang = b.defaultLanguage
		}
		return b.PlainTextLang(msg.Text, lang)
	case AudioURL:
		return b.URL(string(msg)), nil
	case nil:
		return Value{}, fmt.Errorf("%w: nil message", ErrUnsupportedSpeechInput)
	default:
		return Value{}, fmt.Errorf("%w: %T", ErrUnsupportedSpeechInput, m)
	}
}

func (b *Builder) resolveValues(messages MessageList) ([]Value, error) {
	values := make([]Value, 0, len(messages))
	for _, m := range messages {
		value, err := b.resolveValue(m)
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, nil
}
