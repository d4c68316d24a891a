// Package response holds the mutable response envelope returned to the
// platform and the builder that fills it from speech shapes.
package response

import (
	"encoding/json"

	"clova-router/internal/speech"
)

// Version is the envelope version sent with every response
const Version = "1.0"

// Reprompt wraps the secondary speech payload played when the user stays
// silent
type Reprompt struct {
	OutputSpeech speech.Composite `json:"outputSpeech"`
}

// Body is the response section of the envelope
type Body struct {
	OutputSpeech     speech.Composite       `json:"outputSpeech"`
	Card             map[string]interface{} `json:"card"`
	Directives       []interface{}          `json:"directives"`
	ShouldEndSession bool                   `json:"shouldEndSession"`
	Reprompt         *Reprompt              `json:"reprompt,omitempty"`
}

// MarshalJSON keeps an unset outputSpeech as an empty object on the wire
func (b Body) MarshalJSON() ([]byte, error) {
	var outputSpeech interface{} = b.OutputSpeech
	if b.OutputSpeech == nil {
		outputSpeech = struct{}{}
	}
	return json.Marshal(struct {
		OutputSpeech     interface{}            `json:"outputSpeech"`
		Card             map[string]interface{} `json:"card"`
		Directives       []interface{}          `json:"directives"`
		ShouldEndSession bool                   `json:"shouldEndSession"`
		Reprompt         *Reprompt              `json:"reprompt,omitempty"`
	}{outputSpeech, b.Card, b.Directives, b.ShouldEndSession, b.Reprompt})
}

// Response is the envelope sent back to the platform
type Response struct {
	Version           string                 `json:"version"`
	SessionAttributes map[string]interface{} `json:"sessionAttributes"`
	Body              Body                   `json:"response"`
}

// New returns an empty envelope: no speech, empty card and directives,
// shouldEndSession true.
func New() *Response {
	return &Response{
		Version:           Version,
		SessionAttributes: map[string]interface{}{},
		Body: Body{
			Card:             map[string]interface{}{},
			Directives:       []interface{}{},
			ShouldEndSession: true,
		},
	}
}

// Attributes returns the top-level session attributes, allocating an empty
// map if the field was unset
func (r *Response) Attributes() map[string]interface{} {
	if r.SessionAttributes == nil {
		r.SessionAttributes = map[string]interface{}{}
	}
	return r.SessionAttributes
}

// SetAttributes replaces the top-level session attributes
func (r *Response) SetAttributes(attrs map[string]interface{}) {
	r.SessionAttributes = attrs
}

// SetReprompt attaches a reprompt speech. It always forces
// shouldEndSession to false, overriding any prior end-session intent.
func (r *Response) SetReprompt(composite speech.Composite) {
	r.Body.ShouldEndSession = false
	r.Body.Reprompt = &Reprompt{OutputSpeech: composite}
}
