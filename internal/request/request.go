// Package request parses the raw JSON body of an extension webhook call
// into a typed request model. A request is classified by its request.type
// into one of four variants (Launch, Intent, Event, SessionEnded) and is
// read-only for the duration of handler execution.
package request

import (
	"encoding/json"
	"fmt"
)

// Type is the request classification discriminant
type Type string

const (
	// TypeLaunch marks the start of an interaction with the extension
	TypeLaunch Type = "LaunchRequest"
	// TypeIntent carries a recognized intent with optional slot values
	TypeIntent Type = "IntentRequest"
	// TypeEvent carries an asynchronous platform event (skill lifecycle,
	// audio player state changes)
	TypeEvent Type = "EventRequest"
	// TypeSessionEnded marks the end of the interaction session
	TypeSessionEnded Type = "SessionEndedRequest"
)

// User identifies the platform user, optionally with a linked access token
type User struct {
	ID          string
	AccessToken string
}

// Session is the conversational context persisted across requests
type Session struct {
	ID         string
	New        bool
	Attributes map[string]interface{}
	User       User
}

// Device identifies the device the interaction came from
type Device struct {
	ID string
}

// AudioPlayerState reflects the device audio player at request time.
// Offset and Total are milliseconds into the current stream.
type AudioPlayerState struct {
	Offset   int64
	Total    int64
	Activity string
	Stream   map[string]interface{}
}

// Context carries the device, user and optional audio player state.
// AudioPlayer is nil unless the raw context contained an AudioPlayer key.
type Context struct {
	Device      Device
	User        User
	AudioPlayer *AudioPlayerState
}

// Intent is a named user action with resolved slot values
type Intent struct {
	Name  string
	Slots map[string]string
}

// Event is a platform-originated notification
type Event struct {
	Namespace string
	Name      string
	Payload   map[string]interface{}
}

// Request is the typed model of one inbound webhook call
type Request struct {
	Version   string
	Type      Type
	ID        string
	Timestamp string
	Locale    string
	Session   Session
	Context   Context

	// Intent is non-nil only for IntentRequest
	Intent *Intent
	// Event is non-nil only for EventRequest
	Event *Event

	applicationID string
}

// wire shapes

type rawEnvelope struct {
	Version string     `json:"version"`
	Session rawSession `json:"session"`
	Context rawContext `json:"context"`
	Request rawRequest `json:"request"`
}

type rawSession struct {
	SessionID         string                 `json:"sessionId"`
	New               bool                   `json:"new"`
	SessionAttributes map[string]interface{} `json:"sessionAttributes"`
	User              rawUser                `json:"user"`
}

type rawUser struct {
	UserID      string `json:"userId"`
	AccessToken string `json:"accessToken"`
}

type rawContext struct {
	System      rawSystem       `json:"System"`
	AudioPlayer *rawAudioPlayer `json:"AudioPlayer"`
}

type rawSystem struct {
	Application rawApplication `json:"application"`
	User        rawUser        `json:"user"`
	Device      rawDevice      `json:"device"`
}

type rawApplication struct {
	ApplicationID string `json:"applicationId"`
}

type rawDevice struct {
	DeviceID string `json:"deviceId"`
}

type rawAudioPlayer struct {
	OffsetInMilliseconds int64                  `json:"offsetInMilliseconds"`
	TotalInMilliseconds  int64                  `json:"totalInMilliseconds"`
	PlayerActivity       string                 `json:"playerActivity"`
	Stream               map[string]interface{} `json:"stream"`
}

type rawRequest struct {
	Type      string     `json:"type"`
	RequestID string     `json:"requestId"`
	Timestamp string     `json:"timestamp"`
	Locale    string     `json:"locale"`
	Intent    *rawIntent `json:"intent"`
	Event     *rawEvent  `json:"event"`
}

type rawIntent struct {
	Name  string             `json:"name"`
	Slots map[string]rawSlot `json:"slots"`
}

type rawSlot struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type rawEvent struct {
	Namespace string                 `json:"namespace"`
	Name      string                 `json:"name"`
	Payload   map[string]interface{} `json:"payload"`
}

// Parse decodes a raw request body and classifies it. It fails with
// ErrMalformedRequest for invalid JSON and ErrUnsupportedRequestType for an
// unknown request.type value.
func Parse(body []byte) (*Request, error) {
	var raw rawEnvelope
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
	}
	return fromRaw(&raw)
}

func fromRaw(raw *rawEnvelope) (*Request, error) {
	req := &Request{
		Version:   raw.Version,
		ID:        raw.Request.RequestID,
		Timestamp: raw.Request.Timestamp,
		Locale:    raw.Request.Locale,
		Session: Session{
			ID:         raw.Session.SessionID,
			New:        raw.Session.New,
			Attributes: raw.Session.SessionAttributes,
			User: User{
				ID:          raw.Session.User.UserID,
				AccessToken: raw.Session.User.AccessToken,
			},
		},
		Context: Context{
			Device: Device{ID: raw.Context.System.Device.DeviceID},
			User: User{
				ID:          raw.Context.System.User.UserID,
				AccessToken: raw.Context.System.User.AccessToken,
			},
		},
		applicationID: raw.Context.System.Application.ApplicationID,
	}

	if req.Session.Attributes == nil {
		req.Session.Attributes = map[string]interface{}{}
	}

	if raw.Context.AudioPlayer != nil {
		req.Context.AudioPlayer = &AudioPlayerState{
			Offset:   raw.Context.AudioPlayer.OffsetInMilliseconds,
			Total:    raw.Context.AudioPlayer.TotalInMilliseconds,
			Activity: raw.Context.AudioPlayer.PlayerActivity,
			Stream:   raw.Context.AudioPlayer.Stream,
		}
	}

	switch Type(raw.Request.Type) {
	case TypeLaunch:
		req.Type = TypeLaunch
	case TypeSessionEnded:
		req.Type = TypeSessionEnded
	case TypeIntent:
		req.Type = TypeIntent
		req.Intent = intentFromRaw(raw.Request.Intent)
	case TypeEvent:
		req.Type = TypeEvent
		req.Event = eventFromRaw(raw.Request.Event)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedRequestType, raw.Request.Type)
	}

	return req, nil
}

func intentFromRaw(raw *rawIntent) *Intent {
	intent := &Intent{Slots: map[string]string{}}
	if raw == nil {
		return intent
	}
	intent.Name = raw.Name
	for name, slot := range raw.Slots {
		intent.Slots[name] = slot.Value
	}
	return intent
}

func eventFromRaw(raw *rawEvent) *Event {
	if raw == nil {
		return &Event{}
	}
	return &Event{
		Namespace: raw.Namespace,
		Name:      raw.Name,
		Payload:   raw.Payload,
	}
}

// IntentName returns the intent name, or an empty string for non-intent
// requests
func (r *Request) IntentName() string {
	if r.Intent == nil {
		return ""
	}
	return r.Intent.Name
}

// Slots returns the resolved slot values of an intent request. The map is
// empty (never nil) when the request carries no slots.
func (r *Request) Slots() map[string]string {
	if r.Intent == nil {
		return map[string]string{}
	}
	return r.Intent.Slots
}

// SlotValue returns the value of a named slot and whether it was present
func (r *Request) SlotValue(name string) (string, bool) {
	if r.Intent == nil {
		return "", false
	}
	value, ok := r.Intent.Slots[name]
	return value, ok
}

// ApplicationID returns the application the request was addressed to
func (r *Request) ApplicationID() string {
	return r.applicationID
}

// VerifyApplicationID fails with ErrApplicationIDMismatch if the request was
// not addressed to the expected application
func (r *Request) VerifyApplicationID(expected string) error {
	if r.applicationID != expected {
		return fmt.Errorf("%w: got %q, registered %q", ErrApplicationIDMismatch, r.applicationID, expected)
	}
	return nil
}
