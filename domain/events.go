package domain

import "time"

// FlowEventType defines the type of an auth-flow event
type FlowEventType string

const (
	OTPSentEvent        FlowEventType = "OTP_SENT"
	OTPSendFailedEvent  FlowEventType = "OTP_SEND_FAILED"
	OTPVerifiedEvent    FlowEventType = "OTP_VERIFIED"
	OTPRejectedEvent    FlowEventType = "OTP_REJECTED"
	NameSavedEvent      FlowEventType = "NAME_SAVED"
	NumberChangedEvent  FlowEventType = "NUMBER_CHANGED"
	CountdownTickEvent  FlowEventType = "COUNTDOWN_TICK"
	RedirectIssuedEvent FlowEventType = "REDIRECT_ISSUED"
)

// FlowEvent records a state change inside the auth flow. The CLI subscribes
// to re-render, and tests assert on the emitted sequence.
type FlowEvent struct {
	EventType    FlowEventType `json:"event_type"`
	MobileNumber string        `json:"mobile_number,omitempty"`
	Route        Route         `json:"route,omitempty"`
	Countdown    int           `json:"countdown,omitempty"`
	Timestamp    time.Time     `json:"timestamp"`
	ErrorMsg     string        `json:"error_msg,omitempty"`
	Success      bool          `json:"success"`
}

// FlowEventSink receives flow events. Implementations must be fast; the
// flow calls them synchronously while holding its lock.
type FlowEventSink interface {
	OnFlowEvent(event FlowEvent)
}

// FlowEventFunc adapts a function to the FlowEventSink interface.
type FlowEventFunc func(event FlowEvent)

// OnFlowEvent implements FlowEventSink
func (f FlowEventFunc) OnFlowEvent(event FlowEvent) { f(event) }

// NewFlowEvent creates an event with common fields populated
func NewFlowEvent(eventType FlowEventType) FlowEvent {
	return FlowEvent{
		EventType: eventType,
		Timestamp: time.Now().UTC(),
		Success:   true,
	}
}

// WithError marks the event as failed and records the message
func (e FlowEvent) WithError(err error) FlowEvent {
	e.Success = false
	if err != nil {
		e.ErrorMsg = err.Error()
	}
	return e
}

// WithMobileNumber sets the phone number field
func (e FlowEvent) WithMobileNumber(number string) FlowEvent {
	e.MobileNumber = number
	return e
}

// WithRoute sets the redirect destination
func (e FlowEvent) WithRoute(route Route) FlowEvent {
	e.Route = route
	return e
}

// WithCountdown sets the resend countdown value
func (e FlowEvent) WithCountdown(seconds int) FlowEvent {
	e.Countdown = seconds
	return e
}
