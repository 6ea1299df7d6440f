package services

import (
	"context"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ganeshpawar09/CarZy-Admin/domain"
)

// Step is one state of the login flow.
type Step int

const (
	StepPhoneInput Step = iota
	StepOTPVerification
	StepNameEntry
	StepSuccess
)

// String implements fmt.Stringer
func (s Step) String() string {
	switch s {
	case StepPhoneInput:
		return "phone_input"
	case StepOTPVerification:
		return "otp_verification"
	case StepNameEntry:
		return "name_entry"
	case StepSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// flowTransitions is the closed transition table. Anything not listed is
// rejected with ErrInvalidTransition. The OTP step has a self-edge for
// resend and a back-edge for "change number".
var flowTransitions = map[Step][]Step{
	StepPhoneInput:      {StepOTPVerification},
	StepOTPVerification: {StepPhoneInput, StepOTPVerification, StepNameEntry, StepSuccess},
	StepNameEntry:       {StepSuccess},
	StepSuccess:         {},
}

var (
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
	otpPattern   = regexp.MustCompile(`^[0-9]{4}$`)
)

// AuthFlowConfig carries the flow's timing knobs.
type AuthFlowConfig struct {
	// ResendWindow is how long the user waits before resend unlocks.
	ResendWindow time.Duration
	// RedirectDelay is the grace period shown on the success screen
	// before the role-based redirect fires.
	RedirectDelay time.Duration
}

// RedirectFunc receives the post-login destination once the success delay
// elapses.
type RedirectFunc func(route domain.Route)

// AuthFlow drives phone entry, OTP verification, optional first-time name
// capture and the post-auth redirect. One instance serves one login
// attempt; Close tears down its timers.
type AuthFlow struct {
	gateway    domain.PlatformGateway
	sessions   domain.SessionStore
	scheduler  domain.Scheduler
	config     AuthFlowConfig
	onRedirect RedirectFunc
	sink       domain.FlowEventSink
	logger     *logrus.Logger

	mu        sync.Mutex
	step      Step
	phone     string
	challenge *domain.OTPChallenge
	session   *domain.Session
	countdown int
	tick      domain.TaskHandle
	redirect  domain.TaskHandle
	lastErr   string
	loading   bool
	closed    bool
}

// NewAuthFlow creates a login flow. onRedirect and sink may be nil.
func NewAuthFlow(
	gateway domain.PlatformGateway,
	sessions domain.SessionStore,
	scheduler domain.Scheduler,
	config AuthFlowConfig,
	onRedirect RedirectFunc,
	sink domain.FlowEventSink,
	logger *logrus.Logger,
) *AuthFlow {
	return &AuthFlow{
		gateway:    gateway,
		sessions:   sessions,
		scheduler:  scheduler,
		config:     config,
		onRedirect: onRedirect,
		sink:       sink,
		logger:     logger,
		step:       StepPhoneInput,
	}
}

// Resume checks for a persisted session before showing the phone prompt.
// A completed session schedules the role redirect right away; a session
// still named "Guest" drops back into name entry so onboarding can finish
// after a restart.
func (f *AuthFlow) Resume() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored := f.sessions.Load()
	if stored == nil {
		return false
	}

	f.session = stored
	if stored.IsGuest() {
		f.step = StepNameEntry
		return true
	}
	f.step = StepSuccess
	f.scheduleRedirectLocked(stored.UserType)
	return true
}

// SubmitPhone validates the number, requests an OTP and moves to the
// verification step. A malformed number is rejected before any network
// call; a server failure leaves the flow in PhoneInput with the message
// set.
func (f *AuthFlow) SubmitPhone(ctx context.Context, phoneNumber string) error {
	f.mu.Lock()
	if err := f.guardLocked(StepPhoneInput); err != nil {
		f.mu.Unlock()
		return err
	}
	if !phonePattern.MatchString(phoneNumber) {
		f.lastErr = domain.ErrInvalidPhoneNumber.Error()
		f.mu.Unlock()
		return domain.ErrInvalidPhoneNumber
	}
	f.lastErr = ""
	f.loading = true
	f.mu.Unlock()

	challenge, err := f.gateway.SendOTP(ctx, phoneNumber)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.loading = false
	if f.closed {
		return domain.ErrFlowClosed
	}
	if err != nil {
		f.lastErr = err.Error()
		f.emitLocked(domain.NewFlowEvent(domain.OTPSendFailedEvent).WithMobileNumber(phoneNumber).WithError(err))
		return err
	}

	f.phone = phoneNumber
	f.challenge = challenge
	if err := f.transitionLocked(StepOTPVerification); err != nil {
		return err
	}
	f.startCountdownLocked()
	f.emitLocked(domain.NewFlowEvent(domain.OTPSentEvent).WithMobileNumber(phoneNumber).WithCountdown(f.countdown))
	return nil
}

// SubmitOTP verifies the 4-digit code. On success the returned profile is
// persisted immediately, then the flow moves to NameEntry when the profile
// still carries the Guest placeholder, else to Success.
func (f *AuthFlow) SubmitOTP(ctx context.Context, code string) error {
	f.mu.Lock()
	if err := f.guardLocked(StepOTPVerification); err != nil {
		f.mu.Unlock()
		return err
	}
	if !otpPattern.MatchString(code) {
		f.lastErr = domain.ErrIncompleteOTP.Error()
		f.mu.Unlock()
		return domain.ErrIncompleteOTP
	}
	otpID := f.challenge.ID
	f.lastErr = ""
	f.loading = true
	f.mu.Unlock()

	session, err := f.gateway.VerifyOTP(ctx, otpID, code)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.loading = false
	if f.closed {
		return domain.ErrFlowClosed
	}
	if err != nil {
		f.lastErr = err.Error()
		f.emitLocked(domain.NewFlowEvent(domain.OTPRejectedEvent).WithMobileNumber(f.phone).WithError(err))
		return err
	}

	// Persist before onboarding completes so a restart can resume it.
	if err := f.sessions.Save(session); err != nil {
		f.lastErr = err.Error()
		return err
	}

	f.session = session
	f.challenge = nil
	f.stopCountdownLocked()
	f.emitLocked(domain.NewFlowEvent(domain.OTPVerifiedEvent).WithMobileNumber(f.phone))

	if session.IsGuest() {
		return f.transitionLocked(StepNameEntry)
	}
	if err := f.transitionLocked(StepSuccess); err != nil {
		return err
	}
	f.scheduleRedirectLocked(session.UserType)
	return nil
}

// Resend requests a fresh code for the same number once the countdown has
// expired. The active challenge is replaced only when the new one arrives,
// so a failed resend leaves the previous code submittable.
func (f *AuthFlow) Resend(ctx context.Context) error {
	f.mu.Lock()
	if err := f.guardLocked(StepOTPVerification); err != nil {
		f.mu.Unlock()
		return err
	}
	if f.countdown > 0 {
		f.mu.Unlock()
		return domain.ErrResendNotReady
	}
	phone := f.phone
	f.lastErr = ""
	f.loading = true
	f.mu.Unlock()

	challenge, err := f.gateway.SendOTP(ctx, phone)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.loading = false
	if f.closed {
		return domain.ErrFlowClosed
	}
	if err != nil {
		f.lastErr = err.Error()
		f.emitLocked(domain.NewFlowEvent(domain.OTPSendFailedEvent).WithMobileNumber(phone).WithError(err))
		return err
	}

	f.challenge = challenge
	if err := f.transitionLocked(StepOTPVerification); err != nil {
		return err
	}
	f.startCountdownLocked()
	f.emitLocked(domain.NewFlowEvent(domain.OTPSentEvent).WithMobileNumber(phone).WithCountdown(f.countdown))
	return nil
}

// SubmitName completes first-time onboarding. The stored session is
// merged, not replaced: only the display name changes.
func (f *AuthFlow) SubmitName(ctx context.Context, name string) error {
	f.mu.Lock()
	if err := f.guardLocked(StepNameEntry); err != nil {
		f.mu.Unlock()
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		f.lastErr = domain.ErrEmptyName.Error()
		f.mu.Unlock()
		return domain.ErrEmptyName
	}
	current := *f.session
	f.lastErr = ""
	f.loading = true
	f.mu.Unlock()

	_, err := f.gateway.UpdateName(ctx, current.Token, current.ID, name)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.loading = false
	if f.closed {
		return domain.ErrFlowClosed
	}
	if err != nil {
		f.lastErr = err.Error()
		return err
	}

	updated := current
	updated.FullName = name
	if err := f.sessions.Save(&updated); err != nil {
		f.lastErr = err.Error()
		return err
	}

	f.session = &updated
	f.emitLocked(domain.NewFlowEvent(domain.NameSavedEvent).WithMobileNumber(updated.MobileNumber))
	if err := f.transitionLocked(StepSuccess); err != nil {
		return err
	}
	f.scheduleRedirectLocked(updated.UserType)
	return nil
}

// ChangeNumber abandons the current challenge and returns to phone entry.
func (f *AuthFlow) ChangeNumber() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.guardLocked(StepOTPVerification); err != nil {
		return err
	}

	f.challenge = nil
	f.lastErr = ""
	f.stopCountdownLocked()
	f.countdown = 0
	if err := f.transitionLocked(StepPhoneInput); err != nil {
		return err
	}
	f.emitLocked(domain.NewFlowEvent(domain.NumberChangedEvent))
	return nil
}

// Close tears the flow down. Pending timers are stopped and any callback
// that already fired becomes a no-op.
func (f *AuthFlow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	f.stopCountdownLocked()
	if f.redirect != nil {
		f.redirect.Stop()
		f.redirect = nil
	}
}

// Step returns the current flow state.
func (f *AuthFlow) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// Countdown returns the seconds left until resend unlocks.
func (f *AuthFlow) Countdown() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.countdown
}

// Err returns the current user-visible error message, if any.
func (f *AuthFlow) Err() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

// Loading reports whether a platform call is outstanding.
func (f *AuthFlow) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

// Session returns a copy of the authenticated profile, or nil before OTP
// verification succeeds.
func (f *AuthFlow) Session() *domain.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.session == nil {
		return nil
	}
	copied := *f.session
	return &copied
}

// ChallengeID returns the active challenge identifier, empty when none.
func (f *AuthFlow) ChallengeID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.challenge == nil {
		return ""
	}
	return f.challenge.ID
}

func (f *AuthFlow) guardLocked(expected Step) error {
	if f.closed {
		return domain.ErrFlowClosed
	}
	if f.loading {
		return domain.ErrRequestInFlight
	}
	if f.step != expected {
		return domain.ErrInvalidTransition
	}
	return nil
}

func (f *AuthFlow) transitionLocked(to Step) error {
	for _, allowed := range flowTransitions[f.step] {
		if allowed == to {
			f.logger.WithFields(logrus.Fields{"from": f.step.String(), "to": to.String()}).Debug("Flow transition")
			f.step = to
			return nil
		}
	}
	return domain.ErrInvalidTransition
}

func (f *AuthFlow) startCountdownLocked() {
	f.stopCountdownLocked()
	f.countdown = int(f.config.ResendWindow / time.Second)
	if f.countdown > 0 {
		f.tick = f.scheduler.AfterFunc(time.Second, f.onTick)
	}
}

func (f *AuthFlow) stopCountdownLocked() {
	if f.tick != nil {
		f.tick.Stop()
		f.tick = nil
	}
}

// onTick decrements the resend countdown once per second while the OTP
// step is active, and stops on its own at zero.
func (f *AuthFlow) onTick() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed || f.step != StepOTPVerification || f.countdown == 0 {
		f.tick = nil
		return
	}
	f.countdown--
	f.emitLocked(domain.NewFlowEvent(domain.CountdownTickEvent).WithCountdown(f.countdown))
	if f.countdown > 0 {
		f.tick = f.scheduler.AfterFunc(time.Second, f.onTick)
	} else {
		f.tick = nil
	}
}

// scheduleRedirectLocked arms the unconditional post-success redirect.
func (f *AuthFlow) scheduleRedirectLocked(userType string) {
	route := domain.RouteForUserType(userType)
	f.redirect = f.scheduler.AfterFunc(f.config.RedirectDelay, func() {
		f.mu.Lock()
		if f.closed {
			f.mu.Unlock()
			return
		}
		f.emitLocked(domain.NewFlowEvent(domain.RedirectIssuedEvent).WithRoute(route))
		cb := f.onRedirect
		f.mu.Unlock()

		// The callback runs outside the lock so it can touch the flow.
		if cb != nil {
			cb(route)
		}
	})
}

func (f *AuthFlow) emitLocked(event domain.FlowEvent) {
	if f.sink != nil {
		f.sink.OnFlowEvent(event)
	}
}
