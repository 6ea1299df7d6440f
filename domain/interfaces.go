package domain

import (
	"context"
	"time"
)

// PlatformGateway defines the calls this client makes against the CarZy
// platform API. All business logic lives on the other side of it.
type PlatformGateway interface {
	SendOTP(ctx context.Context, mobileNumber string) (*OTPChallenge, error)
	VerifyOTP(ctx context.Context, otpID, code string) (*Session, error)
	UpdateName(ctx context.Context, token string, userID uint, fullName string) (*Session, error)

	ListUserVerifications(ctx context.Context) ([]UserVerification, error)
	ListCarVerifications(ctx context.Context) ([]CarVerification, error)
	UpdateUserVerification(ctx context.Context, decision UserDecision) error
	UpdateCarVerification(ctx context.Context, decision CarDecision) error

	CarDetails(ctx context.Context, carID uint) (*Car, error)
	CarVerificationDetails(ctx context.Context, verificationID uint) (*CarVerificationDetail, error)

	DashboardStats(ctx context.Context) (*DashboardStats, error)
}

// SessionStore persists the single session record that identifies the
// logged-in principal on this device.
type SessionStore interface {
	// Load returns the stored session, or nil when there is none. It never
	// fails: an unreadable or corrupt record is treated as no session.
	Load() *Session
	Save(session *Session) error
	Clear() error
}

// TaskHandle is a scheduled callback that can be stopped before it fires.
type TaskHandle interface {
	// Stop cancels the task and reports whether it was still pending.
	Stop() bool
}

// Scheduler abstracts delayed callbacks so flows can tear down their timers
// deterministically. No callback may fire after its handle is stopped.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) TaskHandle
}
