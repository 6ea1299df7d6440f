package mocks

import (
	"context"
	"time"

	"github.com/ganeshpawar09/CarZy-Admin/domain"
)

// MockPlatformGateway implements domain.PlatformGateway for testing
type MockPlatformGateway struct {
	SendOTPFunc                func(ctx context.Context, mobileNumber string) (*domain.OTPChallenge, error)
	VerifyOTPFunc              func(ctx context.Context, otpID, code string) (*domain.Session, error)
	UpdateNameFunc             func(ctx context.Context, token string, userID uint, fullName string) (*domain.Session, error)
	ListUserVerificationsFunc  func(ctx context.Context) ([]domain.UserVerification, error)
	ListCarVerificationsFunc   func(ctx context.Context) ([]domain.CarVerification, error)
	UpdateUserVerificationFunc func(ctx context.Context, decision domain.UserDecision) error
	UpdateCarVerificationFunc  func(ctx context.Context, decision domain.CarDecision) error
	CarDetailsFunc             func(ctx context.Context, carID uint) (*domain.Car, error)
	CarVerificationDetailsFunc func(ctx context.Context, verificationID uint) (*domain.CarVerificationDetail, error)
	DashboardStatsFunc         func(ctx context.Context) (*domain.DashboardStats, error)

	// Call counters for asserting that validation short-circuits.
	SendOTPCalls                int
	VerifyOTPCalls              int
	UpdateNameCalls             int
	UpdateUserVerificationCalls int
	UpdateCarVerificationCalls  int
}

// NewMockPlatformGateway creates a new MockPlatformGateway with default behaviors
func NewMockPlatformGateway() *MockPlatformGateway {
	return &MockPlatformGateway{}
}

// SendOTP requests an OTP challenge for the given number
func (m *MockPlatformGateway) SendOTP(ctx context.Context, mobileNumber string) (*domain.OTPChallenge, error) {
	m.SendOTPCalls++
	if m.SendOTPFunc != nil {
		return m.SendOTPFunc(ctx, mobileNumber)
	}
	// Default behavior: issue a fixed challenge id
	return &domain.OTPChallenge{ID: "abc123", MobileNumber: mobileNumber}, nil
}

// VerifyOTP verifies a challenge/code pair
func (m *MockPlatformGateway) VerifyOTP(ctx context.Context, otpID, code string) (*domain.Session, error) {
	m.VerifyOTPCalls++
	if m.VerifyOTPFunc != nil {
		return m.VerifyOTPFunc(ctx, otpID, code)
	}
	// Default behavior: accept "1234" for a regular, fully onboarded user
	if code != "1234" {
		return nil, &mockAPIError{message: "Invalid OTP"}
	}
	return &domain.Session{ID: 7, FullName: "Asha", MobileNumber: "9876543210", UserType: "user", Token: "tok-1"}, nil
}

// UpdateName saves the user's display name
func (m *MockPlatformGateway) UpdateName(ctx context.Context, token string, userID uint, fullName string) (*domain.Session, error) {
	m.UpdateNameCalls++
	if m.UpdateNameFunc != nil {
		return m.UpdateNameFunc(ctx, token, userID, fullName)
	}
	return &domain.Session{ID: userID, FullName: fullName, UserType: "user", Token: token}, nil
}

// ListUserVerifications lists pending user verifications
func (m *MockPlatformGateway) ListUserVerifications(ctx context.Context) ([]domain.UserVerification, error) {
	if m.ListUserVerificationsFunc != nil {
		return m.ListUserVerificationsFunc(ctx)
	}
	return []domain.UserVerification{}, nil
}

// ListCarVerifications lists pending car verifications
func (m *MockPlatformGateway) ListCarVerifications(ctx context.Context) ([]domain.CarVerification, error) {
	if m.ListCarVerificationsFunc != nil {
		return m.ListCarVerificationsFunc(ctx)
	}
	return []domain.CarVerification{}, nil
}

// UpdateUserVerification submits a user verification decision
func (m *MockPlatformGateway) UpdateUserVerification(ctx context.Context, decision domain.UserDecision) error {
	m.UpdateUserVerificationCalls++
	if m.UpdateUserVerificationFunc != nil {
		return m.UpdateUserVerificationFunc(ctx, decision)
	}
	return nil
}

// UpdateCarVerification submits a car verification decision
func (m *MockPlatformGateway) UpdateCarVerification(ctx context.Context, decision domain.CarDecision) error {
	m.UpdateCarVerificationCalls++
	if m.UpdateCarVerificationFunc != nil {
		return m.UpdateCarVerificationFunc(ctx, decision)
	}
	return nil
}

// CarDetails fetches one car record
func (m *MockPlatformGateway) CarDetails(ctx context.Context, carID uint) (*domain.Car, error) {
	if m.CarDetailsFunc != nil {
		return m.CarDetailsFunc(ctx, carID)
	}
	return &domain.Car{ID: carID, CompanyName: "Maruti", ModelName: "Swift", FuelType: "petrol", PricePerHour: 120}, nil
}

// CarVerificationDetails fetches the documents for a car verification
func (m *MockPlatformGateway) CarVerificationDetails(ctx context.Context, verificationID uint) (*domain.CarVerificationDetail, error) {
	if m.CarVerificationDetailsFunc != nil {
		return m.CarVerificationDetailsFunc(ctx, verificationID)
	}
	return &domain.CarVerificationDetail{ID: verificationID, RCExpiryDate: time.Now().Add(24 * time.Hour)}, nil
}

// DashboardStats fetches the admin aggregates
func (m *MockPlatformGateway) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	if m.DashboardStatsFunc != nil {
		return m.DashboardStatsFunc(ctx)
	}
	return &domain.DashboardStats{}, nil
}

// mockAPIError mimics a platform error reduced to a display message.
type mockAPIError struct {
	message string
}

func (e *mockAPIError) Error() string { return e.message }

// Compile-time interface compliance verification
var _ domain.PlatformGateway = (*MockPlatformGateway)(nil)
