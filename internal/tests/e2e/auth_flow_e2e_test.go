package e2e

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ganeshpawar09/CarZy-Admin/domain"
	"github.com/ganeshpawar09/CarZy-Admin/internal/infrastructure/api"
	"github.com/ganeshpawar09/CarZy-Admin/internal/infrastructure/session"
	"github.com/ganeshpawar09/CarZy-Admin/internal/services"
)

// fixture wires a real API client, file store and timer scheduler against
// the fake platform. Timings are collapsed so tests finish quickly.
type fixture struct {
	platform *TestServer
	client   *api.Client
	sessions *session.FileStore
	routes   chan domain.Route
	flow     *services.AuthFlow
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	platform := NewTestServer(t)
	client := api.NewClient(platform.BaseURL, 5*time.Second, logger)
	sessions := session.NewFileStore(filepath.Join(t.TempDir(), "session.json"), nil, logger)

	f := &fixture{
		platform: platform,
		client:   client,
		sessions: sessions,
		routes:   make(chan domain.Route, 1),
	}
	f.flow = services.NewAuthFlow(
		client,
		sessions,
		services.NewTimerScheduler(),
		services.AuthFlowConfig{ResendWindow: 0, RedirectDelay: 10 * time.Millisecond},
		func(route domain.Route) { f.routes <- route },
		nil,
		logger,
	)
	t.Cleanup(f.flow.Close)
	return f
}

func (f *fixture) waitForRoute(t *testing.T) domain.Route {
	t.Helper()
	select {
	case route := <-f.routes:
		return route
	case <-time.After(2 * time.Second):
		t.Fatal("redirect never fired")
		return ""
	}
}

func TestE2E_GuestOnboarding(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.flow.SubmitPhone(ctx, "9876543210"))
	assert.Equal(t, services.StepOTPVerification, f.flow.Step())

	// A wrong code keeps the flow on the OTP step with the platform's
	// message visible.
	err := f.flow.SubmitOTP(ctx, "9999")
	require.Error(t, err)
	assert.Equal(t, "Invalid OTP", f.flow.Err())
	assert.Equal(t, services.StepOTPVerification, f.flow.Step())

	require.NoError(t, f.flow.SubmitOTP(ctx, validOTPCode))
	assert.Equal(t, services.StepNameEntry, f.flow.Step(), "a fresh number lands on name entry")

	// The guest profile is already on disk, so a crash here resumes
	// onboarding instead of restarting it.
	stored := f.sessions.Load()
	require.NotNil(t, stored)
	assert.True(t, stored.IsGuest())

	require.NoError(t, f.flow.SubmitName(ctx, "Asha Rao"))
	assert.Equal(t, services.StepSuccess, f.flow.Step())
	assert.Equal(t, domain.RouteHome, f.waitForRoute(t))

	stored = f.sessions.Load()
	require.NotNil(t, stored)
	assert.Equal(t, "Asha Rao", stored.FullName)
	assert.Equal(t, "9876543210", stored.MobileNumber)
	assert.NotEmpty(t, stored.Token)
}

func TestE2E_KnownUserRedirectsByRole(t *testing.T) {
	tests := []struct {
		name     string
		userType string
		expected domain.Route
	}{
		{name: "admin lands on dashboard", userType: "admin", expected: domain.RouteAdmin},
		{name: "employee lands on console", userType: "employee", expected: domain.RouteEmployee},
		{name: "customer lands on home", userType: "user", expected: domain.RouteHome},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.platform.RegisterUser("9123456789", "Priya Sharma", tt.userType)

			ctx := context.Background()
			require.NoError(t, f.flow.SubmitPhone(ctx, "9123456789"))
			require.NoError(t, f.flow.SubmitOTP(ctx, validOTPCode))

			assert.Equal(t, services.StepSuccess, f.flow.Step(), "a named profile skips name entry")
			assert.Equal(t, tt.expected, f.waitForRoute(t))
		})
	}
}

func TestE2E_ResendIssuesNewChallenge(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.flow.SubmitPhone(ctx, "9876543210"))
	first := f.flow.ChallengeID()
	require.NotEmpty(t, first)

	require.NoError(t, f.flow.Resend(ctx))
	second := f.flow.ChallengeID()
	assert.NotEqual(t, first, second, "resend must issue a fresh challenge")

	// The new challenge verifies end to end.
	require.NoError(t, f.flow.SubmitOTP(ctx, validOTPCode))
	assert.Equal(t, services.StepNameEntry, f.flow.Step())
}

func TestE2E_ResumeFromPersistedSession(t *testing.T) {
	f := newFixture(t)
	f.platform.RegisterUser("9123456789", "Priya Sharma", "employee")

	ctx := context.Background()
	require.NoError(t, f.flow.SubmitPhone(ctx, "9123456789"))
	require.NoError(t, f.flow.SubmitOTP(ctx, validOTPCode))
	f.waitForRoute(t)
	f.flow.Close()

	// A second flow over the same store skips straight to success.
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	resumed := services.NewAuthFlow(
		f.client,
		f.sessions,
		services.NewTimerScheduler(),
		services.AuthFlowConfig{RedirectDelay: 10 * time.Millisecond},
		func(route domain.Route) { f.routes <- route },
		nil,
		logger,
	)
	defer resumed.Close()

	assert.True(t, resumed.Resume())
	assert.Equal(t, services.StepSuccess, resumed.Step())
	assert.Equal(t, domain.RouteEmployee, f.waitForRoute(t))
}
