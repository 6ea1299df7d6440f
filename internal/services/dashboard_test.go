package services

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ganeshpawar09/CarZy-Admin/domain"
	"github.com/ganeshpawar09/CarZy-Admin/internal/mocks"
)

func TestDashboardService_Stats(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	gateway := mocks.NewMockPlatformGateway()
	gateway.DashboardStatsFunc = func(ctx context.Context) (*domain.DashboardStats, error) {
		return &domain.DashboardStats{
			Users:      domain.UserStats{TotalUsers: 120},
			Financials: domain.FinancialStats{TotalTransactionAmount: 91150.75},
		}, nil
	}

	svc := NewDashboardService(gateway, logger)
	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 120, stats.Users.TotalUsers)
	assert.InDelta(t, 91150.75, stats.Financials.TotalTransactionAmount, 0.001)
}

func TestHumanizeKey(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{in: "status_counts", expected: "Status counts"},
		{in: "petrol", expected: "Petrol"},
		{in: "", expected: ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, HumanizeKey(tt.in))
	}
}
