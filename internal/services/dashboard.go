package services

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ganeshpawar09/CarZy-Admin/domain"
)

// DashboardService fetches the admin analytics aggregates. Rendering is
// the caller's concern; this only types the payload.
type DashboardService struct {
	gateway domain.PlatformGateway
	logger  *logrus.Logger
}

// NewDashboardService creates a dashboard service
func NewDashboardService(gateway domain.PlatformGateway, logger *logrus.Logger) *DashboardService {
	return &DashboardService{gateway: gateway, logger: logger}
}

// Stats fetches the nested aggregate counters.
func (s *DashboardService) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	stats, err := s.gateway.DashboardStats(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{
		"users":    stats.Users.TotalUsers,
		"cars":     stats.Cars.TotalCars,
		"bookings": stats.Bookings.TotalBookings,
	}).Debug("Dashboard stats loaded")
	return stats, nil
}

// HumanizeKey turns a snake_case counter key into a display label,
// e.g. "status_counts" -> "Status counts".
func HumanizeKey(key string) string {
	if key == "" {
		return ""
	}
	key = strings.ReplaceAll(key, "_", " ")
	return strings.ToUpper(key[:1]) + key[1:]
}
