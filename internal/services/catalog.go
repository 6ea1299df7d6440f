package services

import (
	"context"
	"math"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ganeshpawar09/CarZy-Admin/domain"
)

// Pricing defaults for the car screen's quote box.
const (
	defaultSlotHours    = 4
	tripProtectionRate  = 0.05
	defaultSeats        = 5
	defaultTransmission = "Manual"
)

// CarFeature is one named feature parsed from the record's feature list.
type CarFeature struct {
	Name      string
	Available bool
}

// CarView is the car record enriched for display: joined name, filtered
// image list, parsed features and the default slot quote. Documents is
// populated only in review mode, and stays nil when their fetch fails.
type CarView struct {
	Car               domain.Car
	Name              string
	Images            []string
	Features          []CarFeature
	BasePrice         float64
	TripProtectionFee float64
	Documents         *domain.CarVerificationDetail
}

// CatalogService loads the car detail screen.
type CatalogService struct {
	gateway domain.PlatformGateway
	logger  *logrus.Logger
}

// NewCatalogService creates a catalog service
func NewCatalogService(gateway domain.PlatformGateway, logger *logrus.Logger) *CatalogService {
	return &CatalogService{gateway: gateway, logger: logger}
}

// LoadCarScreen fetches and enriches one car. In review mode it also
// fetches the verification documents; that fetch failing is not fatal,
// the car still renders without them.
func (s *CatalogService) LoadCarScreen(ctx context.Context, carID, verificationID uint, reviewMode bool) (*CarView, error) {
	car, err := s.gateway.CarDetails(ctx, carID)
	if err != nil {
		return nil, err
	}

	view := enrichCar(car)

	if reviewMode && verificationID != 0 {
		docs, err := s.gateway.CarVerificationDetails(ctx, verificationID)
		if err != nil {
			s.logger.WithError(err).WithField("verification_id", verificationID).Warn("Could not load verification documents")
		} else {
			view.Documents = docs
		}
	}
	return view, nil
}

func enrichCar(car *domain.Car) *CarView {
	if car.Seats == 0 {
		car.Seats = defaultSeats
	}
	if car.Transmission == "" {
		car.Transmission = defaultTransmission
	}

	basePrice := car.PricePerHour * defaultSlotHours

	return &CarView{
		Car:               *car,
		Name:              strings.TrimSpace(car.CompanyName + " " + car.ModelName),
		Images:            carImages(car),
		Features:          parseFeatures(car.Features),
		BasePrice:         basePrice,
		TripProtectionFee: math.Round(basePrice * tripProtectionRate),
	}
}

func carImages(car *domain.Car) []string {
	var images []string
	for _, url := range []string{
		car.FrontViewImageURL,
		car.RearViewImageURL,
		car.LeftSideImageURL,
		car.RightSideImageURL,
	} {
		if url != "" {
			images = append(images, url)
		}
	}
	return images
}

func parseFeatures(raw string) []CarFeature {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var features []CarFeature
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if name != "" {
			features = append(features, CarFeature{Name: name, Available: true})
		}
	}
	return features
}
