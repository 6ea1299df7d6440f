package services

import (
	"context"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ganeshpawar09/CarZy-Admin/domain"
)

// CarReview is the navigation target produced by opening a car
// verification: the car screen is loaded with the verification id and the
// review-mode flag that gates documents and decision controls.
type CarReview struct {
	CarID          uint
	VerificationID uint
	ReviewMode     bool
}

// ReviewService owns the employee console's pending lists and submits
// approve/reject decisions. The acting employee comes from the session
// store; the pending lists are transient view state, refetched per screen
// load.
type ReviewService struct {
	gateway  domain.PlatformGateway
	employee domain.Session
	logger   *logrus.Logger

	mu       sync.Mutex
	users    []domain.UserVerification
	cars     []domain.CarVerification
	inFlight bool
}

// NewReviewService creates the review flow for the logged-in employee.
func NewReviewService(gateway domain.PlatformGateway, sessions domain.SessionStore, logger *logrus.Logger) (*ReviewService, error) {
	stored := sessions.Load()
	if stored == nil {
		return nil, domain.ErrNotAuthenticated
	}
	return &ReviewService{gateway: gateway, employee: *stored, logger: logger}, nil
}

// Employee returns the acting employee's profile.
func (s *ReviewService) Employee() domain.Session {
	return s.employee
}

// Refresh fetches both pending lists. Lists are replaced as each fetch
// lands; the first failure aborts and is surfaced to the screen.
func (s *ReviewService) Refresh(ctx context.Context) error {
	users, err := s.gateway.ListUserVerifications(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.users = users
	s.mu.Unlock()

	cars, err := s.gateway.ListCarVerifications(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.cars = cars
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{"users": len(users), "cars": len(cars)}).Debug("Pending verifications refreshed")
	return nil
}

// PendingUsers returns a copy of the pending user verifications.
func (s *ReviewService) PendingUsers() []domain.UserVerification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.UserVerification, len(s.users))
	copy(out, s.users)
	return out
}

// PendingCars returns a copy of the pending car verifications.
func (s *ReviewService) PendingCars() []domain.CarVerification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CarVerification, len(s.cars))
	copy(out, s.cars)
	return out
}

// OpenUser returns the detail view for a pending user verification.
func (s *ReviewService) OpenUser(verificationID uint) (*domain.UserVerification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.users {
		if v.ID == verificationID {
			copied := v
			return &copied, nil
		}
	}
	return nil, domain.ErrVerificationNotFound
}

// OpenCar resolves a pending car verification into a car-screen
// navigation target with review mode enabled.
func (s *ReviewService) OpenCar(verificationID uint) (*CarReview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.cars {
		if v.ID == verificationID {
			return &CarReview{CarID: v.CarID, VerificationID: v.ID, ReviewMode: true}, nil
		}
	}
	return nil, domain.ErrVerificationNotFound
}

// ApproveUser approves a pending user verification. No reason is required.
func (s *ReviewService) ApproveUser(ctx context.Context, verificationID uint) error {
	return s.decideUser(ctx, verificationID, domain.StatusApproved, "")
}

// RejectUser rejects a pending user verification. The reason is required
// and checked before any network call.
func (s *ReviewService) RejectUser(ctx context.Context, verificationID uint, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return domain.ErrEmptyReason
	}
	return s.decideUser(ctx, verificationID, domain.StatusRejected, reason)
}

// ApproveCar approves a pending car verification.
func (s *ReviewService) ApproveCar(ctx context.Context, verificationID uint) error {
	return s.decideCar(ctx, verificationID, domain.StatusApproved, "")
}

// RejectCar rejects a pending car verification with a mandatory reason.
func (s *ReviewService) RejectCar(ctx context.Context, verificationID uint, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return domain.ErrEmptyReason
	}
	return s.decideCar(ctx, verificationID, domain.StatusRejected, reason)
}

// InFlight reports whether a decision call is outstanding.
func (s *ReviewService) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

func (s *ReviewService) decideUser(ctx context.Context, verificationID uint, status domain.VerificationStatus, reason string) error {
	s.mu.Lock()
	var target *domain.UserVerification
	for i := range s.users {
		if s.users[i].ID == verificationID {
			target = &s.users[i]
			break
		}
	}
	if target == nil {
		s.mu.Unlock()
		return domain.ErrVerificationNotFound
	}
	if s.inFlight {
		s.mu.Unlock()
		return domain.ErrRequestInFlight
	}
	s.inFlight = true
	decision := domain.UserDecision{
		UserID:          target.UserID,
		VerifiedBy:      s.employee.ID,
		VerificationID:  verificationID,
		Status:          status,
		RejectionReason: reason,
	}
	s.mu.Unlock()

	defer s.release()

	if err := s.gateway.UpdateUserVerification(ctx, decision); err != nil {
		s.logger.WithError(err).WithField("verification_id", verificationID).Warn("User verification update failed")
		return err
	}

	s.mu.Lock()
	s.users = removeUserVerification(s.users, verificationID)
	s.mu.Unlock()
	s.logger.WithFields(logrus.Fields{"verification_id": verificationID, "status": status}).Info("User verification decided")
	return nil
}

func (s *ReviewService) decideCar(ctx context.Context, verificationID uint, status domain.VerificationStatus, reason string) error {
	s.mu.Lock()
	found := false
	for _, v := range s.cars {
		if v.ID == verificationID {
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return domain.ErrVerificationNotFound
	}
	if s.inFlight {
		s.mu.Unlock()
		return domain.ErrRequestInFlight
	}
	s.inFlight = true
	decision := domain.CarDecision{
		VerificationID:  verificationID,
		VerifierID:      s.employee.ID,
		Status:          status,
		RejectionReason: reason,
	}
	s.mu.Unlock()

	defer s.release()

	if err := s.gateway.UpdateCarVerification(ctx, decision); err != nil {
		s.logger.WithError(err).WithField("verification_id", verificationID).Warn("Car verification update failed")
		return err
	}

	s.mu.Lock()
	s.cars = removeCarVerification(s.cars, verificationID)
	s.mu.Unlock()
	s.logger.WithFields(logrus.Fields{"verification_id": verificationID, "status": status}).Info("Car verification decided")
	return nil
}

// release always clears the in-flight flag, success or failure.
func (s *ReviewService) release() {
	s.mu.Lock()
	s.inFlight = false
	s.mu.Unlock()
}

func removeUserVerification(list []domain.UserVerification, id uint) []domain.UserVerification {
	out := list[:0]
	for _, v := range list {
		if v.ID != id {
			out = append(out, v)
		}
	}
	return out
}

func removeCarVerification(list []domain.CarVerification, id uint) []domain.CarVerification {
	out := list[:0]
	for _, v := range list {
		if v.ID != id {
			out = append(out, v)
		}
	}
	return out
}
