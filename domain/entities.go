package domain

import "time"

// GuestName is the placeholder full name the platform assigns to users who
// verified their phone but have not completed onboarding yet.
const GuestName = "Guest"

// User types returned by the platform in the `user_type` field. Anything
// outside this set is treated as a regular customer.
const (
	UserTypeAdmin    = "admin"
	UserTypeEmployee = "employee"
)

// Session represents the currently authenticated principal as persisted on
// this device. It mirrors the profile payload of the verify-otp endpoint.
type Session struct {
	ID           uint   `json:"id"`
	FullName     string `json:"full_name"`
	MobileNumber string `json:"mobile_number"`
	UserType     string `json:"user_type"`
	Token        string `json:"token,omitempty"`
}

// IsGuest reports whether the session still needs the name-entry step.
func (s *Session) IsGuest() bool {
	return s.FullName == GuestName
}

// Route identifies a post-login destination screen.
type Route string

const (
	RouteHome     Route = "/"
	RouteEmployee Route = "/employee"
	RouteAdmin    Route = "/admin"
)

// RouteForUserType maps a platform user type to its landing screen.
func RouteForUserType(userType string) Route {
	switch userType {
	case UserTypeAdmin:
		return RouteAdmin
	case UserTypeEmployee:
		return RouteEmployee
	default:
		return RouteHome
	}
}

// OTPChallenge represents one in-flight verification attempt. The ID is
// opaque and server-issued; requesting a new code invalidates the old ID.
type OTPChallenge struct {
	ID           string
	MobileNumber string
}

// VerificationStatus is a review decision as sent on the wire.
type VerificationStatus string

const (
	StatusApproved VerificationStatus = "approved"
	StatusRejected VerificationStatus = "rejected"
)

// UserVerification is a pending identity-document review task.
type UserVerification struct {
	ID               uint      `json:"id"`
	UserID           uint      `json:"user_id"`
	CreatedAt        time.Time `json:"created_at"`
	LicensePhotoURL  string    `json:"license_photo_url"`
	PassportPhotoURL string    `json:"passport_photo_url"`
}

// CarVerification is a pending car-documentation review task.
type CarVerification struct {
	ID        uint      `json:"id"`
	CarID     uint      `json:"car_id"`
	CarNumber string    `json:"car_number"`
	CreatedAt time.Time `json:"created_at"`
}

// CarVerificationDetail holds the documents reviewed on the car screen.
type CarVerificationDetail struct {
	ID                  uint      `json:"id"`
	RCImageURL          string    `json:"rc_image_url"`
	RCExpiryDate        time.Time `json:"rc_expiry_date"`
	PUCImageURL         string    `json:"puc_image_url"`
	PUCExpiryDate       time.Time `json:"puc_expiry_date"`
	InsuranceImageURL   string    `json:"insurance_image_url"`
	InsuranceExpiryDate time.Time `json:"insurance_expiry_date"`
}

// UserDecision is the payload of a user-verification review action.
type UserDecision struct {
	UserID          uint               `json:"user_id"`
	VerifiedBy      uint               `json:"verified_by"`
	VerificationID  uint               `json:"verification_id"`
	Status          VerificationStatus `json:"status"`
	RejectionReason string             `json:"rejection_reason,omitempty"`
}

// CarDecision is the payload of a car-verification review action.
type CarDecision struct {
	VerificationID  uint               `json:"verification_id"`
	VerifierID      uint               `json:"verifier_id"`
	Status          VerificationStatus `json:"status"`
	RejectionReason string             `json:"rejection_reason,omitempty"`
}

// Car is the raw car record served by the car-details endpoint.
type Car struct {
	ID                uint    `json:"id"`
	CompanyName       string  `json:"company_name"`
	ModelName         string  `json:"model_name"`
	CarNumber         string  `json:"car_number"`
	FuelType          string  `json:"fuel_type"`
	Transmission      string  `json:"transmission"`
	Seats             int     `json:"seats"`
	ManufactureYear   int     `json:"manufacture_year"`
	PricePerHour      float64 `json:"price_per_hour"`
	Location          string  `json:"location"`
	Features          string  `json:"features"`
	FrontViewImageURL string  `json:"front_view_image_url"`
	RearViewImageURL  string  `json:"rear_view_image_url"`
	LeftSideImageURL  string  `json:"left_side_image_url"`
	RightSideImageURL string  `json:"right_side_image_url"`
	CarRating         float64 `json:"car_rating"`
	NoOfCarRating     int     `json:"no_of_car_rating"`
}

// UserStats aggregates user counters for the admin dashboard.
type UserStats struct {
	TotalUsers              int              `json:"total_users"`
	UserGrowthLastSixMonths []MonthlyCounter `json:"user_growth_last_six_months"`
}

// MonthlyCounter is one point of a month-bucketed series.
type MonthlyCounter struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// CarStats aggregates fleet counters for the admin dashboard.
type CarStats struct {
	TotalCars          int            `json:"total_cars"`
	CarsByFuelType     map[string]int `json:"cars_by_fuel_type"`
	CarsByTransmission map[string]int `json:"cars_by_transmission"`
	CarsByType         map[string]int `json:"cars_by_type"`
}

// BookingStats aggregates booking counters for the admin dashboard.
type BookingStats struct {
	TotalBookings         int            `json:"total_bookings"`
	StatusCounts          map[string]int `json:"status_counts"`
	TotalBookingTimeHours float64        `json:"total_booking_time_hours"`
	TotalBookingAmount    float64        `json:"total_booking_amount"`
}

// FinancialStats aggregates money counters for the admin dashboard.
type FinancialStats struct {
	TotalTransactionAmount float64 `json:"total_transaction_amount"`
}

// DashboardStats is the nested aggregate served by the admin endpoint.
type DashboardStats struct {
	Users      UserStats      `json:"users"`
	Cars       CarStats       `json:"cars"`
	Bookings   BookingStats   `json:"bookings"`
	Financials FinancialStats `json:"financials"`
}
