package e2e

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ganeshpawar09/CarZy-Admin/domain"
)

// validOTPCode is the only code the fake platform accepts.
const validOTPCode = "1234"

// platformUser is a registered account on the fake platform.
type platformUser struct {
	ID       uint
	FullName string
	UserType string
	Token    string
}

// TestServer is an in-memory CarZy platform: OTP issuance, profiles,
// verification queues and the admin aggregate, backed by maps.
type TestServer struct {
	Server  *httptest.Server
	Router  *gin.Engine
	BaseURL string

	mu         sync.Mutex
	nextOTPID  int
	nextUserID uint
	otps       map[string]string // otp_id -> mobile_number
	users      map[string]*platformUser

	userVerifications []domain.UserVerification
	carVerifications  []domain.CarVerification
	cars              map[uint]domain.Car
	carDocuments      map[uint]domain.CarVerificationDetail
	stats             domain.DashboardStats

	UserDecisions []domain.UserDecision
	CarDecisions  []domain.CarDecision
}

// NewTestServer starts a fake platform seeded with the standard fixture
// data. The server is stopped automatically when the test finishes.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ts := &TestServer{
		nextOTPID:  1,
		nextUserID: 100,
		otps:       make(map[string]string),
		users:      make(map[string]*platformUser),
		cars:       make(map[uint]domain.Car),
		carDocuments: map[uint]domain.CarVerificationDetail{
			42: {
				ID:                  42,
				RCImageURL:          "https://cdn.carzy.test/rc/42.jpg",
				RCExpiryDate:        time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC),
				PUCImageURL:         "https://cdn.carzy.test/puc/42.jpg",
				PUCExpiryDate:       time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC),
				InsuranceImageURL:   "https://cdn.carzy.test/ins/42.jpg",
				InsuranceExpiryDate: time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC),
			},
		},
	}

	ts.cars[9] = domain.Car{
		ID:                9,
		CompanyName:       "Maruti",
		ModelName:         "Swift",
		CarNumber:         "MH12AB1234",
		FuelType:          "petrol",
		ManufactureYear:   2022,
		PricePerHour:      120,
		Features:          "AC,Bluetooth,Airbags",
		FrontViewImageURL: "https://cdn.carzy.test/cars/9/front.jpg",
		RearViewImageURL:  "https://cdn.carzy.test/cars/9/rear.jpg",
		CarRating:         4.5,
		NoOfCarRating:     12,
	}
	ts.userVerifications = []domain.UserVerification{
		{ID: 11, UserID: 101, CreatedAt: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC), LicensePhotoURL: "https://cdn.carzy.test/lic/101.jpg", PassportPhotoURL: "https://cdn.carzy.test/pass/101.jpg"},
		{ID: 12, UserID: 102, CreatedAt: time.Date(2026, 8, 2, 10, 0, 0, 0, time.UTC), LicensePhotoURL: "https://cdn.carzy.test/lic/102.jpg", PassportPhotoURL: "https://cdn.carzy.test/pass/102.jpg"},
	}
	ts.carVerifications = []domain.CarVerification{
		{ID: 42, CarID: 9, CarNumber: "MH12AB1234", CreatedAt: time.Date(2026, 8, 3, 10, 0, 0, 0, time.UTC)},
	}
	ts.stats = domain.DashboardStats{
		Users: domain.UserStats{
			TotalUsers: 120,
			UserGrowthLastSixMonths: []domain.MonthlyCounter{
				{Month: "Mar 2026", Count: 12},
				{Month: "Apr 2026", Count: 18},
			},
		},
		Cars: domain.CarStats{
			TotalCars:      35,
			CarsByFuelType: map[string]int{"petrol": 20, "diesel": 10, "electric": 5},
		},
		Bookings: domain.BookingStats{
			TotalBookings:         310,
			StatusCounts:          map[string]int{"completed": 280, "cancelled": 30},
			TotalBookingTimeHours: 1240,
			TotalBookingAmount:    148800,
		},
		Financials: domain.FinancialStats{TotalTransactionAmount: 91150.75},
	}

	router := gin.New()
	ts.Router = router
	ts.registerRoutes(router)

	ts.Server = httptest.NewServer(router)
	ts.BaseURL = ts.Server.URL
	t.Cleanup(ts.Server.Close)

	return ts
}

// RegisterUser seeds an account so the OTP flow resolves to a known
// profile instead of a fresh Guest.
func (ts *TestServer) RegisterUser(mobileNumber, fullName, userType string) *platformUser {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	user := &platformUser{
		ID:       ts.nextUserID,
		FullName: fullName,
		UserType: userType,
		Token:    fmt.Sprintf("token-%d", ts.nextUserID),
	}
	ts.nextUserID++
	ts.users[mobileNumber] = user
	return user
}

func (ts *TestServer) registerRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")
	v1.POST("/otp/send-otp", ts.handleSendOTP)
	v1.POST("/otp/verify-otp", ts.handleVerifyOTP)
	v1.POST("/user/update-name", ts.handleUpdateName)
	v1.GET("/employee/all-user-verifications", ts.handleListUserVerifications)
	v1.GET("/employee/all-car-verifications", ts.handleListCarVerifications)
	v1.POST("/employee/user-verification-update", ts.handleUserVerificationUpdate)
	v1.POST("/employee/car-verification-update", ts.handleCarVerificationUpdate)
	v1.GET("/car-details/:id", ts.handleCarDetails)
	v1.GET("/car-verification-details/:id", ts.handleCarVerificationDetails)
	v1.POST("/admin", ts.handleAdmin)
}

func (ts *TestServer) handleSendOTP(c *gin.Context) {
	var req struct {
		MobileNumber string `json:"mobile_number"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.MobileNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "mobile_number is required"})
		return
	}

	ts.mu.Lock()
	otpID := fmt.Sprintf("otp-%d", ts.nextOTPID)
	ts.nextOTPID++
	ts.otps[otpID] = req.MobileNumber
	ts.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"otp_id": otpID})
}

func (ts *TestServer) handleVerifyOTP(c *gin.Context) {
	var req struct {
		OTPID string `json:"otp_id"`
		OTP   string `json:"otp"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request"})
		return
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()

	mobileNumber, ok := ts.otps[req.OTPID]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "OTP expired. Please request a new one."})
		return
	}
	if req.OTP != validOTPCode {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid OTP"})
		return
	}
	delete(ts.otps, req.OTPID)

	user, ok := ts.users[mobileNumber]
	if !ok {
		user = &platformUser{
			ID:       ts.nextUserID,
			FullName: domain.GuestName,
			UserType: "user",
			Token:    fmt.Sprintf("token-%d", ts.nextUserID),
		}
		ts.nextUserID++
		ts.users[mobileNumber] = user
	}

	c.JSON(http.StatusOK, domain.Session{
		ID:           user.ID,
		FullName:     user.FullName,
		MobileNumber: mobileNumber,
		UserType:     user.UserType,
		Token:        user.Token,
	})
}

func (ts *TestServer) handleUpdateName(c *gin.Context) {
	var req struct {
		UserID   uint   `json:"user_id"`
		FullName string `json:"full_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.FullName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "full_name is required"})
		return
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()

	for mobileNumber, user := range ts.users {
		if user.ID == req.UserID {
			if c.GetHeader("Authorization") != "Bearer "+user.Token {
				c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
				return
			}
			user.FullName = req.FullName
			c.JSON(http.StatusOK, domain.Session{
				ID:           user.ID,
				FullName:     user.FullName,
				MobileNumber: mobileNumber,
				UserType:     user.UserType,
			})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
}

func (ts *TestServer) handleListUserVerifications(c *gin.Context) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	c.JSON(http.StatusOK, ts.userVerifications)
}

func (ts *TestServer) handleListCarVerifications(c *gin.Context) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	c.JSON(http.StatusOK, ts.carVerifications)
}

func (ts *TestServer) handleUserVerificationUpdate(c *gin.Context) {
	var decision domain.UserDecision
	if err := c.ShouldBindJSON(&decision); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request"})
		return
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()

	for i, v := range ts.userVerifications {
		if v.ID == decision.VerificationID {
			ts.userVerifications = append(ts.userVerifications[:i], ts.userVerifications[i+1:]...)
			ts.UserDecisions = append(ts.UserDecisions, decision)
			c.JSON(http.StatusOK, gin.H{"message": "updated"})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "verification not found"})
}

func (ts *TestServer) handleCarVerificationUpdate(c *gin.Context) {
	var decision domain.CarDecision
	if err := c.ShouldBindJSON(&decision); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request"})
		return
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()

	for i, v := range ts.carVerifications {
		if v.ID == decision.VerificationID {
			ts.carVerifications = append(ts.carVerifications[:i], ts.carVerifications[i+1:]...)
			ts.CarDecisions = append(ts.CarDecisions, decision)
			c.JSON(http.StatusOK, gin.H{"message": "updated"})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "verification not found"})
}

func (ts *TestServer) handleCarDetails(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid car id"})
		return
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()

	car, ok := ts.cars[uint(id)]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "car not found"})
		return
	}
	c.JSON(http.StatusOK, car)
}

func (ts *TestServer) handleCarVerificationDetails(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid verification id"})
		return
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()

	detail, ok := ts.carDocuments[uint(id)]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "verification not found"})
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (ts *TestServer) handleAdmin(c *gin.Context) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	c.JSON(http.StatusOK, ts.stats)
}
