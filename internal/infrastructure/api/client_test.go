package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ganeshpawar09/CarZy-Admin/domain"
)

func newTestClient(t *testing.T, router *gin.Engine) *Client {
	t.Helper()
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewClient(server.URL, 5*time.Second, logger)
}

func TestClient_SendOTP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	var gotBody sendOTPRequest
	var gotRequestID string
	router.POST("/api/v1/otp/send-otp", func(c *gin.Context) {
		require.NoError(t, c.ShouldBindJSON(&gotBody))
		gotRequestID = c.GetHeader("X-Request-ID")
		c.JSON(http.StatusOK, gin.H{"otp_id": "abc123"})
	})

	client := newTestClient(t, router)
	challenge, err := client.SendOTP(context.Background(), "9876543210")
	require.NoError(t, err)

	assert.Equal(t, "abc123", challenge.ID)
	assert.Equal(t, "9876543210", challenge.MobileNumber)
	assert.Equal(t, "9876543210", gotBody.MobileNumber)
	assert.NotEmpty(t, gotRequestID, "every call carries a correlation id")
}

func TestClient_VerifyOTP_ErrorEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/v1/otp/verify-otp", func(c *gin.Context) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid OTP"})
	})

	client := newTestClient(t, router)
	_, err := client.VerifyOTP(context.Background(), "abc123", "0000")
	require.Error(t, err)

	apiErr, ok := err.(*Error)
	require.True(t, ok, "expected *api.Error, got %T", err)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Invalid OTP", apiErr.Error())
}

func TestClient_ErrorWithoutMessageFallsBackToGeneric(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/v1/otp/send-otp", func(c *gin.Context) {
		c.String(http.StatusInternalServerError, "<html>boom</html>")
	})

	client := newTestClient(t, router)
	_, err := client.SendOTP(context.Background(), "9876543210")
	require.Error(t, err)
	assert.Equal(t, genericErrorMessage, err.Error())
}

func TestClient_UpdateName_SendsBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	var gotAuth string
	var gotBody updateNameRequest
	router.POST("/api/v1/user/update-name", func(c *gin.Context) {
		gotAuth = c.GetHeader("Authorization")
		require.NoError(t, c.ShouldBindJSON(&gotBody))
		c.JSON(http.StatusOK, domain.Session{ID: 7, FullName: gotBody.FullName, UserType: "user"})
	})

	client := newTestClient(t, router)
	session, err := client.UpdateName(context.Background(), "tok-1", 7, "Asha")
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.Equal(t, updateNameRequest{UserID: 7, FullName: "Asha"}, gotBody)
	assert.Equal(t, "Asha", session.FullName)
}

func TestClient_UpdateCarVerification_Payload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	var got map[string]interface{}
	router.POST("/api/v1/employee/car-verification-update", func(c *gin.Context) {
		require.NoError(t, c.ShouldBindJSON(&got))
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	client := newTestClient(t, router)
	err := client.UpdateCarVerification(context.Background(), domain.CarDecision{
		VerificationID: 42,
		VerifierID:     3,
		Status:         domain.StatusApproved,
	})
	require.NoError(t, err)

	assert.Equal(t, float64(42), got["verification_id"])
	assert.Equal(t, float64(3), got["verifier_id"])
	assert.Equal(t, "approved", got["status"])
	// Approval must not carry a rejection reason.
	_, present := got["rejection_reason"]
	assert.False(t, present)
}

func TestClient_CarDetails_PathSuffixedID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/v1/car-details/:id", func(c *gin.Context) {
		assert.Equal(t, "9", c.Param("id"))
		c.JSON(http.StatusOK, domain.Car{ID: 9, CompanyName: "Maruti", ModelName: "Swift", PricePerHour: 120})
	})

	client := newTestClient(t, router)
	car, err := client.CarDetails(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, "Maruti", car.CompanyName)
}

func TestClient_DashboardStats_DecodesNestedAggregates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/v1/admin", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"users": gin.H{
				"total_users": 120,
				"user_growth_last_six_months": []gin.H{
					{"month": "Mar", "count": 10},
					{"month": "Apr", "count": 25},
				},
			},
			"cars":       gin.H{"total_cars": 34, "cars_by_fuel_type": gin.H{"petrol": 20, "diesel": 14}},
			"bookings":   gin.H{"total_bookings": 310, "status_counts": gin.H{"completed": 290}, "total_booking_time_hours": 1204.5, "total_booking_amount": 84210},
			"financials": gin.H{"total_transaction_amount": 91150.75},
		})
	})

	client := newTestClient(t, router)
	stats, err := client.DashboardStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 120, stats.Users.TotalUsers)
	assert.Len(t, stats.Users.UserGrowthLastSixMonths, 2)
	assert.Equal(t, 20, stats.Cars.CarsByFuelType["petrol"])
	assert.Equal(t, 290, stats.Bookings.StatusCounts["completed"])
	assert.InDelta(t, 91150.75, stats.Financials.TotalTransactionAmount, 0.001)
}
