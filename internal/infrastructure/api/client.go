package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ganeshpawar09/CarZy-Admin/domain"
)

// Platform endpoint paths, relative to the configured base URL.
const (
	pathSendOTP                = "/api/v1/otp/send-otp"
	pathVerifyOTP              = "/api/v1/otp/verify-otp"
	pathUpdateName             = "/api/v1/user/update-name"
	pathListUserVerifications  = "/api/v1/employee/all-user-verifications"
	pathListCarVerifications   = "/api/v1/employee/all-car-verifications"
	pathUserVerificationUpdate = "/api/v1/employee/user-verification-update"
	pathCarVerificationUpdate  = "/api/v1/employee/car-verification-update"
	pathCarDetails             = "/api/v1/car-details"
	pathCarVerificationDetails = "/api/v1/car-verification-details"
	pathAdmin                  = "/api/v1/admin"
)

// genericErrorMessage is surfaced when the platform gives no usable message.
const genericErrorMessage = "Something went wrong. Please try again."

// Error is a non-success platform response reduced to a display string.
type Error struct {
	StatusCode int
	Message    string
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return genericErrorMessage
}

// Client implements domain.PlatformGateway over JSON HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient creates a platform API client
func NewClient(baseURL string, timeout time.Duration, logger *logrus.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// SendOTP implements domain.PlatformGateway
func (c *Client) SendOTP(ctx context.Context, mobileNumber string) (*domain.OTPChallenge, error) {
	var resp sendOTPResponse
	err := c.do(ctx, http.MethodPost, pathSendOTP, sendOTPRequest{MobileNumber: mobileNumber}, "", &resp)
	if err != nil {
		return nil, err
	}
	return &domain.OTPChallenge{ID: resp.OTPID, MobileNumber: mobileNumber}, nil
}

// VerifyOTP implements domain.PlatformGateway
func (c *Client) VerifyOTP(ctx context.Context, otpID, code string) (*domain.Session, error) {
	var session domain.Session
	err := c.do(ctx, http.MethodPost, pathVerifyOTP, verifyOTPRequest{OTPID: otpID, OTP: code}, "", &session)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// UpdateName implements domain.PlatformGateway
func (c *Client) UpdateName(ctx context.Context, token string, userID uint, fullName string) (*domain.Session, error) {
	var session domain.Session
	err := c.do(ctx, http.MethodPost, pathUpdateName, updateNameRequest{UserID: userID, FullName: fullName}, token, &session)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// ListUserVerifications implements domain.PlatformGateway
func (c *Client) ListUserVerifications(ctx context.Context) ([]domain.UserVerification, error) {
	var list []domain.UserVerification
	if err := c.do(ctx, http.MethodGet, pathListUserVerifications, nil, "", &list); err != nil {
		return nil, err
	}
	return list, nil
}

// ListCarVerifications implements domain.PlatformGateway
func (c *Client) ListCarVerifications(ctx context.Context) ([]domain.CarVerification, error) {
	var list []domain.CarVerification
	if err := c.do(ctx, http.MethodGet, pathListCarVerifications, nil, "", &list); err != nil {
		return nil, err
	}
	return list, nil
}

// UpdateUserVerification implements domain.PlatformGateway
func (c *Client) UpdateUserVerification(ctx context.Context, decision domain.UserDecision) error {
	return c.do(ctx, http.MethodPost, pathUserVerificationUpdate, decision, "", nil)
}

// UpdateCarVerification implements domain.PlatformGateway
func (c *Client) UpdateCarVerification(ctx context.Context, decision domain.CarDecision) error {
	return c.do(ctx, http.MethodPost, pathCarVerificationUpdate, decision, "", nil)
}

// CarDetails implements domain.PlatformGateway
func (c *Client) CarDetails(ctx context.Context, carID uint) (*domain.Car, error) {
	var car domain.Car
	path := fmt.Sprintf("%s/%d", pathCarDetails, carID)
	if err := c.do(ctx, http.MethodGet, path, nil, "", &car); err != nil {
		return nil, err
	}
	return &car, nil
}

// CarVerificationDetails implements domain.PlatformGateway
func (c *Client) CarVerificationDetails(ctx context.Context, verificationID uint) (*domain.CarVerificationDetail, error) {
	var detail domain.CarVerificationDetail
	path := fmt.Sprintf("%s/%d", pathCarVerificationDetails, verificationID)
	if err := c.do(ctx, http.MethodGet, path, nil, "", &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// DashboardStats implements domain.PlatformGateway
func (c *Client) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	var stats domain.DashboardStats
	if err := c.do(ctx, http.MethodPost, pathAdmin, nil, "", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// do sends one JSON request and decodes the response into out (when out is
// non-nil). Non-2xx responses are reduced to *Error with the platform's
// message field, or a generic message when none is present.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, token string, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.WithFields(logrus.Fields{
		"method":     method,
		"path":       path,
		"request_id": requestID,
	}).Debug("Calling platform API")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("platform request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp errorResponse
		// A non-JSON error body falls through to the generic message.
		_ = json.Unmarshal(data, &errResp)
		c.logger.WithFields(logrus.Fields{
			"status":     resp.StatusCode,
			"path":       path,
			"request_id": requestID,
		}).Warn("Platform API returned an error")
		return &Error{StatusCode: resp.StatusCode, Message: errResp.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.PlatformGateway = (*Client)(nil)
