package api

// Request and response envelopes for the platform endpoints. Field names
// follow the wire format exactly; everything else decodes straight into
// the domain structs.

type sendOTPRequest struct {
	MobileNumber string `json:"mobile_number"`
}

type sendOTPResponse struct {
	OTPID string `json:"otp_id"`
}

type verifyOTPRequest struct {
	OTPID string `json:"otp_id"`
	OTP   string `json:"otp"`
}

type updateNameRequest struct {
	UserID   uint   `json:"user_id"`
	FullName string `json:"full_name"`
}

// errorResponse is the platform's failure envelope. Message may be empty,
// in which case a generic error is surfaced instead.
type errorResponse struct {
	Message string `json:"message"`
}
