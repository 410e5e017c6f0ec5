package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrUnauthorize
	ErrForbidden
	ErrPhoneExists
	ErrInvalidPassword
	ErrInvalidPhone
	ErrWeakPassword
	ErrPasswordMismatch
	ErrInvalidOTP
	ErrOTPExpired
	ErrOTPCooldown
	ErrUserBanned
	ErrUserInactive
	ErrRegistrationIncomplete
	ErrInvalidTokenScope
	ErrIPBlacklisted
	ErrInvalidPointRole
	ErrInvalidGeoParent
	ErrVerificationPending
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:                "success",
	ErrInternal:               "error internal",
	ErrNotFound:               "data not found",
	ErrInvalidRequest:         "invalid request",
	ErrUnauthorize:            "unauthorize request",
	ErrForbidden:              "forbidden",
	ErrPhoneExists:            "phone already registered",
	ErrInvalidPassword:        "password invalid",
	ErrInvalidPhone:           "phone number format invalid",
	ErrWeakPassword:           "password does not meet policy",
	ErrPasswordMismatch:       "password confirmation does not match",
	ErrInvalidOTP:             "verification code invalid",
	ErrOTPExpired:             "verification code expired",
	ErrOTPCooldown:            "verification code recently sent, retry later",
	ErrUserBanned:             "user is banned",
	ErrUserInactive:           "user is inactive",
	ErrRegistrationIncomplete: "registration is not completed",
	ErrInvalidTokenScope:      "token scope not allowed for this operation",
	ErrIPBlacklisted:          "access denied",
	ErrInvalidPointRole:       "listing point roles invalid",
	ErrInvalidGeoParent:       "geo location parent invalid",
	ErrVerificationPending:    "verification already submitted",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:                http.StatusOK,
	ErrInternal:               http.StatusInternalServerError,
	ErrNotFound:               http.StatusNotFound,
	ErrInvalidRequest:         http.StatusBadRequest,
	ErrUnauthorize:            http.StatusUnauthorized,
	ErrForbidden:              http.StatusForbidden,
	ErrPhoneExists:            http.StatusConflict,
	ErrInvalidPassword:        http.StatusBadRequest,
	ErrInvalidPhone:           http.StatusBadRequest,
	ErrWeakPassword:           http.StatusBadRequest,
	ErrPasswordMismatch:       http.StatusBadRequest,
	ErrInvalidOTP:             http.StatusBadRequest,
	ErrOTPExpired:             http.StatusBadRequest,
	ErrOTPCooldown:            http.StatusTooManyRequests,
	ErrUserBanned:             http.StatusForbidden,
	ErrUserInactive:           http.StatusForbidden,
	ErrRegistrationIncomplete: http.StatusForbidden,
	ErrInvalidTokenScope:      http.StatusForbidden,
	ErrIPBlacklisted:          http.StatusForbidden,
	ErrInvalidPointRole:       http.StatusBadRequest,
	ErrInvalidGeoParent:       http.StatusBadRequest,
	ErrVerificationPending:    http.StatusConflict,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:                "0000",
	ErrInternal:               "0001",
	ErrNotFound:               "0002",
	ErrInvalidRequest:         "0003",
	ErrUnauthorize:            "0004",
	ErrForbidden:              "0005",
	ErrPhoneExists:            "0006",
	ErrInvalidPassword:        "0007",
	ErrInvalidPhone:           "0008",
	ErrWeakPassword:           "0009",
	ErrPasswordMismatch:       "0010",
	ErrInvalidOTP:             "0011",
	ErrOTPExpired:             "0012",
	ErrOTPCooldown:            "0013",
	ErrUserBanned:             "0014",
	ErrUserInactive:           "0015",
	ErrRegistrationIncomplete: "0016",
	ErrInvalidTokenScope:      "0017",
	ErrIPBlacklisted:          "0018",
	ErrInvalidPointRole:       "0019",
	ErrInvalidGeoParent:       "0020",
	ErrVerificationPending:    "0021",
}
