package constant

type contextKey int

const (
	// UserIDKey carries the authenticated user id in a request context.
	UserIDKey contextKey = iota
	// TokenScopeKey carries the scope of the bearer token that authenticated the request.
	TokenScopeKey
)

// Token scopes. Registration and reset tokens only authorize their own flow.
const (
	TokenScopeFull         = "full"
	TokenScopeRegistration = "registration"
	TokenScopeReset        = "reset"
)

type UserStatus string

const (
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusInactive UserStatus = "INACTIVE"
	UserStatusBanned   UserStatus = "BANNED"
)

type RegistrationStage string

const (
	StagePhoneVerified RegistrationStage = "PHONE_VERIFIED"
	StageCompleted     RegistrationStage = "COMPLETED"
)

type VerificationState string

const (
	VerificationStateNone     VerificationState = "NONE"
	VerificationStatePending  VerificationState = "PENDING"
	VerificationStateApproved VerificationState = "APPROVED"
	VerificationStateRejected VerificationState = "REJECTED"
)

// OTP intents select the code length and the redis namespace.
const (
	OTPIntentRegister = "register"
	OTPIntentRestore  = "restore"
)

const (
	OTPLengthRegister = 6
	OTPLengthRestore  = 4
)
