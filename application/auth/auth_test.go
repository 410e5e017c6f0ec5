package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	appauth "github.com/cargomarket/backend/application/auth"
	"github.com/cargomarket/backend/cmd/config"
	"github.com/cargomarket/backend/constant"
	authmocks "github.com/cargomarket/backend/mocks/application/auth"
	activitymocks "github.com/cargomarket/backend/mocks/repository/activitylog"
	redismocks "github.com/cargomarket/backend/mocks/repository/redis"
	usermocks "github.com/cargomarket/backend/mocks/repository/user"
	"github.com/cargomarket/backend/model"
	cerr "github.com/cargomarket/backend/utils/errors"
)

const testPhone = "+380501234567"

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:         "test-secret-key-for-jwt-signing",
			AccessTTL:         15 * time.Minute,
			RefreshTTL:        time.Hour,
			RegistrationTTL:   time.Hour,
			ResetTTL:          15 * time.Minute,
			OTPTTL:            5 * time.Minute,
			OTPResendCooldown: time.Minute,
		},
		SMS: config.SMSConfig{MockMode: true},
	}
}

func assertErrCode(t *testing.T, err error, code constant.ErrorType) {
	t.Helper()
	var ce cerr.CustomError
	if !errors.As(err, &ce) {
		t.Fatalf("error type = %T, want CustomError", err)
	}
	if ce.ErrorCode() != constant.ErrorTypeCode[code] {
		t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[code])
	}
}

func TestAuthApp_CheckPhone(t *testing.T) {
	type fields struct {
		config       *config.Config
		userRepo     *usermocks.UserRepository
		redisRepo    *redismocks.Repository
		activityRepo *activitymocks.ActivityLogRepository
		smsPublisher *authmocks.SMSPublisher
	}
	type args struct {
		ctx context.Context
		req *model.CheckPhoneRequest
	}
	tests := []struct {
		name     string
		fields   fields
		args     args
		mockCall func(f fields)
		want     *model.CheckPhoneResponse
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: new phone gets a registration code",
			fields: fields{
				config:       testConfig(),
				userRepo:     usermocks.NewUserRepository(t),
				redisRepo:    redismocks.NewRepository(t),
				activityRepo: activitymocks.NewActivityLogRepository(t),
				smsPublisher: authmocks.NewSMSPublisher(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.CheckPhoneRequest{Phone: testPhone},
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Phone: testPhone}).
					Return(nil, nil).
					Once()
				f.redisRepo.
					On("CooldownTTL", mock.Anything, constant.OTPIntentRegister, testPhone).
					Return(time.Duration(0), nil).
					Once()
				f.redisRepo.
					On("SetOTP", mock.Anything, constant.OTPIntentRegister, testPhone, appauth.MockOTPCode, 5*time.Minute).
					Return(nil).
					Once()
				f.redisRepo.
					On("SetCooldown", mock.Anything, constant.OTPIntentRegister, testPhone, time.Minute).
					Return(nil).
					Once()
			},
			want: &model.CheckPhoneResponse{
				Exists:        false,
				OTPSent:       true,
				RetryAfterSec: 60,
			},
		},
		{
			name: "success: completed account gets no registration code",
			fields: fields{
				config:       testConfig(),
				userRepo:     usermocks.NewUserRepository(t),
				redisRepo:    redismocks.NewRepository(t),
				activityRepo: activitymocks.NewActivityLogRepository(t),
				smsPublisher: authmocks.NewSMSPublisher(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.CheckPhoneRequest{Phone: testPhone},
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Phone: testPhone}).
					Return(&model.UserEntity{
						ID:                1,
						Phone:             testPhone,
						Status:            constant.UserStatusActive,
						RegistrationStage: constant.StageCompleted,
					}, nil).
					Once()
			},
			want: &model.CheckPhoneResponse{
				Exists:            true,
				RegistrationStage: constant.StageCompleted,
				OTPSent:           false,
			},
		},
		{
			name: "error: resend inside cooldown window",
			fields: fields{
				config:       testConfig(),
				userRepo:     usermocks.NewUserRepository(t),
				redisRepo:    redismocks.NewRepository(t),
				activityRepo: activitymocks.NewActivityLogRepository(t),
				smsPublisher: authmocks.NewSMSPublisher(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.CheckPhoneRequest{Phone: testPhone},
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Phone: testPhone}).
					Return(nil, nil).
					Once()
				f.redisRepo.
					On("CooldownTTL", mock.Anything, constant.OTPIntentRegister, testPhone).
					Return(40*time.Second, nil).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrOTPCooldown,
		},
		{
			name: "error: banned user",
			fields: fields{
				config:       testConfig(),
				userRepo:     usermocks.NewUserRepository(t),
				redisRepo:    redismocks.NewRepository(t),
				activityRepo: activitymocks.NewActivityLogRepository(t),
				smsPublisher: authmocks.NewSMSPublisher(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.CheckPhoneRequest{Phone: testPhone},
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Phone: testPhone}).
					Return(&model.UserEntity{
						ID:     1,
						Phone:  testPhone,
						Status: constant.UserStatusBanned,
					}, nil).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrUserBanned,
		},
		{
			name: "error: restore for unknown phone",
			fields: fields{
				config:       testConfig(),
				userRepo:     usermocks.NewUserRepository(t),
				redisRepo:    redismocks.NewRepository(t),
				activityRepo: activitymocks.NewActivityLogRepository(t),
				smsPublisher: authmocks.NewSMSPublisher(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.CheckPhoneRequest{Phone: testPhone, Intent: constant.OTPIntentRestore},
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Phone: testPhone}).
					Return(nil, nil).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
		{
			name: "error: malformed phone",
			fields: fields{
				config:       testConfig(),
				userRepo:     usermocks.NewUserRepository(t),
				redisRepo:    redismocks.NewRepository(t),
				activityRepo: activitymocks.NewActivityLogRepository(t),
				smsPublisher: authmocks.NewSMSPublisher(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.CheckPhoneRequest{Phone: "0501234567"},
			},
			wantErr: true,
			errCode: constant.ErrInvalidPhone,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := appauth.NewAuthApp(tt.fields.config, tt.fields.userRepo, tt.fields.redisRepo,
				tt.fields.activityRepo, tt.fields.smsPublisher)

			got, err := app.CheckPhone(tt.args.ctx, tt.args.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckPhone() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
				return
			}
			if got.Exists != tt.want.Exists || got.OTPSent != tt.want.OTPSent ||
				got.RegistrationStage != tt.want.RegistrationStage || got.RetryAfterSec != tt.want.RetryAfterSec {
				t.Fatalf("CheckPhone() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestAuthApp_VerifyPhone(t *testing.T) {
	type fields struct {
		config       *config.Config
		userRepo     *usermocks.UserRepository
		redisRepo    *redismocks.Repository
		activityRepo *activitymocks.ActivityLogRepository
		smsPublisher *authmocks.SMSPublisher
	}
	tests := []struct {
		name      string
		fields    fields
		req       *model.VerifyPhoneRequest
		mockCall  func(f fields)
		wantStage constant.RegistrationStage
		wantErr   bool
		errCode   constant.ErrorType
	}{
		{
			name: "success: new user created at phone verified stage",
			fields: fields{
				config:       testConfig(),
				userRepo:     usermocks.NewUserRepository(t),
				redisRepo:    redismocks.NewRepository(t),
				activityRepo: activitymocks.NewActivityLogRepository(t),
				smsPublisher: authmocks.NewSMSPublisher(t),
			},
			req: &model.VerifyPhoneRequest{Phone: testPhone, Code: "123456"},
			mockCall: func(f fields) {
				f.redisRepo.
					On("GetOTP", mock.Anything, constant.OTPIntentRegister, testPhone).
					Return("123456", nil).
					Once()
				f.redisRepo.
					On("DeleteOTP", mock.Anything, constant.OTPIntentRegister, testPhone).
					Return(nil).
					Once()
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Phone: testPhone}).
					Return(nil, nil).
					Once()
				f.userRepo.
					On("Create", mock.Anything, mock.MatchedBy(func(ent *model.UserEntity) bool {
						return ent.Phone == testPhone &&
							ent.Status == constant.UserStatusActive &&
							ent.RegistrationStage == constant.StagePhoneVerified
					})).
					Return(&model.UserEntity{
						ID:                7,
						Phone:             testPhone,
						Status:            constant.UserStatusActive,
						RegistrationStage: constant.StagePhoneVerified,
					}, nil).
					Once()
				f.redisRepo.
					On("SetSession", mock.Anything, mock.AnythingOfType("string"), uint64(7), time.Hour).
					Return(nil).
					Twice()
			},
			wantStage: constant.StagePhoneVerified,
		},
		{
			name: "success: abandoned registration resumes with a fresh code",
			fields: fields{
				config:       testConfig(),
				userRepo:     usermocks.NewUserRepository(t),
				redisRepo:    redismocks.NewRepository(t),
				activityRepo: activitymocks.NewActivityLogRepository(t),
				smsPublisher: authmocks.NewSMSPublisher(t),
			},
			req: &model.VerifyPhoneRequest{Phone: testPhone, Code: "123456"},
			mockCall: func(f fields) {
				f.redisRepo.
					On("GetOTP", mock.Anything, constant.OTPIntentRegister, testPhone).
					Return("123456", nil).
					Once()
				f.redisRepo.
					On("DeleteOTP", mock.Anything, constant.OTPIntentRegister, testPhone).
					Return(nil).
					Once()
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Phone: testPhone}).
					Return(&model.UserEntity{
						ID:                9,
						Phone:             testPhone,
						Status:            constant.UserStatusActive,
						RegistrationStage: constant.StagePhoneVerified,
					}, nil).
					Once()
				f.redisRepo.
					On("SetSession", mock.Anything, mock.AnythingOfType("string"), uint64(9), time.Hour).
					Return(nil).
					Twice()
			},
			wantStage: constant.StagePhoneVerified,
		},
		{
			name: "error: wrong code",
			fields: fields{
				config:       testConfig(),
				userRepo:     usermocks.NewUserRepository(t),
				redisRepo:    redismocks.NewRepository(t),
				activityRepo: activitymocks.NewActivityLogRepository(t),
				smsPublisher: authmocks.NewSMSPublisher(t),
			},
			req: &model.VerifyPhoneRequest{Phone: testPhone, Code: "654321"},
			mockCall: func(f fields) {
				f.redisRepo.
					On("GetOTP", mock.Anything, constant.OTPIntentRegister, testPhone).
					Return("123456", nil).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidOTP,
		},
		{
			name: "error: code expired",
			fields: fields{
				config:       testConfig(),
				userRepo:     usermocks.NewUserRepository(t),
				redisRepo:    redismocks.NewRepository(t),
				activityRepo: activitymocks.NewActivityLogRepository(t),
				smsPublisher: authmocks.NewSMSPublisher(t),
			},
			req: &model.VerifyPhoneRequest{Phone: testPhone, Code: "123456"},
			mockCall: func(f fields) {
				f.redisRepo.
					On("GetOTP", mock.Anything, constant.OTPIntentRegister, testPhone).
					Return("", nil).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrOTPExpired,
		},
		{
			name: "error: completed account cannot reverify",
			fields: fields{
				config:       testConfig(),
				userRepo:     usermocks.NewUserRepository(t),
				redisRepo:    redismocks.NewRepository(t),
				activityRepo: activitymocks.NewActivityLogRepository(t),
				smsPublisher: authmocks.NewSMSPublisher(t),
			},
			req: &model.VerifyPhoneRequest{Phone: testPhone, Code: "123456"},
			mockCall: func(f fields) {
				f.redisRepo.
					On("GetOTP", mock.Anything, constant.OTPIntentRegister, testPhone).
					Return("123456", nil).
					Once()
				f.redisRepo.
					On("DeleteOTP", mock.Anything, constant.OTPIntentRegister, testPhone).
					Return(nil).
					Once()
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Phone: testPhone}).
					Return(&model.UserEntity{
						ID:                1,
						Phone:             testPhone,
						RegistrationStage: constant.StageCompleted,
					}, nil).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrPhoneExists,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := appauth.NewAuthApp(tt.fields.config, tt.fields.userRepo, tt.fields.redisRepo,
				tt.fields.activityRepo, tt.fields.smsPublisher)

			got, err := app.VerifyPhone(context.Background(), tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("VerifyPhone() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
				return
			}
			if got.RegistrationStage != tt.wantStage {
				t.Fatalf("stage = %s, want %s", got.RegistrationStage, tt.wantStage)
			}
			if got.Tokens.AccessToken == "" || got.Tokens.RefreshToken == "" {
				t.Fatal("VerifyPhone() tokens should not be empty")
			}
		})
	}
}

func TestAuthApp_Register(t *testing.T) {
	type fields struct {
		config       *config.Config
		userRepo     *usermocks.UserRepository
		redisRepo    *redismocks.Repository
		activityRepo *activitymocks.ActivityLogRepository
		smsPublisher *authmocks.SMSPublisher
	}
	tests := []struct {
		name     string
		fields   fields
		req      *model.RegisterRequest
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: profile completed",
			fields: fields{
				config:       testConfig(),
				userRepo:     usermocks.NewUserRepository(t),
				redisRepo:    redismocks.NewRepository(t),
				activityRepo: activitymocks.NewActivityLogRepository(t),
				smsPublisher: authmocks.NewSMSPublisher(t),
			},
			req: &model.RegisterRequest{
				FirstName:       "Ivan",
				LastName:        "Petrenko",
				Password:        "Abcdef1!",
				PasswordConfirm: "Abcdef1!",
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{ID: uint64(7)}).
					Return(&model.UserEntity{
						ID:                7,
						Phone:             testPhone,
						Status:            constant.UserStatusActive,
						RegistrationStage: constant.StagePhoneVerified,
					}, nil).
					Once()
				f.userRepo.
					On("UpdateProfile", mock.Anything, uint64(7), "Ivan", "Petrenko",
						mock.AnythingOfType("string"), constant.StageCompleted).
					Return(nil).
					Once()
				f.redisRepo.
					On("SetSession", mock.Anything, mock.AnythingOfType("string"), uint64(7), mock.AnythingOfType("time.Duration")).
					Return(nil).
					Twice()
				f.activityRepo.
					On("Insert", mock.Anything, mock.MatchedBy(func(e *model.ActivityLog) bool {
						return e.Action == "user.register" && e.UserID == 7
					})).
					Return(nil).
					Once()
			},
		},
		{
			name: "error: password confirmation mismatch",
			fields: fields{
				config:       testConfig(),
				userRepo:     usermocks.NewUserRepository(t),
				redisRepo:    redismocks.NewRepository(t),
				activityRepo: activitymocks.NewActivityLogRepository(t),
				smsPublisher: authmocks.NewSMSPublisher(t),
			},
			req: &model.RegisterRequest{
				FirstName:       "Ivan",
				LastName:        "Petrenko",
				Password:        "Abcdef1!",
				PasswordConfirm: "Abcdef2!",
			},
			wantErr: true,
			errCode: constant.ErrPasswordMismatch,
		},
		{
			name: "error: weak password",
			fields: fields{
				config:       testConfig(),
				userRepo:     usermocks.NewUserRepository(t),
				redisRepo:    redismocks.NewRepository(t),
				activityRepo: activitymocks.NewActivityLogRepository(t),
				smsPublisher: authmocks.NewSMSPublisher(t),
			},
			req: &model.RegisterRequest{
				FirstName:       "Ivan",
				LastName:        "Petrenko",
				Password:        "abcdefgh",
				PasswordConfirm: "abcdefgh",
			},
			wantErr: true,
			errCode: constant.ErrWeakPassword,
		},
		{
			name: "error: already completed",
			fields: fields{
				config:       testConfig(),
				userRepo:     usermocks.NewUserRepository(t),
				redisRepo:    redismocks.NewRepository(t),
				activityRepo: activitymocks.NewActivityLogRepository(t),
				smsPublisher: authmocks.NewSMSPublisher(t),
			},
			req: &model.RegisterRequest{
				FirstName:       "Ivan",
				LastName:        "Petrenko",
				Password:        "Abcdef1!",
				PasswordConfirm: "Abcdef1!",
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{ID: uint64(7)}).
					Return(&model.UserEntity{
						ID:                7,
						RegistrationStage: constant.StageCompleted,
					}, nil).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrPhoneExists,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := appauth.NewAuthApp(tt.fields.config, tt.fields.userRepo, tt.fields.redisRepo,
				tt.fields.activityRepo, tt.fields.smsPublisher)

			got, err := app.Register(context.Background(), 7, "", tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Register() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
				return
			}
			if got.User.RegistrationStage != constant.StageCompleted {
				t.Fatalf("stage = %s, want %s", got.User.RegistrationStage, constant.StageCompleted)
			}
			if got.Tokens.AccessToken == "" {
				t.Fatal("Register() access token should not be empty")
			}
		})
	}
}

func TestAuthApp_Login(t *testing.T) {
	type fields struct {
		config       *config.Config
		userRepo     *usermocks.UserRepository
		redisRepo    *redismocks.Repository
		activityRepo *activitymocks.ActivityLogRepository
		smsPublisher *authmocks.SMSPublisher
	}
	hashed, _ := bcrypt.GenerateFromPassword([]byte("Abcdef1!"), bcrypt.DefaultCost)

	tests := []struct {
		name     string
		fields   fields
		req      *model.LoginRequest
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: login with correct password",
			fields: fields{
				config:       testConfig(),
				userRepo:     usermocks.NewUserRepository(t),
				redisRepo:    redismocks.NewRepository(t),
				activityRepo: activitymocks.NewActivityLogRepository(t),
				smsPublisher: authmocks.NewSMSPublisher(t),
			},
			req: &model.LoginRequest{Phone: testPhone, Password: "Abcdef1!"},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Phone: testPhone}).
					Return(&model.UserEntity{
						ID:                1,
						Phone:             testPhone,
						PasswordHash:      string(hashed),
						Status:            constant.UserStatusActive,
						RegistrationStage: constant.StageCompleted,
					}, nil).
					Once()
				f.redisRepo.
					On("SetSession", mock.Anything, mock.AnythingOfType("string"), uint64(1), mock.AnythingOfType("time.Duration")).
					Return(nil).
					Twice()
				f.activityRepo.
					On("Insert", mock.Anything, mock.MatchedBy(func(e *model.ActivityLog) bool {
						return e.Action == "user.login" && e.IP == "203.0.113.9"
					})).
					Return(nil).
					Once()
			},
		},
		{
			name: "error: banned user",
			fields: fields{
				config:       testConfig(),
				userRepo:     usermocks.NewUserRepository(t),
				redisRepo:    redismocks.NewRepository(t),
				activityRepo: activitymocks.NewActivityLogRepository(t),
				smsPublisher: authmocks.NewSMSPublisher(t),
			},
			req: &model.LoginRequest{Phone: testPhone, Password: "Abcdef1!"},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Phone: testPhone}).
					Return(&model.UserEntity{ID: 1, Status: constant.UserStatusBanned}, nil).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrUserBanned,
		},
		{
			name: "error: registration not finished",
			fields: fields{
				config:       testConfig(),
				userRepo:     usermocks.NewUserRepository(t),
				redisRepo:    redismocks.NewRepository(t),
				activityRepo: activitymocks.NewActivityLogRepository(t),
				smsPublisher: authmocks.NewSMSPublisher(t),
			},
			req: &model.LoginRequest{Phone: testPhone, Password: "Abcdef1!"},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Phone: testPhone}).
					Return(&model.UserEntity{
						ID:                1,
						Status:            constant.UserStatusActive,
						RegistrationStage: constant.StagePhoneVerified,
					}, nil).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrRegistrationIncomplete,
		},
		{
			name: "error: wrong password",
			fields: fields{
				config:       testConfig(),
				userRepo:     usermocks.NewUserRepository(t),
				redisRepo:    redismocks.NewRepository(t),
				activityRepo: activitymocks.NewActivityLogRepository(t),
				smsPublisher: authmocks.NewSMSPublisher(t),
			},
			req: &model.LoginRequest{Phone: testPhone, Password: "Wrongpw1!"},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Phone: testPhone}).
					Return(&model.UserEntity{
						ID:                1,
						PasswordHash:      string(hashed),
						Status:            constant.UserStatusActive,
						RegistrationStage: constant.StageCompleted,
					}, nil).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidPassword,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := appauth.NewAuthApp(tt.fields.config, tt.fields.userRepo, tt.fields.redisRepo,
				tt.fields.activityRepo, tt.fields.smsPublisher)

			got, err := app.Login(context.Background(), tt.req, "203.0.113.9")
			if (err != nil) != tt.wantErr {
				t.Fatalf("Login() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
				return
			}
			if got.Tokens.AccessToken == "" || got.Tokens.RefreshToken == "" {
				t.Fatal("Login() tokens should not be empty")
			}
		})
	}
}

func TestAuthApp_ValidateToken(t *testing.T) {
	cfg := testConfig()
	userRepo := usermocks.NewUserRepository(t)
	redisRepo := redismocks.NewRepository(t)
	activityRepo := activitymocks.NewActivityLogRepository(t)
	smsPublisher := authmocks.NewSMSPublisher(t)

	app := appauth.NewAuthApp(cfg, userRepo, redisRepo, activityRepo, smsPublisher)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("Abcdef1!"), bcrypt.DefaultCost)
	userRepo.
		On("Get", mock.Anything, &model.UserFilter{Phone: testPhone}).
		Return(&model.UserEntity{
			ID:                3,
			Phone:             testPhone,
			PasswordHash:      string(hashed),
			Status:            constant.UserStatusActive,
			RegistrationStage: constant.StageCompleted,
		}, nil).
		Once()
	redisRepo.
		On("SetSession", mock.Anything, mock.AnythingOfType("string"), uint64(3), mock.AnythingOfType("time.Duration")).
		Return(nil).
		Twice()
	activityRepo.
		On("Insert", mock.Anything, mock.AnythingOfType("*model.ActivityLog")).
		Return(nil).
		Once()

	login, err := app.Login(context.Background(), &model.LoginRequest{Phone: testPhone, Password: "Abcdef1!"}, "")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	t.Run("success: access token with live session", func(t *testing.T) {
		redisRepo.
			On("GetSession", mock.Anything, mock.AnythingOfType("string")).
			Return(uint64(3), nil).
			Once()

		userID, scope, err := app.ValidateToken(context.Background(), login.Tokens.AccessToken)
		if err != nil {
			t.Fatalf("ValidateToken() error = %v", err)
		}
		if userID != 3 || scope != constant.TokenScopeFull {
			t.Fatalf("ValidateToken() = (%d, %s), want (3, %s)", userID, scope, constant.TokenScopeFull)
		}
	})

	t.Run("error: refresh token rejected as access token", func(t *testing.T) {
		if _, _, err := app.ValidateToken(context.Background(), login.Tokens.RefreshToken); err == nil {
			t.Fatal("ValidateToken() should reject a refresh token")
		}
	})

	t.Run("error: garbage token", func(t *testing.T) {
		if _, _, err := app.ValidateToken(context.Background(), "invalid.token.string"); err == nil {
			t.Fatal("ValidateToken() should reject a malformed token")
		}
	})
}

func TestAuthApp_Register_DropsRegistrationSessions(t *testing.T) {
	cfg := testConfig()
	userRepo := usermocks.NewUserRepository(t)
	redisRepo := redismocks.NewRepository(t)
	activityRepo := activitymocks.NewActivityLogRepository(t)
	smsPublisher := authmocks.NewSMSPublisher(t)

	app := appauth.NewAuthApp(cfg, userRepo, redisRepo, activityRepo, smsPublisher)

	// Verify the phone first so there is a real registration-scoped pair to spend.
	redisRepo.
		On("GetOTP", mock.Anything, constant.OTPIntentRegister, testPhone).
		Return("123456", nil).
		Once()
	redisRepo.
		On("DeleteOTP", mock.Anything, constant.OTPIntentRegister, testPhone).
		Return(nil).
		Once()
	userRepo.
		On("Get", mock.Anything, &model.UserFilter{Phone: testPhone}).
		Return(nil, nil).
		Once()
	userRepo.
		On("Create", mock.Anything, mock.AnythingOfType("*model.UserEntity")).
		Return(&model.UserEntity{
			ID:                7,
			Phone:             testPhone,
			Status:            constant.UserStatusActive,
			RegistrationStage: constant.StagePhoneVerified,
		}, nil).
		Once()
	// Two registration sessions, then two full ones after Register.
	redisRepo.
		On("SetSession", mock.Anything, mock.AnythingOfType("string"), uint64(7), mock.AnythingOfType("time.Duration")).
		Return(nil).
		Times(4)

	verified, err := app.VerifyPhone(context.Background(), &model.VerifyPhoneRequest{Phone: testPhone, Code: "123456"})
	if err != nil {
		t.Fatalf("VerifyPhone() error = %v", err)
	}

	userRepo.
		On("Get", mock.Anything, &model.UserFilter{ID: uint64(7)}).
		Return(&model.UserEntity{
			ID:                7,
			Phone:             testPhone,
			Status:            constant.UserStatusActive,
			RegistrationStage: constant.StagePhoneVerified,
		}, nil).
		Once()
	userRepo.
		On("UpdateProfile", mock.Anything, uint64(7), "Ivan", "Petrenko",
			mock.AnythingOfType("string"), constant.StageCompleted).
		Return(nil).
		Once()
	// Both registration jtis must die when the full pair is issued.
	redisRepo.
		On("DeleteSession", mock.Anything, mock.AnythingOfType("string")).
		Return(nil).
		Twice()
	activityRepo.
		On("Insert", mock.Anything, mock.MatchedBy(func(e *model.ActivityLog) bool {
			return e.Action == "user.register" && e.UserID == 7
		})).
		Return(nil).
		Once()

	got, err := app.Register(context.Background(), 7, verified.Tokens.AccessToken, &model.RegisterRequest{
		FirstName:       "Ivan",
		LastName:        "Petrenko",
		Password:        "Abcdef1!",
		PasswordConfirm: "Abcdef1!",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if got.Tokens.AccessToken == "" || got.Tokens.RefreshToken == "" {
		t.Fatal("Register() should issue a full token pair")
	}
}

func TestAuthApp_Refresh(t *testing.T) {
	cfg := testConfig()
	userRepo := usermocks.NewUserRepository(t)
	redisRepo := redismocks.NewRepository(t)
	activityRepo := activitymocks.NewActivityLogRepository(t)
	smsPublisher := authmocks.NewSMSPublisher(t)

	app := appauth.NewAuthApp(cfg, userRepo, redisRepo, activityRepo, smsPublisher)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("Abcdef1!"), bcrypt.DefaultCost)
	userRepo.
		On("Get", mock.Anything, &model.UserFilter{Phone: testPhone}).
		Return(&model.UserEntity{
			ID:                3,
			Phone:             testPhone,
			PasswordHash:      string(hashed),
			Status:            constant.UserStatusActive,
			RegistrationStage: constant.StageCompleted,
		}, nil).
		Once()
	// Two sessions from Login, two from the rotated pair.
	redisRepo.
		On("SetSession", mock.Anything, mock.AnythingOfType("string"), uint64(3), mock.AnythingOfType("time.Duration")).
		Return(nil).
		Times(4)
	activityRepo.
		On("Insert", mock.Anything, mock.AnythingOfType("*model.ActivityLog")).
		Return(nil).
		Once()

	login, err := app.Login(context.Background(), &model.LoginRequest{Phone: testPhone, Password: "Abcdef1!"}, "")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	t.Run("success: rotation kills both old sessions", func(t *testing.T) {
		redisRepo.
			On("GetSession", mock.Anything, mock.AnythingOfType("string")).
			Return(uint64(3), nil).
			Once()
		redisRepo.
			On("DeleteSession", mock.Anything, mock.AnythingOfType("string")).
			Return(nil).
			Twice()

		got, err := app.Refresh(context.Background(), &model.RefreshRequest{RefreshToken: login.Tokens.RefreshToken})
		if err != nil {
			t.Fatalf("Refresh() error = %v", err)
		}
		if got.AccessToken == "" || got.RefreshToken == "" {
			t.Fatal("Refresh() should issue a new token pair")
		}
		if got.RefreshToken == login.Tokens.RefreshToken {
			t.Fatal("Refresh() should rotate the refresh token")
		}
	})

	t.Run("error: access token rejected for refresh", func(t *testing.T) {
		_, err := app.Refresh(context.Background(), &model.RefreshRequest{RefreshToken: login.Tokens.AccessToken})
		if err == nil {
			t.Fatal("Refresh() should reject an access token")
		}
		assertErrCode(t, err, constant.ErrUnauthorize)
	})

	t.Run("error: garbage token", func(t *testing.T) {
		_, err := app.Refresh(context.Background(), &model.RefreshRequest{RefreshToken: "invalid.token.string"})
		if err == nil {
			t.Fatal("Refresh() should reject a malformed token")
		}
		assertErrCode(t, err, constant.ErrUnauthorize)
	})

	t.Run("error: dead session", func(t *testing.T) {
		redisRepo.
			On("GetSession", mock.Anything, mock.AnythingOfType("string")).
			Return(uint64(0), errors.New("session not found")).
			Once()

		_, err := app.Refresh(context.Background(), &model.RefreshRequest{RefreshToken: login.Tokens.RefreshToken})
		if err == nil {
			t.Fatal("Refresh() should reject a token without a live session")
		}
		assertErrCode(t, err, constant.ErrUnauthorize)
	})
}

func TestAuthApp_Logout(t *testing.T) {
	cfg := testConfig()
	userRepo := usermocks.NewUserRepository(t)
	redisRepo := redismocks.NewRepository(t)
	activityRepo := activitymocks.NewActivityLogRepository(t)
	smsPublisher := authmocks.NewSMSPublisher(t)

	app := appauth.NewAuthApp(cfg, userRepo, redisRepo, activityRepo, smsPublisher)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("Abcdef1!"), bcrypt.DefaultCost)
	userRepo.
		On("Get", mock.Anything, &model.UserFilter{Phone: testPhone}).
		Return(&model.UserEntity{
			ID:                3,
			Phone:             testPhone,
			PasswordHash:      string(hashed),
			Status:            constant.UserStatusActive,
			RegistrationStage: constant.StageCompleted,
		}, nil).
		Once()
	redisRepo.
		On("SetSession", mock.Anything, mock.AnythingOfType("string"), uint64(3), mock.AnythingOfType("time.Duration")).
		Return(nil).
		Twice()
	activityRepo.
		On("Insert", mock.Anything, mock.MatchedBy(func(e *model.ActivityLog) bool {
			return e.Action == "user.login"
		})).
		Return(nil).
		Once()

	login, err := app.Login(context.Background(), &model.LoginRequest{Phone: testPhone, Password: "Abcdef1!"}, "")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	t.Run("success: both sessions of the pair die", func(t *testing.T) {
		redisRepo.
			On("DeleteSession", mock.Anything, mock.AnythingOfType("string")).
			Return(nil).
			Twice()
		activityRepo.
			On("Insert", mock.Anything, mock.MatchedBy(func(e *model.ActivityLog) bool {
				return e.Action == "user.logout" && e.UserID == 3
			})).
			Return(nil).
			Once()

		if err := app.Logout(context.Background(), login.Tokens.AccessToken); err != nil {
			t.Fatalf("Logout() error = %v", err)
		}
	})

	t.Run("error: garbage token", func(t *testing.T) {
		err := app.Logout(context.Background(), "invalid.token.string")
		if err == nil {
			t.Fatal("Logout() should reject a malformed token")
		}
		assertErrCode(t, err, constant.ErrUnauthorize)
	})
}

func TestAuthApp_VerifyRestorePassword(t *testing.T) {
	type fields struct {
		config       *config.Config
		userRepo     *usermocks.UserRepository
		redisRepo    *redismocks.Repository
		activityRepo *activitymocks.ActivityLogRepository
		smsPublisher *authmocks.SMSPublisher
	}
	tests := []struct {
		name     string
		fields   fields
		req      *model.VerifyPhoneRequest
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: reset-scoped pair issued",
			fields: fields{
				config:       testConfig(),
				userRepo:     usermocks.NewUserRepository(t),
				redisRepo:    redismocks.NewRepository(t),
				activityRepo: activitymocks.NewActivityLogRepository(t),
				smsPublisher: authmocks.NewSMSPublisher(t),
			},
			req: &model.VerifyPhoneRequest{Phone: testPhone, Code: "1234"},
			mockCall: func(f fields) {
				f.redisRepo.
					On("GetOTP", mock.Anything, constant.OTPIntentRestore, testPhone).
					Return("1234", nil).
					Once()
				f.redisRepo.
					On("DeleteOTP", mock.Anything, constant.OTPIntentRestore, testPhone).
					Return(nil).
					Once()
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Phone: testPhone}).
					Return(&model.UserEntity{
						ID:                5,
						Phone:             testPhone,
						Status:            constant.UserStatusActive,
						RegistrationStage: constant.StageCompleted,
					}, nil).
					Once()
				f.redisRepo.
					On("SetSession", mock.Anything, mock.AnythingOfType("string"), uint64(5), mock.AnythingOfType("time.Duration")).
					Return(nil).
					Twice()
			},
		},
		{
			name: "error: invalid phone",
			fields: fields{
				config:       testConfig(),
				userRepo:     usermocks.NewUserRepository(t),
				redisRepo:    redismocks.NewRepository(t),
				activityRepo: activitymocks.NewActivityLogRepository(t),
				smsPublisher: authmocks.NewSMSPublisher(t),
			},
			req:     &model.VerifyPhoneRequest{Phone: "12345", Code: "1234"},
			wantErr: true,
			errCode: constant.ErrInvalidPhone,
		},
		{
			name: "error: code of the wrong length",
			fields: fields{
				config:       testConfig(),
				userRepo:     usermocks.NewUserRepository(t),
				redisRepo:    redismocks.NewRepository(t),
				activityRepo: activitymocks.NewActivityLogRepository(t),
				smsPublisher: authmocks.NewSMSPublisher(t),
			},
			req:     &model.VerifyPhoneRequest{Phone: testPhone, Code: "123456"},
			wantErr: true,
			errCode: constant.ErrInvalidOTP,
		},
		{
			name: "error: wrong code",
			fields: fields{
				config:       testConfig(),
				userRepo:     usermocks.NewUserRepository(t),
				redisRepo:    redismocks.NewRepository(t),
				activityRepo: activitymocks.NewActivityLogRepository(t),
				smsPublisher: authmocks.NewSMSPublisher(t),
			},
			req: &model.VerifyPhoneRequest{Phone: testPhone, Code: "4321"},
			mockCall: func(f fields) {
				f.redisRepo.
					On("GetOTP", mock.Anything, constant.OTPIntentRestore, testPhone).
					Return("1234", nil).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidOTP,
		},
		{
			name: "error: expired code",
			fields: fields{
				config:       testConfig(),
				userRepo:     usermocks.NewUserRepository(t),
				redisRepo:    redismocks.NewRepository(t),
				activityRepo: activitymocks.NewActivityLogRepository(t),
				smsPublisher: authmocks.NewSMSPublisher(t),
			},
			req: &model.VerifyPhoneRequest{Phone: testPhone, Code: "1234"},
			mockCall: func(f fields) {
				f.redisRepo.
					On("GetOTP", mock.Anything, constant.OTPIntentRestore, testPhone).
					Return("", nil).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrOTPExpired,
		},
		{
			name: "error: unknown user",
			fields: fields{
				config:       testConfig(),
				userRepo:     usermocks.NewUserRepository(t),
				redisRepo:    redismocks.NewRepository(t),
				activityRepo: activitymocks.NewActivityLogRepository(t),
				smsPublisher: authmocks.NewSMSPublisher(t),
			},
			req: &model.VerifyPhoneRequest{Phone: testPhone, Code: "1234"},
			mockCall: func(f fields) {
				f.redisRepo.
					On("GetOTP", mock.Anything, constant.OTPIntentRestore, testPhone).
					Return("1234", nil).
					Once()
				f.redisRepo.
					On("DeleteOTP", mock.Anything, constant.OTPIntentRestore, testPhone).
					Return(nil).
					Once()
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Phone: testPhone}).
					Return(nil, nil).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := appauth.NewAuthApp(tt.fields.config, tt.fields.userRepo, tt.fields.redisRepo,
				tt.fields.activityRepo, tt.fields.smsPublisher)

			got, err := app.VerifyRestorePassword(context.Background(), tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("VerifyRestorePassword() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
				return
			}
			if got.AccessToken == "" || got.RefreshToken == "" {
				t.Fatal("VerifyRestorePassword() should issue a token pair")
			}
		})
	}
}

func TestAuthApp_ResetPassword(t *testing.T) {
	type fields struct {
		config       *config.Config
		userRepo     *usermocks.UserRepository
		redisRepo    *redismocks.Repository
		activityRepo *activitymocks.ActivityLogRepository
		smsPublisher *authmocks.SMSPublisher
	}
	tests := []struct {
		name     string
		fields   fields
		req      *model.ResetPasswordRequest
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: password replaced",
			fields: fields{
				config:       testConfig(),
				userRepo:     usermocks.NewUserRepository(t),
				redisRepo:    redismocks.NewRepository(t),
				activityRepo: activitymocks.NewActivityLogRepository(t),
				smsPublisher: authmocks.NewSMSPublisher(t),
			},
			req: &model.ResetPasswordRequest{Password: "Newpass1!", PasswordConfirm: "Newpass1!"},
			mockCall: func(f fields) {
				f.userRepo.
					On("UpdatePassword", mock.Anything, uint64(5), mock.AnythingOfType("string")).
					Return(nil).
					Once()
				f.activityRepo.
					On("Insert", mock.Anything, mock.MatchedBy(func(e *model.ActivityLog) bool {
						return e.Action == "user.reset_password" && e.UserID == 5
					})).
					Return(nil).
					Once()
			},
		},
		{
			name: "error: password confirmation mismatch",
			fields: fields{
				config:       testConfig(),
				userRepo:     usermocks.NewUserRepository(t),
				redisRepo:    redismocks.NewRepository(t),
				activityRepo: activitymocks.NewActivityLogRepository(t),
				smsPublisher: authmocks.NewSMSPublisher(t),
			},
			req:     &model.ResetPasswordRequest{Password: "Newpass1!", PasswordConfirm: "Newpass2!"},
			wantErr: true,
			errCode: constant.ErrPasswordMismatch,
		},
		{
			name: "error: weak password",
			fields: fields{
				config:       testConfig(),
				userRepo:     usermocks.NewUserRepository(t),
				redisRepo:    redismocks.NewRepository(t),
				activityRepo: activitymocks.NewActivityLogRepository(t),
				smsPublisher: authmocks.NewSMSPublisher(t),
			},
			req:     &model.ResetPasswordRequest{Password: "newpassword", PasswordConfirm: "newpassword"},
			wantErr: true,
			errCode: constant.ErrWeakPassword,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := appauth.NewAuthApp(tt.fields.config, tt.fields.userRepo, tt.fields.redisRepo,
				tt.fields.activityRepo, tt.fields.smsPublisher)

			err := app.ResetPassword(context.Background(), 5, tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResetPassword() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
			}
		})
	}
}
