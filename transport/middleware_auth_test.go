package transport

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/cargomarket/backend/constant"
	authappmocks "github.com/cargomarket/backend/mocks/application/auth"
	"github.com/cargomarket/backend/model"
)

func serveThroughAuth(t *testing.T, authApp *authappmocks.AuthApp, req *http.Request) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	reached := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	AuthMiddleware(authApp)(next).ServeHTTP(rec, req)
	return rec, reached
}

func decodeErrResponse(t *testing.T, rec *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var body apiResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("invalid token answers 401, not 500", func(t *testing.T) {
		authApp := authappmocks.NewAuthApp(t)
		authApp.
			On("ValidateToken", mock.Anything, "bogus-token").
			Return(uint64(0), "", errors.New("invalid token")).
			Once()

		req := httptest.NewRequest(http.MethodGet, "/cargo/my", nil)
		req.Header.Set("Authorization", "Bearer bogus-token")

		rec, reached := serveThroughAuth(t, authApp, req)
		if reached {
			t.Fatal("handler should not be reached with an invalid token")
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}

		body := decodeErrResponse(t, rec)
		if body.Code != constant.ErrorTypeCode[constant.ErrUnauthorize] {
			t.Fatalf("code = %s, want %s", body.Code, constant.ErrorTypeCode[constant.ErrUnauthorize])
		}
	})

	t.Run("missing bearer answers 401", func(t *testing.T) {
		authApp := authappmocks.NewAuthApp(t)

		req := httptest.NewRequest(http.MethodGet, "/cargo/my", nil)

		rec, reached := serveThroughAuth(t, authApp, req)
		if reached {
			t.Fatal("handler should not be reached without a token")
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("public path passes without a token", func(t *testing.T) {
		authApp := authappmocks.NewAuthApp(t)

		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)

		rec, reached := serveThroughAuth(t, authApp, req)
		if !reached {
			t.Fatal("handler should be reached on a public path")
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
	})

	t.Run("registration scope confined to its flow", func(t *testing.T) {
		authApp := authappmocks.NewAuthApp(t)
		authApp.
			On("ValidateToken", mock.Anything, "registration-token").
			Return(uint64(7), constant.TokenScopeRegistration, nil).
			Once()

		req := httptest.NewRequest(http.MethodGet, "/cargo/my", nil)
		req.Header.Set("Authorization", "Bearer registration-token")

		rec, reached := serveThroughAuth(t, authApp, req)
		if reached {
			t.Fatal("handler should not be reached outside the registration flow")
		}

		body := decodeErrResponse(t, rec)
		if body.Code != constant.ErrorTypeCode[constant.ErrInvalidTokenScope] {
			t.Fatalf("code = %s, want %s", body.Code, constant.ErrorTypeCode[constant.ErrInvalidTokenScope])
		}
	})

	t.Run("admin route rejects a non-admin", func(t *testing.T) {
		authApp := authappmocks.NewAuthApp(t)
		authApp.
			On("ValidateToken", mock.Anything, "user-token").
			Return(uint64(9), constant.TokenScopeFull, nil).
			Once()
		authApp.
			On("Me", mock.Anything, uint64(9)).
			Return(&model.UserEntity{ID: 9, IsAdmin: false}, nil).
			Once()

		req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
		req.Header.Set("Authorization", "Bearer user-token")

		rec, reached := serveThroughAuth(t, authApp, req)
		if reached {
			t.Fatal("handler should not be reached by a non-admin")
		}
		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
		}
	})

	t.Run("full scope reaches the handler", func(t *testing.T) {
		authApp := authappmocks.NewAuthApp(t)
		authApp.
			On("ValidateToken", mock.Anything, "user-token").
			Return(uint64(9), constant.TokenScopeFull, nil).
			Once()

		req := httptest.NewRequest(http.MethodGet, "/cargo/my", nil)
		req.Header.Set("Authorization", "Bearer user-token")

		_, reached := serveThroughAuth(t, authApp, req)
		if !reached {
			t.Fatal("handler should be reached with a valid full-scope token")
		}
	})
}
