//go:build e2e

package auth_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"hotel-reservation/internal/domain/user"
	"hotel-reservation/internal/handler/dto/request"
	resdto "hotel-reservation/internal/handler/dto/response"
	"hotel-reservation/tests/common/authtest"
	"hotel-reservation/tests/common/dbtest"
	"hotel-reservation/tests/common/httptest"
	"hotel-reservation/tests/e2e"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	loginURL    = "/api/auth/login"
	registerURL = "/api/auth/register"
	logoutURL   = "/api/auth/logout"
	refreshURL  = "/api/auth/refresh"
	meURL       = "/api/auth/me"
)

type authSuite struct {
	e2e.SharedSuite
	jwtHelper *authtest.JWTHelper
}

func TestAuthSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(authSuite))
}

func (s *authSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwtHelper = authtest.NewJWTHelper(s.Config.JWT)
}

func (s *authSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()

	dbtest.CreateTestUser(s.T(), s.DB, "guest@example.com", string(user.RoleGuest))
	dbtest.CreateTestUser(s.T(), s.DB, "staff@example.com", string(user.RoleStaff))
	dbtest.CreateTestUser(s.T(), s.DB, "inactive@example.com", string(user.RoleGuest))

	_, err := s.DB.Exec(s.T().Context(), "UPDATE users SET is_active = false WHERE email = 'inactive@example.com'")
	require.NoError(s.T(), err)
}

func (s *authSuite) TestLogin() {
	tests := []struct {
		name           string
		email          string
		password       string
		expectedStatus int
		expectedCode   string
	}{
		{name: "valid credentials", email: "guest@example.com", password: dbtest.DefaultPassword, expectedStatus: http.StatusOK},
		{name: "email is case-insensitive", email: "GUEST@Example.com", password: dbtest.DefaultPassword, expectedStatus: http.StatusOK},
		{name: "unknown user", email: "nobody@example.com", password: dbtest.DefaultPassword, expectedStatus: http.StatusUnauthorized, expectedCode: "INVALID_CREDENTIALS"},
		{name: "wrong password", email: "guest@example.com", password: "wrongpassword", expectedStatus: http.StatusUnauthorized, expectedCode: "INVALID_CREDENTIALS"},
		{name: "inactive user", email: "inactive@example.com", password: dbtest.DefaultPassword, expectedStatus: http.StatusUnauthorized, expectedCode: "USER_INACTIVE"},
		{name: "empty email", email: "", password: dbtest.DefaultPassword, expectedStatus: http.StatusBadRequest, expectedCode: "INVALID_REQUEST"},
		{name: "empty password", email: "guest@example.com", password: "", expectedStatus: http.StatusBadRequest, expectedCode: "INVALID_REQUEST"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()

			w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
				request.LoginRequest{Email: tt.email, Password: tt.password}, "")

			if tt.expectedStatus != http.StatusOK {
				httptest.AssertErrorResponse(t, w, tt.expectedStatus, tt.expectedCode)
				return
			}

			var loginRes resdto.LoginResponse
			httptest.AssertSuccessResponse(t, w, http.StatusOK, &loginRes)
			require.NotEmpty(t, loginRes.AccessToken)
			require.NotEmpty(t, loginRes.RefreshToken)
			require.Greater(t, loginRes.ExpiresIn, int64(0))
			require.Equal(t, "guest@example.com", loginRes.User.Email)

			var lastLogin any
			err := s.DB.QueryRow(t.Context(), "SELECT last_login FROM users WHERE email = 'guest@example.com'").Scan(&lastLogin)
			require.NoError(t, err)
			require.NotNil(t, lastLogin, "last_login was not updated")
		})
	}
}

func (s *authSuite) TestRegister() {
	s.Run("new guest can register and use the token", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, registerURL,
			request.RegisterRequest{Email: "new@example.com", Password: "longenough"}, "")

		var res resdto.LoginResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &res)
		require.Equal(t, "guest", res.User.Role)

		me := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, res.AccessToken)
		require.Equal(t, http.StatusOK, me.Code, me.Body.String())
		require.Contains(t, me.Body.String(), "new@example.com")
	})

	s.Run("existing email conflicts", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, registerURL,
			request.RegisterRequest{Email: "guest@example.com", Password: "longenough"}, "")

		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "EMAIL_TAKEN")
	})
}

func (s *authSuite) TestRefresh() {
	tests := []struct {
		name              string
		setupRefreshToken func() string
		expectedStatus    int
	}{
		{
			name: "valid refresh token",
			setupRefreshToken: func() string {
				w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, loginURL,
					request.LoginRequest{Email: "guest@example.com", Password: dbtest.DefaultPassword}, "")
				var loginRes resdto.LoginResponse
				require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &loginRes))
				return loginRes.RefreshToken
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "access token is not a refresh token",
			setupRefreshToken: func() string {
				return authtest.LoginUser(s.T(), s.Router, "guest@example.com", dbtest.DefaultPassword)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:              "garbage token",
			setupRefreshToken: func() string { return "invalid-refresh-token" },
			expectedStatus:    http.StatusUnauthorized,
		},
		{
			name:              "empty token",
			setupRefreshToken: func() string { return "" },
			expectedStatus:    http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()

			w := httptest.PerformRequest(t, s.Router, http.MethodPost, refreshURL,
				request.RefreshRequest{RefreshToken: tt.setupRefreshToken()}, "")

			if tt.expectedStatus != http.StatusOK {
				httptest.AssertErrorResponse(t, w, tt.expectedStatus, "INVALID_TOKEN")
				return
			}
			var res resdto.TokenResponse
			httptest.AssertSuccessResponse(t, w, http.StatusOK, &res)
			require.NotEmpty(t, res.AccessToken)
			require.NotEmpty(t, res.RefreshToken)
		})
	}
}

func (s *authSuite) TestLogout() {
	s.Run("clears the cookies", func() {
		t := s.T()
		login := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
			request.LoginRequest{Email: "guest@example.com", Password: dbtest.DefaultPassword}, "")
		require.Equal(t, http.StatusOK, login.Code)

		authtest.LogoutUser(t, s.Router, login.Result().Cookies())
	})

	s.Run("requires a token", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, logoutURL, nil, "")

		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "TOKEN_REQUIRED")
	})
}

func (s *authSuite) TestMe() {
	s.Run("returns the caller", func() {
		t := s.T()
		_, token := authtest.CreateAndLogin(t, s.DB, s.Router, "frontdesk@example.com", string(user.RoleStaff))

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		body := w.Body.String()
		require.Contains(t, body, "frontdesk@example.com")
		require.Contains(t, body, "staff")
		require.NotContains(t, body, "password")
	})

	s.Run("expired token is rejected", func() {
		t := s.T()
		userID := dbtest.CreateTestUser(t, s.DB, "expiry@example.com", string(user.RoleGuest))

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil,
			s.jwtHelper.CreateExpiredToken(t, userID, user.RoleGuest))

		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "INVALID_TOKEN")
	})
}

func (s *authSuite) TestConcurrentLogin() {
	s.Run("each login issues a distinct working token", func() {
		t := s.T()

		token1 := authtest.LoginUser(t, s.Router, "guest@example.com", dbtest.DefaultPassword)
		token2 := authtest.LoginUser(t, s.Router, "guest@example.com", dbtest.DefaultPassword)
		require.NotEqual(t, token1, token2)

		for _, token := range []string{token1, token2} {
			w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)
			require.Equal(t, http.StatusOK, w.Code)
		}
	})
}
