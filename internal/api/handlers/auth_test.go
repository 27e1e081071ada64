package handlers_test

import (
	"bytes"
	"encoding/json"
	"kumpisahko/internal/api/handlers"
	"kumpisahko/internal/auth"
	"kumpisahko/internal/models"
	"kumpisahko/internal/testutil"
	"kumpisahko/internal/validation"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validation.Initialize()
	os.Exit(m.Run())
}

func TestAuthHandler_Token(t *testing.T) {
	cfg := testutil.TestConfig(t)

	tests := []struct {
		name        string
		body        string
		disableHash bool
		wantStatus  int
		wantErr     string
	}{
		{
			name:       "Success",
			body:       `{"password":"` + testutil.AdminPassword + `"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "Wrong Password",
			body:       `{"password":"wrong"}`,
			wantStatus: http.StatusUnauthorized,
			wantErr:    "invalid credentials",
		},
		{
			name:       "Blank Password",
			body:       `{"password":"   "}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Malformed Body",
			body:       `{"password":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:        "Login Disabled",
			body:        `{"password":"` + testutil.AdminPassword + `"}`,
			disableHash: true,
			wantStatus:  http.StatusForbidden,
			wantErr:     "admin login disabled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authCfg := cfg.Auth
			if tt.disableHash {
				authCfg.AdminPasswordHash = ""
			}
			authService := auth.NewService(authCfg)
			handler := handlers.NewAuthHandler(authService, zerolog.Nop())

			router := gin.New()
			router.POST("/auth/token", handler.Token)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodPost, "/auth/token", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			if tt.wantStatus != http.StatusOK {
				var errResp models.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
				if tt.wantErr != "" {
					assert.Equal(t, tt.wantErr, errResp.Error)
				}
				return
			}

			var resp models.TokenResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, int64(3600), resp.ExpiresIn)

			claims, err := authService.ValidateToken(resp.AccessToken)
			require.NoError(t, err)
			assert.True(t, auth.IsAdmin(claims))
		})
	}
}
