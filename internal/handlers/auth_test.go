package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func adminUserRow(t *testing.T, password string) *sqlmock.Rows {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return sqlmock.NewRows([]string{"id", "email", "password_hash", "plan", "created_at"}).
		AddRow("user-1", "admin@example.com", string(hash), "starter", fixedNow)
}

func TestPostLogin(t *testing.T) {
	h, mock, _ := newTestHandlers(t)

	mock.ExpectQuery(`SELECT \* FROM admin_users WHERE email = \$1`).
		WithArgs("admin@example.com").WillReturnRows(adminUserRow(t, "hunter2"))

	body := `{"email":"admin@example.com","password":"hunter2"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.PostLogin(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID   string `json:"id"`
			Plan string `json:"plan"`
		} `json:"user"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "user-1", resp.User.ID)
	assert.Equal(t, "starter", resp.User.Plan)

	// The issued token is a valid HS256 JWT for the user.
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(resp.Token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.True(t, token.Valid)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestPostLoginWrongPassword(t *testing.T) {
	h, mock, _ := newTestHandlers(t)

	mock.ExpectQuery(`SELECT \* FROM admin_users WHERE email = \$1`).
		WithArgs("admin@example.com").WillReturnRows(adminUserRow(t, "hunter2"))

	body := `{"email":"admin@example.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.PostLogin(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	respBody := decodeErrorBody(t, rr)
	assert.Equal(t, "unauthorized", respBody.Error.Code)
}

func TestPostLoginUnknownEmail(t *testing.T) {
	h, mock, _ := newTestHandlers(t)

	mock.ExpectQuery(`SELECT \* FROM admin_users WHERE email = \$1`).
		WithArgs("ghost@example.com").WillReturnError(assert.AnError)

	body := `{"email":"ghost@example.com","password":"hunter2"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.PostLogin(rr, req)

	// Unknown email and wrong password are indistinguishable.
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
