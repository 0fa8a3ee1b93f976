package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"poddock/internal/db"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PostLogin verifies admin credentials and issues a bearer token.
func (h *Handlers) PostLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errValidation("Invalid request body"))
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, errValidation("Invalid request",
			ErrorDetail{Field: "email", Reason: "required"},
			ErrorDetail{Field: "password", Reason: "required"}))
		return
	}

	user, err := db.GetAdminUserByEmail(req.Email)
	if err != nil || user.PasswordHash == nil {
		writeError(w, NewAppError(http.StatusUnauthorized, "unauthorized", "Invalid email or password"))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		writeError(w, NewAppError(http.StatusUnauthorized, "unauthorized", "Invalid email or password"))
		return
	}

	now := h.now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(7 * 24 * time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.jwtSecret))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user": map[string]string{
			"id":    user.ID,
			"email": user.Email,
			"plan":  user.Plan,
		},
	})
}
