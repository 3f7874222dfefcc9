// Package middleware содержит HTTP middleware для сервиса записи МПП.
package middleware

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"time"
)

const (
	authCookieName = "session_token"
	authCookieTTL  = 24 * time.Hour
	tokenBytes     = 16
)

// AuthMiddleware отмечает выполненный вход по подписанному cookie.
// Это не аутентификация: подпись лишь подтверждает, что cookie выдан
// этим процессом на экране входа.
type AuthMiddleware struct {
	secretKey []byte
}

// NewAuthMiddleware создаёт новый экземпляр AuthMiddleware с указанным секретным ключом.
// При пустом секрете генерируется случайный ключ на время жизни процесса.
func NewAuthMiddleware(secret string) *AuthMiddleware {
	key := []byte(secret)
	if len(key) == 0 {
		randomKey := make([]byte, 32)
		if _, err := rand.Read(randomKey); err == nil {
			key = randomKey
		} else {
			key = []byte("default-secret-key")
		}
	}

	return &AuthMiddleware{
		secretKey: key,
	}
}

// Middleware пропускает запрос дальше только при корректно подписанном cookie сеанса.
func (a *AuthMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(authCookieName)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		if !a.verifyCookie(cookie.Value) {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// SetAuthCookie выпускает новый токен сеанса и устанавливает подписанный cookie.
func (a *AuthMiddleware) SetAuthCookie(w http.ResponseWriter) {
	token := make([]byte, tokenBytes)
	_, _ = rand.Read(token)

	cookie := &http.Cookie{
		Name:     authCookieName,
		Value:    a.signToken(hex.EncodeToString(token)),
		Path:     "/",
		Expires:  time.Now().Add(authCookieTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	http.SetCookie(w, cookie)
}

func (a *AuthMiddleware) signToken(token string) string {
	mac := hmac.New(sha256.New, a.secretKey)
	mac.Write([]byte(token))
	signature := mac.Sum(nil)
	return token + "." + hex.EncodeToString(signature)
}

func (a *AuthMiddleware) verifyCookie(cookieValue string) bool {
	parts := strings.Split(cookieValue, ".")
	if len(parts) != 2 {
		return false
	}

	token := parts[0]
	signature := parts[1]

	mac := hmac.New(sha256.New, a.secretKey)
	mac.Write([]byte(token))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(signature), []byte(expected))
}
