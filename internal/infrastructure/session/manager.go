package session

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"

	"github.com/rafabene/mediaranker/internal/infrastructure/config"
)

const issuer = "mediaranker"

var (
	ErrNoSession      = errors.New("session not found")
	ErrInvalidSession = errors.New("invalid session")
)

// Claims é o conteúdo do token de sessão
type Claims struct {
	jwt.RegisteredClaims
}

// Manager lê e grava o usuário corrente num cookie com JWT assinado
type Manager struct {
	key        []byte
	cookieName string
	ttl        time.Duration
	secure     bool
	now        func() time.Time
}

// NewManager cria um Manager; a chave HMAC é derivada do segredo via HKDF
func NewManager(cfg config.SessionConfig) (*Manager, error) {
	key, err := deriveKey(cfg.Secret, "session-token")
	if err != nil {
		return nil, err
	}

	return &Manager{
		key:        key,
		cookieName: cfg.CookieName,
		ttl:        cfg.TTL,
		secure:     cfg.Secure,
		now:        time.Now,
	}, nil
}

// CookieName retorna o nome do cookie de sessão
func (m *Manager) CookieName() string {
	return m.cookieName
}

// Token emite um token de sessão para o usuário
func (m *Manager) Token(userID string) (string, error) {
	now := m.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.key)
}

// Parse valida o token e retorna o id do usuário
func (m *Manager) Parse(token string) (string, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return m.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !parsed.Valid {
		return "", fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	if claims.Subject == "" {
		return "", ErrInvalidSession
	}
	return claims.Subject, nil
}

// Start grava o usuário como corrente na resposta
func (m *Manager) Start(c *gin.Context, userID string) error {
	token, err := m.Token(userID)
	if err != nil {
		return fmt.Errorf("failed to sign session: %w", err)
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, token, int(m.ttl.Seconds()), "/", "", m.secure, true)
	return nil
}

// UserID lê o usuário corrente da requisição
func (m *Manager) UserID(c *gin.Context) (string, error) {
	token, err := c.Cookie(m.cookieName)
	if err != nil || token == "" {
		return "", ErrNoSession
	}
	return m.Parse(token)
}

// Clear remove o usuário corrente; sempre tem sucesso
func (m *Manager) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, "", -1, "/", "", m.secure, true)
}

// deriveKey deriva uma chave de 32 bytes por finalidade a partir do segredo
func deriveKey(secret, purpose string) ([]byte, error) {
	if secret == "" {
		return nil, errors.New("session secret is empty")
	}

	key := make([]byte, 32)
	reader := hkdf.New(sha256.New, []byte(secret), []byte(issuer), []byte(purpose))
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	return key, nil
}
