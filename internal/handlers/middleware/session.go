package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/mediaranker/internal/domain/entities"
	domainerrors "github.com/rafabene/mediaranker/internal/domain/errors"
	"github.com/rafabene/mediaranker/internal/domain/ports"
	"github.com/rafabene/mediaranker/internal/infrastructure/session"
)

// CurrentUserContextKey é a chave do usuário autenticado no contexto do Gin
const CurrentUserContextKey = "current_user"

// UserLoader busca o usuário da sessão
type UserLoader interface {
	GetUser(ctx context.Context, id string) (*entities.User, error)
}

// SessionMiddleware resolve o usuário corrente uma vez por requisição
type SessionMiddleware struct {
	sessions *session.Manager
	users    UserLoader
	logger   ports.Logger
}

// NewSessionMiddleware cria um novo middleware de sessão
func NewSessionMiddleware(sessions *session.Manager, users UserLoader, logger ports.Logger) *SessionMiddleware {
	return &SessionMiddleware{
		sessions: sessions,
		users:    users,
		logger:   logger,
	}
}

// LoadUser coloca o usuário da sessão no contexto; requisição anônima segue sem usuário
func (m *SessionMiddleware) LoadUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := m.sessions.UserID(c)
		if err != nil {
			if !errors.Is(err, session.ErrNoSession) {
				m.logger.Debug("discarding invalid session", "error", err)
				m.sessions.Clear(c)
			}
			c.Next()
			return
		}

		user, err := m.users.GetUser(c.Request.Context(), userID)
		switch {
		case errors.Is(err, domainerrors.ErrUserNotFound):
			m.sessions.Clear(c)
		case err != nil:
			m.logger.Error("failed to load session user", "user_id", userID, "error", err)
		default:
			c.Set(CurrentUserContextKey, user)
		}

		c.Next()
	}
}

// RequireLogin redireciona anônimos para a página inicial sem executar o handler
func (m *SessionMiddleware) RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			m.sessions.SetFlash(c, session.FlashFailure, "flash.login_required", nil)
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser retorna o usuário autenticado ou nil
func CurrentUser(c *gin.Context) *entities.User {
	value, exists := c.Get(CurrentUserContextKey)
	if !exists {
		return nil
	}
	user, _ := value.(*entities.User)
	return user
}
