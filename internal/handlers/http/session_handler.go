package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerrors "github.com/rafabene/mediaranker/internal/domain/errors"
	"github.com/rafabene/mediaranker/internal/domain/ports"
	"github.com/rafabene/mediaranker/internal/handlers/dto"
	"github.com/rafabene/mediaranker/internal/infrastructure/oauth"
	"github.com/rafabene/mediaranker/internal/infrastructure/session"
	"github.com/rafabene/mediaranker/internal/services"
)

// SessionHandler conduz login OAuth e logout
type SessionHandler struct {
	providers       *oauth.Registry
	identityService *services.IdentityService
	sessions        *session.Manager
	pages           *Pages
	logger          ports.Logger
}

// NewSessionHandler cria um novo SessionHandler
func NewSessionHandler(
	providers *oauth.Registry,
	identityService *services.IdentityService,
	sessions *session.Manager,
	pages *Pages,
	logger ports.Logger,
) *SessionHandler {
	return &SessionHandler{
		providers:       providers,
		identityService: identityService,
		sessions:        sessions,
		pages:           pages,
		logger:          logger,
	}
}

// Login redireciona para o provedor com um state novo
// @Summary      Inicia login OAuth
// @Tags         auth
// @Param        provider  path  string  true  "github ou google"
// @Success      302
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /auth/{provider} [get]
func (h *SessionHandler) Login(c *gin.Context) {
	provider, err := h.providers.Get(c.Param("provider"))
	if err != nil {
		h.pages.Problem(c, dto.NotFoundErrorResponseI18n(c, c.Param("provider")))
		return
	}

	state := uuid.NewString()
	h.sessions.SetState(c, state)
	c.Redirect(http.StatusFound, provider.AuthCodeURL(state))
}

// Callback recebe o código do provedor, resolve o usuário e abre a sessão
// @Summary      Retorno do login OAuth
// @Tags         auth
// @Param        provider  path   string  true  "github ou google"
// @Param        code      query  string  true  "Código de autorização"
// @Param        state     query  string  true  "State emitido no login"
// @Success      302
// @Router       /auth/{provider}/callback [get]
func (h *SessionHandler) Callback(c *gin.Context) {
	provider, err := h.providers.Get(c.Param("provider"))
	if err != nil {
		h.pages.Problem(c, dto.NotFoundErrorResponseI18n(c, c.Param("provider")))
		return
	}

	state := h.sessions.PopState(c)
	if state == "" || c.Query("state") != state {
		h.logger.Warn("oauth state mismatch", "provider", provider.Name())
		h.pages.Redirect(c, "/", session.FlashFailure, "flash.login_state", nil)
		return
	}

	if reason := c.Query("error"); reason != "" {
		h.logger.Warn("oauth provider denied login", "provider", provider.Name(), "reason", reason)
		h.pages.Redirect(c, "/", session.FlashFailure, "flash.login_failed", nil)
		return
	}

	claim, err := provider.Exchange(c.Request.Context(), c.Query("code"))
	if err != nil {
		h.logger.Error("oauth exchange failed", "provider", provider.Name(), "error", err)
		h.pages.Redirect(c, "/", session.FlashFailure, "flash.login_failed", nil)
		return
	}

	user, created, err := h.identityService.Resolve(c.Request.Context(), claim)
	if err != nil {
		if !errors.Is(err, domainerrors.ErrInvalidClaim) {
			h.logger.Error("failed to resolve identity", "provider", provider.Name(), "error", err)
		}
		h.pages.Redirect(c, "/", session.FlashFailure, "flash.login_failed", nil)
		return
	}

	if err := h.sessions.Start(c, user.ID); err != nil {
		h.logger.Error("failed to start session", "user_id", user.ID, "error", err)
		h.pages.Redirect(c, "/", session.FlashFailure, "flash.login_failed", nil)
		return
	}

	key := "flash.login_returning"
	if created {
		key = "flash.login_new"
	}
	h.logger.Info("user logged in", "user_id", user.ID, "provider", user.Provider, "new", created)
	h.pages.Redirect(c, "/", session.FlashSuccess, key, map[string]string{"Name": user.Label()})
}

// Logout encerra a sessão; sempre redireciona para a página inicial
// @Summary      Encerra a sessão
// @Tags         auth
// @Success      302
// @Router       /logout [post]
func (h *SessionHandler) Logout(c *gin.Context) {
	h.sessions.Clear(c)
	h.pages.Redirect(c, "/", session.FlashSuccess, "flash.logout", nil)
}
