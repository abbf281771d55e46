package http

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/moogar0880/problems"

	domainerrors "github.com/rafabene/mediaranker/internal/domain/errors"
	"github.com/rafabene/mediaranker/internal/domain/ports"
	"github.com/rafabene/mediaranker/internal/handlers/dto"
	"github.com/rafabene/mediaranker/internal/handlers/middleware"
	"github.com/rafabene/mediaranker/internal/infrastructure/session"
)

// flashView é a mensagem de flash já traduzida
type flashView struct {
	Status  string
	Message string
}

// Pages monta os dados comuns a todas as páginas e trata erros de domínio
type Pages struct {
	sessions  *session.Manager
	providers []string
	logger    ports.Logger
}

// NewPages cria o renderizador compartilhado pelos handlers
func NewPages(sessions *session.Manager, providers []string, logger ports.Logger) *Pages {
	return &Pages{
		sessions:  sessions,
		providers: providers,
		logger:    logger,
	}
}

// wantsJSON indica se o cliente pediu JSON no Accept
func wantsJSON(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON
}

// HTML renderiza a página com layout, usuário corrente e flash pendente
func (p *Pages) HTML(c *gin.Context, status int, name string, data gin.H) {
	page := gin.H{
		"T":           dto.Translator(c),
		"Lang":        dto.GetLanguage(c),
		"CurrentUser": middleware.CurrentUser(c),
		"Providers":   p.providers,
	}
	if flash := p.sessions.PopFlash(c); flash != nil {
		page["Flash"] = &flashView{
			Status:  flash.Status,
			Message: dto.T(c, flash.Key, flash.TemplateParams()),
		}
	}
	for k, v := range data {
		page[k] = v
	}
	c.HTML(status, name, page)
}

// Problem responde com um documento RFC 7807, em JSON ou na página de erro
func (p *Pages) Problem(c *gin.Context, response dto.ErrorResponse) {
	if wantsJSON(c) {
		c.Header("Content-Type", problems.ProblemMediaType)
		c.JSON(response.Status, response)
		return
	}
	p.HTML(c, response.Status, "error", gin.H{"Problem": response})
}

// Redirect agenda um flash e redireciona com 302
func (p *Pages) Redirect(c *gin.Context, location, status, key string, params map[string]string) {
	if key != "" {
		p.sessions.SetFlash(c, status, key, params)
	}
	c.Redirect(http.StatusFound, location)
}

// Fail traduz erros de domínio para a resposta HTTP.
// workPath é o destino do redirecionamento quando o ator não é o dono.
func (p *Pages) Fail(c *gin.Context, err error, workPath string) {
	var validation *domainerrors.ValidationError
	switch {
	case errors.As(err, &validation):
		p.Problem(c, dto.ValidationErrorResponseI18n(c, validation.Fields))
	case errors.Is(err, domainerrors.ErrWorkNotFound):
		p.Problem(c, dto.NotFoundErrorResponseI18n(c, dto.T(c, "works.resource")))
	case errors.Is(err, domainerrors.ErrForbidden):
		p.Redirect(c, workPath, session.FlashFailure, "flash.not_owner", nil)
	case errors.Is(err, domainerrors.ErrUnauthorized):
		p.Redirect(c, "/", session.FlashFailure, "flash.login_required", nil)
	case errors.Is(err, domainerrors.ErrAlreadyVoted):
		p.Problem(c, dto.ConflictErrorResponseI18n(c, "error.already_voted"))
	default:
		p.logger.Error("request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
		p.Problem(c, dto.InternalErrorResponseI18n(c))
	}
}

// backTo devolve o caminho do Referer quando ele aponta para este host
func backTo(c *gin.Context, fallback string) string {
	ref, err := url.Parse(c.Request.Referer())
	if err != nil || ref.Path == "" {
		return fallback
	}
	if ref.Host != "" && ref.Host != c.Request.Host {
		return fallback
	}
	if ref.RawQuery != "" {
		return ref.Path + "?" + ref.RawQuery
	}
	return ref.Path
}
