package middleware

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/mediaranker/internal/infrastructure/i18n"
)

const (
	// LanguageContextKey é a chave usada para armazenar o idioma no contexto do Gin
	LanguageContextKey = "language"
	// I18nServiceContextKey é a chave usada para armazenar o serviço i18n no contexto
	I18nServiceContextKey = "i18n_service"

	languageCookie = "mediaranker_lang"
)

// I18nMiddleware escolhe o idioma de cada requisição
type I18nMiddleware struct {
	i18nService *i18n.Service
}

// NewI18nMiddleware cria um novo middleware de i18n
func NewI18nMiddleware(i18nService *i18n.Service) *I18nMiddleware {
	return &I18nMiddleware{
		i18nService: i18nService,
	}
}

// DetectLanguage define o idioma da requisição.
// Prioridade: ?lang= (lembrado em cookie), cookie, Accept-Language, padrão.
func (m *I18nMiddleware) DetectLanguage() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := m.match(c.Query("lang"))
		if lang != "" {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(languageCookie, lang, 365*24*60*60, "/", "", false, true)
		}

		if lang == "" {
			if saved, err := c.Cookie(languageCookie); err == nil {
				lang = m.match(saved)
			}
		}

		if lang == "" {
			lang = m.parseAcceptLanguage(c.GetHeader("Accept-Language"))
		}

		if lang == "" {
			lang = m.i18nService.GetDefaultLanguage()
		}

		c.Header("Content-Language", lang)
		c.Set(LanguageContextKey, lang)
		c.Set(I18nServiceContextKey, m.i18nService)

		c.Next()
	}
}

type weightedLanguage struct {
	tag    string
	weight float64
}

// parseAcceptLanguage devolve o idioma suportado de maior peso.
// Exemplo: "en;q=0.5,pt-BR" -> "pt-BR"
func (m *I18nMiddleware) parseAcceptLanguage(header string) string {
	if header == "" {
		return ""
	}

	var candidates []weightedLanguage
	for _, part := range strings.Split(header, ",") {
		tag, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		if tag == "" || tag == "*" {
			continue
		}

		weight := 1.0
		if q, ok := strings.CutPrefix(strings.TrimSpace(params), "q="); ok {
			parsed, err := strconv.ParseFloat(q, 64)
			if err != nil {
				continue
			}
			weight = parsed
		}
		if weight <= 0 {
			continue
		}
		candidates = append(candidates, weightedLanguage{tag: tag, weight: weight})
	}

	// Estável: empate mantém a ordem do header
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].weight > candidates[j].weight
	})

	for _, candidate := range candidates {
		if lang := m.match(candidate.tag); lang != "" {
			return lang
		}
	}
	return ""
}

// match resolve uma tag para um idioma suportado: exato, sem diferenciar
// maiúsculas, e depois pela língua base ("pt" ou "pt-PT" -> "pt-BR").
func (m *I18nMiddleware) match(tag string) string {
	if tag == "" {
		return ""
	}
	if m.i18nService.IsLanguageSupported(tag) {
		return tag
	}

	base, _, _ := strings.Cut(tag, "-")
	var byBase string
	for _, supported := range m.i18nService.GetSupportedLanguages() {
		if strings.EqualFold(supported, tag) {
			return supported
		}
		supportedBase, _, _ := strings.Cut(supported, "-")
		if byBase == "" && strings.EqualFold(supportedBase, base) {
			byBase = supported
		}
	}
	return byBase
}
