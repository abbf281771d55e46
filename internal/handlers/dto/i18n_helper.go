package dto

import (
	"github.com/gin-gonic/gin"

	"github.com/rafabene/mediaranker/internal/handlers/middleware"
	"github.com/rafabene/mediaranker/internal/infrastructure/i18n"
)

// T é um helper para traduzir mensagens no contexto do Gin
// Uso: dto.T(c, "flash.login_new", map[string]interface{}{"Name": "John"})
func T(c *gin.Context, key string, params ...map[string]interface{}) string {
	service := i18nService(c)
	if service == nil {
		// Fallback: retornar a chave se serviço não estiver disponível
		return key
	}
	return service.T(GetLanguage(c), key, params...)
}

// Translator devolve a função de tradução usada pelos templates
func Translator(c *gin.Context) func(key string, params ...map[string]interface{}) string {
	service := i18nService(c)
	if service == nil {
		return func(key string, _ ...map[string]interface{}) string { return key }
	}
	return service.Translator(GetLanguage(c))
}

// GetLanguage retorna o idioma configurado no contexto da requisição
func GetLanguage(c *gin.Context) string {
	lang, exists := c.Get(middleware.LanguageContextKey)
	if !exists {
		return "en" // Fallback
	}

	langStr, ok := lang.(string)
	if !ok {
		return "en"
	}

	return langStr
}

func i18nService(c *gin.Context) *i18n.Service {
	value, exists := c.Get(middleware.I18nServiceContextKey)
	if !exists {
		return nil
	}
	service, _ := value.(*i18n.Service)
	return service
}
