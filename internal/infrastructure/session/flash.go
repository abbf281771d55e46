package session

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	flashCookie = "mediaranker_flash"
	stateCookie = "mediaranker_oauth_state"

	FlashSuccess = "success"
	FlashFailure = "failure"
)

// Flash é uma mensagem exibida uma única vez na próxima página.
// Key é uma chave i18n; Params alimenta a interpolação.
type Flash struct {
	Status string            `json:"s"`
	Key    string            `json:"k"`
	Params map[string]string `json:"p,omitempty"`
}

// TemplateParams converte Params para o formato aceito pelo i18n
func (f *Flash) TemplateParams() map[string]interface{} {
	params := make(map[string]interface{}, len(f.Params))
	for k, v := range f.Params {
		params[k] = v
	}
	return params
}

// SetFlash agenda uma mensagem para a próxima requisição
func (m *Manager) SetFlash(c *gin.Context, status, key string, params map[string]string) {
	data, err := json.Marshal(Flash{Status: status, Key: key, Params: params})
	if err != nil {
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, base64.RawURLEncoding.EncodeToString(data), 60, "/", "", m.secure, true)
}

// PopFlash lê e descarta a mensagem pendente; nil se não houver
func (m *Manager) PopFlash(c *gin.Context) *Flash {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return nil
	}
	c.SetCookie(flashCookie, "", -1, "/", "", m.secure, true)

	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}

	var flash Flash
	if err := json.Unmarshal(data, &flash); err != nil || flash.Key == "" {
		return nil
	}
	return &flash
}

// SetState guarda o state do fluxo OAuth em andamento
func (m *Manager) SetState(c *gin.Context, state string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookie, state, 600, "/", "", m.secure, true)
}

// PopState lê e descarta o state; vazio se ausente
func (m *Manager) PopState(c *gin.Context) string {
	state, err := c.Cookie(stateCookie)
	if err != nil {
		return ""
	}
	c.SetCookie(stateCookie, "", -1, "/", "", m.secure, true)
	return state
}
