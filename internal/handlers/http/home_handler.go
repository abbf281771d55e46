package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/mediaranker/internal/domain/entities"
	"github.com/rafabene/mediaranker/internal/handlers/dto"
	"github.com/rafabene/mediaranker/internal/services"
)

// SpotlightSize é quantas obras cada categoria mostra na página inicial
const SpotlightSize = 10

// HomeHandler mostra o destaque por categoria
type HomeHandler struct {
	workService *services.WorkService
	pages       *Pages
}

// NewHomeHandler cria um novo HomeHandler
func NewHomeHandler(workService *services.WorkService, pages *Pages) *HomeHandler {
	return &HomeHandler{
		workService: workService,
		pages:       pages,
	}
}

// Spotlight lista as obras mais votadas de cada categoria
// @Summary      Destaques
// @Tags         works
// @Produce      json,html
// @Success      200  {array}  dto.ShelfResponse
// @Router       / [get]
func (h *HomeHandler) Spotlight(c *gin.Context) {
	shelves, err := h.workService.Catalog(c.Request.Context())
	if err != nil {
		h.pages.Fail(c, err, "/")
		return
	}

	for i := range shelves {
		shelves[i] = entities.CategoryShelf{
			Category: shelves[i].Category,
			Works:    shelves[i].Top(SpotlightSize),
		}
	}

	if wantsJSON(c) {
		c.JSON(http.StatusOK, dto.ToShelfResponses(shelves))
		return
	}
	h.pages.HTML(c, http.StatusOK, "home", gin.H{"Shelves": shelves})
}
