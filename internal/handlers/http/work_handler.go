package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/mediaranker/internal/domain/entities"
	domainerrors "github.com/rafabene/mediaranker/internal/domain/errors"
	"github.com/rafabene/mediaranker/internal/domain/valueobjects"
	"github.com/rafabene/mediaranker/internal/handlers/dto"
	"github.com/rafabene/mediaranker/internal/handlers/middleware"
	"github.com/rafabene/mediaranker/internal/infrastructure/session"
	"github.com/rafabene/mediaranker/internal/services"
)

// workForm guarda os valores digitados para reexibir o formulário
type workForm struct {
	Title    string
	Category string
}

// WorkHandler lida com requisições HTTP relacionadas a obras
type WorkHandler struct {
	workService *services.WorkService
	voteService *services.VoteService
	pages       *Pages
}

// NewWorkHandler cria um novo WorkHandler
func NewWorkHandler(workService *services.WorkService, voteService *services.VoteService, pages *Pages) *WorkHandler {
	return &WorkHandler{
		workService: workService,
		voteService: voteService,
		pages:       pages,
	}
}

// ListWorks lista obras por categoria
// @Summary      Lista obras
// @Description  Lista obras ordenadas por votos; sem filtro agrupa por categoria
// @Tags         works
// @Produce      json,html
// @Param        category  query     string  false  "album, book ou movie (singular ou plural)"
// @Success      200       {array}   dto.ShelfResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Router       /works [get]
func (h *WorkHandler) ListWorks(c *gin.Context) {
	raw := c.Query("category")

	works, err := h.workService.ListWorks(c.Request.Context(), raw)
	if err != nil {
		h.pages.Fail(c, err, "/works")
		return
	}

	var shelves []entities.CategoryShelf
	if raw == "" {
		shelves = entities.GroupByCategory(works)
	} else {
		category, _ := valueobjects.ParseCategory(raw)
		shelves = []entities.CategoryShelf{{Category: category, Works: works}}
	}

	if wantsJSON(c) {
		c.JSON(http.StatusOK, dto.ToShelfResponses(shelves))
		return
	}
	h.pages.HTML(c, http.StatusOK, "works_index", gin.H{"Shelves": shelves})
}

// NewWork exibe o formulário de criação
func (h *WorkHandler) NewWork(c *gin.Context) {
	h.renderForm(c, http.StatusOK, "works_new", nil, workForm{Category: c.Query("category")}, nil)
}

// CreateWork cria uma obra do usuário logado
// @Summary      Cria obra
// @Tags         works
// @Accept       json,x-www-form-urlencoded
// @Produce      json,html
// @Param        work  body      dto.CreateWorkRequest  true  "Dados da obra"
// @Success      201   {object}  dto.WorkResponse
// @Success      302
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /works [post]
func (h *WorkHandler) CreateWork(c *gin.Context) {
	var req dto.CreateWorkRequest
	if err := c.ShouldBind(&req); err != nil {
		h.pages.Problem(c, dto.BadRequestErrorResponseI18n(c))
		return
	}

	user := middleware.CurrentUser(c)
	work, err := h.workService.CreateWork(c.Request.Context(), services.CreateWorkInput{
		OwnerID:  user.ID,
		Title:    req.Title,
		Category: req.Category,
	})
	if err != nil {
		var validation *domainerrors.ValidationError
		if errors.As(err, &validation) && !wantsJSON(c) {
			h.renderForm(c, http.StatusBadRequest, "works_new", nil,
				workForm{Title: req.Title, Category: req.Category}, validation.Fields)
			return
		}
		h.pages.Fail(c, err, "/works")
		return
	}

	if wantsJSON(c) {
		c.JSON(http.StatusCreated, dto.ToWorkResponse(work))
		return
	}
	h.pages.Redirect(c, workPath(work.ID), session.FlashSuccess, "flash.work_created", flashParams(work))
}

// GetWork exibe uma obra com seus votos
// @Summary      Busca obra
// @Tags         works
// @Produce      json,html
// @Param        id   path      string  true  "ID da obra"
// @Success      200  {object}  dto.WorkResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /works/{id} [get]
func (h *WorkHandler) GetWork(c *gin.Context) {
	id := c.Param("id")

	work, err := h.workService.ShowWork(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		h.pages.Fail(c, err, "/works")
		return
	}

	if wantsJSON(c) {
		c.JSON(http.StatusOK, dto.ToWorkResponse(work))
		return
	}

	voters, err := h.voteService.Voters(c.Request.Context(), work.ID)
	if err != nil {
		h.pages.Fail(c, err, workPath(id))
		return
	}

	h.pages.HTML(c, http.StatusOK, "works_show", gin.H{
		"Work":      work,
		"Voters":    voters,
		"CanChange": middleware.CurrentUser(c).Can(entities.PermissionWorkWrite, work),
	})
}

// EditWork exibe o formulário de edição para o dono
func (h *WorkHandler) EditWork(c *gin.Context) {
	id := c.Param("id")

	work, err := h.workService.AuthorizeChange(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		h.pages.Fail(c, err, workPath(id))
		return
	}

	h.renderForm(c, http.StatusOK, "works_edit", work,
		workForm{Title: work.Title, Category: work.Category.String()}, nil)
}

// UpdateWork altera título e/ou categoria
// @Summary      Altera obra
// @Tags         works
// @Accept       json,x-www-form-urlencoded
// @Produce      json,html
// @Param        id    path      string                 true  "ID da obra"
// @Param        work  body      dto.UpdateWorkRequest  true  "Campos alterados"
// @Success      200   {object}  dto.WorkResponse
// @Success      302
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /works/{id} [patch]
func (h *WorkHandler) UpdateWork(c *gin.Context) {
	id := c.Param("id")

	var req dto.UpdateWorkRequest
	if err := c.ShouldBind(&req); err != nil {
		h.pages.Problem(c, dto.BadRequestErrorResponseI18n(c))
		return
	}

	work, err := h.workService.UpdateWork(c.Request.Context(), middleware.CurrentUser(c), id, services.UpdateWorkInput{
		Title:    req.Title,
		Category: req.Category,
	})
	if err != nil {
		var validation *domainerrors.ValidationError
		if errors.As(err, &validation) && !wantsJSON(c) && work != nil {
			form := workForm{Title: work.Title, Category: work.Category.String()}
			if req.Title != nil {
				form.Title = *req.Title
			}
			if req.Category != nil {
				form.Category = *req.Category
			}
			h.renderForm(c, http.StatusBadRequest, "works_edit", work, form, validation.Fields)
			return
		}
		h.pages.Fail(c, err, workPath(id))
		return
	}

	if wantsJSON(c) {
		c.JSON(http.StatusOK, dto.ToWorkResponse(work))
		return
	}
	h.pages.Redirect(c, workPath(work.ID), session.FlashSuccess, "flash.work_updated", flashParams(work))
}

// DeleteWork exclui a obra e seus votos
// @Summary      Exclui obra
// @Tags         works
// @Produce      json,html
// @Param        id   path  string  true  "ID da obra"
// @Success      204
// @Success      302
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /works/{id} [delete]
func (h *WorkHandler) DeleteWork(c *gin.Context) {
	id := c.Param("id")

	work, err := h.workService.DeleteWork(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		h.pages.Fail(c, err, workPath(id))
		return
	}

	if wantsJSON(c) {
		c.Status(http.StatusNoContent)
		return
	}
	h.pages.Redirect(c, "/", session.FlashSuccess, "flash.work_deleted", flashParams(work))
}

// Upvote registra o voto do usuário logado
// @Summary      Vota numa obra
// @Tags         votes
// @Produce      json,html
// @Param        id   path  string  true  "ID da obra"
// @Success      302
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /works/{id}/upvote [post]
func (h *WorkHandler) Upvote(c *gin.Context) {
	id := c.Param("id")

	if _, err := h.voteService.Upvote(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		h.pages.Fail(c, err, workPath(id))
		return
	}

	h.pages.Redirect(c, backTo(c, workPath(id)), session.FlashSuccess, "flash.upvoted", nil)
}

func (h *WorkHandler) renderForm(c *gin.Context, status int, name string, work *entities.Work, form workForm, fields []entities.FieldProblem) {
	data := gin.H{
		"Form":       form,
		"Errors":     fields,
		"Categories": valueobjects.Categories,
		"Action":     "/works",
	}
	if work != nil {
		data["Work"] = work
		data["Action"] = workPath(work.ID)
		data["Method"] = http.MethodPatch
	}
	h.pages.HTML(c, status, name, data)
}

func workPath(id string) string {
	return "/works/" + id
}

func flashParams(work *entities.Work) map[string]string {
	return map[string]string{
		"Category": work.Category.String(),
		"Title":    work.Title,
	}
}
