package http_test

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/mediaranker/internal/domain/entities"
	"github.com/rafabene/mediaranker/internal/handlers/dto"
	"github.com/rafabene/mediaranker/internal/infrastructure/session"
)

var _ = Describe("WorkHandler", func() {
	var (
		app      *testApp
		owner    *entities.User
		stranger *entities.User
	)

	BeforeEach(func() {
		app = newTestApp()
		owner = app.user("1", "Owner")
		stranger = app.user("2", "Stranger")
	})

	AfterEach(func() {
		app.close()
	})

	Describe("visitante anônimo", func() {
		var work *entities.Work

		BeforeEach(func() {
			work = app.work(owner, "Dune", "book")
		})

		DescribeTable("é redirecionado para a página inicial sem alterar nada",
			func(method string, path func(id string) string, form url.Values) {
				w := app.do(request{method: method, path: path(work.ID), form: form})

				Expect(w.Code).To(Equal(http.StatusFound))
				Expect(w.Header().Get("Location")).To(Equal("/"))
				Expect(flashOf(w).Key).To(Equal("flash.login_required"))

				Expect(app.workCount()).To(Equal(int64(1)))
				Expect(app.voteCount()).To(BeZero())

				found, err := app.works.GetWork(context.Background(), work.ID)
				Expect(err).NotTo(HaveOccurred())
				Expect(found.Title).To(Equal("Dune"))
				Expect(found.Category.String()).To(Equal("book"))
				Expect(found.VoteCount).To(BeZero())
			},
			Entry("lista", http.MethodGet, fixedPath("/works"), nil),
			Entry("formulário", http.MethodGet, fixedPath("/works/new"), nil),
			Entry("cria", http.MethodPost, fixedPath("/works"), url.Values{"title": {"X"}, "category": {"album"}}),
			Entry("exibe", http.MethodGet, workURL(""), nil),
			Entry("edita", http.MethodGet, workURL("/edit"), nil),
			Entry("altera", http.MethodPost, workURL(""), url.Values{"_method": {"PATCH"}, "title": {"X"}}),
			Entry("exclui", http.MethodPost, workURL(""), url.Values{"_method": {"DELETE"}}),
			Entry("vota", http.MethodPost, workURL("/upvote"), url.Values{}),
		)
	})

	Describe("GET /", func() {
		It("mostra o destaque por categoria para qualquer visitante", func() {
			app.work(owner, "Kind of Blue", "album")

			w := app.do(request{method: http.MethodGet, path: "/"})

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring("Media Spotlight"))
			Expect(w.Body.String()).To(ContainSubstring("Kind of Blue"))
			Expect(w.Body.String()).To(ContainSubstring(`href="/auth/fake"`))
		})

		It("responde JSON quando pedido", func() {
			app.work(owner, "Kind of Blue", "album")

			w := app.do(request{method: http.MethodGet, path: "/", accept: "application/json"})

			Expect(w.Code).To(Equal(http.StatusOK))
			var shelves []dto.ShelfResponse
			decodeJSON(w, &shelves)
			Expect(shelves).To(HaveLen(3))
			Expect(shelves[0].Category).To(Equal("album"))
			Expect(shelves[0].Works).To(HaveLen(1))
		})

		It("exibe e consome o flash pendente", func() {
			w := app.do(request{method: http.MethodPost, path: "/logout"})
			flash := responseCookie(w, "mediaranker_flash")
			Expect(flash).NotTo(BeNil())

			w = app.do(request{method: http.MethodGet, path: "/", cookies: []*http.Cookie{flash}})
			Expect(w.Body.String()).To(ContainSubstring("Successfully logged out"))
			Expect(responseCookie(w, "mediaranker_flash").MaxAge).To(BeNumerically("<", 0))
		})
	})

	Describe("GET /health", func() {
		It("responde ok", func() {
			w := app.do(request{method: http.MethodGet, path: "/health"})
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring(`"status":"ok"`))
		})
	})

	Describe("GET /works", func() {
		It("filtra pela categoria no plural", func() {
			app.work(owner, "Kind of Blue", "album")
			app.work(owner, "Dune", "book")

			w := app.do(request{method: http.MethodGet, path: "/works?category=books", as: owner, accept: "application/json"})

			Expect(w.Code).To(Equal(http.StatusOK))
			var shelves []dto.ShelfResponse
			decodeJSON(w, &shelves)
			Expect(shelves).To(HaveLen(1))
			Expect(shelves[0].Category).To(Equal("book"))
			Expect(shelves[0].Works).To(HaveLen(1))
			Expect(shelves[0].Works[0].Title).To(Equal("Dune"))
		})

		It("categoria desconhecida é 400", func() {
			w := app.do(request{method: http.MethodGet, path: "/works?category=podcasts", as: owner, accept: "application/json"})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("renderiza HTML com todas as categorias", func() {
			app.work(owner, "Dune", "book")

			w := app.do(request{method: http.MethodGet, path: "/works", as: owner})

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring("Albums"))
			Expect(w.Body.String()).To(ContainSubstring("Dune"))
			Expect(w.Body.String()).To(ContainSubstring("Logged in as Owner"))
		})
	})

	Describe("POST /works", func() {
		DescribeTable("cria uma obra por categoria",
			func(category string) {
				before := app.workCount()

				w := app.do(request{
					method: http.MethodPost,
					path:   "/works",
					as:     owner,
					form:   url.Values{"title": {"New Title"}, "category": {category}},
				})

				Expect(w.Code).To(Equal(http.StatusFound))
				Expect(w.Header().Get("Location")).To(HavePrefix("/works/"))
				Expect(flashOf(w).Key).To(Equal("flash.work_created"))
				Expect(app.workCount()).To(Equal(before + 1))
			},
			Entry("albums", "albums"),
			Entry("books", "books"),
			Entry("movies", "movies"),
		)

		DescribeTable("dados inválidos são 400 e nada é persistido",
			func(title, category string) {
				w := app.do(request{
					method: http.MethodPost,
					path:   "/works",
					as:     owner,
					form:   url.Values{"title": {title}, "category": {category}},
				})

				Expect(w.Code).To(Equal(http.StatusBadRequest))
				Expect(w.Body.String()).To(ContainSubstring(`name="title"`))
				Expect(app.workCount()).To(BeZero())
			},
			Entry("título vazio", "", "album"),
			Entry("categoria vazia", "Dune", ""),
			Entry("categoria em branco", "Dune", "  "),
			Entry("categoria com sufixo", "Dune", "albumstrailingtext"),
		)

		It("responde problem+json com todos os campos inválidos", func() {
			w := app.do(request{
				method: http.MethodPost,
				path:   "/works",
				as:     owner,
				accept: "application/json",
				json:   `{"title": "", "category": "podcast"}`,
			})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Header().Get("Content-Type")).To(HavePrefix("application/problem+json"))

			var body struct {
				Status int                   `json:"status"`
				Errors []dto.ValidationError `json:"errors"`
			}
			decodeJSON(w, &body)
			Expect(body.Status).To(Equal(http.StatusBadRequest))
			Expect(body.Errors).To(ConsistOf(
				dto.ValidationError{Field: "title", Message: "Title can't be blank"},
				dto.ValidationError{Field: "category", Message: "Category must be album, book or movie"},
			))
			Expect(app.workCount()).To(BeZero())
		})

		It("cria via JSON com 201", func() {
			w := app.do(request{
				method: http.MethodPost,
				path:   "/works",
				as:     owner,
				accept: "application/json",
				json:   `{"title": "Dune", "category": "book"}`,
			})

			Expect(w.Code).To(Equal(http.StatusCreated))
			var body dto.WorkResponse
			decodeJSON(w, &body)
			Expect(body.OwnerID).To(Equal(owner.ID))
			Expect(body.Category).To(Equal("book"))
		})
	})

	Describe("GET /works/:id", func() {
		It("mostra a obra com a contagem de votos", func() {
			work := app.work(owner, "Dune", "book")
			_, err := app.votes.Upvote(context.Background(), stranger, work.ID)
			Expect(err).NotTo(HaveOccurred())

			w := app.do(request{method: http.MethodGet, path: "/works/" + work.ID, as: owner})
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring("1 votes"))
			Expect(w.Body.String()).To(ContainSubstring("Stranger"))
			Expect(w.Body.String()).To(ContainSubstring("/works/" + work.ID + "/edit"))

			w = app.do(request{method: http.MethodGet, path: "/works/" + work.ID, as: stranger, accept: "application/json"})
			var body dto.WorkResponse
			decodeJSON(w, &body)
			Expect(body.VoteCount).To(Equal(int64(1)))
		})

		It("não mostra editar para quem não é dono", func() {
			work := app.work(owner, "Dune", "book")
			w := app.do(request{method: http.MethodGet, path: "/works/" + work.ID, as: stranger})
			Expect(w.Body.String()).NotTo(ContainSubstring("/works/" + work.ID + "/edit"))
		})

		DescribeTable("id inexistente é 404",
			func(id string) {
				w := app.do(request{method: http.MethodGet, path: "/works/" + id, as: owner})
				Expect(w.Code).To(Equal(http.StatusNotFound))
				Expect(w.Body.String()).To(ContainSubstring("Work not found"))
			},
			Entry("uuid desconhecido", "00000000-0000-0000-0000-000000000000"),
			Entry("id malformado", "-1"),
		)
	})

	Describe("edição", func() {
		var work *entities.Work

		BeforeEach(func() {
			work = app.work(owner, "Dune", "book")
		})

		It("o dono vê o formulário", func() {
			w := app.do(request{method: http.MethodGet, path: "/works/" + work.ID + "/edit", as: owner})
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring(`value="PATCH"`))
			Expect(w.Body.String()).To(ContainSubstring(`value="Dune"`))
		})

		It("quem não é dono é redirecionado para a obra", func() {
			w := app.do(request{method: http.MethodGet, path: "/works/" + work.ID + "/edit", as: stranger})
			Expect(w.Code).To(Equal(http.StatusFound))
			Expect(w.Header().Get("Location")).To(Equal("/works/" + work.ID))
			Expect(flashOf(w).Status).To(Equal(session.FlashFailure))
		})

		It("o dono altera via _method", func() {
			w := app.do(request{
				method: http.MethodPost,
				path:   "/works/" + work.ID,
				as:     owner,
				form:   url.Values{"_method": {"PATCH"}, "title": {"Dune Messiah"}},
			})

			Expect(w.Code).To(Equal(http.StatusFound))
			Expect(w.Header().Get("Location")).To(Equal("/works/" + work.ID))
			Expect(flashOf(w).Params).To(HaveKeyWithValue("Title", "Dune Messiah"))

			found, err := app.works.GetWork(context.Background(), work.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.Title).To(Equal("Dune Messiah"))
		})

		It("PUT também altera", func() {
			w := app.do(request{
				method: http.MethodPut,
				path:   "/works/" + work.ID,
				as:     owner,
				accept: "application/json",
				json:   `{"category": "movie"}`,
			})

			Expect(w.Code).To(Equal(http.StatusOK))
			var body dto.WorkResponse
			decodeJSON(w, &body)
			Expect(body.Category).To(Equal("movie"))
			Expect(body.Title).To(Equal("Dune"))
		})

		It("título vazio é 400 e nada muda", func() {
			w := app.do(request{
				method: http.MethodPost,
				path:   "/works/" + work.ID,
				as:     owner,
				form:   url.Values{"_method": {"PATCH"}, "title": {""}},
			})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Body.String()).To(ContainSubstring("Title can&#39;t be blank"))

			found, err := app.works.GetWork(context.Background(), work.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.Title).To(Equal("Dune"))
		})

		It("quem não é dono não altera", func() {
			w := app.do(request{
				method: http.MethodPatch,
				path:   "/works/" + work.ID,
				as:     stranger,
				form:   url.Values{"title": {"Hijacked"}},
			})

			Expect(w.Code).To(Equal(http.StatusFound))
			Expect(w.Header().Get("Location")).To(Equal("/works/" + work.ID))
			Expect(flashOf(w).Key).To(Equal("flash.not_owner"))

			found, err := app.works.GetWork(context.Background(), work.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.Title).To(Equal("Dune"))
		})

		It("obra inexistente é 404", func() {
			w := app.do(request{
				method: http.MethodPatch,
				path:   "/works/00000000-0000-0000-0000-000000000000",
				as:     owner,
				form:   url.Values{"title": {"X"}},
			})
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("DELETE /works/:id", func() {
		var work *entities.Work

		BeforeEach(func() {
			work = app.work(owner, "Dune", "book")
		})

		It("o dono exclui e volta para a página inicial", func() {
			w := app.do(request{
				method: http.MethodPost,
				path:   "/works/" + work.ID,
				as:     owner,
				form:   url.Values{"_method": {"DELETE"}},
			})

			Expect(w.Code).To(Equal(http.StatusFound))
			Expect(w.Header().Get("Location")).To(Equal("/"))
			Expect(flashOf(w).Key).To(Equal("flash.work_deleted"))
			Expect(app.workCount()).To(BeZero())
		})

		It("quem não é dono é redirecionado e a obra continua", func() {
			w := app.do(request{method: http.MethodDelete, path: "/works/" + work.ID, as: stranger})

			Expect(w.Code).To(Equal(http.StatusFound))
			Expect(w.Header().Get("Location")).To(Equal("/works/" + work.ID))
			Expect(app.workCount()).To(Equal(int64(1)))
		})

		It("id inexistente é 404 e a contagem não muda", func() {
			w := app.do(request{method: http.MethodDelete, path: "/works/-1", as: owner})

			Expect(w.Code).To(Equal(http.StatusNotFound))
			Expect(app.workCount()).To(Equal(int64(1)))
		})

		It("responde 204 para JSON", func() {
			w := app.do(request{method: http.MethodDelete, path: "/works/" + work.ID, as: owner, accept: "application/json"})
			Expect(w.Code).To(Equal(http.StatusNoContent))
		})
	})

	Describe("POST /works/:id/upvote", func() {
		var work *entities.Work

		BeforeEach(func() {
			work = app.work(owner, "Dune", "book")
		})

		It("registra o voto e volta para a página anterior", func() {
			w := app.do(request{
				method:  http.MethodPost,
				path:    "/works/" + work.ID + "/upvote",
				as:      stranger,
				headers: map[string]string{"Referer": "http://example.com/works?category=books"},
			})

			Expect(w.Code).To(Equal(http.StatusFound))
			Expect(w.Header().Get("Location")).To(Equal("/works?category=books"))
			Expect(flashOf(w).Key).To(Equal("flash.upvoted"))
			Expect(app.voteCount()).To(Equal(int64(1)))
		})

		It("sem Referer volta para a obra", func() {
			w := app.do(request{method: http.MethodPost, path: "/works/" + work.ID + "/upvote", as: owner})
			Expect(w.Header().Get("Location")).To(Equal("/works/" + work.ID))
		})

		It("ignora Referer de outro host", func() {
			w := app.do(request{
				method:  http.MethodPost,
				path:    "/works/" + work.ID + "/upvote",
				as:      owner,
				headers: map[string]string{"Referer": "https://evil.test/phish"},
			})
			Expect(w.Header().Get("Location")).To(Equal("/works/" + work.ID))
		})

		It("segundo voto é 409 e a contagem não muda", func() {
			first := app.do(request{method: http.MethodPost, path: "/works/" + work.ID + "/upvote", as: stranger})
			Expect(first.Code).To(Equal(http.StatusFound))

			second := app.do(request{
				method: http.MethodPost,
				path:   "/works/" + work.ID + "/upvote",
				as:     stranger,
				accept: "application/json",
			})
			Expect(second.Code).To(Equal(http.StatusConflict))
			Expect(strings.ToLower(second.Body.String())).To(ContainSubstring("already voted"))
			Expect(app.voteCount()).To(Equal(int64(1)))
		})

		It("obra inexistente é 404", func() {
			w := app.do(request{method: http.MethodPost, path: "/works/-1/upvote", as: stranger})
			Expect(w.Code).To(Equal(http.StatusNotFound))
			Expect(app.voteCount()).To(BeZero())
		})
	})
})

// fixedPath ignora o id da obra
func fixedPath(path string) func(string) string {
	return func(string) string { return path }
}

// workURL monta /works/<id><suffix> com o id criado no BeforeEach
func workURL(suffix string) func(string) string {
	return func(id string) string { return "/works/" + id + suffix }
}
