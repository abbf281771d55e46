package http_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/rafabene/mediaranker/internal/domain/entities"
	handlers "github.com/rafabene/mediaranker/internal/handlers/http"
	"github.com/rafabene/mediaranker/internal/infrastructure/config"
	"github.com/rafabene/mediaranker/internal/infrastructure/i18n"
	"github.com/rafabene/mediaranker/internal/infrastructure/logging"
	"github.com/rafabene/mediaranker/internal/infrastructure/oauth"
	"github.com/rafabene/mediaranker/internal/infrastructure/persistence/postgres"
	"github.com/rafabene/mediaranker/internal/infrastructure/session"
	"github.com/rafabene/mediaranker/internal/services"
	"github.com/rafabene/mediaranker/internal/testutil"
)

// fakeProvider devolve uma identidade fixa sem falar com a rede
type fakeProvider struct {
	claim entities.IdentityClaim
	err   error
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) AuthCodeURL(state string) string {
	return "https://provider.test/authorize?state=" + url.QueryEscape(state)
}

func (p *fakeProvider) Exchange(_ context.Context, code string) (entities.IdentityClaim, error) {
	return p.claim, p.err
}

// testApp é a aplicação completa sobre SQLite em memória
type testApp struct {
	db       *gorm.DB
	handler  http.Handler
	sessions *session.Manager
	provider *fakeProvider
	users    *services.IdentityService
	works    *services.WorkService
	votes    *services.VoteService
}

func newTestApp() *testApp {
	db, err := testutil.NewDatabase()
	Expect(err).NotTo(HaveOccurred())

	cfg := &config.Config{
		Env:    "test",
		Server: config.ServerConfig{BaseURL: "http://localhost:8080"},
		Session: config.SessionConfig{
			Secret:     "a-test-secret-that-is-long-enough!!",
			CookieName: "mediaranker_session",
			TTL:        time.Hour,
		},
	}

	logger := logging.NewNopLogger()
	userRepo := postgres.NewUserRepository(db)
	workRepo := postgres.NewWorkRepository(db)
	voteRepo := postgres.NewVoteRepository(db)

	i18nService, err := i18n.NewService(i18n.Locales(), "en")
	Expect(err).NotTo(HaveOccurred())

	sessions, err := session.NewManager(cfg.Session)
	Expect(err).NotTo(HaveOccurred())

	app := &testApp{
		db:       db,
		sessions: sessions,
		provider: &fakeProvider{},
		users:    services.NewIdentityService(userRepo, logger),
		works:    services.NewWorkService(workRepo, voteRepo, postgres.NewUnitOfWork(db), logger),
		votes:    services.NewVoteService(voteRepo, workRepo, userRepo, logger),
	}

	app.handler, err = handlers.NewRouter(handlers.RouterDeps{
		Config:          cfg,
		Logger:          logger,
		I18n:            i18nService,
		Sessions:        sessions,
		Providers:       oauth.NewRegistry(app.provider),
		IdentityService: app.users,
		WorkService:     app.works,
		VoteService:     app.votes,
	})
	Expect(err).NotTo(HaveOccurred())

	return app
}

func (a *testApp) close() {
	testutil.Close(a.db)
}

func (a *testApp) user(uid, name string) *entities.User {
	user, _, err := a.users.Resolve(context.Background(), entities.IdentityClaim{
		Provider: "github",
		UID:      uid,
		Name:     name,
	})
	Expect(err).NotTo(HaveOccurred())
	return user
}

func (a *testApp) work(owner *entities.User, title, category string) *entities.Work {
	work, err := a.works.CreateWork(context.Background(), services.CreateWorkInput{
		OwnerID:  owner.ID,
		Title:    title,
		Category: category,
	})
	Expect(err).NotTo(HaveOccurred())
	return work
}

func (a *testApp) workCount() int64 {
	var count int64
	Expect(a.db.Model(&postgres.WorkModel{}).Count(&count).Error).To(Succeed())
	return count
}

func (a *testApp) voteCount() int64 {
	var count int64
	Expect(a.db.Model(&postgres.VoteModel{}).Count(&count).Error).To(Succeed())
	return count
}

// request monta uma requisição; form não nulo vira corpo urlencoded
type request struct {
	method  string
	path    string
	form    url.Values
	json    string
	as      *entities.User
	accept  string
	cookies []*http.Cookie
	headers map[string]string
}

func (a *testApp) do(r request) *httptest.ResponseRecorder {
	var req *http.Request
	switch {
	case r.form != nil:
		req = httptest.NewRequest(r.method, r.path, strings.NewReader(r.form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	case r.json != "":
		req = httptest.NewRequest(r.method, r.path, strings.NewReader(r.json))
		req.Header.Set("Content-Type", "application/json")
	default:
		req = httptest.NewRequest(r.method, r.path, nil)
	}

	if r.accept != "" {
		req.Header.Set("Accept", r.accept)
	}
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}
	if r.as != nil {
		token, err := a.sessions.Token(r.as.ID)
		Expect(err).NotTo(HaveOccurred())
		req.AddCookie(&http.Cookie{Name: a.sessions.CookieName(), Value: token})
	}
	for _, c := range r.cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, req)
	return w
}

func responseCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// flashOf decodifica o flash agendado na resposta
func flashOf(w *httptest.ResponseRecorder) *session.Flash {
	return decodeFlash(w.Result().Cookies())
}

func decodeFlash(cookies []*http.Cookie) *session.Flash {
	for _, cookie := range cookies {
		if cookie.Name != "mediaranker_flash" || cookie.Value == "" {
			continue
		}

		data, err := base64.RawURLEncoding.DecodeString(cookie.Value)
		Expect(err).NotTo(HaveOccurred())

		var flash session.Flash
		Expect(json.Unmarshal(data, &flash)).To(Succeed())
		return &flash
	}
	return nil
}

func decodeJSON(w *httptest.ResponseRecorder, v interface{}) {
	Expect(json.Unmarshal(w.Body.Bytes(), v)).To(Succeed())
}
