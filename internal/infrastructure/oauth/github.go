package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"

	"github.com/rafabene/mediaranker/internal/domain/entities"
)

const githubUserURL = "https://api.github.com/user"

// GitHubProvider autentica via OAuth app do GitHub
type GitHubProvider struct {
	config  *oauth2.Config
	userURL string
}

// NewGitHubProvider cria o provedor; redirectURL é a URL completa do callback
func NewGitHubProvider(clientID, clientSecret, redirectURL string) *GitHubProvider {
	return &GitHubProvider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     github.Endpoint,
			Scopes:       []string{"read:user", "user:email"},
		},
		userURL: githubUserURL,
	}
}

func (p *GitHubProvider) Name() string {
	return "github"
}

func (p *GitHubProvider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state)
}

// githubUser é o subconjunto de GET /user que nos interessa
type githubUser struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (p *GitHubProvider) Exchange(ctx context.Context, code string) (entities.IdentityClaim, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return entities.IdentityClaim{}, fmt.Errorf("failed to exchange code: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userURL, nil)
	if err != nil {
		return entities.IdentityClaim{}, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := p.config.Client(ctx, token).Do(req)
	if err != nil {
		return entities.IdentityClaim{}, fmt.Errorf("failed to fetch github user: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return entities.IdentityClaim{}, fmt.Errorf("github user endpoint returned %d", resp.StatusCode)
	}

	var user githubUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return entities.IdentityClaim{}, fmt.Errorf("failed to decode github user: %w", err)
	}

	claim := entities.IdentityClaim{
		Provider: p.Name(),
		Name:     user.Name,
		Nickname: user.Login,
		Email:    user.Email,
	}
	// id zero significa resposta sem identidade; o resolver rejeita uid vazio
	if user.ID != 0 {
		claim.UID = strconv.FormatInt(user.ID, 10)
	}
	return claim, nil
}
