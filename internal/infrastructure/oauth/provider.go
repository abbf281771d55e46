// Package oauth executa o fluxo authorization code e entrega a identidade
// do usuário como entities.IdentityClaim.
package oauth

import (
	"context"
	"errors"
	"sort"

	"github.com/rafabene/mediaranker/internal/domain/entities"
)

var ErrUnknownProvider = errors.New("unknown oauth provider")

// Provider é um provedor OAuth configurado
type Provider interface {
	Name() string
	AuthCodeURL(state string) string
	// Exchange troca o código de autorização pela identidade do usuário
	Exchange(ctx context.Context, code string) (entities.IdentityClaim, error)
}

// Registry indexa os provedores habilitados por nome
type Registry struct {
	providers map[string]Provider
}

// NewRegistry cria um registro com os provedores informados
func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		r.providers[p.Name()] = p
	}
	return r
}

// Get busca um provedor pelo nome
func (r *Registry) Get(name string) (Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, ErrUnknownProvider
	}
	return p, nil
}

// Names lista os provedores habilitados em ordem alfabética
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
