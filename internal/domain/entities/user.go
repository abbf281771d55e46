package entities

import (
	"time"

	"github.com/rafabene/mediaranker/internal/domain/valueobjects"
)

// User representa um usuário autenticado via OAuth
type User struct {
	ID          string
	Provider    string
	UID         string // id do usuário no provedor
	Name        string
	DisplayName string
	Email       valueobjects.Email
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewUserFromClaim monta um usuário a partir de uma identidade externa
func NewUserFromClaim(claim IdentityClaim) *User {
	email, err := valueobjects.NewOptionalEmail(claim.Email)
	if err != nil {
		// Email inválido não impede o login
		email = valueobjects.Email{}
	}

	return &User{
		Provider:    claim.Provider,
		UID:         claim.UID,
		Name:        claim.Name,
		DisplayName: claim.Nickname,
		Email:       email,
	}
}

// Label retorna o nome exibido na interface
func (u *User) Label() string {
	switch {
	case u.DisplayName != "":
		return u.DisplayName
	case u.Name != "":
		return u.Name
	default:
		return u.UID
	}
}

// RefreshDisplay atualiza os atributos de exibição com dados mais recentes do provedor.
// Provider e UID nunca mudam depois da criação.
func (u *User) RefreshDisplay(claim IdentityClaim) bool {
	changed := false

	if claim.Name != "" && claim.Name != u.Name {
		u.Name = claim.Name
		changed = true
	}
	if claim.Nickname != "" && claim.Nickname != u.DisplayName {
		u.DisplayName = claim.Nickname
		changed = true
	}
	if email, err := valueobjects.NewOptionalEmail(claim.Email); err == nil && !email.IsZero() && email != u.Email {
		u.Email = email
		changed = true
	}

	return changed
}
