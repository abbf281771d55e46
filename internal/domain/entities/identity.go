package entities

// IdentityClaim é a identidade normalizada entregue pelo provedor OAuth.
// Contém apenas fatos; a decisão de qual usuário local ela representa
// fica no IdentityService.
type IdentityClaim struct {
	Provider string `validate:"required"`
	UID      string `validate:"required"`
	Name     string
	Nickname string
	Email    string
}
