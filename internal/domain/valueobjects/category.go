package valueobjects

import (
	"errors"
	"strings"
)

var (
	ErrInvalidCategory = errors.New("invalid category")
)

// Category é a categoria de mídia de uma obra
type Category string

const (
	CategoryAlbum Category = "album"
	CategoryBook  Category = "book"
	CategoryMovie Category = "movie"
)

// Categories lista as categorias na ordem de exibição
var Categories = []Category{CategoryAlbum, CategoryBook, CategoryMovie}

// ParseCategory converte texto livre em Category.
// Aceita singular ou plural ("album", "albums"), sem diferenciar maiúsculas.
func ParseCategory(raw string) (Category, error) {
	value := strings.ToLower(raw)
	for _, c := range Categories {
		if value == string(c) || value == c.Plural() {
			return c, nil
		}
	}
	return "", ErrInvalidCategory
}

// IsValid verifica se a categoria pertence ao conjunto fixo
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Plural retorna o nome da categoria no plural
func (c Category) Plural() string {
	return string(c) + "s"
}

func (c Category) String() string {
	return string(c)
}
