package entities

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rafabene/mediaranker/internal/domain/valueobjects"
)

// MaxTitleLength é o tamanho máximo do título de uma obra, em caracteres
const MaxTitleLength = 255

// Work representa uma obra (álbum, livro ou filme) cadastrada por um usuário
type Work struct {
	ID        string
	Title     string
	Category  valueobjects.Category
	OwnerID   string
	VoteCount int64 // preenchido nas consultas de listagem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FieldProblem descreve um campo inválido com uma chave de mensagem i18n
type FieldProblem struct {
	Field   string
	Message string
}

// Validate valida regras de negócio da entidade Work.
// Retorna todos os problemas encontrados, não apenas o primeiro.
func (w *Work) Validate() []FieldProblem {
	var problems []FieldProblem

	title := strings.TrimSpace(w.Title)
	if title == "" {
		problems = append(problems, FieldProblem{Field: "title", Message: "validation.title_required"})
	} else if utf8.RuneCountInString(title) > MaxTitleLength {
		problems = append(problems, FieldProblem{Field: "title", Message: "validation.title_too_long"})
	}

	if !w.Category.IsValid() {
		problems = append(problems, FieldProblem{Field: "category", Message: "validation.category_invalid"})
	}

	if w.OwnerID == "" {
		problems = append(problems, FieldProblem{Field: "owner", Message: "validation.owner_required"})
	}

	return problems
}

// IsOwnedBy verifica se a obra pertence ao usuário
func (w *Work) IsOwnedBy(userID string) bool {
	return userID != "" && w.OwnerID == userID
}

// CategoryShelf agrupa as obras de uma categoria
type CategoryShelf struct {
	Category valueobjects.Category
	Works    []*Work
}

// GroupByCategory particiona as obras por categoria, na ordem de exibição.
// Cada grupo é ordenado por votos (desc) e depois pelas mais recentes.
// Categorias sem obras aparecem com lista vazia.
func GroupByCategory(works []*Work) []CategoryShelf {
	shelves := make([]CategoryShelf, 0, len(valueobjects.Categories))
	for _, category := range valueobjects.Categories {
		shelf := CategoryShelf{Category: category, Works: []*Work{}}
		for _, w := range works {
			if w.Category == category {
				shelf.Works = append(shelf.Works, w)
			}
		}
		SortByRank(shelf.Works)
		shelves = append(shelves, shelf)
	}
	return shelves
}

// SortByRank ordena por votos e, em empate, pela data de criação mais recente
func SortByRank(works []*Work) {
	sort.SliceStable(works, func(i, j int) bool {
		if works[i].VoteCount != works[j].VoteCount {
			return works[i].VoteCount > works[j].VoteCount
		}
		return works[i].CreatedAt.After(works[j].CreatedAt)
	})
}

// Top retorna no máximo n obras do início da lista
func (s CategoryShelf) Top(n int) []*Work {
	if len(s.Works) <= n {
		return s.Works
	}
	return s.Works[:n]
}
