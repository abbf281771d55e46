package dto

import (
	"time"

	"github.com/rafabene/mediaranker/internal/domain/entities"
)

// CreateWorkRequest representa a requisição para criar uma obra.
// A validação fica no serviço para reportar todos os campos de uma vez.
type CreateWorkRequest struct {
	Title    string `form:"title" json:"title"`
	Category string `form:"category" json:"category"`
}

// UpdateWorkRequest representa a requisição para alterar uma obra
type UpdateWorkRequest struct {
	Title    *string `form:"title" json:"title"`
	Category *string `form:"category" json:"category"`
}

// WorkResponse representa a resposta de uma obra
type WorkResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	OwnerID   string    `json:"owner_id"`
	VoteCount int64     `json:"vote_count"`
	CreatedAt time.Time `json:"created_at"`
}

// ShelfResponse agrupa obras de uma categoria
type ShelfResponse struct {
	Category string         `json:"category"`
	Works    []WorkResponse `json:"works"`
}

// ToWorkResponse converte uma entidade Work para WorkResponse
func ToWorkResponse(work *entities.Work) WorkResponse {
	return WorkResponse{
		ID:        work.ID,
		Title:     work.Title,
		Category:  work.Category.String(),
		OwnerID:   work.OwnerID,
		VoteCount: work.VoteCount,
		CreatedAt: work.CreatedAt,
	}
}

// ToWorkResponses converte uma lista de entidades Work para WorkResponse
func ToWorkResponses(works []*entities.Work) []WorkResponse {
	responses := make([]WorkResponse, len(works))
	for i, work := range works {
		responses[i] = ToWorkResponse(work)
	}
	return responses
}

// ToShelfResponses converte as prateleiras por categoria
func ToShelfResponses(shelves []entities.CategoryShelf) []ShelfResponse {
	responses := make([]ShelfResponse, len(shelves))
	for i, shelf := range shelves {
		responses[i] = ShelfResponse{
			Category: shelf.Category.String(),
			Works:    ToWorkResponses(shelf.Works),
		}
	}
	return responses
}
