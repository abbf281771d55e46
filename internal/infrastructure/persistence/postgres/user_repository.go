package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rafabene/mediaranker/internal/domain/entities"
	"github.com/rafabene/mediaranker/internal/domain/repositories"
	"github.com/rafabene/mediaranker/internal/domain/valueobjects"
)

// UserRepository implementa repositories.UserRepository
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository cria um novo UserRepository
func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &UserRepository{db: db}
}

// CreateIfAbsent usa ON CONFLICT DO NOTHING no índice (provider, uid):
// logins simultâneos da mesma identidade nunca geram dois usuários.
func (r *UserRepository) CreateIfAbsent(ctx context.Context, user *entities.User) (bool, error) {
	model := r.toModel(user)
	if model.ID == "" {
		model.ID = uuid.NewString()
	}

	result := dbFrom(ctx, r.db).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(model)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	user.ID = model.ID
	user.CreatedAt = time.Unix(model.CreatedAt, 0)
	user.UpdatedAt = time.Unix(model.UpdatedAt, 0)
	return true, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}

	var model UserModel

	if err := dbFrom(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.toEntity(&model), nil
}

func (r *UserRepository) FindByIdentity(ctx context.Context, provider, uid string) (*entities.User, error) {
	var model UserModel

	err := dbFrom(ctx, r.db).
		Where("provider = ? AND uid = ?", provider, uid).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.toEntity(&model), nil
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*entities.User, error) {
	users := make(map[string]*entities.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	var models []*UserModel
	if err := dbFrom(ctx, r.db).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, err
	}

	for _, model := range models {
		users[model.ID] = r.toEntity(model)
	}
	return users, nil
}

// Update grava apenas os atributos de exibição
func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	return dbFrom(ctx, r.db).
		Model(&UserModel{ID: user.ID}).
		Updates(map[string]interface{}{
			"name":         user.Name,
			"display_name": user.DisplayName,
			"email":        user.Email.String(),
		}).Error
}

// Conversores
func (r *UserRepository) toModel(user *entities.User) *UserModel {
	return &UserModel{
		ID:          user.ID,
		Provider:    user.Provider,
		UID:         user.UID,
		Name:        user.Name,
		DisplayName: user.DisplayName,
		Email:       user.Email.String(),
	}
}

func (r *UserRepository) toEntity(model *UserModel) *entities.User {
	// Emails gravados passaram por validação; um valor legado inválido vira vazio
	email, _ := valueobjects.NewOptionalEmail(model.Email)

	return &entities.User{
		ID:          model.ID,
		Provider:    model.Provider,
		UID:         model.UID,
		Name:        model.Name,
		DisplayName: model.DisplayName,
		Email:       email,
		CreatedAt:   time.Unix(model.CreatedAt, 0),
		UpdatedAt:   time.Unix(model.UpdatedAt, 0),
	}
}
