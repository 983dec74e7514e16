package mysql

import (
	"context"

	"github.com/Guyuepp/go-clean-discussion/domain"
	"github.com/Guyuepp/go-clean-discussion/internal/repository/mysql/model"
	"gorm.io/gorm"
)

type userRepository struct {
	DB *gorm.DB
}

var _ domain.UserRepository = (*userRepository)(nil)

// NewUserRepository will create an implementation of domain.UserRepository
func NewUserRepository(db *gorm.DB) *userRepository {
	return &userRepository{
		DB: db,
	}
}

func (m *userRepository) GetByID(ctx context.Context, id int64) (domain.User, error) {
	var user model.User
	if err := m.DB.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return domain.User{}, translateError("get user", err)
	}

	return user.ToDomain(), nil
}

func (m *userRepository) FetchScriptAuthors(ctx context.Context, scriptID int64) ([]domain.User, error) {
	var users []model.User
	err := m.DB.WithContext(ctx).
		Joins("JOIN script_authors ON script_authors.user_id = users.id").
		Where("script_authors.script_id = ?", scriptID).
		Order("users.id").
		Find(&users).Error
	if err != nil {
		return nil, translateError("fetch script authors", err)
	}

	res := make([]domain.User, len(users))
	for i := range users {
		res[i] = users[i].ToDomain()
	}
	return res, nil
}
