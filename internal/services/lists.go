package services

import (
	"errors"

	"flowtask/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

var ErrEmptyTitle = errors.New("title must not be empty")

type ListService interface {
	GetLists(db *gorm.DB) ([]models.List, error)
	CreateList(db *gorm.DB, list *models.List) error
}

type ListServiceImpl struct{}

func NewListService() *ListServiceImpl {
	return &ListServiceImpl{}
}

func (s *ListServiceImpl) GetLists(db *gorm.DB) ([]models.List, error) {
	var lists []models.List
	if err := db.Order("created_at ASC").Find(&lists).Error; err != nil {
		return nil, err
	}
	return lists, nil
}

func (s *ListServiceImpl) CreateList(db *gorm.DB, list *models.List) error {
	if list.Title == "" {
		return ErrEmptyTitle
	}
	if list.ID == uuid.Nil {
		id, err := uuid.NewV4()
		if err != nil {
			return err
		}
		list.ID = id
	}
	return db.Create(list).Error
}
