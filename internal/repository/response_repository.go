package repository

import (
	"github.com/openformlab/formbuilder/internal/model"
	"gorm.io/gorm"
)

type ResponseRepository interface {
	Create(response *model.Response) error
	FindByID(id uint) (*model.Response, error)
	FindByIDWithForm(id uint) (*model.Response, error)
	FindAllByFormID(formID uint) ([]model.Response, error)
	CountByFormID(formID uint) (int64, error)
}

type responseRepository struct {
	db *gorm.DB
}

func NewResponseRepository(db *gorm.DB) ResponseRepository {
	return &responseRepository{db: db}
}

func (r *responseRepository) Create(response *model.Response) error {
	return r.db.Create(response).Error
}

func (r *responseRepository) FindByID(id uint) (*model.Response, error) {
	var response model.Response
	if err := r.db.First(&response, id).Error; err != nil {
		return nil, err
	}
	return &response, nil
}

func (r *responseRepository) FindByIDWithForm(id uint) (*model.Response, error) {
	var response model.Response
	if err := r.db.Preload("Form").First(&response, id).Error; err != nil {
		return nil, err
	}
	return &response, nil
}

func (r *responseRepository) FindAllByFormID(formID uint) ([]model.Response, error) {
	var responses []model.Response
	err := r.db.Where("form_id = ?", formID).Order("submitted_at DESC").Find(&responses).Error
	return responses, err
}

func (r *responseRepository) CountByFormID(formID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Response{}).Where("form_id = ?", formID).Count(&count).Error
	return count, err
}
