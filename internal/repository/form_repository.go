package repository

import (
	"github.com/openformlab/formbuilder/internal/model"
	"gorm.io/gorm"
)

type FormRepository interface {
	Create(form *model.Form) error
	FindByID(id uint) (*model.Form, error)
	FindByIDWithQuestions(id uint) (*model.Form, error)
	FindAllWithCounts() ([]FormWithCounts, error)
	Replace(form *model.Form) error
	SetAcceptingResponses(id uint, accepting bool) error
	Delete(id uint) error
}

// FormWithCounts augments a form row with its question and response
// counts for the listing endpoint.
type FormWithCounts struct {
	model.Form
	QuestionCount int
	ResponseCount int
}

type formRepository struct {
	db *gorm.DB
}

func NewFormRepository(db *gorm.DB) FormRepository {
	return &formRepository{db: db}
}

func (r *formRepository) Create(form *model.Form) error {
	// GORM creates the associated questions along with the form.
	return r.db.Create(form).Error
}

func (r *formRepository) FindByID(id uint) (*model.Form, error) {
	var form model.Form
	if err := r.db.First(&form, id).Error; err != nil {
		return nil, err
	}
	return &form, nil
}

func (r *formRepository) FindByIDWithQuestions(id uint) (*model.Form, error) {
	var form model.Form
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.order_in_form ASC")
	}).First(&form, id).Error
	if err != nil {
		return nil, err
	}
	return &form, nil
}

func (r *formRepository) FindAllWithCounts() ([]FormWithCounts, error) {
	var results []FormWithCounts
	err := r.db.Model(&model.Form{}).
		Select("forms.*, " +
			"(SELECT COUNT(*) FROM questions WHERE questions.form_id = forms.id AND questions.deleted_at IS NULL) as question_count, " +
			"(SELECT COUNT(*) FROM responses WHERE responses.form_id = forms.id AND responses.deleted_at IS NULL) as response_count").
		Where("forms.deleted_at IS NULL").
		Order("forms.created_at DESC").
		Scan(&results).Error
	return results, err
}

// Replace swaps out the whole form document: the metadata row is
// updated and the question set is rewritten from scratch, matching the
// full-document edit semantics of the builder UI.
func (r *formRepository) Replace(form *model.Form) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("form_id = ?", form.ID).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(form).Error
	})
}

func (r *formRepository) SetAcceptingResponses(id uint, accepting bool) error {
	res := r.db.Model(&model.Form{}).Where("id = ?", id).Update("accepting_responses", accepting)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a form together with its questions and every response
// collected for it.
func (r *formRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&model.Form{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("form_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		return tx.Where("form_id = ?", id).Delete(&model.Response{}).Error
	})
}
