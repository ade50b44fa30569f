package service

import (
	"encoding/json"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/openformlab/formbuilder/internal/dto"
	"github.com/openformlab/formbuilder/internal/model"
	"github.com/openformlab/formbuilder/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

type FormService interface {
	CreateForm(req dto.FormCreateDTO) (*dto.FormResponseDTO, error)
	GetForm(formID uint) (*dto.FormResponseDTO, error)
	ListForms() ([]dto.FormSummaryDTO, error)
	ReplaceForm(formID uint, req dto.FormCreateDTO) (*dto.FormResponseDTO, error)
	SetAcceptingResponses(formID uint, accepting bool) (*dto.FormResponseDTO, error)
	DeleteForm(formID uint) error
}

type formService struct {
	formRepo repository.FormRepository
}

func NewFormService(formRepo repository.FormRepository) FormService {
	return &formService{formRepo: formRepo}
}

func (s *formService) CreateForm(req dto.FormCreateDTO) (*dto.FormResponseDTO, error) {
	form, err := formFromDTO(req)
	if err != nil {
		return nil, err
	}
	if err := s.formRepo.Create(form); err != nil {
		log.Error().Err(err).Msg("CreateForm: database error")
		return nil, fmt.Errorf("database error creating form: %w", err)
	}
	return s.GetForm(form.ID)
}

func (s *formService) GetForm(formID uint) (*dto.FormResponseDTO, error) {
	form, err := s.formRepo.FindByIDWithQuestions(formID)
	if err != nil {
		log.Warn().Err(err).Uint("formID", formID).Msg("GetForm: form not found")
		return nil, fmt.Errorf("form not found with ID %d: %w", formID, err)
	}
	return formToDTO(form), nil
}

func (s *formService) ListForms() ([]dto.FormSummaryDTO, error) {
	formsWithCounts, err := s.formRepo.FindAllWithCounts()
	if err != nil {
		log.Error().Err(err).Msg("ListForms: repository error")
		return nil, fmt.Errorf("error fetching forms: %w", err)
	}
	dtos := make([]dto.FormSummaryDTO, 0, len(formsWithCounts))
	for _, fwc := range formsWithCounts {
		dtos = append(dtos, dto.FormSummaryDTO{
			ID:                 fwc.Form.ID,
			Title:              fwc.Form.Title,
			Description:        fwc.Form.Description,
			AcceptingResponses: fwc.Form.AcceptingResponses,
			QuestionCount:      fwc.QuestionCount,
			ResponseCount:      fwc.ResponseCount,
			CreatedAt:          fwc.Form.CreatedAt,
		})
	}
	return dtos, nil
}

// ReplaceForm applies full-document edit semantics: metadata is
// overwritten and the question set is rebuilt from the request.
func (s *formService) ReplaceForm(formID uint, req dto.FormCreateDTO) (*dto.FormResponseDTO, error) {
	existing, err := s.formRepo.FindByID(formID)
	if err != nil {
		return nil, fmt.Errorf("form not found with ID %d: %w", formID, err)
	}
	form, err := formFromDTO(req)
	if err != nil {
		return nil, err
	}
	form.ID = existing.ID
	form.CreatedAt = existing.CreatedAt
	for i := range form.Questions {
		form.Questions[i].FormID = existing.ID
	}
	if err := s.formRepo.Replace(form); err != nil {
		log.Error().Err(err).Uint("formID", formID).Msg("ReplaceForm: database error")
		return nil, fmt.Errorf("database error updating form: %w", err)
	}
	return s.GetForm(formID)
}

func (s *formService) SetAcceptingResponses(formID uint, accepting bool) (*dto.FormResponseDTO, error) {
	if err := s.formRepo.SetAcceptingResponses(formID, accepting); err != nil {
		log.Warn().Err(err).Uint("formID", formID).Bool("accepting", accepting).Msg("SetAcceptingResponses failed")
		return nil, fmt.Errorf("form not found with ID %d: %w", formID, err)
	}
	return s.GetForm(formID)
}

func (s *formService) DeleteForm(formID uint) error {
	if err := s.formRepo.Delete(formID); err != nil {
		log.Warn().Err(err).Uint("formID", formID).Msg("DeleteForm failed")
		return fmt.Errorf("form not found with ID %d: %w", formID, err)
	}
	log.Info().Uint("formID", formID).Msg("Form deleted with its responses")
	return nil
}

// formFromDTO validates per-type question payloads and builds the
// persistence model. Question order follows the request array.
func formFromDTO(req dto.FormCreateDTO) (*model.Form, error) {
	form := model.Form{
		Title:                 req.Title,
		Description:           req.Description,
		HeaderImage:           req.HeaderImage,
		AcceptingResponses:    true,
		CollectRespondentInfo: req.CollectRespondentInfo,
	}
	if req.AcceptingResponses != nil {
		form.AcceptingResponses = *req.AcceptingResponses
	}
	for i, qDto := range req.Questions {
		q, err := questionFromDTO(qDto, i)
		if err != nil {
			return nil, err
		}
		form.Questions = append(form.Questions, *q)
	}
	return &form, nil
}

func questionFromDTO(qDto dto.QuestionCreateDTO, index int) (*model.Question, error) {
	q := model.Question{
		Type:         qDto.Type,
		QuestionText: qDto.QuestionText,
		Required:     qDto.Required,
		Points:       qDto.Points,
		Image:        qDto.Image,
		ClozeText:    qDto.ClozeText,
		Passage:      qDto.Passage,
		OrderInForm:  index + 1,
	}
	if q.Points < 1 {
		q.Points = 1
	}

	switch qDto.Type {
	case "categorize":
		if len(qDto.Categories) == 0 || len(qDto.Items) == 0 {
			return nil, fmt.Errorf("question %d of type 'categorize' requires categories and items", index+1)
		}
		known := make(map[string]bool, len(qDto.Categories))
		for _, c := range qDto.Categories {
			known[c] = true
		}
		for _, item := range qDto.Items {
			if !known[item.Category] {
				return nil, fmt.Errorf("question %d: item %q is assigned to unknown category %q", index+1, item.ID, item.Category)
			}
		}
	case "cloze":
		if len(qDto.Blanks) == 0 {
			return nil, fmt.Errorf("question %d of type 'cloze' requires at least one blank", index+1)
		}
	case "comprehension":
		if len(qDto.MCQs) == 0 {
			return nil, fmt.Errorf("question %d of type 'comprehension' requires at least one mcq", index+1)
		}
		for _, m := range qDto.MCQs {
			if m.CorrectAnswer < 0 || m.CorrectAnswer >= len(m.Options) {
				return nil, fmt.Errorf("question %d: mcq %q has correct_answer %d out of range", index+1, m.ID, m.CorrectAnswer)
			}
		}
	}

	if err := marshalColumn(qDto.Categories, &q.Categories); err != nil {
		return nil, err
	}
	if err := marshalColumn(qDto.Items, &q.Items); err != nil {
		return nil, err
	}
	if err := marshalColumn(qDto.Blanks, &q.Blanks); err != nil {
		return nil, err
	}
	if err := marshalColumn(qDto.MCQs, &q.MCQs); err != nil {
		return nil, err
	}
	if err := marshalColumn(qDto.Options, &q.Options); err != nil {
		return nil, err
	}
	if len(qDto.CorrectAnswer) > 0 {
		q.CorrectAnswer = []byte(qDto.CorrectAnswer)
	}
	return &q, nil
}

// marshalColumn stores a DTO slice into a JSON column, leaving the
// column NULL when the slice is empty.
func marshalColumn[T any](src []T, dst *datatypes.JSON) error {
	if len(src) == 0 {
		return nil
	}
	raw, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("error encoding question payload: %w", err)
	}
	*dst = raw
	return nil
}

func formToDTO(form *model.Form) *dto.FormResponseDTO {
	var resp dto.FormResponseDTO
	if err := copier.Copy(&resp, form); err != nil {
		log.Error().Err(err).Msg("formToDTO: copy failed")
	}
	resp.Questions = make([]dto.QuestionResponseDTO, 0, len(form.Questions))
	for _, q := range form.Questions {
		resp.Questions = append(resp.Questions, questionToDTO(q))
	}
	return &resp
}

func questionToDTO(q model.Question) dto.QuestionResponseDTO {
	return dto.QuestionResponseDTO{
		ID:            q.ID,
		FormID:        q.FormID,
		Type:          q.Type,
		QuestionText:  q.QuestionText,
		Required:      q.Required,
		Points:        q.Points,
		Image:         q.Image,
		OrderInForm:   q.OrderInForm,
		Categories:    json.RawMessage(q.Categories),
		Items:         json.RawMessage(q.Items),
		ClozeText:     q.ClozeText,
		Blanks:        json.RawMessage(q.Blanks),
		Passage:       q.Passage,
		MCQs:          json.RawMessage(q.MCQs),
		Options:       json.RawMessage(q.Options),
		CorrectAnswer: json.RawMessage(q.CorrectAnswer),
	}
}
