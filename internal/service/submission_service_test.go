package service

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/openformlab/formbuilder/internal/dto"
	"github.com/openformlab/formbuilder/internal/model"
	"github.com/openformlab/formbuilder/internal/repository"
	"github.com/openformlab/formbuilder/internal/scoring"
	"gorm.io/gorm"
)

type fakeFormRepo struct {
	form *model.Form
}

func (f *fakeFormRepo) Create(form *model.Form) error { f.form = form; return nil }

func (f *fakeFormRepo) FindByID(id uint) (*model.Form, error) {
	if f.form == nil || f.form.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return f.form, nil
}

func (f *fakeFormRepo) FindByIDWithQuestions(id uint) (*model.Form, error) {
	return f.FindByID(id)
}

func (f *fakeFormRepo) FindAllWithCounts() ([]repository.FormWithCounts, error) {
	if f.form == nil {
		return nil, nil
	}
	return []repository.FormWithCounts{{Form: *f.form, QuestionCount: len(f.form.Questions)}}, nil
}

func (f *fakeFormRepo) Replace(form *model.Form) error { f.form = form; return nil }

func (f *fakeFormRepo) SetAcceptingResponses(id uint, accepting bool) error {
	if f.form == nil || f.form.ID != id {
		return gorm.ErrRecordNotFound
	}
	f.form.AcceptingResponses = accepting
	return nil
}

func (f *fakeFormRepo) Delete(id uint) error {
	if f.form == nil || f.form.ID != id {
		return gorm.ErrRecordNotFound
	}
	f.form = nil
	return nil
}

type fakeResponseRepo struct {
	responses []model.Response
}

func (f *fakeResponseRepo) Create(response *model.Response) error {
	response.ID = uint(len(f.responses) + 1)
	f.responses = append(f.responses, *response)
	return nil
}

func (f *fakeResponseRepo) FindByID(id uint) (*model.Response, error) {
	for i := range f.responses {
		if f.responses[i].ID == id {
			return &f.responses[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeResponseRepo) FindByIDWithForm(id uint) (*model.Response, error) {
	return f.FindByID(id)
}

func (f *fakeResponseRepo) FindAllByFormID(formID uint) ([]model.Response, error) {
	var out []model.Response
	for _, r := range f.responses {
		if r.FormID == formID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeResponseRepo) CountByFormID(formID uint) (int64, error) {
	rs, _ := f.FindAllByFormID(formID)
	return int64(len(rs)), nil
}

func comprehensionTestForm() *model.Form {
	return &model.Form{
		ID:                 1,
		Title:              "Reading check",
		AcceptingResponses: true,
		Questions: []model.Question{{
			ID:     7,
			FormID: 1,
			Type:   "comprehension",
			Points: 5,
			MCQs:   []byte(`[{"id":"m1","question":"Pick one","options":["A","B","C"],"correct_answer":1}]`),
		}},
	}
}

func TestSubmitResponseRecomputesScore(t *testing.T) {
	formRepo := &fakeFormRepo{form: comprehensionTestForm()}
	responseRepo := &fakeResponseRepo{}
	svc := NewSubmissionService(formRepo, responseRepo)

	detail, err := svc.SubmitResponse(1, dto.ResponseSubmitDTO{
		Responses: []dto.AnswerSubmitDTO{
			{QuestionID: 7, Answer: json.RawMessage(`["B"]`)},
		},
	})
	if err != nil {
		t.Fatalf("SubmitResponse failed: %v", err)
	}
	if detail.Score != 5 || detail.MaxScore != 5 {
		t.Fatalf("score=%d/%d, want 5/5", detail.Score, detail.MaxScore)
	}
	if detail.Percentage != 100 {
		t.Fatalf("percentage=%d, want 100", detail.Percentage)
	}
	if len(responseRepo.responses) != 1 {
		t.Fatalf("persisted %d responses, want 1", len(responseRepo.responses))
	}
	if responseRepo.responses[0].Score != 5 {
		t.Fatalf("persisted score=%d, want 5", responseRepo.responses[0].Score)
	}
}

func TestSubmitResponseWrongAnswerScoresZero(t *testing.T) {
	formRepo := &fakeFormRepo{form: comprehensionTestForm()}
	svc := NewSubmissionService(formRepo, &fakeResponseRepo{})

	detail, err := svc.SubmitResponse(1, dto.ResponseSubmitDTO{
		Responses: []dto.AnswerSubmitDTO{
			{QuestionID: 7, Answer: json.RawMessage(`["A"]`)},
		},
	})
	if err != nil {
		t.Fatalf("SubmitResponse failed: %v", err)
	}
	if detail.Score != 0 || detail.MaxScore != 5 {
		t.Fatalf("score=%d/%d, want 0/5", detail.Score, detail.MaxScore)
	}
}

func TestSubmitResponseDropsUnknownQuestionAnswers(t *testing.T) {
	formRepo := &fakeFormRepo{form: comprehensionTestForm()}
	responseRepo := &fakeResponseRepo{}
	svc := NewSubmissionService(formRepo, responseRepo)

	detail, err := svc.SubmitResponse(1, dto.ResponseSubmitDTO{
		Responses: []dto.AnswerSubmitDTO{
			{QuestionID: 99, Answer: json.RawMessage(`["B"]`)},
		},
	})
	if err != nil {
		t.Fatalf("SubmitResponse failed: %v", err)
	}
	if len(detail.Responses) != 0 {
		t.Fatalf("stored %d answers, want 0", len(detail.Responses))
	}
	if detail.Score != 0 || detail.MaxScore != 5 {
		t.Fatalf("score=%d/%d, want 0/5", detail.Score, detail.MaxScore)
	}
}

func TestSubmitResponseRejectsClosedForm(t *testing.T) {
	form := comprehensionTestForm()
	form.AcceptingResponses = false
	svc := NewSubmissionService(&fakeFormRepo{form: form}, &fakeResponseRepo{})

	_, err := svc.SubmitResponse(1, dto.ResponseSubmitDTO{
		Responses: []dto.AnswerSubmitDTO{
			{QuestionID: 7, Answer: json.RawMessage(`["B"]`)},
		},
	})
	var vErr *scoring.ValidationError
	if !errors.As(err, &vErr) || vErr.Reason != scoring.ReasonFormClosed {
		t.Fatalf("expected form_closed rejection, got %v", err)
	}
}

func TestSubmitResponseRejectsMissingResponses(t *testing.T) {
	svc := NewSubmissionService(&fakeFormRepo{form: comprehensionTestForm()}, &fakeResponseRepo{})

	_, err := svc.SubmitResponse(1, dto.ResponseSubmitDTO{})
	var vErr *scoring.ValidationError
	if !errors.As(err, &vErr) || vErr.Reason != scoring.ReasonMissingResponses {
		t.Fatalf("expected missing_responses rejection, got %v", err)
	}
}

func TestSubmitResponseFormNotFound(t *testing.T) {
	svc := NewSubmissionService(&fakeFormRepo{}, &fakeResponseRepo{})
	_, err := svc.SubmitResponse(42, dto.ResponseSubmitDTO{Responses: []dto.AnswerSubmitDTO{}})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record-not-found, got %v", err)
	}
}
