package service

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/openformlab/formbuilder/internal/dto"
	"github.com/openformlab/formbuilder/internal/repository"
	"github.com/openformlab/formbuilder/internal/scoring"
	"github.com/rs/zerolog/log"
)

// ResponseService builds the form owner's responses view: every
// submission with its percentage, aggregate statistics, and each
// question paired with all answers collected for it.
type ResponseService interface {
	GetFormResponses(formID uint) (*dto.FormResponsesDTO, error)
}

type responseService struct {
	formRepo     repository.FormRepository
	responseRepo repository.ResponseRepository
}

func NewResponseService(formRepo repository.FormRepository, responseRepo repository.ResponseRepository) ResponseService {
	return &responseService{formRepo: formRepo, responseRepo: responseRepo}
}

func (s *responseService) GetFormResponses(formID uint) (*dto.FormResponsesDTO, error) {
	form, err := s.formRepo.FindByIDWithQuestions(formID)
	if err != nil {
		log.Warn().Err(err).Uint("formID", formID).Msg("GetFormResponses: form not found")
		return nil, fmt.Errorf("form not found with ID %d: %w", formID, err)
	}
	responses, err := s.responseRepo.FindAllByFormID(formID)
	if err != nil {
		log.Error().Err(err).Uint("formID", formID).Msg("GetFormResponses: repository error")
		return nil, fmt.Errorf("error fetching responses for form %d: %w", formID, err)
	}

	scoringForm := toScoringForm(form)
	maxPossible := scoring.MaxPossibleScore(scoringForm)

	summaries := make([]dto.ResponseSummaryDTO, 0, len(responses))
	submissions := make([]scoring.Submission, 0, len(responses))
	answersByQuestion := make(map[string][]dto.RespondentAnswerDTO)

	for _, r := range responses {
		summaries = append(summaries, dto.ResponseSummaryDTO{
			ID:             r.ID,
			SubmittedBy:    r.SubmittedBy,
			RespondentName: r.RespondentName,
			Score:          r.Score,
			MaxScore:       r.MaxScore,
			Percentage:     scoring.Percentage(r.Score, maxPossible),
			SubmittedAt:    r.SubmittedAt,
		})
		submissions = append(submissions, scoring.Submission{
			Score:       r.Score,
			MaxScore:    r.MaxScore,
			SubmittedBy: derefString(r.SubmittedBy),
			SubmittedAt: r.SubmittedAt,
		})

		var answers map[string]json.RawMessage
		if err := json.Unmarshal(r.Answers, &answers); err != nil {
			log.Warn().Err(err).Uint("responseID", r.ID).Msg("GetFormResponses: stored answers are not decodable, skipping")
			continue
		}
		respondent := respondentLabel(derefString(r.SubmittedBy), r.RespondentName)
		for qid, answer := range answers {
			answersByQuestion[qid] = append(answersByQuestion[qid], dto.RespondentAnswerDTO{
				Respondent:  respondent,
				Answer:      answer,
				SubmittedAt: r.SubmittedAt,
			})
		}
	}

	questionAnswers := make([]dto.QuestionAnswersDTO, 0, len(form.Questions))
	for _, q := range form.Questions {
		qid := strconv.FormatUint(uint64(q.ID), 10)
		entries := answersByQuestion[qid]
		if entries == nil {
			entries = []dto.RespondentAnswerDTO{}
		}
		questionAnswers = append(questionAnswers, dto.QuestionAnswersDTO{
			QuestionID:   q.ID,
			QuestionText: q.QuestionText,
			Type:         q.Type,
			Answers:      entries,
		})
	}

	return &dto.FormResponsesDTO{
		Form:            *formToDTO(form),
		Responses:       summaries,
		Statistics:      scoring.Aggregate(scoringForm, submissions),
		QuestionAnswers: questionAnswers,
	}, nil
}

func respondentLabel(submittedBy, name string) string {
	if submittedBy != "" {
		return submittedBy
	}
	if name != "" {
		return name
	}
	return "anonymous"
}
