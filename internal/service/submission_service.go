package service

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/openformlab/formbuilder/internal/dto"
	"github.com/openformlab/formbuilder/internal/model"
	"github.com/openformlab/formbuilder/internal/repository"
	"github.com/openformlab/formbuilder/internal/scoring"
	"github.com/rs/zerolog/log"
)

// SubmissionService accepts and retrieves form responses. Scores are
// always recomputed here from the stored form and the submitted
// answers; a score reported by the client is never trusted.
type SubmissionService interface {
	SubmitResponse(formID uint, req dto.ResponseSubmitDTO) (*dto.ResponseDetailDTO, error)
	GetResponse(responseID uint) (*dto.ResponseDetailDTO, error)
}

type submissionService struct {
	formRepo     repository.FormRepository
	responseRepo repository.ResponseRepository
}

func NewSubmissionService(formRepo repository.FormRepository, responseRepo repository.ResponseRepository) SubmissionService {
	return &submissionService{formRepo: formRepo, responseRepo: responseRepo}
}

func (s *submissionService) SubmitResponse(formID uint, req dto.ResponseSubmitDTO) (*dto.ResponseDetailDTO, error) {
	form, err := s.formRepo.FindByIDWithQuestions(formID)
	if err != nil {
		log.Warn().Err(err).Uint("formID", formID).Msg("SubmitResponse: form not found")
		return nil, fmt.Errorf("form not found with ID %d: %w", formID, err)
	}

	scoringForm := toScoringForm(form)
	answers := collectAnswers(scoringForm, req.Responses)

	input := scoring.SubmissionInput{
		Answers:         answers,
		SubmittedBy:     derefString(req.SubmittedBy),
		RespondentName:  req.RespondentName,
		RespondentEmail: req.RespondentEmail,
	}
	if err := scoring.ValidateSubmission(scoringForm, input); err != nil {
		log.Info().Err(err).Uint("formID", formID).Msg("SubmitResponse: submission rejected")
		return nil, err
	}

	result := scoring.Score(scoringForm, answers)

	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return nil, fmt.Errorf("error encoding answers: %w", err)
	}
	response := model.Response{
		FormID:          formID,
		SubmittedBy:     req.SubmittedBy,
		RespondentName:  strings.TrimSpace(req.RespondentName),
		RespondentEmail: strings.TrimSpace(req.RespondentEmail),
		Answers:         answersJSON,
		Score:           result.TotalPoints,
		MaxScore:        result.MaxPoints,
		Completed:       true,
		SubmittedAt:     time.Now(),
	}
	if err := s.responseRepo.Create(&response); err != nil {
		log.Error().Err(err).Uint("formID", formID).Msg("SubmitResponse: failed to persist response")
		return nil, fmt.Errorf("database error saving response: %w", err)
	}

	log.Info().
		Uint("formID", formID).
		Uint("responseID", response.ID).
		Int("score", result.TotalPoints).
		Int("maxScore", result.MaxPoints).
		Msg("Response submitted and scored")
	return responseToDetailDTO(&response, form.Title), nil
}

func (s *submissionService) GetResponse(responseID uint) (*dto.ResponseDetailDTO, error) {
	response, err := s.responseRepo.FindByIDWithForm(responseID)
	if err != nil {
		log.Warn().Err(err).Uint("responseID", responseID).Msg("GetResponse: response not found")
		return nil, fmt.Errorf("response not found with ID %d: %w", responseID, err)
	}
	return responseToDetailDTO(response, response.Form.Title), nil
}

// collectAnswers keys the submitted answers by question ID, dropping
// answers for questions that are not part of the form. A nil request
// slice stays nil so the validator can reject the submission as
// missing its responses.
func collectAnswers(form scoring.Form, submitted []dto.AnswerSubmitDTO) scoring.AnswerSet {
	if submitted == nil {
		return nil
	}
	known := make(map[string]bool, len(form.Questions))
	for _, q := range form.Questions {
		known[q.ID] = true
	}
	answers := make(scoring.AnswerSet, len(submitted))
	for _, a := range submitted {
		qid := strconv.FormatUint(uint64(a.QuestionID), 10)
		if !known[qid] {
			log.Warn().Str("questionID", qid).Msg("collectAnswers: answer for a question not part of this form, skipping")
			continue
		}
		answers[qid] = a.Answer
	}
	return answers
}

func responseToDetailDTO(response *model.Response, formTitle string) *dto.ResponseDetailDTO {
	detail := dto.ResponseDetailDTO{
		ID:              response.ID,
		FormID:          response.FormID,
		FormTitle:       formTitle,
		SubmittedBy:     response.SubmittedBy,
		RespondentName:  response.RespondentName,
		RespondentEmail: response.RespondentEmail,
		Score:           response.Score,
		MaxScore:        response.MaxScore,
		Percentage:      scoring.Percentage(response.Score, response.MaxScore),
		Completed:       response.Completed,
		SubmittedAt:     response.SubmittedAt,
	}
	if err := json.Unmarshal(response.Answers, &detail.Responses); err != nil {
		log.Warn().Err(err).Uint("responseID", response.ID).Msg("responseToDetailDTO: stored answers are not decodable")
		detail.Responses = map[string]json.RawMessage{}
	}
	return &detail
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
