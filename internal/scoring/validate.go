package scoring

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Reason identifies why a submission was rejected. All reasons are
// user-facing and recoverable: the caller should surface them to the
// respondent and allow a retry.
type Reason string

const (
	ReasonFormClosed            Reason = "form_closed"
	ReasonMissingResponses      Reason = "missing_responses"
	ReasonMissingRespondentInfo Reason = "missing_respondent_info"
	ReasonInvalidEmail          Reason = "invalid_email"
	ReasonRequiredUnanswered    Reason = "required_question_unanswered"
)

// ValidationError is returned by ValidateSubmission when a submission
// must be rejected. QuestionIndex is only meaningful for
// ReasonRequiredUnanswered.
type ValidationError struct {
	Reason        Reason
	QuestionIndex int
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case ReasonFormClosed:
		return "form is no longer accepting responses"
	case ReasonMissingResponses:
		return "submission carries no responses"
	case ReasonMissingRespondentInfo:
		return "respondent name and email are required for this form"
	case ReasonInvalidEmail:
		return "respondent email is not a valid address"
	case ReasonRequiredUnanswered:
		return fmt.Sprintf("required question %d is unanswered", e.QuestionIndex+1)
	}
	return string(e.Reason)
}

// SubmissionInput is the validator's view of an incoming submission.
// SubmittedBy is the authenticated identity, empty when anonymous.
type SubmissionInput struct {
	Answers         AnswerSet
	SubmittedBy     string
	RespondentName  string
	RespondentEmail string
}

var emailValidator = validator.New()

// ValidateSubmission checks a submission against its form and returns
// nil or the first violated rule as a *ValidationError, in this order:
// form open, responses present, respondent info (when collected and no
// identity is attached), required questions answered. The responses
// check is a presence check only; an empty answer set is structurally
// acceptable and simply scores zero.
func ValidateSubmission(form Form, in SubmissionInput) error {
	if !form.AcceptingResponses {
		return &ValidationError{Reason: ReasonFormClosed}
	}
	if in.Answers == nil {
		return &ValidationError{Reason: ReasonMissingResponses}
	}
	if form.CollectRespondentInfo && in.SubmittedBy == "" {
		name := strings.TrimSpace(in.RespondentName)
		email := strings.TrimSpace(in.RespondentEmail)
		if name == "" || email == "" {
			return &ValidationError{Reason: ReasonMissingRespondentInfo}
		}
		if err := emailValidator.Var(email, "email"); err != nil {
			return &ValidationError{Reason: ReasonInvalidEmail}
		}
	}
	for i, q := range form.Questions {
		if q.Required && !answered(q, in.Answers[q.ID]) {
			return &ValidationError{Reason: ReasonRequiredUnanswered, QuestionIndex: i}
		}
	}
	return nil
}

// answered reports whether raw counts as an answer for q: for the
// composite types every slot must be filled, for the simple types any
// non-null, non-empty value counts (false is a valid checkbox answer).
func answered(q Question, raw json.RawMessage) bool {
	if isNullOrEmpty(raw) {
		return false
	}
	switch q.Type {
	case TypeCategorize:
		var assignments []CategoryAssignment
		if err := json.Unmarshal(raw, &assignments); err != nil {
			return false
		}
		byItem := make(map[string]string, len(assignments))
		for _, a := range assignments {
			if strings.TrimSpace(a.Category) != "" {
				byItem[a.ItemID] = a.Category
			}
		}
		for _, item := range q.Items {
			if _, ok := byItem[item.ID]; !ok {
				return false
			}
		}
		return true
	case TypeCloze:
		return allSlotsFilled(raw, len(q.Blanks))
	case TypeComprehension:
		return allSlotsFilled(raw, len(q.MCQs))
	default:
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return false
		}
		switch val := v.(type) {
		case nil:
			return false
		case string:
			return strings.TrimSpace(val) != ""
		case []any:
			return len(val) > 0
		default:
			return true
		}
	}
}

func allSlotsFilled(raw json.RawMessage, slots int) bool {
	var vals []string
	if err := json.Unmarshal(raw, &vals); err != nil {
		return false
	}
	if len(vals) == 0 || len(vals) < slots {
		return false
	}
	for _, v := range vals[:slots] {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}
