package scoring

import (
	"encoding/json"
	"errors"
	"testing"
)

func openForm(questions ...Question) Form {
	return Form{AcceptingResponses: true, Questions: questions}
}

func reasonOf(t *testing.T, err error) Reason {
	t.Helper()
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	return vErr.Reason
}

func TestValidateClosedForm(t *testing.T) {
	form := openForm()
	form.AcceptingResponses = false
	// Rejected regardless of how well-formed the submission is.
	in := SubmissionInput{
		Answers:         AnswerSet{},
		RespondentName:  "Ada",
		RespondentEmail: "ada@example.com",
	}
	if got := reasonOf(t, ValidateSubmission(form, in)); got != ReasonFormClosed {
		t.Fatalf("reason=%s, want %s", got, ReasonFormClosed)
	}
}

func TestValidateMissingResponses(t *testing.T) {
	form := openForm()
	if got := reasonOf(t, ValidateSubmission(form, SubmissionInput{})); got != ReasonMissingResponses {
		t.Fatalf("reason=%s, want %s", got, ReasonMissingResponses)
	}
	// Presence, not completeness: an empty answer set is acceptable.
	if err := ValidateSubmission(form, SubmissionInput{Answers: AnswerSet{}}); err != nil {
		t.Fatalf("empty answer set rejected: %v", err)
	}
}

func TestValidateRespondentInfo(t *testing.T) {
	form := openForm()
	form.CollectRespondentInfo = true

	cases := []struct {
		name  string
		in    SubmissionInput
		want  Reason
		allow bool
	}{
		{
			name: "name and email missing",
			in:   SubmissionInput{Answers: AnswerSet{}},
			want: ReasonMissingRespondentInfo,
		},
		{
			name: "whitespace only name",
			in:   SubmissionInput{Answers: AnswerSet{}, RespondentName: "   ", RespondentEmail: "ada@example.com"},
			want: ReasonMissingRespondentInfo,
		},
		{
			name: "invalid email",
			in:   SubmissionInput{Answers: AnswerSet{}, RespondentName: "Ada", RespondentEmail: "not-an-email"},
			want: ReasonInvalidEmail,
		},
		{
			name:  "valid info",
			in:    SubmissionInput{Answers: AnswerSet{}, RespondentName: "Ada", RespondentEmail: "ada@example.com"},
			allow: true,
		},
		{
			name:  "authenticated identity skips info check",
			in:    SubmissionInput{Answers: AnswerSet{}, SubmittedBy: "user-42"},
			allow: true,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := ValidateSubmission(form, c.in)
			if c.allow {
				if err != nil {
					t.Fatalf("unexpected rejection: %v", err)
				}
				return
			}
			if got := reasonOf(t, err); got != c.want {
				t.Fatalf("reason=%s, want %s", got, c.want)
			}
		})
	}
}

func TestValidateRequiredQuestions(t *testing.T) {
	clozeQ := Question{
		ID:       "1",
		Type:     TypeCloze,
		Required: true,
		Blanks:   []ClozeBlank{{Word: "sky"}, {Word: "blue"}},
	}
	textQ := Question{ID: "2", Type: TypeText, Required: true}
	form := openForm(clozeQ, textQ)

	cases := []struct {
		name      string
		answers   AnswerSet
		wantIndex int
		allow     bool
	}{
		{
			name:      "nothing answered",
			answers:   AnswerSet{},
			wantIndex: 0,
		},
		{
			name:      "cloze partially filled",
			answers:   AnswerSet{"1": json.RawMessage(`["sky",""]`), "2": json.RawMessage(`"hi"`)},
			wantIndex: 0,
		},
		{
			name:      "scalar empty string",
			answers:   AnswerSet{"1": json.RawMessage(`["sky","blue"]`), "2": json.RawMessage(`""`)},
			wantIndex: 1,
		},
		{
			name:    "all answered",
			answers: AnswerSet{"1": json.RawMessage(`["up","down"]`), "2": json.RawMessage(`"hi"`)},
			allow:   true,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := ValidateSubmission(form, SubmissionInput{Answers: c.answers})
			if c.allow {
				if err != nil {
					t.Fatalf("unexpected rejection: %v", err)
				}
				return
			}
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if vErr.Reason != ReasonRequiredUnanswered {
				t.Fatalf("reason=%s, want %s", vErr.Reason, ReasonRequiredUnanswered)
			}
			if vErr.QuestionIndex != c.wantIndex {
				t.Fatalf("question index=%d, want %d", vErr.QuestionIndex, c.wantIndex)
			}
		})
	}
}

func TestValidateCheckboxFalseCountsAsAnswered(t *testing.T) {
	form := openForm(Question{ID: "1", Type: TypeCheckbox, Required: true})
	err := ValidateSubmission(form, SubmissionInput{Answers: AnswerSet{"1": json.RawMessage(`false`)}})
	if err != nil {
		t.Fatalf("false checkbox rejected: %v", err)
	}
}

func TestValidateOrderFailsFast(t *testing.T) {
	// A closed form with every other rule violated must still report
	// the closed form first.
	form := Form{
		AcceptingResponses:    false,
		CollectRespondentInfo: true,
		Questions:             []Question{{ID: "1", Type: TypeText, Required: true}},
	}
	if got := reasonOf(t, ValidateSubmission(form, SubmissionInput{})); got != ReasonFormClosed {
		t.Fatalf("reason=%s, want %s", got, ReasonFormClosed)
	}
}
