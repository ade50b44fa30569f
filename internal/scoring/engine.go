package scoring

import (
	"bytes"
	"encoding/json"
	"reflect"
)

// Score computes the total and maximum score for one submission.
//
// Credit is all-or-nothing per question: a question contributes its
// full Points on an exact match and 0 otherwise, and its Points always
// count toward MaxPoints. Questions with malformed definitions
// (missing the sub-fields their type requires) are skipped entirely
// with a 0/0 contribution so that one bad question written by a
// permissive store cannot abort the whole computation. Score is pure
// and never fails.
func Score(form Form, answers AnswerSet) Result {
	var res Result
	for _, q := range form.Questions {
		if questionMalformed(q) {
			continue
		}
		pts := questionPoints(q)
		res.MaxPoints += pts
		if correct(q, answers[q.ID]) {
			res.TotalPoints += pts
		}
	}
	return res
}

// questionPoints applies the default point value for questions that
// were stored without one.
func questionPoints(q Question) int {
	if q.Points < 1 {
		return 1
	}
	return q.Points
}

// questionMalformed reports whether a question definition is missing
// the sub-fields its type requires for scoring.
func questionMalformed(q Question) bool {
	switch q.Type {
	case TypeCategorize:
		return len(q.Items) == 0
	case TypeCloze:
		return len(q.Blanks) == 0
	case TypeComprehension:
		if len(q.MCQs) == 0 {
			return true
		}
		for _, m := range q.MCQs {
			if m.CorrectAnswer < 0 || m.CorrectAnswer >= len(m.Options) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// correct reports whether raw earns full credit for q. A missing or
// undecodable payload is simply incorrect.
func correct(q Question, raw json.RawMessage) bool {
	if isNullOrEmpty(raw) {
		return false
	}
	switch q.Type {
	case TypeCategorize:
		return categorizeCorrect(q, raw)
	case TypeCloze:
		return clozeCorrect(q, raw)
	case TypeComprehension:
		return comprehensionCorrect(q, raw)
	default:
		return scalarCorrect(q, raw)
	}
}

// categorizeCorrect requires every item to be assigned exactly its
// ground-truth category. A missing assignment fails the question.
func categorizeCorrect(q Question, raw json.RawMessage) bool {
	var assignments []CategoryAssignment
	if err := json.Unmarshal(raw, &assignments); err != nil {
		return false
	}
	byItem := make(map[string]string, len(assignments))
	for _, a := range assignments {
		byItem[a.ItemID] = a.Category
	}
	for _, item := range q.Items {
		if byItem[item.ID] != item.Category {
			return false
		}
	}
	return true
}

// clozeCorrect compares positionally against each blank's word. No
// reordering tolerance, case-sensitive.
func clozeCorrect(q Question, raw json.RawMessage) bool {
	var words []string
	if err := json.Unmarshal(raw, &words); err != nil {
		return false
	}
	for i, blank := range q.Blanks {
		if i >= len(words) || words[i] != blank.Word {
			return false
		}
	}
	return true
}

// comprehensionCorrect compares each submitted value against the text
// of the correct option, not its index.
func comprehensionCorrect(q Question, raw json.RawMessage) bool {
	var picked []string
	if err := json.Unmarshal(raw, &picked); err != nil {
		return false
	}
	for i, m := range q.MCQs {
		if i >= len(picked) || picked[i] != m.Options[m.CorrectAnswer] {
			return false
		}
	}
	return true
}

// scalarCorrect deep-compares the submitted value against the
// question's answer key. A question without an answer key can never
// earn points.
func scalarCorrect(q Question, raw json.RawMessage) bool {
	if isNullOrEmpty(q.CorrectAnswer) {
		return false
	}
	var want, got any
	if err := json.Unmarshal(q.CorrectAnswer, &want); err != nil {
		return false
	}
	if err := json.Unmarshal(raw, &got); err != nil {
		return false
	}
	return reflect.DeepEqual(want, got)
}

var jsonNull = []byte("null")

func isNullOrEmpty(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), jsonNull)
}
