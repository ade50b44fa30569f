package service

import (
	"encoding/json"
	"strconv"

	"github.com/openformlab/formbuilder/internal/model"
	"github.com/openformlab/formbuilder/internal/scoring"
)

// toScoringForm projects a stored form into the scoring engine's view.
// JSON payload columns that fail to decode are left empty so the
// engine treats the question as malformed instead of failing the whole
// submission.
func toScoringForm(form *model.Form) scoring.Form {
	sf := scoring.Form{
		ID:                    strconv.FormatUint(uint64(form.ID), 10),
		AcceptingResponses:    form.AcceptingResponses,
		CollectRespondentInfo: form.CollectRespondentInfo,
		Questions:             make([]scoring.Question, 0, len(form.Questions)),
	}
	for _, q := range form.Questions {
		sf.Questions = append(sf.Questions, toScoringQuestion(q))
	}
	return sf
}

func toScoringQuestion(q model.Question) scoring.Question {
	sq := scoring.Question{
		ID:           strconv.FormatUint(uint64(q.ID), 10),
		Type:         scoring.QuestionType(q.Type),
		QuestionText: q.QuestionText,
		Required:     q.Required,
		Points:       q.Points,
		ClozeText:    q.ClozeText,
		Passage:      q.Passage,
	}
	unmarshalColumn(q.Categories, &sq.Categories)
	unmarshalColumn(q.Items, &sq.Items)
	unmarshalColumn(q.Blanks, &sq.Blanks)
	unmarshalColumn(q.MCQs, &sq.MCQs)
	unmarshalColumn(q.Options, &sq.Options)
	if len(q.CorrectAnswer) > 0 {
		sq.CorrectAnswer = json.RawMessage(q.CorrectAnswer)
	}
	return sq
}

func unmarshalColumn(raw []byte, dst any) {
	if len(raw) == 0 {
		return
	}
	// Best effort: an undecodable column leaves dst empty.
	_ = json.Unmarshal(raw, dst)
}
