package service

import (
	"testing"

	"github.com/openformlab/formbuilder/internal/dto"
)

func TestFormFromDTOAssignsOrderAndDefaults(t *testing.T) {
	form, err := formFromDTO(dto.FormCreateDTO{
		Title: "Quiz",
		Questions: []dto.QuestionCreateDTO{
			{Type: "text", QuestionText: "First"},
			{Type: "cloze", ClozeText: "The __ is __", Blanks: []dto.ClozeBlankDTO{
				{ID: "b1", Word: "sky"}, {ID: "b2", Word: "blue"},
			}},
		},
	})
	if err != nil {
		t.Fatalf("formFromDTO failed: %v", err)
	}
	if !form.AcceptingResponses {
		t.Fatalf("new forms must accept responses by default")
	}
	if form.Questions[0].OrderInForm != 1 || form.Questions[1].OrderInForm != 2 {
		t.Fatalf("question order not assigned from array position: %+v", form.Questions)
	}
	if form.Questions[0].Points != 1 {
		t.Fatalf("Points=%d, want default 1", form.Questions[0].Points)
	}
	if len(form.Questions[1].Blanks) == 0 {
		t.Fatalf("blanks column not populated")
	}
}

func TestFormFromDTORejectsBadQuestions(t *testing.T) {
	cases := []struct {
		name string
		q    dto.QuestionCreateDTO
	}{
		{
			name: "categorize without items",
			q:    dto.QuestionCreateDTO{Type: "categorize", Categories: []string{"a"}},
		},
		{
			name: "categorize item with unknown category",
			q: dto.QuestionCreateDTO{
				Type:       "categorize",
				Categories: []string{"fruit"},
				Items:      []dto.CategorizeItemDTO{{ID: "i1", Text: "carrot", Category: "vegetable"}},
			},
		},
		{
			name: "cloze without blanks",
			q:    dto.QuestionCreateDTO{Type: "cloze", ClozeText: "The __"},
		},
		{
			name: "comprehension without mcqs",
			q:    dto.QuestionCreateDTO{Type: "comprehension", Passage: "..."},
		},
		{
			name: "mcq correct answer out of range",
			q: dto.QuestionCreateDTO{
				Type:    "comprehension",
				Passage: "...",
				MCQs: []dto.MCQDTO{
					{ID: "m1", Question: "?", Options: []string{"A", "B"}, CorrectAnswer: 2},
				},
			},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := formFromDTO(dto.FormCreateDTO{Title: "Quiz", Questions: []dto.QuestionCreateDTO{c.q}})
			if err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}
