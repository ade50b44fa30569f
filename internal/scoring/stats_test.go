package scoring

import "testing"

func statsForm(points ...int) Form {
	var questions []Question
	for i, p := range points {
		questions = append(questions, Question{
			ID:     string(rune('a' + i)),
			Type:   TypeText,
			Points: p,
		})
	}
	return Form{AcceptingResponses: true, Questions: questions}
}

func TestAggregateEmpty(t *testing.T) {
	got := Aggregate(statsForm(5), nil)
	want := Statistics{TotalSubmissions: 0, MaxPossibleScore: 5}
	if got != want {
		t.Fatalf("Aggregate()=%+v, want %+v", got, want)
	}
}

func TestAggregateZeroMaxScore(t *testing.T) {
	// No questions: percentages must degrade to zero, not divide by zero.
	subs := []Submission{{Score: 0, MaxScore: 0}}
	got := Aggregate(Form{}, subs)
	if got.AveragePercentage != 0 || got.MaxPossibleScore != 0 {
		t.Fatalf("Aggregate()=%+v, want zero percentages", got)
	}
	if got.TotalSubmissions != 1 {
		t.Fatalf("TotalSubmissions=%d, want 1", got.TotalSubmissions)
	}
}

func TestAggregateStatistics(t *testing.T) {
	form := statsForm(3, 2) // max possible 5
	subs := []Submission{
		{Score: 5, MaxScore: 5, SubmittedBy: "alice"},
		{Score: 3, MaxScore: 5, SubmittedBy: "bob"},
		{Score: 1, MaxScore: 5},
	}
	got := Aggregate(form, subs)
	want := Statistics{
		TotalSubmissions:  3,
		MaxPossibleScore:  5,
		AverageScore:      3,
		HighestScore:      5,
		AveragePercentage: 60,
		UniqueRespondents: 3,
	}
	if got != want {
		t.Fatalf("Aggregate()=%+v, want %+v", got, want)
	}
}

func TestAggregateAnonymousBucket(t *testing.T) {
	// Every submission without an identity collapses into one bucket.
	form := statsForm(1)
	subs := []Submission{
		{Score: 1, MaxScore: 1},
		{Score: 0, MaxScore: 1},
		{Score: 1, MaxScore: 1, SubmittedBy: "alice"},
	}
	got := Aggregate(form, subs)
	if got.UniqueRespondents != 2 {
		t.Fatalf("UniqueRespondents=%d, want 2", got.UniqueRespondents)
	}
}

func TestAggregateRoundsToTwoDecimals(t *testing.T) {
	form := statsForm(3)
	subs := []Submission{
		{Score: 1, MaxScore: 3},
		{Score: 2, MaxScore: 3},
		{Score: 2, MaxScore: 3},
	}
	got := Aggregate(form, subs)
	if got.AverageScore != 1.67 {
		t.Fatalf("AverageScore=%v, want 1.67", got.AverageScore)
	}
	if got.AveragePercentage != 55.67 {
		t.Fatalf("AveragePercentage=%v, want 55.67", got.AveragePercentage)
	}
}

func TestPercentage(t *testing.T) {
	cases := []struct {
		score, max, want int
	}{
		{3, 5, 60},
		{2, 3, 67},
		{0, 5, 0},
		{5, 5, 100},
		{1, 0, 0}, // zero max never divides
		{1, -1, 0},
	}
	for _, c := range cases {
		if got := Percentage(c.score, c.max); got != c.want {
			t.Fatalf("Percentage(%d,%d)=%d, want %d", c.score, c.max, got, c.want)
		}
	}
}

func TestMaxPossibleScoreDefaultsPoints(t *testing.T) {
	form := Form{Questions: []Question{
		{ID: "1", Type: TypeText, Points: 4},
		{ID: "2", Type: TypeText}, // absent points default to 1
	}}
	if got := MaxPossibleScore(form); got != 5 {
		t.Fatalf("MaxPossibleScore()=%d, want 5", got)
	}
}
