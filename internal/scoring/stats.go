package scoring

import "math"

// anonymousRespondent is the sentinel bucket every submission without
// an identity collapses into when counting unique respondents. This
// deliberately undercounts distinct anonymous respondents; it mirrors
// how the collected data actually distinguishes people.
const anonymousRespondent = "anonymous"

// MaxPossibleScore sums the point values of a form's questions,
// defaulting absent point values to 1.
func MaxPossibleScore(form Form) int {
	total := 0
	for _, q := range form.Questions {
		total += questionPoints(q)
	}
	return total
}

// Percentage converts a score into a whole percentage of the maximum,
// returning 0 when the maximum is not positive.
func Percentage(score, maxPossible int) int {
	if maxPossible <= 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(maxPossible) * 100))
}

// Aggregate computes summary statistics over all submissions collected
// for one form. It is total over its inputs: an empty submission list
// degrades to zero statistics instead of dividing by zero.
func Aggregate(form Form, subs []Submission) Statistics {
	stats := Statistics{
		TotalSubmissions: len(subs),
		MaxPossibleScore: MaxPossibleScore(form),
	}
	if len(subs) == 0 {
		return stats
	}

	sum := 0
	respondents := make(map[string]struct{})
	for _, sub := range subs {
		sum += sub.Score
		if sub.Score > stats.HighestScore {
			stats.HighestScore = sub.Score
		}
		who := sub.SubmittedBy
		if who == "" {
			who = anonymousRespondent
		}
		respondents[who] = struct{}{}
	}
	stats.UniqueRespondents = len(respondents)
	stats.AverageScore = round2(float64(sum) / float64(len(subs)))
	if stats.MaxPossibleScore > 0 {
		stats.AveragePercentage = round2(stats.AverageScore / float64(stats.MaxPossibleScore) * 100)
	}
	return stats
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
