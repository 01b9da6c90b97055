package profiling

import (
	"math"
	"testing"

	"surveystat/domain/core"
	"surveystat/domain/survey"
)

func batch() []survey.ResponseRecord {
	return []survey.ResponseRecord{
		{
			ID:             core.ResponseID("r-1"),
			IsComplete:     true,
			CompletionTime: 30,
			Data: map[string]interface{}{
				"rating":   4.0,
				"channel":  "email",
				"comment":  "The product is great and the support team was very helpful",
				"features": []interface{}{"search", "export"},
			},
		},
		{
			ID:             core.ResponseID("r-2"),
			IsComplete:     true,
			CompletionTime: 50,
			Data: map[string]interface{}{
				"rating":   2.0,
				"channel":  "email",
				"comment":  "slow and confusing",
				"features": []interface{}{"search"},
			},
		},
		{
			ID:         core.ResponseID("r-3"),
			IsComplete: false,
			Data: map[string]interface{}{
				"rating":  3.0,
				"channel": "phone",
			},
		},
		{
			ID:         core.ResponseID("r-4"),
			IsComplete: true,
			Data: map[string]interface{}{
				"rating": 5.0,
			},
		},
	}
}

func TestProfile_CompletionMetrics(t *testing.T) {
	profile := Profile(batch(), nil)

	if profile.TotalResponses != 4 {
		t.Errorf("total %d, want 4", profile.TotalResponses)
	}
	if profile.CompleteResponses != 3 {
		t.Errorf("complete %d, want 3", profile.CompleteResponses)
	}
	if profile.CompletionRate != 75.0 {
		t.Errorf("completion rate %v, want 75.0", profile.CompletionRate)
	}

	// Only the two positive completion times count toward the mean.
	if profile.AvgCompletionTime != 40.0 {
		t.Errorf("avg completion time %v, want 40.0", profile.AvgCompletionTime)
	}
}

func TestProfile_NumericField(t *testing.T) {
	profile := Profile(batch(), nil)

	rating, ok := profile.Fields["rating"]
	if !ok {
		t.Fatal("rating field not profiled")
	}
	if rating.Kind != KindNumeric {
		t.Fatalf("rating kind %q, want numeric", rating.Kind)
	}
	if rating.ResponseCount != 4 {
		t.Errorf("response count %d, want 4", rating.ResponseCount)
	}
	if rating.ResponseRate != 100.0 {
		t.Errorf("response rate %v, want 100.0", rating.ResponseRate)
	}
	if rating.Numeric == nil {
		t.Fatal("numeric summary missing")
	}
	if rating.Numeric.Mean != 3.5 {
		t.Errorf("mean %v, want 3.5", rating.Numeric.Mean)
	}
	if rating.Numeric.Min != 2 || rating.Numeric.Max != 5 {
		t.Errorf("min/max %v/%v, want 2/5", rating.Numeric.Min, rating.Numeric.Max)
	}
}

func TestProfile_ChoiceFieldFlattensLists(t *testing.T) {
	profile := Profile(batch(), nil)

	features, ok := profile.Fields["features"]
	if !ok {
		t.Fatal("features field not profiled")
	}
	if features.Kind != KindChoice {
		t.Fatalf("features kind %q, want choice", features.Kind)
	}
	if features.Choice == nil {
		t.Fatal("choice summary missing")
	}
	if features.Choice.Mode != "search" || features.Choice.ModeCount != 2 {
		t.Errorf("mode %q/%d, want search/2", features.Choice.Mode, features.Choice.ModeCount)
	}
	if features.Choice.UniqueCount != 2 {
		t.Errorf("unique count %d, want 2", features.Choice.UniqueCount)
	}

	channel := profile.Fields["channel"]
	if channel.Kind != KindChoice {
		t.Errorf("channel kind %q, want choice", channel.Kind)
	}
	if channel.ResponseCount != 3 {
		t.Errorf("channel response count %d, want 3", channel.ResponseCount)
	}
}

func TestProfile_TextField(t *testing.T) {
	profile := Profile(batch(), []FieldSpec{{Name: "comment", Type: "text"}})

	comment, ok := profile.Fields["comment"]
	if !ok {
		t.Fatal("comment field not profiled")
	}
	if comment.Kind != KindText {
		t.Fatalf("comment kind %q, want text", comment.Kind)
	}
	if comment.Text == nil {
		t.Fatal("text summary missing")
	}
	if comment.Text.TotalWords == 0 {
		t.Error("total words should be counted")
	}

	// Stop words never appear among the common words.
	for _, wc := range comment.Text.CommonWords {
		if stopWords[wc.Word] {
			t.Errorf("stop word %q leaked into common words", wc.Word)
		}
	}
}

func TestProfile_DeclaredTypeWinsOverDetection(t *testing.T) {
	// Numeric-looking values declared as a choice question stay choice.
	responses := []survey.ResponseRecord{
		{ID: "a", Data: map[string]interface{}{"tier": 1.0}},
		{ID: "b", Data: map[string]interface{}{"tier": 2.0}},
	}

	profile := Profile(responses, []FieldSpec{{Name: "tier", Type: "select"}})
	if got := profile.Fields["tier"].Kind; got != KindChoice {
		t.Errorf("tier kind %q, want choice", got)
	}

	profile = Profile(responses, nil)
	if got := profile.Fields["tier"].Kind; got != KindNumeric {
		t.Errorf("detected tier kind %q, want numeric", got)
	}
}

func TestProfile_Empty(t *testing.T) {
	profile := Profile(nil, nil)
	if profile.TotalResponses != 0 {
		t.Errorf("total %d, want 0", profile.TotalResponses)
	}
	if len(profile.Fields) != 0 {
		t.Errorf("fields %v, want none", profile.Fields)
	}
}

func TestScoreQuality_Engagement(t *testing.T) {
	report := ScoreQuality(batch(), []string{"rating", "channel", "comment", "features"})

	// 4/4 + 4/4 + 2/4 + 1/4 answered = mean 0.6875, medium engagement.
	if report.EngagementLevel != EngagementMedium {
		t.Errorf("engagement %q, want medium", report.EngagementLevel)
	}
	if report.OverallScore <= 0 || report.OverallScore > 1 {
		t.Errorf("overall score %v outside (0,1]", report.OverallScore)
	}
}

func TestScoreQuality_AnswerScores(t *testing.T) {
	responses := []survey.ResponseRecord{
		{ID: "a", Data: map[string]interface{}{
			"comment": "this answer is long enough to count as rich text",
		}},
	}
	report := ScoreQuality(responses, []string{"comment"})
	if report.OverallScore != 1.0 {
		t.Errorf("rich text score %v, want 1.0", report.OverallScore)
	}

	responses[0].Data["comment"] = "ok"
	report = ScoreQuality(responses, []string{"comment"})
	if report.OverallScore != 0.3 {
		t.Errorf("token text score %v, want 0.3", report.OverallScore)
	}

	responses[0].Data["comment"] = 4.0
	report = ScoreQuality(responses, []string{"comment"})
	if report.OverallScore != 1.0 {
		t.Errorf("numeric answer score %v, want 1.0", report.OverallScore)
	}
}

func TestScoreQuality_Sentiment(t *testing.T) {
	responses := []survey.ResponseRecord{
		{ID: "a", Data: map[string]interface{}{"comment": "great product, very helpful"}},
		{ID: "b", Data: map[string]interface{}{"comment": "slow and confusing at times"}},
	}

	report := ScoreQuality(responses, nil)
	// 2 positive hits vs 2 negative hits.
	if math.Abs(report.SentimentScore-0.5) > 1e-12 {
		t.Errorf("sentiment %v, want 0.5", report.SentimentScore)
	}

	report = ScoreQuality(responses[:1], nil)
	if report.SentimentScore != 1.0 {
		t.Errorf("sentiment %v, want 1.0 for all-positive text", report.SentimentScore)
	}
}

func TestScoreQuality_NoTextIsNeutral(t *testing.T) {
	responses := []survey.ResponseRecord{
		{ID: "a", Data: map[string]interface{}{"rating": 4.0}},
	}
	report := ScoreQuality(responses, nil)
	if report.SentimentScore != 0.5 {
		t.Errorf("sentiment %v, want neutral 0.5", report.SentimentScore)
	}
}
