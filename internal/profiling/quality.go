package profiling

import (
	"strings"

	"surveystat/domain/survey"
)

// EngagementLevel buckets how thoroughly respondents answered
type EngagementLevel string

const (
	EngagementHigh   EngagementLevel = "high"
	EngagementMedium EngagementLevel = "medium"
	EngagementLow    EngagementLevel = "low"
)

// QualityReport holds aggregate data quality signals for one batch
type QualityReport struct {
	OverallScore    float64         `json:"overall_score"`
	EngagementLevel EngagementLevel `json:"engagement_level"`
	SentimentScore  float64         `json:"sentiment_score"`
}

// Text answers below these lengths carry less signal.
const (
	richTextLength    = 20
	minimalTextLength = 5
)

// ScoreQuality rates a response batch: answer quality averaged per
// response, engagement from the answered/expected ratio, and a coarse
// sentiment read over free text. Expected fields default to the union
// of observed fields.
func ScoreQuality(responses []survey.ResponseRecord, expectedFields []string) QualityReport {
	if len(responses) == 0 {
		return QualityReport{EngagementLevel: EngagementLow, SentimentScore: 0.5}
	}

	fields := expectedFields
	if len(fields) == 0 {
		fields = observedFields(responses)
	}

	var qualitySum, answerRatioSum float64
	for _, r := range responses {
		qualitySum += responseQuality(r, fields)
		answerRatioSum += answeredRatio(r, fields)
	}

	report := QualityReport{
		OverallScore:   qualitySum / float64(len(responses)),
		SentimentScore: sentimentScore(responses),
	}
	report.EngagementLevel = engagementLevel(answerRatioSum / float64(len(responses)))
	return report
}

// responseQuality averages per-answer quality for one response. Text
// length is the signal: long answers score 1.0, short ones 0.7, token
// ones 0.3. Non-text answers always count fully.
func responseQuality(r survey.ResponseRecord, fields []string) float64 {
	var sum float64
	var answered int
	for _, field := range fields {
		v, ok := r.Value(field)
		if !ok || survey.IsMissing(v) {
			continue
		}
		answered++
		sum += answerQuality(v)
	}
	if answered == 0 {
		return 0
	}
	return sum / float64(answered)
}

func answerQuality(v interface{}) float64 {
	s, ok := v.(string)
	if !ok {
		return 1.0
	}
	switch {
	case len(s) > richTextLength:
		return 1.0
	case len(s) > minimalTextLength:
		return 0.7
	default:
		return 0.3
	}
}

func answeredRatio(r survey.ResponseRecord, fields []string) float64 {
	if len(fields) == 0 {
		return 0
	}
	answered := 0
	for _, field := range fields {
		if v, ok := r.Value(field); ok && !survey.IsMissing(v) {
			answered++
		}
	}
	return float64(answered) / float64(len(fields))
}

func engagementLevel(ratio float64) EngagementLevel {
	switch {
	case ratio > 0.8:
		return EngagementHigh
	case ratio > 0.5:
		return EngagementMedium
	default:
		return EngagementLow
	}
}

// sentimentScore maps lexicon hits across all text answers onto [0,1].
// No hits at all reads as neutral 0.5.
func sentimentScore(responses []survey.ResponseRecord) float64 {
	var positive, negative int
	for _, r := range responses {
		for _, v := range r.Data {
			s, ok := v.(string)
			if !ok {
				continue
			}
			for _, word := range strings.Fields(strings.ToLower(s)) {
				word = strings.Trim(word, ".,!?;:\"'()")
				if positiveWords[word] {
					positive++
				}
				if negativeWords[word] {
					negative++
				}
			}
		}
	}

	total := positive + negative
	if total == 0 {
		return 0.5
	}
	return float64(positive) / float64(total)
}

var positiveWords = map[string]bool{
	"good": true, "great": true, "excellent": true, "love": true,
	"happy": true, "satisfied": true, "amazing": true, "helpful": true,
	"easy": true, "recommend": true, "useful": true, "fantastic": true,
}

var negativeWords = map[string]bool{
	"bad": true, "poor": true, "terrible": true, "hate": true,
	"unhappy": true, "disappointed": true, "awful": true, "confusing": true,
	"difficult": true, "slow": true, "broken": true, "useless": true,
}
