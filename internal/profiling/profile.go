// Package profiling summarizes a response batch before or after analysis:
// completion metrics, per-field distributions, and data quality signals.
// Profiles are computed fresh on every call and never cached.
package profiling

import (
	"sort"
	"strings"

	"github.com/montanaflynn/stats"

	"surveystat/domain/survey"
)

// FieldKind classifies how a survey field is summarized
type FieldKind string

const (
	KindNumeric FieldKind = "numeric"
	KindChoice  FieldKind = "choice"
	KindText    FieldKind = "text"
)

// FieldSpec declares a survey field and its authored question type.
// An empty Type means the kind is detected from the values.
type FieldSpec struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// ValueCount represents a choice value and its frequency
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// WordCount represents a word and its frequency across text answers
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// NumericSummary contains statistics for numeric fields
type NumericSummary struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// ChoiceSummary contains statistics for single and multi select fields
type ChoiceSummary struct {
	UniqueCount int          `json:"unique_count"`
	TopValues   []ValueCount `json:"top_values"`
	Mode        string       `json:"mode,omitempty"`
	ModeCount   int          `json:"mode_count,omitempty"`
}

// TextSummary contains statistics for free text fields
type TextSummary struct {
	AverageLength float64     `json:"average_length"`
	TotalWords    int         `json:"total_words"`
	CommonWords   []WordCount `json:"common_words,omitempty"`
}

// FieldSummary is the per-field slice of a response profile
type FieldSummary struct {
	Field         string          `json:"field"`
	Kind          FieldKind       `json:"kind"`
	ResponseCount int             `json:"response_count"`
	ResponseRate  float64         `json:"response_rate"`
	Numeric       *NumericSummary `json:"numeric,omitempty"`
	Choice        *ChoiceSummary  `json:"choice,omitempty"`
	Text          *TextSummary    `json:"text,omitempty"`
}

// ResponseProfile is the complete profile of one response batch
type ResponseProfile struct {
	TotalResponses    int                     `json:"total_responses"`
	CompleteResponses int                     `json:"complete_responses"`
	CompletionRate    float64                 `json:"completion_rate"`
	AvgCompletionTime float64                 `json:"avg_completion_time,omitempty"`
	Fields            map[string]FieldSummary `json:"fields"`
	Quality           *QualityReport          `json:"quality,omitempty"`
}

const (
	topValueCount  = 3
	topWordCount   = 10
	maxChoiceCards = 10
)

// Profile summarizes a batch of responses. Declared fields drive the
// summaries; with no declarations every observed field is profiled and
// its kind detected from the values.
func Profile(responses []survey.ResponseRecord, fields []FieldSpec) *ResponseProfile {
	profile := &ResponseProfile{
		TotalResponses: len(responses),
		Fields:         make(map[string]FieldSummary),
	}
	if len(responses) == 0 {
		return profile
	}

	var complete, timed int
	var timeSum float64
	for _, r := range responses {
		if r.IsComplete {
			complete++
		}
		if r.CompletionTime > 0 {
			timeSum += r.CompletionTime
			timed++
		}
	}
	profile.CompleteResponses = complete
	profile.CompletionRate = float64(complete) / float64(len(responses)) * 100
	if timed > 0 {
		profile.AvgCompletionTime = timeSum / float64(timed)
	}

	for _, spec := range resolveFields(responses, fields) {
		profile.Fields[spec.Name] = summarizeField(responses, spec)
	}

	return profile
}

// resolveFields returns the declared fields, or the union of observed
// fields in sorted order when nothing was declared
func resolveFields(responses []survey.ResponseRecord, fields []FieldSpec) []FieldSpec {
	if len(fields) > 0 {
		return fields
	}

	names := observedFields(responses)
	specs := make([]FieldSpec, len(names))
	for i, name := range names {
		specs[i] = FieldSpec{Name: name}
	}
	return specs
}

// observedFields is the sorted union of data fields across the batch
func observedFields(responses []survey.ResponseRecord) []string {
	seen := make(map[string]bool)
	for _, r := range responses {
		for field := range r.Data {
			seen[field] = true
		}
	}

	names := make([]string, 0, len(seen))
	for field := range seen {
		names = append(names, field)
	}
	sort.Strings(names)
	return names
}

func summarizeField(responses []survey.ResponseRecord, spec FieldSpec) FieldSummary {
	var values []interface{}
	for _, r := range responses {
		v, ok := r.Value(spec.Name)
		if !ok || survey.IsMissing(v) {
			continue
		}
		values = append(values, v)
	}

	summary := FieldSummary{
		Field:         spec.Name,
		Kind:          fieldKind(spec.Type, values),
		ResponseCount: len(values),
		ResponseRate:  float64(len(values)) / float64(len(responses)) * 100,
	}

	switch summary.Kind {
	case KindNumeric:
		summary.Numeric = numericSummary(values)
	case KindChoice:
		summary.Choice = choiceSummary(values)
	case KindText:
		summary.Text = textSummary(values)
	}

	return summary
}

// fieldKind maps an authored question type to a summary kind, detecting
// from the values when the type is unknown
func fieldKind(declared string, values []interface{}) FieldKind {
	switch strings.ToLower(declared) {
	case "number", "numeric", "rating", "scale", "slider":
		return KindNumeric
	case "select", "radio", "checkbox", "dropdown", "choice", "boolean":
		return KindChoice
	case "text", "textarea", "open", "comment":
		return KindText
	}
	return detectKind(values)
}

func detectKind(values []interface{}) FieldKind {
	if len(values) == 0 {
		return KindText
	}

	// Any list answer marks a multi-select.
	for _, v := range values {
		if _, ok := v.([]interface{}); ok {
			return KindChoice
		}
	}

	if _, ok := survey.NumericValues(values); ok {
		return KindNumeric
	}

	unique := make(map[string]bool)
	for _, v := range values {
		unique[survey.CategoryLabel(v)] = true
	}
	ratio := float64(len(unique)) / float64(len(values))
	if len(unique) <= maxChoiceCards || ratio <= 0.5 {
		return KindChoice
	}
	return KindText
}

func numericSummary(values []interface{}) *NumericSummary {
	var nums []float64
	for _, v := range values {
		if n, ok := survey.NumericValue(v); ok {
			nums = append(nums, n)
		}
	}
	if len(nums) == 0 {
		return &NumericSummary{}
	}

	mean, _ := stats.Mean(nums)
	median, _ := stats.Median(nums)
	std, _ := stats.StandardDeviation(nums)
	min, _ := stats.Min(nums)
	max, _ := stats.Max(nums)

	return &NumericSummary{
		Mean:   mean,
		Median: median,
		Std:    std,
		Min:    min,
		Max:    max,
	}
}

func choiceSummary(values []interface{}) *ChoiceSummary {
	counts := make(map[string]int)
	for _, v := range values {
		// Multi-select answers contribute one count per selection.
		if list, ok := v.([]interface{}); ok {
			for _, item := range list {
				counts[survey.CategoryLabel(item)]++
			}
			continue
		}
		counts[survey.CategoryLabel(v)]++
	}

	top := topCounts(counts, topValueCount)
	summary := &ChoiceSummary{
		UniqueCount: len(counts),
		TopValues:   top,
	}
	if len(top) > 0 {
		summary.Mode = top[0].Value
		summary.ModeCount = top[0].Count
	}
	return summary
}

func textSummary(values []interface{}) *TextSummary {
	var texts []string
	for _, v := range values {
		if s, ok := v.(string); ok {
			texts = append(texts, s)
		}
	}
	if len(texts) == 0 {
		return &TextSummary{}
	}

	var totalLen, totalWords int
	wordCounts := make(map[string]int)
	for _, text := range texts {
		totalLen += len(text)
		for _, word := range strings.Fields(strings.ToLower(text)) {
			word = strings.Trim(word, ".,!?;:\"'()")
			if word == "" {
				continue
			}
			totalWords++
			if !stopWords[word] {
				wordCounts[word]++
			}
		}
	}

	top := topCounts(wordCounts, topWordCount)
	common := make([]WordCount, len(top))
	for i, vc := range top {
		common[i] = WordCount{Word: vc.Value, Count: vc.Count}
	}

	return &TextSummary{
		AverageLength: float64(totalLen) / float64(len(texts)),
		TotalWords:    totalWords,
		CommonWords:   common,
	}
}

// topCounts returns the n most frequent entries, ties broken by value so
// the ordering is deterministic
func topCounts(counts map[string]int, n int) []ValueCount {
	entries := make([]ValueCount, 0, len(counts))
	for value, count := range counts {
		entries = append(entries, ValueCount{Value: value, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Value < entries[j].Value
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"but": true, "is": true, "are": true, "was": true, "were": true,
	"i": true, "it": true, "to": true, "of": true, "in": true,
	"on": true, "for": true, "with": true, "this": true, "that": true,
	"my": true, "we": true, "you": true, "at": true, "as": true,
	"be": true, "have": true, "has": true, "had": true, "not": true,
	"so": true, "very": true, "its": true, "it's": true,
}
