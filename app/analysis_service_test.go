package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"surveystat/domain/core"
	"surveystat/domain/estimation"
	"surveystat/domain/survey"
	"surveystat/internal/testkit"
)

// failingArchive rejects every store, for exercising the best-effort path.
type failingArchive struct{}

func (failingArchive) StoreRun(ctx context.Context, run *estimation.AnalysisRun) error {
	return errors.New("connection refused")
}

func TestAnalysisService_RunFullPipeline(t *testing.T) {
	config := testkit.DefaultGeneratorConfig()
	config.ResponseCount = 60
	gen := testkit.NewSurveyGenerator(config)
	responses := gen.GenerateResponses()

	archive := testkit.NewInMemoryArchive()
	service := NewAnalysisService(archive, nil)

	result, err := service.Run(context.Background(), AnalysisRequest{
		SurveyID:        core.SurveyID("sat-2026"),
		Responses:       responses,
		Method:          survey.Stratified,
		Frame:           gen.Frame(),
		ConfidenceLevel: survey.Confidence95,
		Variables:       core.VariableKeys([]string{"score", "satisfaction"}),
		Tests: []estimation.TestSpec{
			{Name: "group_effect", Type: estimation.TestTTest, Variables: core.VariableKeys([]string{"group", "score"})},
			{Name: "region_mix", Type: estimation.TestChiSquare, Variables: core.VariableKeys([]string{"region", "satisfaction"})},
		},
		WithProfile: true,
		Store:       true,
	})

	assert.NoError(t, err)
	assert.NotNil(t, result)

	assert.NotNil(t, result.Weights)
	assert.Equal(t, survey.Stratified, result.Weights.Method)
	assert.Equal(t, 60, result.Weights.TotalResponses)
	assert.Greater(t, result.Weights.EffectiveSampleSize, 0.0)

	assert.NotNil(t, result.Estimates)
	assert.Len(t, result.Estimates.Estimates, 2)
	score := result.Estimates.Estimates["score"]
	assert.NotNil(t, score.Numeric, "score should estimate as numeric")
	satisfaction := result.Estimates.Estimates["satisfaction"]
	assert.NotNil(t, satisfaction.Categorical, "satisfaction should estimate as categorical")

	assert.NotNil(t, result.Variance)
	assert.Equal(t, 60, result.Variance.NominalSampleSize)

	assert.Len(t, result.Tests, 2)
	for name, outcome := range result.Tests {
		assert.Empty(t, outcome.Error, "test %s should run cleanly", name)
		assert.NotNil(t, outcome.Result)
		assert.GreaterOrEqual(t, outcome.Result.PValue, 0.0)
		assert.LessOrEqual(t, outcome.Result.PValue, 1.0)
	}

	assert.NotNil(t, result.Profile)
	assert.Equal(t, 60, result.Profile.TotalResponses)
	assert.NotNil(t, result.Profile.Quality)

	assert.True(t, result.Archived)
	assert.Equal(t, 1, archive.Count())
	stored, err := archive.GetRun(context.Background(), result.RunID)
	assert.NoError(t, err)
	assert.NotNil(t, stored)
	assert.Equal(t, result.Fingerprint, stored.Fingerprint)
	assert.Equal(t, 2, stored.TestCount())
}

func TestAnalysisService_EmptyBatchFails(t *testing.T) {
	service := NewAnalysisService(nil, nil)

	result, err := service.Run(context.Background(), AnalysisRequest{})

	assert.Nil(t, result)
	assert.EqualError(t, err, "No responses provided")
}

func TestAnalysisService_DefaultsApply(t *testing.T) {
	responses := []survey.ResponseRecord{
		{ID: "r1", Data: map[string]interface{}{"age": 31.0, "city": "oslo"}},
		{ID: "r2", Data: map[string]interface{}{"age": 45.0, "city": "bergen"}},
		{ID: "r3", Data: map[string]interface{}{"age": 28.0, "city": "oslo"}},
	}
	service := NewAnalysisService(testkit.NewInMemoryArchive(), nil)

	result, err := service.Run(context.Background(), AnalysisRequest{Responses: responses})

	assert.NoError(t, err)
	assert.Equal(t, survey.SimpleRandom, result.Weights.Method)
	assert.Equal(t, survey.Confidence95, result.Estimates.ConfidenceLevel)
	assert.Equal(t, 1.0, result.Variance.DesignEffect)

	// Unset variables default to every observed field.
	assert.Len(t, result.Estimates.Estimates, 2)
	assert.Contains(t, result.Estimates.Estimates, "age")
	assert.Contains(t, result.Estimates.Estimates, "city")

	assert.False(t, result.Archived, "runs are only stored on request")
	assert.Nil(t, result.Tests)
	assert.Nil(t, result.Profile)
}

func TestAnalysisService_FingerprintIgnoresVariableOrder(t *testing.T) {
	kit := testkit.NewTestKit()
	responses := kit.GenerateResponses(20)
	service := NewAnalysisService(nil, nil)

	first, err := service.Run(context.Background(), AnalysisRequest{
		Responses: responses,
		Variables: core.VariableKeys([]string{"score", "rating"}),
	})
	assert.NoError(t, err)

	second, err := service.Run(context.Background(), AnalysisRequest{
		Responses: responses,
		Variables: core.VariableKeys([]string{"rating", "score"}),
	})
	assert.NoError(t, err)

	assert.Equal(t, first.Fingerprint, second.Fingerprint)
	assert.NotEqual(t, first.RunID, second.RunID, "each run keeps its own identity")

	other, err := service.Run(context.Background(), AnalysisRequest{
		Responses: responses,
		Method:    survey.Systematic,
		Variables: core.VariableKeys([]string{"score", "rating"}),
	})
	assert.NoError(t, err)
	assert.NotEqual(t, first.Fingerprint, other.Fingerprint, "method is part of the fingerprint")
}

func TestAnalysisService_ArchiveFailureIsNotFatal(t *testing.T) {
	kit := testkit.NewTestKit()
	service := NewAnalysisService(failingArchive{}, nil)

	result, err := service.Run(context.Background(), AnalysisRequest{
		Responses: kit.GenerateResponses(10),
		Store:     true,
	})

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.False(t, result.Archived)
}

func TestAnalysisService_CancelledContext(t *testing.T) {
	kit := testkit.NewTestKit()
	service := NewAnalysisService(nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := service.Run(ctx, AnalysisRequest{Responses: kit.GenerateResponses(10)})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, context.Canceled)
}
