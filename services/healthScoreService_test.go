package services

import (
	"careconnect/models"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAssessmentRepo struct {
	byPatient map[string]*models.HealthAssessment
}

func newFakeAssessmentRepo() *fakeAssessmentRepo {
	return &fakeAssessmentRepo{byPatient: make(map[string]*models.HealthAssessment)}
}

func (f *fakeAssessmentRepo) Upsert(ctx context.Context, assessment *models.HealthAssessment) error {
	copied := *assessment
	f.byPatient[assessment.PatientID] = &copied
	return nil
}

func (f *fakeAssessmentRepo) GetByPatientID(ctx context.Context, patientID string) (*models.HealthAssessment, error) {
	return f.byPatient[patientID], nil
}

func loadTestTable(t *testing.T) *QuestionTable {
	t.Helper()
	table, err := LoadQuestionTable("../configs/health_questions.json")
	require.NoError(t, err)
	return table
}

// pickAll builds a complete response set using pick to choose each answer.
func pickAll(table *QuestionTable, pick func(q Question) string) map[string]string {
	responses := make(map[string]string, len(table.Questions))
	for _, q := range table.Questions {
		responses[q.ID] = pick(q)
	}
	return responses
}

func bestOption(q Question) string {
	best := q.Options[0]
	for _, opt := range q.Options[1:] {
		if opt.Score > best.Score {
			best = opt
		}
	}
	return best.Value
}

func worstOption(q Question) string {
	worst := q.Options[0]
	for _, opt := range q.Options[1:] {
		if opt.Score < worst.Score {
			worst = opt
		}
	}
	return worst.Value
}

func TestScoreIsDeterministic(t *testing.T) {
	table := loadTestTable(t)
	responses := pickAll(table, func(q Question) string { return q.Options[0].Value })

	first, err := table.Score(responses)
	require.NoError(t, err)
	second, err := table.Score(responses)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestScoreExtremes(t *testing.T) {
	table := loadTestTable(t)

	best, err := table.Score(pickAll(table, bestOption))
	require.NoError(t, err)
	assert.Equal(t, 250, best.Total)
	assert.Equal(t, 100, best.Overall, "overall is clamped to the display range")

	worst, err := table.Score(pickAll(table, worstOption))
	require.NoError(t, err)
	assert.Equal(t, -105, worst.Total)
	assert.Equal(t, 0, worst.Overall)
}

func TestScoreCategorySums(t *testing.T) {
	table := loadTestTable(t)

	result, err := table.Score(pickAll(table, bestOption))
	require.NoError(t, err)

	// category sums are raw and add up to the total
	var sum int
	for _, v := range result.Categories {
		sum += v
	}
	assert.Equal(t, result.Total, sum)
	assert.Equal(t, 35, result.Categories["exercise"])
	assert.Equal(t, 25+25, result.Categories["diet"])
	assert.Equal(t, 25+30+25, result.Categories["mental_health"])
}

func TestScoreIncompleteAnswers(t *testing.T) {
	table := loadTestTable(t)
	responses := pickAll(table, bestOption)
	delete(responses, "sleep_hours")
	delete(responses, "diet_quality")

	_, err := table.Score(responses)
	assert.ErrorIs(t, err, ErrIncompleteAnswers)
	// missing ids are listed for the client
	assert.Contains(t, err.Error(), "diet_quality, sleep_hours")
}

func TestScoreUnknownOption(t *testing.T) {
	table := loadTestTable(t)
	responses := pickAll(table, bestOption)
	responses["exercise_frequency"] = "sometimes"

	_, err := table.Score(responses)
	assert.ErrorIs(t, err, ErrUnknownOption)
}

func TestSubmitStoresLatestAssessment(t *testing.T) {
	table := loadTestTable(t)
	repo := newFakeAssessmentRepo()
	svc := NewHealthScoreService(table, repo)

	first, err := svc.Submit(context.Background(), "pat-1", pickAll(table, worstOption))
	require.NoError(t, err)
	assert.Equal(t, 0, first.QuestionnaireScore)
	assert.Equal(t, 0, first.CurrentScore)

	// a retake replaces the stored assessment wholesale
	second, err := svc.Submit(context.Background(), "pat-1", pickAll(table, bestOption))
	require.NoError(t, err)
	assert.Equal(t, 100, second.QuestionnaireScore)
	assert.Equal(t, 100, repo.byPatient["pat-1"].QuestionnaireScore)
}

func TestSubmitAIScoreBlendsMean(t *testing.T) {
	table := loadTestTable(t)
	repo := newFakeAssessmentRepo()
	svc := NewHealthScoreService(table, repo)

	_, err := svc.Submit(context.Background(), "pat-1", pickAll(table, bestOption))
	require.NoError(t, err)

	updated, err := svc.SubmitAIScore(context.Background(), "pat-1", 60)
	require.NoError(t, err)
	assert.Equal(t, 80, updated.CurrentScore) // mean of 100 and 60

	// out-of-range AI scores are clamped before blending
	updated, err = svc.SubmitAIScore(context.Background(), "pat-1", 140)
	require.NoError(t, err)
	assert.Equal(t, 100, *updated.AIScore)
	assert.Equal(t, 100, updated.CurrentScore)
}

func TestSubmitAIScoreRequiresAssessment(t *testing.T) {
	svc := NewHealthScoreService(loadTestTable(t), newFakeAssessmentRepo())

	_, err := svc.SubmitAIScore(context.Background(), "pat-1", 60)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRetakePreservesAIScore(t *testing.T) {
	table := loadTestTable(t)
	repo := newFakeAssessmentRepo()
	svc := NewHealthScoreService(table, repo)

	_, err := svc.Submit(context.Background(), "pat-1", pickAll(table, bestOption))
	require.NoError(t, err)
	_, err = svc.SubmitAIScore(context.Background(), "pat-1", 50)
	require.NoError(t, err)

	retake, err := svc.Submit(context.Background(), "pat-1", pickAll(table, worstOption))
	require.NoError(t, err)
	require.NotNil(t, retake.AIScore)
	assert.Equal(t, 50, *retake.AIScore)
	assert.Equal(t, 25, retake.CurrentScore) // mean of 0 and 50
}

func TestGetReturnsNotFoundWithoutAssessment(t *testing.T) {
	svc := NewHealthScoreService(loadTestTable(t), newFakeAssessmentRepo())

	_, err := svc.Get(context.Background(), "pat-1")
	assert.ErrorIs(t, err, ErrNotFound)
}
