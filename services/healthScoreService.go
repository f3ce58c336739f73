package services

import (
	"careconnect/models"
	"careconnect/repositories"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
)

// QuestionOption is one selectable answer with its fixed score.
type QuestionOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Score int    `json:"score"`
}

// Question is one questionnaire entry. Category groups questions for the
// per-category sub-scores.
type Question struct {
	ID       string           `json:"id"`
	Category string           `json:"category"`
	Text     string           `json:"question"`
	Options  []QuestionOption `json:"options"`
}

// QuestionTable is the static scoring table, loaded from configuration at
// startup so scores can change without redeploying logic.
type QuestionTable struct {
	Questions []Question `json:"questions"`
}

// LoadQuestionTable reads and validates the questionnaire definition.
func LoadQuestionTable(path string) (*QuestionTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read question table: %w", err)
	}
	var table QuestionTable
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse question table: %w", err)
	}
	if len(table.Questions) == 0 {
		return nil, fmt.Errorf("question table is empty")
	}
	seen := make(map[string]bool, len(table.Questions))
	for _, q := range table.Questions {
		if q.ID == "" || q.Category == "" || len(q.Options) == 0 {
			return nil, fmt.Errorf("question %q is malformed", q.ID)
		}
		if seen[q.ID] {
			return nil, fmt.Errorf("duplicate question id %q", q.ID)
		}
		seen[q.ID] = true
	}
	return &table, nil
}

// ScoreResult carries the raw weighted sums plus the display composite.
type ScoreResult struct {
	Total      int            `json:"total"`
	Overall    int            `json:"overall"`
	Categories map[string]int `json:"categories"`
}

// Score evaluates a complete response set against the table. It is a pure
// function of the table: the same responses always produce the same result.
func (t *QuestionTable) Score(responses map[string]string) (*ScoreResult, error) {
	var missing []string
	for _, q := range t.Questions {
		if responses[q.ID] == "" {
			missing = append(missing, q.ID)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("%w: %s", ErrIncompleteAnswers, strings.Join(missing, ", "))
	}

	result := &ScoreResult{Categories: make(map[string]int)}
	for _, q := range t.Questions {
		selected := responses[q.ID]
		score, ok := optionScore(q, selected)
		if !ok {
			return nil, fmt.Errorf("%w: question %s option %q", ErrUnknownOption, q.ID, selected)
		}
		result.Total += score
		result.Categories[q.Category] += score
	}
	result.Overall = clampScore(result.Total)
	return result, nil
}

func optionScore(q Question, value string) (int, bool) {
	for _, opt := range q.Options {
		if opt.Value == value {
			return opt.Score, true
		}
	}
	return 0, false
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// blendScores is the composite of the questionnaire score and an AI-derived
// score: the rounded arithmetic mean when both exist, otherwise the
// questionnaire score alone.
func blendScores(questionnaire int, ai *int) int {
	if ai == nil {
		return questionnaire
	}
	return int(math.Round((float64(questionnaire) + float64(*ai)) / 2))
}

type HealthScoreService struct {
	table       *QuestionTable
	assessments repositories.AssessmentRepository
}

func NewHealthScoreService(table *QuestionTable, assessments repositories.AssessmentRepository) *HealthScoreService {
	return &HealthScoreService{table: table, assessments: assessments}
}

// Submit scores a questionnaire and overwrites the patient's assessment.
// An AI score from a previous analysis survives the retake and is blended
// with the fresh questionnaire score.
func (s *HealthScoreService) Submit(ctx context.Context, patientID string, responses map[string]string) (*models.HealthAssessment, error) {
	if patientID == "" {
		return nil, ErrNotAuthenticated
	}

	result, err := s.table.Score(responses)
	if err != nil {
		return nil, err
	}

	var aiScore *int
	existing, err := s.assessments.GetByPatientID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		aiScore = existing.AIScore
	}

	assessment := &models.HealthAssessment{
		PatientID:          patientID,
		Responses:          models.ResponseMap(responses),
		Categories:         models.ScoreMap(result.Categories),
		QuestionnaireScore: result.Overall,
		AIScore:            aiScore,
		CurrentScore:       blendScores(result.Overall, aiScore),
	}
	if err := s.assessments.Upsert(ctx, assessment); err != nil {
		return nil, err
	}
	return assessment, nil
}

// Get returns the patient's latest assessment.
func (s *HealthScoreService) Get(ctx context.Context, patientID string) (*models.HealthAssessment, error) {
	if patientID == "" {
		return nil, ErrNotAuthenticated
	}
	assessment, err := s.assessments.GetByPatientID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if assessment == nil {
		return nil, ErrNotFound
	}
	return assessment, nil
}

// SubmitAIScore records an externally computed AI score and re-blends the
// composite. A questionnaire must have been taken first.
func (s *HealthScoreService) SubmitAIScore(ctx context.Context, patientID string, score int) (*models.HealthAssessment, error) {
	if patientID == "" {
		return nil, ErrNotAuthenticated
	}

	assessment, err := s.assessments.GetByPatientID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if assessment == nil {
		return nil, ErrNotFound
	}

	clamped := clampScore(score)
	assessment.AIScore = &clamped
	assessment.CurrentScore = blendScores(assessment.QuestionnaireScore, assessment.AIScore)
	if err := s.assessments.Upsert(ctx, assessment); err != nil {
		return nil, err
	}
	return assessment, nil
}
