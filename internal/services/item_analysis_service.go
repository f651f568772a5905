package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/coursework-service/internal/buckets"
	"github.com/SAP-F-2025/coursework-service/internal/cache"
	"github.com/SAP-F-2025/coursework-service/internal/events"
	"github.com/SAP-F-2025/coursework-service/internal/itemanalysis"
	"github.com/SAP-F-2025/coursework-service/internal/models"
	"github.com/SAP-F-2025/coursework-service/internal/repositories"
	"github.com/SAP-F-2025/coursework-service/internal/validator"
)

type itemAnalysisService struct {
	repo           repositories.Repository
	db             *gorm.DB
	logger         *slog.Logger
	validator      *validator.Validator
	eventPublisher events.EventPublisher
	cacheManager   *cache.CacheManager

	cacheTTL time.Duration
	now      func() time.Time
}

func NewItemAnalysisService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator, publisher events.EventPublisher, cacheManager *cache.CacheManager, cacheTTL time.Duration) ItemAnalysisService {
	if cacheTTL <= 0 {
		cacheTTL = cache.StatsCacheConfig.TTL
	}
	return &itemAnalysisService{
		repo:           repo,
		db:             db,
		logger:         logger,
		validator:      validator,
		eventPublisher: publisher,
		cacheManager:   cacheManager,
		cacheTTL:       cacheTTL,
		now:            time.Now,
	}
}

func (s *itemAnalysisService) GetReport(ctx context.Context, assessmentID uint, userID string) (*ItemAnalysisResponse, error) {
	assessment, err := s.authorize(ctx, assessmentID, userID)
	if err != nil {
		return nil, err
	}

	var resp ItemAnalysisResponse
	err = s.cacheManager.Stats.CacheOrExecute(ctx, cache.ItemAnalysisKey(assessmentID), &resp, s.cacheTTL, func() (interface{}, error) {
		return s.compute(ctx, assessment)
	})
	if err != nil {
		return nil, err
	}

	resp.LastRefreshedAt = s.lastRefreshed(ctx, assessmentID)
	return &resp, nil
}

func (s *itemAnalysisService) Refresh(ctx context.Context, assessmentID uint, userID string) (*ItemAnalysisResponse, error) {
	assessment, err := s.authorize(ctx, assessmentID, userID)
	if err != nil {
		return nil, err
	}

	resp, err := s.compute(ctx, assessment)
	if err != nil {
		return nil, err
	}

	summary, items, err := toAnalyticsRows(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to build analytics rows: %w", err)
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		return tx.Analytics().SaveItemAnalysis(ctx, nil, summary, items)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save item analysis: %w", err)
	}

	cache.InvalidateItemAnalysisCache(ctx, s.cacheManager, assessmentID)

	event := events.NewEvent(events.ItemAnalysisCompleted, events.ItemAnalysisCompletedData{
		AssessmentID: assessmentID,
		Respondents:  resp.Summary.Respondents,
		Items:        resp.Summary.Items,
		Reliability:  resp.Summary.Alpha.Ptr(),
		RequestedBy:  userID,
	})
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish item analysis event", "assessment_id", assessmentID, "error", err)
	}

	s.logger.Info("Item analysis refreshed",
		"assessment_id", assessmentID,
		"respondents", resp.Summary.Respondents,
		"items", resp.Summary.Items)

	return resp, nil
}

func (s *itemAnalysisService) ExportXLSX(ctx context.Context, assessmentID uint, userID string) ([]byte, error) {
	resp, err := s.GetReport(ctx, assessmentID, userID)
	if err != nil {
		return nil, err
	}

	data, err := renderItemAnalysisWorkbook(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return data, nil
}

// lastRefreshed reads the timestamp of the persisted analysis. Lookup
// failures are logged and reported as never refreshed.
func (s *itemAnalysisService) lastRefreshed(ctx context.Context, assessmentID uint) *time.Time {
	stored, err := s.repo.Analytics().GetAssessmentAnalytics(ctx, nil, assessmentID)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			s.logger.Warn("Failed to load stored item analysis", "assessment_id", assessmentID, "error", err)
		}
		return nil
	}
	refreshed := stored.LastCalculatedAt
	return &refreshed
}

// authorize loads the assessment and requires grade management rights on
// its course
func (s *itemAnalysisService) authorize(ctx context.Context, assessmentID uint, userID string) (*models.Assessment, error) {
	if err := s.validator.Validate(&ItemAnalysisRequest{AssessmentID: assessmentID}); err != nil {
		return nil, validationError(err)
	}
	if userID == "" {
		return nil, ErrUnauthorized
	}

	assessment, err := s.repo.Assessment().GetByID(ctx, nil, assessmentID)
	if err != nil {
		return nil, translateRepoError(err, "get assessment")
	}

	perms, err := loadCoursePermissions(ctx, s.repo, s.logger, assessment.CourseID, userID)
	if err != nil {
		return nil, err
	}
	if !perms.GrantsRight(userID, buckets.RightManageGrades) {
		return nil, fmt.Errorf("%w: user %s cannot analyze assessment %d", ErrForbidden, userID, assessmentID)
	}

	return assessment, nil
}

func (s *itemAnalysisService) compute(ctx context.Context, assessment *models.Assessment) (*ItemAnalysisResponse, error) {
	questions, err := s.repo.Assessment().GetQuestions(ctx, nil, assessment.ID)
	if err != nil {
		return nil, translateRepoError(err, "get questions")
	}

	attempts, err := s.repo.Attempt().ListLatestCompleted(ctx, nil, assessment.ID)
	if err != nil {
		return nil, translateRepoError(err, "list attempts")
	}

	report := itemanalysis.Analyze(toRespondents(attempts), toItemMeta(questions))

	return &ItemAnalysisResponse{
		AssessmentID: assessment.ID,
		Title:        assessment.Title,
		GeneratedAt:  s.now().UTC(),
		Summary:      report.Summary,
		Items:        report.Items,
	}, nil
}

// toRespondents uses each attempt's score as the total. Answers that were
// never marked right or wrong are left out.
func toRespondents(attempts []*models.AssessmentAttempt) []itemanalysis.Respondent {
	respondents := make([]itemanalysis.Respondent, 0, len(attempts))
	for _, attempt := range attempts {
		responses := make(map[uint]itemanalysis.Response, len(attempt.Answers))
		for _, answer := range attempt.Answers {
			if answer.IsCorrect == nil {
				continue
			}
			responses[answer.QuestionID] = itemanalysis.Response{
				Correct:   *answer.IsCorrect,
				AnswerKey: answer.AnswerKey(),
			}
		}
		respondents = append(respondents, itemanalysis.Respondent{
			ID:        attempt.StudentID,
			Total:     attempt.Score,
			Responses: responses,
		})
	}
	return respondents
}

func toItemMeta(questions []*models.AssessmentQuestion) []itemanalysis.ItemMeta {
	items := make([]itemanalysis.ItemMeta, 0, len(questions))
	for _, aq := range questions {
		items = append(items, itemanalysis.ItemMeta{
			ID:      aq.QuestionID,
			Text:    aq.Question.Text,
			Answers: aq.Question.OptionKeys(),
		})
	}
	return items
}

func toAnalyticsRows(resp *ItemAnalysisResponse) (*models.AssessmentAnalytics, []*models.QuestionAnalytics, error) {
	summary := &models.AssessmentAnalytics{
		AssessmentID:      resp.AssessmentID,
		Respondents:       resp.Summary.Respondents,
		Items:             resp.Summary.Items,
		AverageScore:      resp.Summary.MeanScore,
		HighestScore:      resp.Summary.MaxScore,
		LowestScore:       resp.Summary.MinScore,
		Variance:          resp.Summary.Variance,
		StandardDeviation: resp.Summary.StandardDeviation,
		Reliability:       resp.Summary.Alpha.Ptr(),
		LastCalculatedAt:  resp.GeneratedAt,
	}

	items := make([]*models.QuestionAnalytics, 0, len(resp.Items))
	for _, item := range resp.Items {
		optionStats, err := json.Marshal(item.Answers)
		if err != nil {
			return nil, nil, err
		}
		items = append(items, &models.QuestionAnalytics{
			AssessmentID:         resp.AssessmentID,
			QuestionID:           item.ItemID,
			TotalResponses:       item.Responses,
			CorrectResponses:     item.Correct,
			DifficultyIndex:      item.DifficultyIndex,
			DiscriminationIndex:  item.DiscriminationIndex,
			PointBiserial:        item.PointBiserial.Ptr(),
			Variance:             item.Variance,
			StandardDeviation:    item.StandardDeviation,
			TopTercileCorrect:    item.Groups[itemanalysis.TercileTop].Ratio,
			MiddleTercileCorrect: item.Groups[itemanalysis.TercileMiddle].Ratio,
			BottomTercileCorrect: item.Groups[itemanalysis.TercileBottom].Ratio,
			OptionStats:          optionStats,
			LastCalculatedAt:     resp.GeneratedAt,
		})
	}

	return summary, items, nil
}
