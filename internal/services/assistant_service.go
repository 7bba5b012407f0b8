package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/smartworkplace/assistant-api/internal/constants"
	"github.com/smartworkplace/assistant-api/internal/models"
	"github.com/smartworkplace/assistant-api/internal/repository"
)

var ErrAIServiceNotConfigured = errors.New("AI service is not configured")

// Canned insights returned when the model output cannot be used.
var fallbackInsights = []string{
	"Focus on completing pending tasks to improve your completion rate",
	"Consider breaking down large tasks into smaller, manageable chunks",
	"Set realistic time estimates based on your historical performance",
	"Prioritize high-impact tasks during your most productive hours",
}

// AssistantService orchestrates the AI advice endpoints: it gathers the user's
// task context, delegates to the AI client and records each exchange.
type AssistantService struct {
	taskRepo        repository.TaskRepository
	interactionRepo repository.AIInteractionRepository
	aiService       *AIService
}

// NewAssistantService creates a new AssistantService. aiService may be nil
// when no API key is configured.
func NewAssistantService(taskRepo repository.TaskRepository, interactionRepo repository.AIInteractionRepository, aiService *AIService) *AssistantService {
	return &AssistantService{
		taskRepo:        taskRepo,
		interactionRepo: interactionRepo,
		aiService:       aiService,
	}
}

// Chat answers a free-form productivity question with the user's recent tasks
// as context. The exchange is stored before returning.
func (s *AssistantService) Chat(ctx context.Context, userID uint64, query, extraContext string) (string, bool, error) {
	if s.aiService == nil {
		return "", false, ErrAIServiceNotConfigured
	}

	recentTasks, err := s.taskRepo.RecentByOwner(userID, constants.MaxContextTasks)
	if err != nil {
		return "", false, fmt.Errorf("failed to fetch recent tasks: %w", err)
	}

	response, err := s.aiService.ChatAdvice(ctx, query, extraContext, recentTasks)
	if err != nil {
		return "", false, fmt.Errorf("failed to generate advice: %w", err)
	}

	interaction := &models.AIInteraction{
		UserID:          userID,
		Query:           query,
		Response:        response,
		InteractionType: constants.InteractionTypeChat,
	}
	if err := s.interactionRepo.Create(interaction); err != nil {
		return "", false, fmt.Errorf("failed to store interaction: %w", err)
	}

	return response, len(recentTasks) > 0, nil
}

// Insights produces a handful of productivity observations. It degrades to
// canned fallbacks instead of failing: a missing API key, a model error and
// unparseable output all yield a usable response.
func (s *AssistantService) Insights(ctx context.Context, userID uint64) ([]string, error) {
	if s.aiService == nil {
		return []string{"AI insights require OpenAI API configuration"}, nil
	}

	tasks, err := s.taskRepo.AllByOwner(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}

	stats := InsightStats{TotalTasks: len(tasks)}
	var estimatedHours float64
	for _, task := range tasks {
		estimatedHours += task.EstimatedHours
		switch task.Status {
		case models.TaskStatusCompleted:
			stats.CompletedTasks++
		case models.TaskStatusOverdue:
			stats.OverdueTasks++
		}
	}
	if len(tasks) > 0 {
		stats.AvgEstimatedHours = estimatedHours / float64(len(tasks))
	}

	insights, err := s.aiService.Insights(ctx, stats)
	if err != nil {
		return fallbackInsights, nil
	}

	return insights, nil
}
