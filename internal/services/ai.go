package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/smartworkplace/assistant-api/internal/models"
)

// AIService wraps the OpenAI client. It is injected into the services that
// need it; nothing in the process holds it as a package-level singleton.
type AIService struct {
	client *openai.Client
}

// NewAIService creates a new AIService
func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// InsightStats summarizes a user's task history for the insights prompt.
type InsightStats struct {
	TotalTasks        int
	CompletedTasks    int
	OverdueTasks      int
	AvgEstimatedHours float64
}

// ChatAdvice answers a productivity question grounded in the user's recent tasks.
func (s *AIService) ChatAdvice(ctx context.Context, query, extraContext string, recentTasks []models.Task) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("OpenAI client not initialized")
	}

	taskContext, err := json.MarshalIndent(taskPromptViews(recentTasks), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode task context: %w", err)
	}

	var b strings.Builder
	b.WriteString("You are a Smart Workplace Assistant helping a user with productivity and task management.\n\n")
	b.WriteString("User's recent tasks:\n")
	b.Write(taskContext)
	b.WriteString("\n\n")
	if extraContext != "" {
		fmt.Fprintf(&b, "Additional context: %s\n\n", extraContext)
	}
	fmt.Fprintf(&b, "User query: %s\n\n", query)
	b.WriteString("Provide helpful, actionable advice focused on productivity, task management, and workplace efficiency.\n")
	b.WriteString("Keep responses concise and practical.")

	return s.complete(ctx, b.String())
}

// Insights asks for 3-5 actionable insights as a JSON array of strings.
func (s *AIService) Insights(ctx context.Context, stats InsightStats) ([]string, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	completionRate := 0.0
	if stats.TotalTasks > 0 {
		completionRate = float64(stats.CompletedTasks) / float64(stats.TotalTasks) * 100
	}

	prompt := fmt.Sprintf(`Analyze this user's productivity data and provide 3-5 actionable insights:

Statistics:
- Total tasks: %d
- Completed tasks: %d
- Completion rate: %.1f%%
- Overdue tasks: %d
- Average estimated hours per task: %.1f

Provide specific, actionable insights to improve productivity. Format as a JSON array of strings.`,
		stats.TotalTasks,
		stats.CompletedTasks,
		completionRate,
		stats.OverdueTasks,
		stats.AvgEstimatedHours,
	)

	content, err := s.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var insights []string
	if err := json.Unmarshal([]byte(content), &insights); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	return insights, nil
}

func (s *AIService) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	return resp.Choices[0].Message.Content, nil
}

type taskPromptView struct {
	Title    string     `json:"title"`
	Status   string     `json:"status"`
	Priority string     `json:"priority"`
	DueDate  *time.Time `json:"due_date"`
}

func taskPromptViews(tasks []models.Task) []taskPromptView {
	views := make([]taskPromptView, len(tasks))
	for i, task := range tasks {
		views[i] = taskPromptView{
			Title:    task.Title,
			Status:   string(task.Status),
			Priority: string(task.Priority),
			DueDate:  task.DueDate,
		}
	}
	return views
}
