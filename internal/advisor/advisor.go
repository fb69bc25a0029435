// Package advisor runs the advice-generation pipeline: read the profile,
// build a prompt, call the model endpoint, sanitize the completion, and
// append the exchange to history.
package advisor

import (
	"context"
	"fmt"

	"FinanceAdvisor/internal/models"
	"FinanceAdvisor/internal/ollama"
	"FinanceAdvisor/internal/storage"
)

const chatHistoryWindow = 10

type Advisor struct {
	client *ollama.Client
}

func New(client *ollama.Client) *Advisor {
	return &Advisor{client: client}
}

// GenerateAdvice produces a fresh advice record from the user's profile.
// On any model failure nothing is persisted.
func (a *Advisor) GenerateAdvice(ctx context.Context, userID int) (*models.AdviceRecord, error) {
	profile, err := storage.GetProfileByUserID(userID)
	if err != nil {
		return nil, err
	}

	adviceCount, err := storage.CountAdviceByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("count advice: %w", err)
	}

	prompt := BuildAdvicePrompt(&profile, adviceCount)
	completion, err := a.client.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	record := &models.AdviceRecord{
		UserID:  userID,
		Title:   AdviceTitle(&profile, adviceCount),
		Prompt:  prompt,
		Content: Sanitize(completion),
	}
	if err := storage.CreateAdvice(record); err != nil {
		return nil, fmt.Errorf("save advice: %w", err)
	}
	return record, nil
}

// Chat runs one conversation turn. The user's message is persisted before
// the model call (matching the history view even when the advisor is
// down); the advisor's reply only after a successful completion.
func (a *Advisor) Chat(ctx context.Context, userID int, message string) (*models.ChatMessage, error) {
	profile, err := storage.GetProfileByUserID(userID)
	if err != nil {
		return nil, err
	}

	userMessage := &models.ChatMessage{
		UserID:  userID,
		Role:    models.RoleUser,
		Content: message,
	}
	if err := storage.CreateChatMessage(userMessage); err != nil {
		return nil, fmt.Errorf("save user message: %w", err)
	}

	history, err := storage.ListRecentChatMessages(userID, chatHistoryWindow)
	if err != nil {
		return nil, fmt.Errorf("load chat history: %w", err)
	}

	prompt := BuildChatPrompt(&profile, history, message)
	completion, err := a.client.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	reply := &models.ChatMessage{
		UserID:  userID,
		Role:    models.RoleAdvisor,
		Content: Sanitize(completion),
	}
	if err := storage.CreateChatMessage(reply); err != nil {
		return nil, fmt.Errorf("save advisor message: %w", err)
	}
	return reply, nil
}
