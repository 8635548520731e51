// Package notify delivers shared recipes to an external webhook. Delivery is
// best-effort; the session never blocks on a family member's inbox.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/wellnoosh/engine/internal/domain/recipe"
)

// WebhookConfig configures the share webhook.
type WebhookConfig struct {
	URL        string
	Timeout    time.Duration
	RetryCount int
}

// WebhookPublisher POSTs shared recipes to a configured URL.
type WebhookPublisher struct {
	client *resty.Client
	url    string
	logger *zap.Logger
}

// NewWebhookPublisher creates the publisher.
func NewWebhookPublisher(cfg WebhookConfig, logger *zap.Logger) *WebhookPublisher {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount)
	return &WebhookPublisher{
		client: client,
		url:    cfg.URL,
		logger: logger.Named("share-webhook"),
	}
}

type sharePayload struct {
	RecipeID   string `json:"recipeId"`
	RecipeName string `json:"recipeName"`
	CookTime   string `json:"cookTime,omitempty"`
	Servings   int    `json:"servings"`
	SharedAt   string `json:"sharedAt"`
}

// PublishRecipeShare delivers the recipe to the webhook.
func (p *WebhookPublisher) PublishRecipeShare(ctx context.Context, r recipe.Recipe) error {
	payload := sharePayload{
		RecipeID:   r.ID,
		RecipeName: r.Name,
		CookTime:   r.CookTime,
		Servings:   r.Servings,
		SharedAt:   time.Now().UTC().Format(time.RFC3339),
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(p.url)
	if err != nil {
		return fmt.Errorf("share webhook: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("share webhook returned %d", resp.StatusCode())
	}

	p.logger.Debug("recipe share delivered", zap.String("recipe_id", r.ID))
	return nil
}

// NopPublisher drops every share. Used when the webhook is disabled.
type NopPublisher struct{}

// PublishRecipeShare discards the share.
func (NopPublisher) PublishRecipeShare(context.Context, recipe.Recipe) error { return nil }
