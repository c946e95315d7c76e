package adapters

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/slack-go/slack"

	"ap-script-studio/internal/domain"
)

// SlackNotifier は完成・失敗をチャットへ通知する境界です。
type SlackNotifier interface {
	NotifyCompletion(ctx context.Context, req domain.NotificationRequest) error
	NotifyError(ctx context.Context, errDetail error, req domain.NotificationRequest) error
}

// SlackAdapter は Incoming Webhook 経由の具象アダプターです。
// webhookURL が空の場合、通知はすべてスキップされます。
type SlackAdapter struct {
	webhookURL string
}

func NewSlackAdapter(webhookURL string) *SlackAdapter {
	return &SlackAdapter{webhookURL: webhookURL}
}

// NotifyCompletion は生成完了時の通知を送信します。
func (a *SlackAdapter) NotifyCompletion(ctx context.Context, req domain.NotificationRequest) error {
	if a.webhookURL == "" {
		slog.Info("Webhook未設定のため完了通知をスキップします", "title", req.TargetTitle)
		return nil
	}

	// 種別に応じた絵文字の出し分けをすると可愛いのだ！
	icon := "📝"
	switch req.OutputCategory {
	case "cover":
		icon = "🎨"
	case "audio":
		icon = "🔊"
	case "slides":
		icon = "📊"
	case "document":
		icon = "📄"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s *生成が完了しました！*\n", icon))
	sb.WriteString(fmt.Sprintf("*タイトル:* `%s`\n", req.TargetTitle))
	sb.WriteString(fmt.Sprintf("*トピック:* %s\n", req.SourceTopic))
	sb.WriteString(fmt.Sprintf("*種別:* `%s`\n", req.OutputCategory))
	sb.WriteString(fmt.Sprintf("*実行モード:* `%s`\n", req.ExecutionMode))

	if err := slack.PostWebhookContext(ctx, a.webhookURL, &slack.WebhookMessage{Text: sb.String()}); err != nil {
		return fmt.Errorf("Slackへの投稿に失敗しました: %w", err)
	}

	slog.Info("Slack に完了通知を送信しました。", "title", req.TargetTitle, "category", req.OutputCategory)
	return nil
}

// NotifyError はエラー詳細と実行メタデータを含む通知を送信します。
func (a *SlackAdapter) NotifyError(ctx context.Context, errDetail error, req domain.NotificationRequest) error {
	if a.webhookURL == "" {
		slog.Info("Webhook未設定のためエラー通知をスキップします", "error", errDetail)
		return nil
	}

	var sb strings.Builder
	sb.WriteString("❌ *処理中にエラーが発生しました*\n")
	sb.WriteString(fmt.Sprintf("*トピック:* `%s`\n", req.SourceTopic))
	sb.WriteString(fmt.Sprintf("*実行モード:* `%s`\n\n", req.ExecutionMode))

	// エラー詳細をコードブロックで囲むことで可読性を向上させます。
	sb.WriteString("*エラー内容:*\n")
	sb.WriteString(fmt.Sprintf("```\n%v\n```\n", errDetail))

	if req.OutputCategory != "" && req.OutputCategory != domain.CategoryNotAvailable {
		sb.WriteString(fmt.Sprintf("\n📍 *種別:* `%s`", req.OutputCategory))
	}

	if err := slack.PostWebhookContext(ctx, a.webhookURL, &slack.WebhookMessage{Text: sb.String()}); err != nil {
		return fmt.Errorf("Slackへのエラー通知に失敗しました: %w", err)
	}

	slog.Info("Slack にエラー通知を送信しました。", "error", errDetail)
	return nil
}
