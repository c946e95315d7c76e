package domain

const CategoryNotAvailable = "N/A"

// NotificationRequest は Slack 等の通知コンポーネントで共有されるデータ構造です。
// 完成した生成物のメタデータを通知先に伝えるために使用します。
type NotificationRequest struct {
	// SourceTopic は生成の元になったトピックのタイトルです。
	SourceTopic string `json:"source_topic"`

	// OutputCategory は生成物の種別です。(例: "script", "cover", "audio")
	OutputCategory string `json:"output_category"`

	// TargetTitle は生成された台本のタイトルです。
	TargetTitle string `json:"target_title"`

	// ExecutionMode は実行された形式とモデル階層です。(例: "article / fast")
	ExecutionMode string `json:"execution_mode"`
}
