package wizard

import "errors"

var (
	// ErrBusy は生成処理の実行中に別の変更系操作が要求されたことを示します。
	ErrBusy = errors.New("a generation operation is in flight")

	// ErrStepLocked は到達済み最遠ステップより先への移動要求を示します。
	ErrStepLocked = errors.New("step has not been reached yet")

	// ErrNoTopic はトピック未選択のまま台本生成が要求されたことを示します。
	ErrNoTopic = errors.New("no topic selected")

	// ErrNoScript は台本が存在しない状態でのアセット生成・確定要求を示します。
	ErrNoScript = errors.New("no script generated yet")

	// ErrUnknownTopic は未知のトピックIDの選択要求を示します。
	ErrUnknownTopic = errors.New("unknown topic id")

	// ErrInvalidConfig は生成プロファイルの検証失敗を示します。
	ErrInvalidConfig = errors.New("invalid generation config")
)
