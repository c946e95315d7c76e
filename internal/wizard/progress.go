package wizard

import "time"

// 合成プログレスの定数。実際のゲートウェイ進捗とは無関係に、
// ユーザーへのフィードバックのためだけに一定周期で進めます。
const (
	defaultTickInterval = 500 * time.Millisecond

	progressStart   = 10
	progressStep    = 3
	progressCeiling = 90
)

// progressTicker は台本生成に伴う合成プログレスの周期タスクです。
// 起動した操作がハンドルを所有し、成功・失敗どちらの経路でも必ず Stop されます。
type progressTicker struct {
	stop chan struct{}
	done chan struct{}
}

// startProgressTicker はプログレスを周期的に進めるゴルーチンを起動します。
// processing が下りているか上限に達している間は進めません。
func (m *Machine) startProgressTicker() *progressTicker {
	t := &progressTicker{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}

	go func() {
		defer close(t.done)
		ticker := time.NewTicker(m.tickInterval)
		defer ticker.Stop()

		for {
			select {
			case <-t.stop:
				return
			case <-ticker.C:
				m.mu.Lock()
				if m.state.Processing && m.state.Progress < progressCeiling {
					m.state.Progress += progressStep
					if m.state.Progress > progressCeiling {
						m.state.Progress = progressCeiling
					}
				}
				m.mu.Unlock()
			}
		}
	}()

	return t
}

// Stop はタスクを止め、ゴルーチンの終了を待ちます。
// 操作の終了後にぶら下がりタイマーが状態を書き換えないことを保証します。
func (t *progressTicker) Stop() {
	close(t.stop)
	<-t.done
}
