package wizard

import (
	"encoding/json"
	"fmt"
)

// Step はウィザードの段階です。api-key-pending を先頭に厳密な順序を持ち、
// 到達済み最遠ステップ（furthest reached）の判定に整数順序をそのまま使います。
type Step int

const (
	StepAPIKeyPending Step = iota
	StepDiscovery
	StepConfiguration
	StepScripting
	StepAssets
)

var stepNames = map[Step]string{
	StepAPIKeyPending: "api-key-pending",
	StepDiscovery:     "discovery",
	StepConfiguration: "configuration",
	StepScripting:     "scripting",
	StepAssets:        "assets",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// ParseStep は表示名からステップを復元します。
func ParseStep(name string) (Step, error) {
	for step, n := range stepNames {
		if n == name {
			return step, nil
		}
	}
	return 0, fmt.Errorf("unknown wizard step: %q", name)
}

func (s Step) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Step) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	step, err := ParseStep(name)
	if err != nil {
		return err
	}
	*s = step
	return nil
}
