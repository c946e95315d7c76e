package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"

	"ap-script-studio/internal/config"
	"ap-script-studio/internal/gateway"
	"ap-script-studio/internal/wizard"
)

func TestWriteErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"missing credential", config.ErrAPIKeyMissing, http.StatusPreconditionFailed},
		{"invalidated credential", fmt.Errorf("topic discovery: %w", gateway.ErrCredentialInvalid), http.StatusUnauthorized},
		{"busy", wizard.ErrBusy, http.StatusConflict},
		{"locked step", wizard.ErrStepLocked, http.StatusConflict},
		{"no topic", wizard.ErrNoTopic, http.StatusBadRequest},
		{"no script", wizard.ErrNoScript, http.StatusBadRequest},
		{"unknown topic", wizard.ErrUnknownTopic, http.StatusBadRequest},
		{"invalid config", fmt.Errorf("%w: unknown format", wizard.ErrInvalidConfig), http.StatusBadRequest},
		{"malformed response", fmt.Errorf("%w: no sections", gateway.ErrMalformedResponse), http.StatusUnprocessableEntity},
		{"no image", gateway.ErrNoImage, http.StatusBadGateway},
		{"no audio", gateway.ErrNoAudio, http.StatusBadGateway},
		{
			// ゲートウェイが実際に返す形（操作名 + 分類 + 上流の素のエラー）
			"generic upstream failure",
			fmt.Errorf("script generation: %w: %w", gateway.ErrUpstream, genai.APIError{Code: 500, Message: "internal"}),
			http.StatusBadGateway,
		},
		{"unclassified", errors.New("something unexpected"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tt.err)

			assert.Equal(t, tt.want, rec.Code)
			assert.Contains(t, rec.Body.String(), "error")
		})
	}
}
