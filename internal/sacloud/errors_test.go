package sacloud

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")

	tests := []struct {
		name           string
		err            *Error
		wantMessage    string
		wantDiagnostic string
	}{
		{
			name:        "validation",
			err:         NewValidationError("サーバーIDは必須です。"),
			wantMessage: "サーバーIDは必須です。",
		},
		{
			name:           "transport",
			err:            &Error{Kind: KindTransport, Cause: cause},
			wantMessage:    "さくらのクラウドAPIへのリクエストに失敗しました: dial tcp: connection refused",
			wantDiagnostic: "http Request Error:dial tcp: connection refused",
		},
		{
			name:           "status",
			err:            &Error{Kind: KindStatus, StatusCode: 403, Body: "forbidden", Method: "GET", URL: "https://x/"},
			wantMessage:    "さくらのクラウドAPIからエラーが返されました: 403 - forbidden",
			wantDiagnostic: "HTTP Status Error:403 for GET https://x/: forbidden",
		},
		{
			name:           "unexpected",
			err:            &Error{Kind: KindUnexpected, Cause: ErrInvalidJSON},
			wantMessage:    "API リクエスト中に予期しないエラーが発生しました: response body is not valid JSON",
			wantDiagnostic: "Unexpected error:response body is not valid JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMessage, tt.err.UserFacingError())
			assert.Equal(t, tt.wantMessage, tt.err.Error())
			assert.Equal(t, tt.wantDiagnostic, tt.err.Diagnostic())
		})
	}
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("context: %w", &Error{Kind: KindStatus})
	assert.Equal(t, KindStatus, KindOf(wrapped))
	assert.Equal(t, KindUnexpected, KindOf(errors.New("plain")))
	assert.True(t, IsValidation(fmt.Errorf("x: %w", NewValidationError("bad"))))
	assert.False(t, IsValidation(errors.New("plain")))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "validation", KindValidation.String())
	assert.Equal(t, "transport", KindTransport.String())
	assert.Equal(t, "status", KindStatus.String())
	assert.Equal(t, "unexpected", KindUnexpected.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
