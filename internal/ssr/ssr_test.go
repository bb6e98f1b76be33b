package ssr

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestReplaceCustomElements(t *testing.T) {
	tests := []struct {
		name    string
		reader  io.Reader
		want    string
		wantErr bool
	}{
		{
			name:    "replaces primary button inside as",
			reader:  strings.NewReader(`<button as="button-primary">Dispatch</button>`),
			want:    `<button-primary class="btn-primary">Dispatch</button-primary>`,
			wantErr: false,
		},
		{
			name:    "replaces primary button element",
			reader:  strings.NewReader(`<button-primary class="test">Dispatch</button-primary>`),
			want:    `<button-primary class="test btn-primary">Dispatch</button-primary>`,
			wantErr: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := ReplaceCustomElements(&out, tt.reader); (err != nil) != tt.wantErr {
				t.Errorf("ReplaceCustomElements() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got := out.String(); got != tt.want {
				t.Errorf("ReplaceCustomElements() = %v, want %v", got, tt.want)
			}
		})
	}
}
