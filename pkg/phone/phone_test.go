package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		region  string
		want    string
		wantErr bool
	}{
		{name: "e164 passthrough", raw: "+14155552671", region: "RU", want: "+14155552671"},
		{name: "us formatted", raw: "(415) 555-2671", region: "US", want: "+14155552671"},
		{name: "ru local with eight", raw: "8 (903) 123-45-67", region: "RU", want: "+79031234567"},
		{name: "ru bare mobile", raw: "9031234567", region: "RU", want: "+79031234567"},
		{name: "letters", raw: "call me", region: "US", wantErr: true},
		{name: "too short", raw: "123", region: "US", wantErr: true},
		{name: "empty", raw: "", region: "US", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw, tt.region)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
