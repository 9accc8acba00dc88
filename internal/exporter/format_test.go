package exporter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"payrolletl/pkg/contracts/domain"
)

func TestFormatRecord(t *testing.T) {
	tests := []struct {
		name string
		rec  domain.Record
		want []string
	}{
		{
			name: "present values keep their text",
			rec:  domain.Record{domain.Present("1"), domain.Present("200.0")},
			want: []string{"1", "200.0"},
		},
		{
			name: "missing values are empty",
			rec:  domain.Record{domain.Present("label"), domain.Missing(), domain.Missing()},
			want: []string{"label", "", ""},
		},
		{
			name: "empty record",
			rec:  domain.Record{},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatRecord(tt.rec))
		})
	}
}
