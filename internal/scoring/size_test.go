package scoring

import (
	"testing"

	"github.com/gyeh/fairscore/internal/model"
)

func TestSizeFor(t *testing.T) {
	i32 := func(v int32) *int32 { return &v }

	tests := []struct {
		name string
		beds *int32
		want model.SizeCategory
	}{
		{"nil bed count", nil, model.SizeSmall},
		{"zero beds", i32(0), model.SizeSmall},
		{"49 beds", i32(49), model.SizeSmall},
		{"50 beds", i32(50), model.SizeMedium},
		{"199 beds", i32(199), model.SizeMedium},
		{"200 beds", i32(200), model.SizeLarge},
		{"1200 beds", i32(1200), model.SizeLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SizeFor(tt.beds); got != tt.want {
				t.Errorf("SizeFor(%v) = %s, want %s", tt.beds, got, tt.want)
			}
		})
	}
}
