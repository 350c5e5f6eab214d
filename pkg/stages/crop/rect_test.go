package crop

import (
	"testing"

	"github.com/HollaG/youtube-screenshot-server/pkg/pipeline"
)

func TestComputeRect(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
		spec   *pipeline.CropSpec
		want   pipeline.Rect
	}{
		{
			name:   "nil spec selects full frame",
			width:  1920,
			height: 1080,
			spec:   nil,
			want:   pipeline.Rect{Left: 0, Top: 0, Width: 1920, Height: 1080},
		},
		{
			name:   "identity spec selects full frame",
			width:  1920,
			height: 1080,
			spec:   &pipeline.CropSpec{Left: 0, LeftOffset: 100, Bottom: 0, BottomOffset: 100},
			want:   pipeline.Rect{Left: 0, Top: 0, Width: 1920, Height: 1080},
		},
		{
			// top = round(30.6/100 * 1080) = 330, height = 1080 - 330 = 750
			name:   "fractional bottom offset",
			width:  1920,
			height: 1080,
			spec:   &pipeline.CropSpec{Left: 0, LeftOffset: 100, Bottom: 0, BottomOffset: 69.4},
			want:   pipeline.Rect{Left: 0, Top: 330, Width: 1920, Height: 750},
		},
		{
			name:   "horizontal insets",
			width:  1920,
			height: 1080,
			spec:   &pipeline.CropSpec{Left: 25, LeftOffset: 75, Bottom: 0, BottomOffset: 100},
			want:   pipeline.Rect{Left: 480, Top: 0, Width: 960, Height: 1080},
		},
		{
			name:   "vertical band",
			width:  1000,
			height: 1000,
			spec:   &pipeline.CropSpec{Left: 0, LeftOffset: 100, Bottom: 20, BottomOffset: 90},
			want:   pipeline.Rect{Left: 0, Top: 100, Width: 1000, Height: 700},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeRect(tt.width, tt.height, tt.spec)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestComputeRect_Containment(t *testing.T) {
	// Any valid spec must yield a rectangle inside the frame.
	specs := []pipeline.CropSpec{
		{Left: 0, LeftOffset: 100, Bottom: 0, BottomOffset: 100},
		{Left: 10, LeftOffset: 90, Bottom: 10, BottomOffset: 90},
		{Left: 33.3, LeftOffset: 66.7, Bottom: 12.5, BottomOffset: 87.5},
		{Left: 0, LeftOffset: 50, Bottom: 50, BottomOffset: 100},
	}
	dims := []struct{ w, h int }{{1920, 1080}, {1280, 720}, {640, 360}, {853, 480}}

	for _, spec := range specs {
		for _, d := range dims {
			rect, err := ComputeRect(d.w, d.h, &spec)
			if err != nil {
				t.Fatalf("spec %+v on %dx%d: %v", spec, d.w, d.h, err)
			}
			if rect.Left < 0 || rect.Top < 0 {
				t.Errorf("spec %+v on %dx%d: negative origin %+v", spec, d.w, d.h, rect)
			}
			if rect.Left+rect.Width > d.w || rect.Top+rect.Height > d.h {
				t.Errorf("spec %+v on %dx%d: rectangle %+v exceeds frame", spec, d.w, d.h, rect)
			}
		}
	}
}

func TestComputeRect_Degenerate(t *testing.T) {
	tests := []struct {
		name string
		spec pipeline.CropSpec
	}{
		{
			name: "zero height band",
			spec: pipeline.CropSpec{Left: 0, LeftOffset: 100, Bottom: 50, BottomOffset: 50},
		},
		{
			name: "zero width band",
			spec: pipeline.CropSpec{Left: 50, LeftOffset: 50, Bottom: 0, BottomOffset: 100},
		},
		{
			name: "inverted vertical insets",
			spec: pipeline.CropSpec{Left: 0, LeftOffset: 100, Bottom: 80, BottomOffset: 40},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ComputeRect(1920, 1080, &tt.spec); err == nil {
				t.Errorf("expected error for spec %+v", tt.spec)
			}
		})
	}
}

func TestComputeRect_InvalidFrame(t *testing.T) {
	if _, err := ComputeRect(0, 1080, nil); err == nil {
		t.Error("expected error for zero width frame")
	}
	if _, err := ComputeRect(1920, -1, nil); err == nil {
		t.Error("expected error for negative height frame")
	}
}
