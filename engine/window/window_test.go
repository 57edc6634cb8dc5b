package window

import (
	"testing"

	"github.com/Carmen-Shannon/stonegate/common"
)

func TestKeyEvents(t *testing.T) {
	w := &engineWindow{}
	w.queueKey(common.KeySpace, true, false)
	w.queueKey(common.KeySpace, true, true)
	w.queueKey(common.KeySpace, false, false)

	want := []common.Event{
		common.KeyDown(common.KeySpace, false),
		common.KeyDown(common.KeySpace, true),
		common.KeyUp(common.KeySpace),
	}
	got := w.DrainEvents()
	if len(got) != len(want) {
		t.Fatalf("got %d events, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if len(w.DrainEvents()) != 0 {
		t.Fatal("DrainEvents did not empty the queue")
	}
}

func TestCursorMotion(t *testing.T) {
	tests := []struct {
		name  string
		steps func(w *engineWindow)
		want  []common.Event
	}{
		{
			name:  "first position only seeds",
			steps: func(w *engineWindow) { w.queueCursor(10, 10) },
		},
		{
			name: "relative delta with held buttons",
			steps: func(w *engineWindow) {
				w.queueCursor(10, 10)
				w.setButton(common.MouseButtonLeft, true)
				w.queueCursor(15, 7)
			},
			want: []common.Event{common.MouseMotion(5, -3, common.MouseButtonLeft)},
		},
		{
			name: "released buttons drop from the mask",
			steps: func(w *engineWindow) {
				w.queueCursor(0, 0)
				w.setButton(common.MouseButtonLeft, true)
				w.setButton(common.MouseButtonRight, true)
				w.setButton(common.MouseButtonLeft, false)
				w.queueCursor(2, 0)
			},
			want: []common.Event{common.MouseMotion(2, 0, common.MouseButtonRight)},
		},
		{
			name: "no motion no event",
			steps: func(w *engineWindow) {
				w.queueCursor(4, 4)
				w.queueCursor(4, 4)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &engineWindow{}
			tt.steps(w)
			got := w.DrainEvents()
			if len(got) != len(tt.want) {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("event %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
