package clock

import (
	"testing"
	"time"
)

var myt = time.FixedZone("MYT", 8*3600)

func TestStartOfDay(t *testing.T) {
	ts := time.Date(2025, 3, 10, 21, 45, 12, 999, myt)
	got := StartOfDay(ts)
	want := time.Date(2025, 3, 10, 0, 0, 0, 0, myt)
	if !got.Equal(want) {
		t.Errorf("StartOfDay = %v, want %v", got, want)
	}
	if got.Location() != myt {
		t.Errorf("StartOfDay changed location to %v", got.Location())
	}
}

func TestISOWeekday(t *testing.T) {
	// 2025-03-10 is a Monday, 2025-03-16 a Sunday.
	mon := time.Date(2025, 3, 10, 0, 0, 0, 0, myt)
	sun := time.Date(2025, 3, 16, 0, 0, 0, 0, myt)
	if got := ISOWeekday(mon); got != 1 {
		t.Errorf("ISOWeekday(Monday) = %d, want 1", got)
	}
	if got := ISOWeekday(sun); got != 7 {
		t.Errorf("ISOWeekday(Sunday) = %d, want 7", got)
	}
}

func TestFixedClock(t *testing.T) {
	ts := time.Date(2025, 3, 10, 9, 0, 0, 0, myt)
	c := FixedAt(ts)
	if !c.Now().Equal(ts) {
		t.Errorf("Now = %v, want %v", c.Now(), ts)
	}
	later := ts.Add(2 * time.Hour)
	c.Set(later)
	if !c.Now().Equal(later) {
		t.Errorf("Now after Set = %v, want %v", c.Now(), later)
	}
	if c.Location() != myt {
		t.Errorf("Location = %v, want MYT", c.Location())
	}
}
