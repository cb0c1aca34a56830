package watchdog

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestRenderFields(t *testing.T) {
	cases := []time.Time{
		time.Date(2030, time.January, 1, 8, 0, 0, 0, time.Local),
		time.Date(2024, time.December, 31, 23, 59, 0, 0, time.Local),
		time.Date(2027, time.June, 15, 0, 5, 0, 0, time.Local),
	}
	for _, tc := range cases {
		js, err := Render(tc)
		if err != nil {
			t.Fatalf("Render(%v): %v", tc, err)
		}
		want := fmt.Sprintf("new Date(%d, %d, %d, %d, %d)",
			tc.Year(), int(tc.Month())-1, tc.Day(), tc.Hour(), tc.Minute())
		if !strings.Contains(js, want) {
			t.Errorf("Render(%v): missing %q", tc, want)
		}
		if strings.Contains(js, "{{") {
			t.Errorf("Render(%v): unrendered placeholder left", tc)
		}
	}
}

func TestRenderPollInterval(t *testing.T) {
	js, err := Render(time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(js, `app.setInterval("CheckExpireNonVerbose()", 1000)`) {
		t.Errorf("poll interval not rendered:\n%s", js)
	}
}

func TestRenderUsesLocalFields(t *testing.T) {
	utc := time.Date(2031, time.March, 3, 12, 30, 0, 0, time.UTC)
	lt := utc.Local()
	f := Fields(utc)
	if f["hours"] != lt.Hour() || f["day"] != lt.Day() || f["monthIndex"] != int(lt.Month())-1 {
		t.Errorf("Fields(%v) = %v, want local fields of %v", utc, f, lt)
	}
}

func TestParseEndTimeJanuaryIsZero(t *testing.T) {
	et, err := ParseEndTime("2030-01-01 08:00", time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if et.Year() != 2030 || et.Month() != time.January || et.Day() != 1 || et.Hour() != 8 || et.Minute() != 0 {
		t.Fatalf("ParseEndTime = %v", et)
	}
	if got := Fields(et)["monthIndex"]; got != 0 {
		t.Errorf("monthIndex = %v, want 0", got)
	}
}

func TestParseEndTime(t *testing.T) {
	now := time.Date(2026, time.October, 19, 10, 0, 0, 0, time.Local)
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "2030-01-01 08:00", want: time.Date(2030, 1, 1, 8, 0, 0, 0, time.Local)},
		{in: "  2030-06-15 17:45  ", want: time.Date(2030, 6, 15, 17, 45, 0, 0, time.Local)},
		{in: "２０３０-０１-０１ ０８:００", want: time.Date(2030, 1, 1, 8, 0, 0, 0, time.Local)},
		{in: "Jan 2 2030 17:00", want: time.Date(2030, 1, 2, 17, 0, 0, 0, time.Local)},
		{in: "not-a-date", wantErr: true},
		{in: "2 January 2030 17:00", wantErr: true},
		{in: "2030-02-30 08:00", wantErr: true},
		{in: "2030-13-45", wantErr: true},
		{in: "xyz tomorrow blah", wantErr: true},
		{in: "", wantErr: true},
		{in: "   ", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseEndTime(tt.in, now)
		if tt.wantErr {
			if !errors.Is(err, ErrEndTime) {
				t.Errorf("ParseEndTime(%q) err = %v, want ErrEndTime", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseEndTime(%q): %v", tt.in, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseEndTime(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseEndTimeRelative(t *testing.T) {
	now := time.Date(2026, time.October, 19, 10, 0, 0, 0, time.Local)
	got, err := ParseEndTime("tomorrow", now)
	if err != nil {
		t.Fatal(err)
	}
	if got.Year() != 2026 || got.Month() != time.October || got.Day() != 20 {
		t.Errorf("ParseEndTime(tomorrow) = %v", got)
	}
}

func TestParseEndTimeClockSuffix(t *testing.T) {
	now := time.Date(2026, time.October, 19, 10, 0, 0, 0, time.Local)
	got, err := ParseEndTime("tomorrow 5pm", now)
	if err != nil {
		t.Fatal(err)
	}
	if got.Day() != 20 || got.Hour() != 17 {
		t.Errorf("ParseEndTime(tomorrow 5pm) = %v, want Oct 20 at 17h", got)
	}

	// Either understood exactly or rejected, never a misread instant.
	got, err = ParseEndTime("Jan 2 2030 5pm", now)
	if err == nil {
		if want := time.Date(2030, time.January, 2, 17, 0, 0, 0, time.Local); !got.Equal(want) {
			t.Errorf("ParseEndTime(Jan 2 2030 5pm) = %v, want %v", got, want)
		}
	} else if !errors.Is(err, ErrEndTime) {
		t.Errorf("ParseEndTime(Jan 2 2030 5pm) err = %v, want ErrEndTime", err)
	}
}
