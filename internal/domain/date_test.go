package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Date
		wantErr bool
	}{
		{name: "plain date", input: "2024-03-10", want: NewDate(2024, time.March, 10)},
		{name: "padded", input: "  2024-01-05 ", want: NewDate(2024, time.January, 5)},
		{name: "rfc3339", input: "2023-12-01T10:20:30Z", want: NewDate(2023, time.December, 1)},
		{name: "rfc3339 with offset", input: "2023-12-01T23:30:00-02:00", want: NewDate(2023, time.December, 1)},
		{name: "offset keeps the local day", input: "2024-03-10T23:30:00-05:00", want: NewDate(2024, time.March, 10)},
		{name: "offset ahead of utc", input: "2024-04-01T00:30:00+02:00", want: NewDate(2024, time.April, 1)},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "yesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDate(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) error = %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDateAccessors(t *testing.T) {
	d := MustParseDate("2024-03-10")

	if d.Year() != 2024 {
		t.Errorf("Year() = %d, want 2024", d.Year())
	}
	if d.MonthIndex() != 2 {
		t.Errorf("MonthIndex() = %d, want 2", d.MonthIndex())
	}
	if !d.InMonth(2024, 2) {
		t.Error("InMonth(2024, 2) = false, want true")
	}
	if d.InMonth(2023, 2) {
		t.Error("InMonth(2023, 2) = true, want false")
	}
	if d.Long() != "March 10, 2024" {
		t.Errorf("Long() = %q", d.Long())
	}
	if (Date{}).InMonth(1, 0) {
		t.Error("zero date should not be in any month")
	}
}

func TestDateJSON(t *testing.T) {
	c := Clipping{ID: 1, Title: "X", Date: MustParseDate("2024-05-01")}

	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded["date"] != "2024-05-01" {
		t.Errorf("date encoded as %v, want 2024-05-01", decoded["date"])
	}

	var bad Clipping
	if err := json.Unmarshal([]byte(`{"date":"not a date"}`), &bad); err == nil {
		t.Error("Unmarshal() should reject an unparseable date")
	}
	if err := json.Unmarshal([]byte(`{"date":12}`), &bad); err == nil {
		t.Error("Unmarshal() should reject a numeric date")
	}
}
