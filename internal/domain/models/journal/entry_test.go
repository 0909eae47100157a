package journal

import (
	"testing"
	"time"
)

func TestParseDateKey(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    DateKey
		wantErr bool
	}{
		{name: "iso date", input: "2024-03-01", want: "2024-03-01"},
		{name: "surrounding spaces", input: "  2024-03-01 ", want: "2024-03-01"},
		{name: "rfc3339 keeps local calendar date", input: "2024-03-01T23:30:00-05:00", want: "2024-03-01"},
		{name: "empty", input: "", wantErr: true},
		{name: "not a date", input: "yesterday", wantErr: true},
		{name: "impossible date", input: "2024-02-30", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDateKey(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDateKey(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseDateKey(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDateKey_DisplayDate(t *testing.T) {
	tests := []struct {
		key  DateKey
		want string
	}{
		{"2024-03-01", "Friday, March 1, 2024"},
		{"2023-12-25", "Monday, December 25, 2023"},
		{"garbage", "garbage"},
	}
	for _, tt := range tests {
		if got := tt.key.DisplayDate(); got != tt.want {
			t.Errorf("DateKey(%q).DisplayDate() = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestKeyFor(t *testing.T) {
	ts := time.Date(2024, time.March, 1, 8, 0, 0, 0, time.UTC)
	if got := KeyFor(ts); got != "2024-03-01" {
		t.Errorf("KeyFor() = %q", got)
	}
}

func TestFileNameFromPath(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"file:///data/user/0/cache/ImagePicker/3F2A.jpeg", "3F2A.jpeg"},
		{"https://firebasestorage.googleapis.com/v0/b/app/o/images%2Fcat.jpg?alt=media&token=x", "cat.jpg"},
		{"http://localhost:8080/files/images/dog.png", "dog.png"},
		{"/tmp/picked/sunset.jpg", "sunset.jpg"},
		{"sunset.jpg", "sunset.jpg"},
		{"photos/beach.jpg?v=2", "beach.jpg"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := FileNameFromPath(tt.input); got != tt.want {
			t.Errorf("FileNameFromPath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestImagePath(t *testing.T) {
	got, err := ImagePath("file:///cache/cat.jpg")
	if err != nil {
		t.Fatalf("ImagePath() error = %v", err)
	}
	if got != "images/cat.jpg" {
		t.Errorf("ImagePath() = %q", got)
	}

	for _, bad := range []string{"", "..", "/tmp/.."} {
		if _, err := ImagePath(bad); err == nil {
			t.Errorf("ImagePath(%q) should fail", bad)
		}
	}
}
