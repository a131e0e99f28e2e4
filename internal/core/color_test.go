package core

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		name    string
		want    Color
		wantErr bool
	}{
		{"orange", ColorOrange, false},
		{"Bright-Yellow", ColorBrightYellow, false},
		{"bright cyan", ColorBrightCyan, false},
		{" grey ", ColorGray, false},
		{"default", ColorDefault, false},
		{"purple", ColorDefault, true},
		{"", ColorDefault, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseColor(tc.name)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tc.name, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("ParseColor(%q) = %v, expected %v", tc.name, got, tc.want)
			}
		})
	}
}

func TestColorStringRoundTrip(t *testing.T) {
	for c := ColorDefault; c < numColors; c++ {
		got, err := ParseColor(c.String())
		if err != nil || got != c {
			t.Errorf("ParseColor(%q) = %v, %v", c.String(), got, err)
		}
	}
	if s := Color(200).String(); s != "Color(200)" {
		t.Errorf("out of range String() = %q", s)
	}
}
