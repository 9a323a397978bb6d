package main

import "testing"

func TestReadUIMode(t *testing.T) {
	tests := []struct {
		in      string
		want    uiMode
		wantErr bool
	}{
		{"", uiModeAuto, false},
		{"auto", uiModeAuto, false},
		{" ON ", uiModeOn, false},
		{"off", uiModeOff, false},
		{"sometimes", "", true},
	}
	for _, tt := range tests {
		got, err := readUIMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("readUIMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("readUIMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestShouldUseTUIStdout(t *testing.T) {
	if shouldUseTUI(uiModeOn, true) {
		t.Error("progress UI must stay off while archives go to stdout")
	}
	if !shouldUseTUI(uiModeOn, false) {
		t.Error("--ui on should enable the progress UI")
	}
	if shouldUseTUI(uiModeOff, false) {
		t.Error("--ui off should disable the progress UI")
	}
}

func TestReadColorMode(t *testing.T) {
	tests := []struct {
		in      string
		tty     bool
		want    bool
		wantErr bool
	}{
		{"auto", true, true, false},
		{"auto", false, false, false},
		{"on", false, true, false},
		{"off", true, false, false},
		{"rainbow", true, false, true},
	}
	for _, tt := range tests {
		got, err := readColorMode(tt.in, tt.tty)
		if (err != nil) != tt.wantErr {
			t.Errorf("readColorMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("readColorMode(%q, %v) = %v, want %v", tt.in, tt.tty, got, tt.want)
		}
	}
}
