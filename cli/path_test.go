package cli

import "testing"

func TestCleanPrefix(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/usr/local/bin/calc", "calc"},
		{"/tmp/__debug_bin1234", "calc"},
		{"/opt/.calc", "calc"},
		{"/bin/mycalc", "mycalc"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := cleanPrefix(tt.path); got != tt.want {
				t.Errorf("cleanPrefix(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestLogScan(t *testing.T) {
	var f logConfig

	f.scan([]string{
		"--log-level", "debug",
		"--log-format=json",
		"--no-log-pretty",
		"--log-caller=true",
		"eval",
	})

	t.Cleanup(func() {
		var reset logConfig

		reset.scan([]string{"--log-level=info", "--log-format=text", "--log-pretty", "--no-log-caller"})
	})

	if f.Level != "debug" || f.Format != "json" || f.Pretty || !f.Caller {
		t.Errorf("scan() = %+v", f)
	}
}

func TestScanBool(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		assigned bool
		want     bool
		ok       bool
	}{
		{"--log-pretty", "", false, true, true},
		{"--no-log-pretty", "", false, false, true},
		{"--log-pretty", "false", true, false, true},
		{"--no-log-pretty", "false", true, true, true},
		{"--log-pretty", "maybe", true, false, false},
	}

	for _, tt := range tests {
		v, ok := scanBool(tt.name, tt.value, tt.assigned)
		if v != tt.want || ok != tt.ok {
			t.Errorf("scanBool(%q, %q, %v) = %v, %v", tt.name, tt.value, tt.assigned, v, ok)
		}
	}
}
