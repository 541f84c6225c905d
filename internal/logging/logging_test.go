package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerVerbosity(t *testing.T) {
	tests := []struct {
		name      string
		logger    Logger
		wantInfo  bool
		wantDebug bool
		wantWarn  bool
	}{
		{"Quiet", Logger{}, false, false, false},
		{"Verbose", Logger{Verbose: true}, true, false, true},
		{"Debug", Logger{Debug: true}, true, true, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			l := tc.logger
			l.Out = &out
			l.Err = &errOut

			l.Infof("info %d", 1)
			l.Debugf("debug %d", 2)
			l.Warnf("warn %d", 3)

			if got := strings.Contains(out.String(), "info 1"); got != tc.wantInfo {
				t.Errorf("info shown = %t, want %t", got, tc.wantInfo)
			}
			if got := strings.Contains(out.String(), "debug 2"); got != tc.wantDebug {
				t.Errorf("debug shown = %t, want %t", got, tc.wantDebug)
			}
			if got := strings.Contains(errOut.String(), "warn 3"); got != tc.wantWarn {
				t.Errorf("warn shown = %t, want %t", got, tc.wantWarn)
			}
		})
	}
}

func TestWarnfAlways(t *testing.T) {
	var errOut bytes.Buffer
	l := Logger{Err: &errOut}

	l.WarnfAlways("permissions %o", 0644)

	if !strings.Contains(errOut.String(), "permissions 644") {
		t.Errorf("Expected warning to be printed, got %q", errOut.String())
	}
}

func TestErrorfAndReturn(t *testing.T) {
	var errOut bytes.Buffer
	l := Logger{Verbose: true, Err: &errOut}

	err := l.ErrorfAndReturn("failed to read %s", ".env")
	if err == nil || err.Error() != "failed to read .env" {
		t.Fatalf("Expected returned error, got %v", err)
	}
	if !strings.Contains(errOut.String(), "failed to read .env") {
		t.Errorf("Expected error to be logged, got %q", errOut.String())
	}
}
