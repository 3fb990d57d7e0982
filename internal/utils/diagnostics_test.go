package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestDiagnostics(level DiagnosticLevel) (*DiagnosticSystem, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	d := NewDiagnosticSystem(level)
	d.SetOutput(&out, &errOut)
	return d, &out, &errOut
}

func TestDiagnosticSystemLevels(t *testing.T) {
	tests := []struct {
		level     DiagnosticLevel
		wantWarn  bool
		wantInfo  bool
		wantDebug bool
	}{
		{DiagnosticSilent, false, false, false},
		{DiagnosticError, false, false, false},
		{DiagnosticWarn, true, false, false},
		{DiagnosticInfo, true, true, false},
		{DiagnosticDebug, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			d, out, _ := newTestDiagnostics(tt.level)

			d.Warn("fallback %s", "x")
			d.Info("info")
			d.Debug("trace %d", 1)

			assert.Equal(t, tt.wantWarn, bytes.Contains(out.Bytes(), []byte("[WARN] fallback x")))
			assert.Equal(t, tt.wantInfo, bytes.Contains(out.Bytes(), []byte("[INFO] info")))
			assert.Equal(t, tt.wantDebug, bytes.Contains(out.Bytes(), []byte("[DEBUG] trace 1")))
		})
	}
}

func TestDiagnosticSystemErrorsGoToErrorOutput(t *testing.T) {
	d, out, errOut := newTestDiagnostics(DiagnosticError)
	d.Error("boom: %v", "bad")

	assert.Empty(t, out.String())
	assert.Equal(t, "[ERROR] boom: bad\n", errOut.String())
}

func TestDiagnosticSystemSummarySortsKeys(t *testing.T) {
	d, out, _ := newTestDiagnostics(DiagnosticInfo)
	d.Summary("Scan Complete", map[string]interface{}{
		"Modules":     2,
		"Definitions": 5,
		"Fallbacks":   1,
	})

	assert.Equal(t, "\nScan Complete\n   Definitions: 5\n   Fallbacks: 1\n   Modules: 2\n\n", out.String())
}

func TestDiagnosticSystemIndent(t *testing.T) {
	d, out, _ := newTestDiagnostics(DiagnosticInfo)
	d.Indent()
	d.List("AppModule")
	d.Unindent()
	d.Unindent()
	d.List("WebModule")

	assert.Equal(t, "  - AppModule\n- WebModule\n", out.String())
}

func TestLevelFromFlags(t *testing.T) {
	assert.Equal(t, DiagnosticInfo, LevelFromFlags(false, false))
	assert.Equal(t, DiagnosticDebug, LevelFromFlags(true, false))
	assert.Equal(t, DiagnosticError, LevelFromFlags(false, true))
	assert.Equal(t, DiagnosticError, LevelFromFlags(true, true))
}

func TestDiagnosticSystemUseErrorOutput(t *testing.T) {
	d, out, errOut := newTestDiagnostics(DiagnosticInfo)
	d.UseErrorOutput()

	d.Info("round %d", 1)
	d.PhaseHeader("Round 1")

	assert.Empty(t, out.String())
	assert.Equal(t, "[INFO] round 1\nRound 1:\n", errOut.String())
}
