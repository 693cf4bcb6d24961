package utils

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestDiagnostics(level DiagnosticLevel) (*DiagnosticSystem, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	d := NewDiagnosticSystem(level)
	d.SetOutput(&out, &errOut)
	return d, &out, &errOut
}

func TestDiagnosticSystem_Levels(t *testing.T) {
	tests := []struct {
		name        string
		level       DiagnosticLevel
		expectedOut string
		expectedErr string
	}{
		{"silent", DiagnosticSilent, "", ""},
		{"errors only", DiagnosticError, "", "[ERROR] broken\n"},
		{"info", DiagnosticInfo, "[INFO] hello\n", "[ERROR] broken\n[WARN] careful\n"},
		{"debug", DiagnosticDebug, "[INFO] hello\n[VERBOSE] detail\n[DEBUG] trace 1\n", "[ERROR] broken\n[WARN] careful\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, out, errOut := newTestDiagnostics(tt.level)
			d.Error("broken")
			d.Warn("careful")
			d.Info("hello")
			d.Verbose("detail")
			d.Debug("trace %d", 1)

			assert.Equal(t, tt.expectedOut, out.String())
			assert.Equal(t, tt.expectedErr, errOut.String())
		})
	}
}

func TestDiagnosticSystem_Formatting(t *testing.T) {
	d, out, errOut := newTestDiagnostics(DiagnosticInfo)

	d.Header("Generating test bodies")
	d.Manifest("app.yaml")
	d.PhaseHeader("Actions")
	d.Indent()
	d.Info("nested")
	d.Unindent()
	d.Unindent()
	d.PhaseItem("PostController@store")
	d.PhaseFailure("PostController@show")
	d.List("%d fragments", 2)
	d.Summary("Summary", map[string]any{"failed": 1, "generated": 2})

	assert.Equal(t, "testgen: Generating test bodies\n"+
		"Manifest: app.yaml\n"+
		"Actions:\n"+
		"  [INFO] nested\n"+
		"✓ PostController@store\n"+
		"- 2 fragments\n"+
		"\nSummary\n   failed: 1\n   generated: 2\n\n", out.String())
	assert.Equal(t, "✗ PostController@show\n", errOut.String())
}

func TestDiagnosticSystem_Concurrent(t *testing.T) {
	d, out, _ := newTestDiagnostics(DiagnosticInfo)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d.Info("message %d", i)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 20, bytes.Count(out.Bytes(), []byte("[INFO] message")))
}
