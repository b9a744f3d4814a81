package ui_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/reltag/internal/ui"
)

const (
	testStatusMessageConstant = "Manifest version: %s"
	testStatusArgumentValue   = "2.1.0"
)

func TestStatusReporterPrefixes(testInstance *testing.T) {
	testCases := []struct {
		name         string
		report       func(reporter *ui.StatusReporter)
		expectedLine string
	}{
		{
			name:         "progress",
			report:       func(reporter *ui.StatusReporter) { reporter.Progress(testStatusMessageConstant, testStatusArgumentValue) },
			expectedLine: "[*] Manifest version: 2.1.0\n",
		},
		{
			name:         "success",
			report:       func(reporter *ui.StatusReporter) { reporter.Success("Versions already in sync") },
			expectedLine: "[OK] Versions already in sync\n",
		},
		{
			name:         "information",
			report:       func(reporter *ui.StatusReporter) { reporter.Information("Tag v2.1.0 already exists, skipping") },
			expectedLine: "[INFO] Tag v2.1.0 already exists, skipping\n",
		},
		{
			name:         "warning",
			report:       func(reporter *ui.StatusReporter) { reporter.Warning("No version found in manifest.json") },
			expectedLine: "[!] No version found in manifest.json\n",
		},
		{
			name:         "detail",
			report:       func(reporter *ui.StatusReporter) { reporter.Detail("You can manually push with: git push origin v2.1.0") },
			expectedLine: "    You can manually push with: git push origin v2.1.0\n",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			outputBuffer := &bytes.Buffer{}
			reporter := ui.NewStatusReporter(outputBuffer)
			testCase.report(reporter)
			require.Equal(testInstance, testCase.expectedLine, outputBuffer.String())
		})
	}
}

func TestStatusReporterToleratesMissingOutput(testInstance *testing.T) {
	reporter := ui.NewStatusReporter(nil)
	require.NotPanics(testInstance, func() {
		reporter.Progress(testStatusMessageConstant, testStatusArgumentValue)
		reporter.Detail(testStatusMessageConstant, testStatusArgumentValue)
	})
}
