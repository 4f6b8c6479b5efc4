package services

import (
	"strings"

	"codeclimb/internal/models"
)

// GradeBatch compares judge results against the expected outputs at each
// index. A case passes when stdout equals the expected output after trimming
// leading and trailing whitespace from both sides; stderr and compile output
// never affect the outcome, they are carried through for diagnostics only.
func GradeBatch(results []JudgeResult, expectedOutputs []string) []bool {
	passed := make([]bool, len(results))
	for i, result := range results {
		var stdout string
		if result.Stdout != nil {
			stdout = *result.Stdout
		}
		passed[i] = strings.TrimSpace(stdout) == strings.TrimSpace(expectedOutputs[i])
	}
	return passed
}

// Verdict reduces per-case outcomes to the overall submission status:
// Accepted only when every case passed.
func Verdict(passed []bool) string {
	for _, ok := range passed {
		if !ok {
			return models.StatusWrongAnswer
		}
	}
	return models.StatusAccepted
}
