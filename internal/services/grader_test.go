package services_test

import (
	"testing"

	"codeclimb/internal/models"
	"codeclimb/internal/services"
)

func strPtr(s string) *string { return &s }

func TestGradeBatchTrimsOuterWhitespace(t *testing.T) {
	tests := []struct {
		name     string
		stdout   *string
		expected string
		want     bool
	}{
		{"exact match", strPtr("3"), "3", true},
		{"trailing newline", strPtr("3\n"), "3", true},
		{"leading whitespace", strPtr("  3"), "3", true},
		{"both sides padded", strPtr("\t3 \n"), " 3 ", true},
		{"interior whitespace differs", strPtr("1  2"), "1 2", false},
		{"different value", strPtr("9"), "8", false},
		{"nil stdout vs empty", nil, "", true},
		{"nil stdout vs value", nil, "3", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := []services.JudgeResult{{Stdout: tt.stdout}}
			passed := services.GradeBatch(results, []string{tt.expected})
			if passed[0] != tt.want {
				t.Fatalf("GradeBatch(%v, %q) = %v, want %v", tt.stdout, tt.expected, passed[0], tt.want)
			}
		})
	}
}

func TestGradeBatchIgnoresStderrAndCompileOutput(t *testing.T) {
	// A program that crashes after printing the correct line still passes.
	results := []services.JudgeResult{{
		Stdout:        strPtr("3\n"),
		Stderr:        strPtr("panic: index out of range"),
		CompileOutput: strPtr("warning: unused variable"),
		Status:        services.JudgeStatus{ID: 11, Description: "Runtime Error (NZEC)"},
	}}

	passed := services.GradeBatch(results, []string{"3"})
	if !passed[0] {
		t.Fatalf("expected case to pass despite stderr and runtime error status")
	}
}

func TestVerdict(t *testing.T) {
	tests := []struct {
		name   string
		passed []bool
		want   string
	}{
		{"all passed", []bool{true, true, true}, models.StatusAccepted},
		{"one failed", []bool{true, false, true}, models.StatusWrongAnswer},
		{"all failed", []bool{false}, models.StatusWrongAnswer},
		{"no cases", nil, models.StatusAccepted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := services.Verdict(tt.passed); got != tt.want {
				t.Fatalf("Verdict(%v) = %q, want %q", tt.passed, got, tt.want)
			}
		})
	}
}
