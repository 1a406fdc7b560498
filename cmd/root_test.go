package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootCommand(t *testing.T) {
	tests := []struct {
		name           string
		args           []string
		wantErr        bool
		expectedOutput string
	}{
		{
			name:           "root command without args shows help",
			args:           []string{},
			wantErr:        false,
			expectedOutput: "degraded segments with known quality labels",
		},
		{
			name:           "root command with --help",
			args:           []string{"--help"},
			wantErr:        false,
			expectedOutput: "Available Commands:",
		},
		{
			name:           "root command with invalid flag",
			args:           []string{"--invalid-flag"},
			wantErr:        true,
			expectedOutput: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewRootCmd()
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			if (err != nil) != tt.wantErr {
				t.Errorf("Execute() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.expectedOutput != "" && !strings.Contains(buf.String(), tt.expectedOutput) {
				t.Errorf("Expected output to contain %q, got %q", tt.expectedOutput, buf.String())
			}
		})
	}
}

func TestSubcommandsRegistered(t *testing.T) {
	cmd := NewRootCmd()
	for _, name := range []string{"generate-plan", "process-plan", "version"} {
		sub, _, err := cmd.Find([]string{name})
		if err != nil {
			t.Errorf("Failed to find %s command: %v", name, err)
			continue
		}
		if sub.Name() != name {
			t.Errorf("Expected to resolve %q, got %q", name, sub.Name())
		}
	}
}

func TestGeneratePlanRequiredFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{
			name: "no flags",
			args: []string{"generate-plan"},
		},
		{
			name: "missing output paths",
			args: []string{"generate-plan", "--csv-path", "annotations.csv"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewRootCmd()
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs(tt.args)

			if err := cmd.Execute(); err == nil {
				t.Error("Expected an error for missing required flags")
			}
		})
	}
}

func TestProcessPlanRequiredFlags(t *testing.T) {
	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"process-plan"})

	if err := cmd.Execute(); err == nil {
		t.Error("Expected an error for missing required flags")
	}
}
