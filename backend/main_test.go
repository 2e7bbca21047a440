package main

import (
	"bytes"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/JoseManuelPR/aduanas-app-sub001/backend/config"
	"github.com/JoseManuelPR/aduanas-app-sub001/backend/workflow"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	deadlineDate = ""
	err := rootCmd.Execute()
	return out.String(), err
}

func TestWorkflowStageCommand(t *testing.T) {
	out, err := execute(t, "", "workflow", "stage", "Notificada")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var resp struct {
		Known bool               `json:"known"`
		Stage workflow.StageInfo `json:"stage"`
	}
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("Failed to parse output %q: %v", out, err)
	}
	if !resp.Known || resp.Stage.Index != int(workflow.StageNotified) {
		t.Errorf("Unexpected resolution %+v", resp)
	}
}

func TestWorkflowPermissionsCommand(t *testing.T) {
	out, err := execute(t, "", "workflow", "permissions", "Cerrada")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var perms workflow.PermissionSet
	if err := json.Unmarshal([]byte(out), &perms); err != nil {
		t.Fatalf("Failed to parse output %q: %v", out, err)
	}
	if perms.AnyMutating() {
		t.Error("Expected a closed case to allow nothing")
	}
}

func TestWorkflowDeadlineCommand(t *testing.T) {
	out, err := execute(t, "", "workflow", "deadline", "3")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	var status workflow.DeadlineStatus
	if err := json.Unmarshal([]byte(out), &status); err != nil {
		t.Fatalf("Failed to parse output %q: %v", out, err)
	}
	if status.Severity != workflow.SeverityWarning {
		t.Errorf("Expected warning, got %s", status.Severity)
	}

	if _, err := execute(t, "", "workflow", "deadline", "tres"); err == nil {
		t.Error("Expected error for non-numeric days")
	}
	if _, err := execute(t, "", "workflow", "deadline"); err == nil {
		t.Error("Expected error without days or date")
	}
}

func TestHashPasswordCommand(t *testing.T) {
	for _, tc := range []struct {
		stdin string
		args  []string
	}{
		{"", []string{"hash-password", "secreto"}},
		{"secreto\n", []string{"hash-password"}},
	} {
		out, err := execute(t, tc.stdin, tc.args...)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		user := config.User{Password: strings.TrimSpace(out)}
		if !user.CheckPassword("secreto") {
			t.Errorf("Expected printed hash to verify, got %q", out)
		}
	}

	if _, err := execute(t, "\n", "hash-password"); err == nil {
		t.Error("Expected error for empty password")
	}
}
