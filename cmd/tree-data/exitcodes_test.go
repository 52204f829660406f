package main

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestExitCode(t *testing.T) {
	if got := exitCode(nil); got != exitOK {
		t.Fatalf("expected %d, got %d", exitOK, got)
	}
	if got := exitCode(errors.New("plain")); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	if got := exitCode(withCode(exitDB, errors.New("db down"))); got != exitDB {
		t.Fatalf("expected %d, got %d", exitDB, got)
	}

	// wrapped cliErrors keep their code
	wrapped := fmt.Errorf("import failed: %w", withCode(exitDBWrite, errors.New("insert failed")))
	if got := exitCode(wrapped); got != exitDBWrite {
		t.Fatalf("expected %d, got %d", exitDBWrite, got)
	}
}

func TestWithCode_NilPassthrough(t *testing.T) {
	if err := withCode(exitValidation, nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestCityList(t *testing.T) {
	list := cityList()
	for _, name := range []string{"toronto", "montreal", "calgary", "peterborough"} {
		if !strings.Contains(list, name) {
			t.Fatalf("city list %q missing %s", list, name)
		}
	}
}

func TestImportCmd_RejectsUnknownCity(t *testing.T) {
	cmd := newImportCmd()
	err := cmd.PreRunE(cmd, []string{"gotham"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if got := exitCode(err); got != exitUsage {
		t.Fatalf("expected %d, got %d", exitUsage, got)
	}
	if !strings.Contains(err.Error(), "choose one of") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestArchiveCmd_RejectsBadDate(t *testing.T) {
	cmd := newArchiveCmd()
	if err := cmd.Flags().Set("date", "12/08/2026"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := cmd.PreRunE(cmd, []string{"toronto", "trees.geojson"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if got := exitCode(err); got != exitUsage {
		t.Fatalf("expected %d, got %d", exitUsage, got)
	}
}
