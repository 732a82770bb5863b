package genai

import (
	"context"
	"testing"
)

func TestBuildContentsMapsRoles(t *testing.T) {
	history := []Turn{
		{Role: RoleUser, Text: "hello"},
		{Role: RoleModel, Text: "hi there"},
		{Role: "system", Text: "hidden context"},
	}

	contents := buildContents(history)
	if len(contents) != 3 {
		t.Fatalf("expected 3 contents, got %d", len(contents))
	}

	if contents[0].Role != RoleUser {
		t.Fatalf("expected user role, got %q", contents[0].Role)
	}
	if contents[1].Role != RoleModel {
		t.Fatalf("expected model role, got %q", contents[1].Role)
	}
	// Anything that is not the model collapses to the user role.
	if contents[2].Role != RoleUser {
		t.Fatalf("expected non-model role to collapse to user, got %q", contents[2].Role)
	}

	if len(contents[0].Parts) != 1 || contents[0].Parts[0].Text != "hello" {
		t.Fatalf("unexpected first part %+v", contents[0].Parts)
	}
}

func TestBuildContentsEmptyHistory(t *testing.T) {
	if got := buildContents(nil); got != nil {
		t.Fatalf("expected nil contents for empty history, got %v", got)
	}
}

func TestSendOnUninitializedSession(t *testing.T) {
	ctx := context.Background()
	var s *Session
	if _, err := s.Send(ctx, "ping"); err == nil {
		t.Fatal("expected error from nil session")
	}
	if _, err := (&Session{}).Send(ctx, "ping"); err == nil {
		t.Fatal("expected error from zero-value session")
	}
}
