package chat

import (
	"testing"

	"chatd/pkg/types"
)

func TestFlattenHistoryExactFormat(t *testing.T) {
	got := flattenHistory([]types.Turn{
		{Role: types.RoleUser, Content: "a"},
		{Role: types.RoleAssistant, Content: "b"},
	})
	if got != "user: a\nassistant: b" {
		t.Fatalf("flatten = %q", got)
	}
}

func TestFlattenEmptyHistory(t *testing.T) {
	if got := flattenHistory(nil); got != "" {
		t.Fatalf("flatten(nil) = %q", got)
	}
}

func TestFlattenSingleTurn(t *testing.T) {
	got := flattenHistory([]types.Turn{{Role: types.RoleUser, Content: "hello world"}})
	if got != "user: hello world" {
		t.Fatalf("flatten = %q", got)
	}
}
