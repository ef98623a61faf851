package repository

import (
	"fmt"
	"testing"

	"ctfchat-backend/internal/model"

	"github.com/google/go-cmp/cmp"
)

func seed(t *testing.T, r *MessageRepository, ch model.Channel, n int) []model.Message {
	t.Helper()
	out := make([]model.Message, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, r.Append(ch, model.Message{Message: fmt.Sprintf("msg-%d", i)}))
	}
	return out
}

func texts(msgs []model.Message) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.Message
	}
	return out
}

func TestAppendAssignsIdentity(t *testing.T) {
	t.Parallel()

	r := NewMessageRepository(100, 50)
	stored := r.Append(model.GlobalChannel(), model.Message{Message: "hi"})
	if stored.ID == "" || stored.Timestamp == "" {
		t.Errorf("Append must assign id and timestamp, got %+v", stored)
	}

	// Pre-assigned identity is preserved.
	stored = r.Append(model.GlobalChannel(), model.Message{ID: "fixed", Timestamp: "2026-01-01T00:00:00Z", Message: "hi"})
	if stored.ID != "fixed" || stored.Timestamp != "2026-01-01T00:00:00Z" {
		t.Errorf("Append must keep existing identity, got %+v", stored)
	}
}

func TestCapacityTrimming(t *testing.T) {
	t.Parallel()

	r := NewMessageRepository(5, 3)

	seed(t, r, model.GlobalChannel(), 8)
	got := texts(r.List(model.GlobalChannel()))
	want := []string{"msg-3", "msg-4", "msg-5", "msg-6", "msg-7"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("global trim mismatch (-want +got):\n%s", diff)
	}

	seed(t, r, model.TeamChannel("t1"), 5)
	got = texts(r.List(model.TeamChannel("t1")))
	want = []string{"msg-2", "msg-3", "msg-4"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("team trim mismatch (-want +got):\n%s", diff)
	}
}

func TestDeletePreservesOrder(t *testing.T) {
	t.Parallel()

	r := NewMessageRepository(100, 50)
	msgs := seed(t, r, model.GlobalChannel(), 4)

	removed, ok := r.Delete(model.GlobalChannel(), msgs[1].ID)
	if !ok {
		t.Fatal("Delete reported not-found for an existing id")
	}
	if removed.ID != msgs[1].ID {
		t.Errorf("Delete removed wrong message: %+v", removed)
	}

	got := texts(r.List(model.GlobalChannel()))
	want := []string{"msg-0", "msg-2", "msg-3"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("order after delete mismatch (-want +got):\n%s", diff)
	}
}

func TestDeleteMisses(t *testing.T) {
	t.Parallel()

	r := NewMessageRepository(100, 50)
	seed(t, r, model.GlobalChannel(), 2)

	if _, ok := r.Delete(model.GlobalChannel(), "no-such-id"); ok {
		t.Error("Delete should miss an unknown id")
	}
	if got := r.List(model.GlobalChannel()); len(got) != 2 {
		t.Errorf("failed delete must not mutate, got %d messages", len(got))
	}
	// Unknown team channel: not-found, not a new channel.
	if _, ok := r.Delete(model.TeamChannel("never"), "x"); ok {
		t.Error("Delete on unknown team should miss")
	}
	if r.HasTeam("never") {
		t.Error("Delete must not create team channels")
	}
}

func TestLazyTeamChannels(t *testing.T) {
	t.Parallel()

	r := NewMessageRepository(100, 50)
	if r.HasTeam("t1") {
		t.Error("team channel should not exist before first reference")
	}

	if got := r.List(model.TeamChannel("t1")); len(got) != 0 {
		t.Errorf("fresh team channel should be empty, got %+v", got)
	}
	if !r.HasTeam("t1") {
		t.Error("List should create the team channel")
	}

	r.EnsureTeam("t2")
	if !r.HasTeam("t2") {
		t.Error("EnsureTeam should create the team channel")
	}
}

func TestAllSnapshots(t *testing.T) {
	t.Parallel()

	r := NewMessageRepository(100, 50)
	seed(t, r, model.GlobalChannel(), 2)
	seed(t, r, model.TeamChannel("t1"), 1)

	global, teams := r.All()
	if len(global) != 2 {
		t.Errorf("global snapshot = %d messages, want 2", len(global))
	}
	if len(teams) != 1 || len(teams["t1"]) != 1 {
		t.Errorf("teams snapshot mismatch: %+v", teams)
	}

	// Snapshots are copies; mutating them must not touch the store.
	global[0].Message = "tampered"
	if got := r.List(model.GlobalChannel()); got[0].Message == "tampered" {
		t.Error("All must return copies")
	}
}
