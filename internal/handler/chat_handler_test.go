package handler

import (
	"testing"

	"ctfchat-backend/internal/model"
)

func TestGetMessagesGlobal(t *testing.T) {
	env := newTestEnv()
	env.messages.Append(model.GlobalChannel(), model.Message{Username: "alice", Message: "hi", ChannelType: "global"})

	resp := env.request(t, "GET", "/api/messages/global", "", "")
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body struct {
		Messages []model.Message `json:"messages"`
	}
	decodeBody(t, resp, &body)
	if len(body.Messages) != 1 || body.Messages[0].Message != "hi" {
		t.Errorf("unexpected messages: %+v", body.Messages)
	}
}

func TestGetMessagesTeamIsLazy(t *testing.T) {
	env := newTestEnv()

	resp := env.request(t, "GET", "/api/messages/team_t1", "", "")
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body struct {
		Messages []model.Message `json:"messages"`
	}
	decodeBody(t, resp, &body)
	if body.Messages == nil || len(body.Messages) != 0 {
		t.Errorf("expected empty list, got %+v", body.Messages)
	}
	if !env.messages.HasTeam("t1") {
		t.Error("history request should create the team channel")
	}
}

func TestGetMessagesInvalidChannel(t *testing.T) {
	env := newTestEnv()

	resp := env.request(t, "GET", "/api/messages/dm", "", "")
	if resp.StatusCode != 400 {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
