package radius

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestNewRequest(t *testing.T) {
	req := NewRequest()
	if req.ID == uuid.Nil {
		t.Error("NewRequest() ID is nil")
	}
	if req.Received.IsZero() {
		t.Error("NewRequest() Received is zero")
	}
	if ctx := req.Context(); ctx != context.Background() {
		t.Errorf("Context() = %v, want context.Background()", ctx)
	}
}

func TestRequest_WithContext(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "v")

	req := NewRequest().WithContext(ctx)
	if got := req.Context().Value(key{}); got != "v" {
		t.Errorf("Context().Value() = %v, want %q", got, "v")
	}
}

func TestRequest_Attr(t *testing.T) {
	req := NewRequest()
	req.Request.Add("User-Name", "alice")
	req.Reply.Add("Reply-Message", "hello")
	req.Control.Add("Auth-Type", "Accept")

	tests := []struct {
		ref    string
		want   string
		wantOK bool
	}{
		{ref: "User-Name", want: "alice", wantOK: true},
		{ref: "request:User-Name", want: "alice", wantOK: true},
		{ref: "reply:Reply-Message", want: "hello", wantOK: true},
		{ref: "control:Auth-Type", want: "Accept", wantOK: true},
		{ref: "Missing", wantOK: false},
		{ref: "reply:User-Name", wantOK: false},
	}

	for _, tt := range tests {
		got, ok := req.Attr(tt.ref)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("Attr(%q) = (%q, %v), want (%q, %v)", tt.ref, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestRequest_List(t *testing.T) {
	req := NewRequest()

	req.List("request").Add("User-Name", "bob")
	req.List("control").Add("Auth-Type", "Accept")
	req.List("reply").Add("Reply-Message", "hi")
	req.List("unknown").Add("Session-Timeout", "60")

	if got, _ := req.Request.Get("User-Name"); got != "bob" {
		t.Errorf("request list User-Name = %q", got)
	}
	if got, _ := req.Control.Get("Auth-Type"); got != "Accept" {
		t.Errorf("control list Auth-Type = %q", got)
	}
	if got, _ := req.Reply.Get("Reply-Message"); got != "hi" {
		t.Errorf("reply list Reply-Message = %q", got)
	}
	// Unknown prefixes fall back to the reply list.
	if got, _ := req.Reply.Get("Session-Timeout"); got != "60" {
		t.Errorf("fallback Session-Timeout = %q", got)
	}
}
