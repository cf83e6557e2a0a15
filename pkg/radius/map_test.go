package radius

import "testing"

func TestParseOp(t *testing.T) {
	for _, valid := range []string{":=", "=", "+="} {
		op, err := ParseOp(valid)
		if err != nil {
			t.Errorf("ParseOp(%q) error = %v", valid, err)
		}
		if string(op) != valid {
			t.Errorf("ParseOp(%q) = %q", valid, op)
		}
	}

	for _, invalid := range []string{"", "==", "~=", "-="} {
		if _, err := ParseOp(invalid); err == nil {
			t.Errorf("ParseOp(%q) error = nil, want error", invalid)
		}
	}
}

func TestMap_Apply(t *testing.T) {
	tests := []struct {
		name  string
		m     Map
		setup func(*Request)
		value string
		check func(*testing.T, *Request)
	}{
		{
			name:  "set replaces existing reply value",
			m:     Map{Dst: "reply:Reply-Message", Op: OpSet},
			setup: func(r *Request) { r.Reply.Add("Reply-Message", "old") },
			value: "new",
			check: func(t *testing.T, r *Request) {
				if got, _ := r.Reply.Get("Reply-Message"); got != "new" {
					t.Errorf("Reply-Message = %q, want %q", got, "new")
				}
				if n := len(r.Reply.GetAll("Reply-Message")); n != 1 {
					t.Errorf("Reply-Message count = %d, want 1", n)
				}
			},
		},
		{
			name:  "equal keeps existing value",
			m:     Map{Dst: "control:Auth-Type", Op: OpEqual},
			setup: func(r *Request) { r.Control.Add("Auth-Type", "Accept") },
			value: "Reject",
			check: func(t *testing.T, r *Request) {
				if got, _ := r.Control.Get("Auth-Type"); got != "Accept" {
					t.Errorf("Auth-Type = %q, want %q", got, "Accept")
				}
			},
		},
		{
			name:  "equal sets when absent",
			m:     Map{Dst: "control:Auth-Type", Op: OpEqual},
			value: "Accept",
			check: func(t *testing.T, r *Request) {
				if got, _ := r.Control.Get("Auth-Type"); got != "Accept" {
					t.Errorf("Auth-Type = %q, want %q", got, "Accept")
				}
			},
		},
		{
			name:  "add appends alongside existing value",
			m:     Map{Dst: "reply:Framed-Route", Op: OpAdd},
			setup: func(r *Request) { r.Reply.Add("Framed-Route", "10.1.0.0/16") },
			value: "10.2.0.0/16",
			check: func(t *testing.T, r *Request) {
				all := r.Reply.GetAll("Framed-Route")
				if len(all) != 2 || all[1] != "10.2.0.0/16" {
					t.Errorf("Framed-Route = %v, want two routes", all)
				}
			},
		},
		{
			name:  "bare destination lands in reply",
			m:     Map{Dst: "Session-Timeout", Op: OpSet},
			value: "3600",
			check: func(t *testing.T, r *Request) {
				if got, _ := r.Reply.Get("Session-Timeout"); got != "3600" {
					t.Errorf("Session-Timeout = %q, want %q", got, "3600")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := NewRequest()
			if tt.setup != nil {
				tt.setup(req)
			}
			tt.m.Apply(req, tt.value)
			tt.check(t, req)
		})
	}
}
