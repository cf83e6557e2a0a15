package rest

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gigabytetmn/freeradius-server/pkg/config"
	"github.com/gigabytetmn/freeradius-server/pkg/mapproc"
	"github.com/gigabytetmn/freeradius-server/pkg/radius"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func compileBlock(t *testing.T, m *Module, block config.MapBlock) *mapproc.Instance {
	t.Helper()

	registry := mapproc.New()
	t.Cleanup(func() { registry.Close() })

	if _, err := m.Register(registry); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	inst, err := mapproc.Compile(registry, block)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	return inst
}

func userLookupBlock(baseURL string) config.MapBlock {
	return config.MapBlock{
		Name:      "user-lookup",
		Processor: ProcName,
		Src:       baseURL + "/users?name=%{User-Name}",
		Maps: []config.MapEntry{
			{Dst: "control:Group-Name", Op: ":=", Src: "group"},
			{Dst: "reply:Session-Timeout", Op: ":=", Src: "session_timeout"},
		},
	}
}

func TestModule_Evaluate(t *testing.T) {
	var gotQuery string
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"group": "staff", "session_timeout": 3600, "ignored": "x"}`))
	})

	m := New(config.RESTModuleConfig{Timeout: 5 * time.Second, MaxBodyBytes: 1 << 20})
	inst := compileBlock(t, m, userLookupBlock(srv.URL))

	req := radius.NewRequest()
	req.Request.Add("User-Name", "alice smith")

	if rcode := inst.Evaluate(req); rcode != radius.RcodeUpdated {
		t.Fatalf("Evaluate() = %v, want %v", rcode, radius.RcodeUpdated)
	}
	if got, _ := req.Control.Get("Group-Name"); got != "staff" {
		t.Errorf("Group-Name = %q, want %q", got, "staff")
	}
	if got, _ := req.Reply.Get("Session-Timeout"); got != "3600" {
		t.Errorf("Session-Timeout = %q, want %q", got, "3600")
	}
	// The space in the user name must be query-escaped by the escape hook.
	if gotQuery != "name=alice+smith" {
		t.Errorf("request query = %q, want %q", gotQuery, "name=alice+smith")
	}
}

func TestModule_Evaluate_NotFound(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	m := New(config.RESTModuleConfig{Timeout: 5 * time.Second, MaxBodyBytes: 1 << 20})
	inst := compileBlock(t, m, userLookupBlock(srv.URL))

	req := radius.NewRequest()
	req.Request.Add("User-Name", "nobody")

	if rcode := inst.Evaluate(req); rcode != radius.RcodeNotfound {
		t.Errorf("Evaluate() = %v, want %v", rcode, radius.RcodeNotfound)
	}
}

func TestModule_Evaluate_ServerError(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	m := New(config.RESTModuleConfig{Timeout: 5 * time.Second, MaxBodyBytes: 1 << 20})
	inst := compileBlock(t, m, userLookupBlock(srv.URL))

	req := radius.NewRequest()
	req.Request.Add("User-Name", "alice")

	if rcode := inst.Evaluate(req); rcode != radius.RcodeFail {
		t.Errorf("Evaluate() = %v, want %v", rcode, radius.RcodeFail)
	}
}

func TestModule_Evaluate_MissingFields(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"unrelated": true}`))
	})

	m := New(config.RESTModuleConfig{Timeout: 5 * time.Second, MaxBodyBytes: 1 << 20})
	inst := compileBlock(t, m, userLookupBlock(srv.URL))

	req := radius.NewRequest()
	req.Request.Add("User-Name", "alice")

	if rcode := inst.Evaluate(req); rcode != radius.RcodeNoop {
		t.Errorf("Evaluate() = %v, want %v", rcode, radius.RcodeNoop)
	}
}

func TestModule_Evaluate_MalformedBody(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})

	m := New(config.RESTModuleConfig{Timeout: 5 * time.Second, MaxBodyBytes: 1 << 20})
	inst := compileBlock(t, m, userLookupBlock(srv.URL))

	req := radius.NewRequest()
	req.Request.Add("User-Name", "alice")

	if rcode := inst.Evaluate(req); rcode != radius.RcodeFail {
		t.Errorf("Evaluate() = %v, want %v", rcode, radius.RcodeFail)
	}
}

func TestModule_Instantiate_RequiresField(t *testing.T) {
	m := New(config.RESTModuleConfig{Timeout: time.Second, MaxBodyBytes: 1 << 20})

	registry := mapproc.New()
	defer registry.Close()
	if _, err := m.Register(registry); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	block := userLookupBlock("http://127.0.0.1:0")
	block.Maps[0].Src = ""

	_, err := mapproc.Compile(registry, block)
	if err == nil {
		t.Fatal("Compile() error = nil, want field validation error")
	}
	if !strings.Contains(err.Error(), "JSON field name is required") {
		t.Errorf("Compile() error = %q, want field requirement message", err)
	}
}

func TestFieldString(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"text", "text"},
		{true, "true"},
		{float64(42), "42"},
		{float64(1.5), "1.5"},
	}
	for _, tt := range tests {
		if got := fieldString(tt.in); got != tt.want {
			t.Errorf("fieldString(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
