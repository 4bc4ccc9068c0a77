package builtins

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"jyro/pkg/catalog"
	"jyro/pkg/value"
)

// newEchoServer spins up a websocket server that echoes back every text
// message it receives, for exercising the ws.connect/send/recv/close
// builtins end to end without a real external endpoint.
func newEchoServer(t *testing.T) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			mt, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if err := conn.WriteMessage(mt, msg); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestWSConnectSendRecvCloseRoundTrip(t *testing.T) {
	srv := newEchoServer(t)

	handle, err := (wsConnectFn{}).Execute([]*value.Value{value.String(wsURL(srv))}, nil)
	if err != nil {
		t.Fatalf("unexpected error connecting: %v", err)
	}

	ok, err := (wsSendFn{}).Execute([]*value.Value{handle, value.String("hello")}, nil)
	if err != nil {
		t.Fatalf("unexpected error sending: %v", err)
	}
	if !ok.AsBool() {
		t.Fatalf("expected ws.send to report success")
	}

	reply, err := (wsRecvFn{}).Execute([]*value.Value{handle}, nil)
	if err != nil {
		t.Fatalf("unexpected error receiving: %v", err)
	}
	if reply.AsString() != "hello" {
		t.Errorf("reply = %q, want hello", reply.AsString())
	}

	closed, err := (wsCloseFn{}).Execute([]*value.Value{handle}, nil)
	if err != nil {
		t.Fatalf("unexpected error closing: %v", err)
	}
	if !closed.AsBool() {
		t.Errorf("expected ws.close to report success")
	}
}

func TestWSSendRejectsNonHandleValue(t *testing.T) {
	if _, err := (wsSendFn{}).Execute([]*value.Value{value.String("not a handle"), value.String("x")}, nil); err == nil {
		t.Fatalf("expected an error for a non-handle first argument")
	}
}

func TestWSOperationsRejectUnknownHandle(t *testing.T) {
	stale := wsHandle(999999)
	if _, err := (wsSendFn{}).Execute([]*value.Value{stale, value.String("x")}, nil); err == nil {
		t.Fatalf("expected an error sending on an unknown handle")
	}
	if _, err := (wsRecvFn{}).Execute([]*value.Value{stale}, nil); err == nil {
		t.Fatalf("expected an error receiving on an unknown handle")
	}
	closed, err := (wsCloseFn{}).Execute([]*value.Value{stale}, nil)
	if err != nil {
		t.Fatalf("ws.close on an unknown handle should not itself error: %v", err)
	}
	if closed.AsBool() {
		t.Errorf("ws.close on an unknown handle should report false, not success")
	}
}

func TestWSConnectRejectsUnreachableURL(t *testing.T) {
	if _, err := (wsConnectFn{}).Execute([]*value.Value{value.String("ws://127.0.0.1:1")}, nil); err == nil {
		t.Fatalf("expected a dial error for an unreachable address")
	}
}

func TestRegisterWebSocketAddsAllFourFunctions(t *testing.T) {
	reg := catalog.NewRegistry()
	RegisterWebSocket(reg)
	for _, name := range []string{"ws.connect", "ws.send", "ws.recv", "ws.close"} {
		if _, ok := reg.Lookup(name); !ok {
			t.Errorf("expected %s to be registered", name)
		}
	}
}
