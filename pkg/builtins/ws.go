package builtins

import (
	"errors"
	"sync"

	"github.com/gorilla/websocket"

	"jyro/pkg/catalog"
	"jyro/pkg/value"
)

// connRegistry hands out opaque handles for *websocket.Conn values, since
// the Jyro value model (pkg/value) has no native/opaque variant — a
// connection is represented to scripts as an Object carrying a handle id,
// the same representation pkg/interpreter's lambda support uses for
// closures it cannot store inside a Value (see pkg/interpreter/eval.go).
//
// Grounded on the teacher's WebSocketConnection wrapper
// (pkg/eval/ws_helpers.go), adapted from an inbound http.Upgrade handshake
// (the teacher ran an HTTP server) to an outbound Dial, since Jyro scripts
// run embedded in a host process rather than serving HTTP themselves.
type connRegistry struct {
	mu    sync.Mutex
	conns map[int]*websocket.Conn
	next  int
}

var wsConns = &connRegistry{conns: make(map[int]*websocket.Conn)}

func (r *connRegistry) add(c *websocket.Conn) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.next
	r.next++
	r.conns[id] = c
	return id
}

func (r *connRegistry) get(id int) (*websocket.Conn, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.conns[id]
	return c, ok
}

func (r *connRegistry) remove(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conns, id)
}

const wsHandleKey = "__ws_handle__"

func wsHandle(id int) *value.Value {
	obj := value.NewObject()
	obj.SetProperty(wsHandleKey, value.Number(float64(id)))
	return obj
}

func wsHandleID(v *value.Value) (int, bool) {
	if v.Kind() != value.KindObject || !v.HasProperty(wsHandleKey) {
		return 0, false
	}
	return int(v.Property(wsHandleKey).AsNumber()), true
}

type wsConnectFn struct{}

func (wsConnectFn) Signature() catalog.Signature {
	sig, _ := catalog.NewSignature("ws.connect", catalog.ParamObject,
		catalog.Param{Name: "url", Type: catalog.ParamString})
	return sig
}

func (wsConnectFn) Execute(args []*value.Value, _ *catalog.Context) (*value.Value, error) {
	conn, _, err := websocket.DefaultDialer.Dial(args[0].AsString(), nil)
	if err != nil {
		return nil, errors.New("ws.connect: " + err.Error())
	}
	return wsHandle(wsConns.add(conn)), nil
}

type wsSendFn struct{}

func (wsSendFn) Signature() catalog.Signature {
	sig, _ := catalog.NewSignature("ws.send", catalog.ParamBoolean,
		catalog.Param{Name: "handle", Type: catalog.ParamObject},
		catalog.Param{Name: "message", Type: catalog.ParamString})
	return sig
}

func (wsSendFn) Execute(args []*value.Value, _ *catalog.Context) (*value.Value, error) {
	id, ok := wsHandleID(args[0])
	if !ok {
		return nil, errors.New("ws.send: not a websocket handle")
	}
	conn, ok := wsConns.get(id)
	if !ok {
		return nil, errors.New("ws.send: connection closed or unknown")
	}
	if err := conn.WriteMessage(websocket.TextMessage, []byte(args[1].AsString())); err != nil {
		return nil, errors.New("ws.send: " + err.Error())
	}
	return value.True, nil
}

type wsRecvFn struct{}

func (wsRecvFn) Signature() catalog.Signature {
	sig, _ := catalog.NewSignature("ws.recv", catalog.ParamString,
		catalog.Param{Name: "handle", Type: catalog.ParamObject})
	return sig
}

func (wsRecvFn) Execute(args []*value.Value, _ *catalog.Context) (*value.Value, error) {
	id, ok := wsHandleID(args[0])
	if !ok {
		return nil, errors.New("ws.recv: not a websocket handle")
	}
	conn, ok := wsConns.get(id)
	if !ok {
		return nil, errors.New("ws.recv: connection closed or unknown")
	}
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return nil, errors.New("ws.recv: " + err.Error())
	}
	return value.String(string(msg)), nil
}

type wsCloseFn struct{}

func (wsCloseFn) Signature() catalog.Signature {
	sig, _ := catalog.NewSignature("ws.close", catalog.ParamBoolean,
		catalog.Param{Name: "handle", Type: catalog.ParamObject})
	return sig
}

func (wsCloseFn) Execute(args []*value.Value, _ *catalog.Context) (*value.Value, error) {
	id, ok := wsHandleID(args[0])
	if !ok {
		return nil, errors.New("ws.close: not a websocket handle")
	}
	conn, ok := wsConns.get(id)
	if !ok {
		return value.False, nil
	}
	err := conn.Close()
	wsConns.remove(id)
	if err != nil {
		return nil, errors.New("ws.close: " + err.Error())
	}
	return value.True, nil
}

// RegisterWebSocket adds ws.connect, ws.send, ws.recv and ws.close to reg.
func RegisterWebSocket(reg *catalog.Registry) {
	reg.Register(wsConnectFn{})
	reg.Register(wsSendFn{})
	reg.Register(wsRecvFn{})
	reg.Register(wsCloseFn{})
}
