package client

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/skaiser/dgate/lib/provider/memdoc"
	"github.com/skaiser/dgate/lib/provider/memrel"
	"github.com/skaiser/dgate/lib/provider/schema"
	"github.com/skaiser/dgate/rpc/common"
	"github.com/skaiser/dgate/rpc/serializer"
	"github.com/skaiser/dgate/rpc/server"
	"github.com/skaiser/dgate/rpc/transport"
	"github.com/skaiser/dgate/rpc/transport/tcp"
)

func startGateway(t *testing.T) string {
	t.Helper()

	s := &schema.Schema{
		Models: []schema.Model{
			{
				Name: "Student",
				Associations: []schema.Association{
					{Name: "parents", Model: "Parent", ForeignKey: "student_id", Kind: schema.AssocHasMany},
				},
			},
			{Name: "Parent"},
		},
	}
	rel, err := memrel.New(s)
	if err != nil {
		t.Fatalf("memrel.New failed: %v", err)
	}
	if err := rel.Seed("Student", []map[string]any{{"id": 5, "name": "Ada"}}); err != nil {
		t.Fatal(err)
	}
	if err := rel.Seed("Parent", []map[string]any{
		{"id": 1, "name": "Grace", "student_id": 5},
		{"id": 2, "name": "Alan", "student_id": 5},
	}); err != nil {
		t.Fatal(err)
	}

	doc := memdoc.New()
	doc.Seed("notes", []map[string]any{{"title": "first"}})

	config := common.DefaultServerConfig()
	config.Transport.Endpoint = "127.0.0.1:0"
	config.IdleTimeoutMillis = 0
	config.LogLevel = "error"

	srv := server.NewGatewayServer(config, rel, doc, tcp.NewTCPServerTransport(), serializer.NewJSONSerializer())

	ready := make(chan struct{})
	srv.Subscribe(func(e transport.Event) {
		if e.Type == transport.EventListening {
			close(ready)
		}
	})

	go func() { _ = srv.Serve() }()

	select {
	case <-ready:
	case <-time.After(2 * time.Second):
		t.Fatal("gateway did not start")
	}

	t.Cleanup(func() { srv.Close() })
	return srv.Addr().String()
}

func newTestClient(t *testing.T, addr string) *GatewayClient {
	t.Helper()
	c, err := NewGatewayClient(
		common.ClientConfig{
			Transport:     common.ClientTransportConfig{Endpoint: addr},
			TimeoutSecond: 2,
		},
		tcp.NewTCPClientTransport(),
		serializer.NewJSONSerializer(),
	)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestEndToEndRelationalFlow(t *testing.T) {
	addr := startGateway(t)
	c := newTestClient(t, addr)

	// Direct call returns the normalized record and caches it
	res, err := c.Relational("t1", "Student", "findById", 5)
	if err != nil {
		t.Fatalf("findById failed: %v", err)
	}
	attrs, ok := res.(map[string]any)
	if !ok {
		t.Fatalf("expected attribute map, got %T", res)
	}
	if attrs["name"] != "Ada" {
		t.Errorf("expected Ada, got %v", attrs["name"])
	}

	// Follow-up method call on the cached record
	res, err = c.CachedRecord("t1", "student", "get", "name")
	if err != nil {
		t.Fatalf("cached get failed: %v", err)
	}
	if res != "Ada" {
		t.Errorf("expected Ada, got %v", res)
	}

	// Direct call returning a set, then set methods on the cached set
	if _, err := c.Relational("t1", "Parent", "where", "student_id", 5); err != nil {
		t.Fatalf("where failed: %v", err)
	}
	res, err = c.CachedRecordSet("t1", "parent", "length")
	if err != nil {
		t.Fatalf("length failed: %v", err)
	}
	if res != float64(2) {
		t.Errorf("expected length 2, got %v", res)
	}
}

func TestEndToEndDocumentFlow(t *testing.T) {
	addr := startGateway(t)
	c := newTestClient(t, addr)

	res, err := c.Document("t1", "notes", "first")
	if err != nil {
		t.Fatalf("first failed: %v", err)
	}
	fields, ok := res.(map[string]any)
	if !ok {
		t.Fatalf("expected projected document, got %T", res)
	}
	if fields["title"] != "first" {
		t.Errorf("expected title first, got %v", fields["title"])
	}
}

func TestNullResultsPassThrough(t *testing.T) {
	addr := startGateway(t)
	c := newTestClient(t, addr)

	res, err := c.Relational("t1", "Student", "findById", 999)
	if err != nil {
		t.Fatalf("findById failed: %v", err)
	}
	if res != nil {
		t.Errorf("expected nil result for missing record, got %v", res)
	}
}

func TestServerErrorsAreServerErrors(t *testing.T) {
	addr := startGateway(t)
	c := newTestClient(t, addr)

	_, err := c.Relational("t1", "Nope", "all")
	if err == nil {
		t.Fatal("expected error for unknown model")
	}
	var serverErr *ServerError
	if !errors.As(err, &serverErr) {
		t.Fatalf("expected *ServerError, got %T", err)
	}
}

func TestClientValidatesBeforeSending(t *testing.T) {
	addr := startGateway(t)
	c := newTestClient(t, addr)

	if _, err := c.Call(common.TargetUnknown, "t1", "Student", "all"); !errors.Is(err, common.ErrSignatureMismatch) {
		t.Errorf("expected signature mismatch, got %v", err)
	}
	if _, err := c.Relational("", "Student", "all"); !errors.Is(err, common.ErrSignatureMismatch) {
		t.Errorf("expected signature mismatch, got %v", err)
	}
}

func TestMalformedMessageKeepsConnectionUsable(t *testing.T) {
	addr := startGateway(t)

	raw := tcp.NewTCPClientTransport()
	config := common.ClientConfig{
		Transport:     common.ClientTransportConfig{Endpoint: addr},
		TimeoutSecond: 2,
	}
	if err := raw.Connect(config); err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	defer raw.Close()

	// Garbage is answered with the protocol error, not a dropped connection
	resp, err := raw.Send([]byte("this is not json"))
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(resp, &payload); err != nil {
		t.Fatalf("response not json: %v", err)
	}
	if payload["error"] != common.ErrSignatureMismatch.Error() {
		t.Errorf("expected signature mismatch, got %v", payload)
	}

	// The same connection still serves valid requests
	resp, err = raw.Send([]byte(`{"db":"Relational","tenant":"t1","model":"Student","method":"findById","params":[5]}`))
	if err != nil {
		t.Fatalf("send after garbage failed: %v", err)
	}
	var result map[string]any
	if err := json.Unmarshal(resp, &result); err != nil {
		t.Fatalf("result not json: %v", err)
	}
	if result["name"] != "Ada" {
		t.Errorf("expected Ada, got %v", result)
	}
}
