package client

import (
	"fmt"

	"github.com/lni/dragonboat/v4/logger"
	"github.com/skaiser/dgate/rpc/common"
	"github.com/skaiser/dgate/rpc/serializer"
	"github.com/skaiser/dgate/rpc/transport"
)

var (
	Logger = logger.GetLogger("client")
)

// ServerError is an error reported by the gateway inside a response payload,
// as opposed to a transport or serialization failure on the client side. The
// message is the server's error string, verbatim.
type ServerError struct {
	Msg string
}

func (e *ServerError) Error() string {
	return e.Msg
}

// NewGatewayClient creates a new gateway client and connects the transport
//
// Usage:
//
//	c, err := client.NewGatewayClient(
//		config,
//		tcp.NewTCPClientTransport(),
//		serializer.NewJSONSerializer(),
//	)
func NewGatewayClient(
	config common.ClientConfig,
	transport transport.IRPCClientTransport,
	serializer serializer.IRPCSerializer,
) (*GatewayClient, error) {

	// Connect the transport
	if err := transport.Connect(config); err != nil {
		return nil, err
	}

	return &GatewayClient{
		config:     config,
		transport:  transport,
		serializer: serializer,
	}, nil
}

// GatewayClient issues requests against a gateway server over a single
// connection. Calls are strictly sequential; the underlying transport
// serializes concurrent use.
type GatewayClient struct {
	config     common.ClientConfig
	transport  transport.IRPCClientTransport
	serializer serializer.IRPCSerializer
}

// Close closes the underlying transport connection (idempotent)
func (c *GatewayClient) Close() error {
	return c.transport.Close()
}

// Call sends a single request and returns the decoded result. Errors
// reported by the server come back as *ServerError; transport and
// serialization failures as plain errors.
func (c *GatewayClient) Call(target common.ProviderTarget, tenant, model, method string, params ...any) (any, error) {
	req := &common.Request{
		Target: target,
		Tenant: tenant,
		Model:  model,
		Method: method,
		Params: params,
	}

	// Fail fast on requests the server would reject anyway
	if err := req.Validate(); err != nil {
		return nil, err
	}

	reqBytes, err := c.serializer.Serialize(req)
	if err != nil {
		return nil, err
	}

	respBytes, err := c.transport.Send(reqBytes)
	if err != nil {
		return nil, err
	}

	// The response is a bare payload: result, null or {"error": msg}
	var payload any
	if err := c.serializer.Deserialize(respBytes, &payload); err != nil {
		return nil, fmt.Errorf("failed to deserialize response: %v", err)
	}

	resp := common.ResponseFromPayload(payload)
	if resp.Err != "" {
		return nil, &ServerError{Msg: resp.Err}
	}
	return resp.Result, nil
}

// --------------------------------------------------------------------------
// Convenience wrappers, one per provider target
// --------------------------------------------------------------------------

// Relational calls a method on a relational model
func (c *GatewayClient) Relational(tenant, model, method string, params ...any) (any, error) {
	return c.Call(common.TargetRelational, tenant, model, method, params...)
}

// Document calls a method on a document collection
func (c *GatewayClient) Document(tenant, model, method string, params ...any) (any, error) {
	return c.Call(common.TargetDocument, tenant, model, method, params...)
}

// CachedRecord calls a method on a record cached by an earlier direct call
// on this connection; model names the derived cache slot (e.g. "student")
func (c *GatewayClient) CachedRecord(tenant, model, method string, params ...any) (any, error) {
	return c.Call(common.TargetCachedRecord, tenant, model, method, params...)
}

// CachedRecordSet calls a method on a record set cached by an earlier
// direct call on this connection
func (c *GatewayClient) CachedRecordSet(tenant, model, method string, params ...any) (any, error) {
	return c.Call(common.TargetCachedRecordSet, tenant, model, method, params...)
}
