package server

import (
	"context"
	"fmt"
	"time"

	"github.com/skaiser/dgate/lib/provider"
	"github.com/skaiser/dgate/rpc/cache"
	"github.com/skaiser/dgate/rpc/common"
)

// Dispatcher resolves requests against the two configured providers and the
// record cache of the issuing connection. It implements IDispatcher and
// carries no per-connection state itself, so a single instance serves all
// connections.
type Dispatcher struct {
	relational provider.IProvider
	document   provider.IProvider
}

// NewDispatcher creates a dispatcher for the given providers. Either
// provider may be nil; requests targeting a missing provider fail with an
// error response.
func NewDispatcher(relational, document provider.IProvider) *Dispatcher {
	return &Dispatcher{
		relational: relational,
		document:   document,
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see server.IDispatcher)
// --------------------------------------------------------------------------

func (d *Dispatcher) Dispatch(ctx context.Context, req *common.Request, rc *cache.RecordCache) *common.Response {
	if req == nil {
		return common.NewErrorResponse(common.ErrSignatureMismatch)
	}

	start := time.Now()
	resp := d.dispatch(ctx, req, rc)
	observeRequest(req.Target, time.Since(start), resp.Err != "")

	return resp
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// dispatch runs the full request pipeline: validate, resolve the invocation
// target, invoke, cache (direct calls only) and normalize.
func (d *Dispatcher) dispatch(ctx context.Context, req *common.Request, rc *cache.RecordCache) *common.Response {
	if err := req.Validate(); err != nil {
		return common.NewErrorResponse(err)
	}

	target, direct, err := d.resolve(req, rc)
	if err != nil {
		return common.NewErrorResponse(err)
	}

	result, err := invoke(ctx, target, req.Method, req.Params).Await(ctx)

	// Failed calls leave the cache untouched, both for sync and async errors
	if err != nil {
		Logger.Debugf("Method %q on %s/%s failed: %v", req.Method, req.Target, req.Model, err)
		return common.NewErrorResponse(err)
	}

	if direct {
		storeResult(rc, req.Tenant, result)
	}

	return common.NewResultResponse(Normalize(result))
}

// resolve maps the request target to a concrete invokable. The second
// return value reports whether this is a direct provider call, which is the
// only kind that repopulates the cache.
func (d *Dispatcher) resolve(req *common.Request, rc *cache.RecordCache) (provider.IInvokable, bool, error) {
	switch req.Target {

	// Case direct call: wipe the tenant's cache, then resolve the model
	case common.TargetRelational, common.TargetDocument:
		p := d.relational
		if req.Target == common.TargetDocument {
			p = d.document
		}
		if p == nil {
			return nil, false, fmt.Errorf("no %s provider configured", req.Target)
		}

		// The wipe happens before model resolution, so even a failing
		// direct call clears stale records
		rc.Init(req.Tenant)

		handle, err := p.Model(req.Model)
		if err != nil {
			return nil, false, err
		}
		return handle, true, nil

	// Case cached record: the model field names the derived cache slot
	case common.TargetCachedRecord:
		v, ok := rc.GetSingle(req.Tenant, req.Model)
		if !ok {
			cacheMissesTotal.Inc()
			return nil, false, fmt.Errorf("no cached record %q for tenant %q", req.Model, req.Tenant)
		}
		cacheHitsTotal.Inc()

		inv, ok := v.(provider.IInvokable)
		if !ok {
			return nil, false, fmt.Errorf("cached record %q is not invokable", req.Model)
		}
		return inv, false, nil

	// Case cached record set: wrap the slot in the set view
	case common.TargetCachedRecordSet:
		set, ok := rc.GetSet(req.Tenant, req.Model)
		if !ok {
			cacheMissesTotal.Inc()
			return nil, false, fmt.Errorf("no cached record set %q for tenant %q", req.Model, req.Tenant)
		}
		cacheHitsTotal.Inc()
		return newRecordSet(set), false, nil

	default:
		return nil, false, common.ErrSignatureMismatch
	}
}

// invoke shields the dispatcher from panicking provider implementations
func invoke(ctx context.Context, target provider.IInvokable, method string, args []any) (o provider.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			o = provider.Failf("method %q panicked: %v", method, r)
		}
	}()
	return target.Invoke(ctx, method, args)
}

// storeResult caches a successful direct-call result under its derived
// model name. Lists land in the set slot, everything else (nil included) in
// the single-record slot.
func storeResult(rc *cache.RecordCache, tenant string, result any) {
	switch res := result.(type) {
	case []provider.IRecord:
		name := cache.RawModelName
		if len(res) > 0 {
			name = cache.DeriveModelName(res[0])
		}
		set := make([]any, len(res))
		for i, r := range res {
			set[i] = r
		}
		rc.PutSet(tenant, name, set)

	case []any:
		name := cache.RawModelName
		if len(res) > 0 {
			name = cache.DeriveModelName(res[0])
		}
		rc.PutSet(tenant, name, res)

	default:
		rc.PutSingle(tenant, cache.DeriveModelName(result), result)
	}
}
