package cache

import (
	"unicode"
	"unicode/utf8"

	"github.com/skaiser/dgate/lib/provider"
)

// RawModelName is the cache key for results that cannot be traced to a
// provider record.
const RawModelName = "raw"

// TenantCache holds the most recently returned single record and record
// set per derived model name for one tenant.
type TenantCache struct {
	Single map[string]any
	Sets   map[string][]any
}

// RecordCache is the per-connection record store. It is exclusively owned
// by one connection handler and mutated only from that handler's dispatch
// loop, so it needs no locking. Entries are bounded only by the distinct
// (tenant, model) pairs a client touches on one connection; the whole cache
// dies with the connection.
type RecordCache struct {
	tenants map[string]*TenantCache
}

// New creates an empty RecordCache.
func New() *RecordCache {
	return &RecordCache{tenants: make(map[string]*TenantCache)}
}

// Init creates or wipes the cache for a tenant. Every direct provider call
// goes through here before its result is stored, which makes the cache
// overwrite-only: entries from earlier calls never survive a new direct
// call on the same tenant.
func (c *RecordCache) Init(tenant string) {
	c.tenants[tenant] = &TenantCache{
		Single: make(map[string]any),
		Sets:   make(map[string][]any),
	}
}

// PutSingle stores a single record under the tenant's derived model name.
func (c *RecordCache) PutSingle(tenant, modelName string, record any) {
	t, ok := c.tenants[tenant]
	if !ok {
		return
	}
	t.Single[modelName] = record
}

// PutSet stores a record set under the tenant's derived model name.
func (c *RecordCache) PutSet(tenant, modelName string, records []any) {
	t, ok := c.tenants[tenant]
	if !ok {
		return
	}
	t.Sets[modelName] = records
}

// GetSingle returns the stored single record for (tenant, modelName).
func (c *RecordCache) GetSingle(tenant, modelName string) (any, bool) {
	t, ok := c.tenants[tenant]
	if !ok {
		return nil, false
	}
	record, ok := t.Single[modelName]
	return record, ok
}

// GetSet returns the stored record set for (tenant, modelName).
func (c *RecordCache) GetSet(tenant, modelName string) ([]any, bool) {
	t, ok := c.tenants[tenant]
	if !ok {
		return nil, false
	}
	records, ok := t.Sets[modelName]
	return records, ok
}

// --------------------------------------------------------------------------
// Derived model names
// --------------------------------------------------------------------------

// DeriveModelName computes the cache key for a result value from its
// provenance: the record's declared model name with the first character
// lower-cased. Values that are not provider records derive to RawModelName.
// Two record types mapping to the same derived name will overwrite each
// other's slot; model names must be distinct per tenant.
func DeriveModelName(v any) string {
	rec, ok := v.(provider.IRecord)
	if !ok {
		return RawModelName
	}
	name := rec.ModelName()
	if name == "" {
		return RawModelName
	}
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToLower(r)) + name[size:]
}
