// Package cache implements the per-connection record cache of the gateway
// protocol. After a direct provider call the server stores the returned
// record (or record set) under a derived model name, so that follow-up
// requests on the same connection can invoke methods on those records
// without re-fetching them.
//
// The cache is partitioned by tenant. A direct provider call wipes and
// reinitializes its tenant's partition before the new result is stored;
// cached-record calls only read. The cache is owned by exactly one
// connection handler, is never shared across connections, and is discarded
// when the connection closes.
//
// There is deliberately no expiry and no size bound: growth is limited by
// the distinct (tenant, model) pairs one client touches on one connection,
// which is client behavior, not a server policy. Deployments that accept
// connections from untrusted clients should bound tenant counts upstream.
package cache
