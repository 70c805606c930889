// Package models defines the wire types exchanged with the panel API.
//
// Server entities that the client only stores and forwards (inbounds,
// outbounds, services, endpoints, clients, TLS configs) are kept as Object
// values: the id and the uniqueness keys (name, tag) are decoded, the rest of
// the document is retained verbatim so it round-trips unchanged. Resources
// with a fixed schema (nodes, node tokens, API keys, webhook config) have
// concrete structs.
//
// Diff is the payload of the load and save endpoints. It records which keys
// were present in the response, because the merge policy distinguishes an
// absent collection (keep) from an explicit empty or null one (clear).
package models
