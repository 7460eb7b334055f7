// Package network holds the transport route adjacency built once from the
// non-zero TransportRoute entries. Route-driven families iterate it instead
// of the full LOCATION x TRANSPORTMODE cross product.
package network
