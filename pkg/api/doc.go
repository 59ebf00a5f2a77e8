// Package api defines the canonical wire types shared between the server
// and its clients: the error envelope and the response bodies of the
// fixed endpoints.
//
// This is a leaf package with no internal dependencies, allowing it to be
// imported by any package without creating import cycles.
package api
