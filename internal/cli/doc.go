// Package cli is a client for channels served over the SSE transport. The
// call command uses it when --endpoint is given.
package cli
