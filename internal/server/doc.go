// Package server exposes a channel registration to a host runtime over the
// Model Context Protocol.
//
// Every capability on the channel becomes an MCP tool of the same name. The
// invoke_method tool accepts any method name, so hosts can send calls the
// channel does not implement and receive the notImplemented envelope.
//
// Tool results carry the channel codec's result envelope as text content:
//
//	{"status":"success","value":"Linux #1 SMP ..."}
//	{"status":"notImplemented"}
//	{"status":"error","code":"invalid_argument","message":"..."}
//
// Only the error envelope is flagged as an MCP tool error.
package server
