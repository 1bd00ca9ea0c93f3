// Package console implements an interactive terminal client for a channel
// registration. Calls are typed as `method [json-arguments]`, e.g.
//
//	getPlatformVersion
//	echo {"text": "hi"}
//
// Results are listed newest last. ctrl+y copies the last result to the
// clipboard; esc or ctrl+c quits.
package console
