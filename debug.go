//go:build smallptr_debug

package smallptr

const debugChecks = true
