//go:build race || asan || msan

package packed

// Memory checkers flag reads outside an object's footprint.
const wideLoads = false
