//go:build !race && !asan && !msan

package packed

const wideLoads = true
