// Package statsview serves live runtime statistics (heap, goroutines, GC
// pauses) over HTTP while the emulator runs.
//
// The server is only compiled in when the statsview build tag is present:
//
//	go build -tags statsview
//
// Otherwise Available reports false and Launch does nothing.
//
// Underlying functionality provided by "github.com/go-echarts/statsview".
package statsview
