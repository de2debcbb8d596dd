// Package progress reports optimizer activity to a caller-supplied
// sink. The controller never assumes a particular presentation —
// a GUI, a CLI spinner, or a log stream can all implement ProgressSink
// — and pays nothing extra when the caller hands it progress.NoopSink{}.
package progress
