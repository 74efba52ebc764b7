package stepsource

import "context"

// Source names which counter a resolved step count came from.
type Source string

const (
	SourceProvider Source = "provider"
	SourceLocal    Source = "local"
)

// Result is the outcome of Resolve. Err holds the provider failure when the
// local count was used because the provider could not answer.
type Result struct {
	Steps  int
	Source Source
	Err    error
}

// Resolve asks p for the steps on date and falls back to local on any failure.
// A nil provider always resolves to local.
func Resolve(ctx context.Context, p Provider, date string, local int) Result {
	if p == nil {
		return Result{Steps: local, Source: SourceLocal}
	}
	n, err := p.Steps(ctx, date)
	if err != nil {
		return Result{Steps: local, Source: SourceLocal, Err: err}
	}
	return Result{Steps: n, Source: SourceProvider}
}
