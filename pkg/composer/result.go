package composer

import "github.com/goliatone/go-fragments/pkg/placeholder"

// TargetKind tells body results from include results.
type TargetKind string

const (
	TargetBody    TargetKind = "body"
	TargetInclude TargetKind = "include"
)

// Result is the outcome of loading one container.
type Result struct {
	Target TargetKind
	// Path is the fragment path as declared (include attribute or body path).
	Path string
	// Location is Path resolved against the page location.
	Location string
	// Err is nil when the fragment was inserted.
	Err error
}

// OK reports whether the fragment was inserted.
func (r Result) OK() bool {
	return r.Err == nil
}

// Report summarises one Compose run.
type Report struct {
	Code     string
	Data     *placeholder.Data
	Includes []Result
	// Body is nil when the page has no body container.
	Body *Result
}

// Failed returns the results that ended with a notice, includes first.
func (r Report) Failed() []Result {
	var out []Result
	for _, res := range r.Includes {
		if !res.OK() {
			out = append(out, res)
		}
	}
	if r.Body != nil && !r.Body.OK() {
		out = append(out, *r.Body)
	}
	return out
}
