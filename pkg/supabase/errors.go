package supabase

import "fmt"

// QueryError is returned when a read against PostgREST fails, whether from
// connectivity or from the query itself. Dashboard assemblers treat any
// QueryError as a signal to fall back to fixture data; other callers
// propagate it.
type QueryError struct {
	Table      string
	StatusCode int
	Body       string
	Err        error
}

func (e *QueryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("supabase query on %q failed: %v", e.Table, e.Err)
	}
	return fmt.Sprintf("supabase query on %q failed (status %d): %s", e.Table, e.StatusCode, e.Body)
}

func (e *QueryError) Unwrap() error { return e.Err }

// WriteError is returned when an insert or update fails, including constraint
// violations surfaced by PostgREST. Writes never fall back to fixture data;
// a WriteError always reaches the caller.
type WriteError struct {
	Table      string
	StatusCode int
	Body       string
	Err        error
}

func (e *WriteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("supabase write on %q failed: %v", e.Table, e.Err)
	}
	return fmt.Sprintf("supabase write on %q failed (status %d): %s", e.Table, e.StatusCode, e.Body)
}

func (e *WriteError) Unwrap() error { return e.Err }
