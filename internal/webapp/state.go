package webapp

// ViewState tells a template whether a figure's data arrived
type ViewState int

const (
	ViewLoading ViewState = iota
	ViewReady
	ViewFailed
)

// View wraps one piece of page data with its fetch outcome, so a page can
// render the figures that loaded and show a notice for the ones that
// failed.
type View[T any] struct {
	State ViewState
	Data  T
	Err   error
}

// Ready wraps successfully fetched data
func Ready[T any](data T) View[T] {
	return View[T]{State: ViewReady, Data: data}
}

// Failed wraps a fetch error
func Failed[T any](err error) View[T] {
	return View[T]{State: ViewFailed, Err: err}
}

// OK reports whether the data arrived
func (v View[T]) OK() bool {
	return v.State == ViewReady
}
