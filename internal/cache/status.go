package cache

// Status is the lifecycle state of a query as seen by a reader.
type Status int

const (
	// Idle means nothing was requested, or the query is disabled.
	Idle Status = iota
	Loading
	// LoadingMore is a next page request while earlier pages are shown.
	LoadingMore
	Error
	Success
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case LoadingMore:
		return "loadingMore"
	case Error:
		return "error"
	case Success:
		return "success"
	default:
		return "idle"
	}
}
