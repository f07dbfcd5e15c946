package models

// SessionState is the lifecycle position of a document session.
//
//	Unstarted -> Started -> SearchSubmitted -> DocumentReady
//	any non-terminal state -> Failed
type SessionState int

const (
	SessionUnstarted SessionState = iota
	SessionStarted
	SessionSearchSubmitted
	SessionDocumentReady
	SessionFailed
)

func (s SessionState) String() string {
	switch s {
	case SessionUnstarted:
		return "unstarted"
	case SessionStarted:
		return "started"
	case SessionSearchSubmitted:
		return "search_submitted"
	case SessionDocumentReady:
		return "document_ready"
	case SessionFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition is possible.
func (s SessionState) Terminal() bool {
	return s == SessionDocumentReady || s == SessionFailed
}
