// Package form holds the modal editors for products and users. A form is
// either closed or open on a working copy; it validates locally and hands
// a payload to its owner without calling the remote service itself.
package form

type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}
