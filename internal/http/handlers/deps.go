package handlers

import (
	"time"

	"crudadmin/internal/shell"
)

type Deps struct {
	ShellHandler   *ShellHandler
	ProductHandler *ProductHandler
	UserHandler    *UserHandler
}

// NewDeps wires the page handlers over one session store. grace is how long
// a page render waits for a list's initial fetch before showing the loading
// page.
func NewDeps(sessions *shell.Store, grace time.Duration) *Deps {
	return &Deps{
		ShellHandler:   &ShellHandler{Sessions: sessions},
		ProductHandler: &ProductHandler{Sessions: sessions, Grace: grace},
		UserHandler:    &UserHandler{Sessions: sessions, Grace: grace},
	}
}

// settled waits up to grace for the initial fetch.
func settled(ready <-chan struct{}, grace time.Duration) bool {
	select {
	case <-ready:
		return true
	default:
	}
	if grace <= 0 {
		return false
	}
	t := time.NewTimer(grace)
	defer t.Stop()
	select {
	case <-ready:
		return true
	case <-t.C:
		return false
	}
}
