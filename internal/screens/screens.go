// Package screens holds one controller per screen of the client: the state a
// screen shows and the actions it can trigger. Controllers are owned by a
// single goroutine (the front end's event loop) and do no locking.
package screens

import (
	"errors"

	"github.com/robalobadob/wordle/apps/go-client/internal/api"
)

var (
	// ErrBusy is returned when an action starts while another request from
	// the same screen is still outstanding.
	ErrBusy = errors.New("request already in progress")
	// ErrTooShort rejects registration input locally.
	ErrTooShort = errors.New("username and password must have at least 3 characters")
)

// MinCredentialLength is the shortest accepted username or password.
const MinCredentialLength = 3

// inflight is the loading flag shared by every controller.
type inflight struct{ on bool }

func (f *inflight) begin() error {
	if f.on {
		return ErrBusy
	}
	f.on = true
	return nil
}

func (f *inflight) end() { f.on = false }

// Busy reports whether a request is outstanding.
func (f *inflight) Busy() bool { return f.on }

// messageFor turns an error into the text shown to the player.
func messageFor(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
