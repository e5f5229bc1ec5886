package screens

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-client/internal/api"
	"github.com/robalobadob/wordle/apps/go-client/internal/session"
)

// Messages shown by the auth screens.
const (
	MsgLoginFailed    = "invalid credentials or server error"
	MsgRegisterFailed = "could not register user"
	MsgRegistered     = "user registered successfully, you can log in now"
)

// Login is the login screen.
type Login struct {
	inflight
	sess *session.Session

	Username string
	Password string
	Error    string
}

func NewLogin(sess *session.Session) *Login { return &Login{sess: sess} }

// Submit logs in with the current fields.
func (l *Login) Submit(ctx context.Context) error {
	if err := l.begin(); err != nil {
		return err
	}
	defer l.end()

	if err := l.sess.Login(ctx, l.Username, l.Password); err != nil {
		l.Error = MsgLoginFailed
		var apiErr *api.Error
		if !errors.As(err, &apiErr) {
			// network errors show their own text
			l.Error = messageFor(err)
		}
		return err
	}
	l.Error = ""
	l.Password = ""
	return nil
}

// Register is the account creation screen.
type Register struct {
	inflight
	client *api.Client

	Username string
	Password string
	Error    string
	Notice   string
}

func NewRegister(client *api.Client) *Register { return &Register{client: client} }

// Submit validates locally, then creates the account.
func (r *Register) Submit(ctx context.Context) error {
	if len(r.Username) < MinCredentialLength || len(r.Password) < MinCredentialLength {
		r.Error = ErrTooShort.Error()
		return ErrTooShort
	}
	if err := r.begin(); err != nil {
		return err
	}
	defer r.end()

	if _, err := r.client.Register(ctx, r.Username, r.Password); err != nil {
		log.Warn().Err(err).Str("username", r.Username).Msg("register")
		r.Error = MsgRegisterFailed
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			r.Error = apiErr.Message
		}
		return err
	}
	r.Error = ""
	r.Notice = MsgRegistered
	return nil
}
