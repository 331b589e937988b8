package mailer

import (
	"errors"
	"net"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oakmund/dirtrail/config"
)

func TestSendRejectsMalformedRecipientBeforeDialing(t *testing.T) {
	// A relay that cannot exist: if parsing did not short-circuit, the test
	// would fail on a connection error instead of ErrInvalidRecipient.
	m := New(config.SMTP{Host: "relay.invalid", Port: 587})

	for _, recipient := range []string{"", "not-an-address", "a@b@c"} {
		err := m.Send(recipient, "report.txt")
		require.ErrorIs(t, err, ErrInvalidRecipient, "recipient %q", recipient)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"bad credentials", &textproto.Error{Code: 535, Msg: "5.7.8 authentication failed"}, ErrAuth},
		{"auth required", &textproto.Error{Code: 530, Msg: "5.7.0 must issue STARTTLS"}, ErrAuth},
		{"rejected mailbox", &textproto.Error{Code: 550, Msg: "5.1.1 no such user"}, ErrInvalidRecipient},
		{"dial failure", &net.OpError{Op: "dial", Err: errors.New("connection refused")}, ErrNetwork},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, classify(tc.in), tc.want)
		})
	}
}

func TestClassifyPassesThroughUnknownErrors(t *testing.T) {
	in := errors.New("disk on fire")
	out := classify(in)
	require.NotErrorIs(t, out, ErrAuth)
	require.NotErrorIs(t, out, ErrNetwork)
	require.NotErrorIs(t, out, ErrInvalidRecipient)
	require.Equal(t, in, out)
}
