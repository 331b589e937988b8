package mailer

import (
	"errors"
	"fmt"
	"net"
	"net/mail"
	"net/textproto"
	"path/filepath"

	"gopkg.in/gomail.v2"

	"github.com/oakmund/dirtrail/config"
)

var (
	ErrInvalidRecipient = errors.New("invalid recipient address")
	ErrAuth             = errors.New("relay rejected credentials")
	ErrNetwork          = errors.New("relay unreachable")
)

// Sender delivers a report to a recipient.
type Sender interface {
	Send(recipient, attachmentPath string) error
}

type Mailer struct {
	cfg config.SMTP
}

var _ Sender = (*Mailer)(nil)

func New(cfg config.SMTP) *Mailer {
	return &Mailer{cfg: cfg}
}

// Send attaches the file at attachmentPath and delivers it through the
// configured relay. The recipient is parsed before any connection is opened,
// so a malformed address never costs a dial.
func (m *Mailer) Send(recipient, attachmentPath string) error {
	addr, err := mail.ParseAddress(recipient)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidRecipient, recipient)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", addr.Address)
	msg.SetHeader("Subject", m.cfg.Subject)
	msg.SetBody("text/plain", m.cfg.Body)
	msg.Attach(attachmentPath, gomail.Rename(filepath.Base(attachmentPath)))

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	if err := d.DialAndSend(msg); err != nil {
		return classify(err)
	}
	return nil
}

// classify maps transport failures onto the package's sentinel errors so the
// pipeline can report them without knowing SMTP reply codes.
func classify(err error) error {
	var tpErr *textproto.Error
	if errors.As(err, &tpErr) {
		switch tpErr.Code {
		case 530, 534, 535:
			return fmt.Errorf("%w: %v", ErrAuth, err)
		case 501, 550, 551, 553:
			return fmt.Errorf("%w: %v", ErrInvalidRecipient, err)
		}
		return err
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	return err
}
