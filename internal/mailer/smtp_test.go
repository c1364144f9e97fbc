package mailer

import (
	"bufio"
	"context"
	"errors"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	appErrors "bitbucket.org/crgw/booking-notifier/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/wneessen/go-mail"
)

func TestBuildMsg(t *testing.T) {
	t.Run("should build the message", func(t *testing.T) {
		msg, err := buildMsg(Message{
			From:    "noreply@ilanacares.com",
			To:      []string{"parent@example.com"},
			Subject: "Booking Request Confirmation - Ilana Cares",
			Body:    "Dear Dana,",
		})

		assert.NoError(t, err)

		recipients, err := msg.GetRecipients()
		assert.NoError(t, err)
		assert.Equal(t, []string{"parent@example.com"}, recipients)
		assert.Equal(t, []string{"Booking Request Confirmation - Ilana Cares"}, msg.GetGenHeader(mail.HeaderSubject))
	})

	t.Run("should reject invalid addresses", func(t *testing.T) {
		tests := []struct {
			name    string
			message Message
		}{
			{
				name:    "sender",
				message: Message{From: "not an address", To: []string{"parent@example.com"}},
			},
			{
				name:    "recipient",
				message: Message{From: "noreply@ilanacares.com", To: []string{"parent at example"}},
			},
		}

		for _, test := range tests {
			t.Run(test.name, func(t *testing.T) {
				_, err := buildMsg(test.message)
				assert.Error(t, err)
			})
		}
	})
}

func TestNewSMTPSender(t *testing.T) {
	t.Run("should create the sender", func(t *testing.T) {
		sender, err := NewSMTPSender(Options{
			Host:     "smtp.example.com",
			Port:     587,
			Username: "user",
			Password: "secret",
			UseTLS:   true,
		})

		assert.NoError(t, err)
		assert.NotNil(t, sender)
	})

	t.Run("should fail without host", func(t *testing.T) {
		_, err := NewSMTPSender(Options{Port: 587})
		assert.Error(t, err)
	})

	t.Run("should fail on invalid port", func(t *testing.T) {
		_, err := NewSMTPSender(Options{Host: "smtp.example.com", Port: 70000})
		assert.Error(t, err)
	})

	t.Run("should not dial with invalid message", func(t *testing.T) {
		sender, err := NewSMTPSender(Options{Host: "smtp.example.com", Port: 587})
		assert.NoError(t, err)

		err = sender.Send(context.Background(), Message{From: "invalid", To: []string{"parent@example.com"}})
		assert.ErrorContains(t, err, "invalid sender address")
	})
}

// smtpServer accepts plain SMTP sessions and counts delivered messages.
type smtpServer struct {
	listener  net.Listener
	delivered atomic.Int32
}

func newSMTPServer(t *testing.T) *smtpServer {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	assert.NoError(t, err)

	server := &smtpServer{listener: listener}
	go server.serve()
	t.Cleanup(func() { listener.Close() })

	return server
}

func (s *smtpServer) port() int {
	return s.listener.Addr().(*net.TCPAddr).Port
}

func (s *smtpServer) serve() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}
		go s.session(conn)
	}
}

func (s *smtpServer) session(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)
	reply := func(line string) {
		conn.Write([]byte(line + "\r\n"))
	}

	reply("220 localhost ESMTP")
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}

		command := strings.ToUpper(strings.TrimSpace(line))
		switch {
		case strings.HasPrefix(command, "DATA"):
			reply("354 go ahead")
			for {
				data, err := reader.ReadString('\n')
				if err != nil {
					return
				}
				if data == ".\r\n" {
					break
				}
			}
			s.delivered.Add(1)
			reply("250 queued")
		case strings.HasPrefix(command, "QUIT"):
			reply("221 bye")
			return
		default:
			reply("250 ok")
		}
	}
}

func TestSMTPSenderSend(t *testing.T) {
	t.Run("should deliver overlapping sends in separate sessions", func(t *testing.T) {
		server := newSMTPServer(t)

		sender, err := NewSMTPSender(Options{Host: "127.0.0.1", Port: server.port(), Timeout: 5 * time.Second})
		assert.NoError(t, err)

		const sends = 20
		var wg sync.WaitGroup
		errs := make(chan error, sends)

		for i := 0; i < sends; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- sender.Send(context.Background(), Message{
					From:    "noreply@ilanacares.com",
					To:      []string{"provider@example.com"},
					Subject: "New Booking Request",
					Body:    "Booking Details",
				})
			}()
		}

		wg.Wait()
		close(errs)

		for err := range errs {
			assert.NoError(t, err)
		}
		assert.Equal(t, int32(sends), server.delivered.Load())
	})

	t.Run("should report unreachable servers", func(t *testing.T) {
		server := newSMTPServer(t)
		port := server.port()
		server.listener.Close()

		sender, err := NewSMTPSender(Options{Host: "127.0.0.1", Port: port, Timeout: time.Second})
		assert.NoError(t, err)

		err = sender.Send(context.Background(), Message{
			From: "noreply@ilanacares.com",
			To:   []string{"provider@example.com"},
		})
		assert.Error(t, err)
	})
}

func TestUnavailable(t *testing.T) {
	sender := Unavailable{Cause: errors.New("mail server host is empty")}

	err := sender.Send(context.Background(), Message{})

	assert.ErrorIs(t, err, appErrors.ErrorMailerNotAvailable)
	assert.ErrorContains(t, err, "mail server host is empty")
}
