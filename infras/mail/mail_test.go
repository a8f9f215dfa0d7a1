package mail_test

import (
	"bufio"
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"hotel/config"
	"hotel/infras/mail"
	"hotel/infras/otel/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfig(addr string) *config.Config {
	host, port, _ := net.SplitHostPort(addr)

	cfg := &config.Config{}
	cfg.External.Mail.Enable = true
	cfg.External.Mail.Host = host
	cfg.External.Mail.Port = port
	cfg.External.Mail.From = "reservations@dumiduhotel.lk"
	cfg.External.Mail.TimeoutSeconds = 5

	return cfg
}

// smtpServer answers one session with canned replies and hands back the DATA section.
func smtpServer(t *testing.T, reject string) (string, <-chan string) {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = listener.Close() })

	data := make(chan string, 1)

	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		_ = conn.SetDeadline(time.Now().Add(5 * time.Second))

		reader := bufio.NewReader(conn)
		reply := func(line string) { _, _ = conn.Write([]byte(line + "\r\n")) }

		reply("220 localhost ESMTP")

		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				return
			}

			command := strings.ToUpper(strings.TrimSpace(line))

			switch {
			case reject != "" && strings.HasPrefix(command, reject):
				reply("550 mailbox unavailable")
			case strings.HasPrefix(command, "DATA"):
				reply("354 end with <CR><LF>.<CR><LF>")

				var body strings.Builder

				for {
					dataLine, err := reader.ReadString('\n')
					if err != nil || dataLine == ".\r\n" {
						break
					}

					body.WriteString(dataLine)
				}

				data <- body.String()

				reply("250 queued")
			case strings.HasPrefix(command, "QUIT"):
				reply("221 bye")

				return
			default:
				reply("250 OK")
			}
		}
	}()

	return listener.Addr().String(), data
}

func TestMail_Send(t *testing.T) {
	addr, data := smtpServer(t, "")

	err := mail.New(newConfig(addr), mocks.NewOtel()).Send(context.Background(), mail.Message{
		To:      "guest@example.com",
		ToName:  "Nimal Perera",
		Subject: "Booking Confirmation - Dumidu Hotel",
		Body:    "Dear Nimal,\nSee you soon.",
	})
	require.NoError(t, err)

	var msg string
	select {
	case msg = <-data:
	case <-time.After(time.Second):
		t.Fatal("server received no message")
	}

	headers, body, found := strings.Cut(msg, "\r\n\r\n")
	require.True(t, found)

	assert.Contains(t, headers, "From: <reservations@dumiduhotel.lk>")
	assert.Contains(t, headers, "guest@example.com")
	assert.Contains(t, headers, "Subject: Booking Confirmation - Dumidu Hotel")
	assert.Contains(t, headers, "Date: ")
	assert.Contains(t, body, "Dear Nimal,")
	assert.Contains(t, body, "See you soon.")
}

func TestMail_SendFailure(t *testing.T) {
	addr, _ := smtpServer(t, "RCPT")

	err := mail.New(newConfig(addr), mocks.NewOtel()).Send(context.Background(), mail.Message{To: "guest@example.com", Subject: "x", Body: "y"})

	assert.ErrorContains(t, err, "failed to send mail")
}

func TestMail_SendRejectsBadRecipient(t *testing.T) {
	err := mail.New(newConfig("127.0.0.1:25"), mocks.NewOtel()).Send(context.Background(), mail.Message{To: "not an address", Subject: "x", Body: "y"})

	assert.ErrorContains(t, err, "failed to compose mail")
}

func TestMail_SendStopsAtDeadline(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = listener.Close() })

	accepted := make(chan net.Conn, 1)
	t.Cleanup(func() {
		select {
		case conn := <-accepted:
			_ = conn.Close()
		default:
		}
	})

	// accepts and never greets
	go func() {
		if conn, err := listener.Accept(); err == nil {
			accepted <- conn
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	err = mail.New(newConfig(listener.Addr().String()), mocks.NewOtel()).Send(ctx, mail.Message{To: "guest@example.com", Subject: "x", Body: "y"})

	require.Error(t, err)
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestMail_SendAfterDeadline(t *testing.T) {
	expired, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	err := mail.New(newConfig("127.0.0.1:25"), mocks.NewOtel()).Send(expired, mail.Message{To: "guest@example.com", Subject: "x", Body: "y"})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMail_Enabled(t *testing.T) {
	cfg := newConfig("smtp.example.com:587")
	assert.True(t, mail.New(cfg, mocks.NewOtel()).Enabled())

	cfg.External.Mail.Host = ""
	assert.False(t, mail.New(cfg, mocks.NewOtel()).Enabled())
}
