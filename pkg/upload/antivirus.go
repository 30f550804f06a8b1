package upload

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"time"
)

// ErrInfected is returned when clamd reports a signature match.
var ErrInfected = errors.New("upload: file flagged by malware scanner")

// ClamAVScanner streams files to a clamd daemon with zINSTREAM.
type ClamAVScanner struct {
	network string
	address string
	timeout time.Duration
}

// NewClamAVScanner accepts "host:port" or an absolute unix socket path.
func NewClamAVScanner(address string, timeout time.Duration) *ClamAVScanner {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	network := "tcp"
	if strings.HasPrefix(address, "/") {
		network = "unix"
	}
	return &ClamAVScanner{network: network, address: address, timeout: timeout}
}

func (c *ClamAVScanner) dial(ctx context.Context) (net.Conn, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(ctx, c.network, c.address)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to clamd: %w", err)
	}
	deadline := time.Now().Add(c.timeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(deadline) {
		deadline = dl
	}
	_ = conn.SetDeadline(deadline)
	return conn, nil
}

// Ping reports whether clamd answers PONG.
func (c *ClamAVScanner) Ping(ctx context.Context) error {
	conn, err := c.dial(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.Write([]byte("zPING\x00")); err != nil {
		return fmt.Errorf("failed to send PING: %w", err)
	}
	reply, err := readReply(conn)
	if err != nil {
		return err
	}
	if reply != "PONG" {
		return fmt.Errorf("unexpected clamd reply %q", reply)
	}
	return nil
}

// Scan fails closed: any transport or scanner error is returned and the
// caller must reject the file.
func (c *ClamAVScanner) Scan(ctx context.Context, data []byte) error {
	conn, err := c.dial(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.Write([]byte("zINSTREAM\x00")); err != nil {
		return fmt.Errorf("failed to send INSTREAM: %w", err)
	}

	size := make([]byte, 4)
	binary.BigEndian.PutUint32(size, uint32(len(data)))
	if _, err := conn.Write(size); err != nil {
		return fmt.Errorf("failed to send chunk size: %w", err)
	}
	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("failed to send file data: %w", err)
	}
	// zero-length chunk ends the stream
	if _, err := conn.Write([]byte{0, 0, 0, 0}); err != nil {
		return fmt.Errorf("failed to send end marker: %w", err)
	}

	reply, err := readReply(conn)
	if err != nil {
		return err
	}

	// "stream: OK", "stream: Eicar-Signature FOUND" or "... ERROR"
	switch {
	case strings.HasSuffix(reply, "FOUND"):
		threat := strings.TrimSuffix(strings.TrimSpace(strings.TrimPrefix(reply, "stream:")), " FOUND")
		return fmt.Errorf("%w: %s", ErrInfected, threat)
	case strings.HasSuffix(reply, "ERROR"):
		return fmt.Errorf("clamd scan error: %s", reply)
	case strings.HasSuffix(reply, "OK"):
		return nil
	default:
		return fmt.Errorf("unexpected clamd reply %q", reply)
	}
}

func readReply(conn net.Conn) (string, error) {
	buf := make([]byte, 1024)
	n, err := conn.Read(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read clamd reply: %w", err)
	}
	return strings.TrimSpace(strings.TrimRight(string(buf[:n]), "\x00")), nil
}
