// Package mpv drives an mpv subprocess over its JSON IPC socket.
package mpv

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/strumcli/strum/internal/errors"
)

// DefaultIPCTimeout bounds each read or write on the control socket so one
// stalled exchange cannot freeze the control loop.
const DefaultIPCTimeout = 100 * time.Millisecond

// Client is a synchronous request/response channel to an already-running
// mpv process. Responses carry no request id, so only one command may be in
// flight per connection; callers serialize their own property reads.
type Client struct {
	conn    net.Conn
	reader  *bufio.Reader
	timeout time.Duration
}

type command struct {
	Command []string `json:"command"`
}

type response struct {
	Data  any    `json:"data"`
	Error string `json:"error"`
}

// Dial connects to the IPC socket at path.
func Dial(path string, timeout time.Duration) (*Client, error) {
	if timeout <= 0 {
		timeout = DefaultIPCTimeout
	}
	conn, err := net.DialTimeout("unix", path, timeout)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrConnectionFailed, err)
	}
	return &Client{
		conn:    conn,
		reader:  bufio.NewReader(conn),
		timeout: timeout,
	}, nil
}

// SendCommand serializes tokens as a newline-terminated JSON command object
// and writes it in a single write. No response is read.
func (c *Client) SendCommand(tokens ...string) error {
	payload, err := json.Marshal(command{Command: tokens})
	if err != nil {
		return err
	}
	payload = append(payload, '\n')

	if err := c.conn.SetWriteDeadline(time.Now().Add(c.timeout)); err != nil {
		return err
	}
	if _, err := c.conn.Write(payload); err != nil {
		return err
	}
	return nil
}

// GetProperty issues a get_property command and reads exactly one
// newline-terminated response. The returned value is the response's data
// field.
func (c *Client) GetProperty(name string) (any, error) {
	if err := c.SendCommand("get_property", name); err != nil {
		return nil, err
	}

	if err := c.conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
		return nil, err
	}
	line, err := c.reader.ReadString('\n')
	if err != nil {
		if os.IsTimeout(err) {
			return nil, fmt.Errorf("%w: %s", errors.ErrTimeout, name)
		}
		return nil, err
	}

	var resp response
	if err := json.Unmarshal([]byte(line), &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrProtocol, err)
	}

	if resp.Error != "success" {
		return nil, fmt.Errorf("%w: %s (%s)", errors.ErrPropertyUnavailable, name, resp.Error)
	}

	return resp.Data, nil
}

// GetFloat reads a numeric property.
func (c *Client) GetFloat(name string) (float64, error) {
	v, err := c.GetProperty(name)
	if err != nil {
		return 0, err
	}
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("%w: %s is not a number", errors.ErrProtocol, name)
	}
	return f, nil
}

// GetBool reads a boolean property.
func (c *Client) GetBool(name string) (bool, error) {
	v, err := c.GetProperty(name)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %s is not a boolean", errors.ErrProtocol, name)
	}
	return b, nil
}

// Close closes the socket connection.
func (c *Client) Close() error {
	return c.conn.Close()
}
