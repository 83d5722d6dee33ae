package mpv

import (
	"bufio"
	"encoding/json"
	"net"
	"path/filepath"
	"sync"
	"testing"
)

// fakePlayer is an in-process stand-in for the player's IPC server. It
// answers get_property from a property table and records every other
// command it receives.
type fakePlayer struct {
	t    *testing.T
	ln   net.Listener
	path string

	mu       sync.Mutex
	props    map[string]any
	broken   map[string]string // property name -> error token
	rawReply string            // when set, sent verbatim for any get_property
	silent   bool              // when set, never reply
	commands [][]string
	conns    []net.Conn
}

func newFakePlayer(t *testing.T) *fakePlayer {
	t.Helper()

	path := filepath.Join(t.TempDir(), "player.sock")
	ln, err := net.Listen("unix", path)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	f := &fakePlayer{
		t:    t,
		ln:   ln,
		path: path,
		props: map[string]any{
			"time-pos":    12.5,
			"duration":    180.0,
			"pause":       false,
			"volume":      55.0,
			"eof-reached": false,
		},
		broken: map[string]string{},
	}
	go f.serve()
	t.Cleanup(func() { f.close() })
	return f
}

func (f *fakePlayer) serve() {
	for {
		conn, err := f.ln.Accept()
		if err != nil {
			return
		}
		f.mu.Lock()
		f.conns = append(f.conns, conn)
		f.mu.Unlock()
		go f.handle(conn)
	}
}

func (f *fakePlayer) handle(conn net.Conn) {
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		var cmd struct {
			Command []string `json:"command"`
		}
		if err := json.Unmarshal(scanner.Bytes(), &cmd); err != nil {
			continue
		}

		f.mu.Lock()
		f.commands = append(f.commands, cmd.Command)
		silent := f.silent
		raw := f.rawReply
		f.mu.Unlock()

		if len(cmd.Command) == 2 && cmd.Command[0] == "get_property" {
			if silent {
				continue
			}
			if raw != "" {
				_, _ = conn.Write([]byte(raw + "\n"))
				continue
			}
			f.reply(conn, cmd.Command[1])
		}
	}
}

func (f *fakePlayer) reply(conn net.Conn, name string) {
	f.mu.Lock()
	errToken, bad := f.broken[name]
	val := f.props[name]
	f.mu.Unlock()

	resp := map[string]any{"data": val, "error": "success"}
	if bad {
		resp = map[string]any{"data": nil, "error": errToken}
	}
	payload, _ := json.Marshal(resp)
	_, _ = conn.Write(append(payload, '\n'))
}

func (f *fakePlayer) setProp(name string, v any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.props[name] = v
}

func (f *fakePlayer) breakProp(name, errToken string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.broken[name] = errToken
}

func (f *fakePlayer) setRawReply(raw string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rawReply = raw
}

func (f *fakePlayer) setSilent(silent bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.silent = silent
}

func (f *fakePlayer) receivedCommands() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]string, len(f.commands))
	copy(out, f.commands)
	return out
}

func (f *fakePlayer) dropConnections() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.conns {
		_ = c.Close()
	}
	f.conns = nil
}

func (f *fakePlayer) close() {
	_ = f.ln.Close()
	f.dropConnections()
}
