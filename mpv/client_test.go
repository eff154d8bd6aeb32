package mpv

import (
	"bufio"
	"encoding/json"
	"errors"
	"net"
	"path/filepath"
	"sync"
	"testing"
)

// fakeMpv answers JSON IPC requests on a unix socket. Every request is
// recorded; get_property answers come from props.
type fakeMpv struct {
	mu       sync.Mutex
	props    map[string]interface{}
	commands [][]interface{}
}

func startFakeMpv(t *testing.T, props map[string]interface{}) (*fakeMpv, string) {
	t.Helper()
	sock := filepath.Join(t.TempDir(), "mpv.sock")
	ln, err := net.Listen("unix", sock)
	if err != nil {
		t.Skipf("unix sockets unavailable: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	f := &fakeMpv{props: props}
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		f.serve(conn)
	}()
	return f, sock
}

func (f *fakeMpv) serve(conn net.Conn) {
	r := bufio.NewReader(conn)
	enc := json.NewEncoder(conn)
	for {
		line, err := r.ReadBytes('\n')
		if err != nil {
			return
		}
		var req ipcRequest
		if err := json.Unmarshal(line, &req); err != nil {
			return
		}

		f.mu.Lock()
		f.commands = append(f.commands, req.Command)
		resp := ipcResponse{RequestID: req.RequestID, Error: "success"}
		if req.Command[0] == "get_property" {
			v, ok := f.props[req.Command[1].(string)]
			if ok {
				resp.Data = v
			} else {
				resp.Error = "property unavailable"
			}
		}
		f.mu.Unlock()

		// An unrelated event first, as mpv interleaves them with replies.
		enc.Encode(map[string]string{"event": "playback-restart"})
		enc.Encode(resp)
	}
}

func (f *fakeMpv) names() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.commands))
	for _, c := range f.commands {
		name := c[0].(string)
		if len(c) > 1 {
			if s, ok := c[1].(string); ok {
				name += " " + s
			}
		}
		out = append(out, name)
	}
	return out
}

func TestClient_Properties(t *testing.T) {
	_, sock := startFakeMpv(t, map[string]interface{}{
		"time-pos": 2.5,
		"duration": 60.0,
		"path":     "/media/a.mov",
	})
	c := NewClient(sock)
	if err := c.Connect(); err != nil {
		t.Fatalf("Connect error = %v", err)
	}
	defer c.Close()

	if pos, err := c.GetTimePos(); err != nil || pos != 2.5 {
		t.Fatalf("GetTimePos = %v, %v", pos, err)
	}
	if frame, err := c.PlayheadFrame(24); err != nil || frame != 60 {
		t.Fatalf("PlayheadFrame = %v, %v", frame, err)
	}
	if path, err := c.GetPath(); err != nil || path != "/media/a.mov" {
		t.Fatalf("GetPath = %q, %v", path, err)
	}
	if _, err := c.GetProperty("chapter"); err == nil {
		t.Fatal("unavailable property expected error")
	}
}

func TestClient_PreviewRange(t *testing.T) {
	f, sock := startFakeMpv(t, nil)
	c := NewClient(sock)
	if err := c.Connect(); err != nil {
		t.Fatalf("Connect error = %v", err)
	}
	defer c.Close()

	if err := c.PreviewRange(48, 96, 24, "01_intro"); err != nil {
		t.Fatalf("PreviewRange error = %v", err)
	}
	want := []string{
		"set_property ab-loop-a",
		"set_property ab-loop-b",
		"seek",
		"set_property pause",
		"show-text 01_intro",
	}
	got := f.names()
	if len(got) != len(want) {
		t.Fatalf("commands = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("command %d = %q, want %q", i, got[i], want[i])
		}
	}

	if err := c.SetABLoop(5, 5); err == nil {
		t.Fatal("empty loop expected error")
	}
}

func TestClient_StopPreview(t *testing.T) {
	f, sock := startFakeMpv(t, nil)
	c := NewClient(sock)
	if err := c.Connect(); err != nil {
		t.Fatalf("Connect error = %v", err)
	}
	defer c.Close()

	if err := c.StopPreview(); err != nil {
		t.Fatalf("StopPreview error = %v", err)
	}
	want := []string{"set_property ab-loop-a", "set_property ab-loop-b", "set_property pause"}
	got := f.names()
	if len(got) != len(want) {
		t.Fatalf("commands = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("command %d = %q, want %q", i, got[i], want[i])
		}
	}

	f.mu.Lock()
	a := f.commands[0]
	f.mu.Unlock()
	if len(a) != 3 || a[2] != "no" {
		t.Fatalf("ab-loop-a set to %v, want \"no\"", a)
	}
}

func TestClient_NotConnected(t *testing.T) {
	c := NewClient(filepath.Join(t.TempDir(), "missing.sock"))
	if _, err := c.GetTimePos(); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("GetTimePos error = %v, want ErrNotConnected", err)
	}
	if err := c.Connect(); !errors.Is(err, ErrSocketNotFound) {
		t.Fatalf("Connect error = %v, want ErrSocketNotFound", err)
	}
	if c.IsConnected() {
		t.Fatal("IsConnected after failed Connect")
	}
}
