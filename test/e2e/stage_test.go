package e2e

import (
	"bytes"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	expect "github.com/Netflix/go-expect"
	"github.com/creack/pty"
)

// buildStageview builds the stageview binary for testing.
func buildStageview(t *testing.T) string {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "stageview")

	rootDir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	// Assume we are in test/e2e, go up 2 levels
	rootDir = filepath.Join(rootDir, "..", "..")

	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/stageview")
	cmd.Dir = rootDir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build failed: %v\n%s", err, out)
	}
	return binPath
}

func TestE2E_LiveSlideFollowsController(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the binary and drives a pty")
	}
	binPath := buildStageview(t)

	fc := newFakeController(t, songList(
		map[string]any{"tag": "V1", "html": "amazing grace", "title": "Grace", "selected": true},
		map[string]any{"tag": "V1", "html": "amazing grace"},
		map[string]any{"tag": "R1", "html": "how sweet"},
		map[string]any{"tag": "V2", "html": "through many dangers"},
	))
	u, _ := url.Parse(fc.server.URL)
	host, port, _ := net.SplitHostPort(u.Host)

	homeDir := t.TempDir()
	cmd := exec.Command(binPath, "--host", host, "--api-port", port, "--ws-port", port, "--debounce", "20")
	// Point HOME to temp dir so logs and config stay out of the real ~/.stageview
	cmd.Env = append(os.Environ(),
		"HOME="+homeDir,
		// A fixed terminal type makes the colour query below deterministic.
		"TERM=xterm-256color",
		"STAGEVIEW_HOST=",
		"STAGEVIEW_DEDUP=",
		"STAGEVIEW_PAIRING=",
	)

	ptmx, err := pty.Start(cmd)
	if err != nil {
		t.Fatalf("failed to start pty: %v", err)
	}
	defer func() {
		_ = ptmx.Close()
		_ = cmd.Process.Kill()
	}()

	if err := pty.Setsize(ptmx, &pty.Winsize{Cols: 100, Rows: 30}); err != nil {
		t.Fatalf("failed to set pty size: %v", err)
	}

	var outputBuf bytes.Buffer
	console, err := expect.NewConsole(
		expect.WithStdin(ptmx),
		expect.WithStdout(&outputBuf),
		expect.WithDefaultTimeout(5*time.Second),
	)
	if err != nil {
		t.Fatalf("failed to create console: %v", err)
	}
	defer console.Close()

	// 0. Lip Gloss asks the terminal for its background colour on startup
	// and waits for the reply.
	if err := answerColorQuery(console, ptmx); err != nil {
		t.Fatalf("terminal query: %v\nOutput buffer:\n%s", err, outputBuf.String())
	}

	dumpLogs := func() {
		logs, _ := filepath.Glob(filepath.Join(homeDir, ".stageview", "logs", "*.log"))
		for _, p := range logs {
			if data, err := os.ReadFile(p); err == nil {
				t.Logf("%s:\n%s", filepath.Base(p), data)
			}
		}
	}

	// 1. The connect refresh renders the paired verse and chorus.
	t.Log("Waiting for first slide...")
	if _, err := console.ExpectString("//: amazing grace ://"); err != nil {
		dumpLogs()
		t.Fatalf("first slide not shown: %v\nOutput buffer:\n%s", err, outputBuf.String())
	}
	if _, err := console.ExpectString("how sweet"); err != nil {
		t.Fatalf("paired chorus not shown: %v\nOutput buffer:\n%s", err, outputBuf.String())
	}

	// 2. A push notification moves the display to the new selection.
	t.Log("Advancing to verse 2...")
	fc.setList(songList(
		map[string]any{"tag": "V1", "html": "amazing grace", "title": "Grace"},
		map[string]any{"tag": "V1", "html": "amazing grace"},
		map[string]any{"tag": "R1", "html": "how sweet"},
		map[string]any{"tag": "V2", "html": "through many dangers", "selected": true},
	))
	if _, err := console.ExpectString("through many dangers"); err != nil {
		dumpLogs()
		t.Fatalf("second slide not shown: %v\nOutput buffer:\n%s", err, outputBuf.String())
	}

	// 3. Quit.
	t.Log("Sending 'q'...")
	if _, err := ptmx.Write([]byte("q")); err != nil {
		t.Fatalf("failed to send q: %v", err)
	}

	done := make(chan error)
	go func() { done <- cmd.Wait() }()
	select {
	case <-done:
		t.Log("Process exited successfully")
	case <-time.After(3 * time.Second):
		t.Error("Process did not exit after 'q'")
	}
}

// answerColorQuery waits for the background colour query (an OSC 11
// request followed by a cursor position request) and replies to both as a
// dark terminal would.
func answerColorQuery(console *expect.Console, ptmx *os.File) error {
	if _, err := console.ExpectString("\x1b[6n"); err != nil {
		return err
	}
	_, err := ptmx.Write([]byte("\x1b]11;rgb:0000/0000/0000\x1b\\" + "\x1b[1;1R"))
	return err
}
