package stepwise

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// MatchTranscript compares the session transcript against a golden file
// stored in testdata/<sanitized-test-name>-<hash>/<sanitized-name>.txt.
//
// Set STEPWISE_UPDATE=1 to create or update golden files.
func (s *Session) MatchTranscript(t testing.TB, name string) {
	t.Helper()

	dir := transcriptDir(t)
	sanitized := sanitizeName(name)
	path := filepath.Join(dir, sanitized+".txt")

	// Normalize for stable diffs:
	// - CRLF to LF (the PTY line discipline inserts CRs)
	// - Trim trailing spaces on each line
	// - Remove trailing blank lines
	// - End with a single newline
	content := normalizeTranscript(s.Transcript())

	if shouldUpdate() {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("stepwise: transcript: failed to create directory: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("stepwise: transcript: failed to write golden file: %v", err)
		}
		return
	}

	golden, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("stepwise: transcript: golden file not found: %s\nRun with STEPWISE_UPDATE=1 to create it.\n\nActual transcript:\n%s", path, content)
		}
		t.Fatalf("stepwise: transcript: failed to read golden file: %v", err)
	}

	if string(golden) != content {
		t.Fatalf("stepwise: transcript: mismatch for %q\nGolden file: %s\nRun with STEPWISE_UPDATE=1 to update.\n\n--- golden ---\n%s\n--- actual ---\n%s",
			name, path, string(golden), content)
	}
}

// transcriptDir returns the golden file directory for the current test.
// Uses testdata/<sanitized-test-name>-<hash>/ where hash ensures uniqueness.
func transcriptDir(t testing.TB) string {
	t.Helper()

	fullName := t.Name()
	sanitized := sanitizeName(fullName)

	// Short stable hash for uniqueness.
	h := sha256.Sum256([]byte(fullName))
	hash := hex.EncodeToString(h[:4])

	return filepath.Join("testdata", sanitized+"-"+hash)
}

// normalizeTranscript normalizes raw PTY output for stable golden diffs.
func normalizeTranscript(raw string) string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")

	lines := strings.Split(raw, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return strings.Join(lines, "\n") + "\n"
}

// sanitizeName replaces characters that are not filesystem-safe.
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	s := b.String()
	// Truncate to keep paths manageable.
	if len(s) > 60 {
		s = s[:60]
	}
	return s
}

// shouldUpdate returns true if STEPWISE_UPDATE is set to a truthy value.
func shouldUpdate() bool {
	v := os.Getenv("STEPWISE_UPDATE")
	return v == "1" || v == "true" || v == "yes"
}
