package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{name: "read all (0)", maxLines: 0, expected: expectedAll},
		{name: "read all (negative)", maxLines: -1, expected: expectedAll},
		{name: "read partial (5)", maxLines: 5, expected: expectedAll[5:]},
		{name: "read exactly all (10)", maxLines: 10, expected: expectedAll},
		{name: "read more than exists (20)", maxLines: 20, expected: expectedAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "nope.log"), 5)
	if err != nil || got != nil {
		t.Fatalf("Read(missing) = %v, %v; want nil, nil", got, err)
	}
}

func TestParse(t *testing.T) {
	line := `time="2024-03-05T14:07:09+01:00" level=warning msg="search failed: api POST tasks/search returned status 500" collection=tasks page=2 error="boom \"x\""`
	e := Parse(line)
	if !e.Parsed {
		t.Fatalf("Parse did not recognise %q", line)
	}
	if e.Level != logrus.WarnLevel {
		t.Fatalf("Level = %v, want warning", e.Level)
	}
	if e.Time != "2024-03-05T14:07:09+01:00" {
		t.Fatalf("Time = %q", e.Time)
	}
	if e.Msg != "search failed: api POST tasks/search returned status 500" {
		t.Fatalf("Msg = %q", e.Msg)
	}
	if e.Field("collection") != "tasks" || e.Field("page") != "2" {
		t.Fatalf("Fields = %v", e.Fields)
	}
	if e.Field("error") != `boom "x"` {
		t.Fatalf("error field = %q", e.Field("error"))
	}
}

func TestParse_ForeignLine(t *testing.T) {
	e := Parse("goroutine 1 [running]:")
	if e.Parsed || e.Msg != "goroutine 1 [running]:" || e.Fields != nil {
		t.Fatalf("Parse(foreign) = %#v", e)
	}
}

func TestTail_FiltersBySeverity(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "tally.log")
	body := strings.Join([]string{
		`time="t1" level=debug msg="page loaded"`,
		`time="t2" level=info msg=started`,
		`time="t3" level=warning msg="search failed"`,
		``,
		`panic: oops`,
		`time="t4" level=error msg="write prefs"`,
	}, "\n")
	if err := os.WriteFile(logPath, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	all, err := Tail(logPath, 0, logrus.DebugLevel)
	if err != nil {
		t.Fatalf("Tail returned error: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("Tail(debug) = %d entries, want 5", len(all))
	}

	warn, err := Tail(logPath, 0, logrus.WarnLevel)
	if err != nil {
		t.Fatalf("Tail returned error: %v", err)
	}
	var msgs []string
	for _, e := range warn {
		msgs = append(msgs, e.Msg)
	}
	want := []string{"search failed", "panic: oops", "write prefs"}
	if !reflect.DeepEqual(msgs, want) {
		t.Fatalf("Tail(warn) = %v, want %v", msgs, want)
	}
}
