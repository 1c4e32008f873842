package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line. A missing file has no lines.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Field is one key=value pair of a log line.
type Field struct {
	Key   string
	Value string
}

// Entry is a parsed logrus text line.
type Entry struct {
	Raw    string
	Time   string
	Level  logrus.Level
	Msg    string
	Fields []Field
	// Parsed is false for lines that carry no level, e.g. panics.
	Parsed bool
}

// Field returns the value of key, or "".
func (e Entry) Field(key string) string {
	for _, f := range e.Fields {
		if f.Key == key {
			return f.Value
		}
	}
	return ""
}

// Parse splits a logrus text formatter line into its parts.
func Parse(line string) Entry {
	entry := Entry{Raw: line, Level: logrus.InfoLevel}
	for _, f := range splitPairs(line) {
		switch f.Key {
		case "time":
			entry.Time = f.Value
		case "level":
			if lvl, err := logrus.ParseLevel(f.Value); err == nil {
				entry.Level = lvl
				entry.Parsed = true
			}
		case "msg":
			entry.Msg = f.Value
		default:
			entry.Fields = append(entry.Fields, f)
		}
	}
	if !entry.Parsed {
		entry.Msg = line
		entry.Fields = nil
	}
	return entry
}

// Tail reads the last maxLines of path and keeps entries at min or more
// severe. Unparsed lines are always kept.
func Tail(path string, maxLines int, min logrus.Level) ([]Entry, error) {
	lines, err := Read(path, maxLines)
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		e := Parse(line)
		if e.Parsed && e.Level > min {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func splitPairs(line string) []Field {
	var out []Field
	i := 0
	for i < len(line) {
		for i < len(line) && line[i] == ' ' {
			i++
		}
		eq := strings.IndexByte(line[i:], '=')
		if eq <= 0 {
			break
		}
		key := line[i : i+eq]
		if strings.ContainsAny(key, " \"") {
			break
		}
		i += eq + 1
		var value string
		if i < len(line) && line[i] == '"' {
			end := closingQuote(line, i)
			if end < 0 {
				break
			}
			unq, err := strconv.Unquote(line[i : end+1])
			if err != nil {
				unq = line[i+1 : end]
			}
			value = unq
			i = end + 1
		} else {
			end := strings.IndexByte(line[i:], ' ')
			if end < 0 {
				end = len(line) - i
			}
			value = line[i : i+end]
			i += end
		}
		out = append(out, Field{Key: key, Value: value})
	}
	return out
}

func closingQuote(s string, open int) int {
	for j := open + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case '"':
			return j
		}
	}
	return -1
}
