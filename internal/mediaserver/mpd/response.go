package mpd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mmcdole/tagdeck/internal/domain"
)

// maxLineLen bounds a single response line; comments and lyrics can be long
const maxLineLen = 1024 * 1024

// Pair is a single "Key: Value" line of a server response
type Pair struct {
	Key   string
	Value string
}

// readPairs decodes a response into key/value pairs.
// It stops at "OK" and fails on "ACK" or on a line without separator.
func readPairs(r io.Reader, fn func(Pair) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineLen)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		if line == "OK" || line == "list_OK" {
			return nil
		}
		if strings.HasPrefix(line, "ACK ") {
			return fmt.Errorf("%w: %s", domain.ErrMalformedResponse, strings.TrimPrefix(line, "ACK "))
		}

		key, value, ok := strings.Cut(line, ": ")
		if !ok {
			return fmt.Errorf("%w: line %d has no separator", domain.ErrMalformedResponse, lineNo)
		}
		if err := fn(Pair{Key: key, Value: value}); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	return nil
}

// ParseTagTypes decodes a "tagtypes" response into the set of tags the
// server can report. Unknown tag names are skipped.
func ParseTagTypes(r io.Reader) (domain.TagSet, error) {
	var set domain.TagSet
	err := readPairs(r, func(p Pair) error {
		if !strings.EqualFold(p.Key, "tagtype") {
			return nil
		}
		kind := domain.ParseTagKind(p.Value)
		if kind == domain.TagUnknown || set.Contains(kind) {
			return nil
		}
		set.Append(kind)
		return nil
	})
	if err != nil {
		return domain.TagSet{}, err
	}
	return set, nil
}
