package hosts

import (
	"slices"
	"strings"
	"unicode"
)

const commentDelimiter = "#"

// Entry is a single address mapping of a hosts file.
type Entry struct {
	IPAddress string   `json:"ip_address" yaml:"ip_address"`
	Hostname  string   `json:"hostname" yaml:"hostname"`
	Aliases   []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Comment   string   `json:"comment,omitempty" yaml:"comment,omitempty"`
	Priority  int      `json:"priority" yaml:"priority"`
}

// ParseLine parses a single hosts file line.
// Blank lines and comment-only lines yield a nil entry and no error.
func ParseLine(line string) (*Entry, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, commentDelimiter) {
		return nil, nil
	}

	// The comment keeps everything after the delimiter but leading blanks.
	body, comment, _ := strings.Cut(strings.TrimRight(line, "\r\n"), commentDelimiter)
	fields := strings.Fields(body)
	if len(fields) < 2 {
		return nil, &MalformedLineError{Content: line}
	}
	e := &Entry{
		IPAddress: fields[0],
		Hostname:  fields[1],
		Comment:   trimComment(comment),
	}
	if len(fields) > 2 {
		e.Aliases = fields[2:]
	}
	return e, nil
}

func trimComment(comment string) string {
	return strings.TrimLeftFunc(comment, unicode.IsSpace)
}

// Hostnames returns the canonical hostname followed by the aliases.
func (e Entry) Hostnames() []string {
	return append([]string{e.Hostname}, e.Aliases...)
}

// HasHost reports whether host is the hostname or one of the aliases.
func (e Entry) HasHost(host string) bool {
	return e.Hostname == host || slices.Contains(e.Aliases, host)
}

// Line renders the entry in canonical form.
func (e Entry) Line() string {
	var b strings.Builder
	b.WriteString(e.IPAddress)
	b.WriteByte('\t')
	b.WriteString(e.Hostname)
	for _, alias := range e.Aliases {
		b.WriteByte(' ')
		b.WriteString(alias)
	}
	if e.Comment != "" {
		b.WriteString(" " + commentDelimiter + " ")
		b.WriteString(e.Comment)
	}
	return b.String()
}
func (e Entry) String() string {
	return e.Line()
}
func (e Entry) MarshalText() ([]byte, error) {
	return []byte(e.Line()), nil
}
func (e *Entry) UnmarshalText(data []byte) error {
	parsed, err := ParseLine(string(data))
	if err != nil {
		return err
	}
	if parsed == nil {
		return &MalformedLineError{Content: string(data)}
	}
	parsed.Priority = e.Priority
	*e = *parsed
	return nil
}

// Equals compares every field, priority included.
func (e Entry) Equals(other Entry) bool {
	return e.IPAddress == other.IPAddress &&
		e.Hostname == other.Hostname &&
		e.Comment == other.Comment &&
		e.Priority == other.Priority &&
		slices.Equal(e.Aliases, other.Aliases)
}

func (e Entry) clone() Entry {
	e.Aliases = slices.Clone(e.Aliases)
	return e
}
