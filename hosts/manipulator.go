package hosts

import (
	"bufio"
	"bytes"
	"cmp"
	"crypto/sha512"
	"encoding/hex"
	"io"
	"os"
	"slices"
	"strings"

	atomicfile "github.com/natefinch/atomic"
	"github.com/pkg/errors"
	"github.com/pme-sh/hostsfile/xlog"
	"github.com/samber/lo"
)

// DefaultPriority is assigned to parsed entries and to entries added without
// an explicit priority when the node does not provide one.
const DefaultPriority = 50

// Node is the read-only configuration a Manipulator is bound to.
type Node interface {
	DefaultPriority() int
}

// AtomicWriter is implemented by nodes that can opt out of rename-based saves,
// e.g. when the hosts file is a bind mount.
type AtomicWriter interface {
	AtomicWrite() bool
}

// MaxLineLength bounds a single line of a hosts file.
const MaxLineLength = 1 << 20

const byteOrderMark = "\ufeff"

var logger = xlog.NewDomain("hosts")

// Manipulator owns the entries of one hosts file.
// Not safe for concurrent use.
type Manipulator struct {
	node    Node
	path    string
	entries []Entry
}

// Open parses the hosts file at path. A missing file is reported as
// ErrMissingTargetFile, the file is never created.
func Open(node Node, path string) (*Manipulator, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(ErrMissingTargetFile, path)
		}
		return nil, errors.WithStack(err)
	}
	defer f.Close()
	return Load(node, path, f)
}

// Load parses the hosts file content from r and binds the result to path.
func Load(node Node, path string, r io.Reader) (*Manipulator, error) {
	m := &Manipulator{node: node, path: path}
	priority := m.defaultPriority()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineLength)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if lineno == 1 {
			line = strings.TrimPrefix(line, byteOrderMark)
		}
		entry, err := ParseLine(line)
		if err != nil {
			if mle, ok := err.(*MalformedLineError); ok {
				mle.Line = lineno
			}
			return nil, errors.Wrap(err, path)
		}
		if entry == nil {
			continue
		}
		entry.Priority = priority
		m.entries = append(m.entries, *entry)
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, errors.Wrapf(ErrMalformedLine, "%s: line %d is longer than %d bytes", path, lineno+1, MaxLineLength)
		}
		return nil, errors.Wrap(err, path)
	}

	logger.Debug().Str("path", path).Int("lines", lineno).Int("entries", len(m.entries)).Msg("Loaded hosts file")
	return m, nil
}

func (m *Manipulator) Node() Node   { return m.node }
func (m *Manipulator) Path() string { return m.path }
func (m *Manipulator) Len() int     { return len(m.entries) }

func (m *Manipulator) defaultPriority() int {
	if m.node == nil {
		return DefaultPriority
	}
	return m.node.DefaultPriority()
}

// IPAddresses lists the address of every entry in collection order.
func (m *Manipulator) IPAddresses() []string {
	return lo.Map(m.entries, func(e Entry, _ int) string { return e.IPAddress })
}

// Entries returns a copy of the collection.
func (m *Manipulator) Entries() []Entry {
	return lo.Map(m.entries, func(e Entry, _ int) Entry { return e.clone() })
}

func (m *Manipulator) indexOf(ip string) int {
	return slices.IndexFunc(m.entries, func(e Entry) bool { return e.IPAddress == ip })
}

// FindEntryByIPAddress returns a copy of the first entry with the given address.
func (m *Manipulator) FindEntryByIPAddress(ip string) (Entry, bool) {
	if i := m.indexOf(ip); i != -1 {
		return m.entries[i].clone(), true
	}
	return Entry{}, false
}

// NewEntry returns the entry Add would append for opts, without adding it.
func (m *Manipulator) NewEntry(opts Options) Entry {
	entry := Entry{
		IPAddress: opts.IPAddress,
		Hostname:  opts.Hostname,
		Aliases:   opts.Aliases.Elements(),
		Comment:   trimComment(opts.Comment),
		Priority:  lo.FromPtrOr(opts.Priority, m.defaultPriority()),
	}
	if len(entry.Aliases) == 0 {
		entry.Aliases = nil
	}
	return entry
}

// Add appends a new entry, duplicates are resolved on save.
func (m *Manipulator) Add(opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	entry := m.NewEntry(opts)
	m.entries = append(m.entries, entry)
	logger.Debug().Str("ip", entry.IPAddress).Str("hostname", entry.Hostname).Int("priority", entry.Priority).Msg("Added entry")
	return nil
}

// Update replaces hostname, aliases, comment and priority of the first entry
// with the same address. Does nothing if there is none.
func (m *Manipulator) Update(opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	i := m.indexOf(opts.IPAddress)
	if i == -1 {
		logger.Debug().Str("ip", opts.IPAddress).Msg("Update skipped, no entry")
		return nil
	}
	e := &m.entries[i]
	e.Hostname = opts.Hostname
	e.Aliases = nil
	if !opts.Aliases.IsZero() {
		e.Aliases = opts.Aliases.Elements()
	}
	e.Comment = trimComment(opts.Comment)
	e.Priority = lo.FromPtrOr(opts.Priority, m.defaultPriority())
	logger.Debug().Str("ip", e.IPAddress).Str("hostname", e.Hostname).Msg("Updated entry")
	return nil
}

// Append merges opts into the first entry with the same address, or adds it.
// Aliases are replaced when given, comments are concatenated.
func (m *Manipulator) Append(opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	i := m.indexOf(opts.IPAddress)
	if i == -1 {
		return m.Add(opts)
	}
	e := &m.entries[i]
	e.Hostname = opts.Hostname
	if opts.Aliases.IsSet() {
		e.Aliases = opts.Aliases.Elements()
		if len(e.Aliases) == 0 {
			e.Aliases = nil
		}
	}
	if comment := trimComment(opts.Comment); comment != "" {
		if e.Comment == "" {
			e.Comment = comment
		} else {
			e.Comment = e.Comment + ", " + comment
		}
	}
	if opts.Priority != nil {
		e.Priority = *opts.Priority
	}
	logger.Debug().Str("ip", e.IPAddress).Str("hostname", e.Hostname).Msg("Appended to entry")
	return nil
}

// Remove deletes the first entry with the given address.
func (m *Manipulator) Remove(ip string) {
	i := m.indexOf(ip)
	if i == -1 {
		logger.Debug().Str("ip", ip).Msg("Remove skipped, no entry")
		return
	}
	m.entries = slices.Delete(m.entries, i, i+1)
	logger.Debug().Str("ip", ip).Msg("Removed entry")
}

// UniqueEntries keeps the lowest priority entry of every address, earlier
// entries win ties. The result is ordered by priority, then collection order.
func (m *Manipulator) UniqueEntries() []Entry {
	sorted := m.Entries()
	slices.SortStableFunc(sorted, func(a, b Entry) int {
		return cmp.Compare(a.Priority, b.Priority)
	})
	return lo.UniqBy(sorted, func(e Entry) string { return e.IPAddress })
}

// Render returns the file content Save would write.
func (m *Manipulator) Render() []byte {
	var buf bytes.Buffer
	for _, e := range m.UniqueEntries() {
		buf.WriteString(e.Line())
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

func digest(data []byte) string {
	sum := sha512.Sum512(data)
	return hex.EncodeToString(sum[:])
}

// Save writes the rendered content if its digest differs from the file on disk.
func (m *Manipulator) Save() (changed bool, err error) {
	content := m.Render()
	current, err := os.ReadFile(m.path)
	if err != nil && !os.IsNotExist(err) {
		return false, errors.WithStack(&WriteError{Path: m.path, Err: err})
	}

	want, have := digest(content), digest(current)
	if want == have {
		logger.Debug().Str("path", m.path).Str("digest", want[:16]).Msg("Hosts file unchanged")
		return false, nil
	}

	if aw, ok := m.node.(AtomicWriter); ok && !aw.AtomicWrite() {
		err = writeInPlace(m.path, content)
	} else {
		err = atomicfile.WriteFile(m.path, bytes.NewReader(content))
	}
	if err != nil {
		return false, errors.WithStack(&WriteError{Path: m.path, Err: err})
	}
	logger.Info().Str("path", m.path).Int("entries", bytes.Count(content, []byte{'\n'})).Msg("Hosts file written")
	return true, nil
}

func writeInPlace(path string, content []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	if _, err = f.Write(content); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
