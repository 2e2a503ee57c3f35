package manifest

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/pme-sh/hostsfile/hosts"
	"github.com/pme-sh/hostsfile/xlog"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

var logger = xlog.NewDomain("manifest")

// Resource is one desired hosts entry.
type Resource struct {
	Action        Action `yaml:"action,omitempty" json:"action,omitempty"`
	hosts.Options `yaml:",inline"`
}

func (r *Resource) UnmarshalYAML(node *yaml.Node) error {
	// Either a hosts line or a mapping.
	if node.Kind == yaml.ScalarNode {
		var line string
		if err := node.Decode(&line); err != nil {
			return err
		}
		e, err := hosts.ParseLine(line)
		if err != nil {
			return errors.Wrapf(err, "line %d", node.Line)
		}
		if e == nil {
			return errors.Errorf("line %d: empty hosts entry", node.Line)
		}
		r.Action = ActionCreate
		r.Options = hosts.Options{
			IPAddress: e.IPAddress,
			Hostname:  e.Hostname,
			Aliases:   e.Aliases,
			Comment:   e.Comment,
		}
		return nil
	}
	type plain Resource
	return node.Decode((*plain)(r))
}

func (r Resource) Validate() error {
	if r.Action == ActionRemove {
		return r.ValidateAddress()
	}
	return r.Options.Validate()
}

type Manifest struct {
	File     string     `yaml:"file,omitempty"`     // Hosts file override
	Priority *int       `yaml:"priority,omitempty"` // Priority of resources without one
	Hosts    []Resource `yaml:"hosts"`              // Resources, applied in order
}

// Parse decodes a manifest and validates every resource.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "failed to parse manifest")
	}
	for i := range m.Hosts {
		r := &m.Hosts[i]
		if r.Priority == nil && m.Priority != nil && r.Action != ActionRemove {
			r.Options = r.Options.WithPriority(*m.Priority)
		}
		if err := r.Validate(); err != nil {
			return nil, errors.Wrapf(err, "hosts[%d]", i)
		}
	}
	return &m, nil
}

func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return m, nil
}

// Apply runs every resource against m in order.
func (mf *Manifest) Apply(m *hosts.Manipulator) error {
	for i, r := range mf.Hosts {
		if err := r.Validate(); err != nil {
			return errors.Wrapf(err, "hosts[%d]", i)
		}
	}
	for _, r := range mf.Hosts {
		if err := apply(m, r); err != nil {
			return err
		}
	}
	return nil
}

func apply(m *hosts.Manipulator, r Resource) error {
	logger.Debug().Str("action", r.Action.String()).Str("ip", r.IPAddress).Str("hostname", r.Hostname).Msg("Applying resource")
	switch r.Action {
	case ActionCreate:
		want := m.NewEntry(r.Options)
		matches := lo.Filter(m.Entries(), func(e hosts.Entry, _ int) bool { return e.IPAddress == r.IPAddress })
		if len(matches) == 1 && matches[0].Equals(want) {
			logger.Debug().Str("ip", r.IPAddress).Msg("Entry already present")
			return nil
		}
		for {
			if _, ok := m.FindEntryByIPAddress(r.IPAddress); !ok {
				break
			}
			m.Remove(r.IPAddress)
		}
		return m.Add(r.Options)
	case ActionCreateIfMissing:
		if _, ok := m.FindEntryByIPAddress(r.IPAddress); ok {
			return nil
		}
		return m.Add(r.Options)
	case ActionUpdate:
		return m.Update(r.Options)
	case ActionAppend:
		return m.Append(r.Options)
	case ActionRemove:
		m.Remove(r.IPAddress)
		return nil
	}
	return errors.Errorf("unknown action %d", r.Action)
}
