package hosts

import (
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"github.com/pme-sh/hostsfile/util"
)

// Options is the desired state of a single entry as supplied by a caller.
type Options struct {
	IPAddress string            `json:"ip_address" yaml:"ip_address"`
	Hostname  string            `json:"hostname" yaml:"hostname"`
	Aliases   util.Some[string] `json:"aliases,omitempty" yaml:"aliases,omitempty"` // nil when not given
	Comment   string            `json:"comment,omitempty" yaml:"comment,omitempty"`
	Priority  *int              `json:"priority,omitempty" yaml:"priority,omitempty"`
}

func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || string(r) == commentDelimiter
}

// checkToken rejects values that would not survive a render and re-parse as a
// single field.
func checkToken(field, value string) error {
	if value == "" {
		return errors.Wrapf(ErrInvalidOptions, "%s is required", field)
	}
	if strings.IndexFunc(value, isSeparator) != -1 {
		return errors.Wrapf(ErrInvalidOptions, "%s %q contains whitespace or %q", field, value, commentDelimiter)
	}
	return nil
}

// ValidateAddress checks the address alone, which is all Remove needs.
func (o Options) ValidateAddress() error {
	return checkToken("ip_address", o.IPAddress)
}

func (o Options) Validate() error {
	if err := o.ValidateAddress(); err != nil {
		return err
	}
	if err := checkToken("hostname", o.Hostname); err != nil {
		return errors.WithMessage(err, o.IPAddress)
	}
	for _, alias := range o.Aliases {
		if err := checkToken("alias", alias); err != nil {
			return errors.WithMessage(err, o.IPAddress)
		}
	}
	if strings.ContainsAny(o.Comment, "\r\n") {
		return errors.Wrapf(ErrInvalidOptions, "%s: comment must be a single line", o.IPAddress)
	}
	return nil
}

// WithPriority returns a copy of o with the priority set.
func (o Options) WithPriority(p int) Options {
	o.Priority = &p
	return o
}
