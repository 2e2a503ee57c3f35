package xlog

import (
	"encoding/json"
	"io"

	"github.com/rs/zerolog"
)

// Loggers record the component they belong to, their "domain", in the caller
// field. E.g.
// hostsfile
// hosts
// manifest
const (
	DomainFieldName = "dom"
)

// Domain names a logging component.
type Domain struct {
	name        string
	encodedName []byte // JSON escaped name
}

func (d *Domain) String() string { return d.name }

// Implement zerolog.Hook
func (d *Domain) Run(e *Event, level Level, msg string) {
	e.Timestamp()
	if e.Enabled() {
		e.RawJSON(DomainFieldName, d.encodedName)
	}
}

// NewDomain creates a new domain and a logger writing to w, or to the
// default output if w is empty.
func NewDomain(name string, w ...io.Writer) (l *Logger) {
	if len(w) == 0 {
		w = append(w, DefaultWriter{})
	}
	dom := &Domain{name: name}
	dom.encodedName, _ = json.Marshal(name)
	logger := zerolog.New(zerolog.MultiLevelWriter(w...)).Hook(dom)
	return &logger
}
