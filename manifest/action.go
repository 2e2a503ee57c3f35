package manifest

import "github.com/pme-sh/hostsfile/util"

// Action is what a resource does to the hosts file.
type Action uint8

const (
	ActionCreate Action = iota
	ActionCreateIfMissing
	ActionUpdate
	ActionAppend
	ActionRemove
)

var actionEnum = util.NewEnum(map[Action]string{
	ActionCreate:          "create",
	ActionCreateIfMissing: "create_if_missing",
	ActionUpdate:          "update",
	ActionAppend:          "append",
	ActionRemove:          "remove",
})

func (a Action) String() string {
	return actionEnum.ToString(a)
}
func (a Action) MarshalText() ([]byte, error) {
	return actionEnum.MarshalText(a)
}
func (a *Action) UnmarshalText(text []byte) error {
	return actionEnum.UnmarshalText(a, text)
}
