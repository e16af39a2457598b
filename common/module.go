package common

type Module string

const (
	ModulePresale Module = "presale"
)

func (m Module) String() string {
	return string(m)
}
