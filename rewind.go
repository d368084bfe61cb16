package rewind

import (
	"github.com/aretw0/rewind/internal/compiler"
	"github.com/aretw0/rewind/pkg/domain"
	"github.com/aretw0/rewind/pkg/fsm"
)

// Open loads a definition file (YAML or JSON) and returns a machine at its initial state.
func Open(path string, opts ...fsm.Option) (*fsm.Machine, error) {
	def, err := compiler.NewParser().ParseFile(path)
	if err != nil {
		return nil, err
	}
	return fsm.New(def, opts...), nil
}

// Parse builds a definition from YAML or JSON bytes.
func Parse(data []byte) (domain.Definition, error) {
	return compiler.NewParser().Parse(data)
}
