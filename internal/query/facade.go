package query

import (
	"github.com/openshift-assisted/machine-monitor/internal/domain/entity"
)

type Reader interface {
	Get(id string) (entity.MachineState, bool)
	GetAll() []entity.MachineState
}

// Facade is the read path of the REST API. It reads through the registry on every call.
type Facade struct {
	reader Reader
}

func NewFacade(reader Reader) Facade {
	return Facade{
		reader: reader,
	}
}

// ListAll returns every known machine, registered but silent ones included, sorted by id.
func (f Facade) ListAll() []entity.MachineState {
	return f.reader.GetAll()
}

func (f Facade) GetOne(id string) (entity.MachineState, bool) {
	return f.reader.Get(id)
}
