package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeModule struct {
	name     string
	priority int
	initErr  error
	trace    *[]string
}

func (m *fakeModule) Name() string  { return m.name }
func (m *fakeModule) Priority() int { return m.priority }
func (m *fakeModule) Init(ctx *ModuleContext) error {
	*m.trace = append(*m.trace, "init:"+m.name)
	return m.initErr
}

type closingModule struct {
	fakeModule
}

func (m *closingModule) Close() error {
	*m.trace = append(*m.trace, "close:"+m.name)
	return nil
}

func TestInitModulesByPriority(t *testing.T) {
	var trace []string
	r := New()
	r.Register(&fakeModule{name: "common", priority: 100, trace: &trace})
	r.Register(&closingModule{fakeModule{name: "order", priority: 30, trace: &trace}})
	r.Register(&fakeModule{name: "user", priority: 1, trace: &trace})
	r.Register(&fakeModule{name: "partner", priority: 1, trace: &trace})

	assert.NoError(t, r.InitModules(&ModuleContext{}))
	assert.Equal(t, []string{"init:partner", "init:user", "init:order", "init:common"}, trace)

	assert.NoError(t, r.CloseModules())
	assert.Equal(t, "close:order", trace[len(trace)-1])
}

func TestInitModulesStopsOnError(t *testing.T) {
	var trace []string
	r := New()
	r.Register(&fakeModule{name: "a", priority: 1, initErr: errors.New("boom"), trace: &trace})
	r.Register(&fakeModule{name: "b", priority: 2, trace: &trace})

	err := r.InitModules(&ModuleContext{})
	assert.ErrorContains(t, err, "init module a")
	assert.Equal(t, []string{"init:a"}, trace)
}
