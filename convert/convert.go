package convert

import "sync"

// Converter turns the raw text of one command-line value into its typed form.
// Name identifies the converter in schema manifests; Convert reports a short,
// human-readable cause on failure, which ends up in the "cannot parse
// argument" diagnostic.
type Converter interface {
	Name() string
	Convert(text string) (any, error)
}

// Typed adapts a typed conversion function into a Converter. The typed value
// is recovered at the access site with goargs.Get[T]/GetAll[T].
func Typed[T any](name string, fn func(string) (T, error)) Converter {
	return typed[T]{name: name, fn: fn}
}

type typed[T any] struct {
	name string
	fn   func(string) (T, error)
}

func (c typed[T]) Name() string { return c.name }

func (c typed[T]) Convert(text string) (any, error) {
	v, err := c.fn(text)
	if err != nil {
		return nil, err
	}
	return v, nil
}

var (
	regMu    sync.RWMutex
	registry = map[string]Converter{}
)

// Register makes a converter available by name to manifest loading. Builtins
// are pre-registered; registering the same name again replaces it.
func Register(c Converter) {
	regMu.Lock()
	defer regMu.Unlock()
	registry[c.Name()] = c
}

// Lookup resolves a registered converter by name.
func Lookup(name string) (Converter, bool) {
	regMu.RLock()
	defer regMu.RUnlock()
	c, ok := registry[name]
	return c, ok
}

func init() {
	for _, c := range []Converter{
		String(), Bool(), Int(), Int64(), Uint(), Uint8(), Uint64(),
		Float64(), Duration(), TimeRFC3339(), UUID(), Semver(),
	} {
		Register(c)
	}
}
