package input

import (
	"errors"
	"fmt"
	"sync"

	"geogl/pkg/graphics"
)

// ErrNoConverter is returned when no key code converter exists for the
// selected API in this build.
var ErrNoConverter = errors.New("input: no key code converter for api")

// CodesConverter translates between engine key codes and the native codes
// of the windowing system paired with a rendering API.
type CodesConverter interface {
	ToKey(native int) Key
	ToNative(key Key) int
}

var (
	convertersMu sync.RWMutex
	converters   = map[graphics.API]func() CodesConverter{
		graphics.APIHeadless: func() CodesConverter { return Identity{} },
	}
)

// RegisterConverter installs the converter used for api
func RegisterConverter(api graphics.API, newConverter func() CodesConverter) {
	convertersMu.Lock()
	defer convertersMu.Unlock()
	converters[api] = newConverter
}

// NewConverter returns the converter for the selected API
func NewConverter(sel graphics.Selection) (CodesConverter, error) {
	convertersMu.RLock()
	newConverter, ok := converters[sel.API()]
	convertersMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %s", ErrNoConverter, sel.API())
	}
	return newConverter(), nil
}

// Identity uses engine key codes as native codes. The headless window
// reports keys this way.
type Identity struct{}

// ToKey returns native as a Key, or KeyUnknown when out of range
func (Identity) ToKey(native int) Key {
	if native <= int(KeyUnknown) || native > int(KeyLast) {
		return KeyUnknown
	}
	return Key(native)
}

// ToNative returns key unchanged
func (Identity) ToNative(key Key) int {
	return int(key)
}

// tableConverter converts through a fixed table built once per process
type tableConverter struct {
	toKey    map[int]Key
	toNative map[Key]int
	unknown  int
}

func newTableConverter(table map[Key]int, unknown int) *tableConverter {
	tc := &tableConverter{
		toKey:    make(map[int]Key, len(table)),
		toNative: make(map[Key]int, len(table)),
		unknown:  unknown,
	}
	for key, native := range table {
		tc.toKey[native] = key
		tc.toNative[key] = native
	}
	return tc
}

func (tc *tableConverter) ToKey(native int) Key {
	if key, ok := tc.toKey[native]; ok {
		return key
	}
	return KeyUnknown
}

func (tc *tableConverter) ToNative(key Key) int {
	if native, ok := tc.toNative[key]; ok {
		return native
	}
	return tc.unknown
}
