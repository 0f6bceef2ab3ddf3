package property

import (
	"encoding/json"
	"reflect"
)

// Value is a persisted cell holding a T. It is not safe for concurrent
// mutation; the store only serializes encode and decode.
type Value[T any] struct {
	store     *Store
	name      string
	value     T
	def       T
	isDefault bool
	onLoad    []func()
}

// New registers a cell under key. If the store already holds a persisted
// value for key it is decoded into the cell, otherwise def is used.
func New[T any](store *Store, key string, def T) (*Value[T], error) {
	v := &Value[T]{
		store:     store,
		name:      key,
		value:     clone(def),
		def:       clone(def),
		isDefault: true,
	}
	restored, err := store.register(v)
	if err != nil {
		return v, err
	}
	if restored {
		v.isDefault = false
	}
	return v, nil
}

// Key returns the persistence key
func (v *Value[T]) Key() string {
	return v.name
}

// Get returns the current value
func (v *Value[T]) Get() T {
	return v.value
}

// Set stores a new value and notifies observers
func (v *Value[T]) Set(value T) {
	v.value = value
	v.ManuallyChanged()
}

// ManuallyChanged marks the value as explicitly set after it was mutated in
// place, and notifies observers.
func (v *Value[T]) ManuallyChanged() {
	v.isDefault = false
	v.store.notify(v.name)
}

// IsDefault reports whether the value was never set nor restored
func (v *Value[T]) IsDefault() bool {
	return v.isDefault
}

// Reset restores the default value
func (v *Value[T]) Reset() {
	v.value = clone(v.def)
	v.isDefault = true
	v.store.notify(v.name)
}

// OnLoad registers fn to run after Store.Load replaced the value. It runs
// before change observers are notified.
func (v *Value[T]) OnLoad(fn func()) {
	v.onLoad = append(v.onLoad, fn)
}

// Release detaches the cell from its store
func (v *Value[T]) Release() {
	v.store.unregister(v.name)
}

func (v *Value[T]) key() string {
	return v.name
}

func (v *Value[T]) loaded() {
	for _, fn := range v.onLoad {
		fn()
	}
}

func (v *Value[T]) encode() (json.RawMessage, error) {
	return json.Marshal(v.value)
}

func (v *Value[T]) decode(raw json.RawMessage) error {
	var decoded T
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}
	v.value = decoded
	v.isDefault = false
	return nil
}

// clone copies slice defaults so cells never share a backing array
func clone[T any](in T) T {
	rv := reflect.ValueOf(&in).Elem()
	if rv.Kind() != reflect.Slice || rv.IsNil() {
		return in
	}
	out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
	reflect.Copy(out, rv)
	return out.Interface().(T)
}
