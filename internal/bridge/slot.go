package bridge

import (
	"fmt"
	"reflect"

	"github.com/Laisky/errors/v2"
)

var (
	// ErrNotCallable is returned when a slot has no function behind it.
	ErrNotCallable = errors.New("bridge function is not available")
	// ErrBadArgument is returned when an argument cannot be passed to the slot.
	ErrBadArgument = errors.New("bridge argument does not match slot signature")
	// ErrBadResult is returned when the slot produced a value of an unexpected type.
	ErrBadResult = errors.New("bridge result does not match expected type")
)

// Style tells the adapter how a slot delivers its result.
type Style int

const (
	// StyleAuto picks the style from the declared arity of the function.
	StyleAuto Style = iota
	// StyleSync slots return their result directly.
	StyleSync
	// StyleCallback slots take a trailing completion callback.
	StyleCallback
)

func (s Style) String() string {
	switch s {
	case StyleSync:
		return "sync"
	case StyleCallback:
		return "callback"
	default:
		return "auto"
	}
}

// Slot is one capability exposed by the host. The zero Slot is unavailable.
type Slot struct {
	Fn    any
	Style Style
}

// Sync tags fn as returning its result directly.
func Sync(fn any) Slot { return Slot{Fn: fn, Style: StyleSync} }

// Callback tags fn as delivering its result through a trailing callback.
func Callback(fn any) Slot { return Slot{Fn: fn, Style: StyleCallback} }

// Auto leaves the style to the declared arity of fn.
func Auto(fn any) Slot { return Slot{Fn: fn, Style: StyleAuto} }

// Available reports whether the slot holds a non-nil function.
func (s Slot) Available() bool {
	if s.Fn == nil {
		return false
	}
	v := reflect.ValueOf(s.Fn)
	return v.Kind() == reflect.Func && !v.IsNil()
}

// StyleFor resolves the style used when calling the slot with argc arguments.
// An untagged slot whose declared arity is at least argc+1 is callback style.
func (s Slot) StyleFor(argc int) Style {
	if s.Style != StyleAuto {
		return s.Style
	}
	if !s.Available() {
		return StyleAuto
	}
	if reflect.TypeOf(s.Fn).NumIn() >= argc+1 {
		return StyleCallback
	}
	return StyleSync
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Call invokes the slot and returns a future for its result.
//
// A callback style slot receives args followed by a completion callback;
// the future resolves with the first value that callback receives. A
// callback that never fires leaves the future pending. A sync slot
// resolves with its first return value. Panics and non-nil trailing
// error returns reject the future.
func Call[T any](s Slot, args ...any) (fut *Future[T]) {
	if !s.Available() {
		return rejected[T](ErrNotCallable)
	}

	fut = newFuture[T]()
	defer func() {
		if r := recover(); r != nil {
			fut.reject(panicError(r))
		}
	}()

	fn := reflect.ValueOf(s.Fn)
	switch s.StyleFor(len(args)) {
	case StyleCallback:
		callWithCallback(fut, fn, args)
	default:
		callSync(fut, fn, args)
	}
	return fut
}

func callSync[T any](fut *Future[T], fn reflect.Value, args []any) {
	ft := fn.Type()
	fixed := ft.NumIn()
	if ft.IsVariadic() {
		fixed--
	}
	if !ft.IsVariadic() && len(args) > fixed {
		fut.reject(errors.Wrapf(ErrBadArgument, "%d arguments for %d parameters", len(args), fixed))
		return
	}

	in := make([]reflect.Value, 0, ft.NumIn())
	for i := 0; i < fixed; i++ {
		var arg any
		if i < len(args) {
			arg = args[i]
		}
		v, err := convertArg(arg, ft.In(i))
		if err != nil {
			fut.reject(errors.Wrapf(err, "argument %d", i))
			return
		}
		in = append(in, v)
	}
	if ft.IsVariadic() {
		sliceType := ft.In(fixed)
		rest := reflect.MakeSlice(sliceType, 0, len(args))
		for i := fixed; i < len(args); i++ {
			v, err := convertArg(args[i], sliceType.Elem())
			if err != nil {
				fut.reject(errors.Wrapf(err, "argument %d", i))
				return
			}
			rest = reflect.Append(rest, v)
		}
		in = append(in, rest)
	}

	outs := invoke(fn, in)
	if err := trailingError(outs); err != nil {
		fut.reject(err)
		return
	}
	var first reflect.Value
	if len(outs) > 0 && !(len(outs) == 1 && outs[0].Type() == errorType) {
		first = outs[0]
	}
	v, err := convertResult[T](first)
	if err != nil {
		fut.reject(err)
		return
	}
	fut.resolve(v)
}

func callWithCallback[T any](fut *Future[T], fn reflect.Value, args []any) {
	ft := fn.Type()
	cbPos := len(args)
	if cbPos >= ft.NumIn() {
		fut.reject(errors.Wrapf(ErrBadArgument, "no callback parameter after %d arguments", cbPos))
		return
	}
	cbType := ft.In(cbPos)
	if cbType.Kind() != reflect.Func {
		fut.reject(errors.Wrapf(ErrBadArgument, "parameter %d is %s, not a callback", cbPos, cbType))
		return
	}

	cb := reflect.MakeFunc(cbType, func(in []reflect.Value) []reflect.Value {
		var first reflect.Value
		if len(in) > 0 {
			first = in[0]
		}
		v, err := convertResult[T](first)
		if err != nil {
			fut.reject(err)
		} else {
			fut.resolve(v)
		}
		outs := make([]reflect.Value, cbType.NumOut())
		for i := range outs {
			outs[i] = reflect.Zero(cbType.Out(i))
		}
		return outs
	})

	in := make([]reflect.Value, 0, ft.NumIn())
	for i := 0; i < cbPos; i++ {
		v, err := convertArg(args[i], ft.In(i))
		if err != nil {
			fut.reject(errors.Wrapf(err, "argument %d", i))
			return
		}
		in = append(in, v)
	}
	in = append(in, cb)
	for i := cbPos + 1; i < ft.NumIn(); i++ {
		in = append(in, reflect.Zero(ft.In(i)))
	}

	var outs []reflect.Value
	if ft.IsVariadic() {
		outs = fn.CallSlice(in)
	} else {
		outs = fn.Call(in)
	}
	if err := trailingError(outs); err != nil {
		fut.reject(err)
	}
}

func invoke(fn reflect.Value, in []reflect.Value) []reflect.Value {
	if fn.Type().IsVariadic() {
		return fn.CallSlice(in)
	}
	return fn.Call(in)
}

// convertArg maps a Go value onto a declared parameter type. nil becomes
// the zero value, and a value may be wrapped into a pointer parameter.
func convertArg(arg any, t reflect.Type) (reflect.Value, error) {
	if arg == nil {
		return reflect.Zero(t), nil
	}
	v := reflect.ValueOf(arg)
	if out, ok := assign(v, t); ok {
		return out, nil
	}
	if t.Kind() == reflect.Ptr {
		if elem, ok := assign(v, t.Elem()); ok {
			p := reflect.New(t.Elem())
			p.Elem().Set(elem)
			return p, nil
		}
	}
	if v.Kind() == reflect.Ptr && !v.IsNil() {
		if out, ok := assign(v.Elem(), t); ok {
			return out, nil
		}
	}
	return reflect.Value{}, errors.Wrapf(ErrBadArgument, "cannot use %s as %s", v.Type(), t)
}

func assign(v reflect.Value, t reflect.Type) (reflect.Value, bool) {
	if v.Type().AssignableTo(t) {
		return v, true
	}
	if v.Kind() == t.Kind() && v.Type().ConvertibleTo(t) {
		return v.Convert(t), true
	}
	return reflect.Value{}, false
}

func convertResult[T any](v reflect.Value) (T, error) {
	var zero T
	if !v.IsValid() {
		return zero, nil
	}
	if (v.Kind() == reflect.Interface || v.Kind() == reflect.Ptr) && v.IsNil() {
		return zero, nil
	}
	if out, ok := v.Interface().(T); ok {
		return out, nil
	}
	target := reflect.TypeOf((*T)(nil)).Elem()
	if out, ok := assign(v, target); ok {
		return out.Interface().(T), nil
	}
	if v.Kind() == reflect.Ptr {
		if out, ok := assign(v.Elem(), target); ok {
			return out.Interface().(T), nil
		}
	}
	return zero, errors.Wrapf(ErrBadResult, "got %s, want %s", v.Type(), target)
}

func trailingError(outs []reflect.Value) error {
	if len(outs) == 0 {
		return nil
	}
	last := outs[len(outs)-1]
	if last.Type() != errorType || last.IsNil() {
		return nil
	}
	return last.Interface().(error)
}

func panicError(r any) error {
	if err, ok := r.(error); ok {
		return errors.Wrap(err, "bridge call panicked")
	}
	return errors.Errorf("bridge call panicked: %s", fmt.Sprint(r))
}
