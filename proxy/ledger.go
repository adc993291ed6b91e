package proxy

import (
	"honnef.co/go/pointerproxy/debug"
	"honnef.co/go/pointerproxy/io/native"
	"honnef.co/go/pointerproxy/io/pointer"
)

// Dependencies maps each logical type to the native types that have to be
// observed to synthesize it.
type Dependencies map[pointer.Type][]native.Type

var synthesizedDependencies = Dependencies{
	pointer.Down:   {native.MouseDown, native.TouchStart},
	pointer.Up:     {native.MouseUp, native.TouchEnd},
	pointer.Move:   {native.MouseMove, native.TouchStart, native.TouchMove, native.TouchEnd},
	pointer.Over:   {native.MouseOver, native.TouchStart, native.TouchMove},
	pointer.Out:    {native.MouseOut, native.TouchMove, native.TouchEnd, native.TouchCancel},
	pointer.Cancel: {native.TouchCancel},
}

var nativeDependencies = Dependencies{
	pointer.Down:   {native.PointerDown},
	pointer.Up:     {native.PointerUp},
	pointer.Move:   {native.PointerMove},
	pointer.Over:   {native.PointerOver},
	pointer.Out:    {native.PointerOut},
	pointer.Cancel: {native.PointerCancel},
}

var vendorDependencies = Dependencies{
	pointer.Down:   {native.MSPointerDown},
	pointer.Up:     {native.MSPointerUp},
	pointer.Move:   {native.MSPointerMove},
	pointer.Over:   {native.MSPointerOver},
	pointer.Out:    {native.MSPointerOut},
	pointer.Cancel: {native.MSPointerCancel},
}

// DependenciesFor returns the dependency table of a mode.
func DependenciesFor(m Mode) Dependencies {
	switch m {
	case Native:
		return nativeDependencies
	case Vendor:
		return vendorDependencies
	default:
		return synthesizedDependencies
	}
}

// Ledger reference counts logical bindings and the native types they depend
// on. It only counts; callers attach and detach native listeners according to
// the transitions it reports.
type Ledger struct {
	deps    Dependencies
	logical map[pointer.Type]int
	native  [native.NumTypes]int
	total   int
}

func NewLedger(deps Dependencies) *Ledger {
	return &Ledger{
		deps:    deps,
		logical: make(map[pointer.Type]int),
	}
}

// Bind counts a binding of t and returns the native types whose count went
// from zero to one.
func (l *Ledger) Bind(t pointer.Type) (attach []native.Type) {
	l.logical[t]++
	l.total++
	for _, n := range l.deps[t] {
		l.native[n]++
		if l.native[n] == 1 {
			attach = append(attach, n)
		}
	}
	return attach
}

// Unbind releases a binding of t and returns the native types whose count
// dropped to zero. Unbinding a type that isn't bound does nothing.
func (l *Ledger) Unbind(t pointer.Type) (detach []native.Type) {
	if l.logical[t] == 0 {
		return nil
	}
	l.logical[t]--
	l.total--
	for _, n := range l.deps[t] {
		debug.Assert(l.native[n] > 0)
		l.native[n]--
		if l.native[n] == 0 {
			detach = append(detach, n)
		}
	}
	return detach
}

// IsBound reports whether any logical type is still bound.
func (l *Ledger) IsBound() bool {
	return l.total != 0
}

func (l *Ledger) Count(t pointer.Type) int { return l.logical[t] }

func (l *Ledger) NativeCount(n native.Type) int { return l.native[n] }

func (l *Ledger) Total() int { return l.total }

// Interested reports whether any of the types in the set is bound.
func (l *Ledger) Interested(set pointer.Type) bool {
	for _, t := range pointer.AllTypes {
		if set&t != 0 && l.logical[t] > 0 {
			return true
		}
	}
	return false
}
