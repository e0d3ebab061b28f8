// object.go — the object model: namespaces, method binding, functions,
// structs, properties (spec §3 "Object"/"Function"/"Struct"/"Property",
// §4.3 Value Model & Object Protocol).
//
// Grounded on the original's interpreter/objects.py SafBaseObject/SafFunc/
// SafProperty, re-expressed as plain Go structs instead of a decorator-
// reflection class hierarchy: pub/priv/specs are ordinary maps on *Object,
// and a method read off an object produces a *freshly copied* *Func whose
// Parent field is the object it was read from — the late-bound "transient
// bound-method wrapper" spec §3's Invariants and §4.3 call for, rather than
// baking parent into the function at declaration time the way the original's
// visit_func_decl does (see DESIGN.md for this reconciliation).
package safulate

import "fmt"

// Object is the universal namespace-carrying value: three disjoint maps
// (spec §3 "Namespaces on an Object") plus an optional type label used for
// error messages and `types` introspection.
type Object struct {
	Label string // "" for a plain object() instance
	Pub   map[string]Value
	Priv  map[string]Value
	Specs map[string]Value
}

// NewObject allocates an empty object, the runtime behavior of the `object()`
// builtin (spec §6).
func NewObject(label string) *Object {
	return &Object{
		Label: label,
		Pub:   map[string]Value{},
		Priv:  map[string]Value{},
		Specs: map[string]Value{},
	}
}

func (v Value) asObject() *Object { return v.Data.(*Object) }

// ObjectValue wraps an *Object as a Value.
func ObjectValue(o *Object) Value { return Value{Tag: TagObject, Data: o} }

func (o *Object) typeName() string {
	if o.Label != "" {
		return o.Label
	}
	return "object"
}

func (o *Object) repr() string {
	if fn, ok := o.Specs["repr"]; ok {
		_ = fn // dispatched by the evaluator (interpreter_ops.go); this is
		// only the fallback used when no evaluator context is available.
	}
	return fmt.Sprintf("<%s>", o.typeName())
}

// GetPub reads a public attribute. When the value is a *Func, it returns a
// freshly bound copy whose Parent is this object — the late-binding
// invariant from spec §3 ("parent in a method frame refers to the object the
// method was read from, not the defining object").
func (o *Object) GetPub(name string) (Value, bool) {
	v, ok := o.Pub[name]
	if !ok {
		return Value{}, false
	}
	switch v.Tag {
	case TagFunc:
		return Value{Tag: TagFunc, Data: v.asFunc().boundTo(o)}, true
	case TagProperty:
		prop := v.Data.(*Property)
		return PropertyValue(&Property{Func: prop.Func.boundTo(o)}), true
	}
	return v, true
}

// GetSpec looks up a spec callable by name, per spec §4.3's operator
// dispatch. Specs are never bound to a parent the way pub methods are — a
// spec always runs with the object it's defined on.
func (o *Object) GetSpec(name string) (Value, bool) {
	v, ok := o.Specs[name]
	return v, ok
}

// GetSpecsSnapshot materializes a snapshot object exposing the specs
// namespace as its pub namespace. It is a Go-side helper; no script-level
// name is bound to it.
func (o *Object) GetSpecsSnapshot() Value {
	snap := NewObject("specs")
	for k, v := range o.Specs {
		snap.Pub[k] = v
	}
	return ObjectValue(snap)
}

// ---- functions ----

// Func is the universal callable value: spec §3's "parameter descriptor,
// default expressions captured with their defining environment, body AST
// node, captured environment, optional bound parent, optional list of
// applied partial arguments".
type Func struct {
	Name          string
	Params        []Param
	Body          []Node
	Env           *Env
	Parent        *Object
	PartialArgs   []Value
	PartialKwargs map[string]Value
	Native        func(it *Interpreter, args []Value, kwargs map[string]Value) Value
	IsSpec        bool
}

func (v Value) asFunc() *Func { return v.Data.(*Func) }

// FuncValue wraps a *Func as a Value.
func FuncValue(f *Func) Value { return Value{Tag: TagFunc, Data: f} }

func (f *Func) displayName() string {
	if f.Name != "" {
		return f.Name
	}
	return "<anonymous>"
}

// boundTo returns a shallow copy of f with Parent set to obj — the transient
// bound-method wrapper created on every attribute read (spec §3 Invariants).
func (f *Func) boundTo(obj *Object) *Func {
	copy := *f
	copy.Parent = obj
	return &copy
}

// withPartial returns a new *Func with additional partial-bound args/kwargs
// merged in ahead of any future call's own arguments — the `altcall` spec
// (`f[a, b]`), grounded on the original's SafFunc.altcall/with_partial_params
// and generalized to an overridable spec per SPEC_FULL §12.
func (f *Func) withPartial(args []Value, kwargs map[string]Value) *Func {
	merged := *f
	merged.PartialArgs = append(append([]Value{}, f.PartialArgs...), args...)
	mk := map[string]Value{}
	for k, v := range f.PartialKwargs {
		mk[k] = v
	}
	for k, v := range kwargs {
		mk[k] = v
	}
	merged.PartialKwargs = mk
	return &merged
}

// NativeFunc builds a builtin *Func wrapping a Go function, used throughout
// builtins.go, grounded on the original's SafFunc.from_native.
func NativeFunc(name string, fn func(it *Interpreter, args []Value, kwargs map[string]Value) Value) Value {
	return FuncValue(&Func{Name: name, Native: fn})
}

// ---- structs ----

// Struct is a Function that, called, allocates a fresh Object, runs its body
// with that object bound as the current edit scope, and returns it (spec §3
// "Struct", §4.10 "Struct desugaring").
type Struct struct {
	Name   string
	Params []Param
	Body   []Node
	Env    *Env
}

func (v Value) asStruct() *Struct { return v.Data.(*Struct) }

// StructValue wraps a *Struct as a Value.
func StructValue(s *Struct) Value { return Value{Tag: TagStruct, Data: s} }

// ---- properties ----

// Property wraps a zero-argument Function; reading it from an attribute
// invokes the function, per spec §3 "Property".
type Property struct {
	Func *Func
}

// PropertyValue wraps a *Property as a Value.
func PropertyValue(p *Property) Value { return Value{Tag: TagProperty, Data: p} }

// ---- builtin types ----

// BuiltinType provides `check(v) -> 0|1` and, optionally, construction —
// spec §3 "BuiltinType", backing the `types` namespace of spec §6 and the
// SUPPLEMENT-ed declarative `type` construct of SPEC_FULL §12.
type BuiltinType struct {
	Name      string
	Check     func(v Value) bool
	Construct func(it *Interpreter, args []Value, kwargs map[string]Value) Value
}

// BuiltinTypeValue wraps a *BuiltinType as a Value.
func BuiltinTypeValue(t *BuiltinType) Value { return Value{Tag: TagBuiltinType, Data: t} }

// ---- modules ----

// Module is the namespace produced by resolving a `req` directive (spec §6
// "Module loader"), exposing its exported bindings as plain attributes.
type Module struct {
	Name string
	Pub  map[string]Value
}

// ModuleValue wraps a *Module as a Value.
func ModuleValue(m *Module) Value { return Value{Tag: TagModule, Data: m} }
