// builtins.go — the standard builtin surface installed by NewRuntime (spec
// §6 "print, object(), list(...), dict(**kwargs), assert(cond[, msg]), a
// types namespace, string format(...)").
//
// Grounded on the original's interpreter/libs/builtins.py Builtins module
// (print/assert/dir/property/globals/id) and libs/builtins.py's `types`
// surface, re-expressed as a flat set of NativeFunc bindings on Global
// instead of a SafModule subclass, matching the teacher's own
// RegisterRuntimeBuiltin/SeedRuntimeInto flat-registration style rather
// than a class hierarchy.
package safulate

import (
	"sort"
	"strings"
)

// installBuiltins populates it.Global with the standard library surface.
func installBuiltins(it *Interpreter) {
	it.DefineBuiltin("null", Null)
	it.DefineBuiltin("true", True)
	it.DefineBuiltin("false", False)

	it.DefineBuiltin("print", NativeFunc("print", builtinPrint))
	it.DefineBuiltin("object", NativeFunc("object", builtinObject))
	it.DefineBuiltin("list", NativeFunc("list", builtinList))
	it.DefineBuiltin("dict", NativeFunc("dict", builtinDict))
	it.DefineBuiltin("assert", NativeFunc("assert", builtinAssert))
	it.DefineBuiltin("dir", NativeFunc("dir", builtinDir))
	it.DefineBuiltin("id", NativeFunc("id", builtinID))
	it.DefineBuiltin("globals", globalsFunc(it))
	it.DefineBuiltin("format", NativeFunc("format", builtinFormat))
	it.DefineBuiltin("repr", NativeFunc("repr", func(it *Interpreter, args []Value, kwargs map[string]Value) Value {
		requireArgs("repr", args, 1)
		return Str(Repr(args[0]))
	}))
	it.DefineBuiltin("str", NativeFunc("str", func(it *Interpreter, args []Value, kwargs map[string]Value) Value {
		requireArgs("str", args, 1)
		return Str(it.toDisplayString(Span{}, args[0]))
	}))

	it.DefineBuiltin("types", typesNamespace())
}

func requireArgs(name string, args []Value, n int) {
	if len(args) != n {
		throw(ArgumentError, Span{}, "%s expects %d argument(s), got %d", name, n, len(args))
	}
}

// builtinPrint implements `print(...)`: each argument rendered the way
// f-string interpolation would, space-separated, newline-terminated,
// written through Interpreter.Stdout so embedders control where output
// goes (spec §6).
func builtinPrint(it *Interpreter, args []Value, kwargs map[string]Value) Value {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = it.toDisplayString(Span{}, a)
	}
	it.Stdout(strings.Join(parts, " ") + "\n")
	return Null
}

func builtinObject(it *Interpreter, args []Value, kwargs map[string]Value) Value {
	obj := NewObject("")
	for k, v := range kwargs {
		obj.Pub[k] = v
	}
	return ObjectValue(obj)
}

func builtinList(it *Interpreter, args []Value, kwargs map[string]Value) Value {
	return NewList(append([]Value{}, args...)...)
}

func builtinDict(it *Interpreter, args []Value, kwargs map[string]Value) Value {
	obj := NewObject("dict")
	for k, v := range kwargs {
		obj.Pub[k] = v
	}
	return ObjectValue(obj)
}

func builtinAssert(it *Interpreter, args []Value, kwargs map[string]Value) Value {
	if len(args) == 0 {
		throw(ArgumentError, Span{}, "assert expects at least one argument")
	}
	if it.valueTruthy(Span{}, args[0]) {
		return Null
	}
	msg := "assertion failed"
	if len(args) > 1 {
		msg = it.toDisplayString(Span{}, args[1])
	}
	raiseValue(Span{}, ObjectValue(assertionErrorObject(msg)))
	return Null
}

func assertionErrorObject(msg string) *Object {
	obj := NewObject("AssertionError")
	obj.Pub["kind"] = Str("AssertionError")
	obj.Pub["message"] = Str(msg)
	return obj
}

// builtinDir implements `dir(obj[, full])` (spec §6 introspection):
// public attribute names, plus `$`-prefixed private and `%`-prefixed spec
// names when full is truthy, grounded on the original's dir_ method.
func builtinDir(it *Interpreter, args []Value, kwargs map[string]Value) Value {
	if len(args) == 0 {
		throw(ArgumentError, Span{}, "dir expects at least one argument")
	}
	obj := args[0]
	full := len(args) > 1 && it.valueTruthy(Span{}, args[1])

	var names []string
	switch obj.Tag {
	case TagObject:
		o := obj.asObject()
		for k := range o.Pub {
			names = append(names, k)
		}
		if full {
			for k := range o.Priv {
				names = append(names, "$"+k)
			}
			for k := range o.Specs {
				names = append(names, "%"+k)
			}
		}
	case TagModule:
		for k := range obj.Data.(*Module).Pub {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	elems := make([]Value, len(names))
	for i, n := range names {
		elems[i] = Str(n)
	}
	return NewList(elems...)
}

// builtinID returns an identity token distinguishing any two distinct list,
// object, function or other reference values, used by scripts the way the
// original's `id` builtin is: not a pointer address, but stable and unique
// per such value during one run. Null, bool, num and str values all get 0.
func builtinID(it *Interpreter, args []Value, kwargs map[string]Value) Value {
	requireArgs("id", args, 1)
	return Num(float64(it.identityOf(args[0])))
}

// identityOf backs the `id` builtin with a per-Interpreter counter rather
// than a raw pointer address, so Interpreters share no identity state (ids
// handed out by two different Interpreters can coincide).
func (it *Interpreter) identityOf(v Value) int64 {
	switch v.Tag {
	case TagNull, TagBool, TagNum, TagStr:
		return 0
	}
	if id, ok := it.identity[v.Data]; ok {
		return id
	}
	it.identitySeq++
	it.identity[v.Data] = it.identitySeq
	return it.identitySeq
}

// globalsFunc implements `globals()`: a snapshot dict-like object of the
// outermost lexical frame's bindings, grounded on the original's
// get_globals (`ctx.env.walk_parents()[-1]`).
func globalsFunc(it *Interpreter) Value {
	return NativeFunc("globals", func(_ *Interpreter, args []Value, kwargs map[string]Value) Value {
		obj := NewObject("dict")
		for k, v := range it.Global.Vars {
			obj.Pub[k] = v
		}
		return ObjectValue(obj)
	})
}

// builtinFormat implements string `format(template, *args, **kwargs)`
// (spec §6): `{}`-style positional placeholders consumed left to right,
// `{name}` placeholders resolved from kwargs.
func builtinFormat(it *Interpreter, args []Value, kwargs map[string]Value) Value {
	if len(args) == 0 {
		throw(ArgumentError, Span{}, "format expects a template string")
	}
	tmpl, ok := args[0].Data.(string)
	if args[0].Tag != TagStr || !ok {
		throw(TypeError, Span{}, "format template must be a string")
	}
	rest := args[1:]
	var b strings.Builder
	pos := 0
	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]
		if c != '{' {
			b.WriteByte(c)
			continue
		}
		j := strings.IndexByte(tmpl[i:], '}')
		if j < 0 {
			throw(ValueError, Span{}, "unterminated '{' in format template")
		}
		name := tmpl[i+1 : i+j]
		i += j
		if name == "" {
			if pos >= len(rest) {
				throw(ArgumentError, Span{}, "not enough positional arguments for format template")
			}
			b.WriteString(it.toDisplayString(Span{}, rest[pos]))
			pos++
			continue
		}
		v, ok := kwargs[name]
		if !ok {
			throw(ArgumentError, Span{}, "missing format argument %q", name)
		}
		b.WriteString(it.toDisplayString(Span{}, v))
	}
	return Str(b.String())
}

// typesNamespace builds the `types` module (spec §6): one BuiltinType per
// scalar kind plus `property`, each exposing `check(v) -> 0|1`.
func typesNamespace() Value {
	mod := &Module{Name: "types", Pub: map[string]Value{}}
	add := func(name string, check func(Value) bool) {
		bt := &BuiltinType{Name: name, Check: check}
		obj := NewObject(name)
		checkFn := NativeFunc(name+".check", func(it *Interpreter, args []Value, kwargs map[string]Value) Value {
			requireArgs("check", args, 1)
			if bt.Check(args[0]) {
				return Num(1)
			}
			return Num(0)
		})
		// `check` is a public method (spec §6: "each exposing check(v) ->
		// 0|1"), reachable both as a normal attribute call
		// (`types.str.check(v)`) and, via GetSpec, as the predicate a `catch
		// [types.str]` type filter consults (typeMatches, interpreter_exec.go).
		obj.Pub["check"] = checkFn
		obj.Specs["check"] = checkFn
		mod.Pub[name] = ObjectValue(obj)
	}
	add("str", func(v Value) bool { return v.Tag == TagStr })
	add("num", func(v Value) bool { return v.Tag == TagNum })
	add("bool", func(v Value) bool { return v.Tag == TagBool })
	add("list", func(v Value) bool { return v.Tag == TagList })
	add("func", func(v Value) bool { return v.Tag == TagFunc })
	add("property", func(v Value) bool { return v.Tag == TagProperty })
	add("null", func(v Value) bool { return v.Tag == TagNull })
	add("object", func(v Value) bool { return v.Tag == TagObject })
	return ModuleValue(mod)
}
