// value.go — the runtime value universe (spec §3 "Value").
//
// Value is a tagged union, the same shape the teacher's interpreter.go uses
// for its own Value{Tag, Data} type: one small struct with a discriminant and
// an `any` payload, instead of an interface with a dozen implementations.
// Scalars (Num, Str, Bool, Null) are stored inline; everything with identity
// (List, *Object, *Func, *Struct, *Property, *BuiltinType, *Module) is stored
// as a pointer so copies of a Value alias the same underlying data, matching
// spec §3's "mutable; identity-based" note on List and the object model.
package safulate

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValueTag discriminates the payload stored in a Value.
type ValueTag uint8

const (
	TagNull ValueTag = iota
	TagBool
	TagNum
	TagStr
	TagList
	TagObject
	TagFunc
	TagStruct
	TagProperty
	TagBuiltinType
	TagModule
)

// Value is the universal runtime value. The zero Value is Null.
type Value struct {
	Tag  ValueTag
	Data any
}

// Null is the singleton null value.
var Null = Value{Tag: TagNull}

// True and False are the two boolean values.
var True = Value{Tag: TagBool, Data: true}
var False = Value{Tag: TagBool, Data: false}

// Bool converts a Go bool to the corresponding Value.
func Bool(b bool) Value {
	if b {
		return True
	}
	return False
}

// Num wraps a float64 as a Value; spec §13(d) fixes one numeric type.
func Num(n float64) Value { return Value{Tag: TagNum, Data: n} }

// Str wraps a Go string as an immutable Str value.
func Str(s string) Value { return Value{Tag: TagStr, Data: s} }

// List is the payload of a TagList value: an ordered, mutable, identity-based
// sequence, per spec §3. Wrapped in a pointer-backed struct (rather than a
// bare slice) so two Values holding "the same list" really do alias one
// underlying backing array through appends.
type List struct {
	Elems []Value
}

// NewList builds a TagList value from the given elements.
func NewList(elems ...Value) Value {
	return Value{Tag: TagList, Data: &List{Elems: elems}}
}

func (v Value) asList() *List { return v.Data.(*List) }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.Tag == TagNull }

// Truthy implements the language's default truthiness used by `if`/`while`
// conditions before the `bool` spec is consulted for objects (spec §4.5).
func (v Value) Truthy() bool {
	switch v.Tag {
	case TagNull:
		return false
	case TagBool:
		return v.Data.(bool)
	case TagNum:
		return v.Data.(float64) != 0
	case TagStr:
		return v.Data.(string) != ""
	case TagList:
		return len(v.asList().Elems) > 0
	default:
		return true
	}
}

// TypeName returns the lowercase builtin type name used in error messages
// and by the `types` introspection surface (spec §6).
func (v Value) TypeName() string {
	switch v.Tag {
	case TagNull:
		return "null"
	case TagBool:
		return "bool"
	case TagNum:
		return "num"
	case TagStr:
		return "str"
	case TagList:
		return "list"
	case TagObject:
		return v.asObject().typeName()
	case TagFunc:
		return "func"
	case TagStruct:
		return "struct"
	case TagProperty:
		return "property"
	case TagBuiltinType:
		return "type"
	case TagModule:
		return "module"
	default:
		return "value"
	}
}

// Repr renders a value's builtin representation, used by error messages and
// the REPL's result echo. It consults no spec: an object's `repr` spec is
// not called here.
func Repr(v Value) string {
	switch v.Tag {
	case TagNull:
		return "null"
	case TagBool:
		if v.Data.(bool) {
			return "true"
		}
		return "false"
	case TagNum:
		return formatNum(v.Data.(float64))
	case TagStr:
		return strconv.Quote(v.Data.(string))
	case TagList:
		elems := v.asList().Elems
		parts := make([]string, len(elems))
		for i, e := range elems {
			parts[i] = Repr(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case TagObject:
		return v.asObject().repr()
	case TagFunc:
		return fmt.Sprintf("<func %s>", v.asFunc().displayName())
	case TagStruct:
		return fmt.Sprintf("<struct %s>", v.asStruct().Name)
	case TagProperty:
		return "<property>"
	case TagBuiltinType:
		return fmt.Sprintf("<type %s>", v.Data.(*BuiltinType).Name)
	case TagModule:
		return fmt.Sprintf("<module %s>", v.Data.(*Module).Name)
	default:
		return "<value>"
	}
}

// ToString renders a value the way the language's `str` conversion (f-string
// default, `print`) would — strings pass through unquoted, everything else
// falls back to Repr.
func ToString(v Value) string {
	if v.Tag == TagStr {
		return v.Data.(string)
	}
	return Repr(v)
}

func formatNum(f float64) string {
	if math.IsInf(f, 1) {
		return "inf"
	}
	if math.IsInf(f, -1) {
		return "-inf"
	}
	if math.IsNaN(f) {
		return "nan"
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Identical implements the `===` identity-equality special case (spec §4.3,
// `special_cased_binary_specs` in the grounding source) and the default `eq`
// spec fallback for objects with none defined (Open Question c, SPEC_FULL §13c).
func Identical(a, b Value) bool {
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case TagNull:
		return true
	case TagBool:
		return a.Data.(bool) == b.Data.(bool)
	case TagNum:
		return a.Data.(float64) == b.Data.(float64)
	case TagStr:
		return a.Data.(string) == b.Data.(string)
	case TagList:
		return a.asList() == b.asList()
	case TagObject:
		return a.asObject() == b.asObject()
	case TagFunc:
		return a.asFunc() == b.asFunc()
	case TagStruct:
		return a.asStruct() == b.asStruct()
	case TagProperty:
		return a.Data.(*Property) == b.Data.(*Property)
	case TagBuiltinType:
		return a.Data.(*BuiltinType) == b.Data.(*BuiltinType)
	case TagModule:
		return a.Data.(*Module) == b.Data.(*Module)
	default:
		return false
	}
}
