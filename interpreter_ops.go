// interpreter_ops.go — expression evaluation, operator/spec dispatch, and
// call argument binding (spec §4.3 "Operator dispatch (specs)", "Argument
// binding").
//
// Grounded on the original's interpreter/interpreter.py visit_binary/
// visit_unary/visit_call/visit_atom and interpreter/objects.py SafFunc.
// validate_params (the full argument-binding algorithm: positional, then
// keyword merged with keyword-spread, vararg/varkwarg draining, duplicate
// and missing/unexpected detection) and SafFunc.altcall (partial
// application).
package safulate

import (
	"math"
	"strings"
)

// eval evaluates an expression node to a Value.
func (it *Interpreter) eval(n Node, env *Env) Value {
	switch node := n.(type) {
	case *NumLit:
		return Num(node.Value)
	case *StrLit:
		return Str(node.Value)
	case *BoolLit:
		return Bool(node.Value)
	case *NullLit:
		return Null
	case *ListLit:
		elems := make([]Value, len(node.Elems))
		for i, e := range node.Elems {
			elems[i] = it.eval(e, env)
		}
		return NewList(elems...)
	case *FstrLit:
		return it.evalFstr(node, env)
	case *Ident:
		v, ok := env.Get(node.Name)
		if !ok {
			throw(NameError, node.Span(), "name %q is not defined", node.Name)
		}
		return v
	case *UnaryOp:
		return it.evalUnary(node, env)
	case *BinaryOp:
		return it.evalBinary(node, env)
	case *Call:
		return it.evalCall(node, env)
	case *GetAttr:
		return it.evalGetAttr(node, env)
	case *GetItem:
		return it.evalGetItem(node, env)
	case *Assign:
		return it.evalAssign(node, env)
	case *Edit:
		return it.evalEdit(node, env)
	case *Block:
		return it.execBlock(node.Stmts, NewEnv(env))
	case *If:
		return it.execIf(node, env)
	case *VarDecl:
		return it.execVarDecl(node, env)
	case *FuncDecl:
		if node.Name == "" {
			fn := &Func{Params: node.Params, Body: node.Body, Env: env, IsSpec: node.IsSpec}
			v := FuncValue(fn)
			for _, deco := range node.Decorators {
				v = it.applyDecorator(node.Span(), it.eval(deco, env), v)
			}
			return v
		}
		it.execFuncDecl(node, env)
		v, _ := env.Get(node.Name)
		return v
	case *StructDecl:
		it.execStructDecl(node, env)
		v, _ := env.Get(node.Name)
		return v
	case *TypeDecl:
		it.execTypeDecl(node, env)
		v, _ := env.Get(node.Name)
		return v
	case *PropertyMarker:
		return propertyMarker
	default:
		throw(SyntaxError, n.Span(), "cannot evaluate node %T", n)
		return Null
	}
}

func (it *Interpreter) evalFstr(node *FstrLit, env *Env) Value {
	var b strings.Builder
	for _, seg := range node.Segments {
		if seg.Expr == nil {
			b.WriteString(seg.Text)
			continue
		}
		v := it.eval(seg.Expr, env)
		b.WriteString(it.toDisplayString(node.Span(), v))
	}
	return Str(b.String())
}

// toDisplayString renders a value for string interpolation, consulting a
// `str`-family spec first when the value is an object.
func (it *Interpreter) toDisplayString(span Span, v Value) string {
	if v.Tag == TagObject {
		if spec, ok := v.asObject().GetSpec("str"); ok {
			return ToString(it.call(span, spec, nil, nil))
		}
		if spec, ok := v.asObject().GetSpec("repr"); ok {
			return ToString(it.call(span, spec, nil, nil))
		}
	}
	return ToString(v)
}

// ---- unary ----

func (it *Interpreter) evalUnary(node *UnaryOp, env *Env) Value {
	if node.Op == "parentaccess" {
		return it.evalParentAccess(node, env)
	}
	v := it.eval(node.Operand, env)

	if v.Tag == TagObject {
		if spec, ok := v.asObject().GetSpec(node.Op); ok {
			return it.call(node.Span(), spec, nil, nil)
		}
		if node.Op == "bool" || node.Op == "not" {
			// falls through to default truthiness below
		} else {
			throw(TypeError, node.Span(), "%s does not support unary %q", v.TypeName(), node.Op)
		}
	}

	switch node.Op {
	case "neg":
		if v.Tag != TagNum {
			throw(TypeError, node.Span(), "cannot negate %s", v.TypeName())
		}
		return Num(-v.Data.(float64))
	case "pos":
		if v.Tag != TagNum {
			throw(TypeError, node.Span(), "unary '+' is not defined for %s", v.TypeName())
		}
		return v
	case "not":
		return Bool(!it.valueTruthy(node.Span(), v))
	case "bool":
		return Bool(it.valueTruthy(node.Span(), v))
	default:
		throw(TypeError, node.Span(), "unknown unary operator %q", node.Op)
		return Null
	}
}

// evalParentAccess implements the SUPPLEMENT-ed `\name` backslash private
// access (SPEC_FULL §12): reads `priv.name` off the object `depth` levels up
// the chain of object-bound frames enclosing this expression.
func (it *Interpreter) evalParentAccess(node *UnaryOp, env *Env) Value {
	ident := node.Operand.(*Ident)
	objs := env.boundObjectsOuterToInner()
	// objs[0] is the nearest bound object; depth 1 means "its parent", i.e.
	// one further out in the chain.
	idx := node.Depth
	if idx >= len(objs) {
		throw(AttributeError, node.Span(), "no enclosing object %d levels up", node.Depth)
	}
	obj := objs[idx]
	v, ok := obj.Priv[ident.Name]
	if !ok {
		throw(AttributeError, node.Span(), "%q has no private attribute %q", obj.typeName(), ident.Name)
	}
	return v
}

// ---- binary ----

// evalBinary evaluates a binary operator: short-circuit and/or, `===`
// identity, then the left operand's matching spec, then defaultBinary's
// builtin scalar default specs spec §4.3 refers to ("For builtin scalars,
// the runtime provides default specs"), grounded on the original's
// _DefaultSpecs register of per-operator fallbacks on
// SafBaseObject/SafNum/SafStr/SafList.
func (it *Interpreter) evalBinary(node *BinaryOp, env *Env) Value {
	left := it.eval(node.Left, env)

	switch node.Op {
	case "and":
		if !it.valueTruthy(node.Span(), left) {
			return left
		}
		return it.eval(node.Right, env)
	case "or":
		if it.valueTruthy(node.Span(), left) {
			return left
		}
		return it.eval(node.Right, env)
	}

	right := it.eval(node.Right, env)

	if node.Op == "identical" {
		return Bool(Identical(left, right))
	}

	if left.Tag == TagObject {
		if spec, ok := left.asObject().GetSpec(node.Op); ok {
			return it.call(node.Span(), spec, []Value{right}, nil)
		}
	}

	if v, ok := defaultBinary(left, right, node.Op); ok {
		return v
	}

	throw(TypeError, node.Span(), "%s is not defined for %s and %s", node.Op, left.TypeName(), right.TypeName())
	return Null
}

func (it *Interpreter) specEq(span Span, a, b Value) bool {
	if a.Tag == TagObject {
		if spec, ok := a.asObject().GetSpec("eq"); ok {
			return it.valueTruthy(span, it.call(span, spec, []Value{b}, nil))
		}
	}
	if v, ok := defaultBinary(a, b, "eq"); ok {
		return v.Truthy()
	}
	return Identical(a, b)
}

// defaultBinary implements the default specs for Num/Str/List/Bool/Null,
// spec §4.3's "for builtin scalars, the runtime provides default specs".
func defaultBinary(left, right Value, op string) (Value, bool) {
	switch op {
	case "eq":
		return Bool(Identical(left, right) || numericEq(left, right)), true
	case "ne":
		v, _ := defaultBinary(left, right, "eq")
		return Bool(!v.Truthy()), true
	}

	switch left.Tag {
	case TagNum:
		if right.Tag != TagNum {
			if op == "add" && right.Tag == TagStr {
				break
			}
			return Value{}, false
		}
		a, b := left.Data.(float64), right.Data.(float64)
		switch op {
		case "add":
			return Num(a + b), true
		case "sub":
			return Num(a - b), true
		case "mul":
			return Num(a * b), true
		case "div":
			if b == 0 {
				return Value{}, false
			}
			return Num(a / b), true
		case "pow":
			return Num(numPow(a, b)), true
		case "lt":
			return Bool(a < b), true
		case "le":
			return Bool(a <= b), true
		case "gt":
			return Bool(a > b), true
		case "ge":
			return Bool(a >= b), true
		}
	case TagStr:
		a := left.Data.(string)
		switch op {
		case "add":
			return Str(a + ToString(right)), true
		case "mul":
			if right.Tag == TagNum {
				return Str(strings.Repeat(a, int(right.Data.(float64)))), true
			}
		case "contains":
			if right.Tag == TagStr {
				return Bool(strings.Contains(a, right.Data.(string))), true
			}
		case "lt", "le", "gt", "ge":
			if right.Tag == TagStr {
				b := right.Data.(string)
				switch op {
				case "lt":
					return Bool(a < b), true
				case "le":
					return Bool(a <= b), true
				case "gt":
					return Bool(a > b), true
				case "ge":
					return Bool(a >= b), true
				}
			}
		}
	case TagList:
		switch op {
		case "add":
			if right.Tag == TagList {
				elems := append(append([]Value{}, left.asList().Elems...), right.asList().Elems...)
				return NewList(elems...), true
			}
		case "contains":
			for _, e := range left.asList().Elems {
				if Identical(e, right) || numericEq(e, right) {
					return Bool(true), true
				}
			}
			return Bool(false), true
		}
	}
	return Value{}, false
}

func numericEq(a, b Value) bool {
	return a.Tag == TagNum && b.Tag == TagNum && a.Data.(float64) == b.Data.(float64)
}

func numPow(a, b float64) float64 {
	return math.Pow(a, b)
}

// ---- attribute/item access ----

func (it *Interpreter) evalGetAttr(node *GetAttr, env *Env) Value {
	obj := it.eval(node.Object, env)
	return it.getAttr(node.Span(), obj, node.Name)
}

func (it *Interpreter) getAttr(span Span, obj Value, name string) Value {
	switch obj.Tag {
	case TagObject:
		v, ok := obj.asObject().GetPub(name)
		if !ok {
			throw(AttributeError, span, "%s has no attribute %q", obj.TypeName(), name)
		}
		if v.Tag == TagProperty {
			return it.call(span, FuncValue(v.Data.(*Property).Func), nil, nil)
		}
		return v
	case TagModule:
		v, ok := obj.Data.(*Module).Pub[name]
		if !ok {
			throw(AttributeError, span, "module %q has no export %q", obj.Data.(*Module).Name, name)
		}
		return v
	case TagFunc:
		switch name {
		case "partial_args":
			return NewList(obj.asFunc().PartialArgs...)
		case "without_partials":
			f := *obj.asFunc()
			f.PartialArgs = nil
			f.PartialKwargs = nil
			return FuncValue(&f)
		}
	case TagList:
		switch name {
		case "length":
			return Num(float64(len(obj.asList().Elems)))
		}
	case TagStr:
		switch name {
		case "length":
			return Num(float64(len([]rune(obj.Data.(string)))))
		}
	}
	throw(AttributeError, span, "%s has no attribute %q", obj.TypeName(), name)
	return Null
}

func (it *Interpreter) evalGetItem(node *GetItem, env *Env) Value {
	obj := it.eval(node.Object, env)
	idx := it.eval(node.Index, env)
	switch obj.Tag {
	case TagList:
		if idx.Tag != TagNum {
			throw(TypeError, node.Span(), "list index must be a number")
		}
		elems := obj.asList().Elems
		i := int(idx.Data.(float64))
		if i < 0 || i >= len(elems) {
			throw(ValueError, node.Span(), "list index %d out of range", i)
		}
		return elems[i]
	case TagStr:
		if idx.Tag != TagNum {
			throw(TypeError, node.Span(), "string index must be a number")
		}
		runes := []rune(obj.Data.(string))
		i := int(idx.Data.(float64))
		if i < 0 || i >= len(runes) {
			throw(ValueError, node.Span(), "string index %d out of range", i)
		}
		return Str(string(runes[i]))
	case TagObject:
		if spec, ok := obj.asObject().GetSpec("get"); ok {
			return it.call(node.Span(), spec, []Value{idx}, nil)
		}
	}
	throw(TypeError, node.Span(), "%s does not support indexing", obj.TypeName())
	return Null
}

// ---- assignment ----

func (it *Interpreter) evalAssign(node *Assign, env *Env) Value {
	value := it.eval(node.Value, env)
	if node.Op != "" {
		current := it.eval(node.Target, env)
		value = it.applyBinarySpec(node.Span(), current, value, node.Op)
	}

	switch t := node.Target.(type) {
	case *Ident:
		if !env.Set(t.Name, value) {
			throw(NameError, node.Span(), "name %q is not defined", t.Name)
		}
	case *GetAttr:
		obj := it.eval(t.Object, env)
		if obj.Tag != TagObject {
			throw(AttributeError, node.Span(), "cannot set attribute on %s outside an edit block", obj.TypeName())
		}
		throw(AttributeError, node.Span(), "attribute write to %q requires an edit block (obj ~ { ... })", t.Name)
	case *GetItem:
		obj := it.eval(t.Object, env)
		idx := it.eval(t.Index, env)
		if obj.Tag == TagList && idx.Tag == TagNum {
			elems := obj.asList().Elems
			i := int(idx.Data.(float64))
			if i < 0 || i >= len(elems) {
				throw(ValueError, node.Span(), "list index %d out of range", i)
			}
			elems[i] = value
			return value
		}
		if obj.Tag == TagObject {
			if spec, ok := obj.asObject().GetSpec("set"); ok {
				return it.call(node.Span(), spec, []Value{idx, value}, nil)
			}
		}
		throw(TypeError, node.Span(), "%s does not support item assignment", obj.TypeName())
	default:
		throw(SyntaxError, node.Span(), "invalid assignment target")
	}
	return value
}

func (it *Interpreter) applyBinarySpec(span Span, left, right Value, op string) Value {
	if left.Tag == TagObject {
		if spec, ok := left.asObject().GetSpec(op); ok {
			return it.call(span, spec, []Value{right}, nil)
		}
	}
	if v, ok := defaultBinary(left, right, op); ok {
		return v
	}
	throw(TypeError, span, "%s is not defined for %s and %s", op, left.TypeName(), right.TypeName())
	return Null
}

// ---- edit blocks (spec §4.3 "Edit block") ----

func (it *Interpreter) evalEdit(node *Edit, env *Env) Value {
	target := it.eval(node.Target, env)
	if target.Tag != TagObject {
		throw(TypeError, node.Span(), "cannot edit a %s", target.TypeName())
	}
	boundEnv := NewBoundEnv(env, target.asObject())
	it.execBlock(node.Body, boundEnv)
	return target
}

// ---- calls & argument binding (spec §4.3 "Argument binding") ----

func (it *Interpreter) evalCall(node *Call, env *Env) Value {
	callee := it.eval(node.Callee, env)
	args, kwargs := it.evalArgs(node.Args, env)

	if node.Alt {
		return it.altcall(node.Span(), callee, args, kwargs)
	}
	return it.call(node.Span(), callee, args, kwargs)
}

func (it *Interpreter) evalArgs(argNodes []Arg, env *Env) ([]Value, map[string]Value) {
	var positional []Value
	var kwargs map[string]Value
	for _, a := range argNodes {
		switch a.Kind {
		case ArgPositional:
			positional = append(positional, it.eval(a.Value, env))
		case ArgSpread:
			v := it.eval(a.Value, env)
			if v.Tag != TagList {
				throw(TypeError, a.Value.Span(), "positional spread requires a list, got %s", v.TypeName())
			}
			positional = append(positional, v.asList().Elems...)
		case ArgKeyword:
			if kwargs == nil {
				kwargs = map[string]Value{}
			}
			if _, dup := kwargs[a.Name]; dup {
				throw(ArgumentError, a.Value.Span(), "duplicate keyword argument %q", a.Name)
			}
			kwargs[a.Name] = it.eval(a.Value, env)
		case ArgKeywordSpread:
			v := it.eval(a.Value, env)
			if v.Tag != TagObject {
				throw(TypeError, a.Value.Span(), "keyword spread requires a dict-like object, got %s", v.TypeName())
			}
			if kwargs == nil {
				kwargs = map[string]Value{}
			}
			for k, val := range v.asObject().Pub {
				kwargs[k] = val
			}
		case ArgDynamicKeyword:
			name := it.eval(a.NameExpr, env)
			if name.Tag != TagStr {
				throw(TypeError, a.NameExpr.Span(), "dynamic keyword name must be a string, got %s", name.TypeName())
			}
			if kwargs == nil {
				kwargs = map[string]Value{}
			}
			kwargs[name.Data.(string)] = it.eval(a.Value, env)
		}
	}
	return positional, kwargs
}

// altcall implements `f[...]` (spec §4.3 partial application; SPEC_FULL §12
// generalizes it to an overridable spec): on an object with an `altcall`
// spec that fires; on a *Func it produces a new *Func with the given
// arguments bound ahead of any future call's own, without invoking it.
func (it *Interpreter) altcall(span Span, callee Value, args []Value, kwargs map[string]Value) Value {
	switch callee.Tag {
	case TagFunc:
		return FuncValue(callee.asFunc().withPartial(args, kwargs))
	case TagObject:
		if spec, ok := callee.asObject().GetSpec("altcall"); ok {
			return it.callWithKwargs(span, spec, args, kwargs)
		}
	}
	throw(TypeError, span, "%s does not support partial application", callee.TypeName())
	return Null
}

// call invokes callee per spec §4.3's dispatch (`()` routes through the
// `call` spec on objects; on *Func/*Struct it runs the function body).
func (it *Interpreter) call(span Span, callee Value, args []Value, kwargs map[string]Value) Value {
	return it.callWithKwargs(span, callee, args, kwargs)
}

func (it *Interpreter) callWithKwargs(span Span, callee Value, args []Value, kwargs map[string]Value) Value {
	it.depth++
	if it.depth > 2000 {
		it.depth--
		throw(StackOverflowError, span, "maximum call depth exceeded")
	}
	defer func() { it.depth-- }()

	switch callee.Tag {
	case TagFunc:
		return it.callFunc(span, callee.asFunc(), args, kwargs)
	case TagStruct:
		return it.callStruct(span, callee.asStruct(), args, kwargs)
	case TagBuiltinType:
		bt := callee.Data.(*BuiltinType)
		if bt.Construct == nil {
			throw(TypeError, span, "type %q is not constructible", bt.Name)
		}
		return bt.Construct(it, args, kwargs)
	case TagObject:
		if spec, ok := callee.asObject().GetSpec("call"); ok {
			return it.callWithKwargs(span, spec, args, kwargs)
		}
	}
	throw(TypeError, span, "%s is not callable", callee.TypeName())
	return Null
}

func (it *Interpreter) callFunc(span Span, f *Func, args []Value, kwargs map[string]Value) (result Value) {
	allArgs := append(append([]Value{}, f.PartialArgs...), args...)
	allKwargs := map[string]Value{}
	for k, v := range f.PartialKwargs {
		allKwargs[k] = v
	}
	for k, v := range kwargs {
		allKwargs[k] = v
	}

	if f.Native != nil {
		return f.Native(it, allArgs, allKwargs)
	}

	callEnv := NewCallEnv(f.Env, f.Parent)
	bindParams(it, span, f.Params, allArgs, allKwargs, callEnv)

	// A function body starts with no enclosing loop/switch of its own: break
	// and continue never cross a call boundary (spec §4.6 ties their depth
	// counting to lexical-within-one-function iteration constructs, the same
	// way the original's SafulateBreakoutError/SafulateInvalidContinue never
	// survive a Python function return). Save and reset the stack here
	// rather than relying solely on the recover below, so forSwitchHere()
	// evaluated inside the callee never sees the caller's loop/switch nesting.
	savedConstructs := it.constructStack
	it.constructStack = nil

	defer func() {
		it.constructStack = savedConstructs
		if r := recover(); r != nil {
			switch r.(type) {
			case returnSignal:
				result = r.(returnSignal).value
				return
			case breakSignal:
				throw(ScopeError, span, "break used outside of a loop")
			case continueSignal:
				throw(ScopeError, span, "continue used outside of a loop")
			default:
				panic(r)
			}
		}
	}()
	return it.execBlock(f.Body, callEnv)
}

// callStruct implements struct desugaring (spec §4.10): allocate a fresh
// object, run the body as an edit block bound to it, return the object.
func (it *Interpreter) callStruct(span Span, s *Struct, args []Value, kwargs map[string]Value) Value {
	obj := NewObject(s.Name)
	callEnv := NewCallEnv(s.Env, nil)
	bindParams(it, span, s.Params, args, kwargs, callEnv)

	// Struct bodies run as their own call frame, same loop/switch isolation
	// as callFunc above.
	savedConstructs := it.constructStack
	it.constructStack = nil
	defer func() {
		it.constructStack = savedConstructs
		if r := recover(); r != nil {
			switch r.(type) {
			case breakSignal:
				throw(ScopeError, span, "break used outside of a loop")
			case continueSignal:
				throw(ScopeError, span, "continue used outside of a loop")
			default:
				panic(r)
			}
		}
	}()

	boundEnv := NewBoundEnv(callEnv, obj)
	it.execBlock(s.Body, boundEnv)
	return ObjectValue(obj)
}

// bindParams implements the argument-binding algorithm of spec §4.3: named
// positional parameters first, a vararg parameter draining remaining
// positionals into a list, a varkwarg parameter draining remaining keywords
// into an object, defaults evaluated in the function's own captured
// environment, and ArgumentError for both missing-required and
// unexpected-extra arguments. Grounded on the original's
// SafFunc._validate_params.
func bindParams(it *Interpreter, span Span, params []Param, args []Value, kwargs map[string]Value, dest *Env) {
	kwargs = cloneKwargs(kwargs)
	ai := 0
	for _, p := range params {
		switch p.Kind {
		case ParamVararg:
			dest.Declare(p.Name, NewList(args[ai:]...))
			ai = len(args)
			continue
		case ParamVarKwarg:
			obj := NewObject("dict")
			for k, v := range kwargs {
				obj.Pub[k] = v
			}
			dest.Declare(p.Name, ObjectValue(obj))
			kwargs = map[string]Value{}
			continue
		}

		if ai < len(args) {
			dest.Declare(p.Name, args[ai])
			ai++
			continue
		}
		if v, ok := kwargs[p.Name]; ok {
			dest.Declare(p.Name, v)
			delete(kwargs, p.Name)
			continue
		}
		if p.Default != nil {
			dest.Declare(p.Name, it.eval(p.Default, dest))
			continue
		}
		throw(ArgumentError, span, "missing required argument %q", p.Name)
	}

	if ai < len(args) {
		throw(ArgumentError, span, "received %d extra positional argument(s)", len(args)-ai)
	}
	if len(kwargs) > 0 {
		var names []string
		for k := range kwargs {
			names = append(names, k)
		}
		throw(ArgumentError, span, "received unexpected keyword argument(s): %s", strings.Join(names, ", "))
	}
}

func cloneKwargs(kwargs map[string]Value) map[string]Value {
	out := map[string]Value{}
	for k, v := range kwargs {
		out[k] = v
	}
	return out
}

// ---- declarative type construct (SPEC_FULL §12) ----

// execTypeDecl implements `type Name { staticBody } -> (fields...) {
// instanceBody }`: staticBody runs once as an edit block against a type
// object that carries the static namespace; calling the type allocates an
// instance object, binds fields positionally/by keyword the same way a
// function call would, exposes them as public attributes, then runs
// instanceBody as an edit block against the new instance. The type object's
// `call` spec handles construction and its `check` spec makes it usable as
// a typed-catch filter and by `types` introspection, reusing the same spec
// dispatch points ordinary objects use rather than adding a parallel path.
func (it *Interpreter) execTypeDecl(node *TypeDecl, env *Env) {
	typeObj := NewObject(node.Name)
	it.execBlock(node.StaticBody, NewBoundEnv(env, typeObj))

	fields := node.Fields
	instanceBody := node.InstanceBody
	defEnv := env
	typeName := node.Name
	declSpan := node.Span()

	construct := func(it *Interpreter, args []Value, kwargs map[string]Value) Value {
		inst := NewObject(typeName)
		callEnv := NewCallEnv(defEnv, nil)
		bindParams(it, declSpan, fields, args, kwargs, callEnv)
		for _, f := range fields {
			if v, ok := callEnv.Vars[f.Name]; ok {
				inst.Pub[f.Name] = v
			}
		}
		it.execBlock(instanceBody, NewBoundEnv(callEnv, inst))
		return ObjectValue(inst)
	}
	check := func(it *Interpreter, args []Value, kwargs map[string]Value) Value {
		if len(args) != 1 {
			throw(ArgumentError, declSpan, "check expects exactly one argument")
		}
		v := args[0]
		if v.Tag == TagObject && v.asObject().Label == typeName {
			return Num(1)
		}
		return Num(0)
	}

	checkFn := NativeFunc(typeName+".check", check)
	typeObj.Specs["call"] = NativeFunc(typeName, construct)
	typeObj.Pub["check"] = checkFn
	typeObj.Specs["check"] = checkFn

	val := ObjectValue(typeObj)
	if env.boundHere() != nil {
		env.DeclarePub(declSpan, typeName, val)
		return
	}
	env.Declare(typeName, val)
}

