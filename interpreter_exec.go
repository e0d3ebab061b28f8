// interpreter_exec.go — statement execution and control-flow signal handling
// (spec §4.5 "Evaluator — Statements", §4.6 "Control Flow Signals", §4.7
// try/catch/else, §4.9 switch/case).
//
// Grounded on the original's interpreter/interpreter.py visit_* methods
// (visit_block, visit_if, visit_while, visit_for_loop, visit_return,
// _visit_continue_and_break, visit_try_catch, _visit_switch_case_entry),
// re-expressed with Go's recover() standing in for the original's
// except-clause-per-signal-type catches, per errors.go's design note.
package safulate

import (
	"fmt"
	"strings"
)

func (it *Interpreter) execBlock(stmts []Node, env *Env) Value {
	result := Null
	for _, s := range stmts {
		result = it.execStmt(s, env)
	}
	return result
}

// execStmt dispatches one statement/expression node, returning the value of
// expression statements (used as a block's trailing value, e.g. for function
// bodies whose last statement has no explicit `return`).
func (it *Interpreter) execStmt(n Node, env *Env) Value {
	switch node := n.(type) {
	case *ExprStmt:
		return it.eval(node.Expr, env)
	case *Block:
		child := NewEnv(env)
		return it.execBlock(node.Stmts, child)
	case *VarDecl:
		return it.execVarDecl(node, env)
	case *FuncDecl:
		it.execFuncDecl(node, env)
		return Null
	case *StructDecl:
		it.execStructDecl(node, env)
		return Null
	case *TypeDecl:
		it.execTypeDecl(node, env)
		return Null
	case *If:
		return it.execIf(node, env)
	case *While:
		it.execWhile(node, env)
		return Null
	case *For:
		it.execFor(node, env)
		return Null
	case *Break:
		it.execBreak(node, env)
		return Null
	case *Continue:
		it.execContinue(node, env)
		return Null
	case *Return:
		var v Value
		if node.Value != nil {
			v = it.eval(node.Value, env)
		}
		panic(returnSignal{value: v})
	case *Raise:
		v := it.eval(node.Value, env)
		raiseValue(node.Span(), v)
		return Null
	case *Del:
		return it.execDel(node, env)
	case *Try:
		return it.execTry(node, env)
	case *Switch:
		return it.execSwitch(node, env)
	case *Req:
		return it.execReq(node, env)
	default:
		return it.eval(n, env)
	}
}

func (it *Interpreter) execVarDecl(node *VarDecl, env *Env) Value {
	var v Value = Null
	if node.Value != nil {
		v = it.eval(node.Value, env)
	}
	switch node.Kind {
	case DeclPub:
		env.DeclarePub(node.Span(), node.Name, v)
	case DeclPriv:
		env.DeclarePriv(node.Span(), node.Name, v)
	default: // DeclVar, DeclLet
		env.Declare(node.Name, v)
	}
	return v
}

// execFuncDecl binds a FuncDecl as either a spec (stored in the nearest
// bound object's specs namespace) or an ordinary name (spec §4.3: "func
// name(…) { … } defines a public bound method" inside an edit block; a bare
// local/pub binding outside one). Decorators apply left-to-right before
// binding (spec §4.2).
func (it *Interpreter) execFuncDecl(node *FuncDecl, env *Env) {
	fn := &Func{Name: node.Name, Params: node.Params, Body: node.Body, Env: env, IsSpec: node.IsSpec}
	v := FuncValue(fn)
	for _, deco := range node.Decorators {
		d := it.eval(deco, env)
		v = it.applyDecorator(node.Span(), d, v)
	}

	if node.IsSpec {
		env.DeclareSpec(node.Span(), node.Name, v)
		return
	}
	if env.boundHere() != nil {
		env.DeclarePub(node.Span(), node.Name, v)
		return
	}
	env.Declare(node.Name, v)
}

// boundHere reports this exact frame's bound object, without walking the
// parent chain, and nil for a call frame. A func declared directly in an
// edit block's or struct body's own frame therefore becomes a pub method;
// one declared in a nested block or in a function body is a local binding.
func (e *Env) boundHere() *Object {
	if e.CallBoundary {
		return nil
	}
	return e.Bound
}

// propertyMarker is the sentinel Value the bare `property`/`prop` decorator
// token evaluates to (spec §4.2): it never gets called like an ordinary
// decorator, it wraps the function in a *Property instead.
var propertyMarker = Value{Tag: TagBuiltinType, Data: &BuiltinType{Name: "__property_marker__"}}

// applyDecorator invokes a decorator on v, per spec §4.2: "A decorator that
// produces a non-function replaces the binding verbatim." The bare
// `property`/`prop` token is special-cased: rather than being called, it
// wraps v in a *Property.
func (it *Interpreter) applyDecorator(span Span, deco Value, v Value) Value {
	if deco.Tag == TagBuiltinType && deco.Data.(*BuiltinType) == propertyMarker.Data.(*BuiltinType) {
		if v.Tag != TagFunc {
			throw(TypeError, span, "property decorator requires a function")
		}
		return PropertyValue(&Property{Func: v.asFunc()})
	}
	return it.call(span, deco, []Value{v}, nil)
}

func (it *Interpreter) execStructDecl(node *StructDecl, env *Env) {
	s := &Struct{Name: node.Name, Params: node.Params, Body: node.Body, Env: env}
	if env.boundHere() != nil {
		env.DeclarePub(node.Span(), node.Name, StructValue(s))
		return
	}
	env.Declare(node.Name, StructValue(s))
}

func (it *Interpreter) execIf(node *If, env *Env) Value {
	if it.truthy(node.Cond, env) {
		return it.execStmt(node.Then, env)
	}
	if node.Else != nil {
		return it.execStmt(node.Else, env)
	}
	return Null
}

// truthy evaluates cond and converts via the `bool` spec when the value is
// an object defining one, falling back to Value.Truthy otherwise (spec
// §4.5: "evaluate condition via bool spec").
func (it *Interpreter) truthy(cond Node, env *Env) bool {
	v := it.eval(cond, env)
	return it.valueTruthy(cond.Span(), v)
}

func (it *Interpreter) valueTruthy(span Span, v Value) bool {
	if v.Tag == TagObject {
		if spec, ok := v.asObject().GetSpec("bool"); ok {
			return it.call(span, spec, nil, nil).Truthy()
		}
	}
	return v.Truthy()
}

// ---- loops & control signals ----

type loopCtrl uint8

const (
	ctrlNone loopCtrl = iota
	ctrlBreak
	ctrlContinue
)

// constructKind tags one entry of Interpreter.constructStack.
type constructKind uint8

const (
	constructLoop constructKind = iota
	constructSwitch
)

// runLoopIteration executes one pass of a loop body, absorbing a break/
// continue signal whose depth has decremented to (or started at) 1 and
// propagating anything deeper by re-panicking with depth-1, per spec §4.6.
// The forSwitch flag is not checked here: a switch-targeting signal is
// created only when a switch is the innermost construct, so the
// runSwitchCase frame of that switch catches it before any loop does.
func (it *Interpreter) runLoopIteration(stmts []Node, env *Env) (ctrl loopCtrl) {
	it.constructStack = append(it.constructStack, constructLoop)
	defer func() {
		it.constructStack = it.constructStack[:len(it.constructStack)-1]
		switch r := recover().(type) {
		case nil:
			return
		case breakSignal:
			if r.depth <= 1 {
				ctrl = ctrlBreak
				return
			}
			panic(breakSignal{depth: r.depth - 1})
		case continueSignal:
			if r.depth <= 1 {
				ctrl = ctrlContinue
				return
			}
			panic(continueSignal{depth: r.depth - 1})
		default:
			panic(r)
		}
	}()
	it.execBlock(stmts, NewEnv(env))
	return ctrlNone
}

func bodyStmts(n Node) []Node {
	if b, ok := n.(*Block); ok {
		return b.Stmts
	}
	return []Node{n}
}

func (it *Interpreter) execWhile(node *While, env *Env) {
	for it.truthy(node.Cond, env) {
		switch it.runLoopIteration(bodyStmts(node.Body), env) {
		case ctrlBreak:
			return
		case ctrlContinue:
			continue
		}
	}
}

// execFor obtains an iterator via the `iter` spec when the source is an
// object defining one, falling back to the builtin List/Str iteration, per
// spec §4.5 "obtain iterator via iter spec (default for lists and strings
// supplied)".
func (it *Interpreter) execFor(node *For, env *Env) {
	src := it.eval(node.Iter, env)
	next := it.iteratorFor(node.Span(), src)

	for {
		v, ok := next()
		if !ok {
			return
		}
		loopEnv := NewEnv(env)
		loopEnv.Declare(node.Target, v)
		switch it.runLoopIteration(bodyStmts(node.Body), loopEnv) {
		case ctrlBreak:
			return
		case ctrlContinue:
			continue
		}
	}
}

// iteratorFor returns a closure yielding successive elements and a bool
// reporting whether one was produced.
func (it *Interpreter) iteratorFor(span Span, src Value) func() (Value, bool) {
	switch src.Tag {
	case TagList:
		elems := src.asList().Elems
		i := 0
		return func() (Value, bool) {
			if i >= len(elems) {
				return Value{}, false
			}
			v := elems[i]
			i++
			return v, true
		}
	case TagStr:
		s := src.Data.(string)
		runes := []rune(s)
		i := 0
		return func() (Value, bool) {
			if i >= len(runes) {
				return Value{}, false
			}
			r := runes[i]
			i++
			return Str(string(r)), true
		}
	case TagObject:
		obj := src.asObject()
		if iterSpec, ok := obj.GetSpec("iter"); ok {
			state := it.call(span, iterSpec, nil, nil)
			return func() (Value, bool) {
				if state.Tag != TagObject {
					return Value{}, false
				}
				nextSpec, ok := state.asObject().GetSpec("next")
				if !ok {
					return Value{}, false
				}
				var result Value
				var stopped bool
				func() {
					defer func() {
						if r := recover(); r != nil {
							if _, isBreak := r.(breakSignal); isBreak {
								stopped = true
								return
							}
							panic(r)
						}
					}()
					result = it.call(span, nextSpec, nil, nil)
				}()
				if stopped {
					return Value{}, false
				}
				return result, true
			}
		}
	}
	throw(TypeError, span, "%s is not iterable", src.TypeName())
	return nil
}

func depthFromExpr(it *Interpreter, n Node, env *Env, span Span) int {
	if n == nil {
		return 1
	}
	v := it.eval(n, env)
	if v.Tag != TagNum {
		throw(TypeError, span, "break/continue depth must be a number")
	}
	d := int(v.Data.(float64))
	if d < 0 {
		throw(ValueError, span, "break/continue depth must not be negative")
	}
	return d
}

// forSwitchHere reports whether a break/continue issued right now belongs
// to a switch's own fall-through mechanic rather than to a loop: true only
// when the *nearest* dynamically enclosing construct is a switch case, per
// spec §9 Open Question (b) — a loop nested inside a switch case still
// claims its own break/continue (constructLoop on top of the stack), and
// only a bare break/continue issued directly in the case body, with no loop
// between it and that case, falls through to the switch instead.
func (it *Interpreter) forSwitchHere() bool {
	n := len(it.constructStack)
	return n > 0 && it.constructStack[n-1] == constructSwitch
}

func (it *Interpreter) execBreak(node *Break, env *Env) {
	d := depthFromExpr(it, node.Depth, env, node.Span())
	if d == 0 {
		return
	}
	panic(breakSignal{depth: d, forSwitch: it.forSwitchHere()})
}

func (it *Interpreter) execContinue(node *Continue, env *Env) {
	d := depthFromExpr(it, node.Depth, env, node.Span())
	if d == 0 {
		return
	}
	panic(continueSignal{depth: d, forSwitch: it.forSwitchHere()})
}

// ---- switch/case (spec §4.9) ----

func (it *Interpreter) execSwitch(node *Switch, env *Env) Value {
	scrutinee := it.eval(node.Scrutinee, env)
	idx := -1
	for i, c := range node.Cases {
		pattern := it.eval(c.Pattern, env)
		if it.specEq(node.Span(), scrutinee, pattern) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Null
	}

	for idx >= 0 && idx < len(node.Cases) {
		ctrl, advance := it.runSwitchCase(node.Cases[idx].Body, env)
		switch ctrl {
		case ctrlNone, ctrlBreak:
			return Null
		case ctrlContinue:
			idx += advance
		}
	}
	return Null
}

// runSwitchCase executes one case body, catching a switch-targeting
// continueSignal as fall-through (depth 1: next case; depth N: skip N-1
// cases) and a switch-targeting breakSignal as "exit the switch". Per spec
// §9 Open Question (b) ("loops-only"), a signal created inside a loop
// nested in this case (forSwitch == false) is never switch's to catch —
// it's re-panicked unchanged so it passes through to whatever loop
// dynamically encloses the switch itself, without this switch consuming a
// depth level on its way past.
func (it *Interpreter) runSwitchCase(stmts []Node, env *Env) (ctrl loopCtrl, advance int) {
	it.constructStack = append(it.constructStack, constructSwitch)
	defer func() {
		it.constructStack = it.constructStack[:len(it.constructStack)-1]
		switch r := recover().(type) {
		case nil:
			return
		case continueSignal:
			if !r.forSwitch {
				panic(r)
			}
			ctrl = ctrlContinue
			advance = r.depth
			return
		case breakSignal:
			if !r.forSwitch {
				panic(r)
			}
			ctrl = ctrlBreak
			return
		default:
			panic(r)
		}
	}()
	it.execBlock(stmts, NewEnv(env))
	return ctrlNone, 0
}

// ---- try/catch/else (spec §4.7) ----

func (it *Interpreter) execTry(node *Try, env *Env) (result Value) {
	var caught *Error
	func() {
		defer func() {
			if r := recover(); r != nil {
				if e, ok := r.(*Error); ok && e.Kind != SyntaxError && e.Kind != LexicalError {
					caught = e
					return
				}
				panic(r)
			}
		}()
		result = it.execBlock(node.Body, NewEnv(env))
	}()

	if caught == nil {
		if node.Else != nil {
			result = it.execBlock(node.Else, NewEnv(env))
		}
		return result
	}

	raised := caught.Raised
	if caught.Kind != UserRaised {
		raised = errorValue(caught)
	}

	for _, c := range node.Catches {
		if c.TypeExpr != nil {
			tv := it.eval(c.TypeExpr, env)
			if !it.typeMatches(node.Span(), tv, raised) {
				continue
			}
		}
		catchEnv := NewEnv(env)
		if c.Name != "" {
			catchEnv.Declare(c.Name, raised)
		}
		return it.execBlock(c.Body, catchEnv)
	}
	panic(caught)
}

// errorValue turns an internal *Error without an explicit Raised value (e.g.
// a NameError from a failed lookup) into the Value a `catch` clause sees —
// a plain object carrying kind and message, per spec §7.
func errorValue(e *Error) Value {
	obj := NewObject(string(e.Kind))
	obj.Pub["kind"] = Str(string(e.Kind))
	obj.Pub["message"] = Str(e.Message)
	return ObjectValue(obj)
}

// typeMatches implements a catch clause's optional type filter (SPEC_FULL
// §12), accepting either a *BuiltinType's Check predicate or an
// *Object-with-`check`-spec's equivalent; any other filter value matches
// nothing.
func (it *Interpreter) typeMatches(span Span, typeVal, raised Value) bool {
	switch typeVal.Tag {
	case TagBuiltinType:
		return typeVal.Data.(*BuiltinType).Check(raised)
	case TagObject:
		if spec, ok := typeVal.asObject().GetSpec("check"); ok {
			return it.valueTruthy(span, it.call(span, spec, []Value{raised}, nil))
		}
	}
	return false
}

// ---- del (spec §3 AST node "deletion") ----

func (it *Interpreter) execDel(node *Del, env *Env) Value {
	switch t := node.Target.(type) {
	case *Ident:
		for f := env; f != nil; f = f.Parent {
			if _, ok := f.Vars[t.Name]; ok {
				delete(f.Vars, t.Name)
				return Null
			}
			if f.Bound != nil {
				if _, ok := f.Bound.Pub[t.Name]; ok {
					delete(f.Bound.Pub, t.Name)
					return Null
				}
			}
		}
		throw(NameError, node.Span(), "name %q is not defined", t.Name)
	case *GetAttr:
		obj := it.eval(t.Object, env)
		if obj.Tag != TagObject {
			throw(AttributeError, node.Span(), "%s has no attribute %q", obj.TypeName(), t.Name)
		}
		delete(obj.asObject().Pub, t.Name)
	default:
		throw(SyntaxError, node.Span(), "invalid deletion target")
	}
	return Null
}

// ---- req (spec §4.11) ----

func (it *Interpreter) execReq(node *Req, env *Env) Value {
	if node.Constraint.Kind != ReqVersionAny {
		it.checkVersionConstraint(node)
		return Null
	}

	key := node.Source
	if key == "" {
		key = node.Name
	}

	if cached, ok := it.modules[key]; ok {
		bind := node.Name
		if node.Alias != "" {
			bind = node.Alias
		}
		env.Declare(bind, cached)
		return cached
	}

	if it.loading[key] {
		throw(ImportError, node.Span(), "circular import of %q", key)
	}
	if it.Loader == nil {
		throw(ImportError, node.Span(), "no module loader configured for %q", key)
	}

	it.loading[key] = true
	defer delete(it.loading, key)
	prog, err := it.Loader.Load(key)
	if err != nil {
		throw(ImportError, node.Span(), "failed to load %q: %v", key, err)
	}

	modEnv := NewEnv(it.Global)
	mod := &Module{Name: node.Name, Pub: map[string]Value{}}
	it.execBlock(prog.Stmts, modEnv)
	for k, v := range modEnv.Vars {
		mod.Pub[k] = v
	}
	modVal := ModuleValue(mod)
	it.modules[key] = modVal

	bind := node.Name
	if node.Alias != "" {
		bind = node.Alias
	}
	env.Declare(bind, modVal)
	return modVal
}

// checkVersionConstraint implements the four `req` version shapes of spec
// §4.11 against the configured VersionHost.
func (it *Interpreter) checkVersionConstraint(node *Req) {
	host := it.Host.HostVersion()
	c := node.Constraint
	fail := func(msg string) {
		throw(VersionError, node.Span(), "%s", msg)
	}

	parse := func(s string) Version {
		s = strings.TrimPrefix(s, "v")
		var maj, min int
		fmt.Sscanf(s, "%d.%d", &maj, &min)
		return Version{Major: maj, Minor: min}
	}

	switch c.Kind {
	case ReqVersionExact:
		want := parse(c.Low)
		if host.Compare(want) != 0 {
			fail(fmt.Sprintf("host version %d.%d does not satisfy required %d.%d", host.Major, host.Minor, want.Major, want.Minor))
		}
	case ReqVersionMax:
		max := parse(c.High)
		if host.Compare(max) > 0 {
			fail(fmt.Sprintf("host version %d.%d exceeds maximum %d.%d", host.Major, host.Minor, max.Major, max.Minor))
		}
	case ReqVersionMin:
		min := parse(c.Low)
		if host.Compare(min) < 0 {
			fail(fmt.Sprintf("host version %d.%d is below minimum %d.%d", host.Major, host.Minor, min.Major, min.Minor))
		}
	case ReqVersionRange:
		low, high := parse(c.Low), parse(c.High)
		if host.Compare(low) < 0 || host.Compare(high) > 0 {
			fail(fmt.Sprintf("host version %d.%d is outside range %d.%d-%d.%d", host.Major, host.Minor, low.Major, low.Minor, high.Major, high.Minor))
		}
	}
}
