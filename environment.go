// environment.go — the lexical-scope chain (spec §3 "Environment", §4.4).
//
// Grounded on the original's interpreter/environment.py Environment class:
// a frame holds a variable map and a parent link; lookup/assignment walk the
// parent chain. Three frame flavors from spec §3 are represented by the same
// Env struct with different fields populated, rather than three Go types,
// because all three share the same lookup-chain-walking logic and differ
// only in what identifier resolution additionally consults:
//
//   - Lexical scope frame: Vars only.
//   - Object-bound frame: Vars plus a Bound object that `pub`/`priv`/`spec`
//     declarations route into.
//   - Call frame: like an object-bound frame, but Bound is the late-bound
//     "object the method was read from" (spec §3 Invariants) rather than an
//     edit-block's explicit target, and CallBoundary is set so boundHere
//     (interpreter_exec.go) does not treat a function body as an edit block.
package safulate

// Env is one frame of the lexical-scope chain.
type Env struct {
	Vars         map[string]Value
	Parent       *Env
	Bound        *Object // non-nil for object-bound and call frames
	CallBoundary bool    // true at the frame a function call pushes
}

// NewEnv creates a bare lexical frame with the given parent (nil for the
// outermost/global scope).
func NewEnv(parent *Env) *Env {
	return &Env{Vars: map[string]Value{}, Parent: parent}
}

// NewBoundEnv creates an object-bound frame: declarations route into obj's
// namespaces per the declaring keyword (spec §4.3 "Edit block").
func NewBoundEnv(parent *Env, obj *Object) *Env {
	return &Env{Vars: map[string]Value{}, Parent: parent, Bound: obj}
}

// NewCallEnv creates the frame a function call pushes: Bound is the
// function's late-bound parent object (may be nil for a free function).
func NewCallEnv(parent *Env, bound *Object) *Env {
	return &Env{Vars: map[string]Value{}, Parent: parent, Bound: bound, CallBoundary: true}
}

// Declare installs a new local binding in this exact frame (spec §4.4
// "Declarations install a new binding in the innermost non-call lexical
// frame"). Used for `var`/`let` and for object-bound frames' local
// (non-namespace) declarations.
func (e *Env) Declare(name string, v Value) {
	e.Vars[name] = v
}

// DeclarePub/DeclarePriv/DeclareSpec route a declaration to the nearest
// enclosing bound object's matching namespace, per spec §4.3. They panic
// with a ScopeError if no frame in the chain is object-bound — matching the
// original's Environment.set_priv/scope requirement.
func (e *Env) nearestBound(span Span, what string) *Object {
	for f := e; f != nil; f = f.Parent {
		if f.Bound != nil {
			return f.Bound
		}
	}
	throw(ScopeError, span, "%s declaration used outside of an object-bound scope", what)
	return nil
}

func (e *Env) DeclarePub(span Span, name string, v Value) {
	e.nearestBound(span, "pub").Pub[name] = v
}

func (e *Env) DeclarePriv(span Span, name string, v Value) {
	e.nearestBound(span, "priv").Priv[name] = v
}

func (e *Env) DeclareSpec(span Span, name string, v Value) {
	e.nearestBound(span, "spec").Specs[name] = v
}

// Get resolves an identifier by walking: this frame's Vars, then its bound
// object's Pub/Priv namespaces (methods are late-bound to that object on
// read — Object.GetPub handles that), then the parent frame, per spec §4.3
// "Assignments to identifiers resolve by searching: bound-object namespaces,
// then enclosing lexical scope" (the same order applies to reads).
func (e *Env) Get(name string) (Value, bool) {
	for f := e; f != nil; f = f.Parent {
		if v, ok := f.Vars[name]; ok {
			return v, true
		}
		if f.Bound != nil {
			if v, ok := f.Bound.GetPub(name); ok {
				return v, true
			}
			if v, ok := f.Bound.Priv[name]; ok {
				return v, true
			}
		}
		if f.CallBoundary {
			// Call frames still chase their own Parent for closures, but a
			// plain local lookup does not cross into the *caller's* frame —
			// Parent here is the function's captured defining environment,
			// not the call site, so this is a closure lookup, not dynamic
			// scope. No special handling needed: we simply continue to
			// f.Parent below, which is already the captured environment.
		}
	}
	return Value{}, false
}

// Set assigns to an existing binding, per spec §4.4: assignment to a plain
// identifier requires a pre-existing binding. Searches bound-object
// namespaces first, then lexical Vars, walking outward.
func (e *Env) Set(name string, v Value) bool {
	for f := e; f != nil; f = f.Parent {
		if f.Bound != nil {
			if _, ok := f.Bound.Pub[name]; ok {
				f.Bound.Pub[name] = v
				return true
			}
			if _, ok := f.Bound.Priv[name]; ok {
				f.Bound.Priv[name] = v
				return true
			}
		}
		if _, ok := f.Vars[name]; ok {
			f.Vars[name] = v
			return true
		}
	}
	return false
}

// boundObjectsOuterToInner walks the frame chain (skipping plain lexical
// frames) and returns the bound object of every object-bound frame, nearest
// frame first; evalParentAccess indexes it by backslash depth for the
// SUPPLEMENT-ed `\name` backslash private-access form (SPEC_FULL §12).
func (e *Env) boundObjectsOuterToInner() []*Object {
	var objs []*Object
	for f := e; f != nil; f = f.Parent {
		if f.Bound != nil {
			objs = append(objs, f.Bound)
		}
	}
	return objs
}
