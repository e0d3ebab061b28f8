package safulate

import "testing"

func TestObjectGetPubMissingAttribute(t *testing.T) {
	o := NewObject("thing")
	if _, ok := o.GetPub("nope"); ok {
		t.Fatalf("want missing attribute to report ok=false")
	}
}

func TestObjectGetPubBindsFuncToReadingObject(t *testing.T) {
	o := NewObject("thing")
	o.Pub["greet"] = FuncValue(&Func{Name: "greet"})

	v, ok := o.GetPub("greet")
	if !ok {
		t.Fatalf("want greet to resolve")
	}
	bound := v.asFunc()
	if bound.Parent != o {
		t.Fatalf("want bound method's Parent to be the reading object, got %#v", bound.Parent)
	}
}

func TestObjectGetPubReturnsFreshCopyEachRead(t *testing.T) {
	o := NewObject("thing")
	o.Pub["greet"] = FuncValue(&Func{Name: "greet"})

	other := NewObject("other")
	other.Pub["greet"] = o.Pub["greet"]
	v1, _ := o.GetPub("greet")
	v2, _ := other.GetPub("greet")
	f1, f2 := v1.asFunc(), v2.asFunc()
	if f1 == f2 {
		t.Fatalf("want distinct *Func copies per read, got the same pointer")
	}
	if f1.Parent != o || f2.Parent != other {
		t.Fatalf("want each copy bound to the object it was read from, got %#v and %#v", f1.Parent, f2.Parent)
	}
}

func TestObjectGetSpecNeverBindsParent(t *testing.T) {
	o := NewObject("thing")
	o.Specs["add"] = FuncValue(&Func{Name: "add"})

	v, ok := o.GetSpec("add")
	if !ok {
		t.Fatalf("want add spec to resolve")
	}
	if v.asFunc().Parent != nil {
		t.Fatalf("want spec lookup to leave Parent nil, got %#v", v.asFunc().Parent)
	}
}

func TestObjectGetSpecsSnapshotExposesSpecsAsPub(t *testing.T) {
	o := NewObject("thing")
	o.Specs["add"] = FuncValue(&Func{Name: "add"})
	o.Pub["ignored"] = Num(1)

	snap := o.GetSpecsSnapshot().asObject()
	if _, ok := snap.Pub["add"]; !ok {
		t.Fatalf("want the specs snapshot to expose add as a pub attribute")
	}
	if _, ok := snap.Pub["ignored"]; ok {
		t.Fatalf("want the specs snapshot to not leak the original pub namespace")
	}
}

func TestObjectPrivNamespaceNotReturnedByGetPub(t *testing.T) {
	o := NewObject("thing")
	o.Priv["secret"] = Num(42)
	if _, ok := o.GetPub("secret"); ok {
		t.Fatalf("want priv attributes to be invisible through GetPub")
	}
}

func TestFuncBoundToIsShallowCopyNotMutation(t *testing.T) {
	f := &Func{Name: "m"}
	o1 := NewObject("a")
	o2 := NewObject("b")

	b1 := f.boundTo(o1)
	b2 := f.boundTo(o2)
	if f.Parent != nil {
		t.Fatalf("want boundTo to leave the original Func untouched, got Parent=%#v", f.Parent)
	}
	if b1.Parent != o1 || b2.Parent != o2 {
		t.Fatalf("want each bound copy to carry its own parent")
	}
}

func TestFuncWithPartialAccumulatesArgsAndKwargs(t *testing.T) {
	f := &Func{Name: "f", PartialArgs: []Value{Num(1)}, PartialKwargs: map[string]Value{"a": Num(2)}}
	merged := f.withPartial([]Value{Num(3)}, map[string]Value{"b": Num(4)})

	if len(merged.PartialArgs) != 2 {
		t.Fatalf("want accumulated partial args, got %#v", merged.PartialArgs)
	}
	if _, ok := merged.PartialKwargs["a"]; !ok {
		t.Fatalf("want original partial kwarg preserved")
	}
	if _, ok := merged.PartialKwargs["b"]; !ok {
		t.Fatalf("want new partial kwarg merged in")
	}
	if len(f.PartialArgs) != 1 {
		t.Fatalf("want original Func's PartialArgs left unmodified, got %#v", f.PartialArgs)
	}
}

func TestBuiltinTypeCheckPredicate(t *testing.T) {
	bt := &BuiltinType{Name: "str", Check: func(v Value) bool { return v.Tag == TagStr }}
	if !bt.Check(Str("hi")) {
		t.Fatalf("want str-check to accept a string value")
	}
	if bt.Check(Num(1)) {
		t.Fatalf("want str-check to reject a number value")
	}
}

// Property reads run their wrapped Func through the evaluator rather than
// just unwrapping the Value — this exercises that path end-to-end, since
// getAttr (interpreter_ops.go) is what actually invokes Property.Func.
func TestPropertyReadInvokesFuncThroughInterpreter(t *testing.T) {
	it, out := newTestRuntime(t)
	runOK(t, it, `
struct Box () {
    priv n = 0;
    func val() [property] {
        n = n + 1;
        return n;
    }
}

var b = Box();
print(b.val);
print(b.val);
`)
	if got, want := out(), "1\n2\n"; got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestModuleGetAttrReadsPubExports(t *testing.T) {
	m := &Module{Name: "m", Pub: map[string]Value{"x": Num(5)}}
	it, _ := newTestRuntime(t)
	v := it.getAttr(Span{}, ModuleValue(m), "x")
	if v.Tag != TagNum || v.Data.(float64) != 5 {
		t.Fatalf("got %#v", v)
	}
}

func TestFuncWithoutPartialsAttributeStripsBoundArgs(t *testing.T) {
	it, _ := newTestRuntime(t)
	f := &Func{Name: "f", PartialArgs: []Value{Num(1)}}
	v := it.getAttr(Span{}, FuncValue(f), "without_partials")
	if got := v.asFunc().PartialArgs; got != nil {
		t.Fatalf("want stripped partial args, got %#v", got)
	}
}
