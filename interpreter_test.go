package safulate

import (
	"strings"
	"testing"
)

// --- helpers ----------------------------------------------------------------

func newTestRuntime(t *testing.T) (*Interpreter, func() string) {
	t.Helper()
	var buf strings.Builder
	it := NewRuntime(t.Name(), WithStdout(func(s string) { buf.WriteString(s) }))
	return it, func() string { return buf.String() }
}

func runOK(t *testing.T, it *Interpreter, src string) Value {
	t.Helper()
	v, err := it.RunSource(t.Name(), src)
	if err != nil {
		t.Fatalf("run error for source:\n%s\n\ngot: %v", src, err)
	}
	return v
}

func runErr(t *testing.T, it *Interpreter, src string) error {
	t.Helper()
	_, err := it.RunSource(t.Name(), src)
	if err == nil {
		t.Fatalf("expected error, got none for source:\n%s", src)
	}
	return err
}

func wantNum(t *testing.T, v Value, f float64) {
	t.Helper()
	if v.Tag != TagNum || v.Data.(float64) != f {
		t.Fatalf("want num %g, got %#v", f, v)
	}
}

func wantStr(t *testing.T, v Value, s string) {
	t.Helper()
	if v.Tag != TagStr || v.Data.(string) != s {
		t.Fatalf("want str %q, got %#v", s, v)
	}
}

func wantBool(t *testing.T, v Value, b bool) {
	t.Helper()
	if v.Tag != TagBool || v.Data.(bool) != b {
		t.Fatalf("want bool %v, got %#v", b, v)
	}
}

// --- spec §8 end-to-end scenarios --------------------------------------------

// Scenario 1: a declaration inside a nested block shadows the outer one for
// the block's lifetime only; the outer binding is unchanged once the block
// exits.
func TestScenario_ScopeShadow(t *testing.T) {
	it, out := newTestRuntime(t)
	runOK(t, it, `
var x = 5;
{
    var x = 10;
    print(x);
}
print(x);
`)
	if got, want := out(), "10\n5\n"; got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

// Scenario 2: three nested `while 1` loops, `break 3` from the innermost
// unwinds all three in one signal; only the "started" lines print, never
// "ended".
func TestScenario_BreakThreeLevels(t *testing.T) {
	it, out := newTestRuntime(t)
	runOK(t, it, `
var i = 0;
while 1 {
    print("started 1");
    var j = 0;
    while 1 {
        print("started 2");
        var k = 0;
        while 1 {
            print("started 3");
            break 3;
            print("ended 3");
        }
        print("ended 2");
    }
    print("ended 1");
}
`)
	want := "started 1\nstarted 2\nstarted 3\n"
	if got := out(); got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

// Scenario 3: switch fall-through via `continue N` issued directly in a case
// body (no loop between the statement and the switch) advances N cases.
func TestScenario_SwitchFallthrough(t *testing.T) {
	it, out := newTestRuntime(t)
	runOK(t, it, `
switch "best" {
    case "best" {
        print("a");
        continue 2;
    }
    case "test" {
        print("b");
    }
    case "foo" {
        print("c");
    }
}
`)
	if got, want := out(), "a\nc\n"; got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

// Scenario 4: a `spec add(o)` override on an object is dispatched by `+`
// instead of the default numeric/string behavior.
func TestScenario_SpecDispatch(t *testing.T) {
	it, _ := newTestRuntime(t)
	v := runOK(t, it, `
var x = object();
x ~ {
    spec add(o) {
        return 5;
    }
}
x + "test";
`)
	wantNum(t, v, 5)
}

// Scenario 4b: equality comparison form of the same scenario.
func TestScenario_SpecDispatchEquality(t *testing.T) {
	it, _ := newTestRuntime(t)
	v := runOK(t, it, `
var x = object();
x ~ {
    spec add(o) {
        return 5;
    }
}
(x + "test") == 5;
`)
	wantBool(t, v, true)
}

// Scenario 5: partial application via `f[a,b]` followed by a final call, and
// argument spreading via `..list`.
func TestScenario_PartialAndSpread(t *testing.T) {
	it, _ := newTestRuntime(t)
	v := runOK(t, it, `
func test(a, b, c) {
    return a + b + c;
}
test[1,2](3);
`)
	wantNum(t, v, 6)

	v2 := runOK(t, it, `
func test(a, b, c, d, e) {
    return [a, b, c, d, e];
}
var out = test(1, ..[2,3,4], 5);
out;
`)
	list := v2.asList().Elems
	if len(list) != 5 {
		t.Fatalf("want 5 elements, got %d: %#v", len(list), list)
	}
	for i, want := range []float64{1, 2, 3, 4, 5} {
		wantNum(t, list[i], want)
	}
}

// Scenario 6: a bare `property`/`prop` decorator turns a zero-arg function
// into an attribute read; reading it twice after an internal mutation
// reflects the mutation.
func TestScenario_PropertyDecorator(t *testing.T) {
	it, _ := newTestRuntime(t)
	v := runOK(t, it, `
struct Counter(start) {
    priv count = start;

    func val() [property] {
        priv count = count + 1;
        return count;
    }
}

var c = Counter(10);
var first = c.val;
var second = c.val;
[first, second];
`)
	list := v.asList().Elems
	if len(list) != 2 {
		t.Fatalf("want 2 elements, got %d", len(list))
	}
	wantNum(t, list[0], 11)
	wantNum(t, list[1], 12)
}

// --- "loops-only" break/continue-through-switch regression ------------------

// A loop nested inside a switch case must not have the switch consume any
// of its break/continue depth: `continue` targeting the loop resumes the
// loop, skipping the switch's own fall-through mechanic entirely.
func TestLoopNestedInSwitch_ContinueTargetsLoop(t *testing.T) {
	it, out := newTestRuntime(t)
	runOK(t, it, `
var i = 0;
switch "x" {
    case "x" {
        while i < 3 {
            i = i + 1;
            if i == 2 {
                continue;
            }
            print(i);
        }
        print("after-loop");
    }
}
`)
	if got, want := out(), "1\n3\nafter-loop\n"; got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

// break 2 from inside a loop nested in a switch case counts only the two
// enclosing loops (the switch itself is transparent for depth purposes), so
// it unwinds straight through the switch and breaks the outer while too —
// "outer-continues" never prints and the outer loop runs exactly once.
func TestLoopNestedInSwitch_BreakEscapesSwitch(t *testing.T) {
	it, out := newTestRuntime(t)
	runOK(t, it, `
var n = 0;
while n < 5 {
    n = n + 1;
    switch "y" {
        case "y" {
            while 1 {
                print("inner");
                break 2;
            }
            print("unreachable");
        }
    }
    print("outer-continues");
}
print("done");
`)
	want := "inner\ndone\n"
	if got := out(); got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

// --- break/continue must not cross a function-call boundary -----------------

func TestBreakInsideCalleeErrors(t *testing.T) {
	it, _ := newTestRuntime(t)
	err := runErr(t, it, `
func f() {
    break;
}
while 1 {
    f();
}
`)
	se, ok := err.(*Error)
	if !ok {
		t.Fatalf("want *Error, got %T: %v", err, err)
	}
	if se.Kind != ScopeError {
		t.Fatalf("want ScopeError, got %s: %v", se.Kind, err)
	}
}

func TestContinueInsideCalleeErrors(t *testing.T) {
	it, _ := newTestRuntime(t)
	err := runErr(t, it, `
func f() {
    continue;
}
while 1 {
    f();
    break;
}
`)
	se, ok := err.(*Error)
	if !ok {
		t.Fatalf("want *Error, got %T: %v", err, err)
	}
	if se.Kind != ScopeError {
		t.Fatalf("want ScopeError, got %s: %v", se.Kind, err)
	}
}

// A loop inside a callee must not see the caller's loop/switch nesting: a
// `break` inside the callee's own loop stays local to that loop and returns
// normally.
func TestLoopInsideCalleeIsIsolatedFromCallerLoop(t *testing.T) {
	it, out := newTestRuntime(t)
	runOK(t, it, `
func f() {
    var total = 0;
    while 1 {
        total = total + 1;
        if total == 3 {
            break;
        }
    }
    return total;
}

while 1 {
    print(f());
    break;
}
`)
	if got, want := out(), "3\n"; got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

// A bare `break` inside a switch case with no loop of its own, called from a
// function invoked while the caller is mid-loop, must be treated as the
// switch's own exit mechanic (forSwitch == true) rather than inheriting the
// caller's loop context — otherwise it would wrongly escape the call
// boundary and break the caller's loop instead of just exiting the switch.
func TestSwitchBreakInCalleeIsolatedFromCallerLoop(t *testing.T) {
	it, out := newTestRuntime(t)
	runOK(t, it, `
func f() {
    switch "x" {
        case "x" {
            break;
        }
    }
    return "f-finished";
}

var iterations = 0;
while 1 {
    iterations = iterations + 1;
    var r = f();
    print(r);
    break;
}
print(iterations);
`)
	if got, want := out(), "f-finished\n1\n"; got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

// A bare continue issued directly in a switch case that is itself nested
// inside a loop must still fall through to the next case — the switch is
// the nearest enclosing construct at that point, the outer loop is not —
// so the switch's remaining case runs and so does the statement following
// the switch, rather than the continue resuming the outer loop and
// skipping both.
func TestSwitchNestedInLoop_ContinueFallsThroughNotToLoop(t *testing.T) {
	it, out := newTestRuntime(t)
	runOK(t, it, `
while 1 {
    switch "a" {
        case "a" {
            continue;
        }
        case "b" {
            print("b");
        }
    }
    print("after");
    break;
}
`)
	if got, want := out(), "b\nafter\n"; got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

// --- try/catch/else ----------------------------------------------------------

func TestTryCatchTypedChain(t *testing.T) {
	it, out := newTestRuntime(t)
	runOK(t, it, `
func risky(n) {
    if n == 0 {
        raise "boom";
    }
    return n;
}

try {
    risky(0);
} catch [types.str] msg {
    print("caught: " + msg);
} else {
    print("no error");
}
`)
	if got, want := out(), "caught: boom\n"; got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestTryElseRunsWhenNoError(t *testing.T) {
	it, out := newTestRuntime(t)
	runOK(t, it, `
try {
    var x = 1;
} catch [types.str] msg {
    print("caught");
} else {
    print("no error");
}
`)
	if got, want := out(), "no error\n"; got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

// --- declarative type construct ----------------------------------------------

func TestDeclarativeType(t *testing.T) {
	it, _ := newTestRuntime(t)
	v := runOK(t, it, `
type Point {
} -> (x, y) {
    pub x = x;
    pub y = y;

    func sum() {
        return x + y;
    }
}

var p = Point(3, 4);
p.sum();
`)
	wantNum(t, v, 7)
}

func TestDeclarativeTypeCheck(t *testing.T) {
	it, _ := newTestRuntime(t)
	v := runOK(t, it, `
type Point {
} -> (x, y) {
    pub x = x;
    pub y = y;
}

var p = Point(1, 2);
Point.check(p);
`)
	wantNum(t, v, 1)
}

// --- f-strings ----------------------------------------------------------------

func TestFString(t *testing.T) {
	it, _ := newTestRuntime(t)
	v := runOK(t, it, `
var name = "world";
f"hello {name}, {1 + 2}";
`)
	wantStr(t, v, "hello world, 3")
}
