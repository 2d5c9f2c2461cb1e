// builtins_test.go
package monkey

import "testing"

func Test_Builtin_Len(t *testing.T) {
	wantInt(t, `len("")`, 0)
	wantInt(t, `len("Hello")`, 5)
	wantInt(t, `len("hello world")`, 11)
	// characters, not bytes
	wantInt(t, `len("héllo")`, 5)
	wantInt(t, "len([])", 0)
	wantInt(t, "len([1, 2, 3])", 3)

	wantError(t, "len(1)", "argument for len not supported")
	wantError(t, "len(true)", "argument for len not supported")
	wantError(t, `len("one", "two")`, "unexpected number of args for len")
	wantError(t, "len()", "unexpected number of args for len")
}

func Test_Builtin_FirstLastRest(t *testing.T) {
	wantInt(t, "first([1, 2, 3])", 1)
	wantNull(t, "first([])")
	wantInt(t, "last([1, 2, 3])", 3)
	wantNull(t, "last([])")

	out := evalSrc(t, "rest([1, 2, 3])")
	if got := FormatValue(out.Val); got != "[2,3]" {
		t.Fatalf("rest = %s", got)
	}
	wantNull(t, "rest([])")

	wantError(t, `first("abc")`, "argument for first not supported")
	wantError(t, "rest(1, 2)", "unexpected number of args for rest")
}

func Test_Builtin_Push(t *testing.T) {
	out := evalSrc(t, "push([1, 2], 3)")
	if got := FormatValue(out.Val); got != "[1,2,3]" {
		t.Fatalf("push = %s", got)
	}
	// push copies; the source array is untouched
	wantInt(t, "let a = [1]; let b = push(a, 2); len(a)", 1)
	wantError(t, "push([1])", "unexpected number of args for push")
	wantError(t, "push(1, 2)", "argument for push not supported")
}

func Test_Builtin_MapReduceIdiom(t *testing.T) {
	// builtins compose with user-defined recursion over arrays
	wantInt(t, `
let reduce = fn(arr, acc, f) {
  if (len(arr) == 0) { acc }
  else { reduce(rest(arr), f(acc, first(arr)), f) }
};
reduce([1, 2, 3, 4], 0, fn(a, b) { a + b })`, 10)
}

func Test_Builtin_LookupAfterEnvMiss(t *testing.T) {
	// a user binding shadows the registry entry
	wantInt(t, "let len = 3; len", 3)
}
