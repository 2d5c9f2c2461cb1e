// builtins.go — host-provided functions.
//
// The registry is fixed and keyed by name; identifier lookup falls back to
// it after the environment chain misses. Builtins receive the evaluated
// argument list and return a value or an error message; they never see or
// mutate the environment.
package monkey

import (
	"fmt"
	"unicode/utf8"
)

var builtins map[string]*Builtin

func init() {
	builtins = map[string]*Builtin{
		"len": {Name: "len", Fn: builtinLen},

		"first": {Name: "first", Fn: builtinFirst},
		"last":  {Name: "last", Fn: builtinLast},
		"rest":  {Name: "rest", Fn: builtinRest},
		"push":  {Name: "push", Fn: builtinPush},
		"puts":  {Name: "puts", Fn: builtinPuts},
	}
}

func arityError(name string) error {
	return fmt.Errorf("unexpected number of args for %s", name)
}

func typeError(name string) error {
	return fmt.Errorf("argument for %s not supported", name)
}

// builtinLen returns the length of a string in characters (not bytes) or
// the element count of an array.
func builtinLen(args []Value) (Value, error) {
	if len(args) != 1 {
		return Null, arityError("len")
	}
	switch args[0].Tag {
	case VTStr:
		return Int(int64(utf8.RuneCountInString(args[0].Data.(string)))), nil
	case VTArray:
		return Int(int64(len(args[0].Data.([]Value)))), nil
	default:
		return Null, typeError("len")
	}
}

func builtinFirst(args []Value) (Value, error) {
	if len(args) != 1 {
		return Null, arityError("first")
	}
	if args[0].Tag != VTArray {
		return Null, typeError("first")
	}
	xs := args[0].Data.([]Value)
	if len(xs) == 0 {
		return Null, nil
	}
	return xs[0], nil
}

func builtinLast(args []Value) (Value, error) {
	if len(args) != 1 {
		return Null, arityError("last")
	}
	if args[0].Tag != VTArray {
		return Null, typeError("last")
	}
	xs := args[0].Data.([]Value)
	if len(xs) == 0 {
		return Null, nil
	}
	return xs[len(xs)-1], nil
}

// builtinRest returns a new array holding every element but the first;
// the rest of an empty array is null.
func builtinRest(args []Value) (Value, error) {
	if len(args) != 1 {
		return Null, arityError("rest")
	}
	if args[0].Tag != VTArray {
		return Null, typeError("rest")
	}
	xs := args[0].Data.([]Value)
	if len(xs) == 0 {
		return Null, nil
	}
	out := make([]Value, len(xs)-1)
	copy(out, xs[1:])
	return Arr(out), nil
}

// builtinPush returns a new array with the value appended; the source
// array is left untouched.
func builtinPush(args []Value) (Value, error) {
	if len(args) != 2 {
		return Null, arityError("push")
	}
	if args[0].Tag != VTArray {
		return Null, typeError("push")
	}
	xs := args[0].Data.([]Value)
	out := make([]Value, len(xs), len(xs)+1)
	copy(out, xs)
	out = append(out, args[1])
	return Arr(out), nil
}

func builtinPuts(args []Value) (Value, error) {
	for _, a := range args {
		fmt.Println(FormatValue(a))
	}
	return Null, nil
}
