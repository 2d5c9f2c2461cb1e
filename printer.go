// printer.go — printable forms for runtime values.
//
// FormatValue renders the form the REPL prints and error messages embed:
// integers and booleans as written, strings quoted, null as "nil", arrays
// as "[e1,e2,...]", functions as "fn(p1, p2)" followed by the printed body
// block on the next line.
package monkey

import (
	"strconv"
	"strings"
)

// FormatValue renders v in its printable form.
func FormatValue(v Value) string {
	switch v.Tag {
	case VTNull:
		return "nil"

	case VTInt:
		return strconv.FormatInt(v.Data.(int64), 10)

	case VTBool:
		if v.Data.(bool) {
			return "true"
		}
		return "false"

	case VTStr:
		return "\"" + v.Data.(string) + "\""

	case VTArray:
		xs := v.Data.([]Value)
		parts := make([]string, 0, len(xs))
		for _, x := range xs {
			parts = append(parts, FormatValue(x))
		}
		return "[" + strings.Join(parts, ",") + "]"

	case VTFun:
		f := v.Data.(*Fun)
		return "fn(" + strings.Join(f.Params, ", ") + ")\n" + f.Body.String()

	case VTBuiltin:
		return "<builtin " + v.Data.(*Builtin).Name + ">"

	default:
		return "<unknown>"
	}
}
