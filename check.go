// FILE: check.go
package glint

import (
	"cmp"
	"fmt"
	"reflect"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

// Contract checks. A failed check enters the fatal pipeline at the CONTRACT
// level with signal id 0; under the default fatal dispatch the process flushes
// every sink and aborts, under a test dispatch the failure is recoverable.

// Check validates a contract. Extra args are appended to the record body.
func Check(condition bool, args ...any) {
	if condition {
		return
	}
	c := contractCapture(2, "CHECK failed")
	defer c.Close()
	c.Append("CHECK failed ")
	c.Append(args...)
}

// Checkf validates a contract with a printf-style failure message.
func Checkf(condition bool, format string, args ...any) {
	if condition {
		return
	}
	c := contractCapture(2, "CHECK failed")
	defer c.Close()
	c.Append("CHECK failed ")
	c.Capturef(format, args...)
}

// CheckEq validates v1 == v2.
func CheckEq[T comparable](v1, v2 T, args ...any) {
	checkOp(v1 == v2, v1, v2, "==", args...)
}

// CheckNe validates v1 != v2.
func CheckNe[T comparable](v1, v2 T, args ...any) {
	checkOp(v1 != v2, v1, v2, "!=", args...)
}

// CheckLt validates v1 < v2.
func CheckLt[T cmp.Ordered](v1, v2 T, args ...any) {
	checkOp(v1 < v2, v1, v2, "<", args...)
}

// CheckLe validates v1 <= v2.
func CheckLe[T cmp.Ordered](v1, v2 T, args ...any) {
	checkOp(v1 <= v2, v1, v2, "<=", args...)
}

// CheckGt validates v1 > v2.
func CheckGt[T cmp.Ordered](v1, v2 T, args ...any) {
	checkOp(v1 > v2, v1, v2, ">", args...)
}

// CheckGe validates v1 >= v2.
func CheckGe[T cmp.Ordered](v1, v2 T, args ...any) {
	checkOp(v1 >= v2, v1, v2, ">=", args...)
}

func checkOp[T any](ok bool, v1, v2 T, op string, args ...any) {
	if ok {
		return
	}
	s1 := checkOpValue(v1)
	s2 := checkOpValue(v2)
	expression := fmt.Sprintf("%s %s %s", s1, op, s2)
	c := contractCapture(3, expression)
	defer c.Close()
	c.Capturef("%s (%s vs. %s)", expression, s1, s2)
	c.Append(args...)
}

// checkOpValue renders one comparison operand. Byte-sized character types
// print as the quoted character when printable ASCII, otherwise as
// "<kind> value N"; aggregates go through spew so their contents are visible.
func checkOpValue(v any) string {
	switch x := v.(type) {
	case uint8:
		if x >= 32 && x <= 126 {
			return fmt.Sprintf("'%c'", x)
		}
		return fmt.Sprintf("byte value %d", x)
	case int8:
		if x >= 32 && x <= 126 {
			return fmt.Sprintf("'%c'", x)
		}
		return fmt.Sprintf("int8 value %d", x)
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Struct, reflect.Map, reflect.Slice, reflect.Array, reflect.Ptr, reflect.Interface:
		return strings.TrimRight(spew.Sprintf("%+v", v), "\n")
	}
	return fmt.Sprint(v)
}

// String comparison checks accept nil pointers by coercing them to the empty
// string before comparing.

// CheckStrEq validates *s1 == *s2.
func CheckStrEq(s1, s2 *string, args ...any) {
	checkStrOp("CheckStrEq", s1, s2, "==", false, true, args...)
}

// CheckStrNe validates *s1 != *s2.
func CheckStrNe(s1, s2 *string, args ...any) {
	checkStrOp("CheckStrNe", s1, s2, "!=", false, false, args...)
}

// CheckStrCaseEq validates case-insensitive equality.
func CheckStrCaseEq(s1, s2 *string, args ...any) {
	checkStrOp("CheckStrCaseEq", s1, s2, "==", true, true, args...)
}

// CheckStrCaseNe validates case-insensitive inequality.
func CheckStrCaseNe(s1, s2 *string, args ...any) {
	checkStrOp("CheckStrCaseNe", s1, s2, "!=", true, false, args...)
}

func checkStrOp(name string, p1, p2 *string, op string, fold, expectEqual bool, args ...any) {
	s1 := derefString(p1)
	s2 := derefString(p2)
	equal := s1 == s2
	if fold {
		equal = strings.EqualFold(s1, s2)
	}
	if equal == expectEqual {
		return
	}
	expression := fmt.Sprintf("%q %s %q", s1, op, s2)
	c := contractCapture(3, expression)
	defer c.Close()
	c.Capturef("%s failed: (%s vs. %s)", name, s1, s2)
	c.Append(args...)
}

func derefString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// CheckNotNull validates that val is non-nil and returns it, so it can wrap
// initialization expressions.
func CheckNotNull[T any](val *T, name string) *T {
	if val != nil {
		return val
	}
	expression := fmt.Sprintf("'%s' Must be non NULL", name)
	c := contractCapture(2, expression)
	defer c.Close()
	c.Append(expression)
	return val
}

// CheckDoubleEq validates float equality within a fixed tiny margin.
func CheckDoubleEq(v1, v2 float64, args ...any) {
	checkNear(v1, v2, 1e-15, args...)
}

// CheckNear validates |v1 - v2| <= margin.
func CheckNear(v1, v2, margin float64, args ...any) {
	checkNear(v1, v2, margin, args...)
}

func checkNear(v1, v2, margin float64, args ...any) {
	if v1 >= v2-margin && v1 <= v2+margin {
		return
	}
	expression := fmt.Sprintf("%v near %v (margin %v)", v1, v2, margin)
	c := contractCapture(3, expression)
	defer c.Close()
	c.Capturef("%s (%v vs. %v)", expression, v1, v2)
	c.Append(args...)
}

// contractCapture starts a CONTRACT-level capture attributed to the frame
// skip levels above contractCapture (1 = its caller, 2 = the caller's caller).
func contractCapture(skip int, expression string) *Capture {
	c := captureAt(skip+1, CONTRACT)
	c.record.Expression = expression
	return c
}
