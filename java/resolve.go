package java

import (
	"strings"
)

// resolveReference maps a type reference written inside entity referrer to
// the name of an entity of the same unit. It reports false when the
// reference points outside the unit.
//
// The strategy:
//  1. Drop type arguments, so Comparable<T> is looked up as Comparable.
//  2. Try it qualified by each enclosing scope of the referrer, innermost
//     first: from Outer.Inner, X is tried as Outer.Inner.X then Outer.X.
//     A member type shadows a top-level type of the same name.
//  3. Try the reference as written.
//  4. Strip the unit's package, so com.example.Point finds Point.
func resolveReference(m *Model, referrer, ref string) (string, bool) {
	ref = stripTypeArguments(ref)
	if ref == "" {
		return "", false
	}

	for scope := referrer; scope != ""; scope = enclosingScope(scope) {
		candidate := scope + "." + ref
		if _, ok := m.index[candidate]; ok {
			return candidate, true
		}
	}

	if _, ok := m.index[ref]; ok {
		return ref, true
	}

	if m.pkg != "" {
		if rest, ok := strings.CutPrefix(ref, m.pkg+"."); ok {
			if _, ok := m.index[rest]; ok {
				return rest, true
			}
		}
	}

	return "", false
}

// resolveEntityName accepts an entity name as a caller would write it:
// qualified within the unit, or prefixed with the unit's package.
func resolveEntityName(m *Model, name string) (string, bool) {
	if _, ok := m.index[name]; ok {
		return name, true
	}
	if m.pkg != "" {
		if rest, ok := strings.CutPrefix(name, m.pkg+"."); ok {
			if _, ok := m.index[rest]; ok {
				return rest, true
			}
		}
	}
	return "", false
}

func enclosingScope(name string) string {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return ""
	}
	return name[:i]
}

// stripTypeArguments removes every <...> group, nested ones included:
// Outer<A>.Inner<Map<K, V>> becomes Outer.Inner.
func stripTypeArguments(ref string) string {
	if !strings.Contains(ref, "<") {
		return strings.TrimSpace(ref)
	}
	var sb strings.Builder
	depth := 0
	for _, r := range ref {
		switch {
		case r == '<':
			depth++
		case r == '>':
			depth--
		case depth == 0:
			sb.WriteRune(r)
		}
	}
	return strings.TrimSpace(sb.String())
}
