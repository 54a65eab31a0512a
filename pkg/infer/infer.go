package infer

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/matzehuels/typetower/pkg/errors"
	"github.com/matzehuels/typetower/pkg/typegraph"
)

// FromSamples infers a type for one or more sample values decoded from
// input documents. All samples are inferred independently and then unified
// into a single type, so feeding several records of the same shape
// produces one class instead of a union of near-identical classes.
// The root name seeds naming for the top-level type; nested types take
// their names from the property keys they appear under.
func FromSamples(samples []any, rootName string) (typegraph.Type, error) {
	if len(samples) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no samples to infer from")
	}
	if err := errors.ValidateRootName(rootName); err != nil {
		return nil, err
	}

	t := inferValue(samples[0], rootName)
	for _, sample := range samples[1:] {
		t = unify(t, inferValue(sample, rootName), rootName)
	}
	if named, ok := t.(typegraph.NamedType); ok && named.AreNamesInferred() {
		named.SetGivenName(rootName)
	}
	return t, nil
}

// inferValue maps one decoded value to a type. The name is used for any
// named type created at this level and is always inferred, never given.
func inferValue(v any, name string) typegraph.Type {
	switch val := v.(type) {
	case nil:
		return typegraph.Null
	case bool:
		return typegraph.Bool
	case string:
		return typegraph.String
	case json.Number:
		if strings.ContainsAny(string(val), ".eE") {
			return typegraph.Double
		}
		return typegraph.Integer
	case int:
		return typegraph.Integer
	case int64:
		return typegraph.Integer
	case uint64:
		return typegraph.Integer
	case float64:
		return typegraph.Double
	case time.Time:
		return typegraph.String
	case []any:
		return inferArray(val, name)
	case map[string]any:
		return inferClass(val, name)
	default:
		return typegraph.Any
	}
}

func inferArray(items []any, name string) *typegraph.Array {
	if len(items) == 0 {
		return typegraph.NewArray(typegraph.Any)
	}
	elem := elementName(name)
	t := inferValue(items[0], elem)
	for _, item := range items[1:] {
		t = unify(t, inferValue(item, elem), elem)
	}
	return typegraph.NewArray(t)
}

func inferClass(obj map[string]any, name string) *typegraph.Class {
	cls := typegraph.NewClass(name, true)
	props := make(map[string]typegraph.Type, len(obj))
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		props[k] = inferValue(obj[k], k)
	}
	cls.SetProperties(props)
	return cls
}

// elementName names the type inferred for array elements. A trailing "s"
// is stripped so a "users" array yields a "user" class.
func elementName(name string) string {
	if len(name) > 1 && strings.HasSuffix(name, "s") && !strings.HasSuffix(name, "ss") {
		return name[:len(name)-1]
	}
	return name + "_element"
}

// unify merges two types inferred for the same position into the most
// specific type covering both. The name labels any union created along
// the way, since bare primitives carry no names of their own.
func unify(a, b typegraph.Type, name string) typegraph.Type {
	if typegraph.Equals(a, b) {
		return a
	}

	// Null against anything else is nullability, not a union.
	if a.Kind() == typegraph.KindNull {
		return typegraph.MakeNullable(b, name, true)
	}
	if b.Kind() == typegraph.KindNull {
		return typegraph.MakeNullable(a, name, true)
	}

	// Any is the absence of information and never widens the result.
	if a.Kind() == typegraph.KindAny {
		return b
	}
	if b.Kind() == typegraph.KindAny {
		return a
	}

	if a.Kind() == b.Kind() {
		return unifySameKind(a, b, name)
	}

	// Integer and double collapse to double.
	if isNumeric(a) && isNumeric(b) {
		return typegraph.Double
	}

	return unionOf(a, b, name)
}

func isNumeric(t typegraph.Type) bool {
	return t.Kind() == typegraph.KindInteger || t.Kind() == typegraph.KindDouble
}

func unifySameKind(a, b typegraph.Type, name string) typegraph.Type {
	switch av := a.(type) {
	case *typegraph.Array:
		items := unify(av.Items(), b.(*typegraph.Array).Items(), elementName(name))
		return typegraph.NewArray(items)
	case *typegraph.Map:
		values := unify(av.Values(), b.(*typegraph.Map).Values(), elementName(name))
		return typegraph.NewMap(values)
	case *typegraph.Class:
		return unifyClasses(av, b.(*typegraph.Class))
	case *typegraph.Union:
		merged := a
		for _, m := range b.(*typegraph.Union).Members() {
			merged = unify(merged, m, name)
		}
		return merged
	case *typegraph.Enum:
		return mergeEnums(av, b.(*typegraph.Enum))
	default:
		return a
	}
}

// unifyClasses merges two classes into one. Properties present in both are
// unified recursively; properties present in only one become nullable,
// since some samples omitted them.
func unifyClasses(a, b *typegraph.Class) *typegraph.Class {
	aNames := a.Names()
	merged := typegraph.NewClass(aNames[0], a.AreNamesInferred())
	for _, n := range aNames[1:] {
		merged.AddName(n, a.AreNamesInferred())
	}
	for _, n := range b.Names() {
		merged.AddName(n, b.AreNamesInferred())
	}

	aProps := a.Properties()
	bProps := b.Properties()
	props := make(map[string]typegraph.Type, len(aProps)+len(bProps))
	for name, at := range aProps {
		if bt, ok := bProps[name]; ok {
			props[name] = unify(at, bt, name)
		} else {
			props[name] = typegraph.MakeNullable(at, name, true)
		}
	}
	for name, bt := range bProps {
		if _, ok := aProps[name]; !ok {
			props[name] = typegraph.MakeNullable(bt, name, true)
		}
	}
	merged.SetProperties(props)
	return merged
}

// mergeEnums combines two enums into one whose case set is the
// order-preserving union of both. Same-kind pairs must merge here rather
// than through unionOf, which would bounce them straight back into unify.
func mergeEnums(a, b *typegraph.Enum) *typegraph.Enum {
	cases := a.Cases()
	seen := make(map[string]bool, len(cases))
	for _, c := range cases {
		seen[c] = true
	}
	for _, c := range b.Cases() {
		if !seen[c] {
			seen[c] = true
			cases = append(cases, c)
		}
	}

	aNames := a.Names()
	merged := typegraph.NewEnum(aNames[0], a.AreNamesInferred(), cases)
	for _, n := range aNames[1:] {
		merged.AddName(n, a.AreNamesInferred())
	}
	for _, n := range b.Names() {
		merged.AddName(n, b.AreNamesInferred())
	}
	return merged
}

// unionOf combines two types into a union, flattening unions on either
// side and unifying members of equal kind so the kind-uniqueness rule
// holds.
func unionOf(a, b typegraph.Type, name string) typegraph.Type {
	members := append(flattenUnion(a), flattenUnion(b)...)

	byKind := make(map[typegraph.Kind]typegraph.Type)
	var order []typegraph.Kind
	nullable := false
	for _, m := range members {
		if m.Kind() == typegraph.KindNull {
			nullable = true
			continue
		}
		if existing, ok := byKind[m.Kind()]; ok {
			byKind[m.Kind()] = unify(existing, m, name)
			continue
		}
		byKind[m.Kind()] = m
		order = append(order, m.Kind())
	}

	// Integer collapses into double here too, in case both arrived via
	// flattened union members rather than a direct pair.
	if byKind[typegraph.KindInteger] != nil && byKind[typegraph.KindDouble] != nil {
		delete(byKind, typegraph.KindInteger)
	}

	distinct := make([]typegraph.Type, 0, len(order))
	for _, k := range order {
		if byKind[k] != nil {
			distinct = append(distinct, byKind[k])
		}
	}

	var result typegraph.Type
	switch len(distinct) {
	case 0:
		return typegraph.Null
	case 1:
		result = distinct[0]
	default:
		result = typegraph.NewUnion(name, true, distinct)
	}
	if nullable {
		result = typegraph.MakeNullable(result, name, true)
	}
	return result
}

func flattenUnion(t typegraph.Type) []typegraph.Type {
	if u, ok := t.(*typegraph.Union); ok {
		return u.Members()
	}
	return []typegraph.Type{t}
}
