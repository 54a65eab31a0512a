package infer

import (
	"sort"
	"strings"

	"github.com/matzehuels/typetower/pkg/errors"
	"github.com/matzehuels/typetower/pkg/typegraph"
)

// FromSchema converts a decoded JSON Schema document into a type. The
// supported subset covers what real-world schemas lean on: "type" (single
// or list), "properties"/"required", "items", "additionalProperties",
// "enum" of strings, "oneOf"/"anyOf", "title", and internal "$ref"
// pointers. References are memoized, so a schema that refers to itself
// (directly or through a chain of definitions) becomes a cyclic graph
// rather than an infinite expansion.
func FromSchema(doc any, rootName string) (typegraph.Type, error) {
	if err := errors.ValidateRootName(rootName); err != nil {
		return nil, err
	}
	// The true schema admits any value, so a boolean root is legal; every
	// other root must be an object for "$ref" pointers to have a document
	// to resolve against.
	root, _ := doc.(map[string]any)
	r := &schemaResolver{root: root, refs: make(map[string]typegraph.Type), resolving: make(map[string]bool)}
	t, err := r.resolve(doc, rootName, true)
	if err != nil {
		return nil, err
	}
	if named, ok := t.(typegraph.NamedType); ok && named.AreNamesInferred() {
		named.SetGivenName(rootName)
	}
	return t, nil
}

// schemaResolver walks one schema document. refs memoizes every resolved
// "$ref" target by pointer, which both deduplicates shared definitions and
// terminates cycles: a class placeholder is registered before its
// properties resolve, so a self-reference finds the class under
// construction.
type schemaResolver struct {
	root      map[string]any
	refs      map[string]typegraph.Type
	resolving map[string]bool
}

func (r *schemaResolver) resolve(node any, name string, inferred bool) (typegraph.Type, error) {
	switch schema := node.(type) {
	case bool:
		if schema {
			return typegraph.Any, nil
		}
		return nil, errors.New(errors.ErrCodeInvalidSchema, "the false schema admits no values")
	case map[string]any:
		return r.resolveObject(schema, name, inferred)
	}
	return nil, errors.New(errors.ErrCodeInvalidSchema, "schema node must be an object or boolean, got %T", node)
}

func (r *schemaResolver) resolveObject(schema map[string]any, name string, inferred bool) (typegraph.Type, error) {
	if ref, ok := schema["$ref"].(string); ok {
		return r.resolveRef(ref)
	}
	if title, ok := schema["title"].(string); ok && title != "" {
		name, inferred = title, false
	}

	if cases, ok := schema["enum"]; ok {
		return resolveEnum(cases, name, inferred)
	}
	if sub, ok := schema["oneOf"]; ok {
		return r.resolveVariants(sub, name, inferred)
	}
	if sub, ok := schema["anyOf"]; ok {
		return r.resolveVariants(sub, name, inferred)
	}

	switch typ := schema["type"].(type) {
	case string:
		return r.resolveTyped(schema, typ, name, inferred)
	case []any:
		return r.resolveTypeList(schema, typ, name, inferred)
	case nil:
		if _, ok := schema["properties"]; ok {
			return r.resolveClass(schema, name, inferred)
		}
		if _, ok := schema["items"]; ok {
			return r.resolveArray(schema, name)
		}
		return typegraph.Any, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidSchema, "schema %q has a malformed type keyword", name)
}

func (r *schemaResolver) resolveTyped(schema map[string]any, typ, name string, inferred bool) (typegraph.Type, error) {
	switch typ {
	case "null":
		return typegraph.Null, nil
	case "boolean":
		return typegraph.Bool, nil
	case "integer":
		return typegraph.Integer, nil
	case "number":
		return typegraph.Double, nil
	case "string":
		return typegraph.String, nil
	case "array":
		return r.resolveArray(schema, name)
	case "object":
		if _, ok := schema["properties"]; ok {
			return r.resolveClass(schema, name, inferred)
		}
		if add, ok := schema["additionalProperties"]; ok {
			values, err := r.resolve(add, elementName(name), true)
			if err != nil {
				return nil, err
			}
			return typegraph.NewMap(values), nil
		}
		return typegraph.NewMap(typegraph.Any), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidSchema, "schema %q has unsupported type %q", name, typ)
}

// resolveTypeList handles "type": ["string", "null"] style schemas, which
// in practice express nullability or small primitive unions.
func (r *schemaResolver) resolveTypeList(schema map[string]any, types []any, name string, inferred bool) (typegraph.Type, error) {
	if len(types) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidSchema, "schema %q has an empty type list", name)
	}
	var result typegraph.Type
	for _, entry := range types {
		typ, ok := entry.(string)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidSchema, "schema %q has a non-string entry in its type list", name)
		}
		t, err := r.resolveTyped(schema, typ, name, inferred)
		if err != nil {
			return nil, err
		}
		if result == nil {
			result = t
		} else {
			result = unify(result, t, name)
		}
	}
	return result, nil
}

func (r *schemaResolver) resolveVariants(node any, name string, inferred bool) (typegraph.Type, error) {
	variants, ok := node.([]any)
	if !ok || len(variants) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidSchema, "schema %q has a malformed oneOf/anyOf", name)
	}
	var result typegraph.Type
	for _, sub := range variants {
		t, err := r.resolve(sub, name, inferred)
		if err != nil {
			return nil, err
		}
		if result == nil {
			result = t
		} else {
			result = unify(result, t, name)
		}
	}
	if named, ok := result.(typegraph.NamedType); ok {
		named.AddName(name, inferred)
	}
	return result, nil
}

func (r *schemaResolver) resolveArray(schema map[string]any, name string) (typegraph.Type, error) {
	items, ok := schema["items"]
	if !ok {
		return typegraph.NewArray(typegraph.Any), nil
	}
	elem, err := r.resolve(items, elementName(name), true)
	if err != nil {
		return nil, err
	}
	return typegraph.NewArray(elem), nil
}

// resolveClass builds a class in two phases: the node is created first so
// that resolveRef can hand it out to cyclic references, and its properties
// are attached once every one of them has resolved. Properties missing
// from "required" are made nullable.
func (r *schemaResolver) resolveClass(schema map[string]any, name string, inferred bool) (typegraph.Type, error) {
	cls := typegraph.NewClass(name, inferred)
	if err := r.fillClass(cls, schema); err != nil {
		return nil, err
	}
	return cls, nil
}

func (r *schemaResolver) fillClass(cls *typegraph.Class, schema map[string]any) error {
	rawProps, ok := schema["properties"].(map[string]any)
	if !ok {
		return errors.New(errors.ErrCodeInvalidSchema, "schema %q has malformed properties", cls.CombinedName())
	}
	required := requiredSet(schema)

	keys := make([]string, 0, len(rawProps))
	for k := range rawProps {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	props := make(map[string]typegraph.Type, len(rawProps))
	for _, key := range keys {
		t, err := r.resolve(rawProps[key], key, true)
		if err != nil {
			return err
		}
		if !required[key] {
			t = typegraph.MakeNullable(t, key, true)
		}
		props[key] = t
	}
	cls.SetProperties(props)
	return nil
}

func requiredSet(schema map[string]any) map[string]bool {
	out := make(map[string]bool)
	entries, ok := schema["required"].([]any)
	if !ok {
		return out
	}
	for _, e := range entries {
		if s, ok := e.(string); ok {
			out[s] = true
		}
	}
	return out
}

func resolveEnum(node any, name string, inferred bool) (typegraph.Type, error) {
	entries, ok := node.([]any)
	if !ok || len(entries) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidSchema, "schema %q has a malformed enum", name)
	}
	cases := make([]string, 0, len(entries))
	for _, e := range entries {
		s, ok := e.(string)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidSchema, "schema %q has a non-string enum case", name)
		}
		cases = append(cases, s)
	}
	return typegraph.NewEnum(name, inferred, cases), nil
}

// resolveRef resolves an internal "#/..." JSON pointer. Object-schema
// targets are registered as class placeholders before their properties
// resolve, which is what lets mutually recursive definitions terminate.
// A cycle through a non-class target has no node to tie the knot on and
// is rejected.
func (r *schemaResolver) resolveRef(ref string) (typegraph.Type, error) {
	if t, ok := r.refs[ref]; ok {
		return t, nil
	}
	if r.resolving[ref] {
		return nil, errors.New(errors.ErrCodeInvalidSchema, "cyclic reference %q does not pass through an object schema", ref)
	}

	target, name, err := r.lookup(ref)
	if err != nil {
		return nil, err
	}

	if schema, ok := target.(map[string]any); ok && isClassSchema(schema) {
		inferred := true
		if title, ok := schema["title"].(string); ok && title != "" {
			name, inferred = title, false
		}
		cls := typegraph.NewClass(name, inferred)
		r.refs[ref] = cls
		if err := r.fillClass(cls, schema); err != nil {
			return nil, err
		}
		return cls, nil
	}

	r.resolving[ref] = true
	t, err := r.resolve(target, name, true)
	delete(r.resolving, ref)
	if err != nil {
		return nil, err
	}
	r.refs[ref] = t
	return t, nil
}

func isClassSchema(schema map[string]any) bool {
	_, ok := schema["properties"]
	return ok
}

// lookup walks an internal JSON pointer and returns the target node plus
// the final segment, which serves as the target's inferred name.
func (r *schemaResolver) lookup(ref string) (any, string, error) {
	if !strings.HasPrefix(ref, "#/") {
		return nil, "", errors.New(errors.ErrCodeInvalidSchema, "unsupported reference %q (only internal #/ pointers are supported)", ref)
	}
	segments := strings.Split(strings.TrimPrefix(ref, "#/"), "/")
	var node any = r.root
	for _, seg := range segments {
		seg = strings.ReplaceAll(strings.ReplaceAll(seg, "~1", "/"), "~0", "~")
		obj, ok := node.(map[string]any)
		if !ok {
			return nil, "", errors.New(errors.ErrCodeSchemaNotFound, "reference %q does not resolve", ref)
		}
		node, ok = obj[seg]
		if !ok {
			return nil, "", errors.New(errors.ErrCodeSchemaNotFound, "reference %q does not resolve", ref)
		}
	}
	return node, segments[len(segments)-1], nil
}
