// Package yaml implements the YAML front-end: parsing YAML documents into
// a heap.Value tree by walking a yaml.Node tree. Anchors and aliases are
// not resolved into shared structure: each alias is expanded as an
// independent copy, since the heap's copy-on-write sharing model is not
// exposed to this front-end.
//
// Walks yaml.Node directly rather than round-tripping through
// yaml.Unmarshal into map[string]any, so scalar tagging (!!int vs !!float
// vs !!str) is preserved precisely instead of inferred.
package yaml

import (
	"strconv"

	goyaml "gopkg.in/yaml.v3"

	"github.com/arloliu/meson/errs"
	"github.com/arloliu/meson/heap"
)

func formatInt(n int64) string     { return strconv.FormatInt(n, 10) }
func formatFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }
func formatBool(b bool) string     { return strconv.FormatBool(b) }

// Parse decodes the first YAML document in data into a heap.Value tree.
func Parse(data []byte) (heap.Value, error) {
	var doc goyaml.Node
	if err := goyaml.Unmarshal(data, &doc); err != nil {
		return heap.Value{}, errs.Parse("yaml.Parse", err.Error())
	}

	if len(doc.Content) == 0 {
		return heap.NewNull(), nil
	}

	return walk(doc.Content[0])
}

func walk(n *goyaml.Node) (heap.Value, error) {
	switch n.Kind {
	case goyaml.DocumentNode:
		if len(n.Content) == 0 {
			return heap.NewNull(), nil
		}

		return walk(n.Content[0])
	case goyaml.MappingNode:
		return walkMapping(n)
	case goyaml.SequenceNode:
		return walkSequence(n)
	case goyaml.ScalarNode:
		return walkScalar(n)
	case goyaml.AliasNode:
		// Expand the alias as an independent copy rather than shared
		// structure; anchor/alias sharing is intentionally out of scope.
		return walk(n.Alias)
	default:
		return heap.Value{}, errs.Parse("yaml.walk", "unsupported node kind")
	}
}

func walkMapping(n *goyaml.Node) (heap.Value, error) {
	result := heap.NewObject()
	obj, _ := result.Object()

	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode := n.Content[i]
		valNode := n.Content[i+1]

		key, err := walk(keyNode)
		if err != nil {
			return heap.Value{}, err
		}
		keyStr, err := key.Str()
		if err != nil {
			return heap.Value{}, errs.Parse("yaml.walkMapping", "non-string map key")
		}

		val, err := walk(valNode)
		if err != nil {
			return heap.Value{}, err
		}

		obj.Set(keyStr, val)
	}

	return result, nil
}

func walkSequence(n *goyaml.Node) (heap.Value, error) {
	result := heap.NewArray()
	arr, _ := result.Array()

	for _, item := range n.Content {
		val, err := walk(item)
		if err != nil {
			return heap.Value{}, err
		}
		arr.Append(val)
	}

	return result, nil
}

func walkScalar(n *goyaml.Node) (heap.Value, error) {
	var decoded any
	if err := n.Decode(&decoded); err != nil {
		return heap.Value{}, errs.Parse("yaml.walkScalar", err.Error())
	}

	switch v := decoded.(type) {
	case nil:
		return heap.NewNull(), nil
	case bool:
		return heap.NewBoolean(v), nil
	case int:
		return heap.NewInteger(int64(v)), nil
	case int64:
		return heap.NewInteger(v), nil
	case float64:
		return heap.NewDecimal(v), nil
	case string:
		return heap.NewString(v), nil
	default:
		// Fall back to the node's literal text for any tag this module
		// doesn't special-case (timestamps, binary, etc).
		return heap.NewString(n.Value), nil
	}
}

// Marshal serializes a heap.Value tree as a YAML document.
func Marshal(v heap.Value) ([]byte, error) {
	node, err := toNode(v)
	if err != nil {
		return nil, err
	}

	return goyaml.Marshal(node)
}

func toNode(v heap.Value) (*goyaml.Node, error) {
	switch {
	case v.IsObject():
		return objectNode(v)
	case v.IsArray():
		return arrayNode(v)
	case v.IsStr():
		s, _ := v.Str()

		return &goyaml.Node{Kind: goyaml.ScalarNode, Tag: "!!str", Value: s}, nil
	case v.IsInteger():
		n, _ := v.Integer()

		return &goyaml.Node{Kind: goyaml.ScalarNode, Tag: "!!int", Value: formatInt(n)}, nil
	case v.IsDecimal():
		f, _ := v.Decimal()

		return &goyaml.Node{Kind: goyaml.ScalarNode, Tag: "!!float", Value: formatFloat(f)}, nil
	case v.IsBoolean():
		b, _ := v.Boolean()

		return &goyaml.Node{Kind: goyaml.ScalarNode, Tag: "!!bool", Value: formatBool(b)}, nil
	case v.IsNull():
		return &goyaml.Node{Kind: goyaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	default:
		return nil, errs.Type("yaml.toNode", "", -1, "unknown value kind")
	}
}

func objectNode(v heap.Value) (*goyaml.Node, error) {
	obj, err := v.Object()
	if err != nil {
		return nil, err
	}

	node := &goyaml.Node{Kind: goyaml.MappingNode, Tag: "!!map"}
	for i := 0; i < obj.Len(); i++ {
		key, val, atErr := obj.At(i)
		if atErr != nil {
			return nil, atErr
		}

		valNode, err := toNode(val)
		if err != nil {
			return nil, err
		}

		node.Content = append(node.Content,
			&goyaml.Node{Kind: goyaml.ScalarNode, Tag: "!!str", Value: key},
			valNode,
		)
	}

	return node, nil
}

func arrayNode(v heap.Value) (*goyaml.Node, error) {
	arr, err := v.Array()
	if err != nil {
		return nil, err
	}

	node := &goyaml.Node{Kind: goyaml.SequenceNode, Tag: "!!seq"}
	for i := 0; i < arr.Len(); i++ {
		el, idxErr := arr.Index(i)
		if idxErr != nil {
			return nil, idxErr
		}

		elNode, err := toNode(el)
		if err != nil {
			return nil, err
		}
		node.Content = append(node.Content, elNode)
	}

	return node, nil
}
