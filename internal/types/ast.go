package types

import "fmt"

// JoinKind represents how a child combines with the children before it.
type JoinKind int

const (
	Lead JoinKind = iota // first child of a group, no operator emitted
	And
	Or
)

func (j JoinKind) String() string {
	switch j {
	case Lead:
		return "LEAD"
	case And:
		return "AND"
	case Or:
		return "OR"
	default:
		return fmt.Sprintf("JoinKind(%d)", int(j))
	}
}

// DefaultMaxDepth bounds group nesting for adversarial input.
const DefaultMaxDepth = 64

// Node is a predicate tree node: a Leaf or a Group.
type Node interface {
	isNode()
}

// Leaf is a single column/operator/value comparison.
// Value is nil for IS NULL and IS NOT NULL.
type Leaf struct {
	Value    Value
	Column   string
	Operator Operator
}

// Child is one member of a Group together with its join.
type Child struct {
	Node Node
	Join JoinKind
}

// Group is an ordered, non-empty list of children.
type Group struct {
	Children []Child
}

func (Leaf) isNode()  {}
func (Group) isNode() {}

// Validate checks the structural invariants of a tree. Trees produced by
// the parser always pass; hand-built trees are checked before rendering.
func Validate(n Node, maxDepth int) error {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return validateNode(n, 0, maxDepth)
}

func validateNode(n Node, depth, maxDepth int) error {
	switch node := n.(type) {
	case Leaf:
		return node.Validate()
	case *Leaf:
		if node == nil {
			return fmt.Errorf("nil leaf")
		}
		return node.Validate()
	case Group:
		return validateGroup(node, depth+1, maxDepth)
	case *Group:
		if node == nil {
			return fmt.Errorf("nil group")
		}
		return validateGroup(*node, depth+1, maxDepth)
	case nil:
		return fmt.Errorf("nil node")
	default:
		return fmt.Errorf("unknown node type: %T", n)
	}
}

func validateGroup(g Group, depth, maxDepth int) error {
	if depth > maxDepth {
		return fmt.Errorf("maximum nesting depth (%d) exceeded", maxDepth)
	}
	if len(g.Children) == 0 {
		return fmt.Errorf("empty group")
	}
	for i, child := range g.Children {
		switch {
		case i == 0 && child.Join != Lead:
			return fmt.Errorf("first child of a group must lead, got %s", child.Join)
		case i > 0 && child.Join != And && child.Join != Or:
			return fmt.Errorf("child %d must join with AND or OR, got %s", i, child.Join)
		}
		if err := validateNode(child.Node, depth, maxDepth); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the column and the value shape against the operator table.
func (l Leaf) Validate() error {
	if l.Column == "" {
		return fmt.Errorf("leaf column is required")
	}
	spec, ok := l.Operator.Spec()
	if !ok {
		return fmt.Errorf("unknown operator: %q", l.Operator)
	}
	if !spec.Shape.Accepts(l.Value) {
		if l.Value == nil {
			return fmt.Errorf("operator %s on %s requires %s", l.Operator, l.Column, spec.Shape)
		}
		return fmt.Errorf("operator %s on %s requires %s, got %s", l.Operator, l.Column, spec.Shape, l.Value)
	}
	return nil
}
