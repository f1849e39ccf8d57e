// Package keyextract parses JavaScript source into an AST and walks it
// looking for string literals that satisfy a rule catalog's value
// patterns, carrying along the enclosing variable/property/binding name
// so the rule catalog's name criteria can filter false positives.
package keyextract

import (
	"errors"
	"fmt"

	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/parser"
	"github.com/dop251/goja/token"

	"github.com/corvidscan/keyhunter/rules"
)

// ErrParse wraps any error goja's parser returns; Extract treats a parse
// failure as fatal for the whole source rather than scanning partially.
var ErrParse = errors.New("keyextract: parse error")

// CandidateKey is one rule match found while walking the AST: the rule
// that matched, the byte span of the captured secret within the source,
// the captured text, and the enclosing identifier if one was in scope.
type CandidateKey struct {
	RuleID  rules.RuleId
	Start   int
	End     int
	Secret  string
	KeyName *string
}

// Extract parses source as JavaScript and returns every candidate key
// found, checked against catalog.
func Extract(catalog *rules.Catalog, source string) ([]CandidateKey, error) {
	program, err := parser.ParseFile(nil, "", source, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	v := &visitor{catalog: catalog}
	v.visitStatements(program.Body)
	return v.candidates, nil
}

// visitor walks the AST with a single mutable "current identifier" cell,
// saved and restored around the constructs spec.md §4.6 names: variable
// declarators, assignment expressions (right-hand side only), class
// property definitions, and call expressions (arguments only).
type visitor struct {
	catalog           *rules.Catalog
	currentIdentifier *string
	candidates        []CandidateKey
}

func (v *visitor) withIdentifier(name *string, fn func()) {
	prev := v.currentIdentifier
	v.currentIdentifier = name
	fn()
	v.currentIdentifier = prev
}

func strPtr(s string) *string { return &s }

func (v *visitor) visitStatements(list []ast.Statement) {
	for _, s := range list {
		v.visitStatement(s)
	}
}

func (v *visitor) visitStatement(s ast.Statement) {
	if s == nil {
		return
	}
	switch n := s.(type) {
	case *ast.ExpressionStatement:
		v.visitExpression(n.Expression)
	case *ast.BlockStatement:
		v.visitStatements(n.List)
	case *ast.VariableStatement:
		v.visitBindings(n.List)
	case *ast.LexicalDeclaration:
		v.visitBindings(n.List)
	case *ast.FunctionDeclaration:
		if n.Function != nil {
			v.visitFunctionBody(n.Function.Body)
		}
	case *ast.ClassDeclaration:
		v.visitClass(n.Class)
	case *ast.ReturnStatement:
		v.visitExpression(n.Argument)
	case *ast.IfStatement:
		v.visitExpression(n.Test)
		v.visitStatement(n.Consequent)
		v.visitStatement(n.Alternate)
	case *ast.ForStatement:
		v.visitExpression(n.Test)
		v.visitStatement(n.Body)
	case *ast.ForInStatement:
		v.visitStatement(n.Body)
	case *ast.ForOfStatement:
		v.visitStatement(n.Body)
	case *ast.WhileStatement:
		v.visitExpression(n.Test)
		v.visitStatement(n.Body)
	case *ast.DoWhileStatement:
		v.visitExpression(n.Test)
		v.visitStatement(n.Body)
	case *ast.TryStatement:
		if n.Body != nil {
			v.visitStatement(n.Body)
		}
		if n.Catch != nil {
			v.visitStatement(n.Catch.Body)
		}
		if n.Finally != nil {
			v.visitStatement(n.Finally)
		}
	case *ast.SwitchStatement:
		v.visitExpression(n.Discriminant)
		for _, c := range n.Body {
			v.visitExpression(c.Test)
			v.visitStatements(c.Consequent)
		}
	case *ast.LabelledStatement:
		v.visitStatement(n.Statement)
	case *ast.ThrowStatement:
		v.visitExpression(n.Argument)
	case *ast.WithStatement:
		v.visitExpression(n.Object)
		v.visitStatement(n.Body)
	}
}

func (v *visitor) visitBindings(list []*ast.Binding) {
	for _, b := range list {
		if b == nil || b.Initializer == nil {
			continue
		}
		name, ok := identifierName(b.Target)
		if ok {
			v.withIdentifier(strPtr(name), func() { v.visitExpression(b.Initializer) })
		} else {
			v.withIdentifier(nil, func() { v.visitExpression(b.Initializer) })
		}
	}
}

func (v *visitor) visitFunctionBody(body ast.ConciseBody) {
	switch b := body.(type) {
	case *ast.BlockStatement:
		v.visitStatements(b.List)
	case *ast.ExpressionBody:
		v.visitExpression(b.Expression)
	}
}

func (v *visitor) visitClass(c *ast.ClassLiteral) {
	if c == nil {
		return
	}
	for _, el := range c.Body {
		v.visitClassElement(el)
	}
}

func (v *visitor) visitClassElement(el ast.ClassElement) {
	switch n := el.(type) {
	case *ast.FieldDefinition:
		if n.Initializer == nil {
			return
		}
		if name, ok := nameOf(n.Key); ok {
			v.withIdentifier(strPtr(name), func() { v.visitExpression(n.Initializer) })
		} else {
			v.withIdentifier(nil, func() { v.visitExpression(n.Initializer) })
		}
	case *ast.MethodDefinition:
		if fn, ok := n.Body.(*ast.FunctionLiteral); ok && fn != nil {
			v.visitFunctionBody(fn.Body)
		}
	case *ast.ClassStaticBlock:
		if n.Block != nil {
			v.visitStatements(n.Block.List)
		}
	}
}

// visitExpression walks e looking for leaf string values. It first tries
// to constant-fold e via getStrValue (spec.md §4.6's get_str_value); a
// folded expression is inspected directly and not recursed into further.
// Anything that doesn't fold is handled structurally so nested literals
// and calls are still reached.
func (v *visitor) visitExpression(e ast.Expression) {
	if e == nil {
		return
	}
	if s, ok := getStrValue(e); ok {
		v.inspectLeaf(s, exprIdx(e))
		return
	}

	switch n := e.(type) {
	case *ast.AssignExpression:
		v.withIdentifier(nil, func() { v.visitExpression(n.Right) })
	case *ast.CallExpression:
		v.withIdentifier(nil, func() {
			for _, a := range n.ArgumentList {
				v.visitExpression(a)
			}
		})
	case *ast.NewExpression:
		for _, a := range n.ArgumentList {
			v.visitExpression(a)
		}
	case *ast.SequenceExpression:
		for _, s := range n.Sequence {
			v.visitExpression(s)
		}
	case *ast.BinaryExpression:
		v.visitExpression(n.Left)
		v.visitExpression(n.Right)
	case *ast.ConditionalExpression:
		v.visitExpression(n.Test)
		v.visitExpression(n.Consequent)
		v.visitExpression(n.Alternate)
	case *ast.UnaryExpression:
		v.visitExpression(n.Operand)
	case *ast.DotExpression:
		v.visitExpression(n.Left)
	case *ast.BracketExpression:
		v.visitExpression(n.Left)
		v.visitExpression(n.Member)
	case *ast.ArrayLiteral:
		for _, el := range n.Value {
			v.visitExpression(el)
		}
	case *ast.ObjectLiteral:
		for _, prop := range n.Value {
			v.visitObjectProperty(prop)
		}
	case *ast.ArrowFunctionLiteral:
		v.visitFunctionBody(n.Body)
	case *ast.FunctionLiteral:
		v.visitFunctionBody(n.Body)
	case *ast.ClassLiteral:
		v.visitClass(n)
	case *ast.TemplateLiteral:
		for _, sub := range n.Expressions {
			v.visitExpression(sub)
		}
	}
}

func (v *visitor) visitObjectProperty(prop ast.Property) {
	kv, ok := prop.(*ast.PropertyKeyed)
	if !ok || kv.Value == nil {
		return
	}
	if name, ok := nameOf(kv.Key); ok {
		v.withIdentifier(strPtr(name), func() { v.visitExpression(kv.Value) })
	} else {
		v.withIdentifier(nil, func() { v.visitExpression(kv.Value) })
	}
}

// inspectLeaf runs the rule catalog's value patterns against a leaf
// string, keeping only matches whose rule has no name criterion or whose
// name criterion is satisfied by the current enclosing identifier
// (spec.md §4.6 step 3).
func (v *visitor) inspectLeaf(text string, offset int) {
	for _, m := range v.catalog.CheckValues(text) {
		namePattern := v.catalog.GetNameCriteria(m.RuleID)
		var keyName *string
		switch {
		case v.currentIdentifier != nil:
			if namePattern != nil && !v.catalog.CheckName(m.RuleID, *v.currentIdentifier) {
				continue
			}
			keyName = v.currentIdentifier
		default:
			if namePattern != nil {
				continue
			}
		}
		v.candidates = append(v.candidates, CandidateKey{
			RuleID:  m.RuleID,
			Start:   offset + m.Offset,
			End:     offset + m.Offset + len(m.Text),
			Secret:  m.Text,
			KeyName: keyName,
		})
	}
}

// getStrValue constant-folds e to a string, per spec.md §4.6: string and
// no-substitution template literals fold to themselves; a sequence
// expression folds to its last element; binary `+` folds both sides and
// concatenates; `||`/`??` prefer the left side if it folds, else the
// right; `&&` only ever considers the left side. goja does not emit a
// separate node for parenthesized expressions, so no explicit case is
// needed for that.
func getStrValue(e ast.Expression) (string, bool) {
	switch n := e.(type) {
	case *ast.StringLiteral:
		return string(n.Value), true
	case *ast.TemplateLiteral:
		if len(n.Expressions) != 0 {
			return "", false
		}
		s := ""
		for _, el := range n.Elements {
			if el != nil {
				s += string(el.Parsed)
			}
		}
		return s, true
	case *ast.SequenceExpression:
		if len(n.Sequence) == 0 {
			return "", false
		}
		return getStrValue(n.Sequence[len(n.Sequence)-1])
	case *ast.BinaryExpression:
		switch n.Operator {
		case token.Plus:
			left, ok := getStrValue(n.Left)
			if !ok {
				return "", false
			}
			right, ok := getStrValue(n.Right)
			if !ok {
				return "", false
			}
			return left + right, true
		case token.LogicalOr, token.Coalesce:
			if s, ok := getStrValue(n.Left); ok {
				return s, true
			}
			return getStrValue(n.Right)
		case token.LogicalAnd:
			return getStrValue(n.Left)
		}
	}
	return "", false
}

// identifierName extracts a declarator's binding name, when the target is
// a plain identifier rather than a destructuring pattern.
func identifierName(target ast.BindingTarget) (string, bool) {
	if id, ok := target.(*ast.Identifier); ok {
		return string(id.Name), true
	}
	return "", false
}

// nameOf implements spec.md §4.6's "name of" helper: plain identifiers,
// static member property names, string-literal and no-substitution
// template subscripts resolve to a name; anything else does not.
func nameOf(e ast.Expression) (string, bool) {
	switch n := e.(type) {
	case *ast.Identifier:
		return string(n.Name), true
	case *ast.StringLiteral:
		return string(n.Value), true
	case *ast.TemplateLiteral:
		return getStrValue(n)
	case *ast.DotExpression:
		return string(n.Identifier.Name), true
	case *ast.BracketExpression:
		return nameOf(n.Member)
	}
	return "", false
}

// exprIdx returns e's byte offset in the source, when known. Folded
// composite expressions (e.g. binary concatenation) fall back to 0 since
// spec.md does not require exact spans for synthesized values.
func exprIdx(e ast.Expression) int {
	switch n := e.(type) {
	case *ast.StringLiteral:
		return int(n.Idx) - 1
	case *ast.TemplateLiteral:
		return int(n.Idx) - 1
	}
	return 0
}
