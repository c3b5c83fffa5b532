package formula

import (
	"fmt"
	"math"
)

// node is an arithmetic expression tree node. Evaluation walks the tree with
// a variable environment instead of substituting text and re-parsing, so the
// numeric semantics are fixed here rather than delegated to a runtime
// evaluator.
type node interface {
	eval(env map[string]float64) (float64, error)
}

type numberNode float64

func (n numberNode) eval(map[string]float64) (float64, error) {
	return float64(n), nil
}

type varNode string

func (n varNode) eval(env map[string]float64) (float64, error) {
	v, ok := env[string(n)]
	if !ok {
		return 0, fmt.Errorf("input %q is not defined", string(n))
	}
	return v, nil
}

type unaryNode struct {
	op    tokenKind
	child node
}

func (n unaryNode) eval(env map[string]float64) (float64, error) {
	v, err := n.child.eval(env)
	if err != nil {
		return 0, err
	}
	return -v, nil
}

type binaryNode struct {
	op          tokenKind
	left, right node
}

func (n binaryNode) eval(env map[string]float64) (float64, error) {
	l, err := n.left.eval(env)
	if err != nil {
		return 0, err
	}
	r, err := n.right.eval(env)
	if err != nil {
		return 0, err
	}
	switch n.op {
	case tokPlus:
		return l + r, nil
	case tokMinus:
		return l - r, nil
	case tokStar:
		return l * r, nil
	case tokSlash:
		return l / r, nil
	case tokCaret:
		return math.Pow(l, r), nil
	}
	return 0, fmt.Errorf("unknown operator")
}

type parser struct {
	toks []token
	pos  int
}

// parse builds an expression tree from a formula template.
//
// Grammar (standard precedence, left-associative except '^'):
//
//	expr    = term { ("+" | "-") term }
//	term    = power { ("*" | "/") power }
//	power   = unary [ "^" power ]
//	unary   = "-" unary | primary
//	primary = NUMBER | "{" IDENT "}" | "(" expr ")"
func parse(src string) (node, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	root, err := p.expr()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokEOF {
		return nil, fmt.Errorf("unexpected token at position %d", p.peek().pos)
	}
	return root, nil
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) expr() (node, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		op := p.peek().kind
		if op != tokPlus && op != tokMinus {
			return left, nil
		}
		p.next()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: op, left: left, right: right}
	}
}

func (p *parser) term() (node, error) {
	left, err := p.power()
	if err != nil {
		return nil, err
	}
	for {
		op := p.peek().kind
		if op != tokStar && op != tokSlash {
			return left, nil
		}
		p.next()
		right, err := p.power()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: op, left: left, right: right}
	}
}

func (p *parser) power() (node, error) {
	base, err := p.unary()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokCaret {
		return base, nil
	}
	p.next()
	exp, err := p.power()
	if err != nil {
		return nil, err
	}
	return binaryNode{op: tokCaret, left: base, right: exp}, nil
}

func (p *parser) unary() (node, error) {
	if p.peek().kind == tokMinus {
		p.next()
		child, err := p.unary()
		if err != nil {
			return nil, err
		}
		return unaryNode{op: tokMinus, child: child}, nil
	}
	return p.primary()
}

func (p *parser) primary() (node, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return numberNode(t.num), nil
	case tokVar:
		return varNode(t.name), nil
	case tokLParen:
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return nil, fmt.Errorf("missing closing parenthesis at position %d", closing.pos)
		}
		return inner, nil
	}
	return nil, fmt.Errorf("unexpected token at position %d", t.pos)
}
