package runner

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidType reports a type string outside the signature grammar.
var ErrInvalidType = errors.New("invalid type")

// Kind is the head of a variable type.
type Kind string

const (
	KindInt    Kind = "int"
	KindUint   Kind = "uint"
	KindFloat  Kind = "float"
	KindBool   Kind = "bool"
	KindChar   Kind = "char"
	KindString Kind = "string"
	KindList   Kind = "list"
	KindMap    Kind = "map"
	KindTuple  Kind = "tuple"
	KindOption Kind = "option"
)

// arity is the number of type parameters each kind takes; -1 means one or more.
var arity = map[Kind]int{
	KindInt:    0,
	KindUint:   0,
	KindFloat:  0,
	KindBool:   0,
	KindChar:   0,
	KindString: 0,
	KindList:   1,
	KindMap:    2,
	KindTuple:  -1,
	KindOption: 1,
}

// VarType is a parsed signature type such as map<string, list<int>>.
type VarType struct {
	Kind   Kind
	Params []VarType
}

// ParseVarType parses raw against the grammar
//
//	type   = scalar | "list<" type ">" | "map<" type "," type ">"
//	       | "tuple<" type { "," type } ">" | "option<" type ">"
//	scalar = "int" | "uint" | "float" | "bool" | "char" | "string"
func ParseVarType(raw string) (VarType, error) {
	p := &typeParser{input: raw}
	vt, err := p.parseType()
	if err != nil {
		return VarType{}, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return VarType{}, p.errorf("unexpected %q", p.input[p.pos:])
	}
	return vt, nil
}

func (v VarType) String() string {
	if len(v.Params) == 0 {
		return string(v.Kind)
	}
	params := make([]string, len(v.Params))
	for i, param := range v.Params {
		params[i] = param.String()
	}
	return fmt.Sprintf("%s<%s>", v.Kind, strings.Join(params, ", "))
}

type typeParser struct {
	input string
	pos   int
}

func (p *typeParser) parseType() (VarType, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.input) && isIdentByte(p.input[p.pos]) {
		p.pos++
	}
	name := p.input[start:p.pos]
	if name == "" {
		return VarType{}, p.errorf("expected a type name")
	}

	kind := Kind(strings.ToLower(name))
	want, ok := arity[kind]
	if !ok {
		return VarType{}, p.errorf("unknown type %q", name)
	}

	p.skipSpace()
	if want == 0 {
		if p.peek() == '<' {
			return VarType{}, p.errorf("%s takes no type parameters", kind)
		}
		return VarType{Kind: kind}, nil
	}

	if p.peek() != '<' {
		return VarType{}, p.errorf("%s requires type parameters", kind)
	}
	p.pos++

	var params []VarType
	for {
		param, err := p.parseType()
		if err != nil {
			return VarType{}, err
		}
		params = append(params, param)

		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
			continue
		case '>':
			p.pos++
		default:
			return VarType{}, p.errorf("expected ',' or '>'")
		}
		break
	}

	if want > 0 && len(params) != want {
		return VarType{}, p.errorf("%s takes %d type parameters, got %d", kind, want, len(params))
	}
	return VarType{Kind: kind, Params: params}, nil
}

func (p *typeParser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

func (p *typeParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w %q at offset %d: %s", ErrInvalidType, p.input, p.pos, fmt.Sprintf(format, args...))
}

func isIdentByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}
