package fbp

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

// Token codes
const (
	whitespaceCode = iota
	identifierCode
	arrowCode
	openParenCode
	closeParenCode
	componentCode
	packetCode
)

// Token definitions
var (
	whitespaceToken = parsly.NewToken(whitespaceCode, "Whitespace", matcher.NewWhiteSpace())
	identifierToken = parsly.NewToken(identifierCode, "Identifier", &identifierMatcher{})
	arrowToken      = parsly.NewToken(arrowCode, "->", matcher.NewFragment("->"))
	openParenToken  = parsly.NewToken(openParenCode, "(", matcher.NewByte('('))
	closeParenToken = parsly.NewToken(closeParenCode, ")", matcher.NewByte(')'))
	componentToken  = parsly.NewToken(componentCode, "Component", &componentMatcher{})
	packetToken     = parsly.NewToken(packetCode, "InitialPacket", &packetMatcher{})
)

// identifierMatcher matches process and port names
type identifierMatcher struct{}

func (m *identifierMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	matched := 0
	for i := cursor.Pos; i < cursor.InputSize; i++ {
		if !isIdentifier(input[i]) {
			break
		}
		matched++
	}
	return matched
}

// componentMatcher matches a component type name up to the closing parenthesis
type componentMatcher struct{}

func (m *componentMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	matched := 0
	for i := cursor.Pos; i < cursor.InputSize; i++ {
		if input[i] == ')' || input[i] == '(' {
			break
		}
		matched++
	}
	return matched
}

// packetMatcher matches a single quoted literal; \' escapes a quote
type packetMatcher struct{}

func (m *packetMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	if pos >= cursor.InputSize || input[pos] != '\'' {
		return 0
	}
	for i := pos + 1; i < cursor.InputSize; i++ {
		switch input[i] {
		case '\\':
			i++
		case '\'':
			return i - pos + 1
		}
	}
	return 0
}

func isIdentifier(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' || c == '.'
}
