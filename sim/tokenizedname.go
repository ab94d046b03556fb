package sim

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// A Name is a hierarchical name split at the dots.
type Name struct {
	Tokens []NameToken
}

// NameToken is one dot-separated element of a name, with the indices that
// follow it in square brackets.
type NameToken struct {
	ElemName string
	Index    []int
}

var (
	elemPattern  = regexp.MustCompile(`^([^\[\]]*)((?:\[\d+\])*)$`)
	indexPattern = regexp.MustCompile(`\[(\d+)\]`)
)

// ParseName splits a name into its tokens. It panics if an element has
// unbalanced brackets or a non-numeric index.
func ParseName(name string) Name {
	parts := strings.Split(name, ".")
	n := Name{Tokens: make([]NameToken, 0, len(parts))}

	for _, part := range parts {
		m := elemPattern.FindStringSubmatch(part)
		if m == nil {
			panic(fmt.Sprintf("element %q has malformed indices", part))
		}

		token := NameToken{ElemName: m[1], Index: []int{}}
		for _, idx := range indexPattern.FindAllStringSubmatch(m[2], -1) {
			i, _ := strconv.Atoi(idx[1])
			token.Index = append(token.Index, i)
		}

		n.Tokens = append(n.Tokens, token)
	}

	return n
}

// NameMustBeValid panics if the name is not a dot-separated list of
// capitalized CamelCase elements. Elements in a series carry square-bracket
// indices, as in "Hierarchy.Core[1].L2Cache".
func NameMustBeValid(name string) {
	defer func() {
		if r := recover(); r != nil {
			panic(fmt.Sprintf("name %q is not valid: %v", name, r))
		}
	}()

	for _, token := range ParseName(name).Tokens {
		elemMustBeValid(token.ElemName)
	}
}

func elemMustBeValid(elem string) {
	switch {
	case elem == "":
		panic("empty element")
	case strings.ContainsAny(elem, "_-\"'"):
		panic(fmt.Sprintf("element %q contains punctuation", elem))
	case elem[0] < 'A' || elem[0] > 'Z':
		panic(fmt.Sprintf("element %q is not capitalized", elem))
	}
}

// BuildName joins a parent name and an element name.
func BuildName(parentName, elementName string) string {
	if parentName == "" {
		return elementName
	}

	return parentName + "." + elementName
}

// BuildNameWithIndex joins a parent name and an element of a series.
func BuildNameWithIndex(parentName, elementName string, index int) string {
	return BuildName(parentName, elementName+"["+strconv.Itoa(index)+"]")
}
