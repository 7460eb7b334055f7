package tupleid

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// ID is the structured form of a textual family member identifier.
type ID struct {
	Family string
	Labels []string
}

// New builds an ID.
func New(family string, labels ...string) *ID {
	return &ID{Family: family, Labels: labels}
}

// String serializes the ID into its canonical representation.
func (id *ID) String() string {
	if id == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(id.Family)
	sb.WriteByte('(')
	sb.WriteString(strings.Join(id.Labels, ";"))
	sb.WriteByte(')')
	return sb.String()
}

// Index returns the labels joined with ';', the value written to the
// var_index and con_index table columns.
func (id *ID) Index() string {
	if id == nil {
		return ""
	}
	return strings.Join(id.Labels, ";")
}

// Equal checks for deep equality between two IDs.
func (id *ID) Equal(other *ID) bool {
	if id == nil || other == nil {
		return id == other
	}
	return id.Family == other.Family && slices.Equal(id.Labels, other.Labels)
}

// idRegex splits "Family(a;b)" into its family and index parts.
var idRegex = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9_]*)\((.*)\)$`)

// Parse creates an ID from its canonical string representation.
func Parse(raw string) (*ID, error) {
	if raw == "" {
		return nil, fmt.Errorf("identifier cannot be empty")
	}
	matches := idRegex.FindStringSubmatch(raw)
	if matches == nil {
		return nil, fmt.Errorf("invalid identifier format: %q", raw)
	}

	id := &ID{Family: matches[1]}
	if matches[2] == "" {
		return id, nil
	}
	for _, label := range strings.Split(matches[2], ";") {
		if label == "" {
			return nil, fmt.Errorf("identifier %q contains an empty label", raw)
		}
		id.Labels = append(id.Labels, label)
	}
	return id, nil
}
