package meta

import "fmt"

// ReferenceKind tells scalar properties apart from relational ones.
type ReferenceKind int

const (
	Scalar ReferenceKind = iota
	Embedded
	ManyToOne
	OneToMany
	OneToOne
	ManyToMany
)

// String returns the short form used in error messages and tags.
func (k ReferenceKind) String() string {
	switch k {
	case Scalar:
		return "scalar"
	case Embedded:
		return "embedded"
	case ManyToOne:
		return "m:1"
	case OneToMany:
		return "1:m"
	case OneToOne:
		return "1:1"
	case ManyToMany:
		return "m:n"
	default:
		return "unknown"
	}
}

// IsRelation reports whether the kind points at another entity.
func (k ReferenceKind) IsRelation() bool {
	return k == ManyToOne || k == OneToMany || k == OneToOne || k == ManyToMany
}

// ParseReferenceKind accepts both the short form ("m:1") and the spelled-out
// form ("many_to_one").
func ParseReferenceKind(s string) (ReferenceKind, error) {
	switch s {
	case "scalar":
		return Scalar, nil
	case "embedded":
		return Embedded, nil
	case "m:1", "many_to_one", "belongs_to":
		return ManyToOne, nil
	case "1:m", "one_to_many", "has_many":
		return OneToMany, nil
	case "1:1", "one_to_one", "has_one":
		return OneToOne, nil
	case "m:n", "many_to_many":
		return ManyToMany, nil
	default:
		return 0, fmt.Errorf("meta: unknown reference kind %q", s)
	}
}
