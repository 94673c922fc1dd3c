package builder

import "fmt"

// DiagKind identifies which repair policy fired. Repairs are observable
// events, never failures: every one is a defined substitution that lets
// construction continue.
type DiagKind int

const (
	// RepairIgnoredClose: a close event matched no open element and was
	// dropped.
	RepairIgnoredClose DiagKind = iota
	// RepairImplicitClose: an open element was closed implicitly because
	// an enclosing element closed over it.
	RepairImplicitClose
	// RepairReopenedElement: a formatting element implicitly closed by an
	// enclosing close was reopened inside the next container to preserve
	// the original nesting intent.
	RepairReopenedElement
	// RepairDiscardedVoidClose: an explicit close for a self-closing-tag
	// family element was discarded.
	RepairDiscardedVoidClose
	// RepairDuplicateAttr: a duplicate attribute name was dropped; the
	// first occurrence wins.
	RepairDuplicateAttr
	// RepairDemotedDeclaration: a declaration with an unrecognized shape
	// was preserved as a comment instead of being dropped.
	RepairDemotedDeclaration
	// DegradedFullBuild: selective build was requested but the engine
	// does not support it, so the whole document was built unfiltered.
	DegradedFullBuild
)

// String returns the string representation of the DiagKind.
func (k DiagKind) String() string {
	switch k {
	case RepairIgnoredClose:
		return "ignored-close"
	case RepairImplicitClose:
		return "implicit-close"
	case RepairReopenedElement:
		return "reopened-element"
	case RepairDiscardedVoidClose:
		return "discarded-void-close"
	case RepairDuplicateAttr:
		return "duplicate-attribute"
	case RepairDemotedDeclaration:
		return "demoted-declaration"
	case DegradedFullBuild:
		return "degraded-full-build"
	default:
		return "unknown"
	}
}

// Diagnostic records one repair policy firing during a build.
type Diagnostic struct {
	Kind    DiagKind
	Subject string
	Detail  string
}

func (d Diagnostic) String() string {
	if d.Detail == "" {
		return fmt.Sprintf("%s: %s", d.Kind, d.Subject)
	}
	return fmt.Sprintf("%s: %s (%s)", d.Kind, d.Subject, d.Detail)
}
