package detect

import "pylens/internal/provider"

// FindingKind tags the relationship a finding reports.
type FindingKind string

const (
	KindOverride       FindingKind = "override"
	KindImplementation FindingKind = "implementation"
	KindSubclassed     FindingKind = "subclassed"
)

// Target is one navigation destination. Override findings carry exactly one
// target; implementation and subclassed findings carry one per child, in
// discovery order, and the presentation layer disambiguates.
type Target struct {
	Label    string            `json:"label"`
	Location provider.Location `json:"location"`
}

// Finding anchors a detected relationship to a source range in the subject
// document.
type Finding struct {
	Kind    FindingKind    `json:"kind"`
	Range   provider.Range `json:"range"`
	Targets []Target       `json:"targets"`
}
