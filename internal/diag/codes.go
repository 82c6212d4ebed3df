package diag

import (
	"fmt"
)

type Code uint16

const (
	// UnknownCode is the fallback for diagnostics without a real code.
	UnknownCode Code = 0

	// Lowering (surface tree -> core tree) diagnostics.
	LowInfo              Code = 4000
	LowOpaqueDisallowed  Code = 4001
	LowParenArgsNonTrait Code = 4002
	LowParenArgsCompat   Code = 4003
	LowOptionalBoundPos  Code = 4004
	LowBreakOutsideLoop  Code = 4005
	LowContinueOutside   Code = 4006
	LowBreakInCondition  Code = 4007
	LowUnresolvedLabel   Code = 4008
	LowGeneratorArgs     Code = 4009
	LowPlacementDisabled Code = 4010

	// Project / manifest diagnostics.
	ProjInfo            Code = 5000
	ProjManifestMissing Code = 5001
	ProjManifestInvalid Code = 5002
	ProjUnknownFeature  Code = 5003

	// Observability.
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode: "Unknown diagnostic",

	LowInfo:              "Lowering information",
	LowOpaqueDisallowed:  "Opaque type sugar not allowed in this position",
	LowParenArgsNonTrait: "Parenthesized arguments are only allowed on trait paths",
	LowParenArgsCompat:   "Parenthesized arguments on this path are deprecated",
	LowOptionalBoundPos:  "Optional bounds are only permitted on type parameters",
	LowBreakOutsideLoop:  "'break' outside of a loop",
	LowContinueOutside:   "'continue' outside of a loop",
	LowBreakInCondition:  "Unlabeled control flow inside a loop condition",
	LowUnresolvedLabel:   "Use of an unresolved loop label",
	LowGeneratorArgs:     "Generators may not have parameters",
	LowPlacementDisabled: "Placement expressions require the 'placement' feature",

	ProjInfo:            "Project information",
	ProjManifestMissing: "Project manifest not found",
	ProjManifestInvalid: "Project manifest is invalid",
	ProjUnknownFeature:  "Unknown feature in project manifest",

	ObsInfo:    "Observability information",
	ObsTimings: "Pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("LOW%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
