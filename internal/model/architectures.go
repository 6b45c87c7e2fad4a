package model

import "slices"

// knownArchitectures is the recommended set of hardware labels.
// It is advisory: other labels validate, they are just undocumented.
var knownArchitectures = []string{
	"GPU:A100",
	"GPU:H100",
	"GPU:H200",
	"GPU:V100",
	"GPU:A40",
	"GPU:L40S",
	"GPU:RTX4090",
	"GPU:RTX3090",
	"GPU:MI250X",
	"GPU:MI300X",
	"CPU:EPYC-7763",
	"CPU:EPYC-9654",
	"CPU:Xeon-Platinum-8380",
	"CPU:Xeon-Max-9480",
	"CPU:A64FX",
	"CPU:Grace",
	"CPU:M1-Max",
	"CPU:M2-Ultra",
	"CPU:M3-Max",
	"TPU:v4",
	"TPU:v5e",
}

// KnownArchitectures returns a copy of the recommended hardware labels.
func KnownArchitectures() []string { return slices.Clone(knownArchitectures) }

// IsKnownArchitecture reports whether label is one of KnownArchitectures.
func IsKnownArchitecture(label string) bool {
	return slices.Contains(knownArchitectures, label)
}
