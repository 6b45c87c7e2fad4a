package schema

import (
	"fmt"

	"github.com/OpenQS/speed/internal/canonical"
	"github.com/OpenQS/speed/internal/model"
)

// ArchitectureWidget is the custom form widget offering KnownArchitectures
// with a free-text fallback.
const ArchitectureWidget = "ArchitectureWidget"

var hiddenWidget = map[string]any{"ui:widget": "hidden"}

// UIDocument returns form-rendering hints for the schema. The discriminators
// are hidden because the form sets them when a variant is picked.
func UIDocument() map[string]any {
	return map[string]any{
		"problem": map[string]any{
			model.DiscriminatorField: hiddenWidget,
			"Lattice": map[string]any{
				model.DiscriminatorField: hiddenWidget,
			},
		},
		"architecture": map[string]any{
			"ui:widget": ArchitectureWidget,
		},
	}
}

// ExportUI returns the indented canonical encoding of UIDocument.
func ExportUI() ([]byte, error) {
	data, err := canonical.MarshalIndent(UIDocument())
	if err != nil {
		return nil, fmt.Errorf("export ui schema: %w", err)
	}
	return data, nil
}
