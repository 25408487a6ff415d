package report

import (
	"encoding/json"

	"github.com/ducdmdev/prrisk/internal/model"
)

// JSON renders the analysis as indented JSON. The field names are the
// interchange contract; anything consuming prrisk output machine-side
// reads this shape.
func JSON(a *model.PRAnalysis) (string, error) {
	out, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out) + "\n", nil
}

// Render dispatches on format: text, markdown or json.
func Render(a *model.PRAnalysis, format string) (string, error) {
	switch format {
	case "json":
		return JSON(a)
	case "markdown", "md":
		return Markdown(a), nil
	default:
		return Text(a), nil
	}
}
