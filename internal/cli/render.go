package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/recipebox/pkg/types"
)

// Output formats.
const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

func validOutput(format string) error {
	switch format {
	case outputText, outputJSON, outputYAML:
		return nil
	default:
		return userError(fmt.Sprintf("unknown output format %q (want text, json or yaml)", format))
	}
}

// styles are bound to the output writer, so plain buffers and pipes get
// unstyled text.
type styles struct {
	id       lipgloss.Style
	name     lipgloss.Style
	category lipgloss.Style
	label    lipgloss.Style
	muted    lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		id:       r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6C6C6C", Dark: "#9E9E9E"}),
		name:     r.NewStyle().Bold(true),
		category: r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#0087AF", Dark: "#5FD7FF"}),
		label:    r.NewStyle().Bold(true),
		muted:    r.NewStyle().Faint(true),
	}
}

// writeStructured encodes v as JSON or YAML.
func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// renderList writes one line per recipe: id, name and bracketed category.
func renderList(w io.Writer, format string, recipes []types.Recipe) error {
	if format != outputText {
		return writeStructured(w, format, recipes)
	}

	st := newStyles(w)
	if len(recipes) == 0 {
		_, err := fmt.Fprintln(w, st.muted.Render("No recipes"))
		return err
	}

	width := 0
	for _, r := range recipes {
		width = max(width, len(strconv.FormatInt(r.ID, 10)))
	}
	for _, r := range recipes {
		id := fmt.Sprintf("%*d", width, r.ID)
		line := st.id.Render(id) + "  " + st.name.Render(r.Name)
		if r.Category != "" {
			line += "  " + st.category.Render("["+r.Category+"]")
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// labelWidth aligns field values in renderRecipe.
const labelWidth = len("Instructions:") + 1

// renderRecipe writes every field of one recipe.
func renderRecipe(w io.Writer, format string, r types.Recipe) error {
	if format != outputText {
		return writeStructured(w, format, r)
	}

	st := newStyles(w)
	rows := []struct{ label, value string }{
		{"Name:", r.Name},
		{"Category:", r.Category},
		{"Ingredients:", r.Ingredients},
		{"Instructions:", r.Instructions},
	}
	if _, err := fmt.Fprintln(w, st.id.Render(r.Address().String())); err != nil {
		return err
	}
	for _, row := range rows {
		line := st.label.Render(row.label)
		if row.value != "" {
			line += strings.Repeat(" ", labelWidth-len(row.label)) + row.value
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
