package render

import (
	"strings"

	"git.home.luguber.info/inful/optionbook/internal/module"
	"git.home.luguber.info/inful/optionbook/internal/options"
	"git.home.luguber.info/inful/optionbook/internal/tree"
)

// Options toggles optional parts of the options table.
type Options struct {
	ShowExamples  bool
	HideInvisible bool
}

// Document is one rendered file of the book source tree.
type Document struct {
	// Name is the file name below src/.
	Name    string
	Module  string
	Content []byte
}

// Render reads the module's header comment and renders its document.
func Render(m *module.Module, opts Options) (Document, error) {
	header, err := ReadHeader(m.Path, m.DocFile)
	if err != nil {
		return Document{}, err
	}
	return Document{
		Name:    m.DocumentName(),
		Module:  m.Path,
		Content: Markdown(m, header, opts),
	}, nil
}

// Markdown renders a module document from already-loaded parts.
func Markdown(m *module.Module, header string, opts Options) []byte {
	sections := []string{"# " + m.Name}
	if header != "" {
		sections = append(sections, header)
	}
	if m.HasOptions {
		if table := optionsTable(m.Options, opts); table != "" {
			sections = append(sections, table)
		}
	}
	return []byte(strings.Join(sections, "\n\n") + "\n")
}

func optionsTable(opts []options.Option, ro Options) string {
	var sb strings.Builder
	if ro.ShowExamples {
		sb.WriteString("| option | type | description | example |\n|---|---|---|---|\n")
	} else {
		sb.WriteString("| option | type | description |\n|---|---|---|\n")
	}
	rows := 0
	for _, o := range opts {
		if ro.HideInvisible && !o.Visible {
			continue
		}
		sb.WriteString("| " + code(o.Name) + " | " + cell(o.Type) + " | " + cell(o.Description) + " |")
		if ro.ShowExamples {
			example := ""
			if o.HasExample {
				example = code(flatten(o.Example))
			}
			sb.WriteString(" " + example + " |")
		}
		sb.WriteByte('\n')
		rows++
	}
	if rows == 0 {
		return ""
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// CategoryPage is the stub page a navigation category links to.
func CategoryPage(name string) Document {
	return Document{Name: tree.CategoryPageName(name), Content: []byte("# " + name + "\n")}
}

func cell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}

func code(s string) string {
	return "`" + cell(s) + "`"
}

// flatten joins a multi-line literal into one line.
func flatten(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return strings.Join(lines, " ")
}
