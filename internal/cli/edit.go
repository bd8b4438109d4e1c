package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/chrisuehlinger/vibedit/dom"
	"github.com/chrisuehlinger/vibedit/editor"
	"github.com/chrisuehlinger/vibedit/format"
	"github.com/chrisuehlinger/vibedit/internal/logging"
	"github.com/chrisuehlinger/vibedit/surround"
)

type operation string

const (
	opSurround   operation = "surround"
	opUnsurround operation = "unsurround"
	opReformat   operation = "reformat"
	opToggle     operation = "toggle"
)

// outputFilePermissions is the file mode for --output files.
const outputFilePermissions = 0o644

var operationHelp = map[operation]struct{ short, long string }{
	opSurround: {
		"Apply a format to a span",
		`Apply a format to the span, merging it with adjacent and nested
elements of the same format.`,
	},
	opUnsurround: {
		"Remove a format from a span",
		`Remove a format from the span. Format elements reaching outside the
span are split so the text outside keeps the format.`,
	},
	opReformat: {
		"Normalize a format within a span",
		`Rewrite the elements of a format within the span into their canonical
shape, merging adjacent ones, without adding or removing the format.`,
	},
	opToggle: {
		"Toggle a format on a span",
		`Remove the format when the span starts or ends inside it, and apply it
otherwise. With an empty span (--start equal to --end) and --insert, the
inserted text gets the toggled format.`,
	},
}

type editFlags struct {
	format string
	start  int
	end    int
	value  string
	insert string
}

func newEditCommand(a *app, op operation) *cobra.Command {
	flags := &editFlags{}
	help := operationHelp[op]

	cmd := &cobra.Command{
		Use:   string(op) + " [FILE]",
		Short: help.short,
		Long: help.long + `

The input is an HTML document or fragment, read from FILE or stdin. Offsets
count characters of the body text; without offsets the whole body is used.
The inner HTML of the body is written to stdout or --output.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runEdit(cmd, op, flags, args)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "name of the format (see 'vibedit formats')")
	cmd.Flags().IntVar(&flags.start, "start", 0, "character offset where the span starts")
	cmd.Flags().IntVar(&flags.end, "end", -1, "character offset where the span ends")
	cmd.Flags().StringVar(&flags.value, "value", "", "value for formats that take one, such as color")
	if op == opToggle {
		cmd.Flags().StringVar(&flags.insert, "insert", "", "text to type at the span after toggling")
	}
	_ = cmd.MarkFlagRequired("format")

	return cmd
}

func (a *app) runEdit(cmd *cobra.Command, op operation, flags *editFlags, args []string) error {
	source, inputName, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	body, err := parseBody(source)
	if err != nil {
		return fmt.Errorf("parse %s: %w", inputName, err)
	}

	f, err := a.lookupFormat(flags.format, flags.value)
	if err != nil {
		return err
	}

	end := flags.end
	if end < 0 {
		end = utf8.RuneCountInString(body.TextContent())
	}
	rng, err := spanRange(body, flags.start, flags.end)
	if err != nil {
		return fmt.Errorf("%w: %d-%d: %w", surround.ErrInvalidRange, flags.start, end, err)
	}

	a.logger.Debug("Editing",
		logging.FieldOperation, op,
		logging.FieldFormat, f.Name,
		logging.FieldInput, inputName,
		logging.FieldStart, flags.start,
		logging.FieldEnd, end,
		logging.FieldCollapsed, rng.Collapsed(),
	)

	switch op {
	case opSurround:
		_, err = surround.Surround(rng, body, f)
	case opUnsurround:
		_, err = surround.Unsurround(rng, body, f)
	case opReformat:
		_, err = surround.Reformat(rng, body, f)
	case opToggle:
		err = a.toggle(body, rng, f, flags.insert)
	}
	if err != nil {
		return fmt.Errorf("%s %s: %w", op, f.Name, err)
	}

	return a.writeOutput(cmd, body.InnerHTML())
}

// spanRange selects the body's contents when no offsets are given, and the
// characters [start, end) otherwise.
func spanRange(body *dom.Element, start, end int) (*dom.Range, error) {
	if start == 0 && end < 0 {
		rng := body.AsNode().OwnerDocument().CreateRange()
		if err := rng.SelectNodeContents(body.AsNode()); err != nil {
			return nil, err
		}
		return rng, nil
	}
	if end < 0 {
		end = utf8.RuneCountInString(body.TextContent())
	}
	return dom.RangeFromTextOffsets(body, start, end)
}

func (a *app) lookupFormat(name, value string) (*format.Format, error) {
	if value != "" {
		return a.registry.GetWithValue(name, value)
	}
	return a.registry.Get(name)
}

// toggle runs the format through an editing session so a collapsed span
// arms the format for the inserted text.
func (a *app) toggle(body *dom.Element, rng *dom.Range, f *format.Format, insert string) error {
	input := editor.NewInputHandler(body, a.logger)
	surrounder := editor.NewSurrounder(input)
	if _, err := surrounder.RegisterFormat(f.Name, f); err != nil {
		return err
	}

	input.Select(rng)
	if err := surrounder.Surround(f.Name); err != nil {
		return err
	}
	if insert == "" {
		return nil
	}
	return input.InsertText(insert)
}

func readInput(cmd *cobra.Command, args []string) (source, name string, err error) {
	if len(args) == 0 || args[0] == "-" {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return trimNewline(content), "<stdin>", nil
	}
	content, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("read input: %w", err)
	}
	return trimNewline(content), args[0], nil
}

func trimNewline(content []byte) string {
	return strings.TrimRight(string(content), "\r\n")
}

// parseBody parses a full document when the input has an html or body tag,
// and a body fragment otherwise.
func parseBody(source string) (*dom.Element, error) {
	lower := strings.ToLower(source)
	if strings.Contains(lower, "<html") || strings.Contains(lower, "<body") {
		doc, err := dom.ParseHTML(source)
		if err != nil {
			return nil, err
		}
		return doc.Body(), nil
	}
	_, body, err := dom.ParseFragment(source)
	return body, err
}

func (a *app) writeOutput(cmd *cobra.Command, result string) error {
	if a.output == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), result)
		return err
	}
	if err := os.WriteFile(a.output, []byte(result+"\n"), outputFilePermissions); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	a.logger.Debug("Wrote result", logging.FieldOutput, a.output)
	return nil
}
