package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/suyashkumar/dicom"
	dicomtag "github.com/suyashkumar/dicom/pkg/tag"
)

func newPrintTagsCmd(root *rootOptions) *cobra.Command {
	var (
		hideCode  bool
		hideDesc  bool
		hideValue bool
		topLevel  bool
		flat      bool
	)

	cmd := &cobra.Command{
		Use:   "print-tags FILE",
		Short: "Pretty-print every tag in a DICOM file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := dicom.ParseFile(args[0], nil,
				dicom.SkipProcessingPixelDataValue())
			if err != nil {
				return err
			}

			p := tagPrinter{
				hideCode:  hideCode,
				hideDesc:  hideDesc,
				hideValue: hideValue,
				topLevel:  topLevel,
				flat:      flat,
				useColor:  !root.noColor,
			}
			fmt.Fprint(cmd.OutOrStdout(), p.dataset(ds.Elements, 0))
			return nil
		},
	}

	cmd.Flags().BoolVar(&hideCode, "hide-code", false,
		"omit hexadecimal tag codes")
	cmd.Flags().BoolVar(&hideDesc, "hide-desc", false,
		"omit tag descriptions")
	cmd.Flags().BoolVar(&hideValue, "hide-value", false,
		"omit tag values")
	cmd.Flags().BoolVar(&topLevel, "top-level", false,
		"only print top-level tags")
	cmd.Flags().BoolVar(&flat, "flat", false,
		"disable indentation of nested sequences")
	return cmd
}

var codeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))

type tagPrinter struct {
	hideCode  bool
	hideDesc  bool
	hideValue bool
	topLevel  bool
	flat      bool
	useColor  bool
}

func (p tagPrinter) dataset(elems []*dicom.Element, indent int) string {
	var b strings.Builder
	prefix := strings.Repeat("   ", indent)
	if p.flat {
		prefix = ""
	}

	for _, e := range elems {
		if items, ok := e.Value.GetValue().([]*dicom.SequenceItemValue); ok {
			b.WriteString(prefix + p.sequence(e, len(items)) + "\n")
			if p.topLevel {
				continue
			}
			for _, item := range items {
				if sub, ok := item.GetValue().([]*dicom.Element); ok {
					b.WriteString(p.dataset(sub, indent+1))
				}
			}
			continue
		}
		b.WriteString(prefix + p.element(e) + "\n")
	}
	return b.String()
}

func (p tagPrinter) element(e *dicom.Element) string {
	parts := make([]string, 0, 3)
	if !p.hideCode {
		parts = append(parts, p.code(e.Tag))
	}
	if !p.hideDesc {
		parts = append(parts, fmt.Sprintf("%-32s", describe(e.Tag)))
	}
	if !p.hideValue {
		parts = append(parts, e.Value.String())
	}
	return strings.Join(parts, " ")
}

func (p tagPrinter) sequence(e *dicom.Element, items int) string {
	parts := make([]string, 0, 3)
	if !p.hideCode {
		parts = append(parts, p.code(e.Tag))
	}
	if !p.hideDesc {
		parts = append(parts, fmt.Sprintf("%-32s", describe(e.Tag)))
	}
	if !p.hideValue {
		parts = append(parts, fmt.Sprintf("%d item(s)", items))
	}
	return strings.Join(parts, " ")
}

func (p tagPrinter) code(t dicomtag.Tag) string {
	s := t.String()
	if p.useColor {
		return codeStyle.Render(s)
	}
	return s
}

func describe(t dicomtag.Tag) string {
	info, err := dicomtag.Find(t)
	if err != nil {
		return "Unknown"
	}
	return info.Name
}
