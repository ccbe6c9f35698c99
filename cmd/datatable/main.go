// Package main runs an editable data table in the terminal and writes its
// export on the way out.
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.alis.build/alog"
	"golang.org/x/term"
	"golang.org/x/text/language"

	"datatable"
)

const containerID = "datatable"

var (
	rows         int
	cols         int
	rowLabel     string
	colLabel     string
	editableRows bool
	editableCols bool
	locale       string
	fields       []string
	outputPath   string
	format       string
	themeName    string
	debug        bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "datatable",
		Short: "Edit a grid of typed fields and export it",
		Long: `datatable opens an editable grid in the terminal. Every cell holds the
same set of fields; rows and columns can be added and removed at the
bottom and right. On a non-interactive terminal the initial grid is
exported straight away.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         run,
	}

	rootCmd.Flags().IntVar(&rows, "rows", datatable.DefaultNumRows, "Initial number of data rows")
	rootCmd.Flags().IntVar(&cols, "cols", datatable.DefaultNumColumns, "Initial number of data columns")
	rootCmd.Flags().StringVar(&rowLabel, "row-label", datatable.DefaultRowLabel, "Singular noun for rows")
	rootCmd.Flags().StringVar(&colLabel, "col-label", datatable.DefaultColumnLabel, "Singular noun for columns")
	rootCmd.Flags().BoolVar(&editableRows, "editable-rows", true, "Make row headers editable")
	rootCmd.Flags().BoolVar(&editableCols, "editable-cols", false, "Make column headers editable")
	rootCmd.Flags().StringVar(&locale, "locale", "en", "BCP 47 locale for number entry")
	rootCmd.Flags().StringArrayVar(&fields, "field", nil, `Field as name:kind[:opt|opt...], kind is number, boolean or enum (repeatable)`)
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.Flags().StringVar(&format, "format", "json", "Export format: json, xlsx, text")
	rootCmd.Flags().StringVar(&themeName, "theme", "dark", "Color theme: dark, light, mono")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "Log debug output to datatable-debug.log")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	switch format {
	case "json", "xlsx", "text":
	default:
		return fmt.Errorf("invalid format: %s (must be json, xlsx, or text)", format)
	}

	opts, err := options()
	if err != nil {
		return err
	}

	page := datatable.NewPage()
	page.AddContainer(containerID)
	reg := datatable.NewRegistry(page)

	interactive := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))

	// the UI owns the terminal, so logs go to a file or nowhere
	if debug {
		alog.SetLevel(alog.LevelDebug)
		if interactive {
			f, err := tea.LogToFile("datatable-debug.log", "")
			if err != nil {
				return fmt.Errorf("open debug log: %w", err)
			}
			defer f.Close()
		}
	} else {
		alog.SetLevel(alog.LevelWarning)
		if interactive {
			log.SetOutput(io.Discard)
		}
	}

	if _, err := reg.Create(opts); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	if interactive {
		final, err := tea.NewProgram(datatable.NewModel(reg, containerID, datatable.ThemeByName(themeName))).Run()
		if err != nil {
			return fmt.Errorf("run: %w", err)
		}
		if m, ok := final.(datatable.Model); !ok || !m.Exported() {
			alog.Infof(ctx, "quit without export")
			return nil
		}
	}

	t, err := reg.Get(containerID)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	switch format {
	case "json":
		s, err := t.ToJSON()
		if err != nil {
			return err
		}
		buf.WriteString(s)
		buf.WriteByte('\n')
	case "xlsx":
		if outputPath == "" {
			return fmt.Errorf("xlsx export needs --output")
		}
		err = t.WriteXLSX(&buf)
	case "text":
		err = t.WriteText(&buf)
	}
	if err != nil {
		return fmt.Errorf("export %s: %w", format, err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		alog.Infof(ctx, "wrote %s export to %s", format, outputPath)
		return nil
	}
	_, err = os.Stdout.Write(buf.Bytes())
	return err
}

// options turns the flags into table options.
func options() (datatable.Options, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return datatable.Options{}, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	opts := datatable.Options{
		ContainerID:          containerID,
		NumRows:              datatable.Int(rows),
		NumColumns:           datatable.Int(cols),
		RowLabel:             rowLabel,
		ColumnLabel:          colLabel,
		RowHeaderEditable:    datatable.Bool(editableRows),
		ColumnHeaderEditable: datatable.Bool(editableCols),
		Locale:               tag,
	}
	for _, arg := range fields {
		name, ft, err := parseField(arg)
		if err != nil {
			return datatable.Options{}, err
		}
		opts.FieldNames = append(opts.FieldNames, name)
		opts.FieldTypes = append(opts.FieldTypes, ft)
	}
	return opts, nil
}

// parseField reads "name:kind[:opt|opt...]".
func parseField(s string) (string, datatable.FieldType, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) < 2 || parts[0] == "" {
		return "", datatable.FieldType{}, fmt.Errorf("invalid field %q (want name:kind[:opt|opt...])", s)
	}
	kind, err := datatable.ParseKind(parts[1])
	if err != nil {
		return "", datatable.FieldType{}, fmt.Errorf("field %q: %w", parts[0], err)
	}
	ft := datatable.FieldType{Kind: kind}
	if len(parts) == 3 {
		ft.Options = strings.Split(parts[2], "|")
	}
	return parts[0], ft, nil
}
