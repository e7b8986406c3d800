package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/JonMunkholm/limpiador/internal/core"
	"github.com/JonMunkholm/limpiador/internal/export"
	"github.com/spf13/cobra"
)

type runFlags struct {
	fileA, fileB string
	colA, colB   string
	inA, inB     inputFlags
	digitsOnly   bool
	out          string
	csv          string
	preview      int
}

func newRunCommand() *cobra.Command {
	var f runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Filter A against B and print the duplicate summary",
		Example: `  # Remove from clientes.csv every phone listed in bajas.txt
  limpiador run --a clientes.csv --col-a telefono --b bajas.txt --col-b '#0'

  # Compare digits only and save both sheets
  limpiador run --a a.xlsx --col-a tel --b b.csv --col-b numero --digits-only --out resultado_filtrado.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFilter(cmd, &f)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&f.fileA, "a", "", "File A (rows to clean)")
	fs.StringVar(&f.fileB, "b", "", "File B (values to remove)")
	fs.StringVar(&f.colA, "col-a", "", "Column of A to compare (name or #index)")
	fs.StringVar(&f.colB, "col-b", "", "Column of B holding the values (name or #index)")
	f.inA.register(fs, "-a", "A")
	f.inB.register(fs, "-b", "B")
	fs.BoolVar(&f.digitsOnly, "digits-only", false, "Keep only digits when comparing")
	fs.StringVar(&f.out, "out", "", "Write the workbook (resultado + numeros_repetidos) to this path")
	fs.StringVar(&f.csv, "csv", "", "Write the kept rows as CSV to this path")
	fs.IntVar(&f.preview, "preview", 0, "Print the first N kept rows")

	return cmd
}

func runFilter(cmd *cobra.Command, f *runFlags) error {
	req := core.RunRequest{
		ColumnA:    core.ParseColumnRef(f.colA),
		ColumnB:    core.ParseColumnRef(f.colB),
		DigitsOnly: f.digitsOnly,
	}
	var err error
	if req.FileA, err = readInput(f.fileA); err != nil {
		return err
	}
	if req.FileB, err = readInput(f.fileB); err != nil {
		return err
	}
	if req.OptionsA, err = f.inA.options(); err != nil {
		return err
	}
	if req.OptionsB, err = f.inB.options(); err != nil {
		return err
	}

	service := core.NewService(core.ServiceConfig{MaxConcurrent: 1})
	res, err := service.Run(cmd.Context(), req)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	renderInput(w, "A", req.FileA.Name, res.TableA)
	renderInput(w, "B", req.FileB.Name, res.TableB)
	renderCounts(w, res.Counts)
	renderSummary(w, res.Summary)
	if f.preview > 0 {
		renderRecords(w, res.Filtered.Head(f.preview).Records())
	}

	if f.out != "" {
		if err := writeFile(f.out, func(w io.Writer) error {
			return export.WriteWorkbook(w, res.FilterResult)
		}); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(w, "Excel guardado en %s\n", f.out)
	}
	if f.csv != "" {
		if err := writeFile(f.csv, func(w io.Writer) error {
			return export.WriteCSV(w, res.Filtered)
		}); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(w, "CSV guardado en %s\n", f.csv)
	}
	return nil
}

// writeFile creates path and streams into it, removing it on failure.
func writeFile(path string, write func(io.Writer) error) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	if err := write(file); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	slog.Debug("export written", "path", path)
	return nil
}
