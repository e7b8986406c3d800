package cli

import (
	"strconv"

	"github.com/JonMunkholm/limpiador/internal/core"
	"github.com/spf13/cobra"
)

func newColumnsCommand() *cobra.Command {
	var (
		in      inputFlags
		preview int
	)

	cmd := &cobra.Command{
		Use:   "columns FILE",
		Short: "List the columns detected in a file",
		Long: `Load FILE the same way run does and list its columns with their
position, so they can be passed to --col-a/--col-b by name or as #index.

Column names are not made unique. Selecting a repeated name picks its
first occurrence; use #index to pick another one. Repeated names are
marked in the listing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			upload, err := readInput(args[0])
			if err != nil {
				return err
			}
			opts, err := in.options()
			if err != nil {
				return err
			}

			t, err := core.NewService(core.ServiceConfig{MaxConcurrent: 1}).Inspect(cmd.Context(), upload, opts)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			renderInput(w, "Archivo", upload.Name, t)
			seen := make(map[string]int, len(t.Columns))
			for _, name := range t.Columns {
				seen[name]++
			}
			cols := [][]string{{"#", "columna", ""}}
			for i, name := range t.Columns {
				note := ""
				if seen[name] > 1 {
					note = "repetida, usa #" + strconv.Itoa(i)
				}
				cols = append(cols, []string{"#" + strconv.Itoa(i), name, note})
			}
			renderRecords(w, cols)
			if preview > 0 {
				renderRecords(w, t.Head(preview).Records())
			}
			return nil
		},
	}

	in.register(cmd.Flags(), "", "the file")
	cmd.Flags().IntVar(&preview, "preview", 5, "Print the first N rows")
	return cmd
}
