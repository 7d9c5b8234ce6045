package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"sqlite-crud/internal/config"
	"sqlite-crud/internal/errors"
	"sqlite-crud/internal/repository/sqlite"
	"sqlite-crud/internal/sheet"
)

const maxParallelReads = 4

func (r *RootCommand) newImportCommand() *cobra.Command {
	var (
		sheetName string
		replace   bool
		planPath  string
	)

	cmd := &cobra.Command{
		Use:   "import [TABLE FILE]",
		Short: "Append rows from an xlsx or csv file to a table",
		Long: `Append every row of a spreadsheet (.xlsx) or CSV file to a table.

The table is created from the file's header row when it does not exist.
With --replace the table is dropped and recreated first. With --plan a YAML
file lists several table/file pairs, which are loaded in order.`,
		Example: `  sqld import projects Example/projects.xlsx
  sqld import MEP Example/Sample_MEP_2401.xlsx --sheet Data --replace
  sqld import --plan day1.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var entries []config.ImportEntry
			switch {
			case planPath != "" && len(args) > 0:
				return errors.NewInvalidInputError("plan", planPath, "--plan cannot be combined with TABLE FILE")
			case planPath != "":
				plan, err := config.LoadPlan(planPath)
				if err != nil {
					return errors.NewImportError(planPath, err)
				}
				entries = plan.Imports
			case len(args) == 2:
				mode := config.ImportModeAppend
				if replace {
					mode = config.ImportModeReplace
				}
				entries = []config.ImportEntry{{Table: args[0], File: args[1], Sheet: sheetName, Mode: mode}}
			default:
				return errors.NewInvalidInputError("args", args, "expected TABLE FILE or --plan FILE")
			}

			return r.withRepository(cmd, func(ctx context.Context, repo *sqlite.SQLiteRepository) error {
				tables, err := r.readEntries(ctx, entries)
				if err != nil {
					return err
				}
				for i, entry := range entries {
					n, err := r.appendEntry(ctx, repo, entry, tables[i])
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Inserted %d records into %s.\n", n, entry.Table)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&sheetName, "sheet", "s", "", "Worksheet to read (default: SQLD_IMPORT_SHEET or the first sheet)")
	cmd.Flags().BoolVar(&replace, "replace", false, "Drop and recreate the table before loading")
	cmd.Flags().StringVar(&planPath, "plan", "", "YAML import plan")
	return cmd
}

// readEntries parses every source file concurrently. Results keep the order
// of entries; the first failure cancels the rest.
func (r *RootCommand) readEntries(ctx context.Context, entries []config.ImportEntry) ([]sheet.Table, error) {
	tables := make([]sheet.Table, len(entries))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelReads)
	for i, entry := range entries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			opts := sheet.ReadOptions{
				Sheet:            entry.Sheet,
				NormalizeColumns: r.config.Import.NormalizeColumns,
			}
			if opts.Sheet == "" {
				opts.Sheet = r.config.Import.DefaultSheet
			}

			data, err := sheet.ReadFile(entry.File, opts)
			if err != nil {
				return errors.NewImportError(entry.File, err)
			}
			tables[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tables, nil
}

// appendEntry writes one parsed file. Writes stay sequential on the single
// connection.
func (r *RootCommand) appendEntry(ctx context.Context, repo *sqlite.SQLiteRepository, entry config.ImportEntry, data sheet.Table) (int64, error) {
	mode, err := sqlite.ParseAppendMode(entry.Mode)
	if err != nil {
		return 0, err
	}

	r.logger.Debug("importing file", "file", entry.File, "table", entry.Table, "rows", data.Len(), "mode", entry.Mode)
	return repo.BulkAppend(ctx, entry.Table, data, sqlite.AppendOptions{Mode: mode})
}

func (r *RootCommand) newDumpCommand() *cobra.Command {
	var (
		afterID  string
		idColumn string
	)

	cmd := &cobra.Command{
		Use:   "dump TABLE",
		Short: "Print every row of a table",
		Long: `Print every row of a table. With --after-id only rows whose id column is
greater than the given value are printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table := args[0]
			filtered := cmd.Flags().Changed("after-id")

			return r.withRepository(cmd, func(ctx context.Context, repo *sqlite.SQLiteRepository) error {
				qctx, cancel := r.queryContext(ctx)
				defer cancel()

				var data sheet.Table
				var err error
				if filtered {
					data, err = repo.RowsAfterID(qctx, table, idColumn, sheet.ParseValue(afterID))
				} else {
					data, err = repo.ReadTable(qctx, table)
				}
				if err != nil {
					return err
				}

				header := make([]any, len(data.Columns))
				for i, c := range data.Columns {
					header[i] = c
				}
				renderRows(cmd.OutOrStdout(), table, header, data.Rows)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&afterID, "after-id", "", "Only rows whose id column is greater than this value")
	cmd.Flags().StringVar(&idColumn, "id-column", "ID", "Column compared by --after-id")
	return cmd
}
