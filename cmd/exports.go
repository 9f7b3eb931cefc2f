package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/gbx/internal/formatter"
	"github.com/desertthunder/gbx/internal/shared"
	"github.com/urfave/cli/v3"
)

// ExportsList prints saved schedule exports, newest first.
func (r *Runner) ExportsList(ctx context.Context, cmd *cli.Command) error {
	if r.exports == nil {
		return fmt.Errorf("%w: exports store not initialized, run 'gbx setup' first", shared.ErrServiceUnavailable)
	}

	records, err := r.exports.List(cmd.String("provider"))
	if err != nil {
		return err
	}

	if len(records) == 0 {
		return r.writePlain("No saved exports.\n")
	}

	r.writePlain("%-36s  %-10s  %-7s  %s\n", "ID", "Provider", "Month", "Saved")
	for _, record := range records {
		r.writePlain(
			"%-36s  %-10s  %d-%02d  %s\n",
			record.ID,
			record.Export.ProviderID,
			record.Export.Year,
			record.Export.Month,
			record.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	return nil
}

// ExportsShow renders one saved export in the requested format.
func (r *Runner) ExportsShow(ctx context.Context, cmd *cli.Command) error {
	if r.exports == nil {
		return fmt.Errorf("%w: exports store not initialized, run 'gbx setup' first", shared.ErrServiceUnavailable)
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: export ID is required", shared.ErrMissingArgument)
	}

	record, err := r.exports.Get(id)
	if err != nil {
		return err
	}

	rendered, err := formatter.Render(record.Export, cmd.String("format"))
	if err != nil {
		return err
	}

	r.output.Write(rendered)
	return nil
}

// ExportsDelete removes a saved export.
func (r *Runner) ExportsDelete(ctx context.Context, cmd *cli.Command) error {
	if r.exports == nil {
		return fmt.Errorf("%w: exports store not initialized, run 'gbx setup' first", shared.ErrServiceUnavailable)
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: export ID is required", shared.ErrMissingArgument)
	}

	if err := r.exports.Delete(id); err != nil {
		return err
	}

	r.logger.Info("export deleted", "id", id)
	return r.writePlain("✓ Deleted export %s\n", id)
}
