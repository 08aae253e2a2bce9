package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"books-api/internal/domains/book/model"
	"books-api/internal/domains/book/repository"
	"books-api/internal/domains/book/service"
	"books-api/pkg/container"
	pkgdb "books-api/pkg/database"
)

// csvRow là một dòng dữ liệu, Line tính cả header (dòng 1)
type csvRow struct {
	Line int
	Doc  model.Document
}

type rowError struct {
	Line     int
	Messages []string
}

type importReport struct {
	Imported int
	Skipped  []rowError
}

func newImportCmd() *cobra.Command {
	var atomic bool

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Bulk create books from a CSV file with a header row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			rows, err := readBookCSV(f)
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			db, err := container.OpenDatabase(ctx, cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			var report importReport
			if atomic {
				err = pkgdb.WithTransaction(ctx, db.Pool, func(tx pgx.Tx) error {
					svc := service.NewBookService(repository.NewPostgresRepository(tx, cfg.Database.QueryTimeout))
					report, err = importBooks(ctx, svc, rows, true)
					return err
				})
			} else {
				svc := service.NewBookService(repository.NewPostgresRepository(db.Pool, cfg.Database.QueryTimeout))
				report, err = importBooks(ctx, svc, rows, false)
			}
			if err != nil {
				return err
			}

			// import chỉ thêm book mới nên chỉ list cần bump, sau commit
			appCache, closeCache := container.OpenCache(ctx, cfg.Redis)
			defer closeCache()
			if err := repository.InvalidateBookList(ctx, appCache); err != nil {
				log.Warn().Err(err).Msg("failed to invalidate book cache")
			}

			printReport(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().BoolVar(&atomic, "atomic", false, "import in a single transaction, roll back on the first storage error")

	return cmd
}

// readBookCSV parse CSV thành Document. pages/year giữ dạng json.Number để
// validator quyết định có phải số nguyên hay không.
func readBookCSV(r io.Reader) ([]csvRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("csv is empty, expected a header row")
		}
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []csvRow
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		doc := make(model.Document, len(header))
		for i, name := range header {
			cell := strings.TrimSpace(record[i])
			if name == model.FieldPages || name == model.FieldYear {
				doc[name] = json.Number(cell)
				continue
			}
			doc[name] = cell
		}
		rows = append(rows, csvRow{Line: line, Doc: doc})
	}

	return rows, nil
}

// importBooks tạo từng book qua service (cùng validator với POST /books).
// Row sai schema luôn bị skip; lỗi storage bị skip, hoặc abort khi atomic.
func importBooks(ctx context.Context, svc service.ServiceInterface, rows []csvRow, atomic bool) (importReport, error) {
	var report importReport

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		_, err := svc.CreateBook(ctx, row.Doc)
		if err == nil {
			report.Imported++
			continue
		}

		var vErr *model.ValidationError
		if errors.As(err, &vErr) {
			report.Skipped = append(report.Skipped, rowError{Line: row.Line, Messages: vErr.Messages})
			continue
		}
		if atomic {
			return report, fmt.Errorf("line %d: %w", row.Line, err)
		}
		report.Skipped = append(report.Skipped, rowError{Line: row.Line, Messages: []string{err.Error()}})
	}

	return report, nil
}

func printReport(w io.Writer, report importReport) {
	for _, skipped := range report.Skipped {
		fmt.Fprintf(w, "line %d skipped: %s\n", skipped.Line, strings.Join(skipped.Messages, "; "))
	}
	fmt.Fprintf(w, "imported %d, skipped %d\n", report.Imported, len(report.Skipped))
}
