// Command datatable loads a table config and a CSV or Excel file,
// runs the row pipeline and prints one page of the result.
//
// Usage:
//
//	datatable -config orders.yaml -data orders.csv [-page 2] [-search text] [-group column] [-sort column] [-desc]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	fs "github.com/ungerik/go-fs"

	"github.com/domonda/go-datatable"
	"github.com/domonda/go-datatable/csvtable"
	"github.com/domonda/go-datatable/exceltable"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML table config file")
		dataPath   = flag.String("data", "", "CSV or Excel data file")
		sheet      = flag.String("sheet", "", "Excel sheet name, first sheet if empty")
		page       = flag.Int("page", 0, "page number, overrides config")
		pageSize   = flag.Int("pagesize", 0, "page size, overrides config")
		search     = flag.String("search", "", "search string, overrides config")
		group      = flag.String("group", "", "group column, overrides config")
		sortColumn = flag.String("sort", "", "sort column, overrides config")
		desc       = flag.Bool("desc", false, "sort descending")
		domains    = flag.Bool("domains", false, "print the filter domains of the columns")
		verbose    = flag.Bool("verbose", false, "log debug output")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if *dataPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()

	config := new(datatable.TableConfig)
	if *configPath != "" {
		var err error
		config, err = datatable.LoadConfig(ctx, fs.File(*configPath))
		if err != nil {
			logger.Error("can't load config", "file", *configPath, "error", err)
			os.Exit(1)
		}
	}

	rows, cols, err := readData(ctx, fs.File(*dataPath), *sheet, config.Columns)
	if err != nil {
		logger.Error("can't read data", "file", *dataPath, "error", err)
		os.Exit(1)
	}
	logger.Info("data loaded", "file", *dataPath, "rows", len(rows), "columns", len(cols))

	view := config.View
	if *page > 0 {
		view.Page = *page
	}
	if *pageSize > 0 {
		view.PageSize = *pageSize
	}
	if *search != "" {
		view.Search = *search
	}
	if *group != "" {
		view.GroupColumn = *group
	}
	if *sortColumn != "" {
		direction := datatable.Ascending
		if *desc {
			direction = datatable.Descending
		}
		view = view.WithSort(*sortColumn, direction)
	}

	schema := datatable.NewSchema(nil, cols...)
	pipeline := datatable.NewPipeline(schema, rows, datatable.WithLogger(logger))
	result, err := pipeline.Run(ctx, view)
	if err != nil {
		logger.Error("can't run pipeline", "error", err)
		os.Exit(1)
	}

	if *domains {
		printDomains(os.Stdout, cols, pipeline.Domains())
	}
	err = printPage(os.Stdout, config.Title, pipeline, result)
	if err != nil {
		logger.Error("can't print page", "error", err)
		os.Exit(1)
	}
}

func readData(ctx context.Context, file fs.File, sheet string, columns datatable.Columns) ([]datatable.Row, datatable.Columns, error) {
	switch strings.ToLower(file.Ext()) {
	case ".xlsx", ".xlsm", ".xltm", ".xltx":
		return exceltable.ReadDataset(ctx, file, sheet, columns, false)
	default:
		rows, cols, _, err := csvtable.ReadDataset(ctx, file, columns, nil)
		return rows, cols, err
	}
}

func printDomains(w io.Writer, cols datatable.Columns, domains map[string]datatable.Domain) {
	for _, col := range cols {
		domain, ok := domains[col.Key]
		switch {
		case !ok:
			continue
		case domain.Numeric && domain.Count == 0:
			fmt.Fprintf(w, "%s: []\n", col.DisplayTitle())
		case domain.Numeric:
			fmt.Fprintf(w, "%s: [%g, %g]\n", col.DisplayTitle(), domain.Min, domain.Max)
		default:
			fmt.Fprintf(w, "%s: %s\n", col.DisplayTitle(), strings.Join(domain.Values, ", "))
		}
	}
	fmt.Fprintln(w)
}

func printPage(w io.Writer, title string, pipeline *datatable.Pipeline, result *datatable.Result) error {
	schema := pipeline.Schema()
	if title != "" {
		fmt.Fprintln(w, title)
	}
	view := &datatable.PageView{Tit: title, Cols: schema.Columns, Page: result.Page}
	cells := datatable.FormattedRows(view, schema)
	grouped := datatable.IsGrouped(result.Config.GroupColumn)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "\t#\t%s\n", strings.Join(view.Columns(), "\t"))
	lastGroup := -1
	for row := range view.NumRows() {
		r, g, _ := view.Locate(row)
		if grouped && g != lastGroup {
			fmt.Fprintf(tw, "%s\n", result.Page.Groups[g].Title)
		}
		lastGroup = g
		mark := "[ ]"
		if pipeline.Selection().IsSelected(r.Index) {
			mark = "[x]"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\n", mark, r.Index, strings.Join(cells[row], "\t"))
	}
	err := tw.Flush()
	if err != nil {
		return err
	}
	numPages := datatable.NumPages(result.Config.PageSize, result.Filtered.Len())
	_, err = fmt.Fprintf(w, "page %d of %d, %d of %d rows\n",
		result.Config.Page,
		numPages,
		result.Filtered.Len(),
		len(pipeline.Rows()),
	)
	return err
}
