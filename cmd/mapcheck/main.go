// Package main provides a CLI for checking CSV files against the schema
// registry without running the server.
// Usage: mapcheck departments
//        mapcheck tables --dept inventory
//        mapcheck check --dept inventory --table items --file items.csv
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"tabularium/internal/domain/departments"
	"tabularium/internal/domain/importer"
	"tabularium/internal/domain/schema"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	hub, err := departments.NewHub()
	if err != nil {
		fmt.Printf("Error composing schema hub: %v\n", err)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "departments":
		listDepartments(hub)
	case "tables":
		listTables(hub)
	case "check":
		checkFile(hub)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Tabularium Mapping Checker

Usage:
  mapcheck <command> [options]

Commands:
  departments  List registered departments
  tables       List the tables of a department
  check        Map a CSV header row and validate the data rows
  help         Show this help

Options for check:
  --dept <id>        Department ID (required)
  --table <id>       Table ID (required)
  --file <path>      CSV file to check (required)
  --threshold <f>    Fuzzy match threshold, 0..1 (default 0.8)

Examples:
  mapcheck departments
  mapcheck tables --dept inventory
  mapcheck check --dept inventory --table items --file items.csv
  mapcheck check --dept sales --table orders --file orders.csv --threshold 0.7`)
}

func listDepartments(hub *schema.Hub) {
	for _, dep := range hub.Departments() {
		fmt.Printf("%-12s %s / %s  (%d tables)\n",
			dep.DepartmentID, dep.DepartmentName, dep.LocalizedDepartmentName, len(dep.Tables()))
	}
}

func listTables(hub *schema.Hub) {
	dept := argValue("--dept")
	if dept == "" {
		fmt.Println("Error: --dept is required")
		os.Exit(1)
	}

	reg, err := hub.Registry(dept)
	if err != nil {
		fmt.Printf("Error: unknown department %q\n", dept)
		os.Exit(1)
	}

	for _, table := range reg.Tables() {
		kind := "owned"
		if table.IsLinked {
			kind = "linked:" + table.LinkedDepartmentID
		}
		fmt.Printf("%-18s %-18s %s / %s  (%d columns)\n",
			table.ID, kind, table.Name, table.LocalizedName, len(table.Columns))
	}
}

func checkFile(hub *schema.Hub) {
	dept := argValue("--dept")
	tableID := argValue("--table")
	path := argValue("--file")
	if dept == "" || tableID == "" || path == "" {
		fmt.Println("Error: --dept, --table and --file are required")
		fmt.Println("Usage: mapcheck check --dept <id> --table <id> --file <path>")
		os.Exit(1)
	}

	opts := schema.ResolverOptions{}
	if raw := argValue("--threshold"); raw != "" {
		threshold, err := strconv.ParseFloat(raw, 64)
		if err != nil || threshold <= 0 || threshold > 1 {
			fmt.Printf("Error: invalid --threshold %q\n", raw)
			os.Exit(1)
		}
		opts.FuzzyThreshold = threshold
	}

	table, err := hub.Table(dept, tableID)
	if err != nil {
		fmt.Printf("Error: department %q has no table %q\n", dept, tableID)
		os.Exit(1)
	}
	// Imports write to the owner's authoritative schema, not the projection.
	if table.IsLinked {
		resolved, err := hub.ResolveLinked(table)
		if err != nil {
			fmt.Printf("Error resolving linked table: %v\n", err)
			os.Exit(1)
		}
		table = resolved
	}

	headers, rows, err := readCSV(path)
	if err != nil {
		fmt.Printf("Error reading %s: %v\n", path, err)
		os.Exit(1)
	}

	plan, err := importer.BuildPlan(table, dept, headers, nil, opts)
	if err != nil {
		fmt.Printf("Error building mapping plan: %v\n", err)
		os.Exit(1)
	}

	printPlan(plan)

	report, err := importer.NewEngine(hub.Validator(), importer.EngineOptions{}).
		ValidateRows(context.Background(), plan, rows)
	if err != nil {
		fmt.Printf("Error validating rows: %v\n", err)
		os.Exit(1)
	}

	printReport(report)

	if !plan.Complete() || report.FailedRows > 0 {
		os.Exit(2)
	}
}

func printPlan(plan *importer.Plan) {
	fmt.Printf("Mapping plan for %s/%s:\n", plan.DepartmentID, plan.TableID)
	for _, a := range plan.Assignments {
		switch {
		case a.Ambiguous:
			fmt.Printf("  %-24s -> AMBIGUOUS (%s)\n",
				a.Header, strings.Join(a.AmbiguousColumns, ", "))
		case !a.Match.Matched():
			fmt.Printf("  %-24s -> unmatched\n", a.Header)
		case a.Overridden:
			fmt.Printf("  %-24s -> %-20s [override]\n", a.Header, a.Match.Column.ID)
		default:
			fmt.Printf("  %-24s -> %-20s [%s %.2f]\n",
				a.Header, a.Match.Column.ID, a.Match.Tier, a.Match.Score)
		}
	}
	if len(plan.MissingRequired) > 0 {
		fmt.Printf("  Missing required columns: %s\n", strings.Join(plan.MissingRequired, ", "))
	}
	fmt.Println()
}

func printReport(report *importer.Report) {
	fmt.Printf("Validated %d rows: %d ok, %d with issues\n",
		report.TotalRows, report.ValidRows, report.FailedRows)

	issues := report.Issues()
	if len(issues) == 0 {
		return
	}

	// CSV row numbers are 1-based with the header on line 1.
	for _, issue := range issues {
		fmt.Printf("  line %d, %s (%s): %s: %s\n",
			issue.Row+2, issue.ColumnID, issue.Header, issue.Failure.Code, issue.Failure.Message)
	}
}

func readCSV(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("file has no header row")
	}

	return records[0], records[1:], nil
}

func argValue(name string) string {
	for i := 2; i < len(os.Args)-1; i++ {
		if os.Args[i] == name {
			return os.Args[i+1]
		}
	}
	return ""
}
