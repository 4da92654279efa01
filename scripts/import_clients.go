// +build ignore

package main

import (
	"database/sql"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// clientRow is one parsed CSV line.
type clientRow struct {
	Name         string
	Industry     string
	Country      string
	ContactName  string
	ContactEmail string
}

// Expected CSV header: name,industry,country,contact_name,contact_email
// Only name is required. Rows whose name already exists in the tenant
// are skipped.

func main() {
	dbPath := flag.String("db", "tpflow.db", "Path to the tpflow database")
	tenantID := flag.String("tenant", "", "Tenant ID to import clients into")
	dryRun := flag.Bool("dry-run", false, "Preview import without executing")
	flag.Parse()

	if *tenantID == "" || flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: go run scripts/import_clients.go -tenant TENANT-ID [-db path] [-dry-run] clients.csv")
		os.Exit(1)
	}

	rows, err := readCSV(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading CSV: %v\n", err)
		os.Exit(1)
	}
	if len(rows) == 0 {
		fmt.Println("No client rows found in CSV")
		return
	}

	db, err := sql.Open("sqlite3", *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	var tenantExists int
	err = db.QueryRow("SELECT COUNT(*) FROM tenants WHERE id = ?", *tenantID).Scan(&tenantExists)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error checking tenant: %v\n", err)
		os.Exit(1)
	}
	if tenantExists == 0 {
		fmt.Fprintf(os.Stderr, "Tenant %s not found\n", *tenantID)
		os.Exit(1)
	}

	fmt.Printf("Found %d client row(s) to import:\n\n", len(rows))
	for _, row := range rows {
		fmt.Printf("  %s (%s, %s)\n", row.Name, orDash(row.Industry), orDash(row.Country))
	}
	fmt.Println()

	if *dryRun {
		fmt.Println("=== DRY RUN - No changes made ===")
		return
	}

	fmt.Println("=== Executing import ===")
	fmt.Println()

	imported := 0
	skipped := 0
	for _, row := range rows {
		created, err := importClient(db, *tenantID, row)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error importing %q: %v\n", row.Name, err)
			continue
		}
		if !created {
			fmt.Printf("- Skipped %q (already exists)\n", row.Name)
			skipped++
			continue
		}
		fmt.Printf("✓ Imported %q\n", row.Name)
		imported++
	}

	fmt.Printf("\n=== Import complete: %d imported, %d skipped ===\n", imported, skipped)
}

func readCSV(path string) ([]clientRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := col["name"]; !ok {
		return nil, fmt.Errorf("CSV header must contain a name column")
	}

	field := func(record []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var rows []clientRow
	line := 1
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		row := clientRow{
			Name:         field(record, "name"),
			Industry:     field(record, "industry"),
			Country:      field(record, "country"),
			ContactName:  field(record, "contact_name"),
			ContactEmail: field(record, "contact_email"),
		}
		if row.Name == "" {
			return nil, fmt.Errorf("line %d: name is required", line)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func importClient(db *sql.DB, tenantID string, row clientRow) (bool, error) {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM clients WHERE tenant_id = ? AND name = ?", tenantID, row.Name).Scan(&count)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	_, err = db.Exec(`
		INSERT INTO clients (id, tenant_id, name, industry, country, contact_name, contact_email, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, 'active')
	`, uuid.NewString(), tenantID, row.Name, nullable(row.Industry), nullable(row.Country),
		nullable(row.ContactName), nullable(row.ContactEmail))
	return err == nil, err
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
