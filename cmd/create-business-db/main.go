// create-business-db creates and seeds the SQLite business database used by
// the MCP exercises. Safe to run repeatedly; populated tables are left alone.
package main

import (
	"context"
	"flag"
	"os"
	"sort"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/strudel0209/ai-foundry-agents-practical/pkg/config"
	"github.com/strudel0209/ai-foundry-agents-practical/pkg/console"
	"github.com/strudel0209/ai-foundry-agents-practical/pkg/mcpserver"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Get()

	dbPath := flag.String("db", cfg.MCPDatabasePath, "SQLite database path")
	flag.Parse()

	console.Panel("🏗️ Business Database Setup", "Seeds sample data for the MCP SQL tools.")

	counts, err := mcpserver.Seed(context.Background(), *dbPath)
	if err != nil {
		console.Errorf("seeding failed: %v", err)
		os.Exit(1)
	}

	tables := make([]string, 0, len(counts))
	for table := range counts {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	rows := make([][]string, 0, len(tables))
	total := 0
	for _, table := range tables {
		rows = append(rows, []string{table, strconv.Itoa(counts[table])})
		total += counts[table]
	}
	console.Table([]string{"Table", "Rows inserted"}, rows)

	if total == 0 {
		console.Infof("database already populated at %s", *dbPath)
	} else {
		console.Successf("inserted %d rows into %s", total, *dbPath)
	}
}
