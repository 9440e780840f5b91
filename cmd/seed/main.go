package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func newDataDirFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "data-dir",
		Usage:   "Directory containing seed CSV files",
		Value:   "./data/seeds",
		EnvVars: []string{"SEED_DATA_DIR"},
	}
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Seed the database with catalog and inventory data",
		Commands: []*cli.Command{
			{
				Name:   "master",
				Usage:  "Seed master data (brands, skus)",
				Flags:  []cli.Flag{newDBURLFlag(), newDataDirFlag()},
				Action: withDB(seedMaster),
			},
			{
				Name:   "demand",
				Usage:  "Seed demand data (forecasts, order lines)",
				Flags:  []cli.Flag{newDBURLFlag(), newDataDirFlag()},
				Action: withDB(seedDemand),
			},
			{
				Name:   "inventory",
				Usage:  "Seed inventory items",
				Flags:  []cli.Flag{newDBURLFlag(), newDataDirFlag()},
				Action: withDB(seedInventory),
			},
			{
				Name:   "sales",
				Usage:  "Seed sales history",
				Flags:  []cli.Flag{newDBURLFlag(), newDataDirFlag()},
				Action: withDB(seedSales),
			},
			{
				Name:   "targets",
				Usage:  "Seed monthly revenue targets",
				Flags:  []cli.Flag{newDBURLFlag(), newDataDirFlag()},
				Action: withDB(seedTargets),
			},
			{
				Name:  "all",
				Usage: "Seed everything in dependency order",
				Flags: []cli.Flag{newDBURLFlag(), newDataDirFlag()},
				Action: withDB(func(ctx context.Context, tx *sql.Tx, dataDir string) error {
					steps := []func(context.Context, *sql.Tx, string) error{
						seedMaster, seedDemand, seedInventory, seedSales, seedTargets,
					}
					for _, step := range steps {
						if err := step(ctx, tx, dataDir); err != nil {
							return err
						}
					}
					return nil
				}),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// withDB opens the connection, wraps the step in one transaction and commits
// on success.
func withDB(fn func(ctx context.Context, tx *sql.Tx, dataDir string) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		db, err := sql.Open("pgx", c.String("db-url"))
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		if err := db.Ping(); err != nil {
			return fmt.Errorf("failed to ping database: %w", err)
		}

		ctx := context.Background()
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer tx.Rollback()

		log.Println("Starting database seeding...")
		if err := fn(ctx, tx, c.String("data-dir")); err != nil {
			return err
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}

		log.Println("Database seeding completed successfully!")
		return nil
	}
}

func seedMaster(ctx context.Context, tx *sql.Tx, dataDir string) error {
	if err := forEachRecord(filepath.Join(dataDir, "brands.csv"), "brands", func(rec map[string]string) error {
		_, err := tx.ExecContext(ctx, `
            INSERT INTO brands (id, name)
            VALUES ($1, $2)
            ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name
        `, rec["id"], rec["name"])
		return err
	}); err != nil {
		return fmt.Errorf("failed to seed brands: %w", err)
	}

	return forEachRecord(filepath.Join(dataDir, "skus.csv"), "skus", func(rec map[string]string) error {
		createdAt, err := parseNullableDate(rec["created_at"])
		if err != nil {
			return fmt.Errorf("invalid created_at for sku %s: %w", rec["id"], err)
		}

		_, err = tx.ExecContext(ctx, `
            INSERT INTO skus (id, brand_id, code, name, created_at)
            VALUES ($1, $2, $3, $4, $5)
            ON CONFLICT (id) DO UPDATE SET
                brand_id = EXCLUDED.brand_id,
                code = EXCLUDED.code,
                name = EXCLUDED.name,
                created_at = EXCLUDED.created_at
        `, rec["id"], rec["brand_id"], rec["code"], rec["name"], createdAt)
		return err
	})
}

func seedDemand(ctx context.Context, tx *sql.Tx, dataDir string) error {
	if err := forEachRecord(filepath.Join(dataDir, "demand_forecasts.csv"), "demand_forecasts", func(rec map[string]string) error {
		units, err := parseUnits(rec["units"])
		if err != nil {
			return fmt.Errorf("invalid units for forecast sku %s: %w", rec["sku_id"], err)
		}

		_, err = tx.ExecContext(ctx, `
            INSERT INTO demand_forecasts (sku_id, month, retailer, units)
            VALUES ($1, $2::date, $3, $4)
            ON CONFLICT (sku_id, month, retailer) DO UPDATE SET units = EXCLUDED.units
        `, rec["sku_id"], monthKey(rec["month"]), rec["retailer"], units)
		return err
	}); err != nil {
		return fmt.Errorf("failed to seed demand forecasts: %w", err)
	}

	return forEachRecord(filepath.Join(dataDir, "order_lines.csv"), "order_lines", func(rec map[string]string) error {
		units, err := parseUnits(rec["units"])
		if err != nil {
			return fmt.Errorf("invalid units for order line sku %s: %w", rec["sku_id"], err)
		}

		_, err = tx.ExecContext(ctx, `
            INSERT INTO order_lines (sku_id, month, units)
            VALUES ($1, $2::date, $3)
        `, rec["sku_id"], monthKey(rec["month"]), units)
		return err
	})
}

func seedInventory(ctx context.Context, tx *sql.Tx, dataDir string) error {
	return forEachRecord(filepath.Join(dataDir, "inventory_items.csv"), "inventory_items", func(rec map[string]string) error {
		receivedDate, err := parseNullableDate(rec["received_date"])
		if err != nil {
			return fmt.Errorf("invalid received_date for sku %s: %w", rec["sku_id"], err)
		}
		lastUpdated, err := parseNullableDate(rec["last_updated"])
		if err != nil {
			return fmt.Errorf("invalid last_updated for sku %s: %w", rec["sku_id"], err)
		}

		_, err = tx.ExecContext(ctx, `
            INSERT INTO inventory_items (
                sku_id, on_hand_units, in_transit_units, allocated_units,
                cogs, wholesale_price, received_date, last_updated
            )
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        `,
			rec["sku_id"],
			zeroIfEmpty(rec["on_hand_units"]),
			zeroIfEmpty(rec["in_transit_units"]),
			zeroIfEmpty(rec["allocated_units"]),
			zeroIfEmpty(rec["cogs"]),
			zeroIfEmpty(rec["wholesale_price"]),
			receivedDate,
			lastUpdated,
		)
		return err
	})
}

func seedSales(ctx context.Context, tx *sql.Tx, dataDir string) error {
	return forEachRecord(filepath.Join(dataDir, "sales.csv"), "sales", func(rec map[string]string) error {
		_, err := tx.ExecContext(ctx, `
            INSERT INTO sales (sku_id, sold_at, units, revenue)
            VALUES ($1, $2::timestamptz, $3, $4)
        `, rec["sku_id"], rec["sold_at"], zeroIfEmpty(rec["units"]), zeroIfEmpty(rec["revenue"]))
		return err
	})
}

func seedTargets(ctx context.Context, tx *sql.Tx, dataDir string) error {
	return forEachRecord(filepath.Join(dataDir, "revenue_targets.csv"), "revenue_targets", func(rec map[string]string) error {
		_, err := tx.ExecContext(ctx, `
            INSERT INTO revenue_targets (brand_id, month, target)
            VALUES ($1, $2::date, $3)
            ON CONFLICT (brand_id, month) DO UPDATE SET target = EXCLUDED.target
        `, rec["brand_id"], monthKey(rec["month"]), zeroIfEmpty(rec["target"]))
		return err
	})
}

// forEachRecord streams a CSV file, mapping each row by header name.
func forEachRecord(filePath, tableName string, fn func(rec map[string]string) error) error {
	log.Printf("Seeding %s from %s\n", tableName, filePath)

	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read CSV header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.ToLower(header[i]))
	}

	rowCount := 0
	for {
		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("failed to read CSV record: %w", err)
		}

		rec := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				rec[col] = strings.TrimSpace(record[i])
			}
		}

		if err := fn(rec); err != nil {
			return err
		}

		rowCount++
		if rowCount%5000 == 0 {
			log.Printf("Seeded %d %s rows...", rowCount, tableName)
		}
	}

	log.Printf("Successfully seeded %s (%d records)\n", tableName, rowCount)
	return nil
}

// monthKey normalizes YYYY-MM to a first-of-month date string. Full dates
// pass through unchanged.
func monthKey(value string) string {
	value = strings.TrimSpace(value)
	if len(value) == len("2006-01") {
		return value + "-01"
	}
	return value
}

func parseUnits(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	return strconv.Atoi(value)
}

func zeroIfEmpty(value string) string {
	if strings.TrimSpace(value) == "" {
		return "0"
	}
	return strings.TrimSpace(value)
}

func parseNullableDate(value string) (sql.NullTime, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return sql.NullTime{}, nil
	}

	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return sql.NullTime{Time: t, Valid: true}, nil
		}
	}

	return sql.NullTime{}, fmt.Errorf("unrecognized date %q", value)
}
