package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/AsanSh/zakup.one/internal/config"
	"github.com/AsanSh/zakup.one/internal/database"
	"github.com/AsanSh/zakup.one/internal/models"
	"github.com/AsanSh/zakup.one/internal/parser"
	"github.com/AsanSh/zakup.one/internal/services"
)

// sampleSuppliers are created when no price list file is given
var sampleSuppliers = []models.CreateSupplierRequest{
	{Name: "СтройМаркет", InternalCode: "SM-001", MarkupSom: 50},
	{Name: "Евразия Трейд", InternalCode: "ET-002", MarkupSom: 100},
	{Name: "ТехноСнаб", InternalCode: "TS-003", MarkupSom: 0},
}

// sampleProducts are attached to the first sample supplier
var sampleProducts = []struct {
	Name     string
	Category string
	Unit     string
	Price    float64
}{
	{"Кирпич красный полнотелый", "Кирпичи", "шт", 12.50},
	{"Кирпич белый силикатный", "Кирпичи", "шт", 14},
	{"Цемент М400 50кг", "Растворы", "шт", 420},
	{"Песок строительный", "Растворы", "т", 900},
	{"Доска обрезная 25х100", "Пиломатериалы", "м³", 7500},
	{"Плитка тротуарная", "Благоустройство", "м²", 450},
}

func main() {
	// Command line flags
	dryRun := flag.Bool("dry-run", false, "Preview changes without writing to database")
	file := flag.String("file", "", "Parse a local price list file and import its products")
	sheet := flag.String("sheet", "", "Sheet name to parse (defaults to the first sheet)")
	supplierCode := flag.String("supplier", "", "Internal code of the supplier to import into")
	flag.Parse()

	// Load .env
	godotenv.Load()

	// Load config
	cfg := config.Load()

	if *file != "" {
		runImport(cfg, *file, *sheet, *supplierCode, *dryRun)
		return
	}

	if *dryRun {
		log.Println("DRY RUN - No changes will be made")
		for _, s := range sampleSuppliers {
			fmt.Printf("  %s (%s), markup %.2f som\n", s.Name, s.InternalCode, s.MarkupSom)
		}
		for _, p := range sampleProducts {
			fmt.Printf("  [%s] %s | %.2f %s\n", p.Category, p.Name, p.Price, p.Unit)
		}
		return
	}

	db := connect(cfg)
	defer db.Close()

	ctx := context.Background()
	created := 0
	var first *models.Supplier
	for i := range sampleSuppliers {
		req := sampleSuppliers[i]
		supplier, err := db.CreateSupplier(ctx, &req)
		if err != nil {
			if errors.Is(err, database.ErrSupplierCodeExists) {
				log.Printf("Supplier %s already exists, skipping", req.InternalCode)
				if first == nil {
					first, err = db.GetSupplierByInternalCode(ctx, req.InternalCode)
					if err != nil {
						log.Fatalf("Failed to load supplier %s: %v", req.InternalCode, err)
					}
				}
				continue
			}
			log.Fatalf("Failed to create supplier %s: %v", req.InternalCode, err)
		}
		if first == nil {
			first = supplier
		}
		created++
	}

	pl, err := db.CreatePriceList(ctx, first.ID, "sample-data", "seeder/sample-data")
	if err != nil {
		log.Fatalf("Failed to create price list record: %v", err)
	}

	products := 0
	for _, sp := range sampleProducts {
		cat, err := db.GetOrCreateCategory(ctx, sp.Category)
		if err != nil {
			log.Fatalf("Failed to create category %s: %v", sp.Category, err)
		}
		_, _, err = db.UpsertParsedProduct(ctx, first.ID, pl.ID, &cat.ID,
			sp.Name, parser.GenerateArticle(sp.Name), sp.Unit,
			sp.Price, sp.Price+first.MarkupSom)
		if err != nil {
			log.Fatalf("Failed to seed product %s: %v", sp.Name, err)
		}
		products++
	}

	logLine := fmt.Sprintf("Seeded %d sample products", products)
	if err := db.MarkPriceListProcessed(ctx, pl.ID, products, logLine); err != nil {
		log.Printf("Warning: failed to mark sample price list processed: %v", err)
	}

	log.Printf("Seeding complete: %d supplier(s) created, %d product(s) seeded", created, products)
}

// runImport parses a local spreadsheet and imports the products for the
// given supplier. With -dry-run it only prints what was parsed.
func runImport(cfg *config.Config, path, sheet, supplierCode string, dryRun bool) {
	p := parser.NewPriceListParser(nil)
	result, err := p.Parse(path, sheet)
	if err != nil {
		log.Fatalf("Failed to parse %s: %v", path, err)
	}

	log.Printf("Parsed %d products in %d categories from %s",
		result.TotalProducts, len(result.Categories), path)

	if dryRun {
		log.Println("DRY RUN - No changes will be made")
		printPreview(result, 20)
		return
	}

	if supplierCode == "" {
		log.Fatal("-supplier is required when importing without -dry-run")
	}

	db := connect(cfg)
	defer db.Close()

	ctx := context.Background()
	supplier, err := db.GetSupplierByInternalCode(ctx, supplierCode)
	if err != nil {
		log.Fatalf("Failed to find supplier %s: %v", supplierCode, err)
	}

	pl, err := db.CreatePriceList(ctx, supplier.ID, path, "seeder/"+path)
	if err != nil {
		log.Fatalf("Failed to create price list record: %v", err)
	}

	importer := services.NewImporterService(db)
	summary, err := importer.Import(ctx, supplier, pl.ID, result)
	if err != nil {
		if failErr := db.MarkPriceListFailed(ctx, pl.ID, err.Error()); failErr != nil {
			log.Printf("Warning: failed to mark price list failed: %v", failErr)
		}
		log.Fatalf("Failed to import products: %v", err)
	}

	logLine := fmt.Sprintf("Imported %d products (%d new, %d updated) in %d categories",
		result.TotalProducts, summary.Created, summary.Updated, summary.Categories)
	if err := db.MarkPriceListProcessed(ctx, pl.ID, result.TotalProducts, logLine); err != nil {
		log.Printf("Warning: failed to mark price list processed: %v", err)
	}

	log.Println(logLine)
}

func connect(cfg *config.Config) *database.DB {
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

func printPreview(result *parser.ParseResult, limit int) {
	for i, p := range result.Products {
		if i >= limit {
			fmt.Printf("  ... and %d more\n", len(result.Products)-limit)
			break
		}
		category := p.Category
		if category == "" {
			category = "-"
		}
		fmt.Printf("  [%s] %s | %s | %.2f %s\n", p.Article, p.Name, category, p.Price, p.Unit)
	}
}
