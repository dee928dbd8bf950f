package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/AsanSh/zakup.one/internal/database"
	"github.com/AsanSh/zakup.one/internal/models"
	"github.com/AsanSh/zakup.one/internal/parser"
)

// ErrAlreadyProcessing is returned when a price list is being processed
var ErrAlreadyProcessing = errors.New("price list is already being processed")

// ProcessorService runs uploaded price lists through the parser and imports
// the results into the catalog
type ProcessorService struct {
	db       *database.DB
	storage  *StorageService
	importer *ImporterService
	parser   *parser.PriceListParser

	mu       sync.Mutex
	inFlight map[int]bool
}

// NewProcessorService creates a new processor service
func NewProcessorService(db *database.DB, storage *StorageService) *ProcessorService {
	return &ProcessorService{
		db:       db,
		storage:  storage,
		importer: NewImporterService(db),
		parser:   parser.NewPriceListParser(nil),
		inFlight: make(map[int]bool),
	}
}

// ProcessAsync starts processing a price list in the background. It returns
// ErrAlreadyProcessing if the same price list is currently in flight.
func (s *ProcessorService) ProcessAsync(priceListID int) error {
	s.mu.Lock()
	if s.inFlight[priceListID] {
		s.mu.Unlock()
		return ErrAlreadyProcessing
	}
	s.inFlight[priceListID] = true
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.inFlight, priceListID)
			s.mu.Unlock()
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		if err := s.process(ctx, priceListID); err != nil {
			log.Printf("Price list %d processing failed: %v", priceListID, err)
		}
	}()

	return nil
}

// process downloads the stored file, parses it and imports the products.
// Any failure marks the price list as failed with the error recorded in its
// processing log.
func (s *ProcessorService) process(ctx context.Context, priceListID int) error {
	pl, err := s.db.GetPriceListByID(ctx, priceListID)
	if err != nil {
		return err
	}

	supplier, err := s.db.GetSupplierByID(ctx, pl.SupplierID)
	if err != nil {
		return s.fail(ctx, priceListID, fmt.Errorf("failed to load supplier: %w", err))
	}

	if err := s.db.SetPriceListStatus(ctx, priceListID, models.PriceListProcessing); err != nil {
		return err
	}

	path, err := s.storage.DownloadToTempFile(ctx, pl.StorageKey)
	if err != nil {
		return s.fail(ctx, priceListID, err)
	}
	defer os.Remove(path)

	result, err := s.parser.Parse(path, "")
	if err != nil {
		return s.fail(ctx, priceListID, err)
	}

	summary, err := s.importer.Import(ctx, supplier, priceListID, result)
	if err != nil {
		return s.fail(ctx, priceListID, err)
	}

	logLine := fmt.Sprintf("Imported %d products (%d new, %d updated) in %d categories",
		result.TotalProducts, summary.Created, summary.Updated, summary.Categories)

	if err := s.db.MarkPriceListProcessed(ctx, priceListID, result.TotalProducts, logLine); err != nil {
		return err
	}

	log.Printf("Price list %d processed: %s", priceListID, logLine)
	return nil
}

// fail records the error on the price list and returns it
func (s *ProcessorService) fail(ctx context.Context, priceListID int, err error) error {
	if markErr := s.db.MarkPriceListFailed(ctx, priceListID, err.Error()); markErr != nil {
		log.Printf("Failed to mark price list %d as failed: %v", priceListID, markErr)
	}
	return err
}
