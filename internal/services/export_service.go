package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/tuanvy6922/caketeaadmin/internal/adapters/storage"
	"github.com/tuanvy6922/caketeaadmin/internal/export"
)

// exportPrefix is the storage folder holding generated workbooks
const exportPrefix = "exports/"

// exportService implements the ExportService interface
type exportService struct {
	orders  OrderService
	storage storage.FileStorage
	logger  *logrus.Logger
	clock   clock
}

// NewExportService creates a new export service instance
func NewExportService(orders OrderService, fs storage.FileStorage, config *ServiceConfig) ExportService {
	config = config.withDefaults()
	return &exportService{
		orders:  orders,
		storage: fs,
		logger:  config.Logger,
		clock:   config.clock(),
	}
}

// ExportOrders writes the orders matching the criteria to a new workbook
func (s *exportService) ExportOrders(ctx context.Context, req *ExportRequest) (*ExportResult, error) {
	if req == nil {
		req = &ExportRequest{}
	}

	orders, summary, err := s.orders.FilterOrders(ctx, req.Criteria)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	data, err := export.Workbook(orders, summary, s.clock.loc)
	if err != nil {
		return nil, fmt.Errorf("failed to build workbook: %w", err)
	}

	name := export.FileName(now)
	opts := &storage.StoreOptions{
		ContentType: export.ContentType,
		Metadata: map[string]string{
			"orders":       strconv.Itoa(len(orders)),
			"generated_by": req.Actor,
		},
		Overwrite: true,
	}
	if err := s.storage.Store(ctx, exportPrefix+name, data, opts); err != nil {
		return nil, fmt.Errorf("failed to store export: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"file":   name,
		"orders": len(orders),
		"actor":  req.Actor,
	}).Info("Orders exported")

	return &ExportResult{
		Name:        name,
		Size:        int64(len(data)),
		OrderCount:  len(orders),
		Revenue:     summary,
		GeneratedAt: now,
	}, nil
}

// ListExports returns stored workbooks, newest first, keyed by file name
func (s *exportService) ListExports(ctx context.Context) ([]storage.FileMetadata, error) {
	files, err := s.storage.List(ctx, &storage.ListOptions{Prefix: exportPrefix})
	if err != nil {
		return nil, fmt.Errorf("failed to list exports: %w", err)
	}
	for i := range files {
		files[i].Key = strings.TrimPrefix(files[i].Key, exportPrefix)
	}
	return files, nil
}

// GetExport returns the content and metadata of a stored workbook
func (s *exportService) GetExport(ctx context.Context, name string) ([]byte, *storage.FileMetadata, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return nil, nil, fmt.Errorf("%w: invalid export name %q", ErrValidation, name)
	}

	key := exportPrefix + name
	meta, err := s.storage.GetMetadata(ctx, key)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get export: %w", err)
	}
	data, err := s.storage.Retrieve(ctx, key)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get export: %w", err)
	}

	meta.Key = name
	return data, meta, nil
}
