package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/contractlens/internal/client/client"
	"github.com/dmitrijs2005/contractlens/internal/client/models"
	"github.com/dmitrijs2005/contractlens/internal/filex"
	"github.com/dmitrijs2005/contractlens/internal/logging"
)

// SupportedExtensions lists the upload formats the backend can parse.
var SupportedExtensions = []string{".pdf", ".docx"}

type ContractService interface {
	List(ctx context.Context) ([]models.Contract, error)
	Get(ctx context.Context, id int64) (*models.Contract, error)
	Upload(ctx context.Context, path string) (*models.Contract, error)
	Analyze(ctx context.Context, id int64) (*models.Analysis, error)
}

type contractService struct {
	client client.Client
	log    logging.Logger
}

func NewContractService(c client.Client, log logging.Logger) ContractService {
	return &contractService{client: c, log: log}
}

func (s *contractService) List(ctx context.Context) ([]models.Contract, error) {
	return s.client.ListContracts(ctx)
}

func (s *contractService) Get(ctx context.Context, id int64) (*models.Contract, error) {
	return s.client.GetContract(ctx, id)
}

func (s *contractService) Analyze(ctx context.Context, id int64) (*models.Analysis, error) {
	return s.client.AnalyzeContract(ctx, id)
}

func supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range SupportedExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// ValidateUpload checks path without touching the network.
func ValidateUpload(path string) error {
	if strings.TrimSpace(path) == "" {
		return invalid(MsgNoFile)
	}
	if !supported(path) {
		return invalid(MsgUnsupportedFile)
	}
	if _, err := filex.RegularFile(path); err != nil {
		return &ValidationError{Message: fmt.Sprintf("Cannot read %s: %v", filepath.Base(path), err)}
	}
	return nil
}

func (s *contractService) Upload(ctx context.Context, path string) (*models.Contract, error) {
	if err := ValidateUpload(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	contract, err := s.client.UploadContract(ctx, filepath.Base(path), f)
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "contract uploaded", "id", contract.ID, "filename", contract.Filename)
	return contract, nil
}
