package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/contractlens/internal/client/services"
	"github.com/dmitrijs2005/contractlens/internal/client/ui"
)

func parseContractID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, &services.ValidationError{Message: fmt.Sprintf("Invalid contract ID %q.", s)}
	}
	return id, nil
}

// List is the dashboard.
func (a *App) List(ctx context.Context) error {
	if err := a.guard(ctx); err != nil {
		return a.present(ctx, err, MsgListFailed)
	}

	contracts, err := a.contracts.List(ctx)
	if err != nil {
		return a.present(ctx, err, MsgListFailed)
	}

	a.println(ui.Dashboard(contracts))
	return nil
}

func (a *App) Show(ctx context.Context, rawID string) error {
	if err := a.guard(ctx); err != nil {
		return a.present(ctx, err, MsgShowFailed)
	}
	id, err := parseContractID(rawID)
	if err != nil {
		return a.present(ctx, err, MsgShowFailed)
	}

	contract, err := a.contracts.Get(ctx, id)
	if err != nil {
		return a.present(ctx, err, MsgShowFailed)
	}

	a.println(ui.ContractDetail(contract))
	return nil
}

// Upload sends the file and then shows the new contract.
func (a *App) Upload(ctx context.Context, path string) error {
	if err := a.guard(ctx); err != nil {
		return a.present(ctx, err, MsgUploadFailed)
	}

	contract, err := a.contracts.Upload(ctx, path)
	if err != nil {
		return a.present(ctx, err, MsgUploadFailed)
	}

	a.alert(ui.AlertSuccess, fmt.Sprintf("Uploaded %s (id %d)", contract.Filename, contract.ID))
	return a.Show(ctx, strconv.FormatInt(contract.ID, 10))
}

func (a *App) Analyze(ctx context.Context, rawID string) error {
	if err := a.guard(ctx); err != nil {
		return a.present(ctx, err, MsgAnalyzeFailed)
	}
	id, err := parseContractID(rawID)
	if err != nil {
		return a.present(ctx, err, MsgAnalyzeFailed)
	}

	a.alert(ui.AlertInfo, "Analyzing your contract...")
	analysis, err := a.contracts.Analyze(ctx, id)
	if err != nil {
		return a.present(ctx, err, MsgAnalyzeFailed)
	}

	a.println(ui.AnalysisPanel(analysis))
	return nil
}
