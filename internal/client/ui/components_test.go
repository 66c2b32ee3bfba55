package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/contractlens/internal/client/models"
)

func sampleContract() models.Contract {
	return models.Contract{
		ID:         7,
		Filename:   "nda.pdf",
		FileType:   "pdf",
		UploadedAt: models.Timestamp{Time: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)},
		Content:    "The parties agree...",
	}
}

func TestAlert(t *testing.T) {
	assert.Empty(t, Alert(AlertError, "  "))
	assert.Contains(t, Alert(AlertError, "Failed to load your contracts. Please try again."), "Failed to load your contracts. Please try again.")
	assert.Contains(t, Alert(AlertSuccess, "Registration successful! You can now login."), "Registration successful!")
	assert.Contains(t, Alert(AlertInfo, "hello"), "hello")
}

func TestContractCard(t *testing.T) {
	out := ContractCard(sampleContract())

	assert.Contains(t, out, "nda.pdf")
	assert.Contains(t, out, "PDF")
	assert.Contains(t, out, "Uploaded: ")
	assert.Contains(t, out, "2024")
	assert.Contains(t, out, "contractlens contracts show 7")
}

func TestDashboard(t *testing.T) {
	assert.Equal(t, EmptyDashboard(), Dashboard(nil))
	assert.Contains(t, EmptyDashboard(), "No contracts yet")

	second := sampleContract()
	second.ID, second.Filename = 8, "lease.docx"
	out := Dashboard([]models.Contract{sampleContract(), second})
	assert.Contains(t, out, "nda.pdf")
	assert.Contains(t, out, "lease.docx")
	assert.Less(t, strings.Index(out, "nda.pdf"), strings.Index(out, "lease.docx"))
}

func TestContractDetail(t *testing.T) {
	c := sampleContract()
	out := ContractDetail(&c)
	assert.Contains(t, out, "Document Content")
	assert.Contains(t, out, "The parties agree...")
	assert.Contains(t, out, "contracts analyze 7")

	c.Content = ""
	assert.Contains(t, ContractDetail(&c), "(no extracted text)")
}

func TestAnalysisPanel_OrderAndMissingFields(t *testing.T) {
	out := AnalysisPanel(&models.Analysis{
		TerminationClause: "30 days written notice",
		GoverningLaw:      "Delaware",
	})

	titles := []string{"Termination Clause", "Confidentiality Clause", "Payment Terms", "Governing Law", "Limitation of Liability"}
	last := -1
	for _, title := range titles {
		i := strings.Index(out, title)
		assert.Greater(t, i, last, title)
		last = i
	}
	assert.Contains(t, out, "30 days written notice")
	assert.Contains(t, out, "Delaware")
	assert.Equal(t, 3, strings.Count(out, notFound))
}

func TestNavbarAndPrompt(t *testing.T) {
	guest := models.Snapshot{}
	assert.Contains(t, Navbar(guest), "guest")
	assert.Equal(t, "contractlens> ", Prompt(guest))

	alice := models.Snapshot{Authenticated: true, User: &models.User{ID: 1, Email: "a@b.com", FullName: "Alice"}}
	assert.Contains(t, Navbar(alice), "Alice")
	assert.Equal(t, "contractlens(a@b.com)> ", Prompt(alice))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "unknown", FormatDate(time.Time{}))
	assert.NotEqual(t, "unknown", FormatDate(time.Now()))
}
