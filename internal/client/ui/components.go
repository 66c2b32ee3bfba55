package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrijs2005/contractlens/internal/client/models"
	"github.com/dmitrijs2005/contractlens/internal/common"
)

const notFound = "Not found"

type AlertKind int

const (
	AlertError AlertKind = iota
	AlertSuccess
	AlertInfo
)

// Alert renders a one-line message. An empty message renders nothing.
func Alert(kind AlertKind, msg string) string {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return ""
	}

	switch kind {
	case AlertSuccess:
		return styles.Success.Render("✓ ") + msg
	case AlertInfo:
		return styles.Info.Render("i ") + msg
	default:
		return styles.Error.Render("✗ ") + msg
	}
}

// FormatDate renders t the way the dashboard shows upload dates.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.Local().Format("Jan 2, 2006")
}

func badge(fileType string) string {
	if fileType == "" {
		fileType = "file"
	}
	return styles.Badge.Render(strings.ToUpper(fileType))
}

func ContractCard(c models.Contract) string {
	header := styles.Title.Render(c.Filename) + "  " + badge(c.FileType)
	body := []string{
		header,
		styles.Muted.Render("Uploaded: " + FormatDate(c.UploadedAt.Time)),
		styles.Hint.Render(fmt.Sprintf("%s contracts show %d", common.AppName, c.ID)),
	}
	return styles.Card.Render(strings.Join(body, "\n"))
}

// EmptyDashboard is shown instead of the card list when there are no contracts.
func EmptyDashboard() string {
	return strings.Join([]string{
		styles.Heading.Render("No contracts yet"),
		styles.Muted.Render("Upload your first contract to get started with the analysis."),
		styles.Hint.Render(common.AppName + " contracts upload <file.pdf|file.docx>"),
	}, "\n")
}

// Dashboard renders the contract list.
func Dashboard(contracts []models.Contract) string {
	if len(contracts) == 0 {
		return EmptyDashboard()
	}

	cards := make([]string, 0, len(contracts))
	for _, c := range contracts {
		cards = append(cards, ContractCard(c))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

// ContractDetail renders the contract header and its extracted text.
func ContractDetail(c *models.Contract) string {
	var b strings.Builder

	b.WriteString(styles.Title.Render(c.Filename))
	b.WriteString("\n")
	b.WriteString(badge(c.FileType) + " " + styles.Muted.Render("Uploaded on "+FormatDate(c.UploadedAt.Time)))
	b.WriteString("\n\n")

	b.WriteString(styles.Heading.Render("Document Content"))
	b.WriteString("\n")
	content := strings.TrimSpace(c.Content)
	if content == "" {
		content = styles.Muted.Render("(no extracted text)")
	}
	b.WriteString(styles.Section.Render(styles.Content.Render(content)))
	b.WriteString("\n")
	b.WriteString(styles.Hint.Render(fmt.Sprintf("Run '%s contracts analyze %d' to extract key legal clauses from this document.", common.AppName, c.ID)))

	return b.String()
}

// AnalysisPanel renders the five extracted clauses in a fixed order.
func AnalysisPanel(a *models.Analysis) string {
	sections := []struct {
		title string
		text  string
	}{
		{"Termination Clause", a.TerminationClause},
		{"Confidentiality Clause", a.ConfidentialityClause},
		{"Payment Terms", a.PaymentTerms},
		{"Governing Law", a.GoverningLaw},
		{"Limitation of Liability", a.LimitationOfLiability},
	}

	parts := []string{styles.Title.Render("Analysis Results")}
	for _, s := range sections {
		text := strings.TrimSpace(s.text)
		if text == "" {
			text = styles.Muted.Render(notFound)
		}
		parts = append(parts, styles.Heading.Render(s.title)+"\n"+styles.Section.Render(text))
	}
	return strings.Join(parts, "\n\n")
}

// Navbar shows who is logged in.
func Navbar(snap models.Snapshot) string {
	who := "guest"
	if snap.Authenticated && snap.User != nil {
		who = snap.User.DisplayName()
	}
	return styles.Brand.Render("Contract Analyzer") + styles.Muted.Render(" | ") + styles.Username.Render(who)
}

// Prompt is the interactive shell prompt for snap.
func Prompt(snap models.Snapshot) string {
	if snap.Authenticated && snap.User != nil {
		return fmt.Sprintf("%s(%s)> ", common.AppName, snap.User.Email)
	}
	return common.AppName + "> "
}
