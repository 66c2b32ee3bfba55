package models

// Contract is a document record owned by the backend. The client only
// displays it and never mutates it.
type Contract struct {
	// ID is the backend identifier used in /contracts/{id} paths.
	ID int64 `json:"id"`

	// Filename is the original name of the uploaded file.
	Filename string `json:"filename"`

	// FileType is the backend's classification, e.g. "pdf" or "docx".
	FileType string `json:"file_type"`

	// UploadedAt is when the backend accepted the upload.
	UploadedAt Timestamp `json:"uploaded_at"`

	// Content is the extracted plain text; list responses may omit it.
	Content string `json:"content,omitempty"`
}

// Analysis holds the clauses the backend extracted from a contract.
// It is ephemeral and never persisted by the client.
type Analysis struct {
	TerminationClause     string `json:"termination_clause"`
	ConfidentialityClause string `json:"confidentiality_clause"`
	PaymentTerms          string `json:"payment_terms"`
	GoverningLaw          string `json:"governing_law"`
	LimitationOfLiability string `json:"limitation_of_liability"`
}

// AnalysisResult is the body of POST /contracts/{id}/analyze.
type AnalysisResult struct {
	Analysis Analysis `json:"analysis"`
}
