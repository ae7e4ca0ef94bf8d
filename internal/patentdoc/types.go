package patentdoc

// Record is the structured snapshot of one patent document produced by the
// extractor. It is built once and read-only afterwards; nothing downstream
// mutates it.
type Record struct {
	Identifier   string   `json:"identifier"`
	Number       string   `json:"number"`
	Title        string   `json:"title"`
	Applicant    string   `json:"applicant"`
	Inventors    []string `json:"inventors"`
	Claims       []string `json:"claims"`
	ClaimCount   int      `json:"claim_count"`
	IPCCodes     []string `json:"ipc_codes"`
	DrawingCount int      `json:"drawing_count"`

	// FullText is the raw extracted document text, kept for context
	// retrieval. It is not part of the scoring contract.
	FullText string `json:"-"`

	Extraction ExtractionInfo `json:"extraction"`
}

// ExtractionInfo records how the text behind a Record was obtained.
type ExtractionInfo struct {
	Method    string `json:"method,omitempty"`
	Truncated bool   `json:"truncated,omitempty"`
}
