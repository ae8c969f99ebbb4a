package dto

import "errors"

// Custom errors
var (
	ErrNoFile               = errors.New("statement PDF file is required")
	ErrFileTooLarge         = errors.New("statement PDF exceeds the maximum allowed size")
	ErrUnreadablePDF        = errors.New("statement PDF could not be read (wrong password or corrupted file)")
	ErrUnrecognizedFormat   = errors.New("unsupported PDF format: could not detect PhonePe or Google Pay markers")
	ErrNoTransactions       = errors.New("no transactions found in the statement")
	ErrNoRecentTransactions = errors.New("no transactions within the analysis window")
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// ParseResponse carries the raw record sequence without any analysis
type ParseResponse struct {
	Format       StatementFormat `json:"format"`
	Count        int             `json:"count"`
	Transactions []Transaction   `json:"transactions"`
}

// AnalyzeResponse is the final response structure
type AnalyzeResponse struct {
	Format      StatementFormat `json:"format"`
	Mode        AnalysisMode    `json:"mode"`
	Count       int             `json:"count"`
	PeriodStart string          `json:"period_start"`
	PeriodEnd   string          `json:"period_end"`
	Report      *AnalysisReport `json:"report"`
	Workbook    string          `json:"workbook"`
	ProcessedAt string          `json:"processed_at"`
}
