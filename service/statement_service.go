package service

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"strings"
	"time"

	"github.com/ruchika0201/PhonePe-GPay-Statement-Analyzer/client"
	"github.com/ruchika0201/PhonePe-GPay-Statement-Analyzer/dto"
	"github.com/ruchika0201/PhonePe-GPay-Statement-Analyzer/utils"
)

// StatementService drives the full pipeline: extract statement text, detect
// the source app, parse transactions, analyse and export.
type StatementService struct {
	pdfProcessor    PDFProcessor
	tesseractClient *client.TesseractClient
	analysisService *AnalysisService
	excelExporter   *ExcelExporter
}

func NewStatementService(
	pdfProcessor PDFProcessor,
	tesseractClient *client.TesseractClient,
	analysisService *AnalysisService,
	excelExporter *ExcelExporter,
) *StatementService {
	return &StatementService{
		pdfProcessor:    pdfProcessor,
		tesseractClient: tesseractClient,
		analysisService: analysisService,
		excelExporter:   excelExporter,
	}
}

// ParseStatement extracts the raw record sequence without analysing it.
func (s *StatementService) ParseStatement(pdfData []byte, password string) (dto.StatementFormat, []dto.Transaction, error) {
	text, err := s.extractStatementText(pdfData, password)
	if err != nil {
		return "", nil, err
	}

	format, err := utils.DetectFormat(text)
	if err != nil {
		return "", nil, err
	}
	log.Printf("Detected statement format: %s", format)

	txns, err := utils.ParseTransactions(text, format)
	if err != nil {
		return "", nil, err
	}
	log.Printf("Parsed %d transactions", len(txns))

	return format, txns, nil
}

// AnalyzeStatement runs the full pipeline and writes the analysis workbook.
func (s *StatementService) AnalyzeStatement(pdfData []byte, password string) (*dto.AnalyzeResponse, error) {
	format, txns, err := s.ParseStatement(pdfData, password)
	if err != nil {
		return nil, err
	}
	if len(txns) == 0 {
		return nil, dto.ErrNoTransactions
	}

	now := time.Now()
	report := s.analysisService.Analyze(txns, now)
	// Short-span statements wholly older than the trailing 30-day window
	// leave nothing to report; exporting a zero-value summary helps nobody.
	if report.Summary.TotalTransactions == 0 {
		return nil, dto.ErrNoRecentTransactions
	}
	charts := BuildCharts(report, txns)
	log.Printf("Analysis mode: %s, charts rendered: %d", report.Mode, len(charts))

	workbook, err := s.excelExporter.Export(txns, report, charts, now)
	if err != nil {
		return nil, err
	}

	start, end := dateRange(txns)
	return &dto.AnalyzeResponse{
		Format:      format,
		Mode:        report.Mode,
		Count:       len(txns),
		PeriodStart: start.Format("2006-01-02"),
		PeriodEnd:   end.Format("2006-01-02"),
		Report:      report,
		Workbook:    workbook,
		ProcessedAt: now.Format(time.RFC3339),
	}, nil
}

// extractStatementText tries the embedded text layer first. Statements that
// come back with almost no text are treated as scanned and run through the
// image-extraction + OCR fallback.
func (s *StatementService) extractStatementText(pdfData []byte, password string) (string, error) {
	text, err := s.pdfProcessor.ExtractText(pdfData, password)
	if err != nil {
		return "", err
	}
	if len(strings.TrimSpace(text)) >= 20 {
		return text, nil
	}

	log.Println("Statement has minimal text, attempting image-based OCR")

	images, err := s.pdfProcessor.ExtractImages(pdfData, password)
	if err != nil || len(images) == 0 {
		return "", fmt.Errorf("no text could be extracted from the statement")
	}

	var combined strings.Builder
	for _, img := range images {
		tempImg, err := saveImageToTempFile(img)
		if err != nil {
			log.Printf("Failed to save temporary image for OCR: %v", err)
			continue
		}

		pageText, err := s.tesseractClient.ExtractText(tempImg)
		os.Remove(tempImg)
		if err != nil {
			log.Printf("OCR failed for a statement page: %v", err)
			continue
		}

		combined.WriteString(pageText)
		combined.WriteString("\n") // page break
	}

	if len(strings.TrimSpace(combined.String())) == 0 {
		return "", fmt.Errorf("no text could be extracted from the statement")
	}
	return combined.String(), nil
}

// saveImageToTempFile saves an image.Image to a temporary PNG file.
func saveImageToTempFile(img image.Image) (string, error) {
	tempFile, err := os.CreateTemp("", "statement-page-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp image file: %w", err)
	}
	defer tempFile.Close()

	if err := png.Encode(tempFile, img); err != nil {
		return "", fmt.Errorf("failed to encode image to PNG: %w", err)
	}

	return tempFile.Name(), nil
}
