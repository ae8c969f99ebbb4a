package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/ruchika0201/PhonePe-GPay-Statement-Analyzer/client"
	"github.com/ruchika0201/PhonePe-GPay-Statement-Analyzer/config"
	"github.com/ruchika0201/PhonePe-GPay-Statement-Analyzer/handler"
	"github.com/ruchika0201/PhonePe-GPay-Statement-Analyzer/service"
)

func main() {
	// Initialize configuration
	cfg := config.LoadConfig()

	// Initialize Tesseract client (OCR fallback for scanned statements)
	tesseractClient := client.NewTesseractClient(cfg.TesseractDataPath)
	defer tesseractClient.Close()

	// Initialize PDF processor
	pdfProcessor := service.NewPDFProcessor()

	// Initialize service layer
	analysisService := service.NewAnalysisService()
	excelExporter := service.NewExcelExporter(cfg.OutputDir)
	statementService := service.NewStatementService(pdfProcessor, tesseractClient, analysisService, excelExporter)

	// Initialize handler layer
	statementHandler := handler.NewStatementHandler(statementService, cfg.MaxFileSize)

	// Setup Gin router
	router := gin.Default()

	// Configure max multipart memory (32 MB)
	router.MaxMultipartMemory = 32 << 20

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "PhonePe-GPay Statement Analyser",
		})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		statement := api.Group("/statement")
		{
			statement.POST("/analyze", statementHandler.AnalyzeStatement)
			statement.POST("/parse", statementHandler.ParseStatement)
		}
	}

	// Start server
	log.Printf("Starting Statement Analyser Service on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
