package handler

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ruchika0201/PhonePe-GPay-Statement-Analyzer/dto"
	"github.com/ruchika0201/PhonePe-GPay-Statement-Analyzer/service"
)

type StatementHandler struct {
	statementService *service.StatementService
	maxFileSize      int64
}

func NewStatementHandler(statementService *service.StatementService, maxFileSize int64) *StatementHandler {
	return &StatementHandler{
		statementService: statementService,
		maxFileSize:      maxFileSize,
	}
}

// AnalyzeStatement handles the POST /statement/analyze endpoint
func (h *StatementHandler) AnalyzeStatement(c *gin.Context) {
	log.Println("Received statement analysis request")

	pdfData, password, ok := h.readUpload(c)
	if !ok {
		return
	}

	response, err := h.statementService.AnalyzeStatement(pdfData, password)
	if err != nil {
		h.sendError(c, err)
		return
	}

	log.Println("Statement analysis completed successfully")
	c.JSON(http.StatusOK, response)
}

// ParseStatement handles the POST /statement/parse endpoint. It returns the
// raw record sequence; zero transactions is a valid empty result here.
func (h *StatementHandler) ParseStatement(c *gin.Context) {
	log.Println("Received statement parse request")

	pdfData, password, ok := h.readUpload(c)
	if !ok {
		return
	}

	format, txns, err := h.statementService.ParseStatement(pdfData, password)
	if err != nil {
		h.sendError(c, err)
		return
	}
	if txns == nil {
		txns = []dto.Transaction{}
	}

	c.JSON(http.StatusOK, dto.ParseResponse{
		Format:       format,
		Count:        len(txns),
		Transactions: txns,
	})
}

func (h *StatementHandler) readUpload(c *gin.Context) ([]byte, string, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.sendErrorStatus(c, http.StatusBadRequest, dto.ErrNoFile)
		return nil, "", false
	}
	if h.maxFileSize > 0 && fileHeader.Size > h.maxFileSize {
		h.sendErrorStatus(c, http.StatusBadRequest, dto.ErrFileTooLarge)
		return nil, "", false
	}

	request := &dto.StatementRequest{
		File:     fileHeader,
		Password: c.PostForm("password"),
	}
	if err := request.Validate(); err != nil {
		h.sendErrorStatus(c, http.StatusBadRequest, err)
		return nil, "", false
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.sendErrorStatus(c, http.StatusBadRequest, err)
		return nil, "", false
	}
	defer file.Close()

	pdfData, err := io.ReadAll(file)
	if err != nil {
		h.sendErrorStatus(c, http.StatusBadRequest, err)
		return nil, "", false
	}

	return pdfData, request.Password, true
}

func (h *StatementHandler) sendError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, dto.ErrUnrecognizedFormat),
		errors.Is(err, dto.ErrNoTransactions),
		errors.Is(err, dto.ErrNoRecentTransactions):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, dto.ErrNoFile),
		errors.Is(err, dto.ErrFileTooLarge),
		errors.Is(err, dto.ErrUnreadablePDF):
		status = http.StatusBadRequest
	}
	h.sendErrorStatus(c, status, err)
}

// sendErrorStatus sends a structured error response
func (h *StatementHandler) sendErrorStatus(c *gin.Context, statusCode int, err error) {
	log.Printf("Error: %v", err)
	c.JSON(statusCode, dto.ErrorResponse{
		Error:   "STATEMENT_ANALYSIS_FAILED",
		Message: err.Error(),
		Code:    statusCode,
	})
}
