package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ruchika0201/PhonePe-GPay-Statement-Analyzer/dto"
)

// PhonePe statements keep every field of a transaction on its own line, so the
// pattern runs in dot-matches-newline mode and spans one full entry per match.
var phonePePattern = regexp.MustCompile(
	`(?s)([A-Za-z]{3}\s\d{2},\s\d{4})\s+` + // date "Jan 05, 2024"
		`(Paid to|Received from)\s+` + // direction keyword
		`(.*?)\s+` + // merchant (non-greedy)
		`(Debit|Credit)\s+INR\s+([\d,]+\.\d{2})\s+` + // explicit type + amount
		`([\d:APM\s]+?)\s+` + // time
		`Transaction ID : ([A-Z0-9]+)\s+` +
		`UTR No : (\d+)\s+` +
		`(?:Debited from|Credited to)\s+(XX\d+)`, // masked account
)

// Google Pay statements glue marker tokens to the preceding word, so the text
// is repaired before matching (see repairGooglePayText).
var googlePayPattern = regexp.MustCompile(
	`(?s)(\d{2}[A-Za-z]{3},\d{4})\s*` + // date "05Jan,2024"
		`(Paidto|Receivedfrom)\s*` + // direction marker
		`(.*?)\s*` + // merchant (non-greedy)
		`₹([\d,]+\.?\d*)\s*` + // amount (flexible decimal)
		`([\d:APM]+)?\s*` + // time (optional)
		`UPI\s*Transaction\s*ID:?\s*(\d+)`, // numeric transaction id
)

// gluedMarkers are the Google Pay tokens that frequently arrive without a
// leading space. Each repair pattern inserts one after any non-space rune.
var gluedMarkers = []*regexp.Regexp{
	regexp.MustCompile(`(\S)(Paidto)`),
	regexp.MustCompile(`(\S)(UPITransactionID:)`),
	regexp.MustCompile(`(\S)(Paidby)`),
	regexp.MustCompile(`(\S)(Receivedfrom)`),
}

// DetectFormat classifies statement text as PhonePe or Google Pay by marker
// substrings. Detection runs on a whitespace-collapsed copy because the PDF
// layout may break a marker phrase across lines.
func DetectFormat(text string) (dto.StatementFormat, error) {
	clean := strings.Join(strings.Fields(text), " ")

	switch {
	case strings.Contains(clean, "Transaction ID :") && strings.Contains(clean, "Debited from"):
		return dto.FormatPhonePe, nil
	case strings.Contains(clean, "Paidto") && strings.Contains(clean, "UPITransactionID:"):
		return dto.FormatGooglePay, nil
	}
	return "", dto.ErrUnrecognizedFormat
}

// ParseTransactions extracts every transaction from statement text using the
// grammar for the detected format. Matches are returned in source order; zero
// matches yields an empty slice without error.
func ParseTransactions(text string, format dto.StatementFormat) ([]dto.Transaction, error) {
	switch format {
	case dto.FormatPhonePe:
		return parsePhonePe(text)
	case dto.FormatGooglePay:
		return parseGooglePay(text)
	}
	return nil, fmt.Errorf("unknown statement format: %s", format)
}

func parsePhonePe(text string) ([]dto.Transaction, error) {
	var transactions []dto.Transaction

	for _, m := range phonePePattern.FindAllStringSubmatch(text, -1) {
		rawDate, keyword, merchant, txType := m[1], m[2], m[3], m[4]
		rawAmount, rawTime, txnID, account := m[5], m[6], m[7], m[9]
		_ = m[8] // UTR number, captured to anchor the grammar but not reported

		date, err := time.Parse("Jan 02, 2006", rawDate)
		if err != nil {
			return nil, fmt.Errorf("parse PhonePe date %q: %w", rawDate, err)
		}

		// The keyword and the explicit Debit/Credit token both signal
		// direction. The token is authoritative; disagreement means the
		// pattern matched across record boundaries, so the run aborts.
		keywordType := dto.TypeDebit
		if keyword == "Received from" {
			keywordType = dto.TypeCredit
		}
		if dto.TransactionType(txType) != keywordType {
			return nil, fmt.Errorf("conflicting direction for transaction %s: %q vs %q", txnID, keyword, txType)
		}

		amount, err := parseAmount(rawAmount)
		if err != nil {
			return nil, fmt.Errorf("parse PhonePe amount %q: %w", rawAmount, err)
		}

		transactions = append(transactions, dto.Transaction{
			Date:          date,
			Time:          strings.TrimSpace(rawTime),
			Merchant:      strings.TrimSpace(merchant),
			Type:          dto.TransactionType(txType),
			Amount:        amount,
			TransactionID: txnID,
			Account:       account,
		})
	}

	return transactions, nil
}

func parseGooglePay(text string) ([]dto.Transaction, error) {
	repaired := repairGooglePayText(text)

	var transactions []dto.Transaction
	for _, m := range googlePayPattern.FindAllStringSubmatch(repaired, -1) {
		rawDate, marker, merchant, rawAmount, rawTime, txnID := m[1], m[2], m[3], m[4], m[5], m[6]

		date, err := time.Parse("02Jan,2006", rawDate)
		if err != nil {
			return nil, fmt.Errorf("parse Google Pay date %q: %w", rawDate, err)
		}

		txType := dto.TypeCredit
		if marker == "Paidto" {
			txType = dto.TypeDebit
		}

		amount, err := parseAmount(rawAmount)
		if err != nil {
			return nil, fmt.Errorf("parse Google Pay amount %q: %w", rawAmount, err)
		}

		transactions = append(transactions, dto.Transaction{
			Date:          date,
			Time:          strings.TrimSpace(rawTime),
			Merchant:      AddSpacesToName(CleanMerchantName(merchant)),
			Type:          txType,
			Amount:        amount,
			TransactionID: txnID,
			Account:       "",
		})
	}

	return transactions, nil
}

// repairGooglePayText inserts the missing space before glued marker tokens,
// producing a new buffer the grammar can anchor on. The captured predecessor
// makes consecutive matches of the same marker overlap, so each pattern is
// re-applied until it stops matching.
func repairGooglePayText(text string) string {
	for _, re := range gluedMarkers {
		for {
			repaired := re.ReplaceAllString(text, "$1 $2")
			if repaired == text {
				break
			}
			text = repaired
		}
	}
	return text
}

func parseAmount(raw string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
}
