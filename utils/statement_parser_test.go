package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruchika0201/PhonePe-GPay-Statement-Analyzer/dto"
)

func TestDetectFormatPhonePe(t *testing.T) {
	text := `Jan 05, 2024 Paid to Example Store
Transaction ID : ABC123XYZ
Debited from XX1234`

	format, err := DetectFormat(text)

	assert.NoError(t, err)
	assert.Equal(t, dto.FormatPhonePe, format)
}

func TestDetectFormatPhonePeMarkerSplitAcrossLines(t *testing.T) {
	// the PDF layout may break a marker phrase across a line boundary
	text := "Transaction ID\n: ABC123XYZ\nDebited\nfrom XX1234"

	format, err := DetectFormat(text)

	assert.NoError(t, err)
	assert.Equal(t, dto.FormatPhonePe, format)
}

func TestDetectFormatGooglePay(t *testing.T) {
	text := "05Jan,2024 Paidto CoffeeShop ₹150.00 UPITransactionID: 123456789012"

	format, err := DetectFormat(text)

	assert.NoError(t, err)
	assert.Equal(t, dto.FormatGooglePay, format)
}

func TestDetectFormatPartialMarkersFail(t *testing.T) {
	// one marker of a pair is not enough
	cases := []string{
		"Transaction ID : ABC123XYZ but nothing else",
		"Debited from XX1234 but nothing else",
		"Paidto somebody with no id label",
		"UPITransactionID: 1234 with no paid-to marker",
		"completely unrelated text",
		"",
	}
	for _, text := range cases {
		_, err := DetectFormat(text)
		assert.ErrorIs(t, err, dto.ErrUnrecognizedFormat, "text: %q", text)
	}
}

func TestParsePhonePeTransaction(t *testing.T) {
	text := "Jan 05, 2024 Paid to Example Store Debit INR 1,250.00 10:30 AM Transaction ID : ABC123XYZ UTR No : 9988776655 Debited from XX1234"

	txns, err := ParseTransactions(text, dto.FormatPhonePe)

	require.NoError(t, err)
	require.Len(t, txns, 1)

	txn := txns[0]
	assert.Equal(t, time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC), txn.Date)
	assert.Equal(t, "10:30 AM", txn.Time)
	assert.Equal(t, "Example Store", txn.Merchant)
	assert.Equal(t, dto.TypeDebit, txn.Type)
	assert.Equal(t, 1250.00, txn.Amount)
	assert.Equal(t, "ABC123XYZ", txn.TransactionID)
	assert.Equal(t, "XX1234", txn.Account)
}

func TestParsePhonePeMultilineAndCredit(t *testing.T) {
	text := `Feb 10, 2024
Received from
Ravi Kumar
Credit INR 500.00
9:05 PM
Transaction ID : T24021012345
UTR No : 400123456789
Credited to XX9876
Feb 11, 2024 Paid to Grocery Mart Debit INR 89.50 8:15 AM Transaction ID : T24021198765 UTR No : 400987654321 Debited from XX9876`

	txns, err := ParseTransactions(text, dto.FormatPhonePe)

	require.NoError(t, err)
	require.Len(t, txns, 2)

	assert.Equal(t, dto.TypeCredit, txns[0].Type)
	assert.Equal(t, "Ravi Kumar", txns[0].Merchant)
	assert.Equal(t, 500.00, txns[0].Amount)
	assert.Equal(t, "XX9876", txns[0].Account)

	assert.Equal(t, dto.TypeDebit, txns[1].Type)
	assert.Equal(t, "Grocery Mart", txns[1].Merchant)
	assert.Equal(t, 89.50, txns[1].Amount)
}

func TestParsePhonePeConflictingDirection(t *testing.T) {
	// keyword says paid, token says credit: grammar matched across records
	text := "Jan 05, 2024 Paid to Example Store Credit INR 1,250.00 10:30 AM Transaction ID : ABC123XYZ UTR No : 9988776655 Credited to XX1234"

	_, err := ParseTransactions(text, dto.FormatPhonePe)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "conflicting direction")
}

func TestParseGooglePayTransaction(t *testing.T) {
	text := "05Jan,2024 Paidto CoffeeShop ₹150.00 9:15AM UPI Transaction ID: 123456789012"

	txns, err := ParseTransactions(text, dto.FormatGooglePay)

	require.NoError(t, err)
	require.Len(t, txns, 1)

	txn := txns[0]
	assert.Equal(t, time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC), txn.Date)
	assert.Equal(t, "9:15AM", txn.Time)
	assert.Equal(t, "Coffee Shop", txn.Merchant) // lower-to-upper boundary split
	assert.Equal(t, dto.TypeDebit, txn.Type)
	assert.Equal(t, 150.00, txn.Amount)
	assert.Equal(t, "123456789012", txn.TransactionID)
	assert.Equal(t, "", txn.Account)
}

func TestParseGooglePayGluedMarkers(t *testing.T) {
	// marker tokens frequently arrive glued to the previous word
	text := "Completed05Jan,2024PaidtoSWIGGY₹325.50 12:40PMUPITransactionID:111122223333Completed06Jan,2024ReceivedfromMrAMITSHARMA₹2,000.00UPITransactionID:444455556666"

	txns, err := ParseTransactions(text, dto.FormatGooglePay)

	require.NoError(t, err)
	require.Len(t, txns, 2)

	assert.Equal(t, dto.TypeDebit, txns[0].Type)
	assert.Equal(t, "SWIGGY", txns[0].Merchant)
	assert.Equal(t, 325.50, txns[0].Amount)
	assert.Equal(t, "12:40PM", txns[0].Time)
	assert.Equal(t, "111122223333", txns[0].TransactionID)

	assert.Equal(t, dto.TypeCredit, txns[1].Type)
	// only the lower-to-upper boundary splits; the all-caps run stays joined
	assert.Equal(t, "Mr. AMITSHARMA", txns[1].Merchant)
	assert.Equal(t, 2000.00, txns[1].Amount)
	assert.Equal(t, "", txns[1].Time)
}

func TestRepairGluedMarkersConverges(t *testing.T) {
	// adjacent occurrences of the same marker overlap in the repair pattern,
	// so a single replacement pass would leave the second one glued
	assert.Equal(t, "x Paidto Paidto", repairGooglePayText("xPaidtoPaidto"))
	assert.Equal(t, "a Receivedfrom b Paidby", repairGooglePayText("aReceivedfrom bPaidby"))
	// a marker at the start of the text has nothing glued to it
	assert.Equal(t, "Paidto SHOP", repairGooglePayText("Paidto SHOP"))
}

func TestParseGooglePayMerchantOvermatch(t *testing.T) {
	// non-greedy merchant capture drags in next-transaction fragments that
	// the cleanup has to strip
	text := "07Feb,2024 Paidto Raju Tea Stall 8:00PM Paidby Ruchika ₹20.00 5:05PM UPI Transaction ID: 777788889999"

	txns, err := ParseTransactions(text, dto.FormatGooglePay)

	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "Raju Tea Stall", txns[0].Merchant)
	assert.Equal(t, 20.00, txns[0].Amount)
}

func TestParseAmountRoundTrip(t *testing.T) {
	text := "05Jan,2024 Paidto BigStore ₹1,234.50 UPI Transaction ID: 123456789012"

	txns, err := ParseTransactions(text, dto.FormatGooglePay)

	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, 1234.50, txns[0].Amount)
}

func TestParseZeroMatchesIsNotAnError(t *testing.T) {
	txns, err := ParseTransactions("Paidto UPITransactionID: header page with no entries", dto.FormatGooglePay)

	assert.NoError(t, err)
	assert.Empty(t, txns)

	txns, err = ParseTransactions("Transaction ID : Debited from summary only", dto.FormatPhonePe)

	assert.NoError(t, err)
	assert.Empty(t, txns)
}

func TestParseMalformedDateAborts(t *testing.T) {
	// a date the grammar shape accepts but the calendar rejects
	text := "99Jan,2024 Paidto Shop ₹10.00 UPI Transaction ID: 123456789012"

	_, err := ParseTransactions(text, dto.FormatGooglePay)

	assert.Error(t, err)
}

func TestParseIsDeterministic(t *testing.T) {
	text := "05Jan,2024 Paidto CoffeeShop ₹150.00 9:15AM UPI Transaction ID: 123456789012"

	first, err := ParseTransactions(text, dto.FormatGooglePay)
	require.NoError(t, err)
	second, err := ParseTransactions(text, dto.FormatGooglePay)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestParseUnknownFormat(t *testing.T) {
	_, err := ParseTransactions("anything", dto.StatementFormat("Paytm"))
	assert.Error(t, err)
}
