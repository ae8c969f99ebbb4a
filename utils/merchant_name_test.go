package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanMerchantNameStripsFragments(t *testing.T) {
	assert.Equal(t, "John Doe", CleanMerchantName("John Doe ₹50.00 3:45PM"))
	assert.Equal(t, "John Doe", CleanMerchantName("John Doe UPI Transaction ID: 12345"))
	assert.Equal(t, "John Doe", CleanMerchantName("John Doe Paidby somebody else entirely"))
	assert.Equal(t, "John Doe", CleanMerchantName("John Doe\nsecond line noise"))
}

func TestCleanMerchantNameIdempotent(t *testing.T) {
	names := []string{
		"Example Store",
		"Raju Tea Stall",
		"Miss RUCHIKASUBHASHPANDE",
		"Unknown",
	}
	for _, name := range names {
		once := CleanMerchantName(name)
		assert.Equal(t, once, CleanMerchantName(once), "cleanup must be a no-op on a clean name: %q", name)
	}
}

func TestCleanMerchantNameCollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "Corner Shop", CleanMerchantName("Corner   Shop"))
}

func TestCleanMerchantNameLongCaptureKeepsFirstSegment(t *testing.T) {
	long := "Some Very Long Merchant Name From A Mall Receipt Somewhere" + strings.Repeat(" ", 3) + "trailing layout bleed"
	assert.Greater(t, len(long), 50)
	assert.Equal(t, "Some Very Long Merchant Name From A Mall Receipt Somewhere", CleanMerchantName(long))
}

func TestCleanMerchantNameLongNameWithoutGapsKeptWhole(t *testing.T) {
	long := "श्री Ganesh Traders and General Provision Stores Private Limited"
	assert.Greater(t, len(long), 50)
	assert.Equal(t, long, CleanMerchantName(long))
}

func TestCleanMerchantNameEmptyFallsBackToUnknown(t *testing.T) {
	assert.Equal(t, "Unknown", CleanMerchantName(""))
	assert.Equal(t, "Unknown", CleanMerchantName("   "))
	assert.Equal(t, "Unknown", CleanMerchantName("₹150.00 9:15AM"))
}

func TestAddSpacesToName(t *testing.T) {
	// only lower-to-upper transitions split; all-caps runs stay joined
	assert.Equal(t, "Miss RUCHIKASUBHASHPANDE", AddSpacesToName("MissRUCHIKASUBHASHPANDE"))
	assert.Equal(t, "State Bankof India", AddSpacesToName("StateBankofIndia"))
	assert.Equal(t, "Coffee Shop", AddSpacesToName("CoffeeShop"))
	assert.Equal(t, "SWIGGY", AddSpacesToName("SWIGGY"))
}

func TestAddSpacesToNameTitleAbbreviations(t *testing.T) {
	assert.Equal(t, "Mr. AMITKUMAR", AddSpacesToName("MrAMITKUMAR"))
	assert.Equal(t, "Mrs. SHARMA", AddSpacesToName("MrsSHARMA"))
	assert.Equal(t, "Dr. PANDE", AddSpacesToName("DrPANDE"))
}

func TestAddSpacesToNameSkipsSpacedAndShortNames(t *testing.T) {
	assert.Equal(t, "Already Spaced", AddSpacesToName("Already Spaced"))
	assert.Equal(t, "aB", AddSpacesToName("aB"))
	assert.Equal(t, "", AddSpacesToName(""))
}
