package stories

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentaid-waitlist/pkg/models"
)

func TestParseCSV(t *testing.T) {
	text := "\n city , platform,snippet\nHyderabad, Reddit , too many fees\nshort,row\nPune,Twitter,late rent,extra\n"

	rows := ParseCSV(text)

	require.Len(t, rows, 2)
	assert.Equal(t, Row{"city": "Hyderabad", "platform": "Reddit", "snippet": "too many fees"}, rows[0])
	assert.Equal(t, "late rent", rows[1]["snippet"])
}

func TestParseCSV_Empty(t *testing.T) {
	assert.Empty(t, ParseCSV("   "))
	assert.Empty(t, ParseCSV("a,b,c"))
}

func TestExtractLink(t *testing.T) {
	assert.Equal(t, "https://x.test/1", ExtractLink("[here](https://x.test/1)"))
	assert.Equal(t, "https://x.test/2", ExtractLink("https://x.test/2"))
	assert.Equal(t, "", ExtractLink(""))
}

func TestToTestimonials(t *testing.T) {
	rows := []Row{
		{"snippet": "deposit gone", "issue_type": "Deposit withheld", "city": "Hyderabad", "platform": "Reddit", "post_link": "[post](https://x.test/a)", "bucket": "Deposit"},
		{"snippet": "no name", "city": "Pune", "platform": "Quora"},
	}

	got := ToTestimonials(rows)

	require.Len(t, got, 2)
	assert.Equal(t, Testimonial{
		ID:        1,
		Text:      "deposit gone",
		Name:      "Deposit withheld",
		Role:      "Hyderabad • Reddit",
		Link:      "https://x.test/a",
		IssueType: "Deposit",
	}, got[0])
	assert.Equal(t, 2, got[1].ID)
	assert.Equal(t, "Issue", got[1].Name)
	assert.Equal(t, "General", got[1].IssueType)
	assert.Equal(t, "Pune • Quora", got[1].Role)
}

func TestSplitRows(t *testing.T) {
	items := make([]Testimonial, 5)
	first, second := SplitRows(items)
	assert.Len(t, first, 3)
	assert.Len(t, second, 2)

	first, second = SplitRows(nil)
	assert.Empty(t, first)
	assert.Empty(t, second)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	csv := "city,platform,issue_type,bucket,snippet,post_link\nHyderabad,Reddit,Late rent,Payments,paid late,[post](https://x.test/late)\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "landlord_problems.csv"), []byte(csv), 0o600))

	repo := Load(dir, nil)

	assert.Empty(t, repo.For(models.VariantTenant))
	landlord := repo.For(models.VariantLandlord)
	require.Len(t, landlord, 1)
	assert.Equal(t, "https://x.test/late", landlord[0].Link)
}
