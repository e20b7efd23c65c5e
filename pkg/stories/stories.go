package stories

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"rentaid-waitlist/pkg/models"
)

// Row is one parsed CSV line keyed by header
type Row map[string]string

// Testimonial is a problem story shown on the stories page
type Testimonial struct {
	ID        int    `json:"id"`
	Text      string `json:"text"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Link      string `json:"link"`
	IssueType string `json:"issueType"`
}

var markdownLink = regexp.MustCompile(`\[.*?\]\((.*?)\)`)

// ParseCSV splits on newlines and commas without quoting rules. The first line
// holds the headers; rows with fewer fields than headers are skipped.
func ParseCSV(text string) []Row {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) == 0 || lines[0] == "" {
		return nil
	}
	headers := strings.Split(lines[0], ",")

	var rows []Row
	for _, line := range lines[1:] {
		values := strings.Split(line, ",")
		if len(values) < len(headers) {
			continue
		}
		row := make(Row, len(headers))
		for i, header := range headers {
			row[strings.TrimSpace(header)] = strings.TrimSpace(values[i])
		}
		rows = append(rows, row)
	}
	return rows
}

// ExtractLink returns the url of a [text](url) link, or the input unchanged
func ExtractLink(postLink string) string {
	if m := markdownLink.FindStringSubmatch(postLink); m != nil {
		return m[1]
	}
	return postLink
}

func ToTestimonials(rows []Row) []Testimonial {
	out := make([]Testimonial, 0, len(rows))
	for i, row := range rows {
		out = append(out, Testimonial{
			ID:        i + 1,
			Text:      row["snippet"],
			Name:      orDefault(row["issue_type"], "Issue"),
			Role:      fmt.Sprintf("%s • %s", row["city"], row["platform"]),
			Link:      ExtractLink(row["post_link"]),
			IssueType: orDefault(row["bucket"], "General"),
		})
	}
	return out
}

// SplitRows halves testimonials into two display rows; the first gets the extra one
func SplitRows(items []Testimonial) ([]Testimonial, []Testimonial) {
	mid := (len(items) + 1) / 2
	return items[:mid], items[mid:]
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// Repository serves the testimonial datasets loaded at startup
type Repository struct {
	byVariant map[models.Variant][]Testimonial
}

var datasetFiles = map[models.Variant]string{
	models.VariantTenant:   "tenant_problems.csv",
	models.VariantLandlord: "landlord_problems.csv",
}

// Load reads both datasets from dir. A missing or unreadable file leaves that
// variant empty and is logged, matching a failed fetch on the page.
func Load(dir string, log *zap.Logger) *Repository {
	if log == nil {
		log = zap.NewNop()
	}
	repo := &Repository{byVariant: make(map[models.Variant][]Testimonial)}
	for variant, name := range datasetFiles {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			log.Warn("Error loading stories dataset", zap.String("path", path), zap.Error(err))
			continue
		}
		repo.byVariant[variant] = ToTestimonials(ParseCSV(string(data)))
		log.Info("Loaded stories dataset",
			zap.String("variant", string(variant)),
			zap.Int("count", len(repo.byVariant[variant])),
		)
	}
	return repo
}

func NewRepository(byVariant map[models.Variant][]Testimonial) *Repository {
	return &Repository{byVariant: byVariant}
}

func (r *Repository) For(variant models.Variant) []Testimonial {
	return r.byVariant[variant]
}
