package templates

import (
	"html"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contact-service/internal/models"
)

func fullInquiry() *models.Inquiry {
	return &models.Inquiry{
		Name:                "Jane Doe",
		Email:               "jane@biz.com",
		Company:             "Jane's Bakery",
		Message:             "Looking forward to working together.",
		Services:            []string{"consulting", "seo", "website", "social-media", "general"},
		HasExistingWebsite:  "yes",
		WebsiteURL:          "biz.com",
		WebsiteTimeline:     "asap",
		WebsiteBudget:       "1k-3k",
		SocialPlatforms:     []string{"instagram", "facebook"},
		HasExistingAccounts: "some",
		SocialGoals:         "brand-awareness",
		SEOWebsiteURL:       "biz.com",
		HasDoneSEO:          "no",
		TargetArea:          "Northeast Florida",
		Competitors:         "otherbakery.com",
		BusinessType:        "bakery",
		Challenges:          "slow season\nno repeat customers",
		ConsultationFormat:  "video",
	}
}

func TestSubjectLine(t *testing.T) {
	tests := []struct {
		name     string
		services []string
		want     string
	}{
		{
			name:     "no services falls back to General",
			services: nil,
			want:     "New Contact Form: General - Jane Doe",
		},
		{
			name:     "single service",
			services: []string{"website"},
			want:     "New Contact Form: website - Jane Doe",
		},
		{
			name:     "hyphens become spaces",
			services: []string{"social-media", "seo"},
			want:     "New Contact Form: social media, seo - Jane Doe",
		},
		{
			name:     "duplicates collapse",
			services: []string{"seo", "seo", "website"},
			want:     "New Contact Form: seo, website - Jane Doe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Compose(&models.Inquiry{Name: "Jane Doe", Email: "jane@biz.com", Services: tt.services})
			assert.Equal(t, tt.want, doc.Subject())
		})
	}
}

func TestFragmentOrderIgnoresInputOrder(t *testing.T) {
	base := fullInquiry()

	shuffled := fullInquiry()
	shuffled.Services = []string{"general", "website", "consulting", "social-media", "seo"}

	docA := Compose(base)
	docB := Compose(shuffled)

	// The services summary line follows input order (as the subject does);
	// align it so the comparison isolates fragment ordering.
	assert.Equal(t, "consulting, seo, website, social media, general", docA.Services)
	assert.Equal(t, "general, website, consulting, social media, seo", docB.Services)
	docB.Services = docA.Services

	assert.Equal(t, docA.HTML(), docB.HTML())
	assert.Equal(t, docA.Text(), docB.Text())

	text := docA.Text()
	order := []string{
		"--- Website Development ---",
		"--- Social Media ---",
		"--- SEO ---",
		"--- Strategy Consulting ---",
		"--- General Inquiry ---",
	}
	last := -1
	for _, marker := range order {
		idx := strings.Index(text, marker)
		require.GreaterOrEqual(t, idx, 0, "missing fragment %q", marker)
		assert.Greater(t, idx, last, "fragment %q out of order", marker)
		last = idx
	}
}

func TestUnselectedServiceSubFieldsIgnored(t *testing.T) {
	inq := fullInquiry()
	inq.Services = []string{"website"}

	doc := Compose(inq)
	text := doc.Text()

	assert.Contains(t, text, "--- Website Development ---")
	assert.NotContains(t, text, "--- SEO ---")
	assert.NotContains(t, text, "Target Area")
	assert.NotContains(t, text, "Business Type")
}

func TestBlankSubFieldsRenderNA(t *testing.T) {
	inq := &models.Inquiry{
		Name:     "Jane Doe",
		Email:    "jane@biz.com",
		Services: []string{"website", "seo"},
	}

	doc := Compose(inq)
	text := doc.Text()

	assert.Contains(t, text, "Has Existing Website: N/A")
	assert.Contains(t, text, "Timeline: N/A")
	assert.Contains(t, text, "Budget: N/A")
	assert.Contains(t, text, "Website URL: N/A")
	// Optional fields are omitted entirely when blank
	assert.NotContains(t, text, "Current Website")
	assert.NotContains(t, text, "Competitors")
}

func TestEmptyPlatformList(t *testing.T) {
	inq := &models.Inquiry{
		Name:     "Jane Doe",
		Email:    "jane@biz.com",
		Services: []string{"social-media"},
	}

	doc := Compose(inq)
	assert.Contains(t, doc.Text(), "Platforms: None selected")
	assert.Contains(t, doc.HTML(), "None selected")
}

func TestWebsiteInquiryScenario(t *testing.T) {
	inq := &models.Inquiry{
		Name:               "Jane Doe",
		Email:              "jane@biz.com",
		Services:           []string{"website"},
		HasExistingWebsite: "yes",
		WebsiteURL:         "biz.com",
		WebsiteTimeline:    "asap",
		WebsiteBudget:      "1k-3k",
	}

	doc := Compose(inq)

	assert.Equal(t, "New Contact Form: website - Jane Doe", doc.Subject())

	htmlBody := doc.HTML()
	assert.Contains(t, htmlBody, "Website Development")
	assert.Contains(t, htmlBody, "<strong>Has Existing Website:</strong> yes")
	assert.Contains(t, htmlBody, `<a href="biz.com">biz.com</a>`)
	assert.Contains(t, htmlBody, `<a href="mailto:jane@biz.com">jane@biz.com</a>`)

	text := doc.Text()
	assert.Contains(t, text, "Has Existing Website: yes")
	assert.Contains(t, text, "Current Website: biz.com")
	assert.Contains(t, text, "Timeline: asap")
	assert.Contains(t, text, "Budget: 1k-3k")
}

var (
	tagPattern        = regexp.MustCompile(`<[^>]+>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// stripHTML reduces an HTML body to its visible text with normalized spacing
func stripHTML(s string) string {
	s = tagPattern.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}

// Both bodies are rendered from one document, so the HTML stripped of markup
// must carry the same field values, in the same order, as the text body.
func TestHTMLAndTextBodiesEquivalent(t *testing.T) {
	doc := Compose(fullInquiry())

	stripped := stripHTML(doc.HTML())

	var probes []string
	for _, line := range strings.Split(doc.Text(), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line == "---" {
			continue
		}
		if strings.HasPrefix(line, "--- ") {
			title := strings.Trim(line, "- ")
			// The HTML contact block carries no heading of its own
			if title == "Contact Information" {
				continue
			}
			probes = append(probes, title)
			continue
		}
		probes = append(probes, line)
	}

	last := -1
	for _, probe := range probes {
		normalized := strings.TrimSpace(whitespacePattern.ReplaceAllString(probe, " "))
		idx := strings.Index(stripped, normalized)
		require.GreaterOrEqual(t, idx, 0, "HTML body missing %q", normalized)
		assert.GreaterOrEqual(t, idx, last, "HTML body has %q out of order", normalized)
		last = idx
	}
}
