package models

import "strings"

// ServiceTag identifies one of the service categories a prospect can ask about.
type ServiceTag string

const (
	ServiceGeneral     ServiceTag = "general"
	ServiceWebsite     ServiceTag = "website"
	ServiceSocialMedia ServiceTag = "social-media"
	ServiceSEO         ServiceTag = "seo"
	ServiceConsulting  ServiceTag = "consulting"
)

// Inquiry is the contact form payload. It arrives as one flat JSON object:
// top-level fields plus every possible per-service sub-field. Sub-fields for
// tags not present in Services are ignored by the server.
type Inquiry struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Company  string   `json:"company"`
	Message  string   `json:"message"`
	Services []string `json:"services"`

	// Website development
	HasExistingWebsite string `json:"hasExistingWebsite"`
	WebsiteURL         string `json:"websiteUrl"`
	WebsiteTimeline    string `json:"websiteTimeline"`
	WebsiteBudget      string `json:"websiteBudget"`

	// Social media
	SocialPlatforms     []string `json:"socialPlatforms"`
	HasExistingAccounts string   `json:"hasExistingAccounts"`
	SocialGoals         string   `json:"socialGoals"`

	// SEO
	SEOWebsiteURL string `json:"seoWebsiteUrl"`
	HasDoneSEO    string `json:"hasDoneSeo"`
	TargetArea    string `json:"targetArea"`
	Competitors   string `json:"competitors"`

	// Strategy consulting
	BusinessType       string `json:"businessType"`
	Challenges         string `json:"challenges"`
	ConsultationFormat string `json:"consultationFormat"`
}

// SelectedServices returns the services deduplicated, preserving first-seen
// order. Display order only; fragment order is fixed by FragmentSpecs.
func (i *Inquiry) SelectedServices() []string {
	seen := make(map[string]bool, len(i.Services))
	out := make([]string, 0, len(i.Services))
	for _, s := range i.Services {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// HasService reports whether the inquiry selected the given tag.
func (i *Inquiry) HasService(tag ServiceTag) bool {
	for _, s := range i.Services {
		if strings.TrimSpace(s) == string(tag) {
			return true
		}
	}
	return false
}

// ServiceSummary returns the human-readable services line used in the subject
// and header ("website, social media" etc.), or "General" when none selected.
func (i *Inquiry) ServiceSummary() string {
	selected := i.SelectedServices()
	if len(selected) == 0 {
		return "General"
	}
	labels := make([]string, len(selected))
	for n, s := range selected {
		labels[n] = strings.ReplaceAll(s, "-", " ")
	}
	return strings.Join(labels, ", ")
}

// FieldValue returns the raw value of a scalar sub-field by its JSON key.
// SocialPlatforms is a list and is handled separately by the composer.
func (i *Inquiry) FieldValue(key string) string {
	switch key {
	case "hasExistingWebsite":
		return i.HasExistingWebsite
	case "websiteUrl":
		return i.WebsiteURL
	case "websiteTimeline":
		return i.WebsiteTimeline
	case "websiteBudget":
		return i.WebsiteBudget
	case "hasExistingAccounts":
		return i.HasExistingAccounts
	case "socialGoals":
		return i.SocialGoals
	case "seoWebsiteUrl":
		return i.SEOWebsiteURL
	case "hasDoneSeo":
		return i.HasDoneSEO
	case "targetArea":
		return i.TargetArea
	case "competitors":
		return i.Competitors
	case "businessType":
		return i.BusinessType
	case "challenges":
		return i.Challenges
	case "consultationFormat":
		return i.ConsultationFormat
	}
	return ""
}

// FieldKind controls how a sub-field is rendered in the outbound email.
type FieldKind int

const (
	// FieldText renders the value, or "N/A" when blank.
	FieldText FieldKind = iota
	// FieldLink renders the value as a hyperlink, or "N/A" when blank.
	FieldLink
	// FieldOptional is omitted entirely when blank.
	FieldOptional
	// FieldOptionalLink is a hyperlink, omitted entirely when blank.
	FieldOptionalLink
	// FieldMultiline preserves line breaks, or "N/A" when blank.
	FieldMultiline
	// FieldPlatformList renders the socialPlatforms set joined by ", ",
	// or "None selected" when empty.
	FieldPlatformList
)

// FieldSpec describes one sub-field of a service fragment.
type FieldSpec struct {
	Key   string
	Label string
	Kind  FieldKind
}

// FragmentSpec describes the titled email fragment for one service tag.
type FragmentSpec struct {
	Tag    ServiceTag
	Title  string
	Fields []FieldSpec
	// Required lists the sub-field keys the form marks required when the
	// tag is selected.
	Required []string
}

// FragmentSpecs is the single source of truth for fragment content and
// ordering. Fragments always appear in this order in the composed email,
// regardless of the order tags were submitted in.
var FragmentSpecs = []FragmentSpec{
	{
		Tag:   ServiceWebsite,
		Title: "Website Development",
		Fields: []FieldSpec{
			{Key: "hasExistingWebsite", Label: "Has Existing Website", Kind: FieldText},
			{Key: "websiteUrl", Label: "Current Website", Kind: FieldOptionalLink},
			{Key: "websiteTimeline", Label: "Timeline", Kind: FieldText},
			{Key: "websiteBudget", Label: "Budget", Kind: FieldText},
		},
		Required: []string{"hasExistingWebsite", "websiteTimeline", "websiteBudget"},
	},
	{
		Tag:   ServiceSocialMedia,
		Title: "Social Media",
		Fields: []FieldSpec{
			{Key: "socialPlatforms", Label: "Platforms", Kind: FieldPlatformList},
			{Key: "hasExistingAccounts", Label: "Has Existing Accounts", Kind: FieldText},
			{Key: "socialGoals", Label: "Primary Goals", Kind: FieldText},
		},
		Required: []string{"socialPlatforms", "hasExistingAccounts", "socialGoals"},
	},
	{
		Tag:   ServiceSEO,
		Title: "SEO",
		Fields: []FieldSpec{
			{Key: "seoWebsiteUrl", Label: "Website URL", Kind: FieldLink},
			{Key: "hasDoneSeo", Label: "Previous SEO Work", Kind: FieldText},
			{Key: "targetArea", Label: "Target Area", Kind: FieldText},
			{Key: "competitors", Label: "Competitors", Kind: FieldOptional},
		},
		Required: []string{"seoWebsiteUrl", "hasDoneSeo", "targetArea"},
	},
	{
		Tag:   ServiceConsulting,
		Title: "Strategy Consulting",
		Fields: []FieldSpec{
			{Key: "businessType", Label: "Business Type", Kind: FieldText},
			{Key: "challenges", Label: "Challenges", Kind: FieldMultiline},
			{Key: "consultationFormat", Label: "Preferred Format", Kind: FieldText},
		},
		Required: []string{"businessType", "challenges", "consultationFormat"},
	},
	{
		Tag:   ServiceGeneral,
		Title: "General Inquiry",
	},
}

// FragmentSpecFor returns the fragment spec for a tag, or nil for unknown tags.
func FragmentSpecFor(tag ServiceTag) *FragmentSpec {
	for n := range FragmentSpecs {
		if FragmentSpecs[n].Tag == tag {
			return &FragmentSpecs[n]
		}
	}
	return nil
}
