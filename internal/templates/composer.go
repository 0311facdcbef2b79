// Package templates builds the outbound inquiry email. One structured
// Document is composed per inquiry and rendered twice, through an HTML
// formatter and a plain-text formatter, so the two bodies always carry the
// same fields in the same order.
package templates

import (
	"fmt"
	"html"
	"strings"

	"contact-service/internal/models"
)

// Field is one rendered label/value pair inside a fragment.
type Field struct {
	Label string
	Value string
	Kind  models.FieldKind
}

// Fragment is the titled block describing one selected service.
type Fragment struct {
	Title  string
	Fields []Field
}

// Document is the provider-agnostic representation of one inquiry email.
type Document struct {
	Name      string
	Email     string
	Company   string
	Services  string
	Fragments []Fragment
	Message   string
}

const footerLine = "Sent from thefirstcoastal.com contact form"

// Compose builds the email document for an inquiry. Fragments follow the
// fixed order of models.FragmentSpecs; the order tags appeared in the
// request is irrelevant. Sub-fields of unselected tags never appear.
func Compose(inq *models.Inquiry) *Document {
	doc := &Document{
		Name:     strings.TrimSpace(inq.Name),
		Email:    strings.TrimSpace(inq.Email),
		Company:  strings.TrimSpace(inq.Company),
		Services: inq.ServiceSummary(),
		Message:  strings.TrimSpace(inq.Message),
	}

	for _, spec := range models.FragmentSpecs {
		if !inq.HasService(spec.Tag) {
			continue
		}
		frag := Fragment{Title: spec.Title}
		for _, fs := range spec.Fields {
			field, ok := resolveField(inq, fs)
			if !ok {
				continue
			}
			frag.Fields = append(frag.Fields, field)
		}
		doc.Fragments = append(doc.Fragments, frag)
	}

	return doc
}

// resolveField turns a field spec into a rendered field. Returns false when
// the field is optional and blank, meaning it is omitted from both bodies.
func resolveField(inq *models.Inquiry, fs models.FieldSpec) (Field, bool) {
	if fs.Kind == models.FieldPlatformList {
		value := "None selected"
		if len(inq.SocialPlatforms) > 0 {
			value = strings.Join(inq.SocialPlatforms, ", ")
		}
		return Field{Label: fs.Label, Value: value, Kind: models.FieldText}, true
	}

	value := strings.TrimSpace(inq.FieldValue(fs.Key))
	switch fs.Kind {
	case models.FieldOptional, models.FieldOptionalLink:
		if value == "" {
			return Field{}, false
		}
	default:
		if value == "" {
			value = "N/A"
		}
	}
	return Field{Label: fs.Label, Value: value, Kind: fs.Kind}, true
}

// Subject returns the email subject line.
func (d *Document) Subject() string {
	return fmt.Sprintf("New Contact Form: %s - %s", d.Services, d.Name)
}

// HTML renders the document as the HTML email body.
func (d *Document) HTML() string {
	var b strings.Builder

	b.WriteString(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">` + "\n")
	b.WriteString(`<h2 style="color: #222326;">New Contact Form Submission</h2>` + "\n")

	b.WriteString(`<div style="margin: 20px 0; padding: 15px; background-color: #f0f4f5;">` + "\n")
	writeHTMLField(&b, "Name", d.Name)
	fmt.Fprintf(&b, `<p><strong>Email:</strong> <a href="mailto:%s">%s</a></p>`+"\n",
		html.EscapeString(d.Email), html.EscapeString(d.Email))
	if d.Company != "" {
		writeHTMLField(&b, "Company", d.Company)
	}
	writeHTMLField(&b, "Services Interested In", d.Services)
	b.WriteString("</div>\n")

	for _, frag := range d.Fragments {
		b.WriteString(`<div style="margin: 20px 0; padding: 15px; background-color: #f8f9fa; border-left: 4px solid #5D878C;">` + "\n")
		fmt.Fprintf(&b, `<h3 style="margin-top: 0; color: #5D878C;">%s</h3>`+"\n", html.EscapeString(frag.Title))
		for _, f := range frag.Fields {
			switch f.Kind {
			case models.FieldLink, models.FieldOptionalLink:
				fmt.Fprintf(&b, `<p><strong>%s:</strong> <a href="%s">%s</a></p>`+"\n",
					html.EscapeString(f.Label), html.EscapeString(f.Value), html.EscapeString(f.Value))
			case models.FieldMultiline:
				fmt.Fprintf(&b, `<p><strong>%s:</strong></p>`+"\n", html.EscapeString(f.Label))
				fmt.Fprintf(&b, `<p style="white-space: pre-wrap;">%s</p>`+"\n", html.EscapeString(f.Value))
			default:
				writeHTMLField(&b, f.Label, f.Value)
			}
		}
		b.WriteString("</div>\n")
	}

	if d.Message != "" {
		b.WriteString(`<div style="margin: 20px 0;">` + "\n")
		b.WriteString(`<h3 style="color: #222326;">Additional Details:</h3>` + "\n")
		fmt.Fprintf(&b, `<p style="white-space: pre-wrap;">%s</p>`+"\n", html.EscapeString(d.Message))
		b.WriteString("</div>\n")
	}

	b.WriteString(`<hr style="margin: 30px 0; border: none; border-top: 1px solid #ddd;">` + "\n")
	fmt.Fprintf(&b, `<p style="color: #999; font-size: 12px;">%s</p>`+"\n", footerLine)
	b.WriteString("</div>\n")

	return b.String()
}

func writeHTMLField(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, `<p><strong>%s:</strong> %s</p>`+"\n", html.EscapeString(label), html.EscapeString(value))
}

// Text renders the document as the plain-text email body. Same fields, same
// order as HTML.
func (d *Document) Text() string {
	var b strings.Builder

	b.WriteString("New Contact Form Submission\n\n")

	b.WriteString("--- Contact Information ---\n")
	fmt.Fprintf(&b, "Name: %s\n", d.Name)
	fmt.Fprintf(&b, "Email: %s\n", d.Email)
	if d.Company != "" {
		fmt.Fprintf(&b, "Company: %s\n", d.Company)
	}
	fmt.Fprintf(&b, "Services Interested In: %s\n", d.Services)

	for _, frag := range d.Fragments {
		fmt.Fprintf(&b, "\n--- %s ---\n", frag.Title)
		for _, f := range frag.Fields {
			if f.Kind == models.FieldMultiline {
				fmt.Fprintf(&b, "%s:\n%s\n", f.Label, f.Value)
			} else {
				fmt.Fprintf(&b, "%s: %s\n", f.Label, f.Value)
			}
		}
	}

	if d.Message != "" {
		fmt.Fprintf(&b, "\n--- Additional Details ---\n%s\n", d.Message)
	}

	fmt.Fprintf(&b, "\n---\n%s\n", footerLine)

	return b.String()
}
