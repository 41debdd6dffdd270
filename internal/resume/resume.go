// Package resume extracts structured candidate profiles from resume files.
// Supported formats: PDF, DOCX, HTML and plain text.
package resume

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ContactInfo holds contact details found in the resume text.
type ContactInfo struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

// Education describes a single education entry.
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Dates       string `json:"dates,omitempty"`
}

// Experience describes a single work experience entry.
type Experience struct {
	Position    string `json:"position"`
	Company     string `json:"company"`
	Dates       string `json:"dates,omitempty"`
	Description string `json:"description,omitempty"`
}

// Profile is the structured result of parsing a resume.
type Profile struct {
	Name       string       `json:"name"`
	Contact    ContactInfo  `json:"contact_information"`
	Skills     []string     `json:"skills"`
	Education  []Education  `json:"education"`
	Experience []Experience `json:"work_experience"`
	FullText   string       `json:"full_text,omitempty"`
}

// WithoutFullText returns a copy of the profile with the raw text dropped.
// Saved reports keep only the structured fields.
func (p *Profile) WithoutFullText() *Profile {
	if p == nil {
		return nil
	}
	clone := *p
	clone.FullText = ""
	return &clone
}

// Parse reads the resume file and returns a structured profile. The format is
// chosen by file extension.
func Parse(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading resume: %w", err)
	}

	text, err := ExtractText(path, data)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("resume %q contains no extractable text", path)
	}

	return FromText(text), nil
}

// ExtractText converts the raw file contents into plain text.
func ExtractText(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return extractTextFromPDF(data)
	case ".docx":
		return extractTextFromDocx(data)
	case ".html", ".htm":
		return extractTextFromHTML(data)
	case ".txt":
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported resume format: %s", ext)
	}
}

// FromText builds a structured profile from plain resume text.
func FromText(text string) *Profile {
	return &Profile{
		Name:       extractName(text),
		Contact:    extractContactInfo(text),
		Skills:     extractSkills(text),
		Education:  extractEducation(text),
		Experience: extractExperience(text),
		FullText:   text,
	}
}

// Summary renders a compact textual view of the profile for prompting.
func (p *Profile) Summary() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Name: %s\n", p.Name)
	if p.Contact.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", p.Contact.Email)
	}
	if p.Contact.LinkedIn != "" {
		fmt.Fprintf(&b, "LinkedIn: %s\n", p.Contact.LinkedIn)
	}
	if len(p.Skills) > 0 {
		fmt.Fprintf(&b, "Skills: %s\n", strings.Join(p.Skills, ", "))
	}

	if len(p.Experience) > 0 {
		b.WriteString("Work experience:\n")
		for _, exp := range p.Experience {
			fmt.Fprintf(&b, "- %s at %s (%s)\n", exp.Position, exp.Company, exp.Dates)
		}
	}

	if len(p.Education) > 0 {
		b.WriteString("Education:\n")
		for _, edu := range p.Education {
			fmt.Fprintf(&b, "- %s, %s %s\n", edu.Degree, edu.Institution, edu.Dates)
		}
	}

	return b.String()
}
