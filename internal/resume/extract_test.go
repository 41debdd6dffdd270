package resume

import (
	"strings"
	"testing"
)

const sampleResume = `John Carter
john.carter@example.com | +1 555-123-4567
linkedin.com/in/johncarter

Senior backend engineer with 8 years of experience in Go, Python and AWS.

Work Experience

Senior Software Engineer
Acme Corp | Jan 2019 - Present
Built Go microservices on Kubernetes.
Led migration to PostgreSQL.

Backend Developer at Globex
2015 - 2018
Developed Python REST API services with Django.

Education

Master of Computer Science
University of Toronto
2013 - 2015

Skills
Go, Python, Docker, Kubernetes, PostgreSQL, AWS
`

func TestExtractName(t *testing.T) {
	if got := extractName(sampleResume); got != "John Carter" {
		t.Fatalf("expected John Carter, got %q", got)
	}

	if got := extractName("john@example.com\nsome long line of text that is not a name at all here"); got != "Unknown" {
		t.Fatalf("expected Unknown, got %q", got)
	}
}

func TestExtractContactInfo(t *testing.T) {
	info := extractContactInfo(sampleResume)

	if info.Email != "john.carter@example.com" {
		t.Fatalf("unexpected email: %q", info.Email)
	}
	if info.Phone == "" {
		t.Fatalf("expected phone to be found")
	}
	if info.LinkedIn != "https://linkedin.com/in/johncarter" {
		t.Fatalf("unexpected linkedin: %q", info.LinkedIn)
	}
}

func TestExtractSkills(t *testing.T) {
	skills := extractSkills(sampleResume)

	want := []string{"Go", "Python", "Docker", "Kubernetes", "PostgreSQL", "AWS"}
	for _, skill := range want {
		found := false
		for _, got := range skills {
			if got == skill {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expected skill %q in %v", skill, skills)
		}
	}

	for _, got := range skills {
		if got == "Rust" {
			t.Fatalf("Rust must not be detected")
		}
	}
}

func TestExtractEducation(t *testing.T) {
	education := extractEducation(sampleResume)
	if len(education) == 0 {
		t.Fatalf("expected at least one education entry")
	}

	first := education[0]
	if !strings.HasPrefix(first.Degree, "Master") {
		t.Fatalf("unexpected degree: %q", first.Degree)
	}
	if !strings.Contains(first.Institution, "University of Toronto") {
		t.Fatalf("unexpected institution: %q", first.Institution)
	}
	if first.Dates != "2013 - 2015" {
		t.Fatalf("unexpected dates: %q", first.Dates)
	}
}

func TestExtractExperience(t *testing.T) {
	experience := extractExperience(sampleResume)
	if len(experience) != 2 {
		t.Fatalf("expected 2 entries, got %d: %+v", len(experience), experience)
	}

	first := experience[0]
	if first.Position != "Senior Software Engineer" {
		t.Fatalf("unexpected position: %q", first.Position)
	}
	if first.Company != "Acme Corp" {
		t.Fatalf("unexpected company: %q", first.Company)
	}
	if first.Dates != "Jan 2019 - Present" {
		t.Fatalf("unexpected dates: %q", first.Dates)
	}
	if !strings.Contains(first.Description, "microservices") {
		t.Fatalf("unexpected description: %q", first.Description)
	}

	second := experience[1]
	if second.Position != "Backend Developer" {
		t.Fatalf("unexpected position: %q", second.Position)
	}
	if second.Company != "Globex" {
		t.Fatalf("unexpected company: %q", second.Company)
	}
}

func TestExtractExperienceNoSection(t *testing.T) {
	text := "Jane Doe\njane@example.com\nSkilled in Go and Python."
	if got := extractExperience(text); len(got) != 0 {
		t.Fatalf("expected no experience without a section header, got %+v", got)
	}
}
