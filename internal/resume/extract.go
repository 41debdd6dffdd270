package resume

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	emailRe    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phoneRe    = regexp.MustCompile(`\b(?:\+\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}\b`)
	linkedinRe = regexp.MustCompile(`linkedin\.com/in/[A-Za-z0-9_-]+`)

	degreeRe = regexp.MustCompile(`\b(Bachelor|Master|PhD|Doctorate|BSc|BA|MSc|MA|MBA|Associate|B\.S\.|M\.S\.|B\.A\.|M\.A\.|M\.B\.A\.|Ph\.D\.)(?:[ \t]+(?:of|in)[ \t]+[A-Za-z][A-Za-z ]*)?`)
	instRe   = regexp.MustCompile(`\b(?:University|College|Institute|School)(?:[ \t]+of)?[ \t]+[A-Z][A-Za-z ]*`)

	yearRangeRe = regexp.MustCompile(`\b(20\d{2})\s*[-–—]\s*(20\d{2}|Present|Current|Now)\b`)
	dateRangeRe = regexp.MustCompile(`(?i)((?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+\d{4}|\d{4})\s*(?:-|–|—|to)\s*((?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+\d{4}|\d{4}|Present|Current|Now)`)

	experienceHeaderRe = regexp.MustCompile(`(?im)^\s*(?:Work Experience|Professional Experience|Employment History|Work History|Experience)\s*$`)
	sectionHeaderRe    = regexp.MustCompile(`(?im)^\s*(?:Education|Skills|Projects|Awards|Publications|References|Languages|Contact)\s*$`)

	positionAtCompanyRe = regexp.MustCompile(`(?i)^(.+?)(?:\s+at\s+|\s*,\s*)(.+)$`)
)

// knownSkills is the dictionary used for keyword-based skill detection.
var knownSkills = []string{
	"Python", "JavaScript", "TypeScript", "Java", "C++", "C#", "Ruby", "Go", "Rust", "PHP",
	"React", "Angular", "Vue", "Node.js", "Express", "Django", "Flask", "Spring", "Ruby on Rails",
	"TensorFlow", "PyTorch", "Scikit-learn", "Pandas", "NumPy", "SQL", "NoSQL", "PostgreSQL",
	"MySQL", "MongoDB", "AWS", "Azure", "GCP", "Docker", "Kubernetes", "CI/CD", "Git", "Linux",
	"Machine Learning", "Deep Learning", "Data Science", "DevOps", "Agile", "Scrum",
	"REST API", "GraphQL", "Microservices", "Redux", "HTML", "CSS", "SASS", "LESS",
}

// extractName picks the first short capitalized line near the top of the text.
func extractName(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i, line := range lines {
		if i >= 10 {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		words := strings.Fields(line)
		if len(words) > 4 {
			continue
		}
		first := []rune(words[0])
		if !unicode.IsUpper(first[0]) {
			continue
		}
		// Contact lines are not names.
		if emailRe.MatchString(line) || linkedinRe.MatchString(line) {
			continue
		}
		return line
	}
	return "Unknown"
}

func extractContactInfo(text string) ContactInfo {
	info := ContactInfo{}
	if m := emailRe.FindString(text); m != "" {
		info.Email = m
	}
	if m := phoneRe.FindString(text); m != "" {
		info.Phone = m
	}
	if m := linkedinRe.FindString(text); m != "" {
		info.LinkedIn = "https://" + m
	}
	return info
}

func extractSkills(text string) []string {
	var found []string
	for _, skill := range knownSkills {
		pattern := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(skill) + `\b`)
		if pattern.MatchString(text) {
			found = append(found, skill)
		}
	}
	return found
}

func extractEducation(text string) []Education {
	var education []Education
	for _, match := range degreeRe.FindAllStringIndex(text, -1) {
		degree := strings.TrimSpace(text[match[0]:match[1]])

		// Look for an institution and dates in the surrounding chunk.
		start := match[0] - 100
		if start < 0 {
			start = 0
		}
		end := match[1] + 100
		if end > len(text) {
			end = len(text)
		}
		chunk := text[start:end]

		institution := strings.TrimSpace(instRe.FindString(chunk))
		if institution == "" {
			continue
		}

		education = append(education, Education{
			Degree:      degree,
			Institution: institution,
			Dates:       yearRangeRe.FindString(chunk),
		})
	}
	return education
}

// extractExperience isolates the work experience section and splits it into
// job blocks separated by blank lines.
func extractExperience(text string) []Experience {
	section := experienceSection(text)
	if section == "" {
		return nil
	}

	var experiences []Experience
	for _, block := range splitBlocks(section) {
		if exp, ok := parseJobBlock(block); ok {
			experiences = append(experiences, exp)
		}
	}
	return experiences
}

func experienceSection(text string) string {
	loc := experienceHeaderRe.FindStringIndex(text)
	if loc == nil {
		return ""
	}

	rest := text[loc[1]:]
	if next := sectionHeaderRe.FindStringIndex(rest); next != nil {
		rest = rest[:next[0]]
	}
	return strings.TrimSpace(rest)
}

func splitBlocks(section string) [][]string {
	var blocks [][]string
	var current []string

	for _, line := range strings.Split(section, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			if len(current) > 0 {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}
	return blocks
}

// parseJobBlock interprets one job entry: the date line anchors the split
// between the position/company header and the description.
func parseJobBlock(lines []string) (Experience, bool) {
	exp := Experience{Position: "N/A", Company: "N/A"}

	dateIdx := -1
	for i, line := range lines {
		if m := dateRangeRe.FindStringSubmatch(line); m != nil {
			exp.Dates = strings.TrimSpace(m[1]) + " - " + strings.TrimSpace(m[2])
			dateIdx = i

			// Company often shares the date line: "Acme | Jan 2020 - Dec 2022".
			before := strings.TrimSpace(strings.SplitN(line, m[0], 2)[0])
			before = strings.Trim(before, " |,-@")
			if before != "" && len(strings.Fields(before)) < 7 {
				exp.Company = before
			}

			after := strings.TrimSpace(line[strings.Index(line, m[0])+len(m[0]):])
			after = strings.Trim(after, " |,-@")
			after = strings.TrimPrefix(after, "at ")
			if exp.Company == "N/A" && after != "" && len(strings.Fields(after)) < 7 {
				exp.Company = strings.TrimSpace(after)
			}
			break
		}
	}

	var header []string
	var description []string
	switch {
	case dateIdx > 0:
		header = lines[:dateIdx]
		description = lines[dateIdx+1:]
	case dateIdx == 0:
		description = lines[1:]
	default:
		header = lines[:1]
		description = lines[1:]
	}

	if len(header) > 0 {
		if m := positionAtCompanyRe.FindStringSubmatch(header[0]); m != nil {
			exp.Position = strings.TrimSpace(m[1])
			if exp.Company == "N/A" {
				exp.Company = strings.TrimSpace(m[2])
			}
		} else {
			exp.Position = header[0]
		}
	}
	if len(header) > 1 && exp.Company == "N/A" && len(strings.Fields(header[1])) < 7 {
		exp.Company = header[1]
	}

	exp.Description = strings.Join(description, "\n")

	exp.Position = strings.Trim(exp.Position, ":, ")
	exp.Company = strings.Trim(exp.Company, ":, ")

	// Entries with neither a position nor a company are too sparse to keep.
	if exp.Position == "N/A" && exp.Company == "N/A" {
		return Experience{}, false
	}
	return exp, true
}
