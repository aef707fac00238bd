package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ReadResumeText loads resume text from a plain-text or markdown file.
// PDF and DOCX extraction happens upstream of this tool; pass the extracted
// text. Binary formats are rejected with a pointer to that workflow.
func ReadResumeText(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".txt", ".md", ".text", "":
	case ".pdf", ".docx", ".doc":
		return "", fmt.Errorf("%s resumes are not read directly: extract the text first (e.g. pdftotext) and pass the .txt file", ext)
	default:
		return "", fmt.Errorf("unsupported resume file type %q", ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read resume: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return "", fmt.Errorf("resume file %s is empty", path)
	}
	return string(data), nil
}
