package deployment

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DockerfileName is the image build file at the repository root.
const DockerfileName = "Dockerfile"

// ValidateDockerfile reports COPY sources that are missing from the build
// context. Wildcard sources may match nothing and copies between stages are
// skipped.
func ValidateDockerfile(file string, content string, inContext func(source string) bool) Report {
	var report Report

	for _, instruction := range dockerInstructions(content) {
		fields := strings.Fields(instruction)
		if len(fields) < 3 || !strings.EqualFold(fields[0], "COPY") {
			continue
		}

		args := fields[1:]
		fromStage := false
		for len(args) > 0 && strings.HasPrefix(args[0], "--") {
			if strings.HasPrefix(args[0], "--from") {
				fromStage = true
			}
			args = args[1:]
		}
		if fromStage || len(args) < 2 || strings.HasPrefix(args[0], "[") {
			continue
		}

		for _, source := range args[:len(args)-1] {
			if source == "." || strings.ContainsAny(source, "*?[") {
				continue
			}
			if !inContext(source) {
				report.add(file, "", "COPY source %s is not in the build context", source)
			}
		}
	}

	return report
}

// CheckDockerfile validates the Dockerfile against the directory it builds.
func CheckDockerfile(root string) (Report, error) {
	path := filepath.Join(root, DockerfileName)
	content, err := os.ReadFile(path)
	if err != nil {
		return Report{}, fmt.Errorf("reading %s: %w", path, err)
	}

	return ValidateDockerfile(DockerfileName, string(content), func(source string) bool {
		return exists(filepath.Join(root, source))
	}), nil
}

// dockerInstructions joins continuation lines and drops comments.
func dockerInstructions(content string) []string {
	var instructions []string
	var current strings.Builder

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if current.Len() == 0 && (trimmed == "" || strings.HasPrefix(trimmed, "#")) {
			continue
		}

		if body, ok := strings.CutSuffix(trimmed, "\\"); ok {
			current.WriteString(body)
			current.WriteString(" ")
			continue
		}

		current.WriteString(trimmed)
		instructions = append(instructions, current.String())
		current.Reset()
	}

	if current.Len() > 0 {
		instructions = append(instructions, current.String())
	}
	return instructions
}
