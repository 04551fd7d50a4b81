package deployment

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

const WorkflowFile = ".github/workflows/ci.yml"

// CiBranches are the branches whose pushes and pull requests run the pipeline.
var CiBranches = []string{"main", "develop"}

// CiTestEnv lists the dummy settings the test job has to provide.
var CiTestEnv = []string{
	"KEYO_DATABASE_POSTGRES_HOST",
	"KEYO_DATABASE_POSTGRES_USERNAME",
	"KEYO_DATABASE_POSTGRES_PASSWORD",
	"KEYO_AUTH_JWTSIGNINGKEY",
	"KEYO_AUTH_SERVICEKEY",
	"KEYO_MAIL_MODE",
	"KEYO_PUSH_MODE",
	"KEYO_PUSH_PROJECTID",
	"KEYO_SERVER_ALLOWEDORIGINS",
	"TWILIO_ACCOUNT_SID",
	"TWILIO_AUTH_TOKEN",
	"MSG91_AUTH_KEY",
	"AWS_ACCESS_KEY_ID",
	"AWS_SECRET_ACCESS_KEY",
	"AWS_STORAGE_BUCKET_NAME",
	"RAZORPAY_KEY_ID",
	"RAZORPAY_KEY_SECRET",
	"RAZORPAY_WEBHOOK_SECRET",
}

type BranchFilter struct {
	Branches []string `yaml:"branches"`
}

type Schedule struct {
	Cron string `yaml:"cron"`
}

type Triggers struct {
	Push        *BranchFilter `yaml:"push"`
	PullRequest *BranchFilter `yaml:"pull_request"`
	Schedule    []Schedule    `yaml:"schedule"`
}

type Step struct {
	Name            string         `yaml:"name"`
	Uses            string         `yaml:"uses"`
	Run             string         `yaml:"run"`
	With            map[string]any `yaml:"with"`
	ContinueOnError bool           `yaml:"continue-on-error"`
}

type ServiceContainer struct {
	Image string `yaml:"image"`
}

type Job struct {
	Name            string                      `yaml:"name"`
	Needs           StringList                  `yaml:"needs"`
	Env             map[string]any              `yaml:"env"`
	Services        map[string]ServiceContainer `yaml:"services"`
	Steps           []Step                      `yaml:"steps"`
	ContinueOnError bool                        `yaml:"continue-on-error"`
}

type Workflow struct {
	Name string         `yaml:"name"`
	On   Triggers       `yaml:"on"`
	Jobs map[string]Job `yaml:"jobs"`
}

func ParseWorkflow(data []byte) (*Workflow, error) {
	var workflow Workflow
	err := yaml.Unmarshal(data, &workflow)
	if err != nil {
		return nil, fmt.Errorf("parsing workflow: %w", err)
	}
	return &workflow, nil
}

func LoadWorkflow(path string) (*Workflow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseWorkflow(data)
}

func (j Job) runs(command string) bool {
	for _, step := range j.Steps {
		if strings.Contains(step.Run, command) {
			return true
		}
	}
	return false
}

func (j Job) uses(action string) bool {
	for _, step := range j.Steps {
		if strings.HasPrefix(step.Uses, action) {
			return true
		}
	}
	return false
}

// ValidateWorkflow checks the triggers, the lint-then-test ordering and that
// no failure is tolerated.
func ValidateWorkflow(workflow *Workflow) Report {
	var report Report
	file := WorkflowFile

	for trigger, filter := range map[string]*BranchFilter{"push": workflow.On.Push, "pull_request": workflow.On.PullRequest} {
		if filter == nil {
			report.add(file, "", "missing %s trigger", trigger)
			continue
		}
		for _, branch := range CiBranches {
			if !slices.Contains(filter.Branches, branch) {
				report.add(file, "", "%s trigger misses branch %s", trigger, branch)
			}
		}
	}

	if len(workflow.On.Schedule) == 0 {
		report.add(file, "", "missing scheduled run")
	}

	lint, hasLint := workflow.Jobs["lint"]
	test, hasTest := workflow.Jobs["test"]
	if !hasLint {
		report.add(file, "", "missing lint job")
	}
	if !hasTest {
		report.add(file, "", "missing test job")
	}

	if hasLint && !lint.uses("golangci/golangci-lint-action") {
		report.add(file, "lint", "must run golangci-lint")
	}

	if hasTest {
		if !slices.Contains(test.Needs, "lint") {
			report.add(file, "test", "must need lint")
		}
		if !test.runs("go test") {
			report.add(file, "test", "must run go test")
		}
		if _, ok := test.Services["postgres"]; !ok {
			report.add(file, "test", "must provision a postgres service")
		}
		for _, key := range CiTestEnv {
			if _, ok := test.Env[key]; !ok {
				report.add(file, "test", "missing env %s", key)
			}
		}
	}

	for name, job := range workflow.Jobs {
		if job.ContinueOnError {
			report.add(file, name, "must not continue on error")
		}
		for _, step := range job.Steps {
			if step.ContinueOnError {
				report.add(file, name, "step %q must not continue on error", step.Name)
			}
		}
	}

	return report
}
