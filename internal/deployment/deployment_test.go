package deployment

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

const repositoryRoot = "../.."

type DeploymentSuite struct {
	suite.Suite
}

func TestDeploymentSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(DeploymentSuite))
}

func (s *DeploymentSuite) messages(report Report) string {
	return report.Error()
}

func (s *DeploymentSuite) parse(compose string) *ComposeFile {
	parsed, err := ParseCompose([]byte(compose))
	s.Require().NoError(err)
	return parsed
}

func (s *DeploymentSuite) template(content string) EnvTemplate {
	template, err := ParseEnvTemplate(content)
	s.Require().NoError(err)
	return template
}

const validCompose = `
services:
  redis:
    image: redis:7-alpine
    restart: unless-stopped
    healthcheck:
      test: ["CMD", "redis-cli", "ping"]
  migrate:
    image: keyo:${TAG:-dev}
    command: ["/app/migrate", "-environment=DEVELOPMENT"]
    env_file: env/dev.env
    restart: "no"
    networks: [backend-network]
  api:
    image: keyo:${TAG:-dev}
    command: ["/app/api", "-environment=DEVELOPMENT"]
    env_file: env/dev.env
    restart: unless-stopped
    environment:
      PUBLIC_URL: ${PUBLIC_URL}
    depends_on:
      migrate:
        condition: service_completed_successfully
      redis:
        condition: service_healthy
    networks: [backend-network]
  worker:
    image: keyo:${TAG:-dev}
    command: ["/app/worker", "-environment=DEVELOPMENT"]
    env_file: env/dev.env
    restart: unless-stopped
    depends_on:
      migrate:
        condition: service_completed_successfully
      redis:
        condition: service_healthy
    networks: [backend-network]
`

func (s *DeploymentSuite) TestRepositoryTopologiesAreConsistent() {
	// act
	report, err := CheckAll(filepath.Join(repositoryRoot, "deploy"))

	// assert
	s.Require().NoError(err)
	s.True(report.Ok(), s.messages(report))
}

func (s *DeploymentSuite) TestRepositoryWorkflow() {
	// arrange
	workflow, err := LoadWorkflow(filepath.Join(repositoryRoot, WorkflowFile))
	s.Require().NoError(err)

	// act
	report := ValidateWorkflow(workflow)

	// assert
	s.True(report.Ok(), s.messages(report))
}

func (s *DeploymentSuite) TestFindVariables() {
	testCases := []struct {
		value    string
		expected []VariableRef
	}{
		{"${API_HOST}", []VariableRef{{Name: "API_HOST"}}},
		{"keyo:${TAG:-latest}", []VariableRef{{Name: "TAG", Optional: true}}},
		{"${TAG-latest}", []VariableRef{{Name: "TAG", Optional: true}}},
		{"${SECRET:?must be set}", []VariableRef{{Name: "SECRET"}}},
		{"$HOME/logs", []VariableRef{{Name: "HOME"}}},
		{"pg_isready -U $${POSTGRES_USER}", nil},
		{"no variables", nil},
	}

	for _, testCase := range testCases {
		s.Run(testCase.value, func() {
			// act
			refs := FindVariables(testCase.value)

			// assert
			s.Equal(testCase.expected, refs)
		})
	}
}

func (s *DeploymentSuite) TestValidComposeHasNoProblems() {
	// arrange
	compose := s.parse(validCompose)
	template := s.template("PUBLIC_URL=http://localhost:8000\n")

	// act
	report := ValidateTarget(Development, compose, template)

	// assert
	s.True(report.Ok(), s.messages(report))
}

func (s *DeploymentSuite) TestVariableMissingFromTemplate() {
	// arrange
	compose := s.parse(validCompose)
	template := s.template("OTHER=1\n")

	// act
	report := ValidateTarget(Development, compose, template)

	// assert
	s.Require().Len(report.Problems, 1)
	s.Equal("api", report.Problems[0].Service)
	s.Contains(report.Problems[0].Message, "${PUBLIC_URL}")
}

func (s *DeploymentSuite) TestLongRunningServiceMustRestart() {
	// arrange
	compose := s.parse(strings.Replace(validCompose, `    restart: unless-stopped
    depends_on:
      migrate:
        condition: service_completed_successfully
      redis:
        condition: service_healthy
    networks: [backend-network]
`, `    restart: always
    depends_on:
      migrate:
        condition: service_completed_successfully
      redis:
        condition: service_healthy
    networks: [backend-network]
`, 1))
	template := s.template("PUBLIC_URL=x\n")

	// act
	report := ValidateTarget(Development, compose, template)

	// assert
	s.Require().Len(report.Problems, 1)
	s.Equal("worker", report.Problems[0].Service)
	s.Contains(report.Problems[0].Message, RestartUnlessStopped)
}

func (s *DeploymentSuite) TestRedisDependencyMustWaitForHealth() {
	// arrange
	compose := s.parse(validCompose)
	worker := compose.Services["worker"]
	worker.DependsOn["redis"] = Dependency{Condition: ConditionServiceStarted}
	compose.Services["worker"] = worker
	template := s.template("PUBLIC_URL=x\n")

	// act
	report := ValidateTarget(Development, compose, template)

	// assert
	s.Require().Len(report.Problems, 1)
	s.Contains(report.Problems[0].Message, ConditionServiceHealthy)
}

func (s *DeploymentSuite) TestShortDependsOnMeansStarted() {
	// arrange
	compose := s.parse(`
services:
  proxy:
    image: nginx
  companion:
    image: acme
    depends_on: [proxy]
`)

	// act
	dependency := compose.Services["companion"].DependsOn["proxy"]

	// assert
	s.Equal(ConditionServiceStarted, dependency.Condition)
}

func (s *DeploymentSuite) TestEnvironmentListForm() {
	// arrange
	compose := s.parse(`
services:
  api:
    environment:
      - VIRTUAL_HOST=${API_HOST}
      - VIRTUAL_PORT=8000
`)

	// act
	api := compose.Services["api"]

	// assert
	s.Equal("8000", api.Environment["VIRTUAL_PORT"])
	s.Equal([]VariableRef{{Name: "API_HOST"}}, api.Variables)
}

func (s *DeploymentSuite) TestWrongEnvironmentFlag() {
	// arrange
	compose := s.parse(strings.ReplaceAll(validCompose, `["/app/api", "-environment=DEVELOPMENT"]`, `["/app/api"]`))
	template := s.template("PUBLIC_URL=x\n")

	// act
	report := ValidateTarget(Development, compose, template)

	// assert
	s.Require().Len(report.Problems, 1)
	s.Contains(report.Problems[0].Message, "-environment=DEVELOPMENT")
}

func (s *DeploymentSuite) TestProductionContract() {
	// arrange
	template := s.template(`
KEYO_SECURITY_SSLREDIRECT=false
KEYO_SECURITY_HSTSSECONDS=0
`)
	contract := []ContractEntry{
		{Key: "KEYO_SECURITY_SSLREDIRECT", Validate: equals("true")},
		{Key: "KEYO_SECURITY_HSTSSECONDS", Validate: positiveInt},
		{Key: "KEYO_AUTH_JWTSIGNINGKEY", Description: "signing key"},
	}

	// act
	problems := CheckContract("prod.env.example", template, contract)

	// assert
	s.Require().Len(problems, 3)
	s.Contains(problems[0].Message, `must be "true"`)
	s.Contains(problems[1].Message, "positive")
	s.Contains(problems[2].Message, "missing KEYO_AUTH_JWTSIGNINGKEY")
}

func (s *DeploymentSuite) TestProductionTemplateCarriesPlatformSettings() {
	// arrange
	template, err := LoadEnvTemplate(filepath.Join(repositoryRoot, "deploy", Production.EnvTemplate))
	s.Require().NoError(err)

	// act
	problems := CheckContract(Production.EnvTemplate, template, PlatformContract)

	// assert
	s.Empty(problems)
	for _, key := range []string{"TWILIO_ACCOUNT_SID", "MSG91_AUTH_KEY", "AWS_STORAGE_BUCKET_NAME", "RAZORPAY_WEBHOOK_SECRET", "MEDIA_ROOT"} {
		s.True(template.Has(key), key)
	}
}

func (s *DeploymentSuite) TestMissingPlatformSettingFailsProduction() {
	// arrange
	template := s.template("TWILIO_ACCOUNT_SID=x\n")

	// act
	problems := CheckContract("prod.env.example", template, PlatformContract)

	// assert
	s.Len(problems, len(PlatformContract)-1)
	s.Contains(problems[0].Message, "missing TWILIO_AUTH_TOKEN")
}

func (s *DeploymentSuite) TestProxiedTargetNeedsProxy() {
	// arrange
	compose := s.parse(strings.ReplaceAll(validCompose, "DEVELOPMENT", "STAGING"))
	template := s.template("PUBLIC_URL=x\n")
	target := Staging
	target.EnvFile = "env/dev.env"

	// act
	report := ValidateTarget(target, compose, template)

	// assert
	text := s.messages(report)
	s.Contains(text, "missing service nginx-proxy")
	s.Contains(text, "missing service acme-companion")
	s.Contains(text, "missing VIRTUAL_HOST")
	s.Contains(text, "must join proxy-network")
}

func (s *DeploymentSuite) TestWorkflowProblems() {
	// arrange
	workflow, err := ParseWorkflow([]byte(`
on:
  push:
    branches: [main]
jobs:
  lint:
    steps:
      - uses: golangci/golangci-lint-action@v8
  test:
    steps:
      - name: tests
        run: go test ./...
        continue-on-error: true
`))
	s.Require().NoError(err)

	// act
	report := ValidateWorkflow(workflow)

	// assert
	text := s.messages(report)
	s.Contains(text, "push trigger misses branch develop")
	s.Contains(text, "missing pull_request trigger")
	s.Contains(text, "missing scheduled run")
	s.Contains(text, "must need lint")
	s.Contains(text, "must provision a postgres service")
	s.Contains(text, `step "tests" must not continue on error`)
}

func (s *DeploymentSuite) TestRepositoryDockerfile() {
	// act
	report, err := CheckDockerfile(repositoryRoot)

	// assert
	s.Require().NoError(err)
	s.True(report.Ok(), s.messages(report))
}

func (s *DeploymentSuite) TestDockerfileCopyNeedsSourceInContext() {
	// arrange
	dockerfile := `FROM golang:1.25-alpine AS build
# dependencies first
COPY go.mod go.sum ./
COPY --from=build /out/ /app/
COPY cmd \
     internal ./
`
	inContext := func(source string) bool {
		return source != "go.sum"
	}

	// act
	report := ValidateDockerfile(DockerfileName, dockerfile, inContext)

	// assert
	s.Require().Len(report.Problems, 1)
	s.Contains(report.Problems[0].Message, "go.sum")
}

func (s *DeploymentSuite) TestDockerfileWildcardSourceIsOptional() {
	// act
	report := ValidateDockerfile(DockerfileName, "COPY go.mod go.sum* ./\n", func(source string) bool {
		return source == "go.mod"
	})

	// assert
	s.True(report.Ok(), s.messages(report))
}
