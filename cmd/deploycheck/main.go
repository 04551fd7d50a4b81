// deploycheck validates the compose topologies against their env templates,
// the production contract, the CI workflow and the Dockerfile build context.
package main

import (
	"Keyo/internal/deployment"
	"Keyo/internal/logging"
	"flag"
	"os"
)

func main() {
	var dir string
	var workflowPath string
	var contextDir string
	flag.StringVar(&dir, "dir", "deploy", "The directory holding the compose files and env templates.")
	flag.StringVar(&workflowPath, "workflow", deployment.WorkflowFile, "The CI workflow to check. Empty skips it.")
	flag.StringVar(&contextDir, "context", ".", "The docker build context holding the Dockerfile. Empty skips it.")
	flag.Parse()

	logging.Init()
	defer logging.Close()

	report, err := deployment.CheckAll(dir)
	if err != nil {
		logging.Logger.Fatalf("checking deployment: %v", err)
	}

	if workflowPath != "" {
		workflow, err := deployment.LoadWorkflow(workflowPath)
		if err != nil {
			logging.Logger.Fatalf("checking workflow: %v", err)
		}
		report.Merge(deployment.ValidateWorkflow(workflow))
	}

	if contextDir != "" {
		dockerReport, err := deployment.CheckDockerfile(contextDir)
		if err != nil {
			logging.Logger.Fatalf("checking dockerfile: %v", err)
		}
		report.Merge(dockerReport)
	}

	if !report.Ok() {
		for _, problem := range report.Problems {
			logging.Logger.Error(problem.String())
		}
		logging.Logger.Errorf("%d problems found", len(report.Problems))
		logging.Close()
		os.Exit(1)
	}

	logging.Logger.Info("deployment files are consistent")
}
