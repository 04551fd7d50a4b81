package deployment

import (
	"fmt"
	"path"
	"sort"
	"strings"
)

type Problem struct {
	File    string
	Service string
	Message string
}

func (p Problem) String() string {
	if p.Service == "" {
		return fmt.Sprintf("%s: %s", p.File, p.Message)
	}
	return fmt.Sprintf("%s: service %s: %s", p.File, p.Service, p.Message)
}

type Report struct {
	Problems []Problem
}

func (r *Report) add(file string, service string, format string, args ...any) {
	r.Problems = append(r.Problems, Problem{
		File:    file,
		Service: service,
		Message: fmt.Sprintf(format, args...),
	})
}

func (r *Report) Merge(other Report) {
	r.Problems = append(r.Problems, other.Problems...)
}

func (r Report) Ok() bool {
	return len(r.Problems) == 0
}

func (r Report) Error() string {
	lines := make([]string, 0, len(r.Problems))
	for _, problem := range r.Problems {
		lines = append(lines, problem.String())
	}
	return strings.Join(lines, "\n")
}

const (
	redisService       = "redis"
	migrateService     = "migrate"
	apiService         = "api"
	workerService      = "worker"
	proxyService       = "nginx-proxy"
	acmeService        = "acme-companion"
	proxyNetwork       = "proxy-network"
	backendNetwork     = "backend-network"
	apiPort            = "8000"
	environmentFlagFmt = "-environment=%s"
)

// ValidateTarget checks a parsed compose file against its env template.
func ValidateTarget(target Target, compose *ComposeFile, template EnvTemplate) Report {
	var report Report
	file := target.ComposeFile

	for _, required := range []string{migrateService, apiService, workerService, redisService} {
		if _, ok := compose.Services[required]; !ok {
			report.add(file, "", "missing service %s", required)
		}
	}

	if redis, ok := compose.Services[redisService]; ok {
		if redis.Healthcheck == nil || !strings.Contains(strings.Join(redis.Healthcheck.Test, " "), "redis-cli ping") {
			report.add(file, redisService, "needs a redis-cli ping healthcheck")
		}
	}

	for _, name := range compose.ServiceNames() {
		service := compose.Services[name]

		for _, ref := range service.Variables {
			if !ref.Optional && !template.Has(ref.Name) {
				report.add(file, name, "references ${%s} which %s does not define", ref.Name, target.EnvTemplate)
			}
		}

		if compose.IsOneShot(name) {
			if service.Restart != "" && service.Restart != "no" {
				report.add(file, name, "runs once but restarts %q", service.Restart)
			}
		} else if service.Restart != RestartUnlessStopped {
			report.add(file, name, "must restart %s, restarts %q", RestartUnlessStopped, service.Restart)
		}

		for dependencyName, dependency := range service.DependsOn {
			switch dependencyName {
			case redisService:
				if dependency.Condition != ConditionServiceHealthy {
					report.add(file, name, "must wait for redis to be %s", ConditionServiceHealthy)
				}
			case migrateService:
				if dependency.Condition != ConditionServiceCompleted {
					report.add(file, name, "must wait for migrate to be %s", ConditionServiceCompleted)
				}
			}
		}

		if isKeyoService(name) {
			report.Merge(validateKeyoService(target, name, service))
		}
	}

	for _, name := range []string{apiService, workerService} {
		service, ok := compose.Services[name]
		if !ok {
			continue
		}
		if _, ok := service.DependsOn[migrateService]; !ok {
			report.add(file, name, "must wait for migrate")
		}
		if _, ok := service.DependsOn[redisService]; !ok {
			report.add(file, name, "must wait for redis")
		}
	}

	if target.Proxied {
		report.Merge(validateProxy(target, compose))
	}

	if target.Production {
		report.Problems = append(report.Problems, CheckContract(target.EnvTemplate, template, ProductionContract)...)
		report.Problems = append(report.Problems, CheckContract(target.EnvTemplate, template, PlatformContract)...)
	}

	return report
}

func isKeyoService(name string) bool {
	return name == migrateService || name == apiService || name == workerService
}

func validateKeyoService(target Target, name string, service Service) Report {
	var report Report
	file := target.ComposeFile

	envFile := path.Clean(target.EnvFile)
	found := false
	for _, f := range service.EnvFile {
		if path.Clean(f) == envFile {
			found = true
		}
	}
	if !found {
		report.add(file, name, "must load env_file %s", target.EnvFile)
	}

	flag := fmt.Sprintf(environmentFlagFmt, target.Environment)
	if !strings.Contains(strings.Join(service.Command, " "), flag) {
		report.add(file, name, "must run with %s", flag)
	}

	if !service.Networks.Contains(backendNetwork) {
		report.add(file, name, "must join %s", backendNetwork)
	}

	return report
}

func validateProxy(target Target, compose *ComposeFile) Report {
	var report Report
	file := target.ComposeFile

	for _, required := range []string{proxyService, acmeService} {
		if _, ok := compose.Services[required]; !ok {
			report.add(file, "", "missing service %s", required)
		}
	}

	api, ok := compose.Services[apiService]
	if !ok {
		return report
	}

	for _, key := range []string{"VIRTUAL_HOST", "VIRTUAL_PORT", "LETSENCRYPT_HOST"} {
		if _, ok := api.Environment[key]; !ok {
			report.add(file, apiService, "missing %s", key)
		}
	}
	if port, ok := api.Environment["VIRTUAL_PORT"]; ok && port != apiPort {
		report.add(file, apiService, "VIRTUAL_PORT must be %s", apiPort)
	}

	if !api.Networks.Contains(proxyNetwork) {
		report.add(file, apiService, "must join %s", proxyNetwork)
	}
	if len(api.Ports) > 0 {
		report.add(file, apiService, "must not publish ports behind the proxy")
	}

	for _, network := range []string{proxyNetwork, backendNetwork} {
		if !compose.Networks.Contains(network) {
			report.add(file, "", "missing network %s", network)
		}
	}

	return report
}

// CheckTarget loads and validates one topology from the deploy directory.
func CheckTarget(dir string, target Target) (Report, error) {
	compose, err := LoadCompose(join(dir, target.ComposeFile))
	if err != nil {
		return Report{}, err
	}

	template, err := LoadEnvTemplate(join(dir, target.EnvTemplate))
	if err != nil {
		return Report{}, err
	}

	return ValidateTarget(target, compose, template), nil
}

// CheckAll validates every topology and checks that the templates share the
// application settings.
func CheckAll(dir string) (Report, error) {
	var report Report
	templates := make(map[string]EnvTemplate)

	for _, target := range Targets() {
		targetReport, err := CheckTarget(dir, target)
		if err != nil {
			return Report{}, err
		}
		report.Merge(targetReport)

		template, err := LoadEnvTemplate(join(dir, target.EnvTemplate))
		if err != nil {
			return Report{}, err
		}
		templates[target.Name] = template

		if exists(join(dir, target.EnvFile)) {
			envFile, err := LoadEnvTemplate(join(dir, target.EnvFile))
			if err != nil {
				return Report{}, err
			}
			for _, key := range missingKeys(template, envFile) {
				report.add(target.EnvFile, "", "missing %s from %s", key, target.EnvTemplate)
			}
		}
	}

	prod := templates[Production.Name]
	for _, target := range []Target{Development, Staging} {
		for _, key := range missingKeys(prod.keysWithPrefix("KEYO_"), templates[target.Name]) {
			report.add(target.EnvTemplate, "", "missing %s which %s defines", key, Production.EnvTemplate)
		}
	}

	return report, nil
}

func (t EnvTemplate) keysWithPrefix(prefix string) EnvTemplate {
	result := make(EnvTemplate)
	for _, key := range t.Keys(prefix) {
		result[key] = t[key]
	}
	return result
}

func missingKeys(expected EnvTemplate, actual EnvTemplate) []string {
	var missing []string
	for key := range expected {
		if !actual.Has(key) {
			missing = append(missing, key)
		}
	}
	sort.Strings(missing)
	return missing
}
