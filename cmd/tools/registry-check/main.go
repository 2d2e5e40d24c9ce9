// cmd/tools/registry-check/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"career-compass/internal/common/validation"
	"career-compass/pkg/registry"
)

var registryPath string

func main() {
	listCmd := flag.NewFlagSet("list", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	checkCmd := flag.NewFlagSet("check-input", flag.ExitOnError)

	for _, fs := range []*flag.FlagSet{listCmd, validateCmd, checkCmd} {
		fs.StringVar(&registryPath, "path", "", "Path to registry file (defaults to the built-in registry)")
	}
	taskType := checkCmd.String("taskType", "", "Task type whose input schema is used")
	variables := checkCmd.String("vars", "", "Job variables as a JSON object")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "list":
		listCmd.Parse(os.Args[2:])
		reg := mustLoad()
		for _, a := range reg.Activities {
			fmt.Printf("%-18s %-14s %-12s retries=%d timeout=%s\n", a.TaskType, a.Category, a.ImplementationStatus, a.Retries, a.Timeout)
		}

	case "validate":
		validateCmd.Parse(os.Args[2:])
		if err := validateRegistry(mustLoad()); err != nil {
			fmt.Printf("Registry validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Registry validation passed.")

	case "check-input":
		checkCmd.Parse(os.Args[2:])
		if *taskType == "" || *variables == "" {
			fmt.Println("Error: taskType and vars are required for check-input.")
			checkCmd.Usage()
			os.Exit(1)
		}
		v, err := validation.NewSchemaValidator(mustLoad())
		if err != nil {
			fmt.Printf("Error compiling schemas: %v\n", err)
			os.Exit(1)
		}
		result := v.ValidateInput(*taskType, *variables)
		if !result.Valid {
			fmt.Printf("Input rejected: %s\n", result.String())
			os.Exit(1)
		}
		fmt.Printf("Input accepted by %s.\n", *taskType)

	case "help":
		fallthrough
	default:
		help()
	}
}

func mustLoad() *registry.ActivityRegistry {
	var (
		reg *registry.ActivityRegistry
		err error
	)
	if registryPath == "" {
		reg, err = registry.Default()
	} else {
		reg, err = registry.LoadRegistry(registryPath)
	}
	if err != nil {
		fmt.Printf("Error loading registry: %v\n", err)
		os.Exit(1)
	}
	return reg
}

// validateRegistry checks required fields and that every input schema compiles.
func validateRegistry(reg *registry.ActivityRegistry) error {
	if len(reg.Activities) == 0 {
		return fmt.Errorf("registry contains no activities")
	}

	ids := make(map[string]bool)
	for _, activity := range reg.Activities {
		if activity.ID == "" {
			return fmt.Errorf("activity missing required field: ID")
		}
		if ids[activity.ID] {
			return fmt.Errorf("duplicate activity ID: %s", activity.ID)
		}
		ids[activity.ID] = true

		if activity.DisplayName == "" {
			return fmt.Errorf("activity %s missing required field: DisplayName", activity.ID)
		}
		if activity.Category == "" {
			return fmt.Errorf("activity %s missing required field: Category", activity.ID)
		}
		if len(activity.InputSchema) == 0 {
			return fmt.Errorf("activity %s has no inputSchema", activity.ID)
		}
		if _, err := activity.TimeoutDuration(); err != nil {
			return err
		}
	}

	if _, err := validation.NewSchemaValidator(reg); err != nil {
		return err
	}

	fmt.Printf("Found %d activities: %s\n", len(reg.Activities), strings.Join(reg.TaskTypes(), ", "))
	return nil
}

const usage = `
Usage: registry-check <command> [flags]

Commands:
  list         List registered activities
  validate     Validate the registry and compile its input schemas
  check-input  Validate job variables against an activity's input schema
  help         Show this help message

Examples:
  registry-check validate
  registry-check list -path configs/activity-registry.json
  registry-check check-input -taskType save-assessment -vars '{"userId":7,"assessmentType":"aptitude","responses":[]}'
`

func help() {
	fmt.Print(usage)
}
