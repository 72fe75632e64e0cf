// formval-cli validates a set of field values against a declarative rule
// set, loaded from a YAML declaration or derived from an OpenAPI operation.
// Values come from name=value arguments or, with -interactive, from survey
// prompts that re-validate on every answer.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"go.uber.org/zap"

	formval "github.com/terrafusion/go-formval"
	"github.com/terrafusion/go-formval/pkg/model"
	"github.com/terrafusion/go-formval/pkg/openapi"
	"github.com/terrafusion/go-formval/pkg/rules"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := flag.NewFlagSet("formval-cli", flag.ContinueOnError)
	rulesPath := flags.String("rules", "", "YAML rule-set declaration")
	openapiPath := flags.String("openapi", "", "OpenAPI document to derive the form from")
	operation := flags.String("operation", "", "operation ID to derive (with -openapi)")
	formID := flags.String("form", "form", "form identifier")
	interactive := flags.Bool("interactive", false, "prompt for values instead of reading arguments")
	jsonOut := flags.Bool("json", false, "emit the validation report as JSON")
	verbose := flags.Bool("verbose", false, "log engine diagnostics")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	logger := zap.NewNop()
	if *verbose {
		dev, err := zap.NewDevelopment()
		if err == nil {
			logger = dev
		}
	}
	defer logger.Sync()

	doc, set, err := buildForm(*rulesPath, *openapiPath, *operation, *formID, flags.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "formval-cli: %v\n", err)
		return 2
	}

	page, err := formval.NewPage(doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "formval-cli: %v\n", err)
		return 2
	}
	system := formval.New(
		formval.WithPage(page),
		formval.WithLogger(logger),
	)
	session := system.Register(doc.ID(), nil, set)
	if session == nil {
		fmt.Fprintln(os.Stderr, "formval-cli: registration failed; run with -verbose for details")
		return 2
	}

	if *interactive {
		if err := promptValues(session); err != nil {
			fmt.Fprintf(os.Stderr, "formval-cli: %v\n", err)
			return 2
		}
	} else if err := applyArgs(doc, flags.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "formval-cli: %v\n", err)
		return 2
	}

	result := session.HandleSubmit()
	if err := printReport(os.Stdout, doc, result, *jsonOut); err != nil {
		fmt.Fprintf(os.Stderr, "formval-cli: %v\n", err)
		return 2
	}
	if !result.Valid {
		return 1
	}
	return 0
}

// buildForm resolves the document and rule set from either source. Without
// an OpenAPI document the fields are inferred from the rule set and any
// name=value arguments.
func buildForm(rulesPath, openapiPath, operation, formID string, args []string) (*model.Document, rules.RuleSet, error) {
	if openapiPath != "" {
		raw, err := os.ReadFile(openapiPath)
		if err != nil {
			return nil, nil, fmt.Errorf("read OpenAPI document: %w", err)
		}
		if operation == "" {
			return nil, nil, errors.New("-operation is required with -openapi")
		}
		deriver := openapi.New(openapi.Options{})
		derivation, err := deriver.Derive(context.Background(), raw, operation)
		if err != nil {
			return nil, nil, err
		}
		return derivation.Document, derivation.Rules, nil
	}

	if rulesPath == "" {
		return nil, nil, errors.New("one of -rules or -openapi is required")
	}
	raw, err := os.ReadFile(rulesPath)
	if err != nil {
		return nil, nil, fmt.Errorf("read rule set: %w", err)
	}
	set, err := rules.ParseYAML(raw)
	if err != nil {
		return nil, nil, err
	}

	doc, err := model.NewDocument(formID, inferFields(set, args)...)
	if err != nil {
		return nil, nil, err
	}
	return doc, set, nil
}

// inferFields declares one text field per ruled field plus any argument-only
// names, sorted for stable order.
func inferFields(set rules.RuleSet, args []string) []model.Field {
	seen := make(map[string]bool)
	var names []string
	for _, name := range set.FieldNames() {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for _, arg := range args {
		name, _, ok := strings.Cut(arg, "=")
		if ok && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)

	fields := make([]model.Field, 0, len(names))
	for _, name := range names {
		fields = append(fields, model.Field{Name: name})
	}
	return fields
}

func applyArgs(doc *model.Document, args []string) error {
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("argument %q is not name=value", arg)
		}
		if !doc.SetValue(name, model.TextValue(value)) {
			return fmt.Errorf("form declares no field %q", name)
		}
	}
	return nil
}

// promptValues asks for every field in declaration order. Each answer is
// validated immediately; survey re-prompts until the field passes.
func promptValues(session *formval.Session) error {
	doc := session.Document()
	for _, field := range doc.Fields() {
		name := field.Name

		switch field.Kind {
		case model.KindCheckbox:
			var checked bool
			prompt := &survey.Confirm{Message: field.DisplayLabel() + "?"}
			if err := survey.AskOne(prompt, &checked, survey.WithValidator(checkboxValidator(session, name))); err != nil {
				return err
			}
			session.HandleInput(name, model.CheckboxValue(checked))
		default:
			var answer string
			prompt := &survey.Input{Message: field.DisplayLabel() + ":"}
			if err := survey.AskOne(prompt, &answer, survey.WithValidator(textValidator(session, name))); err != nil {
				return err
			}
			session.HandleInput(name, model.TextValue(answer))
		}
	}
	return nil
}

// textValidator feeds a prompt answer through the session so survey
// re-prompts with the field's own message instead of accepting bad input.
func textValidator(session *formval.Session, name string) survey.Validator {
	return func(ans interface{}) error {
		text, _ := ans.(string)
		if session.HandleInput(name, formval.TextValue(text)) {
			return nil
		}
		return errors.New(session.Errors()[name])
	}
}

// checkboxValidator does the same for confirm prompts, so a declined
// required checkbox is re-asked rather than riding to the final report.
func checkboxValidator(session *formval.Session, name string) survey.Validator {
	return func(ans interface{}) error {
		checked, _ := ans.(bool)
		if session.HandleInput(name, formval.CheckboxValue(checked)) {
			return nil
		}
		return errors.New(session.Errors()[name])
	}
}

type report struct {
	Form         string            `json:"form"`
	Valid        bool              `json:"valid"`
	Allowed      bool              `json:"allowed"`
	FirstInvalid string            `json:"firstInvalid,omitempty"`
	Errors       map[string]string `json:"errors,omitempty"`
}

func printReport(out *os.File, doc *model.Document, result formval.SubmitResult, asJSON bool) error {
	if asJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(report{
			Form:         doc.ID(),
			Valid:        result.Valid,
			Allowed:      result.Allowed,
			FirstInvalid: result.FirstInvalid,
			Errors:       result.Errors,
		})
	}

	if result.Valid {
		fmt.Fprintf(out, "form %q: valid\n", doc.ID())
		return nil
	}
	fmt.Fprintf(out, "form %q: invalid (%d error(s))\n", doc.ID(), len(result.Errors))
	for _, field := range doc.Fields() {
		if message, ok := result.Errors[field.Name]; ok {
			fmt.Fprintf(out, "  %s: %s\n", field.Name, message)
		}
	}
	return nil
}
