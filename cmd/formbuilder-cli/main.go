package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	formbuilder "github.com/arodidev/openmrs-form-builder"
	"github.com/arodidev/openmrs-form-builder/pkg/concepts"
	"github.com/arodidev/openmrs-form-builder/pkg/export"
	"github.com/arodidev/openmrs-form-builder/pkg/schema"
)

func main() {
	var (
		formFlag    = flag.String("form", "", "Path to a form definition (JSON or YAML)")
		serverFlag  = flag.String("server", "", "Base URL of a terminology server (offline when empty)")
		modeFlag    = flag.String("mode", "validate", "What to do: validate, preview, export, edit")
		outputFlag  = flag.String("output", "", "Optional file path for output (stdout when empty)")
		formatFlag  = flag.String("format", "json", "Export format: json or yaml")
		timeoutFlag = flag.Duration("timeout", 15*time.Second, "Lookup timeout")
	)
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if *formFlag == "" {
		logger.Fatal("missing -form path")
	}

	form, err := schema.LoadFile(*formFlag)
	if err != nil {
		logger.Fatal("load form", zap.String("path", *formFlag), zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	switch *modeFlag {
	case "validate":
		err = runValidate(ctx, logger, form, resolverFor(*serverFlag))
	case "preview":
		err = runPreview(form, *outputFlag)
	case "export":
		err = runExport(form, *formatFlag, *outputFlag)
	case "edit":
		err = runEdit(logger, &form, *formFlag)
	default:
		logger.Fatal("unknown mode", zap.String("mode", *modeFlag))
	}
	if err != nil {
		logger.Fatal("command failed", zap.String("mode", *modeFlag), zap.Error(err))
	}
}

// resolverFor returns a cached remote resolver when a server is configured,
// or an empty in-memory one so offline audits still report unresolved refs.
func resolverFor(server string) concepts.Resolver {
	if server == "" {
		return concepts.NewMemory()
	}
	return concepts.NewCached(concepts.NewClient(server))
}

func runValidate(ctx context.Context, logger *zap.Logger, form schema.Form, resolver concepts.Resolver) error {
	report, err := formbuilder.Audit(ctx, form, resolver)
	if err != nil {
		return err
	}

	failures := 0
	for _, res := range report.Resolutions() {
		fmt.Printf("%s: %s\n", res.QuestionID, res.Text)
		if !strings.HasPrefix(res.Text, "✅") {
			failures++
		}
	}

	logger.Info("audit complete",
		zap.Int("questions", len(report.Questions())),
		zap.Int("concept_refs", len(report.ConceptRefs())),
		zap.Int("failures", failures),
	)
	return nil
}

func runPreview(form schema.Form, output string) error {
	html, err := formbuilder.Preview(form)
	if err != nil {
		return err
	}
	return writeOut(output, html)
}

func runExport(form schema.Form, format, output string) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case "json":
		data, err = export.MarshalJSON(form)
	case "yaml", "yml":
		data, err = export.MarshalYAML(form)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
	if err != nil {
		return err
	}
	return writeOut(output, data)
}

func writeOut(path string, data []byte) error {
	if path == "" {
		fmt.Println(string(data))
		return nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
