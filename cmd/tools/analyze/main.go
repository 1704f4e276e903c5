package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"gopkg.in/yaml.v2"

	"investment_analytics/pkg/core/metrics"
	"investment_analytics/pkg/core/report"
	"investment_analytics/pkg/core/utils"
)

// propertyFile is the on-disk shape: inputs plus optional report options.
type propertyFile struct {
	Inputs  metrics.AnalyticsInputs `json:"inputs" yaml:"inputs"`
	Options *report.Options         `json:"options" yaml:"options"`
}

// loadProperty reads a property file. YAML by extension, otherwise the
// lenient JSON/hjson path, so hand-written files with comments work.
func loadProperty(path string) (propertyFile, error) {
	var pf propertyFile

	data, err := os.ReadFile(path)
	if err != nil {
		return pf, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		if err := yaml.Unmarshal(data, &pf); err != nil {
			return pf, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return pf, nil
	}

	if _, err := utils.SmartParse(string(data), &pf); err != nil {
		return pf, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return pf, nil
}

func main() {
	input := flag.String("in", "", "property file (.yaml, .json, or .hjson)")
	output := flag.String("out", "", "output file (default stdout)")
	asHTML := flag.Bool("html", false, "render HTML instead of markdown")
	flag.Parse()

	if *input == "" {
		log.Fatal("Usage: analyze -in property.yaml [-out report.md] [-html]")
	}

	pf, err := loadProperty(*input)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	opts := report.DefaultOptions()
	if pf.Options != nil {
		opts = *pf.Options
	}

	doc, err := report.Build(pf.Inputs, opts)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	if *asHTML {
		doc, err = utils.RenderHTML(doc)
		if err != nil {
			log.Fatalf("Error: %v", err)
		}
	}

	if *output == "" {
		fmt.Print(doc)
		return
	}
	if err := os.WriteFile(*output, []byte(doc), 0644); err != nil {
		log.Fatalf("Error: failed to write %s: %v", *output, err)
	}
	fmt.Printf("[ANALYZE] Wrote %s\n", *output)
}
